// Copyright 2024 Syntio Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package push

import (
	"context"
	"net/url"
)

type pushType int

const (
	pushTypeAdd pushType = iota
	pushTypeAll
)

// Pusher pushes metrics to a pushgateway instance by composing a Converter, which
// turns collected metrics into a push request, with a Transport, which delivers it.
//
// A Pusher holds no mutable state after construction, so a single instance is safe
// to share across goroutines.
type Pusher[MF, C any] struct {
	transport Transport
	converter Converter[MF, C]
	url       *url.URL
}

// New creates a Pusher from the given Transport, Converter and pushgateway address.
//
// The address must parse as an absolute url.
func New[MF, C any](transport Transport, converter Converter[MF, C], addr string) (*Pusher[MF, C], error) {
	jobURL, err := MetricsJobURL(addr)
	if err != nil {
		return nil, err
	}

	return &Pusher[MF, C]{
		transport: transport,
		converter: converter,
		url:       jobURL,
	}, nil
}

// PushAll pushes the given metric families to the pushgateway, replacing all
// previously pushed families under the same job and grouping labels.
//
// The job name and the grouping label names and values must not contain '/'.
func (p *Pusher[MF, C]) PushAll(ctx context.Context, job string, grouping map[string]string, families MF) error {
	return p.push(ctx, job, grouping, families, pushTypeAll)
}

// PushAdd pushes the given metric families to the pushgateway, replacing only
// previously pushed families with the same name under the same job and grouping labels.
//
// The job name and the grouping label names and values must not contain '/'.
func (p *Pusher[MF, C]) PushAdd(ctx context.Context, job string, grouping map[string]string, families MF) error {
	return p.push(ctx, job, grouping, families, pushTypeAdd)
}

// PushAllCollectors converts the given collectors and pushes the result like PushAll.
func (p *Pusher[MF, C]) PushAllCollectors(ctx context.Context, job string, grouping map[string]string, collectors []C) error {
	return p.pushCollectors(ctx, job, grouping, collectors, pushTypeAll)
}

// PushAddCollectors converts the given collectors and pushes the result like PushAdd.
func (p *Pusher[MF, C]) PushAddCollectors(ctx context.Context, job string, grouping map[string]string, collectors []C) error {
	return p.pushCollectors(ctx, job, grouping, collectors, pushTypeAdd)
}

func (p *Pusher[MF, C]) pushCollectors(ctx context.Context, job string, grouping map[string]string, collectors []C, pushType pushType) error {
	families, err := p.converter.MetricFamiliesFrom(collectors)
	if err != nil {
		return err
	}

	return p.push(ctx, job, grouping, families, pushType)
}

func (p *Pusher[MF, C]) push(ctx context.Context, job string, grouping map[string]string, families MF, pushType pushType) error {
	details, err := p.converter.CreatePushDetails(job, p.url, grouping, families)
	if err != nil {
		return err
	}

	switch pushType {
	case pushTypeAdd:
		return p.transport.PushAdd(ctx, details.URL, details.Body, details.ContentType)
	default:
		return p.transport.PushAll(ctx, details.URL, details.Body, details.ContentType)
	}
}
