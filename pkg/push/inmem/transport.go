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

// Package inmem is an in-memory, "dummy" implementation of the push API.
package inmem

import (
	"context"
	"net/http"
	"net/url"
	"sync"
)

// Request is a single push recorded by a Transport.
type Request struct {
	// Method the http method the delivery maps to (PUT for PushAll, POST for PushAdd).
	Method      string
	URL         string
	Body        []byte
	ContentType string
}

// Transport records every push instead of delivering it, which makes it useful as
// a stand-in for a real pushgateway in tests.
type Transport struct {
	// Err returned by both push operations when set.
	Err error

	pushed []Request
	mu     sync.Mutex
}

func (t *Transport) PushAll(_ context.Context, endpoint *url.URL, body []byte, contentType string) error {
	return t.record(http.MethodPut, endpoint, body, contentType)
}

func (t *Transport) PushAdd(_ context.Context, endpoint *url.URL, body []byte, contentType string) error {
	return t.record(http.MethodPost, endpoint, body, contentType)
}

func (t *Transport) record(method string, endpoint *url.URL, body []byte, contentType string) error {
	if t.Err != nil {
		return t.Err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.pushed = append(t.pushed, Request{
		Method:      method,
		URL:         endpoint.String(),
		Body:        body,
		ContentType: contentType,
	})

	return nil
}

// Requests returns a copy of all recorded pushes, in arrival order.
func (t *Transport) Requests() []Request {
	t.mu.Lock()
	defer t.mu.Unlock()

	requests := make([]Request, len(t.pushed))
	copy(requests, t.pushed)

	return requests
}
