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

// Package pushutil provides helpers for composing push pipelines on top of the push API.
package pushutil

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dataphos/lib-push/pkg/push"
)

// PushFunc models a single push operation, usually a push.Pusher method with the
// job, grouping and metrics arguments already bound.
type PushFunc func(context.Context) error

// ErrorHandler defines how push errors of a periodic push are handled.
type ErrorHandler func(error)

// DefaultErrorHandler skips received errors.
var DefaultErrorHandler = func(error) {}

// Async runs the given push in its own goroutine, returning a channel which yields
// the final result once the push completes or fails.
//
// The channel is buffered, so the result may be dropped without leaking the goroutine.
func Async(ctx context.Context, push PushFunc) <-chan error {
	result := make(chan error, 1)

	go func() {
		result <- push(ctx)
	}()

	return result
}

// Every runs the given push once per interval.
//
// Errors of individual pushes are passed to errorHandler and don't stop the loop.
//
// Every blocks until the provided ctx is canceled, in which case, nil is returned.
func Every(ctx context.Context, interval time.Duration, push PushFunc, errorHandler ErrorHandler) error {
	if errorHandler == nil {
		errorHandler = DefaultErrorHandler
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := push(ctx); err != nil {
				errorHandler(err)
			}
		}
	}
}

// Fanout pushes the same metric families to all given gateways with replace
// semantics, each push running in its own goroutine.
//
// Fanout blocks until all the pushes complete and returns the first error
// encountered, if any.
func Fanout[MF, C any](ctx context.Context, job string, grouping map[string]string, families MF, pushers ...*push.Pusher[MF, C]) error {
	errorGroup, groupCtx := errgroup.WithContext(ctx)

	for _, loopPusher := range pushers {
		pusher := loopPusher

		errorGroup.Go(func() error {
			return pusher.PushAll(groupCtx, job, grouping, families)
		})
	}

	return errorGroup.Wait()
}
