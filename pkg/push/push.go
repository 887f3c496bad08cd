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

// Transport models the delivery of an already serialized push request to a pushgateway.
//
// Implementations perform exactly one network call per invocation and never retry
// internally; retry policy belongs to the caller (or the underlying client's own
// configuration).
type Transport interface {
	// PushAll delivers the request with replace semantics (conventionally HTTP PUT),
	// fully overwriting any previously pushed metric families under the same
	// job and grouping labels.
	//
	// Blocks until the exchange completes, the context is canceled or an error occurs.
	PushAll(ctx context.Context, endpoint *url.URL, body []byte, contentType string) error

	// PushAdd delivers the request with merge semantics (conventionally HTTP POST),
	// merging with previously pushed metric families under the same job and
	// grouping labels instead of replacing them.
	//
	// Blocks until the exchange completes, the context is canceled or an error occurs.
	PushAdd(ctx context.Context, endpoint *url.URL, body []byte, contentType string) error
}

// Converter bridges a metrics library to the wire format the pushgateway expects,
// independent of transport.
//
// MF is the library's normalized metric family representation and C its collector
// type, so alternate metrics libraries (or custom grouping/encoding schemes) can be
// bound without forking the push path.
type Converter[MF, C any] interface {
	// MetricFamiliesFrom normalizes the given collectors into the family
	// representation used for serialization.
	MetricFamiliesFrom(collectors []C) (MF, error)

	// CreatePushDetails builds the final push request from the job name, the base
	// push url, the grouping labels and the normalized families.
	//
	// The job name and every grouping pair are appended to base as percent-encoded
	// path segments, job first.
	CreatePushDetails(job string, base *url.URL, grouping map[string]string, families MF) (Details, error)
}

// Details holds the components of a single push request, constructed fresh per call.
type Details struct {
	// URL the fully qualified target, including the job and grouping segments.
	URL *url.URL

	// Body the serialized metric families.
	Body []byte

	// ContentType the content type matching the Body encoding, set verbatim on the
	// outgoing request.
	ContentType string
}
