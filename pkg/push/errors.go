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
	"fmt"
)

// StatusError is returned by transports when the pushgateway responds with a
// status code outside the 2xx range.
type StatusError struct {
	// Code the received status code.
	Code int

	// URL the target the push was sent to.
	URL string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d while pushing to %s", e.Code, e.URL)
}
