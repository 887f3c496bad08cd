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

package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	dto "github.com/prometheus/client_model/go"

	"github.com/dataphos/lib-push/pkg/push"
	"github.com/dataphos/lib-push/pkg/push/httppush"
)

// Pusher is a push.Pusher bound to the client_golang metric types.
type Pusher = push.Pusher[[]*dto.MetricFamily, prometheus.Collector]

// NewPusher creates a Pusher that delivers metrics to the pushgateway at the given
// address with the given http client.
//
// If client is nil, a default one is built from httppush.DefaultSettings.
func NewPusher(client *http.Client, addr string) (*Pusher, error) {
	transport, err := httppush.NewTransport(httppush.Config{Client: client}, httppush.DefaultSettings)
	if err != nil {
		return nil, err
	}

	return push.New[[]*dto.MetricFamily, prometheus.Collector](transport, NewConverter(DefaultConverterSettings), addr)
}
