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

package httppush

import (
	"net/http"
	"time"

	"github.com/dataphos/lib-httputil/pkg/httputil"
	"github.com/pkg/errors"
)

// TLSConfig defines the file paths the client tls configuration is loaded from.
//
// All fields of the struct need to be set in order to successfully initialize tls.
type TLSConfig struct {
	// CertFile the path to the client certificate.
	CertFile string

	// KeyFile the path to the client private key.
	KeyFile string

	// CAFile the path to the certificate authority the gateway's certificate is
	// verified against.
	CAFile string
}

// newTLSClient builds an http client which authenticates with the given client
// certificate and trusts the given certificate authority.
func newTLSClient(config *TLSConfig, timeout time.Duration) (*http.Client, error) {
	tlsConfig, err := httputil.NewTLSConfig(config.CertFile, config.KeyFile, config.CAFile)
	if err != nil {
		return nil, errors.Wrap(err, "loading tls configuration failed")
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: tlsConfig,
		},
	}, nil
}
