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

// Package httppush implements the push.Transport contract on top of net/http.
package httppush

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dataphos/lib-push/pkg/push"
)

// Transport delivers push requests over http: PushAll issues PUT, PushAdd issues POST.
type Transport struct {
	client *http.Client
	logger *zap.Logger
}

// Config defines the configuration properties of an http Transport.
type Config struct {
	// Client the http client pushes are sent with.
	//
	// If nil, a client is built from the Settings and the TLS configuration. Setting
	// both Client and TLS is an error, since the custom client owns its own tls setup.
	Client *http.Client

	// TLS the tls configuration.
	//
	// If nil, the transport will not use tls.
	TLS *TLSConfig

	// Logger used to log successful pushes.
	//
	// If nil, nothing is logged.
	Logger *zap.Logger
}

// Settings the optional settings of an http Transport.
//
// These settings are fully optional and are preset to sane defaults.
type Settings struct {
	// Timeout the per-push http timeout, applied only when Config.Client is nil.
	Timeout time.Duration
}

var DefaultSettings = Settings{
	Timeout: 30 * time.Second,
}

// NewTransport creates a Transport from the given Config and Settings.
func NewTransport(config Config, settings Settings) (*Transport, error) {
	client := config.Client

	if client == nil {
		timeout := settings.Timeout
		if timeout == 0 {
			timeout = DefaultSettings.Timeout
		}

		client = &http.Client{Timeout: timeout}

		if config.TLS != nil {
			tlsClient, err := newTLSClient(config.TLS, timeout)
			if err != nil {
				return nil, err
			}

			client = tlsClient
		}
	} else if config.TLS != nil {
		return nil, errors.New("a custom http client and a tls configuration can't be combined")
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Transport{
		client: client,
		logger: logger,
	}, nil
}

func (t *Transport) PushAll(ctx context.Context, endpoint *url.URL, body []byte, contentType string) error {
	return t.send(ctx, http.MethodPut, endpoint, body, contentType)
}

func (t *Transport) PushAdd(ctx context.Context, endpoint *url.URL, body []byte, contentType string) error {
	return t.send(ctx, http.MethodPost, endpoint, body, contentType)
}

func (t *Transport) send(ctx context.Context, method string, endpoint *url.URL, body []byte, contentType string) error {
	request, err := http.NewRequestWithContext(ctx, method, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "creating push request failed")
	}

	request.Header.Set("Content-Type", contentType)

	response, err := t.client.Do(request)
	if err != nil {
		return errors.Wrap(err, "pushing metrics failed")
	}
	defer response.Body.Close()

	// The gateway sends no response body worth keeping, but the connection is only
	// reusable once the body is drained.
	_, _ = io.Copy(io.Discard, response.Body)

	if response.StatusCode/100 != 2 {
		return &push.StatusError{Code: response.StatusCode, URL: endpoint.String()}
	}

	t.logger.Info(
		"pushed metrics to the pushgateway",
		zap.String("url", endpoint.String()),
		zap.Int("status", response.StatusCode),
	)

	return nil
}
