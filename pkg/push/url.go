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
	"net/url"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/dataphos/lib-push/internal/errtemplates"
)

const metricsJobPath = "metrics/job/"

// MetricsJobURL parses the given pushgateway address and joins it with the shared
// metrics/job/ path prefix all push urls are built on.
func MetricsJobURL(addr string) (*url.URL, error) {
	base, err := url.Parse(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing pushgateway address %s failed", addr)
	}

	if !base.IsAbs() || base.Host == "" {
		return nil, errtemplates.NotAbsoluteURL(addr)
	}

	return base.Parse(metricsJobPath)
}

// BuildURL appends the job name and the grouping labels to the given base push url
// as percent-encoded path segments, job first.
//
// Grouping pairs are appended in sorted label name order, so the same inputs always
// produce the same url. The job name and the grouping label names and values must
// not contain '/'.
func BuildURL(base *url.URL, job string, grouping map[string]string) (*url.URL, error) {
	if job == "" {
		return nil, errtemplates.EmptyJobName()
	}

	segments := make([]string, 0, 1+2*len(grouping))

	segment, err := escape(job)
	if err != nil {
		return nil, err
	}

	segments = append(segments, segment)

	names := make([]string, 0, len(grouping))
	for name := range grouping {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		for _, value := range []string{name, grouping[name]} {
			segment, err := escape(value)
			if err != nil {
				return nil, err
			}

			segments = append(segments, segment)
		}
	}

	endpoint, err := base.Parse(strings.Join(segments, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "building push url failed")
	}

	return endpoint, nil
}

func escape(value string) (string, error) {
	if strings.Contains(value, "/") {
		return "", errtemplates.SlashInName(value)
	}

	return url.PathEscape(value), nil
}
