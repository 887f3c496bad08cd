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

// Package prometheus implements the push API contracts for the
// github.com/prometheus/client_golang metrics library.
package prometheus

import (
	"bytes"
	"net/url"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	dto "github.com/prometheus/client_model/go"

	"github.com/dataphos/lib-push/internal/errtemplates"
	"github.com/dataphos/lib-push/pkg/push"
)

// The job label is reserved for the pushgateway, which attaches it from the push
// url; pushed metrics carrying it themselves would clash at the gateway.
const jobLabelName = "job"

// Converter normalizes client_golang collectors into metric families and encodes
// them in one of the Prometheus exposition formats.
type Converter struct {
	format expfmt.Format
}

// ConverterSettings the optional settings for a Converter.
//
// These settings are fully optional and are preset to sane defaults.
type ConverterSettings struct {
	// Format the exposition format the metric families are encoded in. The format
	// doubles as the content type of the push request.
	//
	// Defaults to the protobuf delimited format, which every pushgateway version
	// accepts; the text and OpenMetrics formats work as well.
	Format expfmt.Format
}

var DefaultConverterSettings = ConverterSettings{
	Format: expfmt.FmtProtoDelim,
}

func NewConverter(settings ConverterSettings) *Converter {
	format := settings.Format
	if format == "" {
		format = expfmt.FmtProtoDelim
	}

	return &Converter{format: format}
}

// MetricFamiliesFrom gathers the given collectors into metric families using a
// pedantic registry, so inconsistent or duplicate collectors are reported instead
// of silently merged.
func (c *Converter) MetricFamiliesFrom(collectors []prometheus.Collector) ([]*dto.MetricFamily, error) {
	registry := prometheus.NewPedanticRegistry()

	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return nil, errors.Wrap(err, "registering collector failed")
		}
	}

	families, err := registry.Gather()
	if err != nil {
		return nil, errors.Wrap(err, "gathering metric families failed")
	}

	return families, nil
}

// CreatePushDetails builds the push url from the job name and grouping labels and
// encodes the given families in the converter's exposition format.
func (c *Converter) CreatePushDetails(job string, base *url.URL, grouping map[string]string, families []*dto.MetricFamily) (push.Details, error) {
	endpoint, err := push.BuildURL(base, job, grouping)
	if err != nil {
		return push.Details{}, err
	}

	body, err := c.encode(families, grouping)
	if err != nil {
		return push.Details{}, err
	}

	return push.Details{
		URL:         endpoint,
		Body:        body,
		ContentType: string(c.format),
	}, nil
}

func (c *Converter) encode(families []*dto.MetricFamily, grouping map[string]string) ([]byte, error) {
	var buf bytes.Buffer

	encoder := expfmt.NewEncoder(&buf, c.format)

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				name := pair.GetName()

				if name == jobLabelName {
					return nil, errtemplates.JobLabelCollision(family.GetName())
				}

				if _, ok := grouping[name]; ok {
					return nil, errtemplates.GroupingLabelCollision(family.GetName(), name)
				}
			}
		}

		if err := encoder.Encode(family); err != nil {
			return nil, errors.Wrapf(err, "encoding metric family %s failed", family.GetName())
		}
	}

	return buf.Bytes(), nil
}
