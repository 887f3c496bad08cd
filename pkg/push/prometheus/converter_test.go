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

package prometheus_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	dto "github.com/prometheus/client_model/go"

	"github.com/dataphos/lib-push/pkg/push"
	pushprometheus "github.com/dataphos/lib-push/pkg/push/prometheus"
)

func newJobsCounter(t *testing.T, constLabels prometheus.Labels) prometheus.Counter {
	t.Helper()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "jobs_total",
		Help:        "Total number of processed jobs.",
		ConstLabels: constLabels,
	})
	counter.Add(3)

	return counter
}

func TestMetricFamiliesFrom(t *testing.T) {
	t.Parallel()

	converter := pushprometheus.NewConverter(pushprometheus.DefaultConverterSettings)

	families, err := converter.MetricFamiliesFrom([]prometheus.Collector{newJobsCounter(t, nil)})
	require.NoError(t, err)
	require.Len(t, families, 1)
	require.Equal(t, "jobs_total", families[0].GetName())
	require.Equal(t, dto.MetricType_COUNTER, families[0].GetType())
	require.Len(t, families[0].GetMetric(), 1)
	require.InDelta(t, 3, families[0].GetMetric()[0].GetCounter().GetValue(), 1e-9)
}

func TestMetricFamiliesFromRejectsDuplicateCollectors(t *testing.T) {
	t.Parallel()

	converter := pushprometheus.NewConverter(pushprometheus.DefaultConverterSettings)
	counter := newJobsCounter(t, nil)

	_, err := converter.MetricFamiliesFrom([]prometheus.Collector{counter, counter})
	require.Error(t, err)
}

func TestCreatePushDetailsText(t *testing.T) {
	t.Parallel()

	converter := pushprometheus.NewConverter(pushprometheus.ConverterSettings{Format: expfmt.FmtText})

	families, err := converter.MetricFamiliesFrom([]prometheus.Collector{newJobsCounter(t, nil)})
	require.NoError(t, err)

	base, err := push.MetricsJobURL("http://gw:9091")
	require.NoError(t, err)

	details, err := converter.CreatePushDetails("batch_job", base, map[string]string{"instance": "worker-1"}, families)
	require.NoError(t, err)
	require.Equal(t, "http://gw:9091/metrics/job/batch_job/instance/worker-1", details.URL.String())
	require.Equal(t, string(expfmt.FmtText), details.ContentType)
	require.Contains(t, string(details.Body), "jobs_total 3")
}

func TestTextRoundTrip(t *testing.T) {
	t.Parallel()

	converter := pushprometheus.NewConverter(pushprometheus.ConverterSettings{Format: expfmt.FmtText})

	families, err := converter.MetricFamiliesFrom([]prometheus.Collector{newJobsCounter(t, nil)})
	require.NoError(t, err)

	base, err := push.MetricsJobURL("http://gw:9091")
	require.NoError(t, err)

	details, err := converter.CreatePushDetails("batch_job", base, nil, families)
	require.NoError(t, err)

	var parser expfmt.TextParser

	parsed, err := parser.TextToMetricFamilies(strings.NewReader(string(details.Body)))
	require.NoError(t, err)
	require.Len(t, parsed, 1)

	family, ok := parsed["jobs_total"]
	require.True(t, ok)
	require.Equal(t, dto.MetricType_COUNTER, family.GetType())
	require.Len(t, family.GetMetric(), 1)
	require.InDelta(t, 3, family.GetMetric()[0].GetCounter().GetValue(), 1e-9)
}

func TestProtoRoundTrip(t *testing.T) {
	t.Parallel()

	converter := pushprometheus.NewConverter(pushprometheus.DefaultConverterSettings)

	families, err := converter.MetricFamiliesFrom([]prometheus.Collector{newJobsCounter(t, nil)})
	require.NoError(t, err)

	base, err := push.MetricsJobURL("http://gw:9091")
	require.NoError(t, err)

	details, err := converter.CreatePushDetails("batch_job", base, nil, families)
	require.NoError(t, err)
	require.Equal(t, string(expfmt.FmtProtoDelim), details.ContentType)

	decoder := expfmt.NewDecoder(bytes.NewReader(details.Body), expfmt.FmtProtoDelim)

	var decoded dto.MetricFamily

	require.NoError(t, decoder.Decode(&decoded))
	require.True(t, proto.Equal(families[0], &decoded))
}

func TestCreatePushDetailsRejectsJobLabelCollision(t *testing.T) {
	t.Parallel()

	converter := pushprometheus.NewConverter(pushprometheus.DefaultConverterSettings)

	families, err := converter.MetricFamiliesFrom([]prometheus.Collector{
		newJobsCounter(t, prometheus.Labels{"job": "sneaky"}),
	})
	require.NoError(t, err)

	base, err := push.MetricsJobURL("http://gw:9091")
	require.NoError(t, err)

	_, err = converter.CreatePushDetails("batch_job", base, nil, families)
	require.Error(t, err)
}

func TestCreatePushDetailsRejectsGroupingLabelCollision(t *testing.T) {
	t.Parallel()

	converter := pushprometheus.NewConverter(pushprometheus.DefaultConverterSettings)

	families, err := converter.MetricFamiliesFrom([]prometheus.Collector{
		newJobsCounter(t, prometheus.Labels{"instance": "worker-1"}),
	})
	require.NoError(t, err)

	base, err := push.MetricsJobURL("http://gw:9091")
	require.NoError(t, err)

	_, err = converter.CreatePushDetails("batch_job", base, map[string]string{"instance": "worker-1"}, families)
	require.Error(t, err)
}

func TestNewPusher(t *testing.T) {
	t.Parallel()

	_, err := pushprometheus.NewPusher(nil, "http://localhost:9091")
	require.NoError(t, err)

	_, err = pushprometheus.NewPusher(nil, "://localhost:9091")
	require.Error(t, err)
}
