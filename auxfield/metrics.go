// SPDX-License-Identifier: MIT

package auxfield

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the prometheus instruments updated by Run.
type Metrics struct {
	// samplesTotal counts evaluated samples by kernel and result
	samplesTotal *prometheus.CounterVec
	// sampleDuration tracks per-sample evaluation latency by kernel
	sampleDuration *prometheus.HistogramVec
	// runsTotal counts finished runs by kernel and result
	runsTotal *prometheus.CounterVec
}

// NewMetrics registers the sampler instruments on reg. Registering twice on
// the same registry panics, as with any prometheus collector.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		samplesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "afdmc_samples_total",
			Help: "Total auxiliary-field samples evaluated by kernel and result",
		}, []string{"kernel", "result"}),
		sampleDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "afdmc_sample_duration_seconds",
			Help:    "Per-sample bracket evaluation time in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}, []string{"kernel"}),
		runsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "afdmc_runs_total",
			Help: "Total sampling runs by kernel and result",
		}, []string{"kernel", "result"}),
	}
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}

// observeSample records one sample; nil receivers are no-ops.
func (m *Metrics) observeSample(kernel string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.samplesTotal.WithLabelValues(kernel, resultLabel(err)).Inc()
	m.sampleDuration.WithLabelValues(kernel).Observe(seconds)
}

// observeRun records one finished run; nil receivers are no-ops.
func (m *Metrics) observeRun(kernel string, err error) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(kernel, resultLabel(err)).Inc()
}
