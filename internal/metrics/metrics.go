// Package metrics exposes prometheus collectors for the formatting pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/baditaflorin/go_jp_formatter/internal/core/domain"
)

// Collector records stage and call timings. It implements ports.MetricsRecorder.
type Collector struct {
	stageRuns     *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	formats       *prometheus.CounterVec
	formatRunes   prometheus.Counter
	formatLatency prometheus.Histogram
}

// NewCollector creates the collectors and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		stageRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jpformat_stage_runs_total",
				Help: "Total number of stage executions",
			},
			[]string{"stage"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jpformat_stage_duration_seconds",
				Help:    "Duration of single stage executions",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"stage"},
		),
		formats: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jpformat_requests_total",
				Help: "Total number of formatting calls",
			},
			[]string{"changed"},
		),
		formatRunes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "jpformat_runes_processed_total",
				Help: "Total number of input code points formatted",
			},
		),
		formatLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "jpformat_format_duration_seconds",
				Help:    "Duration of whole formatting calls",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
		),
	}

	for _, col := range []prometheus.Collector{
		c.stageRuns, c.stageDuration, c.formats, c.formatRunes, c.formatLatency,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveStage records one stage execution.
func (c *Collector) ObserveStage(name domain.RuleName, elapsed time.Duration) {
	c.stageRuns.WithLabelValues(string(name)).Inc()
	c.stageDuration.WithLabelValues(string(name)).Observe(elapsed.Seconds())
}

// ObserveFormat records one formatting call.
func (c *Collector) ObserveFormat(inputRunes int, changed bool, elapsed time.Duration) {
	c.formats.WithLabelValues(strconv.FormatBool(changed)).Inc()
	c.formatRunes.Add(float64(inputRunes))
	c.formatLatency.Observe(elapsed.Seconds())
}
