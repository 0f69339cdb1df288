// Package observability records pipeline metrics with Prometheus. A run is
// a short batch process, so metrics are written once to a node-exporter
// textfile instead of being served.
package observability

import (
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Stage names used as metric labels.
const (
	StageNormalize = "normalize"
	StageAssemble  = "assemble"
	StageAdapt     = "adapt"
	StageEngine    = "engine"
	StageExtract   = "extract"
	StageExport    = "export"
	StageArchive   = "archive"
)

// Collector bundles the pipeline metrics. A nil *Collector records nothing,
// so callers never need to check whether metrics are enabled.
type Collector struct {
	gatherer prometheus.Gatherer

	StageDurations *prometheus.HistogramVec
	StageResults   *prometheus.CounterVec

	TrajectorySamples prometheus.Gauge
	ApogeeAltitude    prometheus.Gauge
	MissingScalars    prometheus.Gauge
}

// NewCollector registers the pipeline metrics against reg, defaulting to the
// global registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pyrops_stage_duration_seconds",
		Help:    "Wall-clock time spent in each pipeline stage.",
		Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120, 600},
	}, []string{"stage"}), "pyrops_stage_duration_seconds")
	if err != nil {
		return nil, err
	}
	results, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pyrops_stage_results_total",
		Help: "Pipeline stage completions, labeled by stage and error code (OK on success).",
	}, []string{"stage", "code"}), "pyrops_stage_results_total")
	if err != nil {
		return nil, err
	}
	samples, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pyrops_trajectory_samples",
		Help: "Number of samples in the last extracted trajectory.",
	}), "pyrops_trajectory_samples")
	if err != nil {
		return nil, err
	}
	apogee, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pyrops_apogee_altitude_meters",
		Help: "Apogee altitude of the last run, NaN when the engine did not report it.",
	}), "pyrops_apogee_altitude_meters")
	if err != nil {
		return nil, err
	}
	missing, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pyrops_summary_missing_fields",
		Help: "Number of summary fields the last run could not fill.",
	}), "pyrops_summary_missing_fields")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:          gatherer,
		StageDurations:    durations,
		StageResults:      results,
		TrajectorySamples: samples,
		ApogeeAltitude:    apogee,
		MissingScalars:    missing,
	}, nil
}

// CodeOK labels a successful stage.
const CodeOK = "OK"

// ObserveStage records one stage completion. code is CodeOK or the error
// code of the failure.
func (c *Collector) ObserveStage(stage string, elapsed time.Duration, code string) {
	if c == nil {
		return
	}
	if code == "" {
		code = CodeOK
	}
	c.StageDurations.WithLabelValues(stage).Observe(elapsed.Seconds())
	c.StageResults.WithLabelValues(stage, code).Inc()
}

// SetFlight records the outcome of an extraction. A nil apogee is stored as
// NaN.
func (c *Collector) SetFlight(samples int, apogeeM *float64, missing int) {
	if c == nil {
		return
	}
	c.TrajectorySamples.Set(float64(samples))
	if apogeeM != nil {
		c.ApogeeAltitude.Set(*apogeeM)
	} else {
		c.ApogeeAltitude.Set(math.NaN())
	}
	c.MissingScalars.Set(float64(missing))
}

// WriteTextfile writes every gathered metric to path in the text exposition
// format, atomically.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.gatherer); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
