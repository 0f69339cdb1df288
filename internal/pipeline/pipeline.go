package pipeline

import (
	"log/slog"

	"github.com/anbanpillay/ASRI-PyROPS/internal/engine"
	"github.com/anbanpillay/ASRI-PyROPS/internal/observability"
	"github.com/anbanpillay/ASRI-PyROPS/internal/settings"
	"github.com/anbanpillay/ASRI-PyROPS/internal/store"
)

// Artifact file names inside a run directory.
const (
	ConfigurationFile = "configuration.yaml"
	EngineInputFile   = "engine_input.json"
	EngineOutputFile  = "engine_output.json"
	ResultsFile       = "results.json"
)

// Pipeline runs the benchmark stages against one set of settings.
type Pipeline struct {
	settings *settings.Settings
	engine   engine.Engine
	logger   *slog.Logger
	metrics  *observability.Collector
	ids      RunIDGenerator
	clock    Clock
	archive  *store.Store
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithEngine replaces the engine built from the settings.
func WithEngine(e engine.Engine) Option {
	return func(p *Pipeline) { p.engine = e }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithMetrics records stage timings into c.
func WithMetrics(c *observability.Collector) Option {
	return func(p *Pipeline) { p.metrics = c }
}

// WithRunIDs sets the run id generator. The default generates UUIDv7s.
func WithRunIDs(g RunIDGenerator) Option {
	return func(p *Pipeline) { p.ids = g }
}

// WithClock sets the wall clock.
func WithClock(c Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// WithArchive records every completed run in s.
func WithArchive(s *store.Store) Option {
	return func(p *Pipeline) { p.archive = s }
}

// New creates a pipeline for s. Unless WithEngine is given, the engine is
// the external command named in the settings.
func New(s *settings.Settings, opts ...Option) *Pipeline {
	p := &Pipeline{
		settings: s,
		logger:   slog.Default(),
		ids:      UUIDv7Generator{},
		clock:    systemClock{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.engine == nil {
		p.engine = &engine.Command{
			Path:    s.Engine.Command,
			Args:    s.Engine.Args,
			Dir:     s.Engine.Dir,
			Timeout: s.Engine.Timeout,
		}
	}
	return p
}

// Settings returns the settings the pipeline was built with.
func (p *Pipeline) Settings() *settings.Settings { return p.settings }

// stage runs fn as the named stage, timing it and tagging its error.
func (p *Pipeline) stage(name string, fn func() error) error {
	start := p.clock.Now()
	err := fn()
	elapsed := p.clock.Now().Sub(start)

	code := ErrorCode(err)
	p.metrics.ObserveStage(name, elapsed, code)
	if err != nil {
		p.logger.Error("stage failed", "stage", name, "code", code, "elapsed", elapsed, "error", err)
		return &StageError{Stage: name, Err: err}
	}
	p.logger.Debug("stage finished", "stage", name, "elapsed", elapsed)
	return nil
}
