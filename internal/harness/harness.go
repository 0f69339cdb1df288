package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/anbanpillay/ASRI-PyROPS/internal/config"
	"github.com/anbanpillay/ASRI-PyROPS/internal/engine"
	"github.com/anbanpillay/ASRI-PyROPS/internal/observability"
	"github.com/anbanpillay/ASRI-PyROPS/internal/pipeline"
	"github.com/anbanpillay/ASRI-PyROPS/internal/results"
	"github.com/anbanpillay/ASRI-PyROPS/internal/settings"
)

// Options adjust how a scenario runs.
type Options struct {
	// OutputDir overrides the settings' output directory.
	OutputDir string

	// Engine overrides both the replayed output and the engine command.
	Engine engine.Engine

	// Logger receives pipeline logs. Nil discards them.
	Logger *slog.Logger

	// Metrics records stage timings. Nil records nothing.
	Metrics *observability.Collector

	// Clock fixes the simulation date. Nil uses the wall clock.
	Clock pipeline.Clock
}

// Run executes a benchmark scenario and returns the result.
//
// Execution flow:
// 1. Load the settings named by the scenario
// 2. Prepare the configuration from the source tables
// 3. Simulate it, replaying the captured output when one is given
// 4. Evaluate the expectations against both records
//
// A pipeline failure is returned as an error; failed expectations are not
// errors and are reported in the Result.
func Run(ctx context.Context, sc *Scenario, opts Options) (*Result, error) {
	s, err := settings.Load(sc.Settings)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	if sc.InputDir != "" {
		s.InputDir = sc.InputDir
	}
	if opts.OutputDir != "" {
		s.OutputDir = opts.OutputDir
	}

	runID := sc.RunID
	if runID == "" {
		runID = "benchmark-" + sc.Name
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	pipeOpts := []pipeline.Option{
		pipeline.WithLogger(logger.With("scenario", sc.Name)),
		pipeline.WithMetrics(opts.Metrics),
		pipeline.WithRunIDs(pipeline.NewFixedGenerator(runID)),
	}
	switch {
	case opts.Engine != nil:
		pipeOpts = append(pipeOpts, pipeline.WithEngine(opts.Engine))
	case sc.EngineOutput != "":
		pipeOpts = append(pipeOpts, pipeline.WithEngine(&engine.Replay{Path: sc.EngineOutput}))
	}
	if opts.Clock != nil {
		pipeOpts = append(pipeOpts, pipeline.WithClock(opts.Clock))
	}
	p := pipeline.New(s, pipeOpts...)

	cfg, err := p.Prepare(ctx)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	sum, err := p.Simulate(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	docs, err := documents(cfg, sum.Record)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	result := NewResult(sc.Name)
	result.RunID = sum.RunID
	result.Dir = sum.Dir
	for _, c := range Evaluate(docs, sc.Expectations) {
		result.AddCheck(c)
	}
	logger.Info("benchmark finished", "scenario", sc.Name, "pass", result.Pass, "failed", len(result.Errors))
	return result, nil
}

func documents(cfg *config.Configuration, rec results.Record) (Documents, error) {
	data, err := config.Marshal(cfg, config.FormatJSON)
	if err != nil {
		return Documents{}, err
	}
	cdoc, err := decodeDocument(data)
	if err != nil {
		return Documents{}, err
	}
	data, err = results.MarshalRecord(rec)
	if err != nil {
		return Documents{}, err
	}
	rdoc, err := decodeDocument(data)
	if err != nil {
		return Documents{}, err
	}
	return Documents{Configuration: cdoc, Results: rdoc, Record: rec}, nil
}
