package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/anbanpillay/ASRI-PyROPS/internal/adapter"
	"github.com/anbanpillay/ASRI-PyROPS/internal/config"
	"github.com/anbanpillay/ASRI-PyROPS/internal/engine"
	"github.com/anbanpillay/ASRI-PyROPS/internal/observability"
	"github.com/anbanpillay/ASRI-PyROPS/internal/results"
	"github.com/anbanpillay/ASRI-PyROPS/internal/store"
)

// RunSummary describes one completed simulation or re-extraction.
type RunSummary struct {
	RunID  string         `json:"run_id"`
	Dir    string         `json:"dir"`
	Record results.Record `json:"record"`

	// Seq is the archive sequence number, zero when not archived.
	Seq int64 `json:"seq,omitempty"`
}

// Run prepares the configuration from the source tables and simulates it.
func (p *Pipeline) Run(ctx context.Context) (*RunSummary, error) {
	cfg, err := p.Prepare(ctx)
	if err != nil {
		return nil, err
	}
	return p.Simulate(ctx, cfg)
}

// Simulate adapts cfg, runs the engine once and writes the run artifacts
// into a new run directory under the output directory.
func (p *Pipeline) Simulate(ctx context.Context, cfg *config.Configuration) (*RunSummary, error) {
	runID := p.ids.Generate()
	date := p.clock.Now()
	dir := filepath.Join(p.settings.OutputDir, runID)
	logger := p.logger.With("run_id", runID)

	fingerprint, err := config.Fingerprint(cfg)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}
	if err := config.WriteFile(filepath.Join(dir, ConfigurationFile), cfg); err != nil {
		return nil, err
	}

	var input *adapter.EngineInput
	err = p.stage(observability.StageAdapt, func() error {
		var err error
		if input, err = adapter.Adapt(cfg); err != nil {
			return err
		}
		return writeJSON(filepath.Join(dir, EngineInputFile), engine.Request{
			ProtocolVersion: engine.ProtocolVersion,
			Input:           input,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info("simulation started", "source", cfg.Source, "fingerprint", fingerprint, "dir", dir)
	var out *engine.Output
	err = p.stage(observability.StageEngine, func() error {
		var err error
		if out, err = p.engine.Simulate(ctx, input); err != nil {
			return err
		}
		return engine.WriteOutputFile(filepath.Join(dir, EngineOutputFile), out)
	})
	if err != nil {
		return nil, err
	}

	meta := results.Meta{
		RunID:                    runID,
		SimulationDate:           date,
		Source:                   cfg.Source,
		ConfigurationFingerprint: fingerprint,
		BurnTimeS:                cfg.Motor.BurnTimeS,
	}
	sum, err := p.extract(ctx, out, meta, dir)
	if err != nil {
		return nil, err
	}
	logger.Info("simulation complete",
		"termination", sum.Record.Termination,
		"samples", sum.Record.Trajectory.Samples,
		"missing", len(sum.Record.Missing),
	)
	return sum, nil
}

// ReextractOptions controls Reextract.
type ReextractOptions struct {
	// OutputPath is a captured engine_output.json.
	OutputPath string

	// ConfigPath optionally names the configuration record the output was
	// produced from; it fills the source, fingerprint and burnout time.
	ConfigPath string

	// Dir receives results.json and trajectory.csv. Empty means the
	// directory of OutputPath.
	Dir string
}

// Reextract decodes a captured engine output again and rewrites the
// results artifacts. It does not run the engine.
func (p *Pipeline) Reextract(ctx context.Context, opts ReextractOptions) (*RunSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := engine.ReadOutputFile(opts.OutputPath)
	if err != nil {
		return nil, &StageError{Stage: observability.StageExtract, Err: err}
	}

	meta := results.Meta{RunID: p.ids.Generate(), SimulationDate: p.clock.Now()}
	if opts.ConfigPath != "" {
		cfg, err := config.ReadFile(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		if meta.ConfigurationFingerprint, err = config.Fingerprint(cfg); err != nil {
			return nil, err
		}
		meta.Source = cfg.Source
		meta.BurnTimeS = cfg.Motor.BurnTimeS
	}

	dir := opts.Dir
	if dir == "" {
		dir = filepath.Dir(opts.OutputPath)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results directory: %w", err)
	}
	return p.extract(ctx, out, meta, dir)
}

// extract runs the extraction and export stages, then archives the run.
func (p *Pipeline) extract(ctx context.Context, out *engine.Output, meta results.Meta, dir string) (*RunSummary, error) {
	var ex *results.Extraction
	err := p.stage(observability.StageExtract, func() error {
		var err error
		ex, err = results.Extract(out)
		return err
	})
	if err != nil {
		return nil, err
	}
	p.metrics.SetFlight(len(ex.Trajectory), ex.Summary.ApogeeAltitudeM, len(ex.Summary.Missing))

	rec := results.NewRecord(meta, ex)
	err = p.stage(observability.StageExport, func() error {
		if err := results.WriteRecordFile(filepath.Join(dir, ResultsFile), rec); err != nil {
			return err
		}
		return results.WriteTrajectoryFile(filepath.Join(dir, results.TrajectoryFile), ex.Trajectory)
	})
	if err != nil {
		return nil, err
	}

	sum := &RunSummary{RunID: meta.RunID, Dir: dir, Record: rec}
	if p.archive != nil {
		err = p.stage(observability.StageArchive, func() error {
			var err error
			sum.Seq, err = p.archiveRun(ctx, meta, rec, dir)
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	return sum, nil
}

func (p *Pipeline) archiveRun(ctx context.Context, meta results.Meta, rec results.Record, dir string) (int64, error) {
	data, err := results.MarshalRecord(rec)
	if err != nil {
		return 0, err
	}
	seq, _, err := p.archive.WriteRun(ctx, store.Run{
		ID:             rec.RunID,
		Fingerprint:    rec.ConfigurationFingerprint,
		Source:         rec.Source,
		SimulationDate: meta.SimulationDate,
		EngineVersion:  rec.EngineVersion,
		Termination:    rec.Termination,
		ApogeeM:        rec.KeyEvents.Apogee.AltitudeM,
		FlightTimeS:    rec.Landing.FlightTimeS,
		Missing:        rec.Missing,
		OutputDir:      dir,
		Record:         data,
	})
	return seq, err
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
