package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbanpillay/ASRI-PyROPS/internal/adapter"
	"github.com/anbanpillay/ASRI-PyROPS/internal/config"
	"github.com/anbanpillay/ASRI-PyROPS/internal/engine"
	"github.com/anbanpillay/ASRI-PyROPS/internal/observability"
	"github.com/anbanpillay/ASRI-PyROPS/internal/results"
	"github.com/anbanpillay/ASRI-PyROPS/internal/series"
	"github.com/anbanpillay/ASRI-PyROPS/internal/settings"
	"github.com/anbanpillay/ASRI-PyROPS/internal/store"
	"github.com/anbanpillay/ASRI-PyROPS/internal/tabular"
	"github.com/anbanpillay/ASRI-PyROPS/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// bm001Settings points the default settings at freshly written BM-001
// workbooks.
func bm001Settings(t *testing.T) *settings.Settings {
	t.Helper()
	s := settings.Default()
	s.InputDir = t.TempDir()
	s.OutputDir = t.TempDir()
	testutil.WriteBM001Workbooks(t, s.InputDir)
	return s
}

// fakeEngine replays doc and records the input it was given.
func fakeEngine(t *testing.T, doc string, got **adapter.EngineInput) engine.Engine {
	t.Helper()
	return engine.Func(func(ctx context.Context, in *adapter.EngineInput) (*engine.Output, error) {
		if got != nil {
			*got = in
		}
		return engine.ReadOutput(strings.NewReader(doc))
	})
}

func newTestPipeline(t *testing.T, s *settings.Settings, eng engine.Engine, opts ...Option) (*Pipeline, *observability.Collector) {
	t.Helper()
	metrics, err := observability.NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)
	base := []Option{
		WithEngine(eng),
		WithLogger(discardLogger()),
		WithMetrics(metrics),
		WithRunIDs(NewFixedGenerator("run-0001", "run-0002")),
		WithClock(testutil.NewSteppingClock(testutil.FixedTime, 0)),
	}
	return New(s, append(base, opts...)...), metrics
}

func TestPrepare_BM001(t *testing.T) {
	p, metrics := newTestPipeline(t, bm001Settings(t), nil)

	cfg, err := p.Prepare(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "BM-001", cfg.Source)
	assert.Equal(t, 12.8, cfg.Motor.BurnTimeS)
	assert.Equal(t, 6038.0, cfg.Motor.PeakThrustN)
	assert.InDelta(t, 28.1, cfg.Motor.PropellantMassKg, 1e-9)
	assert.Equal(t, 65.9, cfg.MassProperties.WetMassKg)
	assert.Equal(t, 37.8, cfg.MassProperties.DryMassKg)

	thrust := cfg.Motor.Thrust.Series
	force, ok := thrust.Column(series.FieldThrust)
	require.True(t, ok)
	assert.InDelta(t, series.TrapezoidIntegral(thrust.X(), force), cfg.Motor.TotalImpulseNs, 1e-3)

	temperature, pressure, density := cfg.Atmosphere.Surface()
	assert.Equal(t, []float64{288.16, 101325.0, 1.225}, []float64{temperature, pressure, density})

	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.StageResults.WithLabelValues(observability.StageNormalize, observability.CodeOK)))
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.StageResults.WithLabelValues(observability.StageAssemble, observability.CodeOK)))
}

func TestPrepare_MissingTable(t *testing.T) {
	s := bm001Settings(t)
	require.NoError(t, os.Remove(filepath.Join(s.InputDir, testutil.BM001WindFile)))
	p, metrics := newTestPipeline(t, s, nil)

	_, err := p.Prepare(context.Background())
	require.Error(t, err)
	assert.Equal(t, CodeIO, ErrorCode(err))
	assert.Equal(t, observability.StageNormalize, StageOf(err))
	assert.Contains(t, err.Error(), "wind table")
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.StageResults.WithLabelValues(observability.StageNormalize, CodeIO)))
}

func TestPrepare_MalformedTable(t *testing.T) {
	s := bm001Settings(t)
	testutil.WriteWorkbook(t, s.InputDir, testutil.BM001ThrustFile, testutil.Sheet{
		Name: testutil.BM001ThrustSheet,
		Rows: [][]any{{0, 0}, {1, 100}, {1, 90}, {2, 0}},
	})
	p, _ := newTestPipeline(t, s, nil)

	_, err := p.Prepare(context.Background())
	require.Error(t, err)
	assert.True(t, series.IsMalformed(err))
	assert.Equal(t, string(series.ErrCodeMalformed), ErrorCode(err))
}

func TestPrepare_InconsistentVehicle(t *testing.T) {
	s := bm001Settings(t)
	s.Vehicle.Simulation.MaxTimeS = 5
	s.Vehicle.Simulation.MaxTimeStepS = 0.1
	p, _ := newTestPipeline(t, s, nil)

	_, err := p.Prepare(context.Background())
	require.Error(t, err)
	assert.Equal(t, string(config.ErrCodeConsistency), ErrorCode(err))
	assert.Equal(t, observability.StageAssemble, StageOf(err))
}

func TestPrepare_Cancelled(t *testing.T) {
	p, _ := newTestPipeline(t, bm001Settings(t), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Prepare(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestConvert_WritesRecordAndExports(t *testing.T) {
	s := bm001Settings(t)
	p, _ := newTestPipeline(t, s, nil)
	exportDir := filepath.Join(t.TempDir(), "normalized")

	sum, cfg, err := p.Convert(context.Background(), ConvertOptions{ExportDir: exportDir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(s.OutputDir, ConfigurationFile), sum.RecordPath)
	assert.Equal(t, 12.8, sum.BurnTimeS)
	assert.Equal(t, 6038.0, sum.PeakThrustN)
	assert.Len(t, sum.Exported, 5)

	back, err := config.ReadFile(sum.RecordPath)
	require.NoError(t, err)
	fp, err := config.Fingerprint(back)
	require.NoError(t, err)
	assert.Equal(t, sum.Fingerprint, fp)
	want, err := config.Fingerprint(cfg)
	require.NoError(t, err)
	assert.Equal(t, want, fp)

	// Exported tables read back through the normalizer.
	raw, err := tabular.ReadFile(filepath.Join(exportDir, ExportThrustFile), "")
	require.NoError(t, err)
	thrust, err := tabular.NormalizeThrust(raw)
	require.NoError(t, err)
	assert.Equal(t, 12.8, thrust.BurnTime())

	raw, err = tabular.ReadFile(filepath.Join(exportDir, ExportAtmosphereFile), "")
	require.NoError(t, err)
	atmosphere, err := tabular.NormalizeAtmosphere(raw)
	require.NoError(t, err)
	assert.Equal(t, cfg.Atmosphere.Len(), atmosphere.Len())
}

func TestConvert_JSONRecordPath(t *testing.T) {
	p, _ := newTestPipeline(t, bm001Settings(t), nil)
	path := filepath.Join(t.TempDir(), "nested", "bm001.json")

	sum, _, err := p.Convert(context.Background(), ConvertOptions{RecordPath: path})
	require.NoError(t, err)
	assert.Empty(t, sum.Exported)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestRun_EndToEnd(t *testing.T) {
	s := bm001Settings(t)
	archive, err := store.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { archive.Close() })

	var input *adapter.EngineInput
	p, metrics := newTestPipeline(t, s, fakeEngine(t, testutil.FakeEngineOutput, &input), WithArchive(archive))

	sum, err := p.Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, input)
	assert.Equal(t, "BM-001", input.Source)
	assert.Equal(t, 260.0, input.Flight.HeadingDeg)
	assert.InDelta(t, 32.8, input.Rocket.MassKg, 1e-9)

	assert.Equal(t, "run-0001", sum.RunID)
	assert.Equal(t, filepath.Join(s.OutputDir, "run-0001"), sum.Dir)
	assert.Equal(t, int64(1), sum.Seq)

	rec := sum.Record
	assert.Equal(t, "2025-03-14T09:30:00Z", rec.SimulationDate)
	assert.Equal(t, "fake-engine 1.0", rec.EngineVersion)
	assert.Equal(t, "BM-001", rec.Source)
	assert.Equal(t, engine.TerminationImpact, rec.Termination)
	assert.Equal(t, 12.8, rec.KeyEvents.Burnout.TimeS)
	require.NotNil(t, rec.KeyEvents.Apogee.AltitudeM)
	assert.Equal(t, 3012.5, *rec.KeyEvents.Apogee.AltitudeM)
	assert.Equal(t, 4, rec.Trajectory.Samples)
	assert.Empty(t, rec.Missing)

	for _, name := range []string{ConfigurationFile, EngineInputFile, EngineOutputFile, ResultsFile, results.TrajectoryFile} {
		assert.FileExists(t, filepath.Join(sum.Dir, name))
	}

	onDisk, err := results.ReadRecordFile(filepath.Join(sum.Dir, ResultsFile))
	require.NoError(t, err)
	assert.Equal(t, rec, onDisk)

	var req engine.Request
	data, err := os.ReadFile(filepath.Join(sum.Dir, EngineInputFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &req))
	assert.Equal(t, engine.ProtocolVersion, req.ProtocolVersion)

	archived, err := archive.ReadRun(context.Background(), "run-0001")
	require.NoError(t, err)
	assert.Equal(t, rec.ConfigurationFingerprint, archived.Fingerprint)
	assert.Equal(t, sum.Dir, archived.OutputDir)
	assert.True(t, testutil.FixedTime.Equal(archived.SimulationDate))

	for _, stage := range []string{
		observability.StageNormalize, observability.StageAssemble, observability.StageAdapt,
		observability.StageEngine, observability.StageExtract, observability.StageExport,
		observability.StageArchive,
	} {
		assert.Equal(t, 1.0, promtest.ToFloat64(metrics.StageResults.WithLabelValues(stage, observability.CodeOK)), stage)
	}
	assert.Equal(t, 4.0, promtest.ToFloat64(metrics.TrajectorySamples))
	assert.Equal(t, 3012.5, promtest.ToFloat64(metrics.ApogeeAltitude))
}

func TestSimulate_RepeatedRunsShareFingerprint(t *testing.T) {
	s := bm001Settings(t)
	archive, err := store.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { archive.Close() })
	p, _ := newTestPipeline(t, s, fakeEngine(t, testutil.FakeEngineOutput, nil), WithArchive(archive))

	cfg := testutil.BM001Config(t)
	first, err := p.Simulate(context.Background(), cfg)
	require.NoError(t, err)
	second, err := p.Simulate(context.Background(), cfg)
	require.NoError(t, err)

	assert.NotEqual(t, first.Dir, second.Dir)
	runs, err := archive.ListRuns(context.Background(), store.ListFilter{Fingerprint: first.Record.ConfigurationFingerprint})
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-0001", runs[0].ID)
	assert.Equal(t, "run-0002", runs[1].ID)
}

func TestSimulate_TimeLimitBeforeImpact(t *testing.T) {
	p, metrics := newTestPipeline(t, bm001Settings(t), fakeEngine(t, testutil.TruncatedEngineOutput, nil))

	sum, err := p.Simulate(context.Background(), testutil.BM001Config(t))
	require.NoError(t, err)

	assert.Equal(t, engine.TerminationMaxTime, sum.Record.Termination)
	assert.ElementsMatch(t, []string{results.ScalarImpactX, results.ScalarImpactY, results.ScalarImpactVelocity}, sum.Record.Missing)
	assert.Nil(t, sum.Record.Landing.DistanceM)
	assert.Zero(t, sum.Seq)
	assert.Equal(t, 3.0, promtest.ToFloat64(metrics.MissingScalars))
}

func TestSimulate_EngineFailure(t *testing.T) {
	s := bm001Settings(t)
	failing := engine.Func(func(ctx context.Context, in *adapter.EngineInput) (*engine.Output, error) {
		return nil, &engine.RunError{Code: engine.ErrCodeTimeout, Message: "engine exceeded 1s"}
	})
	p, metrics := newTestPipeline(t, s, failing)

	_, err := p.Simulate(context.Background(), testutil.BM001Config(t))
	require.Error(t, err)
	assert.True(t, engine.IsTimeout(err))
	assert.Equal(t, string(engine.ErrCodeTimeout), ErrorCode(err))
	assert.Equal(t, observability.StageEngine, StageOf(err))
	assert.FileExists(t, filepath.Join(s.OutputDir, "run-0001", EngineInputFile))
	assert.NoFileExists(t, filepath.Join(s.OutputDir, "run-0001", ResultsFile))
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.StageResults.WithLabelValues(observability.StageEngine, string(engine.ErrCodeTimeout))))
}

func TestSimulate_MissingChannel(t *testing.T) {
	doc := strings.Replace(testutil.FakeEngineOutput, `"speed": {`, `"speed_unused": {`, 1)
	require.NotEqual(t, testutil.FakeEngineOutput, doc)
	p, _ := newTestPipeline(t, bm001Settings(t), fakeEngine(t, doc, nil))

	_, err := p.Simulate(context.Background(), testutil.BM001Config(t))
	require.Error(t, err)
	assert.Equal(t, results.ErrCodeExtraction, ErrorCode(err))
	assert.Equal(t, observability.StageExtract, StageOf(err))
}

func TestReextract(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, EngineOutputFile)
	require.NoError(t, os.WriteFile(outputPath, []byte(testutil.FakeEngineOutput), 0o644))
	cfg := testutil.BM001Config(t)
	configPath := filepath.Join(dir, ConfigurationFile)
	require.NoError(t, config.WriteFile(configPath, cfg))

	p, _ := newTestPipeline(t, bm001Settings(t), nil)
	sum, err := p.Reextract(context.Background(), ReextractOptions{OutputPath: outputPath, ConfigPath: configPath})
	require.NoError(t, err)

	assert.Equal(t, dir, sum.Dir)
	assert.Equal(t, "BM-001", sum.Record.Source)
	assert.Equal(t, 12.8, sum.Record.KeyEvents.Burnout.TimeS)
	fp, err := config.Fingerprint(cfg)
	require.NoError(t, err)
	assert.Equal(t, fp, sum.Record.ConfigurationFingerprint)
	assert.FileExists(t, filepath.Join(dir, ResultsFile))
	assert.FileExists(t, filepath.Join(dir, results.TrajectoryFile))
}

func TestReextract_WithoutConfiguration(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "captured.json")
	require.NoError(t, os.WriteFile(outputPath, []byte(testutil.TruncatedEngineOutput), 0o644))
	outDir := filepath.Join(t.TempDir(), "again")

	p, _ := newTestPipeline(t, bm001Settings(t), nil)
	sum, err := p.Reextract(context.Background(), ReextractOptions{OutputPath: outputPath, Dir: outDir})
	require.NoError(t, err)

	assert.Equal(t, outDir, sum.Dir)
	assert.Empty(t, sum.Record.Source)
	assert.Empty(t, sum.Record.ConfigurationFingerprint)
	assert.FileExists(t, filepath.Join(outDir, ResultsFile))
}

func TestReextract_BadOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), EngineOutputFile)
	require.NoError(t, os.WriteFile(path, []byte(`{"engine_version": "x"`), 0o644))

	p, _ := newTestPipeline(t, bm001Settings(t), nil)
	_, err := p.Reextract(context.Background(), ReextractOptions{OutputPath: path})
	require.Error(t, err)
	assert.Equal(t, string(engine.ErrCodeBadOutput), ErrorCode(err))
}

func TestNew_DefaultEngineFromSettings(t *testing.T) {
	s := settings.Default()
	s.Engine.Command = "/opt/sixdof"
	s.Engine.Args = []string{"--quiet"}
	s.Engine.Timeout = time.Minute

	p := New(s)
	cmd, ok := p.engine.(*engine.Command)
	require.True(t, ok)
	assert.Equal(t, "/opt/sixdof", cmd.Path)
	assert.Equal(t, []string{"--quiet"}, cmd.Args)
	assert.Equal(t, time.Minute, cmd.Timeout)
	assert.Same(t, s, p.Settings())
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&series.MalformedError{Series: "thrust_curve", Message: "x"}, "MALFORMED_SERIES"},
		{fmt.Errorf("wrapped: %w", &series.MissingSliceError{}), "MISSING_SLICE"},
		{&config.ConsistencyError{Field: "f", Message: "m"}, "CONFIGURATION_CONSISTENCY"},
		{&config.SchemaError{Message: "m"}, "SCHEMA_VIOLATION"},
		{&engine.RunError{Code: engine.ErrCodeFailed}, "ENGINE_FAILED"},
		{&results.ExtractionError{Channel: "z"}, "TRAJECTORY_EXTRACTION"},
		{&settings.Error{Message: "m"}, "SETTINGS_INVALID"},
		{&StageError{Stage: "normalize", Err: &os.PathError{Op: "open", Path: "x", Err: os.ErrNotExist}}, CodeIO},
		{errors.New("boom"), CodeInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorCode(tt.err), "%v", tt.err)
	}
}

func TestFixedGenerator(t *testing.T) {
	gen := NewFixedGenerator("a", "b")
	assert.Equal(t, "a", gen.Generate())
	assert.Equal(t, "b", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

func TestUUIDv7Generator(t *testing.T) {
	var gen UUIDv7Generator
	first, second := gen.Generate(), gen.Generate()

	id, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.NotEqual(t, first, second)
}
