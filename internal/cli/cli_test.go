package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbanpillay/ASRI-PyROPS/internal/engine"
	"github.com/anbanpillay/ASRI-PyROPS/internal/pipeline"
	"github.com/anbanpillay/ASRI-PyROPS/internal/results"
	"github.com/anbanpillay/ASRI-PyROPS/internal/testutil"
)

// executeCommand runs the root command with args and captures its output.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// response is CLIResponse with the payload left undecoded.
type response struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *CLIError       `json:"error"`
	RunID  string          `json:"run_id"`
}

func decodeResponse(t *testing.T, stdout string, data any) response {
	t.Helper()
	var resp response
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp), stdout)
	if data != nil && resp.Data != nil {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp
}

type workspace struct {
	dir          string
	settings     string
	inputDir     string
	outputDir    string
	engineOutput string
}

// newWorkspace writes the BM-001 workbooks, a captured engine output and a
// settings file pointing at them. archive enables the run archive.
func newWorkspace(t *testing.T, archive bool) workspace {
	t.Helper()
	dir := t.TempDir()
	ws := workspace{
		dir:          dir,
		settings:     filepath.Join(dir, "settings.yaml"),
		inputDir:     filepath.Join(dir, "data"),
		outputDir:    filepath.Join(dir, "out"),
		engineOutput: filepath.Join(dir, "engine_output.json"),
	}
	require.NoError(t, os.MkdirAll(ws.inputDir, 0o755))
	testutil.WriteBM001Workbooks(t, ws.inputDir)
	require.NoError(t, os.WriteFile(ws.engineOutput, []byte(testutil.FakeEngineOutput), 0o644))

	body := fmt.Sprintf("input_dir: %q\noutput_dir: %q\n", ws.inputDir, ws.outputDir)
	if archive {
		body += fmt.Sprintf("archive_path: %q\n", filepath.Join(dir, "runs.db"))
	}
	require.NoError(t, os.WriteFile(ws.settings, []byte(body), 0o644))
	return ws
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, code, exitErr.Code)
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "pyrops", cmd.Use)

	for _, name := range []string{"inspect", "convert", "validate", "simulate", "extract", "runs", "benchmark"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err, "Command %s should exist", name)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("settings"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("metrics-file"))
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := executeCommand(t, "--format", "xml", "inspect", "x.xlsx")
	requireExitCode(t, err, ExitCommandError)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteBM001Workbooks(t, dir)
	path := filepath.Join(dir, testutil.BM001AeroFile)

	stdout, _, err := executeCommand(t, "--format", "json", "inspect", path, "--rows", "2")
	require.NoError(t, err)

	var result InspectResult
	resp := decodeResponse(t, stdout, &result)
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, result.Sheets, 1)
	assert.Equal(t, testutil.BM001AeroSheet, result.Sheets[0].Name)
	assert.Equal(t, 7, result.Sheets[0].Rows)
	assert.Equal(t, 4, result.Sheets[0].Columns)
	require.Len(t, result.Sheets[0].Preview, 2)
	assert.Equal(t, "Mach", result.Sheets[0].Preview[0][0])

	stdout, _, err = executeCommand(t, "inspect", path, "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, `Sheet "RASAeroII": 7 rows x 4 columns`)
}

func TestInspect_MissingWorkbook(t *testing.T) {
	stdout, _, err := executeCommand(t, "inspect", filepath.Join(t.TempDir(), "absent.xlsx"))
	requireExitCode(t, err, ExitCommandError)
	assert.Contains(t, stdout, "Error [E005]")
}

func TestConvert(t *testing.T) {
	ws := newWorkspace(t, false)
	exportDir := filepath.Join(ws.dir, "tables")

	stdout, _, err := executeCommand(t, "--settings", ws.settings, "convert", "--export-dir", exportDir)
	require.NoError(t, err)

	record := filepath.Join(ws.outputDir, pipeline.ConfigurationFile)
	assert.Contains(t, stdout, "✓ Configuration written to "+record)
	assert.Contains(t, stdout, "Burn time:        12.80 s")
	assert.Contains(t, stdout, "Peak thrust:      6038.0 N")
	assert.Contains(t, stdout, "Wet / dry mass:   65.90 / 37.80 kg")
	assert.FileExists(t, record)
	assert.FileExists(t, filepath.Join(exportDir, pipeline.ExportThrustFile))
	assert.FileExists(t, filepath.Join(exportDir, pipeline.ExportMassPropertiesFile))
}

func TestConvert_JSONRecordPath(t *testing.T) {
	ws := newWorkspace(t, false)
	out := filepath.Join(ws.dir, "records", "bm001.json")

	stdout, _, err := executeCommand(t, "--settings", ws.settings, "--format", "json", "convert", "-o", out)
	require.NoError(t, err)

	var sum pipeline.ConvertSummary
	decodeResponse(t, stdout, &sum)
	assert.Equal(t, out, sum.RecordPath)
	assert.Equal(t, "BM-001", sum.Source)
	assert.Len(t, sum.Fingerprint, 64)
	assert.Empty(t, sum.Exported)
	assert.FileExists(t, out)
}

func TestConvert_MalformedTable(t *testing.T) {
	ws := newWorkspace(t, false)
	testutil.WriteWorkbook(t, ws.inputDir, testutil.BM001WindFile, testutil.Sheet{
		Name: testutil.BM001DefaultSheet,
		Rows: [][]any{
			{"altitude (m)", "magnitude (m/s)", "bearing (degrees)"},
			{0, 4.2, 240},
			{1000, "calm", 250},
		},
	})

	stdout, _, err := executeCommand(t, "--settings", ws.settings, "--format", "json", "convert")
	requireExitCode(t, err, ExitFailure)

	resp := decodeResponse(t, stdout, nil)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeMalformed, resp.Error.Code)
	details, ok := resp.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "normalize", details["stage"])
}

func TestConvert_InvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dirr: out\n"), 0o644))

	stdout, _, err := executeCommand(t, "--settings", path, "convert")
	requireExitCode(t, err, ExitCommandError)
	assert.Contains(t, stdout, "Error [E201]")
}

func TestValidate(t *testing.T) {
	ws := newWorkspace(t, false)
	_, _, err := executeCommand(t, "--settings", ws.settings, "convert")
	require.NoError(t, err)
	record := filepath.Join(ws.outputDir, pipeline.ConfigurationFile)

	stdout, _, err := executeCommand(t, "--format", "json", "validate", record)
	require.NoError(t, err)
	var result ValidationResult
	decodeResponse(t, stdout, &result)
	assert.True(t, result.Valid)
	assert.Equal(t, "BM-001", result.Source)
	assert.Greater(t, result.RocketMass, 0.0)

	stdout, _, err = executeCommand(t, "validate", record)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ "+record+" is valid (source BM-001")
}

func TestValidate_SchemaViolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schema_version: \"1\"\nsource: BM-001\n"), 0o644))

	stdout, _, err := executeCommand(t, "--format", "json", "validate", path)
	requireExitCode(t, err, ExitFailure)
	resp := decodeResponse(t, stdout, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeSchema, resp.Error.Code)
}

func TestSimulate_ReplayArchivesRun(t *testing.T) {
	ws := newWorkspace(t, true)
	metricsFile := filepath.Join(ws.dir, "pyrops.prom")

	stdout, _, err := executeCommand(t,
		"--settings", ws.settings, "--format", "json", "--metrics-file", metricsFile,
		"simulate", "--engine-output", ws.engineOutput)
	require.NoError(t, err)

	var sum pipeline.RunSummary
	resp := decodeResponse(t, stdout, &sum)
	assert.Equal(t, "ok", resp.Status)
	require.NotEmpty(t, resp.RunID)
	assert.Equal(t, resp.RunID, sum.RunID)
	assert.Equal(t, int64(1), sum.Seq)
	assert.Equal(t, engine.TerminationImpact, sum.Record.Termination)
	assert.Equal(t, filepath.Join(ws.outputDir, sum.RunID), sum.Dir)
	assert.FileExists(t, filepath.Join(sum.Dir, pipeline.ResultsFile))
	assert.FileExists(t, filepath.Join(sum.Dir, results.TrajectoryFile))

	metrics, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "pyrops_stage_duration_seconds")
	assert.Contains(t, string(metrics), "pyrops_apogee_altitude_meters 3012.5")

	// A second run of the same record shares the fingerprint.
	record := filepath.Join(sum.Dir, pipeline.ConfigurationFile)
	stdout, _, err = executeCommand(t, "--settings", ws.settings, "simulate", record, "--engine-output", ws.engineOutput)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Apogee:            3012.5 m at 24.2 s")
	assert.Contains(t, stdout, "Landing distance:  500 m")
	assert.Contains(t, stdout, "Archived as:       #2")

	stdout, _, err = executeCommand(t, "--settings", ws.settings, "--format", "json", "runs")
	require.NoError(t, err)
	var runs RunsResult
	decodeResponse(t, stdout, &runs)
	require.Len(t, runs.Runs, 2)
	assert.Equal(t, sum.RunID, runs.Runs[0].ID)
	assert.Equal(t, runs.Runs[0].Fingerprint, runs.Runs[1].Fingerprint)
	assert.Equal(t, []string{}, runs.Runs[0].Missing)

	stdout, _, err = executeCommand(t, "--settings", ws.settings, "runs", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "#2 ")
	assert.NotContains(t, stdout, sum.RunID)

	stdout, _, err = executeCommand(t, "--settings", ws.settings, "--format", "json", "runs", sum.RunID)
	require.NoError(t, err)
	var detail RunDetail
	resp = decodeResponse(t, stdout, &detail)
	assert.Equal(t, sum.RunID, resp.RunID)
	var rec results.Record
	require.NoError(t, json.Unmarshal(detail.Record, &rec))
	assert.Equal(t, sum.Record, rec)
}

func TestSimulate_NoEngineConfigured(t *testing.T) {
	ws := newWorkspace(t, false)

	stdout, _, err := executeCommand(t, "--settings", ws.settings, "--format", "json", "simulate")
	requireExitCode(t, err, ExitFailure)

	resp := decodeResponse(t, stdout, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeEngineFailed, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "no engine command configured")
}

func TestExtract(t *testing.T) {
	ws := newWorkspace(t, false)
	_, _, err := executeCommand(t, "--settings", ws.settings, "convert")
	require.NoError(t, err)
	dir := filepath.Join(ws.dir, "reextracted")

	stdout, _, err := executeCommand(t, "--settings", ws.settings, "--format", "json",
		"extract", ws.engineOutput, "--config", filepath.Join(ws.outputDir, pipeline.ConfigurationFile), "--dir", dir)
	require.NoError(t, err)

	var sum pipeline.RunSummary
	decodeResponse(t, stdout, &sum)
	assert.Equal(t, "BM-001", sum.Record.Source)
	assert.Equal(t, 12.8, sum.Record.KeyEvents.Burnout.TimeS)
	assert.Len(t, sum.Record.ConfigurationFingerprint, 64)
	assert.FileExists(t, filepath.Join(dir, pipeline.ResultsFile))
}

func TestExtract_UnrecognizedChannel(t *testing.T) {
	ws := newWorkspace(t, false)
	bad := filepath.Join(ws.dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"engine_version": "x", "termination": "impact", "scalars": {},
  "channels": {"z": 5, "speed": [], "acceleration": [], "x": [], "y": []}}`), 0o644))

	stdout, _, err := executeCommand(t, "--settings", ws.settings, "extract", bad)
	requireExitCode(t, err, ExitFailure)
	assert.Contains(t, stdout, "Error [E214]")
}

func TestRuns_NoArchive(t *testing.T) {
	ws := newWorkspace(t, false)

	stdout, _, err := executeCommand(t, "--settings", ws.settings, "runs")
	requireExitCode(t, err, ExitCommandError)
	assert.Contains(t, stdout, "Error [E008]")
}

func TestRuns_Empty(t *testing.T) {
	ws := newWorkspace(t, true)

	stdout, _, err := executeCommand(t, "--settings", ws.settings, "runs")
	require.NoError(t, err)
	assert.Equal(t, "No archived runs.\n", stdout)

	stdout, _, err = executeCommand(t, "--settings", ws.settings, "runs", "no-such-run")
	requireExitCode(t, err, ExitFailure)
	assert.Contains(t, stdout, "Error [E222]")
}

const passingScenario = `name: bm001-replay
description: BM-001 against a captured engine output
input_dir: data
engine_output: engine_output.json
expectations:
  - type: result
    field: key_events.apogee.altitude_m
    value: 3000
    tolerance: 0.01
    relative: true
  - type: termination
    equals: impact
`

const failingScenario = `name: bm001-wrong
description: BM-001 against an apogee it does not reach
input_dir: data
engine_output: engine_output.json
expectations:
  - type: result
    field: key_events.apogee.altitude_m
    value: 4000
    tolerance: 10
`

func TestBenchmark(t *testing.T) {
	ws := newWorkspace(t, false)
	require.NoError(t, os.WriteFile(filepath.Join(ws.dir, "bm001-replay.yaml"), []byte(passingScenario), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(ws.dir, "bm001-wrong.yml"), []byte(failingScenario), 0o644))
	runs := filepath.Join(ws.dir, "runs")

	t.Run("filter to passing", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "benchmark", ws.dir, "--filter", "*-replay", "-o", runs)
		require.NoError(t, err)
		assert.Contains(t, stdout, "✓ bm001-replay")
		assert.Contains(t, stdout, "1 passed, 0 failed, 1 total")
		assert.DirExists(t, filepath.Join(runs, "benchmark-bm001-replay"))
	})

	t.Run("all with a failure", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "--format", "json", "benchmark", ws.dir, "-o", runs)
		requireExitCode(t, err, ExitFailure)

		resp := decodeResponse(t, stdout, nil)
		require.NotNil(t, resp.Error)
		assert.Equal(t, ErrCodeBenchmarkFailed, resp.Error.Code)
		assert.Equal(t, "1 scenario(s) failed", resp.Error.Message)
	})

	t.Run("golden update then compare", func(t *testing.T) {
		scenario := filepath.Join(ws.dir, "bm001-replay.yaml")
		_, _, err := executeCommand(t, "benchmark", scenario, "--update", "-o", runs)
		require.NoError(t, err)
		golden := filepath.Join(ws.dir, "golden", "bm001-replay.golden")
		assert.FileExists(t, golden)

		_, _, err = executeCommand(t, "benchmark", scenario, "-o", runs)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(golden, []byte("{}\n"), 0o644))
		stdout, _, err := executeCommand(t, "benchmark", scenario, "-o", runs)
		requireExitCode(t, err, ExitFailure)
		assert.Contains(t, stdout, "checks do not match golden file")
	})
}

func TestBenchmark_MissingPath(t *testing.T) {
	stdout, _, err := executeCommand(t, "benchmark", filepath.Join(t.TempDir(), "nope"))
	requireExitCode(t, err, ExitCommandError)
	assert.Contains(t, stdout, "Error [E005]")
}

func TestFindScenarioFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.yml", "notes.txt", "golden/a.yaml", "nested/c.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}

	files, err := findScenarioFiles(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "b.yml"),
		filepath.Join(dir, "nested", "c.yaml"),
	}, files)

	files, err = findScenarioFiles(dir, "[ab]")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	_, err = findScenarioFiles(dir, "[")
	assert.ErrorContains(t, err, "invalid filter pattern")
}
