package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anbanpillay/ASRI-PyROPS/internal/harness"
)

// BenchmarkOptions holds flags for the benchmark command.
type BenchmarkOptions struct {
	*RootOptions
	Update    bool   // regenerate golden files
	Filter    string // scenario filter (glob pattern)
	OutputDir string // run directory root for every scenario
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string          `json:"name"`
	Pass   bool            `json:"pass"`
	RunID  string          `json:"run_id,omitempty"`
	Dir    string          `json:"dir,omitempty"`
	Checks []harness.Check `json:"checks,omitempty"`
	Errors []string        `json:"errors,omitempty"`
}

// BenchmarkResult holds the overall benchmark result.
type BenchmarkResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// WriteText prints one line per scenario and a summary.
func (r BenchmarkResult) WriteText(w io.Writer) error {
	if r.Total == 0 {
		_, err := fmt.Fprintln(w, "No scenarios found.")
		return err
	}
	for _, sc := range r.Scenarios {
		if sc.Pass {
			fmt.Fprintf(w, "✓ %s\n", sc.Name)
			continue
		}
		fmt.Fprintf(w, "✗ %s\n", sc.Name)
		for _, e := range sc.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Benchmark Summary: %d passed, %d failed, %d total\n", r.Passed, r.Failed, r.Total)
	if r.Failed == 0 {
		fmt.Fprintln(w, "✓ All scenarios passed")
	}
	return nil
}

// NewBenchmarkCommand creates the benchmark command.
func NewBenchmarkCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BenchmarkOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "benchmark <scenario-file-or-dir>",
		Short: "Run benchmark scenarios",
		Long: `Run benchmark scenarios and check each run against its expectations.

A scenario with a golden file in golden/<name>.golden next to it must also
reproduce that file exactly.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  pyrops benchmark ./benchmarks
  pyrops benchmark ./benchmarks --filter "bm001-*"
  pyrops benchmark ./benchmarks/bm001.yaml --update
  pyrops benchmark ./benchmarks --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmark(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", "", "run directory root (default: each scenario's settings)")

	return cmd
}

func runBenchmark(opts *BenchmarkOptions, path string, cmd *cobra.Command) error {
	s, err := newSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return s.finish(err)
	}
	files := []string{path}
	if info.IsDir() {
		if files, err = findScenarioFiles(path, opts.Filter); err != nil {
			return s.finish(err)
		}
	}

	result := BenchmarkResult{
		Scenarios: make([]ScenarioResult, 0, len(files)),
		Total:     len(files),
	}
	for _, file := range files {
		sr := runScenario(s, opts, file, cmd)
		result.Scenarios = append(result.Scenarios, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}
	if err := s.finish(nil); err != nil {
		return err
	}

	if result.Failed == 0 {
		return s.out.Success(result)
	}
	msg := fmt.Sprintf("%d scenario(s) failed", result.Failed)
	if opts.Format == "json" {
		if err := s.out.Error(ErrCodeBenchmarkFailed, msg, result); err != nil {
			return err
		}
	} else if err := result.WriteText(s.out.Writer); err != nil {
		return err
	}
	// Benchmark failures = exit code 1
	return NewExitError(ExitFailure, msg)
}

// findScenarioFiles finds all YAML scenario files in a directory, skipping
// golden directories.
func findScenarioFiles(dir string, filter string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "golden" && path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		// Only process .yaml and .yml files
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		// Apply filter if specified
		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// runScenario executes a single scenario and returns the result.
func runScenario(s *session, opts *BenchmarkOptions, file string, cmd *cobra.Command) ScenarioResult {
	sc, err := harness.LoadScenario(file)
	if err != nil {
		return ScenarioResult{
			Name:   filepath.Base(file),
			Errors: []string{fmt.Sprintf("failed to load scenario: %v", err)},
		}
	}

	s.out.VerboseLog("Running scenario %s", sc.Name)
	result, err := harness.Run(cmd.Context(), sc, harness.Options{
		OutputDir: opts.OutputDir,
		Logger:    s.logger,
		Metrics:   s.metrics,
	})
	if err != nil {
		code, _ := MapError(err)
		return ScenarioResult{
			Name:   sc.Name,
			Errors: []string{fmt.Sprintf("execution failed [%s]: %v", code, err)},
		}
	}

	sr := ScenarioResult{
		Name:   sc.Name,
		Pass:   result.Pass,
		RunID:  result.RunID,
		Dir:    result.Dir,
		Checks: result.Checks,
		Errors: result.Errors,
	}

	goldenPath := goldenFilePath(file)
	if opts.Update {
		if err := updateGoldenFile(result, goldenPath); err != nil {
			sr.Pass = false
			sr.Errors = append(sr.Errors, err.Error())
		}
		return sr
	}
	if _, err := os.Stat(goldenPath); os.IsNotExist(err) {
		// No golden file - expectation checks only
		return sr
	}
	match, err := compareWithGolden(result, goldenPath)
	switch {
	case err != nil:
		sr.Pass = false
		sr.Errors = append(sr.Errors, fmt.Sprintf("golden comparison failed: %v", err))
	case !match:
		sr.Pass = false
		sr.Errors = append(sr.Errors, "checks do not match golden file (run with --update to regenerate)")
	}
	return sr
}

// goldenFilePath returns the path to the golden file for a scenario.
func goldenFilePath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

// updateGoldenFile writes the current snapshot as the golden file.
func updateGoldenFile(result *harness.Result, goldenPath string) error {
	if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	data, err := harness.MarshalSnapshot(result)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(goldenPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// compareWithGolden compares the result snapshot against the golden file.
func compareWithGolden(result *harness.Result, goldenPath string) (bool, error) {
	golden, err := os.ReadFile(goldenPath)
	if err != nil {
		return false, fmt.Errorf("failed to read golden file: %w", err)
	}
	current, err := harness.MarshalSnapshot(result)
	if err != nil {
		return false, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return bytes.Equal(golden, current), nil
}
