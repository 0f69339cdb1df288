package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/anbanpillay/ASRI-PyROPS/internal/store"
)

var errNoArchive = errors.New("no run archive configured")

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Fingerprint string
	Limit       int
}

// ArchivedRun is the listing form of an archived run.
type ArchivedRun struct {
	ID             string   `json:"id"`
	Seq            int64    `json:"seq"`
	Fingerprint    string   `json:"fingerprint"`
	Source         string   `json:"source"`
	SimulationDate string   `json:"simulation_date"`
	EngineVersion  string   `json:"engine_version"`
	Termination    string   `json:"termination"`
	ApogeeM        *float64 `json:"apogee_m"`
	FlightTimeS    *float64 `json:"flight_time_s"`
	Missing        []string `json:"missing"`
	OutputDir      string   `json:"output_dir"`
}

func newArchivedRun(r store.Run) ArchivedRun {
	return ArchivedRun{
		ID:             r.ID,
		Seq:            r.Seq,
		Fingerprint:    r.Fingerprint,
		Source:         r.Source,
		SimulationDate: r.SimulationDate.UTC().Format(time.RFC3339),
		EngineVersion:  r.EngineVersion,
		Termination:    r.Termination,
		ApogeeM:        r.ApogeeM,
		FlightTimeS:    r.FlightTimeS,
		Missing:        r.Missing,
		OutputDir:      r.OutputDir,
	}
}

// RunsResult lists archived runs, oldest first.
type RunsResult struct {
	Runs []ArchivedRun `json:"runs"`
}

// WriteText prints one line per run.
func (r RunsResult) WriteText(w io.Writer) error {
	if len(r.Runs) == 0 {
		_, err := fmt.Fprintln(w, "No archived runs.")
		return err
	}
	for _, run := range r.Runs {
		fp := run.Fingerprint
		if len(fp) > 12 {
			fp = fp[:12]
		}
		fmt.Fprintf(w, "#%-4d %s  %s  %s  %-8s apogee %s m  flight %s s",
			run.Seq, run.SimulationDate, run.ID, fp, orNA(run.Termination),
			number(run.ApogeeM), number(run.FlightTimeS))
		if len(run.Missing) > 0 {
			fmt.Fprintf(w, "  missing %s", strings.Join(run.Missing, ","))
		}
		fmt.Fprintln(w)
	}
	return nil
}

// RunDetail is one archived run with its results record.
type RunDetail struct {
	ArchivedRun
	Record json.RawMessage `json:"record"`
}

// WriteText prints the stored results record.
func (r RunDetail) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "Run #%d %s (%s)\n", r.Seq, r.ID, r.OutputDir)
	_, err := fmt.Fprintln(w, strings.TrimSpace(string(r.Record)))
	return err
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List archived runs",
		Long: `List the runs recorded in the archive named by archive_path, oldest
first. Runs of the same configuration share a fingerprint.

With a run id, print that run's results record.

Examples:
  pyrops runs --settings bm001.yaml
  pyrops runs --fingerprint 3f2a... --limit 5
  pyrops runs 0190c0de-... --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return runRuns(opts, id, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Fingerprint, "fingerprint", "", "only runs of this configuration fingerprint")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "only the newest n runs (0 = all)")

	return cmd
}

func runRuns(opts *RunsOptions, id string, cmd *cobra.Command) error {
	s, err := newSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	st, err := s.loadSettings()
	if err != nil {
		return s.finish(err)
	}
	archive, err := s.openArchive(st)
	if err != nil {
		return s.finish(err)
	}
	if archive == nil {
		if err := s.out.Error(ErrCodeNoArchive, errNoArchive.Error()+" (set archive_path in the settings)", nil); err != nil {
			return err
		}
		return WrapExitError(ExitCommandError, ErrCodeNoArchive, errNoArchive)
	}
	defer archive.Close()

	ctx := cmd.Context()
	if id != "" {
		run, err := archive.ReadRun(ctx, id)
		if err != nil {
			return s.out.Fail(err)
		}
		return s.out.SuccessForRun(run.ID, RunDetail{ArchivedRun: newArchivedRun(run), Record: run.Record})
	}

	runs, err := archive.ListRuns(ctx, store.ListFilter{Fingerprint: opts.Fingerprint, Limit: opts.Limit})
	if err != nil {
		return s.out.Fail(err)
	}
	result := RunsResult{Runs: make([]ArchivedRun, 0, len(runs))}
	for _, r := range runs {
		result.Runs = append(result.Runs, newArchivedRun(r))
	}
	return s.out.Success(result)
}
