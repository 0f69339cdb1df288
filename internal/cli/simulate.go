package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anbanpillay/ASRI-PyROPS/internal/config"
	"github.com/anbanpillay/ASRI-PyROPS/internal/engine"
	"github.com/anbanpillay/ASRI-PyROPS/internal/pipeline"
)

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	EngineOutput string // captured engine output to replay
}

// RunResult describes a completed run.
type RunResult struct {
	*pipeline.RunSummary
}

// WriteText prints the key events of the run.
func (r RunResult) WriteText(w io.Writer) error {
	rec := r.Record
	fmt.Fprintf(w, "✓ Run %s written to %s\n", r.RunID, r.Dir)
	fmt.Fprintf(w, "  Engine:            %s\n", orNA(rec.EngineVersion))
	fmt.Fprintf(w, "  Termination:       %s\n", orNA(rec.Termination))
	fmt.Fprintf(w, "  Rail departure:    %s m/s at %s s\n",
		number(rec.KeyEvents.RailDeparture.VelocityMS), number(rec.KeyEvents.RailDeparture.TimeS))
	fmt.Fprintf(w, "  Burnout:           %s s\n", strconv.FormatFloat(rec.KeyEvents.Burnout.TimeS, 'f', -1, 64))
	fmt.Fprintf(w, "  Apogee:            %s m at %s s\n",
		number(rec.KeyEvents.Apogee.AltitudeM), number(rec.KeyEvents.Apogee.TimeS))
	fmt.Fprintf(w, "  Max speed:         %s m/s (Mach %s)\n",
		number(rec.MaximumValues.SpeedMS), number(rec.MaximumValues.Mach))
	fmt.Fprintf(w, "  Landing distance:  %s m\n", number(rec.Landing.DistanceM))
	fmt.Fprintf(w, "  Flight time:       %s s\n", number(rec.Landing.FlightTimeS))
	fmt.Fprintf(w, "  Trajectory:        %d samples in %s\n", rec.Trajectory.Samples, rec.Trajectory.File)
	if len(rec.Missing) > 0 {
		fmt.Fprintf(w, "  Missing:           %s\n", strings.Join(rec.Missing, ", "))
	}
	if r.Seq > 0 {
		fmt.Fprintf(w, "  Archived as:       #%d\n", r.Seq)
	}
	return nil
}

// number formats an optional value, "n/a" when absent.
func number(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simulate [record]",
		Short: "Run one flight simulation",
		Long: `Adapt a configuration to the engine's input, run the engine once and
extract the results.

Without a record the configuration is built from the source tables named
in the settings. Artifacts are written to <output_dir>/<run_id>/ and the
run is archived when archive_path is set.

Examples:
  pyrops simulate --settings bm001.yaml
  pyrops simulate out/configuration.yaml
  pyrops simulate --engine-output captured/engine_output.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record := ""
			if len(args) == 1 {
				record = args[0]
			}
			return runSimulate(opts, record, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.EngineOutput, "engine-output", "", "replay a captured engine output instead of running the engine")

	return cmd
}

func runSimulate(opts *SimulateOptions, record string, cmd *cobra.Command) error {
	s, err := newSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	st, err := s.loadSettings()
	if err != nil {
		return s.finish(err)
	}

	var extra []pipeline.Option
	if opts.EngineOutput != "" {
		s.out.VerboseLog("Replaying engine output %s", opts.EngineOutput)
		extra = append(extra, pipeline.WithEngine(&engine.Replay{Path: opts.EngineOutput}))
	}
	archive, err := s.openArchive(st)
	if err != nil {
		return s.finish(err)
	}
	if archive != nil {
		defer archive.Close()
		extra = append(extra, pipeline.WithArchive(archive))
	}
	p := s.pipeline(st, extra...)

	ctx := cmd.Context()
	var cfg *config.Configuration
	if record != "" {
		s.out.VerboseLog("Loading configuration %s", record)
		cfg, err = config.ReadFile(record)
	} else {
		cfg, err = p.Prepare(ctx)
	}
	if err != nil {
		return s.finish(err)
	}

	sum, err := p.Simulate(ctx, cfg)
	if err := s.finish(err); err != nil {
		return err
	}
	return s.out.SuccessForRun(sum.RunID, RunResult{sum})
}
