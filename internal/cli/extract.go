package cli

import (
	"github.com/spf13/cobra"

	"github.com/anbanpillay/ASRI-PyROPS/internal/pipeline"
)

// ExtractOptions holds flags for the extract command.
type ExtractOptions struct {
	*RootOptions
	Config string // configuration record the output was produced from
	Dir    string // results directory
}

// NewExtractCommand creates the extract command.
func NewExtractCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExtractOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "extract <engine-output>",
		Short: "Re-extract results from a captured engine output",
		Long: `Decode a captured engine output again and rewrite results.json and
trajectory.csv without running the engine.

Pass --config to carry the configuration's source, fingerprint and burn
time into the results record.

Examples:
  pyrops extract out/run-0001/engine_output.json
  pyrops extract engine_output.json --config configuration.yaml --dir reextracted`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "configuration record the output was produced from")
	cmd.Flags().StringVarP(&opts.Dir, "dir", "d", "", "results directory (default: the output's directory)")

	return cmd
}

func runExtract(opts *ExtractOptions, outputPath string, cmd *cobra.Command) error {
	s, err := newSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	st, err := s.loadSettings()
	if err != nil {
		return s.finish(err)
	}

	sum, err := s.pipeline(st).Reextract(cmd.Context(), pipeline.ReextractOptions{
		OutputPath: outputPath,
		ConfigPath: opts.Config,
		Dir:        opts.Dir,
	})
	if err := s.finish(err); err != nil {
		return err
	}
	return s.out.SuccessForRun(sum.RunID, RunResult{sum})
}
