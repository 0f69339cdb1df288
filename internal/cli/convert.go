package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/anbanpillay/ASRI-PyROPS/internal/pipeline"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	Out       string // configuration record path
	ExportDir string // normalized CSV directory
}

// ConvertResult is the conversion summary.
type ConvertResult struct {
	*pipeline.ConvertSummary
}

// WriteText prints the summary the way the conversion report reads.
func (r ConvertResult) WriteText(w io.Writer) error {
	s := r.ConvertSummary
	fmt.Fprintf(w, "✓ Configuration written to %s\n", s.RecordPath)
	fmt.Fprintf(w, "  Source:           %s\n", s.Source)
	fmt.Fprintf(w, "  Fingerprint:      %s\n", s.Fingerprint)
	fmt.Fprintf(w, "  Burn time:        %.2f s\n", s.BurnTimeS)
	fmt.Fprintf(w, "  Peak thrust:      %.1f N\n", s.PeakThrustN)
	fmt.Fprintf(w, "  Total impulse:    %.1f N·s\n", s.TotalImpulseNs)
	fmt.Fprintf(w, "  Propellant mass:  %.2f kg\n", s.PropellantMassKg)
	fmt.Fprintf(w, "  Wet / dry mass:   %.2f / %.2f kg\n", s.WetMassKg, s.DryMassKg)
	for _, p := range s.Exported {
		fmt.Fprintf(w, "  Exported:         %s\n", p)
	}
	return nil
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Build the configuration record from the source tables",
		Long: `Read and normalize the five source tables named in the settings, derive
the motor and mass quantities, validate the result and write the
configuration record.

The record format follows the file extension (.yaml, .yml or .json).

Examples:
  pyrops convert --settings bm001.yaml
  pyrops convert --out bm001.json --export-dir out/tables`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "configuration record path (default <output_dir>/configuration.yaml)")
	cmd.Flags().StringVar(&opts.ExportDir, "export-dir", "", "also write the normalized tables as CSV into this directory")

	return cmd
}

func runConvert(opts *ConvertOptions, cmd *cobra.Command) error {
	s, err := newSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	st, err := s.loadSettings()
	if err != nil {
		return s.finish(err)
	}

	sum, _, err := s.pipeline(st).Convert(cmd.Context(), pipeline.ConvertOptions{
		RecordPath: opts.Out,
		ExportDir:  opts.ExportDir,
	})
	if err := s.finish(err); err != nil {
		return err
	}
	return s.out.Success(ConvertResult{sum})
}
