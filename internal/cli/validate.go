package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/anbanpillay/ASRI-PyROPS/internal/config"
)

// ValidationResult describes a valid configuration record.
type ValidationResult struct {
	Path        string  `json:"path"`
	Valid       bool    `json:"valid"`
	Source      string  `json:"source"`
	Fingerprint string  `json:"fingerprint"`
	RocketMass  float64 `json:"rocket_mass_kg"`
}

// WriteText prints a one-line verdict.
func (r ValidationResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "✓ %s is valid (source %s, fingerprint %s)\n", r.Path, r.Source, r.Fingerprint)
	return err
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <record>",
		Short: "Validate a configuration record",
		Long: `Validate a configuration record against the record schema, then rebuild
it and check that its values describe one consistent vehicle and launch.

Exit codes:
  0 - Record is valid
  1 - Schema or consistency violation
  2 - Command error (unreadable file, etc.)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	formatter.VerboseLog("Validating %s as %s", path, config.FormatForPath(path))
	cfg, err := config.ReadFile(path)
	if err != nil {
		return formatter.Fail(err)
	}
	fingerprint, err := config.Fingerprint(cfg)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(ValidationResult{
		Path:        path,
		Valid:       true,
		Source:      cfg.Source,
		Fingerprint: fingerprint,
		RocketMass:  cfg.RocketMassKg(),
	})
}
