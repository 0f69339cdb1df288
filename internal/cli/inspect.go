package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anbanpillay/ASRI-PyROPS/internal/tabular"
)

// InspectResult lists the sheets of a workbook.
type InspectResult struct {
	Path   string                 `json:"path"`
	Sheets []tabular.SheetPreview `json:"sheets"`
}

// WriteText prints each sheet with its preview rows.
func (r InspectResult) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "%s: %d sheet(s)\n", r.Path, len(r.Sheets))
	for _, s := range r.Sheets {
		fmt.Fprintf(w, "\nSheet %q: %d rows x %d columns\n", s.Name, s.Rows, s.Columns)
		for _, row := range s.Preview {
			fmt.Fprintf(w, "  %s\n", strings.Join(row, "\t"))
		}
	}
	return nil
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "inspect <workbook>",
		Short: "List the sheets of a workbook",
		Long: `List every sheet of an Excel workbook with its size and first rows.

Use it to find the sheet names and header layout to put in the settings.

Examples:
  pyrops inspect data/RASAeroII.xlsx
  pyrops inspect data/wind.xlsx --rows 10 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], rows, cmd)
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "n", 5, "preview rows per sheet")

	return cmd
}

func runInspect(opts *RootOptions, path string, rows int, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if rows < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--rows must be non-negative, got %d", rows))
	}

	sheets, err := tabular.Inspect(path, rows)
	if err != nil {
		return formatter.Fail(err)
	}
	if sheets == nil {
		sheets = []tabular.SheetPreview{}
	}
	return formatter.Success(InspectResult{Path: path, Sheets: sheets})
}
