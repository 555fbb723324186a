package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/JonMunkholm/basefigures/internal/core"
	"github.com/JonMunkholm/basefigures/internal/decode"
	"github.com/JonMunkholm/basefigures/internal/logging"
	"github.com/JonMunkholm/basefigures/internal/submit"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate <file.xlsx>",
		Short: "Check a spreadsheet without uploading it",
		Long: `Checks every row of the first sheet and prints one line per offending row.
Exits with status 1 when the file cannot be read or any row is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Keep stdout for the report.
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), "warn", "text"))
			return runValidate(cmd.Context(), cmd.OutOrStdout(), args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}

type validateOutput struct {
	File    string                 `json:"file"`
	Rows    int                    `json:"rows"`
	Valid   bool                   `json:"valid"`
	Errors  []core.ValidationError `json:"errors"`
	Summary []core.ColumnSummary   `json:"summary,omitempty"`
}

// runValidate prints the report for path to w. It returns errInvalid for a
// readable but invalid sheet.
func runValidate(ctx context.Context, w io.Writer, path string, asJSON bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	service := core.NewService(decode.NewExcel(), submit.NewLog())
	grid, err := service.Decode(ctx, filepath.Base(path), data)
	if err != nil {
		fmt.Fprintln(w, core.FormatUserError(err))
		return err
	}

	report := core.Validate(grid)
	var summary []core.ColumnSummary
	if report.Valid {
		summary = core.Summarize(core.FromGrid(grid))
	}

	if asJSON {
		errs := report.Errors
		if errs == nil {
			errs = []core.ValidationError{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(validateOutput{
			File:    path,
			Rows:    grid.DataRows(),
			Valid:   report.Valid,
			Errors:  errs,
			Summary: summary,
		}); err != nil {
			return err
		}
	} else if report.Valid {
		fmt.Fprintf(w, "%s: %d rows valid\n\n", path, grid.DataRows())
		printSummary(w, summary)
	} else {
		fmt.Fprintln(w, report.Message())
	}

	if !report.Valid {
		return errInvalid
	}
	return nil
}

func printSummary(w io.Writer, summary []core.ColumnSummary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Column\tTotal\tMean\tMin\tMax\t")
	for _, s := range summary {
		fmt.Fprintf(tw, "%s\t%.0f\t%.1f\t%.0f\t%.0f\t\n", s.Label, s.Sum, s.Mean, s.Min, s.Max)
	}
	tw.Flush()
}
