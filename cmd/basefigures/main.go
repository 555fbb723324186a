// Command basefigures serves the base figures uploader and offers offline
// validation and template generation for local-market spreadsheets.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// errInvalid signals a spreadsheet that failed validation; the report has already been printed.
var errInvalid = errors.New("spreadsheet is invalid")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:   "basefigures",
		Short: "Upload, edit and submit local-market base figures",
		Long: `Base Figures

Validates spreadsheets of per-market subscriber bases, lets users correct them
in an editable table and submits one list item per market.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Overload so the .env file wins over stale shell exports.
			if err := godotenv.Overload(envFile); err != nil {
				slog.Debug("no .env file loaded", "path", envFile)
			} else {
				slog.Debug("loaded .env file", "path", envFile)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", ".env", "Path to .env file")

	rootCmd.AddCommand(newServeCmd(), newValidateCmd(), newTemplateCmd())
	return rootCmd
}
