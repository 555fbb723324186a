package main

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/basefigures/internal/decode"
	"github.com/spf13/cobra"
)

func newTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template [out.xlsx]",
		Short: "Write an empty spreadsheet with the expected columns",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := "base-figures-template.xlsx"
			if len(args) == 1 {
				out = args[0]
			}
			if err := writeTemplateFile(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
}

func writeTemplateFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := decode.WriteTemplate(f); err != nil {
		f.Close()
		return fmt.Errorf("write template: %w", err)
	}
	return f.Close()
}
