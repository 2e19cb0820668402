package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/investigator-tracker/internal/app"
	"github.com/jwebster45206/investigator-tracker/pkg/sheet"
)

func newExportCmd(o *overrides) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the saved investigator sheets",
		Long:  "export loads the saved investigators from the configured storage and prints their sheets as markdown, or the stored records with --json. Nothing is written back.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, logOut, err := setup(cmd, *o)
			if err != nil {
				return err
			}
			defer logOut.Close()

			a, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.Store.Close()

			if err := a.Load(cmd.Context()); err != nil {
				return fmt.Errorf("load investigators: %w", err)
			}
			investigators := a.Roster.Investigators()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(investigators)
			}

			if len(investigators) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No investigators saved.")
				return err
			}
			sheets := make([]string, 0, len(investigators))
			for _, inv := range investigators {
				sheets = append(sheets, sheet.Markdown(inv))
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), strings.Join(sheets, "\n---\n\n"))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored records as JSON")
	return cmd
}
