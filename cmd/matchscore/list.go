package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scoreworker/internal/localstore"
	"scoreworker/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := localstore.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(matches) == 0 {
		fmt.Fprintln(out, "No matches stored yet. Run 'matchscore score <telemetry.json>' to add one.")
		return nil
	}
	report.PrintMatchList(out, matches)
	return nil
}
