package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scoreworker/internal/localstore"
	"scoreworker/internal/report"
)

var showCmd = &cobra.Command{
	Use:   "show <hash-prefix>",
	Short: "Show a stored match by hash prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := localstore.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	m, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if m == nil {
		fmt.Fprintf(os.Stderr, "No match found with hash prefix %q\n", prefix)
		return nil
	}

	records, err := db.GetRecords(m.Hash)
	if err != nil {
		return fmt.Errorf("get records: %w", err)
	}

	out := cmd.OutOrStdout()
	report.PrintMatchSummary(out, *m)
	report.PrintScoreTable(out, records)
	report.PrintSideTable(out, records)
	return nil
}
