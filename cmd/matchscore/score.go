package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"scoreworker/internal/engine"
	"scoreworker/internal/events"
	"scoreworker/internal/localstore"
	"scoreworker/internal/match"
	"scoreworker/internal/report"
)

var (
	scoreNoSave bool
	scoreJSON   bool
)

var scoreCmd = &cobra.Command{
	Use:   "score <telemetry.json>",
	Short: "Score a telemetry file and store the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().BoolVar(&scoreNoSave, "no-save", false, "do not store the result")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "print records as JSON instead of tables")
}

func runScore(cmd *cobra.Command, args []string) error {
	path := args[0]
	logger := stderrLogger()

	tables, weights, err := loadScoringInputs()
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open telemetry: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	in := io.TeeReader(f, hasher)

	res, err := engine.Run(cmd.Context(), events.NewDecoder(in), engine.Options{
		Tables:  tables,
		Weights: weights,
		OnWarning: func(w match.Warning) {
			logger.Warnf("%s", w)
		},
	})
	if err != nil {
		return fmt.Errorf("score %s: %w", path, err)
	}
	// The decoder may stop short of trailing whitespace; hash the whole file.
	if _, err := io.Copy(io.Discard, in); err != nil {
		return fmt.Errorf("read telemetry: %w", err)
	}

	summary := localstore.MatchSummary{
		Hash:     hex.EncodeToString(hasher.Sum(nil)),
		Source:   filepath.Base(path),
		ScoredAt: time.Now().UTC().Format(time.RFC3339),
		Events:   res.Events,
		Warnings: res.Warnings,
		Players:  len(res.Order),
	}
	records := res.Ordered()

	if !scoreNoSave {
		if err := saveMatch(summary, records); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if scoreJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	report.PrintMatchSummary(out, summary)
	report.PrintScoreTable(out, records)
	return nil
}

func saveMatch(summary localstore.MatchSummary, records []match.Record) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := localstore.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if err := db.SaveMatch(summary, records); err != nil {
		return fmt.Errorf("save match: %w", err)
	}
	return nil
}
