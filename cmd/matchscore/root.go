package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"scoreworker/internal/logging"
	"scoreworker/internal/reference"
	"scoreworker/internal/scoring"
)

var (
	dbPath        string
	logLevel      string
	referencePath string
	weightsPath   string
)

var rootCmd = &cobra.Command{
	Use:   "matchscore",
	Short: "Match telemetry scoring tool",
	Long:  "Score tactical shooter match telemetry and compare player performance.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.SetLevel(logLevel); err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".matchscore", "scores.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&referencePath, "reference", "reference.yaml", "agent and weapon reference tables")
	rootCmd.PersistentFlags().StringVar(&weightsPath, "weights", "", "scoring weights YAML (built-in defaults when empty)")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(enqueueCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// stderrLogger keeps log lines off stdout, which carries the report tables.
func stderrLogger() logging.Interface {
	return logging.New(os.Stderr)
}

func loadScoringInputs() (*reference.Tables, scoring.Weights, error) {
	tables, err := reference.Load(referencePath)
	if err != nil {
		return nil, scoring.Weights{}, err
	}
	if weightsPath == "" {
		return tables, scoring.DefaultWeights(), nil
	}
	weights, err := scoring.LoadWeights(weightsPath)
	if err != nil {
		return nil, scoring.Weights{}, err
	}
	return tables, weights, nil
}
