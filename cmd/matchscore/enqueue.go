package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"scoreworker/internal/processor"
	"scoreworker/internal/queue"
)

var (
	enqueueRedisURL string
	enqueueQueue    string
)

var enqueueCmd = &cobra.Command{
	Use:   "enqueue <match-id>",
	Short: "Queue a stored match for the score worker",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnqueue,
}

func init() {
	enqueueCmd.Flags().StringVar(&enqueueRedisURL, "redis-url", os.Getenv("REDIS_URL"), "Redis URL (defaults to $REDIS_URL)")
	enqueueCmd.Flags().StringVar(&enqueueQueue, "queue", "", "queue name (worker default when empty)")
}

func runEnqueue(cmd *cobra.Command, args []string) error {
	matchID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("parse match id: %w", err)
	}
	if enqueueRedisURL == "" {
		return fmt.Errorf("redis url is required")
	}

	opts, err := redis.ParseURL(enqueueRedisURL)
	if err != nil {
		return fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	defer client.Close()

	payload, err := json.Marshal(processor.JobPayload{MatchID: matchID.String()})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	q := queue.NewRedisQueue(client)
	if err := q.Enqueue(ctx, enqueueQueue, payload); err != nil {
		return err
	}

	depth, err := q.Depth(ctx, enqueueQueue)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "queued %s (pending %d, retry %d, dead %d)\n",
		matchID, depth.Pending, depth.Retry, depth.Dead)
	return nil
}
