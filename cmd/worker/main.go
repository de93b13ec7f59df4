package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"scoreworker/internal/config"
	"scoreworker/internal/db"
	"scoreworker/internal/engine"
	"scoreworker/internal/logging"
	"scoreworker/internal/processor"
	"scoreworker/internal/queue"
	"scoreworker/internal/reference"
	"scoreworker/internal/scoring"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logging.Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("config load failed: %v", err)
		os.Exit(1)
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		logger.Warnf("invalid LOG_LEVEL %q, using info: %v", cfg.LogLevel, err)
	}

	tables, err := reference.Load(cfg.ReferencePath)
	if err != nil {
		logger.Errorf("reference tables load failed: %v", err)
		os.Exit(1)
	}
	weights := scoring.DefaultWeights()
	if cfg.WeightsPath != "" {
		if weights, err = scoring.LoadWeights(cfg.WeightsPath); err != nil {
			logger.Errorf("scoring weights load failed: %v", err)
			os.Exit(1)
		}
	}
	logger.Infof("loaded %d agents and %d weapons from %s", len(tables.Agents), len(tables.Weapons), cfg.ReferencePath)

	pool, err := db.NewPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Errorf("db connection failed: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Errorf("invalid redis url: %v", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	proc := processor.NewScoreProcessor(
		db.NewTelemetryReader(pool),
		db.NewPerformanceWriter(pool),
		db.NewViewRefresher(pool),
		engine.Options{Tables: tables, Weights: weights},
	)
	q := queue.NewRedisQueue(redisClient)

	if cfg.WorkerCount > 1 {
		logger.Infof("starting concurrent consumption with %d workers", cfg.WorkerCount)
		err = q.ConsumeConcurrent(ctx, cfg.RedisQueue, cfg.WorkerCount, cfg.JobBufferSize, proc.Handle)
	} else {
		logger.Infof("starting single-threaded consumption")
		err = q.Consume(ctx, cfg.RedisQueue, proc.Handle)
	}
	if err != nil && ctx.Err() == nil {
		logger.Errorf("queue consumption ended: %v", err)
		os.Exit(1)
	}
}
