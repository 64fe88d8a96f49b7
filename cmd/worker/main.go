package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"resume-match/internal/app"
	"resume-match/internal/config"
	"resume-match/internal/logger"
	"resume-match/internal/pipeline"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Pipeline.Dispatch != config.DispatchAMQP {
		log.Fatalf("worker requires PIPELINE_DISPATCH=%s", config.DispatchAMQP)
	}

	lg, err := logger.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := app.NewContainer(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to build container", zap.Error(err))
	}
	defer func() {
		if err := c.Close(); err != nil {
			lg.Warn("cleanup error", zap.Error(err))
		}
	}()

	go c.Pipeline.SweepStaleRuns(ctx, 0)

	lg.Info("worker consuming", zap.String("queue", cfg.AMQP.Queue), zap.Int("prefetch", cfg.AMQP.Prefetch))

	err = c.Queue.Consume(ctx, pipeline.QueueHandler(c.Pipeline, lg.Named("worker")))
	if err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("consumer stopped", zap.Error(err))
	}
}
