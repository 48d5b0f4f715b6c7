package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/isaacbatst/felip-ai-sub001/internal/eod"
	"github.com/isaacbatst/felip-ai-sub001/internal/logger"
	"github.com/isaacbatst/felip-ai-sub001/internal/trace"
)

func main() {
	if err := initializeSystem(); err != nil {
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer func() {
		if err := trace.Shutdown(context.Background()); err != nil {
			logger.Warn(ctx, "Tracer shutdown failed", "error", err)
		}
	}()

	cfg, err := loadConfig(ctx)
	if err != nil {
		os.Exit(1)
	}

	compressOldLogs(ctx)

	st := initializeStore(ctx, cfg)
	parser := initializeParser(ctx, cfg)
	msgr := initializeMessenger(ctx, cfg)
	eng := initializeEngine(cfg, st, parser, msgr)

	// catch up on a summary a restart may have skipped
	if ok, _ := eod.ShouldRunNow(); ok {
		yesterday := time.Now().In(time.FixedZone("BRT", -3*3600)).AddDate(0, 0, -1)
		if p, err := eod.SummarizeDay(yesterday); err == nil && p != "" {
			logger.Info(ctx, "EOD CSV written", "path", p)
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.EOD.Schedule, func() {
		yesterday := time.Now().In(time.FixedZone("BRT", -3*3600)).AddDate(0, 0, -1)
		if p, err := eod.SummarizeDay(yesterday); err == nil && p != "" {
			logger.Info(ctx, "EOD CSV written", "path", p)
		}
		compressOldLogs(ctx)
	}); err != nil {
		logger.ErrorWithErr(ctx, "Invalid EOD schedule", err, "schedule", cfg.EOD.Schedule)
		os.Exit(1)
	}
	c.Start()
	defer c.Stop()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		logger.Info(ctx, "Shutting down...")
		cancel()
	}()

	logger.Info(ctx, "Bot started", "mode", cfg.Mode, "queue", cfg.Redis.QueueKey)

	for {
		msg, err := st.PopMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			logger.ErrorWithErr(ctx, "Queue pop failed", err)
			time.Sleep(time.Second)
			continue
		}
		if msg == nil {
			continue
		}

		if _, err := eng.HandleMessage(ctx, *msg); err != nil {
			logger.ErrorWithErr(ctx, "Message handling error", err, "message_id", msg.ID)
		}
	}
}
