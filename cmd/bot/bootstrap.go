package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/isaacbatst/felip-ai-sub001/internal/engine"
	"github.com/isaacbatst/felip-ai-sub001/internal/engine/engineobs"
	"github.com/isaacbatst/felip-ai-sub001/internal/eod"
	"github.com/isaacbatst/felip-ai-sub001/internal/eod/eodobs"
	"github.com/isaacbatst/felip-ai-sub001/internal/interfaces"
	"github.com/isaacbatst/felip-ai-sub001/internal/llm/llmobs"
	"github.com/isaacbatst/felip-ai-sub001/internal/llm/noop"
	"github.com/isaacbatst/felip-ai-sub001/internal/llm/openai"
	"github.com/isaacbatst/felip-ai-sub001/internal/logger"
	"github.com/isaacbatst/felip-ai-sub001/internal/messenger/dryrun"
	"github.com/isaacbatst/felip-ai-sub001/internal/messenger/messengerobs"
	"github.com/isaacbatst/felip-ai-sub001/internal/messenger/telegram"
	"github.com/isaacbatst/felip-ai-sub001/internal/quotelog"
	"github.com/isaacbatst/felip-ai-sub001/internal/redisdata"
	"github.com/isaacbatst/felip-ai-sub001/internal/store"
	"github.com/isaacbatst/felip-ai-sub001/internal/trace"
)

// initializeSystem initializes logger, tracer, and EOD summarizer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	// Initialize EOD summarizer with observability
	initializeEOD()

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// compressOldLogs compresses old quote log files if retention is configured
func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("QUOTE_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := quotelog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old logs", "error", err)
		}
	}
}

// initializeStore connects to redis and returns the reference data store
func initializeStore(ctx context.Context, cfg *store.Config) *redisdata.Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn(ctx, "Redis not reachable at startup - will keep retrying", "addr", cfg.Redis.Addr, "error", err)
	}

	return redisdata.New(
		rdb,
		cfg.Redis.QueueKey,
		time.Duration(cfg.Redis.PopTimeoutSeconds)*time.Second,
		time.Duration(cfg.Redis.CacheTTLSeconds)*time.Second,
	)
}

// initializeParser initializes and returns the proposal parser with observability
func initializeParser(ctx context.Context, cfg *store.Config) interfaces.ProposalParser {
	var parser interfaces.ProposalParser

	switch cfg.LLM.Provider {
	case "OPENAI":
		parser = openai.NewParser(cfg)
	default:
		parser = noop.NewNoopParser()
		logger.Warn(ctx, "No LLM provider configured - using Noop parser (never quotes)")
	}

	// Wrap with observability middleware
	return llmobs.Wrap(parser)
}

// initializeMessenger initializes and returns the outbound messenger with observability
func initializeMessenger(ctx context.Context, cfg *store.Config) interfaces.Messenger {
	var msgr interfaces.Messenger

	if cfg.Mode == "LIVE" {
		msgr = telegram.New(os.Getenv("TELEGRAM_BOT_TOKEN"))
	} else {
		msgr = dryrun.New()
		logger.Warn(ctx, "Running in DRY_RUN mode - messages will be logged, not sent")
	}

	// Wrap with observability middleware
	return messengerobs.Wrap(msgr)
}

// initializeEngine initializes and returns the quote engine with observability
func initializeEngine(cfg *store.Config, st *redisdata.Store, parser interfaces.ProposalParser, msgr interfaces.Messenger) interfaces.Engine {
	// Create base engine
	eng := engine.New(cfg, engine.Deps{
		Catalog:   st,
		Tables:    st,
		Miles:     st,
		Settings:  st,
		Parser:    parser,
		Messenger: msgr,
	})

	// Wrap with observability middleware
	return engineobs.Wrap(eng)
}

// initializeEOD wraps the default EOD summarizer with observability
func initializeEOD() {
	// Create base summarizer
	baseSummarizer := eod.NewSummarizer()

	// Wrap with observability middleware
	observableSummarizer := eodobs.Wrap(baseSummarizer)

	// Set as default summarizer
	eod.SetDefaultSummarizer(observableSummarizer)
}
