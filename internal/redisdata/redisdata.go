// Package redisdata serves the collaborator-owned reference data (program
// catalog, price tables, miles balances, counter-offer settings) and the
// inbound message queue from redis.
package redisdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/isaacbatst/felip-ai-sub001/internal/interfaces"
	"github.com/isaacbatst/felip-ai-sub001/internal/logger"
	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

type Store struct {
	rdb        *redis.Client
	queueKey   string
	popTimeout time.Duration

	cache *refCache
}

var (
	_ interfaces.Catalog            = (*Store)(nil)
	_ interfaces.PriceTableProvider = (*Store)(nil)
	_ interfaces.MilesProvider      = (*Store)(nil)
	_ interfaces.SettingsProvider   = (*Store)(nil)
)

func New(rdb *redis.Client, queueKey string, popTimeout, cacheTTL time.Duration) *Store {
	return &Store{
		rdb:        rdb,
		queueKey:   queueKey,
		popTimeout: popTimeout,
		cache:      newRefCache(cacheTTL),
	}
}

func programsKey(ownerID string) string { return "programs:" + ownerID }
func settingsKey(ownerID string) string { return "settings:" + ownerID }

func pricesKey(ownerID string, programID int64) string {
	return fmt.Sprintf("prices:%s:%d", ownerID, programID)
}

func maxPriceKey(ownerID string, programID int64) string {
	return fmt.Sprintf("maxprice:%s:%d", ownerID, programID)
}

func milesKey(ownerID string, programID int64) string {
	return fmt.Sprintf("miles:%s:%d", ownerID, programID)
}

// Programs returns the owner's catalog, served from the in-process cache
// while it is fresh.
func (s *Store) Programs(ctx context.Context, ownerID string) ([]types.Program, error) {
	if programs, ok := s.cache.getPrograms(ownerID); ok {
		return programs, nil
	}

	raw, err := s.rdb.HGetAll(ctx, programsKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch programs: %w", err)
	}

	programs := parsePrograms(raw)
	s.cache.putPrograms(ownerID, programs)
	return programs, nil
}

// TableFor returns the published price table for a program and the
// optional per-program ceiling (nil when unset).
func (s *Store) TableFor(ctx context.Context, ownerID string, programID int64) (types.PriceTable, *decimal.Decimal, error) {
	raw, err := s.rdb.HGetAll(ctx, pricesKey(ownerID, programID)).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("fetch price table: %w", err)
	}
	table := parsePriceTable(raw)

	maxRaw, err := s.rdb.Get(ctx, maxPriceKey(ownerID, programID)).Result()
	if err == redis.Nil {
		return table, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("fetch max price: %w", err)
	}

	maxPrice, err := decimal.NewFromString(maxRaw)
	if err != nil {
		logger.Warn(ctx, "Ignoring malformed max price", "owner", ownerID, "program", programID, "value", maxRaw)
		return table, nil, nil
	}
	return table, &maxPrice, nil
}

func (s *Store) AvailableMiles(ctx context.Context, ownerID string, programID int64) (decimal.Decimal, error) {
	raw, err := s.rdb.Get(ctx, milesKey(ownerID, programID)).Result()
	if err == redis.Nil {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch miles: %w", err)
	}

	miles, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse miles %q: %w", raw, err)
	}
	return miles, nil
}

// CounterOffer returns the owner's settings, nil when none are stored.
func (s *Store) CounterOffer(ctx context.Context, ownerID string) (*types.CounterOfferSettings, error) {
	if settings, ok := s.cache.getSettings(ownerID); ok {
		return settings, nil
	}

	raw, err := s.rdb.Get(ctx, settingsKey(ownerID)).Result()
	if err == redis.Nil {
		s.cache.putSettings(ownerID, nil)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch settings: %w", err)
	}

	var settings types.CounterOfferSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}

	s.cache.putSettings(ownerID, &settings)
	return &settings, nil
}

// PopMessage blocks up to the configured timeout for the next inbound
// message. A nil message with nil error means the queue stayed empty.
func (s *Store) PopMessage(ctx context.Context) (*types.InboundMessage, error) {
	vals, err := s.rdb.BLPop(ctx, s.popTimeout, s.queueKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pop message: %w", err)
	}
	if len(vals) < 2 {
		return nil, nil
	}

	var msg types.InboundMessage
	if err := json.Unmarshal([]byte(vals[1]), &msg); err != nil {
		return nil, fmt.Errorf("parse inbound message: %w", err)
	}
	return &msg, nil
}
