package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

// PriceTableProvider serves the published price table for a program plus
// the optional per-program ceiling. MaxPrice is nil when no ceiling is set.
type PriceTableProvider interface {
	TableFor(ctx context.Context, ownerID string, programID int64) (types.PriceTable, *decimal.Decimal, error)
}

// MilesProvider reports how many miles the owner has available to sell on
// a program, in thousands — the same unit proposals use.
type MilesProvider interface {
	AvailableMiles(ctx context.Context, ownerID string, programID int64) (decimal.Decimal, error)
}

// SettingsProvider serves the owner's counter-offer settings. A nil result
// with nil error means the owner has none configured.
type SettingsProvider interface {
	CounterOffer(ctx context.Context, ownerID string) (*types.CounterOfferSettings, error)
}
