package noop

import (
	"context"

	"github.com/isaacbatst/felip-ai-sub001/internal/logger"
	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

// NoopParser is the fallback parser used when no LLM provider is
// configured. It never extracts a proposal, so the bot stays silent.
type NoopParser struct{}

func NewNoopParser() *NoopParser {
	return &NoopParser{}
}

func (p *NoopParser) Parse(ctx context.Context, text string, programs []types.Program) (*types.PurchaseProposal, error) {
	logger.Debug(ctx, "Noop parser called - no proposal extracted")
	return nil, nil
}
