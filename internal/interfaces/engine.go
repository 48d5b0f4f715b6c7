package interfaces

import (
	"context"

	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

type Engine interface {
	HandleMessage(ctx context.Context, msg types.InboundMessage) (*types.HandleResult, error)
}
