package interfaces

import (
	"context"

	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

type Catalog interface {
	Programs(ctx context.Context, ownerID string) ([]types.Program, error)
}
