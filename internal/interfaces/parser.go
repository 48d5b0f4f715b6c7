package interfaces

import (
	"context"

	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

// ProposalParser extracts the purchase proposal fields (quantity, CPF
// count, accepted prices) from free text. The program catalog is passed
// as hint context only. A nil proposal with nil error means the text does
// not describe a purchase.
type ProposalParser interface {
	Parse(ctx context.Context, text string, programs []types.Program) (*types.PurchaseProposal, error)
}
