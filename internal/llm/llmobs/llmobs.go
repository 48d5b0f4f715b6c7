package llmobs

import (
	"context"

	"github.com/isaacbatst/felip-ai-sub001/internal/interfaces"
	"github.com/isaacbatst/felip-ai-sub001/internal/logger"
	"github.com/isaacbatst/felip-ai-sub001/internal/trace"
	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

// observableParser wraps a ProposalParser with observability (logging & tracing)
type observableParser struct {
	parser interfaces.ProposalParser
}

// Compile-time interface check
var _ interfaces.ProposalParser = (*observableParser)(nil)

// Wrap wraps a parser with observability middleware
func Wrap(parser interfaces.ProposalParser) interfaces.ProposalParser {
	return &observableParser{
		parser: parser,
	}
}

// Parse extracts a purchase proposal with observability
func (op *observableParser) Parse(ctx context.Context, text string, programs []types.Program) (*types.PurchaseProposal, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Parse")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Requesting proposal extraction",
		"text_len", len(text),
		"programs", len(programs),
	)

	proposal, err := op.parser.Parse(ctx, text, programs)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to extract proposal", err)
		return nil, err
	}

	if proposal == nil {
		logger.DebugSkip(ctx, 1, "No proposal in message")
		return nil, nil
	}

	logger.InfoSkip(ctx, 1, "Proposal extracted",
		"quantity", proposal.Quantity.String(),
		"cpf_count", proposal.CPFCount,
		"accepted_prices", len(proposal.AcceptedPrices),
	)

	return proposal, nil
}
