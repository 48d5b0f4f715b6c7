package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/isaacbatst/felip-ai-sub001/internal/fallback"
	"github.com/isaacbatst/felip-ai-sub001/internal/interfaces"
	"github.com/isaacbatst/felip-ai-sub001/internal/logger"
	"github.com/isaacbatst/felip-ai-sub001/internal/pricing"
	"github.com/isaacbatst/felip-ai-sub001/internal/quote"
	"github.com/isaacbatst/felip-ai-sub001/internal/quotelog"
	"github.com/isaacbatst/felip-ai-sub001/internal/resolver"
	"github.com/isaacbatst/felip-ai-sub001/internal/store"
	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

const (
	ReasonNoProgramMatch    = "no_program_match"
	ReasonNoProposal        = "no_proposal"
	ReasonInsufficientMiles = "insufficient_miles"
	ReasonQuoted            = "quoted"
	ReasonSilentByDecision  = "silent_by_decision"
)

type Engine struct {
	cfg       *store.Config
	catalog   interfaces.Catalog
	tables    interfaces.PriceTableProvider
	settings  interfaces.SettingsProvider
	parser    interfaces.ProposalParser
	messenger interfaces.Messenger
	selector  *fallback.Selector
	decider   *quote.Decider
}

func newEngine(cfg *store.Config, deps Deps) *Engine {
	return &Engine{
		cfg:       cfg,
		catalog:   deps.Catalog,
		tables:    deps.Tables,
		settings:  deps.Settings,
		parser:    deps.Parser,
		messenger: deps.Messenger,
		selector:  fallback.New(deps.Miles),
		decider:   quote.NewDecider(cfg.Templates),
	}
}

// HandleMessage runs one chat message through the full quote pipeline:
// resolve the program, extract the proposal, pick the servable variant,
// price it, decide, and deliver. Business-rule misses come back as a
// SILENT result with a reason; only infrastructure failures return an
// error.
func (e *Engine) HandleMessage(ctx context.Context, msg types.InboundMessage) (*types.HandleResult, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	logger.Debug(ctx, "Handling message", "message_id", msg.ID, "owner_id", msg.OwnerID, "chat_id", msg.ChatID)

	programs, err := e.catalog.Programs(ctx, msg.OwnerID)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load program catalog", err, "owner_id", msg.OwnerID)
		return nil, err
	}
	logger.Debug(ctx, "Catalog loaded", "owner_id", msg.OwnerID, "programs", len(programs))

	programID := resolver.Resolve(msg.Text, programs)
	if programID == nil {
		logger.Debug(ctx, "No program matched", "message_id", msg.ID)
		return e.silent(msg, 0, ReasonNoProgramMatch), nil
	}
	logger.Debug(ctx, "Program resolved", "message_id", msg.ID, "program_id", *programID)

	proposal, err := e.parser.Parse(ctx, msg.Text, programs)
	if err != nil {
		logger.ErrorWithErr(ctx, "Proposal parsing failed", err, "message_id", msg.ID)
		return nil, err
	}
	if proposal == nil {
		logger.Debug(ctx, "Message is not a purchase proposal", "message_id", msg.ID)
		return e.silent(msg, *programID, ReasonNoProposal), nil
	}
	proposal.ProgramID = *programID
	logger.Info(ctx, "Proposal extracted",
		"message_id", msg.ID,
		"program_id", proposal.ProgramID,
		"quantity", proposal.Quantity.String(),
		"cpf_count", proposal.CPFCount,
		"accepted_prices", len(proposal.AcceptedPrices),
	)

	effective, err := e.selector.SelectEffectiveProgram(ctx, msg.OwnerID, proposal.ProgramID, proposal.Quantity, programs)
	if err != nil {
		logger.ErrorWithErr(ctx, "Miles availability lookup failed", err, "message_id", msg.ID)
		return nil, err
	}
	if effective == nil {
		logger.Info(ctx, "No variant can cover the quantity", "message_id", msg.ID, "program_id", proposal.ProgramID, "quantity", proposal.Quantity.String())
		return e.silent(msg, proposal.ProgramID, ReasonInsufficientMiles), nil
	}
	isLiminar := resolver.IsLiminar(*effective)
	if effective.ID != proposal.ProgramID {
		logger.Info(ctx, "Falling back to liminar variant", "message_id", msg.ID, "requested_id", proposal.ProgramID, "effective_id", effective.ID)
	}

	table, maxPrice, err := e.tables.TableFor(ctx, msg.OwnerID, effective.ID)
	if err != nil {
		logger.ErrorWithErr(ctx, "Price table lookup failed", err, "program_id", effective.ID)
		return nil, err
	}

	result := pricing.Calculate(proposal.Quantity, proposal.CPFCount, table, maxPrice)
	if !result.OK() {
		logger.Info(ctx, "Price calculation declined", "message_id", msg.ID, "program_id", effective.ID, "reason", result.FailureReason)
		return e.silent(msg, effective.ID, result.FailureReason), nil
	}
	logger.Info(ctx, "Price calculated", "message_id", msg.ID, "program_id", effective.ID, "price", result.Price.String(), "liminar", isLiminar)

	settings, err := e.settings.CounterOffer(ctx, msg.OwnerID)
	if err != nil {
		logger.ErrorWithErr(ctx, "Counter-offer settings lookup failed", err, "owner_id", msg.OwnerID)
		return nil, err
	}

	q := quote.Quote{
		ProgramName: effective.Name,
		Quantity:    proposal.Quantity,
		CPFCount:    proposal.CPFCount,
		Price:       result.Price,
		IsLiminar:   isLiminar,
	}
	action := e.decider.Decide(q, proposal.AcceptedPrices, settings, msg.HasPrivateChannel)
	logger.Info(ctx, "Quote decision", "message_id", msg.ID, "action", string(action.Kind))

	reason := ReasonQuoted
	if action.Kind == types.ActionSilent {
		reason = ReasonSilentByDecision
	}
	_ = quotelog.AppendDecision(quotelog.DecisionEntry{
		MessageID: msg.ID,
		Action:    string(action.Kind),
		Reason:    reason,
		ProgramID: effective.ID,
		Price:     result.Price.String(),
	})

	if err := e.deliver(ctx, msg, action); err != nil {
		return nil, err
	}

	if action.Kind != types.ActionSilent {
		_ = quotelog.Append(quotelog.Entry{
			Program:   effective.Name,
			Action:    string(action.Kind),
			Quantity:  proposal.Quantity.String(),
			CPFCount:  proposal.CPFCount,
			Price:     result.Price.String(),
			Liminar:   isLiminar,
			MessageID: msg.ID,
		})
	}

	return &types.HandleResult{
		MessageID: msg.ID,
		ProgramID: effective.ID,
		IsLiminar: isLiminar,
		Price:     result.Price,
		Action:    action,
		Reason:    reason,
	}, nil
}

func (e *Engine) deliver(ctx context.Context, msg types.InboundMessage, action types.Action) error {
	if action.GroupText != "" {
		if err := e.messenger.SendGroup(ctx, msg.ChatID, action.GroupText); err != nil {
			logger.ErrorWithErr(ctx, "Group delivery failed", err, "message_id", msg.ID, "chat_id", msg.ChatID)
			return err
		}
	}
	if action.PrivateText != "" && msg.HasPrivateChannel {
		if err := e.messenger.SendPrivate(ctx, msg.SenderID, action.PrivateText); err != nil {
			logger.ErrorWithErr(ctx, "Private delivery failed", err, "message_id", msg.ID, "sender_id", msg.SenderID)
			return err
		}
	}
	return nil
}

func (e *Engine) silent(msg types.InboundMessage, programID int64, reason string) *types.HandleResult {
	_ = quotelog.AppendDecision(quotelog.DecisionEntry{
		MessageID: msg.ID,
		Action:    string(types.ActionSilent),
		Reason:    reason,
		ProgramID: programID,
	})
	return &types.HandleResult{
		MessageID: msg.ID,
		ProgramID: programID,
		Action:    types.Action{Kind: types.ActionSilent},
		Reason:    reason,
	}
}
