package types

import (
	"github.com/shopspring/decimal"
)

// Program is a tradable miles scheme from the owner's catalog.
// A program whose name carries the token "liminar" is a liminar variant;
// LiminarOfID links it back to its normal counterpart.
type Program struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	LiminarOfID *int64 `json:"liminar_of_id,omitempty"`
}

// PriceTable maps quantity-in-thousands to unit price.
type PriceTable map[int]decimal.Decimal

// PurchaseProposal is what the text-understanding collaborator extracts
// from one message. Quantity is the total requested units in thousands,
// not per CPF.
type PurchaseProposal struct {
	Quantity       decimal.Decimal   `json:"quantity"`
	CPFCount       int               `json:"cpf_count"`
	ProgramID      int64             `json:"program_id"`
	AcceptedPrices []decimal.Decimal `json:"accepted_prices,omitempty"`
}

// CounterOfferSettings is the owner's negotiation configuration,
// read-only to the engine.
type CounterOfferSettings struct {
	IsEnabled              bool            `json:"is_enabled"`
	PriceThreshold         decimal.Decimal `json:"price_threshold"`
	MessageTemplateID      string          `json:"message_template_id"`
	CallToActionTemplateID string          `json:"call_to_action_template_id"`
}

type ActionKind string

const (
	ActionSilent       ActionKind = "SILENT"
	ActionPublishQuote ActionKind = "PUBLISH_QUOTE"
	ActionAcceptDeal   ActionKind = "ACCEPT_DEAL"
	ActionCounterOffer ActionKind = "COUNTER_OFFER"
)

// Action is the engine's verdict for one message: stay silent, publish a
// quote in the group, accept the deal, or counter-offer privately.
type Action struct {
	Kind        ActionKind `json:"kind"`
	GroupText   string     `json:"group_text,omitempty"`
	PrivateText string     `json:"private_text,omitempty"`
}

// InboundMessage is one chat message handed to the engine by the dispatcher.
type InboundMessage struct {
	ID                string `json:"id"`
	OwnerID           string `json:"owner_id"`
	ChatID            int64  `json:"chat_id"`
	SenderID          int64  `json:"sender_id"`
	Text              string `json:"text"`
	HasPrivateChannel bool   `json:"has_private_channel"`
}

// HandleResult summarizes what the engine did with one message.
type HandleResult struct {
	MessageID string          `json:"message_id"`
	ProgramID int64           `json:"program_id,omitempty"`
	IsLiminar bool            `json:"is_liminar,omitempty"`
	Price     decimal.Decimal `json:"price,omitempty"`
	Action    Action          `json:"action"`
	Reason    string          `json:"reason,omitempty"`
}
