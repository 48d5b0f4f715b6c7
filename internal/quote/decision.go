package quote

import (
	"github.com/shopspring/decimal"

	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

type Decider struct {
	templates Templates
}

func NewDecider(templates Templates) *Decider {
	return &Decider{templates: templates}
}

// Quote is the priced proposal the decider acts on.
type Quote struct {
	ProgramName string
	Quantity    decimal.Decimal
	CPFCount    int
	Price       decimal.Decimal
	IsLiminar   bool
}

// Decide picks the action for a priced proposal given the prices the
// buyer already said they'd accept. With no stated prices the standard
// quote is published. Otherwise the highest stated price is the buyer's
// floor: at or above our price the deal is accepted (optionally with a
// private call to action); below it, we stay silent, publish, or
// counter-offer depending on the owner's settings and how wide the gap is.
func (d *Decider) Decide(q Quote, acceptedPrices []decimal.Decimal, settings *types.CounterOfferSettings, hasPrivateChannel bool) types.Action {
	if len(acceptedPrices) == 0 {
		return types.Action{Kind: types.ActionPublishQuote, GroupText: d.standardQuote(q)}
	}

	floor := acceptedPrices[0]
	for _, p := range acceptedPrices[1:] {
		if p.GreaterThan(floor) {
			floor = p
		}
	}

	if floor.GreaterThanOrEqual(q.Price) {
		action := types.Action{Kind: types.ActionAcceptDeal, GroupText: d.templates.DealGroup}
		if settings != nil && settings.IsEnabled && hasPrivateChannel {
			// the call to action quotes the accepted price as a floor:
			// never offer less than what the buyer already agreed to
			ctaPrice := q.Price
			if ctaPrice.LessThan(floor) {
				ctaPrice = floor
			}
			rc := renderContext(q)
			rc.Price = ctaPrice
			action.PrivateText = Render(d.templates.lookup(settings.CallToActionTemplateID, d.templates.CallToAction), rc)
		}
		return action
	}

	if settings == nil || !settings.IsEnabled {
		return types.Action{Kind: types.ActionSilent}
	}

	diff := q.Price.Sub(floor)
	if diff.GreaterThan(settings.PriceThreshold) {
		// gap too wide to negotiate automatically
		return types.Action{Kind: types.ActionPublishQuote, GroupText: d.standardQuote(q)}
	}

	return types.Action{
		Kind:        types.ActionCounterOffer,
		GroupText:   d.standardQuote(q),
		PrivateText: Render(d.templates.lookup(settings.MessageTemplateID, d.templates.CounterOffer), renderContext(q)),
	}
}

func (d *Decider) standardQuote(q Quote) string {
	text := Render(d.templates.Quote, renderContext(q))
	if q.IsLiminar {
		text += d.templates.LiminarSuffix
	}
	return text
}

func renderContext(q Quote) RenderContext {
	return RenderContext{
		ProgramName: q.ProgramName,
		Quantity:    q.Quantity,
		CPFCount:    q.CPFCount,
		Price:       q.Price,
	}
}
