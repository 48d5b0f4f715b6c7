// Package quote turns computed prices and buyer-stated prices into the
// final action for a message: silence, a published quote, a deal
// acceptance or a counter-offer.
package quote

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Templates holds the outbound message bodies. Named carries per-owner
// template ids referenced by counter-offer settings; the flat fields are
// the defaults when an id is missing or unknown.
type Templates struct {
	Quote         string            `yaml:"quote"`
	LiminarSuffix string            `yaml:"liminar_suffix"`
	DealGroup     string            `yaml:"deal_group"`
	CounterOffer  string            `yaml:"counter_offer"`
	CallToAction  string            `yaml:"call_to_action"`
	Named         map[string]string `yaml:"named,omitempty"`
}

func DefaultTemplates() Templates {
	return Templates{
		Quote:         "Pago R$ {PRECO}/k em {PROGRAMA}",
		LiminarSuffix: " (liminar)",
		DealGroup:     "Vamos!",
		CounterOffer:  "Consigo pagar R$ {PRECO}/k nas suas {QUANTIDADE}k de {PROGRAMA}. Fechamos?",
		CallToAction:  "Fechado! R$ {PRECO}/k em {QUANTIDADE}k de {PROGRAMA} ({CPF_COUNT} CPF). Me chama aqui pra combinar a emissão.",
	}
}

func (t Templates) lookup(id, fallback string) string {
	if id != "" {
		if body, ok := t.Named[id]; ok {
			return body
		}
	}
	return fallback
}

// RenderContext feeds the literal placeholders of a template.
type RenderContext struct {
	ProgramName string
	Quantity    decimal.Decimal
	CPFCount    int
	Price       decimal.Decimal
}

// Render substitutes {PROGRAMA}, {QUANTIDADE}, {CPF_COUNT} and {PRECO}.
func Render(tpl string, rc RenderContext) string {
	r := strings.NewReplacer(
		"{PROGRAMA}", rc.ProgramName,
		"{QUANTIDADE}", FormatQuantity(rc.Quantity),
		"{CPF_COUNT}", strconv.Itoa(rc.CPFCount),
		"{PRECO}", FormatPrice(rc.Price),
	)
	return r.Replace(tpl)
}

// FormatPrice renders two decimal digits with comma as decimal separator.
func FormatPrice(p decimal.Decimal) string {
	return strings.ReplaceAll(p.StringFixed(2), ".", ",")
}

// FormatQuantity renders a quantity-in-thousands without trailing zeros.
func FormatQuantity(q decimal.Decimal) string {
	return strings.ReplaceAll(q.String(), ".", ",")
}
