package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacbatst/felip-ai-sub001/internal/quote"
	"github.com/isaacbatst/felip-ai-sub001/internal/store"
	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

type fakeCatalog struct {
	programs []types.Program
	err      error
}

func (f *fakeCatalog) Programs(ctx context.Context, ownerID string) ([]types.Program, error) {
	return f.programs, f.err
}

type fakeTables struct {
	table    types.PriceTable
	maxPrice *decimal.Decimal
}

func (f *fakeTables) TableFor(ctx context.Context, ownerID string, programID int64) (types.PriceTable, *decimal.Decimal, error) {
	return f.table, f.maxPrice, nil
}

type fakeMiles struct {
	byProgram map[int64]decimal.Decimal
}

func (f *fakeMiles) AvailableMiles(ctx context.Context, ownerID string, programID int64) (decimal.Decimal, error) {
	return f.byProgram[programID], nil
}

type fakeSettings struct {
	settings *types.CounterOfferSettings
}

func (f *fakeSettings) CounterOffer(ctx context.Context, ownerID string) (*types.CounterOfferSettings, error) {
	return f.settings, nil
}

type fakeParser struct {
	proposal *types.PurchaseProposal
	err      error
}

func (f *fakeParser) Parse(ctx context.Context, text string, programs []types.Program) (*types.PurchaseProposal, error) {
	return f.proposal, f.err
}

type sentMsg struct {
	chatID int64
	text   string
}

type fakeMessenger struct {
	group   []sentMsg
	private []sentMsg
	err     error
}

func (f *fakeMessenger) SendGroup(ctx context.Context, chatID int64, text string) error {
	if f.err != nil {
		return f.err
	}
	f.group = append(f.group, sentMsg{chatID, text})
	return nil
}

func (f *fakeMessenger) SendPrivate(ctx context.Context, userID int64, text string) error {
	if f.err != nil {
		return f.err
	}
	f.private = append(f.private, sentMsg{userID, text})
	return nil
}

func liminarOf(id int64) *int64 { return &id }

func defaultPrograms() []types.Program {
	return []types.Program{
		{ID: 1, Name: "SMILES"},
		{ID: 2, Name: "SMILES LIMINAR", LiminarOfID: liminarOf(1)},
		{ID: 3, Name: "LATAM"},
	}
}

func defaultTable() types.PriceTable {
	return types.PriceTable{
		15: decimal.RequireFromString("20"),
		30: decimal.RequireFromString("18"),
		50: decimal.RequireFromString("16"),
	}
}

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type deps struct {
	catalog   *fakeCatalog
	tables    *fakeTables
	miles     *fakeMiles
	settings  *fakeSettings
	parser    *fakeParser
	messenger *fakeMessenger
}

func defaultDeps() deps {
	return deps{
		catalog: &fakeCatalog{programs: defaultPrograms()},
		tables:  &fakeTables{table: defaultTable()},
		miles: &fakeMiles{byProgram: map[int64]decimal.Decimal{
			1: qty("100"),
			2: qty("100"),
		}},
		settings:  &fakeSettings{},
		parser:    &fakeParser{},
		messenger: &fakeMessenger{},
	}
}

func newTestEngine(t *testing.T, d deps) *Engine {
	t.Helper()
	t.Setenv("QUOTE_LOG_DIR", t.TempDir())
	cfg := &store.Config{Templates: quote.DefaultTemplates()}
	return newEngine(cfg, Deps{
		Catalog:   d.catalog,
		Tables:    d.tables,
		Miles:     d.miles,
		Settings:  d.settings,
		Parser:    d.parser,
		Messenger: d.messenger,
	})
}

func TestHandleMessagePublishesQuote(t *testing.T) {
	d := defaultDeps()
	d.parser.proposal = &types.PurchaseProposal{Quantity: qty("50"), CPFCount: 1}
	eng := newTestEngine(t, d)

	res, err := eng.HandleMessage(context.Background(), types.InboundMessage{
		OwnerID: "owner-1", ChatID: 77, SenderID: 5,
		Text: "vendo 50k smiles",
	})
	require.NoError(t, err)

	assert.Equal(t, types.ActionPublishQuote, res.Action.Kind)
	assert.Equal(t, int64(1), res.ProgramID)
	assert.False(t, res.IsLiminar)
	assert.True(t, res.Price.Equal(qty("16")))
	assert.NotEmpty(t, res.MessageID)

	require.Len(t, d.messenger.group, 1)
	assert.Equal(t, int64(77), d.messenger.group[0].chatID)
	assert.Equal(t, "Pago R$ 16,00/k em SMILES", d.messenger.group[0].text)
	assert.Empty(t, d.messenger.private)
}

func TestHandleMessageFallsBackToLiminarSibling(t *testing.T) {
	d := defaultDeps()
	d.parser.proposal = &types.PurchaseProposal{Quantity: qty("50"), CPFCount: 1}
	d.miles.byProgram[1] = qty("10") // normal variant cannot cover 50k

	eng := newTestEngine(t, d)
	res, err := eng.HandleMessage(context.Background(), types.InboundMessage{
		OwnerID: "owner-1", ChatID: 77,
		Text: "compro 50k smiles",
	})
	require.NoError(t, err)

	assert.Equal(t, types.ActionPublishQuote, res.Action.Kind)
	assert.Equal(t, int64(2), res.ProgramID)
	assert.True(t, res.IsLiminar)
	require.Len(t, d.messenger.group, 1)
	assert.Contains(t, d.messenger.group[0].text, "(liminar)")
}

func TestHandleMessageSilentWhenNoProgramMatches(t *testing.T) {
	d := defaultDeps()
	eng := newTestEngine(t, d)

	res, err := eng.HandleMessage(context.Background(), types.InboundMessage{
		OwnerID: "owner-1",
		Text:    "bom dia pessoal",
	})
	require.NoError(t, err)

	assert.Equal(t, types.ActionSilent, res.Action.Kind)
	assert.Equal(t, ReasonNoProgramMatch, res.Reason)
	assert.Empty(t, d.messenger.group)
}

func TestHandleMessageSilentWhenNotAProposal(t *testing.T) {
	d := defaultDeps()
	d.parser.proposal = nil
	eng := newTestEngine(t, d)

	res, err := eng.HandleMessage(context.Background(), types.InboundMessage{
		OwnerID: "owner-1",
		Text:    "alguem ja usou smiles hoje?",
	})
	require.NoError(t, err)

	assert.Equal(t, types.ActionSilent, res.Action.Kind)
	assert.Equal(t, ReasonNoProposal, res.Reason)
}

func TestHandleMessageSilentWhenMilesInsufficient(t *testing.T) {
	d := defaultDeps()
	d.parser.proposal = &types.PurchaseProposal{Quantity: qty("500"), CPFCount: 1}
	eng := newTestEngine(t, d)

	res, err := eng.HandleMessage(context.Background(), types.InboundMessage{
		OwnerID: "owner-1",
		Text:    "compro 500k smiles",
	})
	require.NoError(t, err)

	assert.Equal(t, types.ActionSilent, res.Action.Kind)
	assert.Equal(t, ReasonInsufficientMiles, res.Reason)
	assert.Empty(t, d.messenger.group)
}

func TestHandleMessageAcceptsDealWithPrivateCallToAction(t *testing.T) {
	d := defaultDeps()
	d.parser.proposal = &types.PurchaseProposal{
		Quantity:       qty("50"),
		CPFCount:       1,
		AcceptedPrices: []decimal.Decimal{qty("17")},
	}
	d.settings.settings = &types.CounterOfferSettings{
		IsEnabled:      true,
		PriceThreshold: qty("2"),
	}
	eng := newTestEngine(t, d)

	res, err := eng.HandleMessage(context.Background(), types.InboundMessage{
		OwnerID: "owner-1", ChatID: 77, SenderID: 42,
		Text:              "vendo 50k smiles a 17",
		HasPrivateChannel: true,
	})
	require.NoError(t, err)

	assert.Equal(t, types.ActionAcceptDeal, res.Action.Kind)
	require.Len(t, d.messenger.group, 1)
	assert.Equal(t, "Vamos!", d.messenger.group[0].text)
	require.Len(t, d.messenger.private, 1)
	assert.Equal(t, int64(42), d.messenger.private[0].chatID)
	// buyer stated 17, our table says 16: honor the stated price
	assert.Contains(t, d.messenger.private[0].text, "17,00")
}

func TestHandleMessageCounterOffersWithinThreshold(t *testing.T) {
	d := defaultDeps()
	d.parser.proposal = &types.PurchaseProposal{
		Quantity:       qty("50"),
		CPFCount:       1,
		AcceptedPrices: []decimal.Decimal{qty("15")},
	}
	d.settings.settings = &types.CounterOfferSettings{
		IsEnabled:      true,
		PriceThreshold: qty("2"),
	}
	eng := newTestEngine(t, d)

	res, err := eng.HandleMessage(context.Background(), types.InboundMessage{
		OwnerID: "owner-1", ChatID: 77, SenderID: 42,
		Text:              "vendo 50k smiles a 15",
		HasPrivateChannel: true,
	})
	require.NoError(t, err)

	assert.Equal(t, types.ActionCounterOffer, res.Action.Kind)
	require.Len(t, d.messenger.group, 1)
	require.Len(t, d.messenger.private, 1)
	assert.Contains(t, d.messenger.private[0].text, "16,00")
}

func TestHandleMessageSkipsPrivateWithoutChannel(t *testing.T) {
	d := defaultDeps()
	d.parser.proposal = &types.PurchaseProposal{
		Quantity:       qty("50"),
		CPFCount:       1,
		AcceptedPrices: []decimal.Decimal{qty("15")},
	}
	d.settings.settings = &types.CounterOfferSettings{
		IsEnabled:      true,
		PriceThreshold: qty("2"),
	}
	eng := newTestEngine(t, d)

	_, err := eng.HandleMessage(context.Background(), types.InboundMessage{
		OwnerID: "owner-1", ChatID: 77, SenderID: 42,
		Text:              "vendo 50k smiles a 15",
		HasPrivateChannel: false,
	})
	require.NoError(t, err)

	require.Len(t, d.messenger.group, 1)
	assert.Empty(t, d.messenger.private)
}

func TestHandleMessageBubblesCatalogError(t *testing.T) {
	d := defaultDeps()
	d.catalog.err = errors.New("redis down")
	eng := newTestEngine(t, d)

	_, err := eng.HandleMessage(context.Background(), types.InboundMessage{OwnerID: "owner-1", Text: "50k smiles"})
	assert.Error(t, err)
}

func TestHandleMessageBubblesDeliveryError(t *testing.T) {
	d := defaultDeps()
	d.parser.proposal = &types.PurchaseProposal{Quantity: qty("50"), CPFCount: 1}
	d.messenger.err = errors.New("telegram unreachable")
	eng := newTestEngine(t, d)

	_, err := eng.HandleMessage(context.Background(), types.InboundMessage{OwnerID: "owner-1", ChatID: 77, Text: "50k smiles"})
	assert.Error(t, err)
}
