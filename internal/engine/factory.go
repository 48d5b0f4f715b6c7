package engine

import (
	"github.com/isaacbatst/felip-ai-sub001/internal/interfaces"
	"github.com/isaacbatst/felip-ai-sub001/internal/store"
)

// Deps bundles the engine's collaborators.
type Deps struct {
	Catalog   interfaces.Catalog
	Tables    interfaces.PriceTableProvider
	Miles     interfaces.MilesProvider
	Settings  interfaces.SettingsProvider
	Parser    interfaces.ProposalParser
	Messenger interfaces.Messenger
}

func New(cfg *store.Config, deps Deps) interfaces.Engine {
	return newEngine(cfg, deps)
}
