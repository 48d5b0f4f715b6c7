// Package fallback decides which program variant can actually serve a
// proposal: the requested program, its liminar sibling, or nothing.
package fallback

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/isaacbatst/felip-ai-sub001/internal/interfaces"
	"github.com/isaacbatst/felip-ai-sub001/internal/resolver"
	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

type Selector struct {
	miles interfaces.MilesProvider
}

func New(miles interfaces.MilesProvider) *Selector {
	return &Selector{miles: miles}
}

// SelectEffectiveProgram returns the program that can cover the requested
// quantity, or nil when the owner cannot serve it. A requested liminar
// variant is checked directly with no fallback; a normal program falls
// back to its liminar sibling once, and only if the sibling is in the
// owner's configured set. Lookup errors are infrastructure failures and
// bubble up.
func (s *Selector) SelectEffectiveProgram(ctx context.Context, ownerID string, requestedID int64, quantity decimal.Decimal, ownerPrograms []types.Program) (*types.Program, error) {
	requested := findByID(ownerPrograms, requestedID)
	if requested == nil {
		return nil, nil
	}

	if resolver.IsLiminar(*requested) {
		ok, err := s.hasMiles(ctx, ownerID, requested.ID, quantity)
		if err != nil {
			return nil, err
		}
		if ok {
			return requested, nil
		}
		return nil, nil
	}

	ok, err := s.hasMiles(ctx, ownerID, requested.ID, quantity)
	if err != nil {
		return nil, err
	}
	if ok {
		return requested, nil
	}

	sibling := findLiminarSibling(ownerPrograms, requested.ID)
	if sibling == nil {
		return nil, nil
	}

	ok, err = s.hasMiles(ctx, ownerID, sibling.ID, quantity)
	if err != nil {
		return nil, err
	}
	if ok {
		return sibling, nil
	}
	return nil, nil
}

func (s *Selector) hasMiles(ctx context.Context, ownerID string, programID int64, quantity decimal.Decimal) (bool, error) {
	available, err := s.miles.AvailableMiles(ctx, ownerID, programID)
	if err != nil {
		return false, err
	}
	return available.GreaterThanOrEqual(quantity), nil
}

func findByID(programs []types.Program, id int64) *types.Program {
	for i := range programs {
		if programs[i].ID == id {
			return &programs[i]
		}
	}
	return nil
}

func findLiminarSibling(programs []types.Program, normalID int64) *types.Program {
	for i := range programs {
		if programs[i].LiminarOfID != nil && *programs[i].LiminarOfID == normalID {
			return &programs[i]
		}
	}
	return nil
}
