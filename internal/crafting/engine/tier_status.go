package engine

import (
	"context"

	"github.com/rsned/mort-crafting-server/internal/crafting/catalog"
	"github.com/rsned/mort-crafting-server/pkg/crafting"
)

// TierStatus executes the tier_status tool logic. It reports, for each
// tier in the catalog, whether the player's levels unlock it.
func (e *Engine) TierStatus(ctx context.Context, req crafting.TierStatusRequest) (*crafting.TierStatusResponse, error) {
	snap, err := e.loadCatalog(ctx, req.Sources, "")
	if err != nil {
		return nil, err
	}

	tiers := snap.catalog.Tiers()
	names := make([]string, 0, len(tiers))
	for _, t := range tiers {
		names = append(names, t.Name)
	}
	recipeCounts := catalog.CountByTier(snap.catalog.Recipes(), names)

	resp := &crafting.TierStatusResponse{
		Tiers: make([]crafting.TierProgress, 0, len(tiers)),
	}
	resp.Summary.TotalTiers = len(tiers)

	for _, t := range tiers {
		p := crafting.TierProgress{
			Tier:          t,
			LevelReady:    req.CharacterLevel >= t.Level,
			CraftingReady: req.CraftingLevel >= t.CraftingLevel,
			Recipes:       recipeCounts[t.Name],
		}
		if !p.CraftingReady {
			p.CraftingLevelsTo = t.CraftingLevel - req.CraftingLevel
		}
		resp.Tiers = append(resp.Tiers, p)

		if p.LevelReady && p.CraftingReady {
			resp.Summary.Unlocked++
			continue
		}
		resp.Summary.Locked++

		// Closest locked tier by crafting level; first in load order on ties.
		if resp.Summary.NextTier == "" || t.CraftingLevel < resp.Summary.NextTierLevel {
			resp.Summary.NextTier = t.Name
			resp.Summary.NextTierLevel = t.CraftingLevel
		}
	}

	return resp, nil
}
