package engine

import (
	"context"
	"sort"

	"github.com/rsned/mort-crafting-server/internal/crafting/catalog"
	"github.com/rsned/mort-crafting-server/pkg/crafting"
)

// ComponentUses executes the component_uses tool logic. When the request
// names tiers, only recipes of those tiers are considered.
func (e *Engine) ComponentUses(ctx context.Context, req crafting.ComponentUsesRequest) (*crafting.ComponentUsesResponse, error) {
	resp := &crafting.ComponentUsesResponse{
		Item:    req.Item,
		Special: stringSet(e.cfg.SpecialMaterials)[req.Item],
		UsedIn:  []crafting.ComponentUseInfo{},
	}

	snap, err := e.loadCatalog(ctx, req.Sources, "")
	if err != nil {
		return nil, err
	}

	recipes := snap.catalog.Recipes()
	if len(req.Tiers) > 0 {
		recipes = catalog.FilterByTiers(recipes, e.enabledTiers(req.Tiers))
	}

	for _, r := range recipes {
		qty, ok := r.Quantity(req.Item)
		if !ok {
			continue
		}
		resp.UsedIn = append(resp.UsedIn, crafting.ComponentUseInfo{
			RecipeName:       r.Name,
			Source:           r.Source,
			QuantityPerCraft: qty,
		})
	}

	sortComponentUses(resp.UsedIn)
	resp.TotalUses = len(resp.UsedIn)

	return resp, nil
}

// sortComponentUses puts recipes that need the least of the item first.
func sortComponentUses(uses []crafting.ComponentUseInfo) {
	sort.SliceStable(uses, func(i, j int) bool {
		if uses[i].QuantityPerCraft != uses[j].QuantityPerCraft {
			return uses[i].QuantityPerCraft < uses[j].QuantityPerCraft
		}
		return uses[i].RecipeName < uses[j].RecipeName
	})
}
