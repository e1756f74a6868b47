package engine

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rsned/mort-crafting-server/internal/crafting/catalog"
	"github.com/rsned/mort-crafting-server/internal/crafting/inventory"
	"github.com/rsned/mort-crafting-server/pkg/crafting"
)

// ErrQuantityTooLarge is returned when a target quantity times a material
// quantity does not fit in an int.
var ErrQuantityTooLarge = errors.New("target quantity too large")

// CraftPathTo executes the craft_path_to tool logic.
// It performs single-level expansion - showing direct materials needed.
func (e *Engine) CraftPathTo(ctx context.Context, req crafting.CraftPathRequest) (*crafting.CraftPathResponse, error) {
	// Apply defaults
	if req.TargetQuantity <= 0 {
		req.TargetQuantity = 1
	}

	snap, err := e.loadCatalog(ctx, req.Sources, "")
	if err != nil {
		return nil, err
	}

	recipe, ok := snap.catalog.Recipe(req.RecipeName)
	if !ok {
		return &crafting.CraftPathResponse{
			RecipeName: req.RecipeName,
			Quantity:   req.TargetQuantity,
		}, nil
	}

	for _, m := range recipe.Materials {
		if m.Quantity > 0 && req.TargetQuantity > math.MaxInt/m.Quantity {
			return nil, fmt.Errorf("%w: %d crafts of %s need more than %d %s",
				ErrQuantityTooLarge, req.TargetQuantity, recipe.Name, math.MaxInt, m.Item)
		}
	}

	inv, _ := inventory.Parse(req.Inventory)
	excluded := stringSet(e.cfg.SpecialMaterials)

	materials := calculateMaterialsNeeded(snap.catalog, recipe, req.TargetQuantity, inv, excluded)

	// Feasible when nothing that limits the craft has to be acquired.
	feasible := true
	for _, mat := range materials {
		if mat.QuantityToAcquire > 0 && !mat.Excluded {
			feasible = false
			break
		}
	}

	craftableNow, _ := evaluateRecipe(recipe, inv, excluded)

	return &crafting.CraftPathResponse{
		RecipeName:      recipe.Name,
		Found:           true,
		Quantity:        req.TargetQuantity,
		Feasible:        feasible,
		CraftableNow:    craftableNow,
		MaterialsNeeded: materials,
		Summary:         calculatePathSummary(materials),
	}, nil
}

// calculateMaterialsNeeded calculates what materials are needed to craft
// quantity units of recipe.
func calculateMaterialsNeeded(
	cat *catalog.Catalog,
	recipe crafting.Recipe,
	quantity int,
	inv crafting.Inventory,
	excluded map[string]bool,
) []crafting.MaterialRequirement {
	materials := make([]crafting.MaterialRequirement, 0, len(recipe.Materials))

	for _, m := range recipe.Materials {
		needed := m.Quantity * quantity
		have := inv[m.Item]
		toAcquire := needed - have
		if toAcquire < 0 {
			toAcquire = 0
		}

		_, craftable := cat.Recipe(m.Item)
		materials = append(materials, crafting.MaterialRequirement{
			Item:              m.Item,
			QuantityNeeded:    needed,
			QuantityHave:      have,
			QuantityToAcquire: toAcquire,
			Excluded:          excluded[m.Item],
			IsCraftable:       craftable,
		})
	}

	return materials
}

// calculatePathSummary aggregates material requirements into a summary.
func calculatePathSummary(materials []crafting.MaterialRequirement) crafting.CraftPathSummary {
	summary := crafting.CraftPathSummary{
		TotalMaterials: len(materials),
	}

	for _, mat := range materials {
		if mat.QuantityHave >= mat.QuantityNeeded {
			summary.MaterialsHave++
		}
		if mat.QuantityToAcquire > 0 {
			summary.MaterialsToAcquire++
			if mat.IsCraftable {
				summary.MaterialsCraftable++
			}
		}
	}

	return summary
}
