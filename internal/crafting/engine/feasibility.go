package engine

import (
	"github.com/rsned/mort-crafting-server/pkg/crafting"
)

// ComputeFeasibility returns, in input order, every recipe that can be
// crafted at least once from inv. Materials named in special never limit
// the count but still appear in the breakdown. A recipe made only of
// special materials is reported as unconstrained.
func ComputeFeasibility(recipes []crafting.Recipe, inv crafting.Inventory, special []string) []crafting.CraftabilityResult {
	excluded := stringSet(special)

	var results []crafting.CraftabilityResult
	for _, r := range recipes {
		count, materials := evaluateRecipe(r, inv, excluded)
		if !count.Positive() {
			continue
		}
		results = append(results, crafting.CraftabilityResult{
			RecipeName:     r.Name,
			CraftableCount: count,
			Materials:      materials,
		})
	}
	return results
}

// evaluateRecipe computes how many times r can be crafted and the status of
// each of its materials.
func evaluateRecipe(r crafting.Recipe, inv crafting.Inventory, excluded map[string]bool) (crafting.Count, []crafting.MaterialStatus) {
	count := crafting.Unconstrained()
	materials := make([]crafting.MaterialStatus, 0, len(r.Materials))

	for _, m := range r.Materials {
		st := crafting.MaterialStatus{
			Item:      m.Item,
			Required:  m.Quantity,
			Available: inv[m.Item], // absent items count as zero
			Excluded:  excluded[m.Item],
		}
		if constrains(st) {
			count = count.Min(st.Available / st.Required)
		}
		materials = append(materials, st)
	}

	if n, ok := count.Value(); ok {
		for i := range materials {
			if constrains(materials[i]) && materials[i].Available/materials[i].Required == n {
				materials[i].Limiting = true
			}
		}
	}

	return count, materials
}

// constrains reports whether a material takes part in the count.
// Non-positive requirements would divide by zero and ask for nothing.
func constrains(st crafting.MaterialStatus) bool {
	return !st.Excluded && st.Required > 0
}
