package catalog

import (
	"strings"

	"github.com/rsned/mort-crafting-server/pkg/crafting"
)

// FilterByTiers returns the recipes whose name contains any of the enabled
// tier labels. Matching is by substring, so "Tier 1" also selects
// "Tier 10 Blade". Blank labels match nothing.
func FilterByTiers(recipes []crafting.Recipe, enabled []string) []crafting.Recipe {
	var out []crafting.Recipe
	for _, r := range recipes {
		for _, tier := range enabled {
			if tier != "" && strings.Contains(r.Name, tier) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// CountByTier returns how many recipes each tier label selects.
func CountByTier(recipes []crafting.Recipe, tiers []string) map[string]int {
	counts := make(map[string]int, len(tiers))
	for _, tier := range tiers {
		counts[tier] = len(FilterByTiers(recipes, []string{tier}))
	}
	return counts
}
