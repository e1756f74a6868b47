package engine

import (
	"context"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/rsned/mort-crafting-server/pkg/crafting"
)

const (
	maxSearchResults = 10
	maxSuggestions   = 5
)

// RecipeLookup executes the recipe_lookup tool logic.
func (e *Engine) RecipeLookup(ctx context.Context, req crafting.RecipeLookupRequest) (*crafting.RecipeLookupResponse, error) {
	resp := &crafting.RecipeLookupResponse{}

	snap, err := e.loadCatalog(ctx, req.Sources, "")
	if err != nil {
		return nil, err
	}
	recipes := snap.catalog.Recipes()

	// If search term provided, search first
	if req.Search != "" {
		resp.SearchResults = searchRecipes(recipes, req.Search, maxSearchResults)

		// If exactly one result and no name provided, use it
		if len(resp.SearchResults) == 1 && req.Name == "" {
			req.Name = resp.SearchResults[0].Name
		}
		if len(resp.SearchResults) == 0 {
			resp.Suggestions = suggestRecipes(recipes, req.Search, maxSuggestions)
		}
	}

	if req.Name == "" {
		return resp, nil
	}

	recipe, ok := snap.catalog.Recipe(req.Name)
	if !ok {
		if req.Search == "" {
			resp.Suggestions = suggestRecipes(recipes, req.Name, maxSuggestions)
		}
		return resp, nil
	}
	resp.Recipe = &recipe

	// Find recipes that use this recipe's output
	for _, r := range recipes {
		if _, uses := r.Quantity(recipe.Name); uses {
			resp.UsedInRecipes = append(resp.UsedInRecipes, r.Name)
		}
	}

	return resp, nil
}

// searchRecipes returns recipes whose name contains term, ignoring case,
// in catalog order.
func searchRecipes(recipes []crafting.Recipe, term string, limit int) []crafting.RecipeSearchHit {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var hits []crafting.RecipeSearchHit
	for _, r := range recipes {
		if !strings.Contains(strings.ToLower(r.Name), term) {
			continue
		}
		hits = append(hits, crafting.RecipeSearchHit{
			Name:      r.Name,
			Source:    r.Source,
			Materials: len(r.Materials),
		})
		if len(hits) == limit {
			break
		}
	}
	return hits
}

// suggestRecipes returns recipe names within a small edit distance of term,
// closest first.
func suggestRecipes(recipes []crafting.Recipe, term string, limit int) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	type candidate struct {
		name string
		dist int
	}
	var candidates []candidate
	for _, r := range recipes {
		dist := levenshtein.ComputeDistance(term, strings.ToLower(r.Name))
		if dist > levenshteinLimit(len(r.Name)) {
			continue
		}
		candidates = append(candidates, candidate{name: r.Name, dist: dist})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].name < candidates[j].name
	})

	var out []string
	for _, c := range candidates {
		out = append(out, c.name)
		if len(out) == limit {
			break
		}
	}
	return out
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	case length <= 16:
		return 3
	default:
		return 4
	}
}
