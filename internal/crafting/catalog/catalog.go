package catalog

import (
	"bufio"
	"strings"

	"github.com/rsned/mort-crafting-server/pkg/crafting"
)

// Catalog holds the tiers and recipes merged from one or more sources.
// Entries keep the position of their first insertion; a later entry with
// the same name replaces the value in place.
type Catalog struct {
	tiers       map[string]crafting.Tier
	tierOrder   []string
	recipes     map[string]crafting.Recipe
	recipeOrder []string
}

// New creates an empty Catalog.
func New() *Catalog {
	return &Catalog{
		tiers:   make(map[string]crafting.Tier),
		recipes: make(map[string]crafting.Recipe),
	}
}

// AddTier adds or replaces a tier.
func (c *Catalog) AddTier(t crafting.Tier) {
	if _, ok := c.tiers[t.Name]; !ok {
		c.tierOrder = append(c.tierOrder, t.Name)
	}
	c.tiers[t.Name] = t
}

// AddRecipe adds or replaces a recipe.
func (c *Catalog) AddRecipe(r crafting.Recipe) {
	if _, ok := c.recipes[r.Name]; !ok {
		c.recipeOrder = append(c.recipeOrder, r.Name)
	}
	c.recipes[r.Name] = r
}

// Tier returns the named tier.
func (c *Catalog) Tier(name string) (crafting.Tier, bool) {
	t, ok := c.tiers[name]
	return t, ok
}

// Recipe returns the named recipe.
func (c *Catalog) Recipe(name string) (crafting.Recipe, bool) {
	r, ok := c.recipes[name]
	return r, ok
}

// Tiers returns all tiers in load order.
func (c *Catalog) Tiers() []crafting.Tier {
	out := make([]crafting.Tier, 0, len(c.tierOrder))
	for _, name := range c.tierOrder {
		out = append(out, c.tiers[name])
	}
	return out
}

// Recipes returns all recipes in load order.
func (c *Catalog) Recipes() []crafting.Recipe {
	out := make([]crafting.Recipe, 0, len(c.recipeOrder))
	for _, name := range c.recipeOrder {
		out = append(out, c.recipes[name])
	}
	return out
}

// NumTiers returns the number of tiers.
func (c *Catalog) NumTiers() int { return len(c.tierOrder) }

// NumRecipes returns the number of recipes.
func (c *Catalog) NumRecipes() int { return len(c.recipeOrder) }

// LineError records a catalog line that was skipped.
type LineError struct {
	Source string
	Line   int
	Err    error
}

// LoadStats describes what a Load call did.
type LoadStats struct {
	SourcesLoaded  int
	SourcesSkipped int
	Malformed      []LineError
}

// Load parses every included source, in order, into a single Catalog.
// Later sources overwrite earlier ones on name collisions. Malformed lines
// are skipped and reported in the stats.
func Load(sources []crafting.Source, opts ParseOptions) (*Catalog, LoadStats) {
	cat := New()
	var stats LoadStats

	for _, src := range sources {
		if !src.Included {
			stats.SourcesSkipped++
			continue
		}
		stats.SourcesLoaded++
		stats.Malformed = append(stats.Malformed, cat.loadText(src.Name, src.Text, opts)...)
	}

	return cat, stats
}

// loadText parses one source's text into the catalog.
func (c *Catalog) loadText(name, text string, opts ParseOptions) []LineError {
	var bad []LineError

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		entry, err := ParseLine(scanner.Text(), opts)
		if err != nil {
			bad = append(bad, LineError{Source: name, Line: lineNo, Err: err})
			continue
		}

		switch entry.Kind {
		case EntryTier:
			c.AddTier(entry.Tier)
		case EntryRecipe:
			entry.Recipe.Source = name
			c.AddRecipe(entry.Recipe)
		}
	}
	if err := scanner.Err(); err != nil {
		bad = append(bad, LineError{Source: name, Line: lineNo + 1, Err: err})
	}

	return bad
}
