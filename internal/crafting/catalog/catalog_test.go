package catalog

import (
	"errors"
	"reflect"
	"testing"

	"github.com/rsned/mort-crafting-server/pkg/crafting"
)

func TestParseLineSkipsBlankAndComments(t *testing.T) {
	for _, line := range []string{"", "   ", "# Tier 1, Level 1, Green, Level 20", "\t# note"} {
		entry, err := ParseLine(line, ParseOptions{})
		if err != nil {
			t.Fatalf("ParseLine(%q) unexpected error: %v", line, err)
		}
		if entry.Kind != EntryNone {
			t.Fatalf("ParseLine(%q) kind=%v want=EntryNone", line, entry.Kind)
		}
	}
}

func TestParseLineTier(t *testing.T) {
	entry, err := ParseLine("  Tier 3 , Level 30, Blue , Level 60 ", ParseOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Kind != EntryTier {
		t.Fatalf("kind=%v want=EntryTier", entry.Kind)
	}
	want := crafting.Tier{Name: "Tier 3", Level: 30, Color: "Blue", CraftingLevel: 60}
	if entry.Tier != want {
		t.Fatalf("tier=%+v want=%+v", entry.Tier, want)
	}
}

func TestParseLineMalformedTier(t *testing.T) {
	tests := []string{
		"Tier 1, Level 1, Green",
		"Tier 1, Level one, Green, Level 20",
		"Tier 1, Level 1, Green, Level 20, Extra(1)",
	}
	for _, line := range tests {
		_, err := ParseLine(line, ParseOptions{})
		if !errors.Is(err, ErrMalformedLine) {
			t.Fatalf("ParseLine(%q) err=%v want ErrMalformedLine", line, err)
		}
	}
}

func TestParseLineRecipe(t *testing.T) {
	entry, err := ParseLine("Iron Sword Tier 1, Iron Ore(4), junk, Wood ( 2 ), Violent Essence(1)", ParseOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Kind != EntryRecipe {
		t.Fatalf("kind=%v want=EntryRecipe", entry.Kind)
	}
	want := []crafting.Material{
		{Item: "Iron Ore", Quantity: 4},
		{Item: "Wood", Quantity: 2},
		{Item: "Violent Essence", Quantity: 1},
	}
	if entry.Recipe.Name != "Iron Sword Tier 1" {
		t.Fatalf("name=%q", entry.Recipe.Name)
	}
	if !reflect.DeepEqual(entry.Recipe.Materials, want) {
		t.Fatalf("materials=%+v want=%+v", entry.Recipe.Materials, want)
	}
}

func TestParseLineRecipeDuplicateMaterialKeepsPosition(t *testing.T) {
	entry, err := ParseLine("Ring, Gold(1), Gem(2), Gold(5)", ParseOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []crafting.Material{{Item: "Gold", Quantity: 5}, {Item: "Gem", Quantity: 2}}
	if !reflect.DeepEqual(entry.Recipe.Materials, want) {
		t.Fatalf("materials=%+v want=%+v", entry.Recipe.Materials, want)
	}
}

func TestParseLineRecipeWithoutMaterialsIsDiscarded(t *testing.T) {
	entry, err := ParseLine("Nothing here, just words, more words", ParseOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Kind != EntryNone {
		t.Fatalf("kind=%v want=EntryNone", entry.Kind)
	}
}

func TestParseLineRecipeBadQuantity(t *testing.T) {
	for _, line := range []string{"Axe, Iron(x)", "Axe, Iron(0)", "Axe, Iron(-2)", "Axe, Iron)3("} {
		_, err := ParseLine(line, ParseOptions{})
		if !errors.Is(err, ErrMalformedLine) {
			t.Fatalf("ParseLine(%q) err=%v want ErrMalformedLine", line, err)
		}
	}
}

func TestParseLineDropPolicy(t *testing.T) {
	opts := ParseOptions{Drop: crafting.DefaultSpecialMaterials()}

	entry, err := ParseLine("Potion, Herb(2), Vigor Essence(1)", opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []crafting.Material{{Item: "Herb", Quantity: 2}}
	if !reflect.DeepEqual(entry.Recipe.Materials, want) {
		t.Fatalf("materials=%+v want=%+v", entry.Recipe.Materials, want)
	}

	// Only special materials left: the recipe is not kept.
	entry, err = ParseLine("Essence Bundle, Vigor Essence(1), Violent Essence(1)", opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Kind != EntryNone {
		t.Fatalf("kind=%v want=EntryNone", entry.Kind)
	}
}

func TestLoadLastWriteWins(t *testing.T) {
	sources := []crafting.Source{
		{Name: "a.txt", Included: true, Text: "Tier 1, Level 1, Green, Level 20\nSword Tier 1, Iron(3)\nAxe Tier 1, Iron(2)\n"},
		{Name: "b.txt", Included: true, Text: "Tier 1, Level 5, Red, Level 25\nSword Tier 1, Iron(9)\n"},
	}
	cat, stats := Load(sources, ParseOptions{})

	if stats.SourcesLoaded != 2 {
		t.Fatalf("SourcesLoaded=%d want=2", stats.SourcesLoaded)
	}
	tier, ok := cat.Tier("Tier 1")
	if !ok || tier.Level != 5 || tier.Color != "Red" {
		t.Fatalf("tier=%+v ok=%v want level 5 from b.txt", tier, ok)
	}

	recipes := cat.Recipes()
	if len(recipes) != 2 {
		t.Fatalf("got %d recipes, want 2", len(recipes))
	}
	if recipes[0].Name != "Sword Tier 1" || recipes[1].Name != "Axe Tier 1" {
		t.Fatalf("order=%q,%q want Sword then Axe", recipes[0].Name, recipes[1].Name)
	}
	if recipes[0].Materials[0].Quantity != 9 || recipes[0].Source != "b.txt" {
		t.Fatalf("sword=%+v want overwrite from b.txt", recipes[0])
	}
}

func TestLoadSkipsExcludedSources(t *testing.T) {
	sources := []crafting.Source{
		{Name: "a.txt", Included: false, Text: "Sword, Iron(3)"},
		{Name: "b.txt", Included: true, Text: "Axe, Iron(2)"},
	}
	cat, stats := Load(sources, ParseOptions{})
	if stats.SourcesSkipped != 1 {
		t.Fatalf("SourcesSkipped=%d want=1", stats.SourcesSkipped)
	}
	if _, ok := cat.Recipe("Sword"); ok {
		t.Fatalf("recipe from excluded source was loaded")
	}
	if cat.NumRecipes() != 1 {
		t.Fatalf("NumRecipes=%d want=1", cat.NumRecipes())
	}
}

func TestLoadSurvivesMalformedLines(t *testing.T) {
	text := "Tier 2, Level x, Green, Level 20\nSword, Iron(3), Wood(1)\n"
	cat, stats := Load([]crafting.Source{{Name: "w.txt", Text: text, Included: true}}, ParseOptions{})

	if len(stats.Malformed) != 1 {
		t.Fatalf("malformed=%d want=1", len(stats.Malformed))
	}
	if stats.Malformed[0].Line != 1 || stats.Malformed[0].Source != "w.txt" {
		t.Fatalf("malformed=%+v want w.txt line 1", stats.Malformed[0])
	}
	if _, ok := cat.Recipe("Sword"); !ok {
		t.Fatalf("valid recipe after malformed line was not loaded")
	}
	if cat.NumTiers() != 0 {
		t.Fatalf("NumTiers=%d want=0", cat.NumTiers())
	}
}

func TestFilterByTiersSubstring(t *testing.T) {
	recipes := []crafting.Recipe{
		{Name: "Tier 10 Blade"},
		{Name: "Tier 2 Helm"},
		{Name: "Tier 1 Ring"},
		{Name: "Untiered Trinket"},
	}

	got := FilterByTiers(recipes, []string{"Tier 1"})
	if len(got) != 2 || got[0].Name != "Tier 10 Blade" || got[1].Name != "Tier 1 Ring" {
		t.Fatalf("got %+v want Tier 10 Blade and Tier 1 Ring", got)
	}

	got = FilterByTiers(recipes, []string{"Tier 1", "Tier 10", "Tier 2"})
	if len(got) != 3 {
		t.Fatalf("got %d recipes want 3 (no duplicates)", len(got))
	}

	if got := FilterByTiers(recipes, nil); len(got) != 0 {
		t.Fatalf("no tiers enabled should select nothing, got %+v", got)
	}
	if got := FilterByTiers(recipes, []string{""}); len(got) != 0 {
		t.Fatalf("blank tier label should select nothing, got %+v", got)
	}
}

func TestCountByTier(t *testing.T) {
	recipes := []crafting.Recipe{{Name: "Tier 1 Ring"}, {Name: "Tier 1 Amulet"}, {Name: "Tier 2 Helm"}}
	got := CountByTier(recipes, []string{"Tier 1", "Tier 2", "Tier 3"})
	want := map[string]int{"Tier 1": 2, "Tier 2": 1, "Tier 3": 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CountByTier=%v want=%v", got, want)
	}
}
