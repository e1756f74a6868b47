// Package crafting contains the core types for the crafting calculator server.
package crafting

// ============================================
// CATALOG TYPES
// ============================================

// Source is one named catalog text (e.g. "armor.txt") as handed to the
// catalog loader. Text is already resolved; Included says whether the
// source takes part in the current computation.
type Source struct {
	Name     string
	Text     string
	Included bool
}

// Tier is a crafting bracket parsed from a catalog tier line.
type Tier struct {
	Name          string `json:"name"`
	Level         int    `json:"level"`
	Color         string `json:"color"`
	CraftingLevel int    `json:"crafting_level"`
}

// Material is a single input of a recipe.
type Material struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// Recipe is a craftable item and its ordered material list.
type Recipe struct {
	Name      string     `json:"name"`
	Source    string     `json:"source,omitempty"`
	Materials []Material `json:"materials"`
}

// Quantity returns the required quantity of item, if the recipe uses it.
func (r Recipe) Quantity(item string) (int, bool) {
	for _, m := range r.Materials {
		if m.Item == item {
			return m.Quantity, true
		}
	}
	return 0, false
}

// Inventory maps item names to quantities held.
type Inventory map[string]int

// ============================================
// SELECTION TYPES
// ============================================

// Toggle enables or disables a named source or tier.
type Toggle struct {
	Name    string `json:"name" yaml:"name"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// Selection is the set of sources and tiers a computation runs over.
type Selection struct {
	Sources []Toggle `json:"sources,omitempty" yaml:"sources"`
	Tiers   []Toggle `json:"tiers,omitempty" yaml:"tiers"`
}

// EnabledTiers returns the labels of the enabled tiers in order.
func (s Selection) EnabledTiers() []string {
	var out []string
	for _, t := range s.Tiers {
		if t.Enabled {
			out = append(out, t.Name)
		}
	}
	return out
}

// EnabledSources returns the names of the enabled sources in order.
func (s Selection) EnabledSources() []string {
	var out []string
	for _, src := range s.Sources {
		if src.Enabled {
			out = append(out, src.Name)
		}
	}
	return out
}

// SpecialPolicy controls how special materials are treated.
type SpecialPolicy string

const (
	// PolicyExcludeFromLimit keeps special materials in recipes but ignores
	// them when computing craftable counts.
	PolicyExcludeFromLimit SpecialPolicy = "exclude_from_limit"
	// PolicyDropAtParse removes special materials from recipes while parsing.
	PolicyDropAtParse SpecialPolicy = "drop_at_parse"
)

// IsValid checks if the policy is a known policy.
func (p SpecialPolicy) IsValid() bool {
	return p == PolicyExcludeFromLimit || p == PolicyDropAtParse
}

// DefaultSpecialMaterials are the essences that never limit a craft.
func DefaultSpecialMaterials() []string {
	return []string{"Violent Essence", "Vigor Essence"}
}

// ============================================
// QUERY RESULT TYPES
// ============================================

// MaterialStatus is one line of a recipe breakdown against an inventory.
type MaterialStatus struct {
	Item      string `json:"item"`
	Required  int    `json:"required"`
	Available int    `json:"available"`
	Excluded  bool   `json:"excluded,omitempty"` // special material, ignored for the count
	Limiting  bool   `json:"limiting,omitempty"`
}

// CraftabilityResult is one row of a crafting report.
type CraftabilityResult struct {
	RecipeName     string           `json:"recipe_name"`
	CraftableCount Count            `json:"craftable_count"`
	Materials      []MaterialStatus `json:"materials"`
}

// ReportStats contains metadata about a report computation.
type ReportStats struct {
	SourcesLoaded      int      `json:"sources_loaded"`
	MissingSources     []string `json:"missing_sources,omitempty"`
	MalformedLines     int      `json:"malformed_lines"`
	RecipesLoaded      int      `json:"recipes_loaded"`
	RecipesChecked     int      `json:"recipes_checked"`
	InventoryItems     int      `json:"inventory_items"`
	InventoryLinesSkip int      `json:"inventory_lines_skipped"`
	ProcessingTimeMs   int64    `json:"processing_time_ms"`
}

// ============================================
// TOOL REQUEST/RESPONSE TYPES
// ============================================

// CraftReportRequest is the input for the craft_report tool.
// Empty Sources or Tiers fall back to the server's configured selection.
type CraftReportRequest struct {
	Inventory string        `json:"inventory"`
	Sources   []Toggle      `json:"sources,omitempty"`
	Tiers     []Toggle      `json:"tiers,omitempty"`
	Policy    SpecialPolicy `json:"special_policy,omitempty"`
}

// CraftReportResponse is the output for the craft_report tool.
type CraftReportResponse struct {
	Craftable []CraftabilityResult `json:"craftable"`
	Tiers     []Tier               `json:"tiers,omitempty"`
	Stats     ReportStats          `json:"stats"`
}

// RecipeLookupRequest is the input for the recipe_lookup tool.
type RecipeLookupRequest struct {
	Name    string   `json:"name,omitempty"`
	Search  string   `json:"search,omitempty"`
	Sources []Toggle `json:"sources,omitempty"`
}

// RecipeLookupResponse is the output for the recipe_lookup tool.
type RecipeLookupResponse struct {
	Recipe        *Recipe           `json:"recipe,omitempty"`
	UsedInRecipes []string          `json:"used_in_recipes,omitempty"`
	SearchResults []RecipeSearchHit `json:"search_results,omitempty"`
	Suggestions   []string          `json:"suggestions,omitempty"`
}

// RecipeSearchHit is a lightweight recipe match for search results.
type RecipeSearchHit struct {
	Name      string `json:"name"`
	Source    string `json:"source,omitempty"`
	Materials int    `json:"materials"`
}

// ComponentUsesRequest is the input for the component_uses tool.
type ComponentUsesRequest struct {
	Item    string   `json:"item"`
	Sources []Toggle `json:"sources,omitempty"`
	Tiers   []Toggle `json:"tiers,omitempty"`
}

// ComponentUsesResponse is the output for the component_uses tool.
type ComponentUsesResponse struct {
	Item      string             `json:"item"`
	Special   bool               `json:"special,omitempty"`
	UsedIn    []ComponentUseInfo `json:"used_in"`
	TotalUses int                `json:"total_uses"`
}

// ComponentUseInfo describes how a material is used in a recipe.
type ComponentUseInfo struct {
	RecipeName       string `json:"recipe_name"`
	Source           string `json:"source,omitempty"`
	QuantityPerCraft int    `json:"quantity_per_craft"`
}

// CraftPathRequest is the input for the craft_path_to tool.
type CraftPathRequest struct {
	RecipeName     string   `json:"recipe_name"`
	TargetQuantity int      `json:"target_quantity"`
	Inventory      string   `json:"inventory"`
	Sources        []Toggle `json:"sources,omitempty"`
}

// CraftPathResponse is the output for the craft_path_to tool.
type CraftPathResponse struct {
	RecipeName      string                `json:"recipe_name"`
	Found           bool                  `json:"found"`
	Quantity        int                   `json:"quantity"`
	Feasible        bool                  `json:"feasible"`
	CraftableNow    Count                 `json:"craftable_now"`
	MaterialsNeeded []MaterialRequirement `json:"materials_needed,omitempty"`
	Summary         CraftPathSummary      `json:"summary"`
}

// MaterialRequirement represents a material needed for a target quantity.
type MaterialRequirement struct {
	Item              string `json:"item"`
	QuantityNeeded    int    `json:"quantity_needed"`
	QuantityHave      int    `json:"quantity_have"`
	QuantityToAcquire int    `json:"quantity_to_acquire"`
	Excluded          bool   `json:"excluded,omitempty"`
	IsCraftable       bool   `json:"is_craftable"`
}

// CraftPathSummary provides aggregate info about a craft path.
type CraftPathSummary struct {
	TotalMaterials     int `json:"total_materials"`
	MaterialsHave      int `json:"materials_have"`
	MaterialsToAcquire int `json:"materials_to_acquire"`
	MaterialsCraftable int `json:"materials_craftable"`
}

// TierStatusRequest is the input for the tier_status tool.
type TierStatusRequest struct {
	CharacterLevel int      `json:"character_level"`
	CraftingLevel  int      `json:"crafting_level"`
	Sources        []Toggle `json:"sources,omitempty"`
}

// TierStatusResponse is the output for the tier_status tool.
type TierStatusResponse struct {
	Tiers   []TierProgress `json:"tiers"`
	Summary TierSummary    `json:"summary"`
}

// TierProgress reports whether a player can work in a tier.
type TierProgress struct {
	Tier             Tier `json:"tier"`
	LevelReady       bool `json:"level_ready"`
	CraftingReady    bool `json:"crafting_ready"`
	CraftingLevelsTo int  `json:"crafting_levels_to_unlock,omitempty"`
	Recipes          int  `json:"recipes"`
}

// TierSummary provides aggregate info about tier progress.
type TierSummary struct {
	TotalTiers    int    `json:"total_tiers"`
	Unlocked      int    `json:"unlocked"`
	Locked        int    `json:"locked"`
	NextTier      string `json:"next_tier,omitempty"`
	NextTierLevel int    `json:"next_tier_crafting_level,omitempty"`
}

// SourceInfo describes a stored catalog source.
type SourceInfo struct {
	Name      string `json:"name"`
	Bytes     int    `json:"bytes"`
	Size      string `json:"size"` // Bytes in human units, e.g. "1.2 kB"
	Lines     int    `json:"lines"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// ListSourcesResponse is the output for the list_sources tool.
type ListSourcesResponse struct {
	Sources []SourceInfo `json:"sources"`
}
