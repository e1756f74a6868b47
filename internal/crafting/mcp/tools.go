package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rsned/mort-crafting-server/pkg/crafting"
)

// ToolDefinition describes an MCP tool.
type ToolDefinition struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	InputSchema JSONSchema `json:"inputSchema"`
}

// JSONSchema is a simplified JSON Schema representation.
type JSONSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties,omitempty"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes a schema property.
type Property struct {
	Type        string              `json:"type,omitempty"`
	Description string              `json:"description,omitempty"`
	Default     any                 `json:"default,omitempty"`
	Enum        []string            `json:"enum,omitempty"`
	Minimum     *float64            `json:"minimum,omitempty"`
	Items       *Property           `json:"items,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`
}

// GetToolDefinitions returns all tool definitions.
func GetToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		craftReportTool(),
		recipeLookupTool(),
		componentUsesTool(),
		craftPathToTool(),
		tierStatusTool(),
		listSourcesTool(),
	}
}

// toggleList is the schema shared by every sources/tiers selection argument.
func toggleList(description string) Property {
	return Property{
		Type:        "array",
		Description: description,
		Items: &Property{
			Type: "object",
			Properties: map[string]Property{
				"name":    {Type: "string"},
				"enabled": {Type: "boolean"},
			},
			Required: []string{"name", "enabled"},
		},
	}
}

const sourcesDescription = "Catalog sources to load, in order. Defaults to the configured selection."

func craftReportTool() ToolDefinition {
	return ToolDefinition{
		Name:        "craft_report",
		Description: "Report which recipes in the enabled tiers can be crafted from a pasted inventory, and how many times each.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"inventory": {
					Type:        "string",
					Description: "Inventory text, one item per line in the form '[slot] Item Name(quantity)'",
				},
				"sources": toggleList(sourcesDescription),
				"tiers":   toggleList("Tier labels to include. Defaults to the configured selection."),
				"special_policy": {
					Type:        "string",
					Description: "How special materials are treated",
					Enum:        []string{string(crafting.PolicyExcludeFromLimit), string(crafting.PolicyDropAtParse)},
					Default:     string(crafting.PolicyExcludeFromLimit),
				},
			},
			Required: []string{"inventory"},
		},
	}
}

func recipeLookupTool() ToolDefinition {
	return ToolDefinition{
		Name:        "recipe_lookup",
		Description: "Look up a recipe by exact name or search term. Returns its materials, close-name suggestions, and the recipes that use it.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"name": {
					Type:        "string",
					Description: "Exact recipe name",
				},
				"search": {
					Type:        "string",
					Description: "Search term for recipe names (alternative to name)",
				},
				"sources": toggleList(sourcesDescription),
			},
		},
	}
}

func componentUsesTool() ToolDefinition {
	return ToolDefinition{
		Name:        "component_uses",
		Description: "Find all recipes that use a material, with the quantity needed per craft.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"item": {
					Type:        "string",
					Description: "Material name",
				},
				"sources": toggleList(sourcesDescription),
				"tiers":   toggleList("Restrict results to these tier labels"),
			},
			Required: []string{"item"},
		},
	}
}

func craftPathToTool() ToolDefinition {
	minQty := 1.0

	return ToolDefinition{
		Name:        "craft_path_to",
		Description: "Calculate the materials needed to craft a recipe a number of times, compared against an inventory.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"recipe_name": {
					Type:        "string",
					Description: "Recipe to craft",
				},
				"target_quantity": {
					Type:        "integer",
					Description: "How many to craft",
					Default:     1,
					Minimum:     &minQty,
				},
				"inventory": {
					Type:        "string",
					Description: "Inventory text in the same form as craft_report",
				},
				"sources": toggleList(sourcesDescription),
			},
			Required: []string{"recipe_name"},
		},
	}
}

func tierStatusTool() ToolDefinition {
	minLevel := 0.0

	return ToolDefinition{
		Name:        "tier_status",
		Description: "Show which tiers the player's character and crafting levels unlock, and the recipe count per tier.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"character_level": {
					Type:        "integer",
					Description: "Character level",
					Minimum:     &minLevel,
				},
				"crafting_level": {
					Type:        "integer",
					Description: "Crafting level",
					Minimum:     &minLevel,
				},
				"sources": toggleList(sourcesDescription),
			},
			Required: []string{"character_level", "crafting_level"},
		},
	}
}

func listSourcesTool() ToolDefinition {
	return ToolDefinition{
		Name:        "list_sources",
		Description: "List the catalog sources stored in the database.",
		InputSchema: JSONSchema{Type: "object"},
	}
}

// Tool handlers

// decodeArgs unmarshals tool arguments, treating absent arguments as empty.
func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func (s *Server) toolCraftReport(ctx context.Context, args json.RawMessage) (any, error) {
	var req crafting.CraftReportRequest
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	if req.Policy != "" && !req.Policy.IsValid() {
		return nil, fmt.Errorf("unknown special_policy %q", req.Policy)
	}
	return s.engine.CraftReport(ctx, req)
}

func (s *Server) toolRecipeLookup(ctx context.Context, args json.RawMessage) (any, error) {
	var req crafting.RecipeLookupRequest
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	if req.Name == "" && req.Search == "" {
		return nil, fmt.Errorf("one of name or search is required")
	}
	return s.engine.RecipeLookup(ctx, req)
}

func (s *Server) toolComponentUses(ctx context.Context, args json.RawMessage) (any, error) {
	var req crafting.ComponentUsesRequest
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	if req.Item == "" {
		return nil, fmt.Errorf("item is required")
	}
	return s.engine.ComponentUses(ctx, req)
}

func (s *Server) toolCraftPathTo(ctx context.Context, args json.RawMessage) (any, error) {
	var req crafting.CraftPathRequest
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	if req.RecipeName == "" {
		return nil, fmt.Errorf("recipe_name is required")
	}
	return s.engine.CraftPathTo(ctx, req)
}

func (s *Server) toolTierStatus(ctx context.Context, args json.RawMessage) (any, error) {
	var req crafting.TierStatusRequest
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	return s.engine.TierStatus(ctx, req)
}

func (s *Server) toolListSources(ctx context.Context, _ json.RawMessage) (any, error) {
	return s.engine.ListSources(ctx)
}
