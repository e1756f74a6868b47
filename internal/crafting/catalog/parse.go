// Package catalog parses crafting catalog text into tiers and recipes.
//
// A catalog source is plain text, one entry per line:
//
//	# comment
//	Tier 1, Level 1, Green, Level 20
//	Iron Sword Tier 1, Iron Ore(4), Wood(2), Violent Essence(1)
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rsned/mort-crafting-server/pkg/crafting"
)

// ErrMalformedLine is returned by ParseLine for a line that looks like a
// tier or recipe but cannot be parsed. Callers skip such lines.
var ErrMalformedLine = errors.New("malformed catalog line")

// EntryKind identifies what a catalog line produced.
type EntryKind int

const (
	EntryNone EntryKind = iota
	EntryTier
	EntryRecipe
)

// Entry is the result of parsing one catalog line.
type Entry struct {
	Kind   EntryKind
	Tier   crafting.Tier
	Recipe crafting.Recipe
}

// ParseOptions adjusts recipe parsing.
type ParseOptions struct {
	// Drop lists material names removed from recipes while parsing.
	Drop []string
}

func (o ParseOptions) drops(item string) bool {
	for _, d := range o.Drop {
		if d == item {
			return true
		}
	}
	return false
}

// ParseLine parses a single catalog line.
func ParseLine(line string, opts ParseOptions) (Entry, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Entry{}, nil
	}

	if strings.Contains(line, "Tier") && strings.Contains(line, ",") && strings.Contains(line, "Level") {
		tier, err := parseTier(line)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Kind: EntryTier, Tier: tier}, nil
	}

	if strings.Contains(line, ",") {
		recipe, err := parseRecipe(line, opts)
		if err != nil {
			return Entry{}, err
		}
		if len(recipe.Materials) == 0 {
			return Entry{}, nil
		}
		return Entry{Kind: EntryRecipe, Recipe: recipe}, nil
	}

	return Entry{}, nil
}

// parseTier parses "Tier 1, Level 1, Green, Level 20".
func parseTier(line string) (crafting.Tier, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 4 {
		return crafting.Tier{}, fmt.Errorf("%w: tier line has %d fields, want 4", ErrMalformedLine, len(parts))
	}

	level, err := parseLevel(parts[1])
	if err != nil {
		return crafting.Tier{}, err
	}
	craftingLevel, err := parseLevel(parts[3])
	if err != nil {
		return crafting.Tier{}, err
	}

	return crafting.Tier{
		Name:          strings.TrimSpace(parts[0]),
		Level:         level,
		Color:         strings.TrimSpace(parts[2]),
		CraftingLevel: craftingLevel,
	}, nil
}

func parseLevel(field string) (int, error) {
	s := strings.TrimSpace(strings.ReplaceAll(field, "Level ", ""))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: level %q is not an integer", ErrMalformedLine, s)
	}
	return n, nil
}

// parseRecipe parses "Name, Item A(4), Item B(2)".
func parseRecipe(line string, opts ParseOptions) (crafting.Recipe, error) {
	parts := strings.Split(line, ",")
	recipe := crafting.Recipe{Name: strings.TrimSpace(parts[0])}

	index := make(map[string]int)
	for _, token := range parts[1:] {
		item, qty, ok, err := parseMaterial(token)
		if err != nil {
			return crafting.Recipe{}, err
		}
		if !ok || opts.drops(item) {
			continue
		}
		if qty <= 0 {
			return crafting.Recipe{}, fmt.Errorf("%w: %s needs a positive quantity, got %d", ErrMalformedLine, item, qty)
		}

		// A repeated item keeps its first position and the later quantity.
		if i, seen := index[item]; seen {
			recipe.Materials[i].Quantity = qty
			continue
		}
		index[item] = len(recipe.Materials)
		recipe.Materials = append(recipe.Materials, crafting.Material{Item: item, Quantity: qty})
	}

	return recipe, nil
}

// parseMaterial parses "Item Name(3)". ok is false when the token is not a
// material token at all.
func parseMaterial(token string) (item string, qty int, ok bool, err error) {
	token = strings.TrimSpace(token)
	if !strings.Contains(token, "(") || !strings.Contains(token, ")") {
		return "", 0, false, nil
	}

	item, rest, _ := strings.Cut(token, "(")
	item = strings.TrimSpace(item)
	inner, _, found := strings.Cut(rest, ")")
	if !found {
		return "", 0, false, fmt.Errorf("%w: unbalanced parentheses in %q", ErrMalformedLine, token)
	}

	qty, err = strconv.Atoi(strings.TrimSpace(inner))
	if err != nil {
		return "", 0, false, fmt.Errorf("%w: quantity %q of %s is not an integer", ErrMalformedLine, inner, item)
	}
	return item, qty, true, nil
}
