// Package inventory parses pasted player inventories.
//
// Each line names one item and its quantity, optionally after a bracketed
// tag that is discarded:
//
//	[3] Iron Ore(58)
//	Silver Dust(12)
package inventory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rsned/mort-crafting-server/pkg/crafting"
)

// ErrMalformedLine is reported for inventory lines that were skipped.
var ErrMalformedLine = errors.New("malformed inventory line")

// Stats describes what Parse did with its input.
type Stats struct {
	Lines   int // non-blank lines seen
	Parsed  int
	Skipped int
}

// Parse parses raw inventory text. Lines that cannot be parsed are skipped
// and counted; a later line for the same item replaces the earlier quantity.
func Parse(text string) (crafting.Inventory, Stats) {
	inv := make(crafting.Inventory)
	var stats Stats

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		stats.Lines++

		item, qty, err := ParseLine(line)
		if err != nil {
			stats.Skipped++
			continue
		}
		inv[item] = qty
		stats.Parsed++
	}

	return inv, stats
}

// ParseLine parses a single inventory line into an item and quantity.
func ParseLine(line string) (string, int, error) {
	data := line
	if _, after, found := strings.Cut(line, "]"); found {
		data = after
	}
	data = strings.TrimSpace(data)

	name, rest, found := strings.Cut(data, "(")
	if !found {
		return "", 0, fmt.Errorf("%w: no quantity in %q", ErrMalformedLine, line)
	}
	inner, _, found := strings.Cut(rest, ")")
	if !found {
		return "", 0, fmt.Errorf("%w: unclosed quantity in %q", ErrMalformedLine, line)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, fmt.Errorf("%w: missing item name in %q", ErrMalformedLine, line)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(inner))
	if err != nil || qty < 0 {
		return "", 0, fmt.Errorf("%w: bad quantity %q for %s", ErrMalformedLine, inner, name)
	}

	return name, qty, nil
}
