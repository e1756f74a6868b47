package crafting

import (
	"encoding/json"
	"strconv"
)

const unlimitedLabel = "unlimited"

// Count is the number of times a recipe can be crafted. It is either
// bounded by some material or unconstrained, when none of the recipe's
// materials limit it. The zero value is Bounded(0).
type Count struct {
	n             int
	unconstrained bool
}

// Bounded returns a count limited to n crafts.
func Bounded(n int) Count {
	if n < 0 {
		n = 0
	}
	return Count{n: n}
}

// Unconstrained returns a count with no upper bound.
func Unconstrained() Count {
	return Count{unconstrained: true}
}

// IsUnconstrained reports whether no material bounds the count.
func (c Count) IsUnconstrained() bool { return c.unconstrained }

// Value returns the bounded count. ok is false for an unconstrained count.
func (c Count) Value() (n int, ok bool) {
	if c.unconstrained {
		return 0, false
	}
	return c.n, true
}

// Min returns the smaller of c and Bounded(n).
func (c Count) Min(n int) Count {
	if c.unconstrained || n < c.n {
		return Bounded(n)
	}
	return c
}

// Positive reports whether at least one craft is possible.
func (c Count) Positive() bool {
	return c.unconstrained || c.n > 0
}

func (c Count) String() string {
	if c.unconstrained {
		return unlimitedLabel
	}
	return strconv.Itoa(c.n)
}

// MarshalJSON encodes a bounded count as a number and an unconstrained
// one as the string "unlimited".
func (c Count) MarshalJSON() ([]byte, error) {
	if c.unconstrained {
		return json.Marshal(unlimitedLabel)
	}
	return []byte(strconv.Itoa(c.n)), nil
}
