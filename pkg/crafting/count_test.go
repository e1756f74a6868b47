package crafting

import (
	"encoding/json"
	"testing"
)

func TestCountMin(t *testing.T) {
	c := Unconstrained()
	if !c.Positive() {
		t.Fatalf("unconstrained count should be positive")
	}
	c = c.Min(7).Min(3).Min(5)
	if n, ok := c.Value(); !ok || n != 3 {
		t.Fatalf("Value()=(%d,%v) want=(3,true)", n, ok)
	}
	if c = c.Min(0); c.Positive() {
		t.Fatalf("expected zero count after Min(0), got %v", c)
	}
}

func TestCountJSON(t *testing.T) {
	tests := []struct {
		in   Count
		want string
	}{
		{in: Bounded(4), want: `4`},
		{in: Bounded(-2), want: `0`},
		{in: Unconstrained(), want: `"unlimited"`},
	}
	for _, tc := range tests {
		data, err := json.Marshal(tc.in)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", tc.in, err)
		}
		if string(data) != tc.want {
			t.Fatalf("Marshal(%v)=%s want=%s", tc.in, data, tc.want)
		}
	}
}
