package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rsned/mort-crafting-server/pkg/crafting"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if got := len(cfg.Selection.EnabledSources()); got != 4 {
		t.Fatalf("enabled sources=%d want=4", got)
	}
	wantTiers := []string{"Tier 1", "Tier 2", "Tier 3", "Tier 4", "Tier 5", "Tier 6"}
	if got := cfg.Selection.EnabledTiers(); !reflect.DeepEqual(got, wantTiers) {
		t.Fatalf("enabled tiers=%v want=%v", got, wantTiers)
	}
	if cfg.SpecialPolicy != crafting.PolicyExcludeFromLimit {
		t.Fatalf("policy=%q want=%q", cfg.SpecialPolicy, crafting.PolicyExcludeFromLimit)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	data := `
selection:
  tiers:
    - {name: Tier 1, enabled: false}
    - {name: Tier 2, enabled: true}
special_materials: [Moon Dust]
special_policy: drop_at_parse
`
	path := filepath.Join(t.TempDir(), "crafting.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Selection.EnabledTiers(); !reflect.DeepEqual(got, []string{"Tier 2"}) {
		t.Fatalf("enabled tiers=%v want=[Tier 2]", got)
	}
	if len(cfg.Selection.Sources) != 4 {
		t.Fatalf("sources should keep defaults, got %+v", cfg.Selection.Sources)
	}
	if !reflect.DeepEqual(cfg.SpecialMaterials, []string{"Moon Dust"}) {
		t.Fatalf("special materials=%v", cfg.SpecialMaterials)
	}
	if cfg.SpecialPolicy != crafting.PolicyDropAtParse {
		t.Fatalf("policy=%q want=%q", cfg.SpecialPolicy, crafting.PolicyDropAtParse)
	}
}

func TestParseRejectsUnknownPolicy(t *testing.T) {
	if _, err := Parse([]byte("special_policy: sometimes\n")); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
