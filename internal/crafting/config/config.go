// Package config loads the server's default crafting selection.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rsned/mort-crafting-server/pkg/crafting"
)

// Config is the YAML selection file.
//
//	selection:
//	  sources:
//	    - {name: alchemy.txt, enabled: true}
//	  tiers:
//	    - {name: Tier 1, enabled: true}
//	special_materials: [Violent Essence, Vigor Essence]
//	special_policy: exclude_from_limit
type Config struct {
	Selection        crafting.Selection     `yaml:"selection"`
	SpecialMaterials []string               `yaml:"special_materials"`
	SpecialPolicy    crafting.SpecialPolicy `yaml:"special_policy"`
}

// Default returns the stock selection: the four catalog files and tiers
// 1 through 6, all enabled.
func Default() Config {
	cfg := Config{
		SpecialMaterials: crafting.DefaultSpecialMaterials(),
		SpecialPolicy:    crafting.PolicyExcludeFromLimit,
	}
	for _, name := range []string{"alchemy.txt", "armor.txt", "weapons.txt", "jewel.txt"} {
		cfg.Selection.Sources = append(cfg.Selection.Sources, crafting.Toggle{Name: name, Enabled: true})
	}
	for i := 1; i <= 6; i++ {
		cfg.Selection.Tiers = append(cfg.Selection.Tiers, crafting.Toggle{Name: fmt.Sprintf("Tier %d", i), Enabled: true})
	}
	return cfg
}

// Load reads a config file. Fields missing from the file keep their
// defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config data on top of Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if len(file.Selection.Sources) > 0 {
		cfg.Selection.Sources = file.Selection.Sources
	}
	if len(file.Selection.Tiers) > 0 {
		cfg.Selection.Tiers = file.Selection.Tiers
	}
	if file.SpecialMaterials != nil {
		cfg.SpecialMaterials = file.SpecialMaterials
	}
	if file.SpecialPolicy != "" {
		if !file.SpecialPolicy.IsValid() {
			return Config{}, fmt.Errorf("unknown special_policy %q", file.SpecialPolicy)
		}
		cfg.SpecialPolicy = file.SpecialPolicy
	}

	return cfg, nil
}
