package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quirino-git/fbs-plan/pkg/model"
)

// Inventory is the club's static reference data: the physical pitches and
// the club's own teams. It is read once at startup and never mutated.
type Inventory struct {
	Pitches []model.Pitch `yaml:"pitches"`
	Teams   []model.Team  `yaml:"teams"`
}

func LoadInventory(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read inventory file: %w", err)
	}

	var inv Inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("parse inventory file: %w", err)
	}

	if err := inv.validate(); err != nil {
		return nil, fmt.Errorf("invalid inventory: %w", err)
	}
	return &inv, nil
}

func (inv *Inventory) validate() error {
	if len(inv.Pitches) == 0 {
		return fmt.Errorf("at least one pitch is required")
	}

	seen := make(map[string]bool, len(inv.Pitches))
	for i, p := range inv.Pitches {
		if p.ID == "" || p.Name == "" {
			return fmt.Errorf("pitch %d: id and name are required", i)
		}
		if p.Surface != model.SurfaceFull && p.Surface != model.SurfaceCompact {
			return fmt.Errorf("pitch %q: surface must be %q or %q", p.ID, model.SurfaceFull, model.SurfaceCompact)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate pitch id %q", p.ID)
		}
		seen[p.ID] = true
	}

	seenTeams := make(map[string]bool, len(inv.Teams))
	for i, t := range inv.Teams {
		if t.ID == "" || t.Name == "" {
			return fmt.Errorf("team %d: id and name are required", i)
		}
		if seenTeams[t.ID] {
			return fmt.Errorf("duplicate team id %q", t.ID)
		}
		seenTeams[t.ID] = true
	}

	return nil
}
