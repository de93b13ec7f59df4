package reference

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Role is an agent's tactical classification.
type Role string

const (
	RoleDuelist    Role = "Duelist"
	RoleController Role = "Controller"
	RoleSentinel   Role = "Sentinel"
	RoleInitiator  Role = "Initiator"
	RoleUnknown    Role = "Unknown"
)

// Ability describes one inventory slot of an agent kit.
type Ability struct {
	Name        string  `yaml:"name"`
	DealsDamage bool    `yaml:"deals_damage"`
	Duration    float64 `yaml:"duration"` // in snapshot ticks; <= 0 means no lingering effect
}

// Agent is a playable character.
type Agent struct {
	Name      string             `yaml:"name"`
	Role      Role               `yaml:"role"`
	Abilities map[string]Ability `yaml:"abilities"` // keyed by inventory slot
}

// Weapon is a purchasable item.
type Weapon struct {
	Name string `yaml:"name"`
	Cost int    `yaml:"cost"`
}

// Tables holds the static lookup data supplied alongside a match.
type Tables struct {
	Agents  map[string]Agent  `yaml:"agents"`  // keyed by agent guid
	Weapons map[string]Weapon `yaml:"weapons"` // keyed by item guid
}

// Load reads reference tables from a YAML file.
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference tables: %w", err)
	}
	return Parse(data)
}

// Parse decodes reference tables from YAML.
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse reference tables: %w", err)
	}
	for id, a := range t.Agents {
		if a.Role == "" {
			a.Role = RoleUnknown
			t.Agents[id] = a
		}
	}
	return &t, nil
}

// Agent looks up an agent by guid.
func (t *Tables) Agent(id string) (Agent, bool) {
	if t == nil || id == "" {
		return Agent{}, false
	}
	a, ok := t.Agents[id]
	return a, ok
}

// Weapon looks up a weapon by item guid.
func (t *Tables) Weapon(id string) (Weapon, bool) {
	if t == nil || id == "" {
		return Weapon{}, false
	}
	w, ok := t.Weapons[id]
	return w, ok
}

// Ability looks up a slot within an agent's kit.
func (a Agent) Ability(slot string) (Ability, bool) {
	ab, ok := a.Abilities[slot]
	return ab, ok
}
