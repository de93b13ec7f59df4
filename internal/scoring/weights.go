// Package scoring turns a player's cumulative match record into a single
// role-weighted performance score.
package scoring

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"scoreworker/internal/reference"
)

//go:embed default_weights.yaml
var defaultWeightsData []byte

// SideWeights weighs a counter per side.
type SideWeights struct {
	Attacking float64 `yaml:"attacking"`
	Defending float64 `yaml:"defending"`
}

// RoleWeights are the role-specific parts of the formula.
type RoleWeights struct {
	Kill   SideWeights `yaml:"kill"`
	Death  SideWeights `yaml:"death"`
	Assist float64     `yaml:"assist"`
}

// Weights configures the scoring formula.
type Weights struct {
	Roles map[reference.Role]RoleWeights `yaml:"roles"`

	EconKill        float64 `yaml:"econ_kill"`
	RoundWin        float64 `yaml:"round_win"`
	RoundSurvive    float64 `yaml:"round_survive"`
	AbilityDamaging float64 `yaml:"ability_damaging"`
	AbilityUtility  float64 `yaml:"ability_utility"`
	FirstBlood      float64 `yaml:"first_blood"`
	MultiKill       float64 `yaml:"multi_kill"`
	ClutchWin       float64 `yaml:"clutch_win"`
	InitiatorDeath  float64 `yaml:"initiator_death"`
}

// DefaultWeights returns the built-in weights.
func DefaultWeights() Weights {
	w, err := ParseWeights(defaultWeightsData)
	if err != nil {
		panic(fmt.Sprintf("embedded weights: %v", err))
	}
	return w
}

// LoadWeights reads weights from a YAML file.
func LoadWeights(path string) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, fmt.Errorf("read weights: %w", err)
	}
	return ParseWeights(data)
}

// ParseWeights decodes weights from YAML.
func ParseWeights(data []byte) (Weights, error) {
	var w Weights
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Weights{}, fmt.Errorf("parse weights: %w", err)
	}
	return w, nil
}

// ForRole returns the weights of role, falling back to the Unknown role and
// then to zero weights.
func (w Weights) ForRole(role reference.Role) RoleWeights {
	if rw, ok := w.Roles[role]; ok {
		return rw
	}
	return w.Roles[reference.RoleUnknown]
}

func (sw SideWeights) apply(attacking, defending int) float64 {
	return float64(attacking)*sw.Attacking + float64(defending)*sw.Defending
}
