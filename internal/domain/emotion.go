package domain

// BreathingPattern holds the per-phase seconds and number of cycles for a
// breathing exercise.
type BreathingPattern struct {
	Inhale int `json:"inhale" yaml:"inhale"`
	Hold   int `json:"hold" yaml:"hold"`
	Exhale int `json:"exhale" yaml:"exhale"`
	Cycles int `json:"cycles" yaml:"cycles"`
}

// DefaultBreathingPattern is used when an emotion defines no pattern.
func DefaultBreathingPattern() BreathingPattern {
	return BreathingPattern{Inhale: 4, Hold: 4, Exhale: 4, Cycles: 3}
}

// CycleSeconds returns the length of one full cycle in seconds.
func (p BreathingPattern) CycleSeconds() int {
	return p.Inhale + p.Hold + p.Exhale
}

// Emotion describes one emotional state with its coping material.
type Emotion struct {
	ID               string           `json:"id" yaml:"id"`
	Name             string           `json:"name" yaml:"name"`
	Description      string           `json:"description" yaml:"description"`
	Icon             string           `json:"icon" yaml:"icon"`
	Color            string           `json:"color" yaml:"color"`
	Triggers         []string         `json:"triggers" yaml:"triggers"`
	Symptoms         []string         `json:"symptoms" yaml:"symptoms"`
	CopingStrategies []string         `json:"coping_strategies" yaml:"coping_strategies"`
	Breathing        BreathingPattern `json:"breathing" yaml:"breathing"`
}
