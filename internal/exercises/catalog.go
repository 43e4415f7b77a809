// Package exercises holds the data tables of every guided exercise. Each
// exercise is a flow.Definition; timed steps describe their countdown as a
// countdown.Pattern.
package exercises

import (
	"fmt"
	"sort"
	"time"

	"github.com/xvierd/calm-cli/internal/countdown"
	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/flow"
)

// Exercise ids that do not depend on an emotion.
const (
	Grounding             = "grounding"
	PhysicalGrounding     = "physical-grounding"
	UrgeSurfing           = "urge-surfing"
	ReplacementAction     = "replacement-action"
	RealityCheck          = "reality-check"
	Reframing             = "reframing"
	EmotionLabeling       = "emotion-labeling"
	ResponseDelay         = "response-delay"
	TaskChunking          = "task-chunking"
	TwoMinuteRule         = "two-minute-rule"
	VisualProgress        = "visual-progress"
	TriggerIdentification = "trigger-identification"
	SubstitutionHabits    = "substitution-habits"
	SelfCompassion        = "self-compassion"
	SocialScripts         = "social-scripts"
	GradualExposure       = "gradual-exposure"
	PostureBreathing      = "posture-breathing"
)

// BreathingID returns the id of the breathing exercise for an emotion.
func BreathingID(emotionID string) string { return "breathing-" + emotionID }

// JournalingID returns the id of the journaling exercise for an emotion.
func JournalingID(emotionID string) string { return "journaling-" + emotionID }

// Settings holds the configurable timer lengths.
type Settings struct {
	TwoMinute     time.Duration
	UrgeBreath    time.Duration
	ResponseDelay time.Duration
}

// DefaultSettings returns the stock timer lengths.
func DefaultSettings() Settings {
	return Settings{
		TwoMinute:     2 * time.Minute,
		UrgeBreath:    90 * time.Second,
		ResponseDelay: 5 * time.Minute,
	}
}

// Catalog indexes exercise definitions by id.
type Catalog struct {
	settings Settings
	emotions map[string]*domain.Emotion
	defs     map[string]*flow.Definition
}

// NewCatalog builds every exercise. Breathing and journaling exercises are
// generated for each emotion given.
func NewCatalog(settings Settings, emotions []*domain.Emotion) *Catalog {
	c := &Catalog{
		settings: settings,
		emotions: make(map[string]*domain.Emotion, len(emotions)),
		defs:     make(map[string]*flow.Definition),
	}
	for _, e := range emotions {
		c.emotions[e.ID] = e
		c.add(breathing(e))
		c.add(journaling(e))
	}
	c.add(grounding())
	c.add(physicalGrounding())
	c.add(urgeSurfing(settings.UrgeBreath))
	c.add(replacementAction())
	c.add(realityCheck())
	c.add(reframing())
	c.add(emotionLabeling())
	c.add(responseDelay(settings.ResponseDelay))
	c.add(taskChunking())
	c.add(twoMinuteRule(settings.TwoMinute))
	c.add(visualProgress())
	c.add(triggerIdentification())
	c.add(substitutionHabits())
	c.add(selfCompassion())
	c.add(socialScripts())
	c.add(gradualExposure())
	if shy, ok := c.emotions["shyness"]; ok {
		c.add(postureBreathing(shy.Breathing))
	} else {
		c.add(postureBreathing(domain.DefaultBreathingPattern()))
	}
	return c
}

func (c *Catalog) add(def *flow.Definition) {
	c.defs[def.ID] = def
}

// Settings returns the timer settings the catalog was built with.
func (c *Catalog) Settings() Settings { return c.settings }

// Lookup returns the definition with the given id.
func (c *Catalog) Lookup(id string) (*flow.Definition, error) {
	def, ok := c.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrExerciseNotFound, id)
	}
	return def, nil
}

// All returns every definition sorted by id.
func (c *Catalog) All() []*flow.Definition {
	out := make([]*flow.Definition, 0, len(c.defs))
	for _, d := range c.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Breathing returns the breathing pattern of an emotion, or the default
// pattern for an unknown id.
func (c *Catalog) Breathing(emotionID string) countdown.Pattern {
	if e, ok := c.emotions[emotionID]; ok {
		return countdown.FromBreathing(e.Breathing)
	}
	return countdown.FromBreathing(domain.DefaultBreathingPattern())
}

// PhaseLabel returns the instruction shown for a breathing phase.
func PhaseLabel(emotionID, phase string) string {
	switch phase {
	case countdown.PhaseInhale:
		if emotionID == "overthinking" {
			return "Inhale Through Nose"
		}
		return "Breathe In"
	case countdown.PhaseHold:
		return "Hold"
	case countdown.PhaseExhale:
		if emotionID == "overthinking" {
			return "Exhale Through Mouth"
		}
		return "Breathe Out"
	case "breathe":
		return "Ride the Wave"
	case "work":
		return "Just Start"
	case "delay":
		return "Wait Before Responding"
	default:
		return phase
	}
}
