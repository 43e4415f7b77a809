// Package emotions holds the emotion catalog and the per-emotion coping
// guides that sequence exercises into a coping flow.
package emotions

import (
	"fmt"

	"github.com/xvierd/calm-cli/internal/domain"
)

var catalog = []*domain.Emotion{
	{
		ID:          "anger",
		Name:        "Anger",
		Description: "Feeling overwhelmed by frustration or rage",
		Icon:        "😤",
		Color:       "#F87171",
		Triggers: []string{
			"Feeling disrespected or wronged",
			"Unmet expectations",
			"Injustice or unfair treatment",
			"Feeling powerless or out of control",
		},
		Symptoms: []string{
			"Increased heart rate and blood pressure",
			"Tense muscles",
			"Clenched jaw or fists",
			"Feeling hot or flushed",
			"Racing thoughts",
		},
		CopingStrategies: []string{
			"Practice controlled breathing to calm your nervous system",
			"Use physical grounding to release tension",
			"Express feelings through journaling",
			"Take a timeout from the triggering situation",
			"Engage in physical exercise to release energy",
		},
		Breathing: domain.BreathingPattern{Inhale: 4, Hold: 4, Exhale: 6, Cycles: 6},
	},
	{
		ID:          "overthinking",
		Name:        "Overthinking",
		Description: "Feeling overwhelmed by endless thoughts",
		Icon:        "🤯",
		Color:       "#60A5FA",
		Triggers: []string{
			"Uncertainty about the future",
			"Past mistakes or regrets",
			"Decision-making pressure",
			"Fear of judgment",
		},
		Symptoms: []string{
			"Mental exhaustion",
			"Difficulty concentrating",
			"Sleep problems",
			"Physical tension",
			"Feeling stuck or paralyzed",
		},
		CopingStrategies: []string{
			"Practice thought-interrupt breathing",
			"Use grounding exercises to return to the present",
			"Challenge negative thought patterns",
			`Set a "worry time" limit`,
			"Take small, actionable steps instead of planning everything",
		},
		Breathing: domain.BreathingPattern{Inhale: 5, Hold: 0, Exhale: 7, Cycles: 10},
	},
	{
		ID:          "smoking",
		Name:        "Smoking Addiction",
		Description: "Dealing with cravings and urges to smoke",
		Icon:        "🚬",
		Color:       "#94A3B8",
		Triggers: []string{
			"Stress or anxiety",
			"Social situations",
			"After meals or with coffee",
			"Boredom or idle time",
			"Environmental cues (seeing others smoke)",
		},
		Symptoms: []string{
			"Intense cravings",
			"Restlessness and irritability",
			"Difficulty concentrating",
			"Physical tension",
			"Preoccupation with smoking",
		},
		CopingStrategies: []string{
			"Practice urge surfing - observe cravings without acting",
			"Use the delay technique - wait 10 minutes",
			"Replace the habit with a healthier action",
			"Avoid triggers when possible",
			"Remember that cravings peak and pass like waves",
		},
		Breathing: domain.BreathingPattern{Inhale: 4, Hold: 2, Exhale: 6, Cycles: 8},
	},
	{
		ID:          "procrastination",
		Name:        "Procrastination",
		Description: "Repeated delay of important tasks despite knowing the consequences",
		Icon:        "⏰",
		Color:       "#FBBF24",
		Triggers: []string{
			"Fear of failure or imperfection",
			"Feeling overwhelmed by task size",
			"Lack of clear starting point",
			"Distractions in environment",
			"Low motivation or energy",
		},
		Symptoms: []string{
			"Guilt and self-criticism",
			"Increased stress as deadlines approach",
			"Last-minute rushing",
			"Avoidance behaviors",
			"Difficulty starting tasks",
		},
		CopingStrategies: []string{
			"Break tasks into tiny, manageable steps",
			"Use the 2-minute rule to overcome starting resistance",
			"Track progress visually to build momentum",
			"Remove distractions from your environment",
			"Focus on starting, not perfecting",
		},
		Breathing: domain.BreathingPattern{Inhale: 4, Hold: 4, Exhale: 4, Cycles: 5},
	},
	{
		ID:          "shyness",
		Name:        "Shyness",
		Description: "Discomfort or inhibition in social situations",
		Icon:        "😊",
		Color:       "#F472B6",
		Triggers: []string{
			"Meeting new people",
			"Being the center of attention",
			"Fear of judgment or embarrassment",
			"Unfamiliar social settings",
			"Speaking up in groups",
		},
		Symptoms: []string{
			"Self-consciousness",
			"Physical tension or blushing",
			"Avoidance of social situations",
			"Difficulty making eye contact",
			"Racing heart in social moments",
		},
		CopingStrategies: []string{
			"Practice gradual exposure in low-pressure situations",
			"Prepare conversation starters in advance",
			"Use posture and breathing to reduce physical anxiety",
			"Replace self-criticism with compassionate self-talk",
			"Remember that others are focused on themselves too",
		},
		Breathing: domain.BreathingPattern{Inhale: 4, Hold: 2, Exhale: 6, Cycles: 6},
	},
	{
		ID:          "rejection",
		Name:        "Rejection Sensitivity",
		Description: "Intense emotional reactions to perceived criticism or rejection",
		Icon:        "💔",
		Color:       "#A78BFA",
		Triggers: []string{
			"Perceived criticism or negative feedback",
			"Ambiguous social cues",
			"Delayed responses to messages",
			"Changes in tone or behavior from others",
			"Past experiences of rejection",
		},
		Symptoms: []string{
			"Intense emotional reactions",
			"Overthinking interactions",
			"Fear of abandonment",
			"Defensive or withdrawn behavior",
			"Physical discomfort or anxiety",
		},
		CopingStrategies: []string{
			"Check the facts vs. assumptions",
			"Label emotions to reduce their intensity",
			"Delay responses when feeling triggered",
			"Reframe situations from alternative perspectives",
			"Practice self-validation independent of others",
		},
		Breathing: domain.BreathingPattern{Inhale: 5, Hold: 3, Exhale: 7, Cycles: 7},
	},
	{
		ID:          "alcohol",
		Name:        "Alcohol Addiction",
		Description: "Pattern of reliance on alcohol as a coping mechanism",
		Icon:        "🍷",
		Color:       "#34D399",
		Triggers: []string{
			"Stress or emotional pain",
			"Social pressure or celebrations",
			"Habitual routines (after work, weekends)",
			"Boredom or loneliness",
			"Environmental cues (bars, events)",
		},
		Symptoms: []string{
			"Strong cravings for alcohol",
			"Loss of control over drinking",
			"Physical dependence symptoms",
			"Neglecting responsibilities",
			"Using alcohol to cope with emotions",
		},
		CopingStrategies: []string{
			"Identify your specific triggers",
			"Practice urge surfing when cravings arise",
			"Replace drinking routines with healthier habits",
			"Set short-term achievable goals",
			"Build accountability and support systems",
		},
		Breathing: domain.BreathingPattern{Inhale: 4, Hold: 4, Exhale: 6, Cycles: 8},
	},
}

// All returns a copy of every emotion in catalog order.
func All() []*domain.Emotion {
	out := make([]*domain.Emotion, len(catalog))
	for i, e := range catalog {
		out[i] = clone(e)
	}
	return out
}

// Find returns the emotion with the given id.
func Find(id string) (*domain.Emotion, error) {
	for _, e := range catalog {
		if e.ID == id {
			return clone(e), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrEmotionNotFound, id)
}

func clone(e *domain.Emotion) *domain.Emotion {
	c := *e
	c.Triggers = append([]string(nil), e.Triggers...)
	c.Symptoms = append([]string(nil), e.Symptoms...)
	c.CopingStrategies = append([]string(nil), e.CopingStrategies...)
	return &c
}
