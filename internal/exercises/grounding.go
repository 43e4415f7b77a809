package exercises

import (
	"fmt"
	"strings"

	"github.com/xvierd/calm-cli/internal/flow"
)

var senses = []struct {
	key, sense, prompt string
	count              int
}{
	{"see", "See", "Name 5 things you can see around you", 5},
	{"touch", "Touch", "Name 4 things you can touch or feel", 4},
	{"hear", "Hear", "Name 3 sounds you can hear", 3},
	{"smell", "Smell", "Name 2 things you can smell", 2},
	{"taste", "Taste", "Name 1 thing you can taste", 1},
}

func grounding() *flow.Definition {
	steps := make([]flow.Step, len(senses))
	for i, s := range senses {
		steps[i] = flow.Step{
			Key:    s.key,
			Title:  s.sense,
			Prompt: s.prompt,
			Fields: []flow.Field{{
				Key:         s.key,
				Label:       s.sense,
				Placeholder: "Type here...",
				Kind:        flow.FieldTextList,
				Count:       s.count,
			}},
			Rule: flow.Filled(s.key),
		}
	}
	return &flow.Definition{
		ID:          Grounding,
		Title:       "5-4-3-2-1 Grounding",
		Description: "Reconnect with the present moment by engaging your five senses.",
		Steps:       steps,
		Summarize: func(in flow.Inputs) string {
			lines := make([]string, len(senses))
			for i, s := range senses {
				lines[i] = fmt.Sprintf("%s: %s", s.sense, strings.Join(itemTexts(in.Items(s.key)), ", "))
			}
			return strings.Join(lines, "\n")
		},
	}
}

func physicalGrounding() *flow.Definition {
	return &flow.Definition{
		ID:          PhysicalGrounding,
		Title:       "Physical Grounding",
		Description: "Anger creates tension in your body. Let's release it through physical grounding.",
		Steps: []flow.Step{
			{
				Key:    "feet",
				Title:  "Ground Your Feet",
				Prompt: "Take a moment to really feel the ground beneath your feet. Notice the stability and support.",
				Fields: []flow.Field{{Key: "feet", Label: "I Feel Grounded", Kind: flow.FieldConfirm}},
				Rule:   flow.Confirmed("feet"),
			},
			{
				Key:    "tension",
				Title:  "Release Physical Tension",
				Prompt: "Clench your fists as tight as you can. Hold... 5, 4, 3, 2, 1... Now release and shake your hands.",
				Fields: []flow.Field{{Key: "tension", Label: "Tension Released", Kind: flow.FieldConfirm}},
				Rule:   flow.Confirmed("tension"),
			},
			{
				Key:    "sensations",
				Title:  "Notice Physical Sensations",
				Prompt: "Notice 3 physical sensations in your body right now:",
				Fields: []flow.Field{{
					Key:         "sensations",
					Placeholder: "What do you feel? (e.g., warmth, tension, coolness...)",
					Kind:        flow.FieldTextList,
					Count:       3,
				}},
				Rule: flow.Filled("sensations"),
			},
		},
		Summarize: func(in flow.Inputs) string {
			return "Your Physical Sensations:\n" + numbered(itemTexts(in.Items("sensations")))
		},
	}
}
