package exercises

import (
	"fmt"
	"strings"
	"time"

	"github.com/xvierd/calm-cli/internal/countdown"
	"github.com/xvierd/calm-cli/internal/flow"
)

func realityCheck() *flow.Definition {
	return &flow.Definition{
		ID:          RealityCheck,
		Title:       "Thought Reality Check",
		Description: "Let's separate what actually happened from what you're assuming.",
		Label:       "Rejection Sensitivity - Reality Check",
		Steps: []flow.Step{{
			Key:    "check",
			Title:  "Thought Reality Check",
			Prompt: "When you feel rejected, it's easy to jump to conclusions.",
			Detail: "There could be many other explanations (they're busy, forgot, phone died, etc.).",
			Fields: []flow.Field{
				{
					Key:         "situation",
					Label:       "What situation triggered your feelings?",
					Placeholder: "Describe what happened objectively",
					Kind:        flow.FieldText,
				},
				{
					Key:         "assumption",
					Label:       "What are you assuming this means?",
					Placeholder: "e.g., 'They're mad at me'",
					Kind:        flow.FieldText,
				},
				{
					Key:         "facts",
					Label:       "What do you actually KNOW for certain?",
					Placeholder: "e.g., 'I sent a text. They haven't responded yet.'",
					Kind:        flow.FieldText,
				},
			},
			Rule: flow.Filled("situation", "assumption", "facts"),
		}},
		Compose: func(in flow.Inputs) string {
			return fmt.Sprintf("Situation: %s\n\nMy Assumption: %s\n\nActual Facts: %s",
				in.Text("situation"), in.Text("assumption"), in.Text("facts"))
		},
	}
}

func reframing() *flow.Definition {
	return &flow.Definition{
		ID:          Reframing,
		Title:       "Reframing Practice",
		Description: "When rejection sensitivity kicks in, we see situations through a negative lens. Let's practice seeing other possibilities.",
		Label:       "Rejection Sensitivity - Reframing Practice",
		Steps: []flow.Step{{
			Key:    "reframe",
			Title:  "Reframing Practice",
			Prompt: "Your first interpretation is just ONE way to see it, not THE way.",
			Fields: []flow.Field{
				{
					Key:         "situation",
					Label:       "What situation are you interpreting negatively?",
					Placeholder: "e.g., 'My boss gave feedback on my work'",
					Kind:        flow.FieldText,
				},
				{
					Key:         "interpretation",
					Label:       "What's your automatic interpretation?",
					Placeholder: "e.g., 'They think I'm incompetent'",
					Kind:        flow.FieldText,
				},
				{
					Key:         "alternatives",
					Label:       "What are 3 other ways to interpret this?",
					Placeholder: "Another way to see it",
					Kind:        flow.FieldTextList,
					Count:       3,
				},
			},
			Rule: flow.All(flow.Filled("situation", "interpretation"), flow.AnyFilled("alternatives")),
		}},
		Compose: func(in flow.Inputs) string {
			return fmt.Sprintf("Situation: %s\n\nInitial Interpretation: %s\n\nAlternative Views:\n%s",
				in.Text("situation"), in.Text("interpretation"), numbered(in["alternatives"].NonBlank()))
		},
	}
}

var labelOptions = []flow.Option{
	{Label: "Hurt", Hint: "Feeling wounded or pained by the situation"},
	{Label: "Angry", Hint: "Frustrated or resentful about what happened"},
	{Label: "Anxious", Hint: "Worried about what this means for the future"},
	{Label: "Sad", Hint: "Feeling down or disappointed"},
	{Label: "Ashamed", Hint: "Feeling embarrassed or less-than"},
	{Label: "Scared", Hint: "Afraid of loss or abandonment"},
}

func emotionLabeling() *flow.Definition {
	return &flow.Definition{
		ID:          EmotionLabeling,
		Title:       "Emotion Labeling",
		Description: "Naming your emotions reduces their power over you. Let's identify what you're really feeling.",
		Label:       "Rejection Sensitivity - Emotion Labeling",
		Steps: []flow.Step{{
			Key:    "label",
			Title:  "Emotion Labeling",
			Prompt: "Select all emotions you're experiencing and rate the intensity of each (1-10).",
			Fields: []flow.Field{{Key: "emotions", Kind: flow.FieldMulti, Rated: true, Options: labelOptions}},
			Rule:   flow.Selected("emotions"),
		}},
		Compose: func(in flow.Inputs) string {
			items := in.Items("emotions")
			lines := make([]string, len(items))
			for i, it := range items {
				lines[i] = fmt.Sprintf("%s: %d/10", it.Text, it.Rating)
			}
			return "Identified Emotions:\n" + strings.Join(lines, "\n")
		},
	}
}

var delayChoices = []struct {
	label string
	d     time.Duration
}{
	{"2 min", 2 * time.Minute},
	{"5 min", 5 * time.Minute},
	{"10 min", 10 * time.Minute},
	{"15 min", 15 * time.Minute},
}

func delayLabel(d time.Duration) string {
	return fmt.Sprintf("%d min", int(d/time.Minute))
}

func responseDelay(def time.Duration) *flow.Definition {
	choices := make([]flow.Option, 0, len(delayChoices)+1)
	seconds := make(map[string]int, len(delayChoices)+1)
	for _, c := range delayChoices {
		choices = append(choices, flow.Option{Label: c.label})
		seconds[c.label] = int(c.d / time.Second)
	}
	initial := delayLabel(def)
	if _, ok := seconds[initial]; !ok {
		choices = append(choices, flow.Option{Label: initial})
		seconds[initial] = int(def / time.Second)
	}

	return &flow.Definition{
		ID:          ResponseDelay,
		Title:       "Response Delay Technique",
		Description: "When you feel triggered, wait before responding. This prevents reactive messages you might regret.",
		Steps: []flow.Step{
			{
				Key:    "duration",
				Title:  "Choose your delay duration",
				Prompt: "Choose your delay duration:",
				Fields: []flow.Field{{Key: "duration", Kind: flow.FieldChoice, Options: choices, Initial: initial}},
				Rule:   flow.Selected("duration"),
			},
			{
				Key:    "wait",
				Title:  "Wait Before Responding",
				Prompt: "Notice how your emotional intensity changes as time passes...",
				Detail: "While you wait, try this: breathe slowly, step away from your phone, name what you feel.",
				Timer: func(in flow.Inputs) *countdown.Pattern {
					p := countdown.Single("delay", seconds[in.Text("duration")])
					return &p
				},
			},
		},
		Summarize: func(flow.Inputs) string {
			return "Delay Complete! You've given yourself time to cool down. Now you can respond more thoughtfully."
		},
	}
}
