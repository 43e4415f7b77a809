package exercises

import (
	"fmt"
	"strings"
	"time"

	"github.com/xvierd/calm-cli/internal/countdown"
	"github.com/xvierd/calm-cli/internal/flow"
)

func urgeSurfing(breath time.Duration) *flow.Definition {
	secs := int(breath / time.Second)
	return &flow.Definition{
		ID:          UrgeSurfing,
		Title:       "Urge Surfing",
		Description: "Notice the craving without judgment. Don't fight it or give in to it - just observe it like a wave.",
		Steps: []flow.Step{
			{
				Key:    "notice",
				Title:  "Urge Surfing",
				Prompt: "How strong is your craving right now?",
				Detail: "You don't have to act on it - you can simply observe it.",
				Fields: []flow.Field{
					{Key: "craving", Label: "Craving level", Kind: flow.FieldScale, Min: 1, Max: 10, Default: 5},
					{Key: "noticed", Label: "I've Noticed the Craving", Kind: flow.FieldConfirm},
				},
				Rule: flow.Confirmed("noticed"),
			},
			{
				Key:    "wave",
				Title:  "Breathe Through the Wave",
				Prompt: fmt.Sprintf("Now breathe slowly for %d seconds. Watch the craving without acting on it.", secs),
				Detail: "Focus on your breath. In and out, slow and steady. The urge is just a temporary sensation.",
				Timer:  fixedTimer(countdown.Single("breathe", secs)),
			},
		},
		Summarize: func(in flow.Inputs) string {
			return fmt.Sprintf("You noticed a craving at level %d/10 and breathed through it for %d seconds without acting on it.",
				in.Number("craving"), secs)
		},
	}
}

var replacementActions = []flow.Option{
	{Label: "Drink Cold Water", Hint: "Fill a glass with cold water and drink it slowly, focusing on the sensation."},
	{Label: "Chew Gum", Hint: "Keep your mouth busy with sugar-free gum or mints."},
	{Label: "Walk or Stretch", Hint: "Take a short walk or do some simple stretches to shift your focus."},
	{Label: "Light Physical Movement", Hint: "Do jumping jacks, push-ups, or any movement that gets your body active."},
}

func replacementAction() *flow.Definition {
	return &flow.Definition{
		ID:          ReplacementAction,
		Title:       "Replacement Action",
		Description: "Instead of smoking, replace the habit with a healthier action.",
		Label:       "Smoking - Replacement Action",
		Steps: []flow.Step{
			{
				Key:    "choose",
				Title:  "Choose a Replacement Action",
				Prompt: "Choose what feels right for you right now.",
				Detail: "Any healthy action works - the goal is to do something different.",
				Fields: []flow.Field{{Key: "action", Kind: flow.FieldChoice, Options: replacementActions}},
				Rule:   flow.Selected("action"),
			},
			{
				Key:    "reflect",
				Title:  "Reflection Time",
				Prompt: "What urge am I trying to escape right now?",
				Detail: "Understanding what triggers your smoking helps you address the root cause, not just the symptom.",
				Fields: []flow.Field{{
					Key:         "reflection",
					Placeholder: "Write your thoughts here... Be honest with yourself.",
					Kind:        flow.FieldText,
				}},
				Rule: flow.Filled("reflection"),
			},
		},
		Compose: func(in flow.Inputs) string {
			return fmt.Sprintf("Action chosen: %s\n\nReflection: %s", in.Text("action"), in.Text("reflection"))
		},
	}
}

var triggerOptions = concat(
	grouped("Emotional Triggers",
		"Stress or Pressure",
		"Loneliness or Boredom",
		"Anxiety or Fear",
		"Anger or Frustration",
		"Sadness or Depression",
		"Celebrating or Feeling Happy",
	),
	grouped("Situational Triggers",
		"After Work / End of Day",
		"Social Events or Parties",
		"Being at Bars or Restaurants",
		"Weekends or Free Time",
		"Seeing Others Drink",
		"Specific Locations (home, etc.)",
	),
)

func triggerIdentification() *flow.Definition {
	return &flow.Definition{
		ID:          TriggerIdentification,
		Title:       "Trigger Identification",
		Description: "Understanding what triggers your drinking is essential for change. Select all that apply to you.",
		Label:       "Alcohol Addiction - Trigger Identification",
		Steps: []flow.Step{{
			Key:    "triggers",
			Title:  "Trigger Identification",
			Prompt: "Select all that apply to you.",
			Detail: "The more you understand what drives your drinking, the better you can prepare alternative responses.",
			Fields: []flow.Field{{Key: "triggers", Kind: flow.FieldMulti, Options: triggerOptions}},
			Rule:   flow.Selected("triggers"),
		}},
		Compose: func(in flow.Inputs) string {
			return "Identified Triggers:\n" + numbered(itemTexts(in.Items("triggers")))
		},
	}
}

var substitutionOptions = concat(
	grouped("Physical",
		"Go for a walk or run",
		"Do a workout or yoga",
		"Take a cold shower",
		"Drink sparkling water or tea",
	),
	grouped("Social",
		"Call a supportive friend",
		"Attend an AA/support meeting",
		"Join a hobby or interest group",
		"Volunteer or help someone",
	),
	grouped("Relaxation",
		"Practice meditation or breathing",
		"Listen to calming music",
		"Take a bath",
		"Read a book or watch something",
	),
	grouped("Distraction",
		"Play a game or puzzle",
		"Clean or organize something",
		"Work on a project or hobby",
		"Cook a healthy meal",
	),
)

func substitutionHabits() *flow.Definition {
	return &flow.Definition{
		ID:          SubstitutionHabits,
		Title:       "Substitution Habits",
		Description: "Replace the drinking habit with healthier alternatives. Select activities you can do instead.",
		Label:       "Alcohol Addiction - Substitution Habits",
		Steps: []flow.Step{{
			Key:    "alternatives",
			Title:  "Substitution Habits",
			Prompt: "Select activities you can do instead.",
			Fields: []flow.Field{
				{Key: "alternatives", Kind: flow.FieldMulti, Options: substitutionOptions},
				{
					Key:         "plan",
					Label:       "What specific action will you take when you feel the urge to drink?",
					Placeholder: "e.g., 'I'll call my sponsor, then go to the gym'",
					Kind:        flow.FieldText,
				},
			},
			Rule: flow.AnyOf(flow.Selected("alternatives"), flow.Filled("plan")),
		}},
		Compose: func(in flow.Inputs) string {
			plan := blankOr(in.Text("plan"), "None added")
			return fmt.Sprintf("Chosen Alternatives:\n%s\n\nPersonal Plan:\n%s",
				numbered(itemTexts(in.Items("alternatives"))), plan)
		},
	}
}

func concat(groups ...[]flow.Option) []flow.Option {
	var out []flow.Option
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// optionHint returns the hint of the option labelled label.
func optionHint(opts []flow.Option, label string) string {
	for _, o := range opts {
		if o.Label == label {
			return o.Hint
		}
	}
	return ""
}

func blankOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
