package exercises

import (
	"fmt"
	"strings"

	"github.com/xvierd/calm-cli/internal/flow"
)

// Critical thoughts with their compassionate reframe in Hint.
var compassionPairs = []flow.Option{
	{
		Label: "I'm so awkward. Everyone thinks I'm weird.",
		Hint:  "I'm learning to be more comfortable in social situations. Everyone feels awkward sometimes.",
	},
	{
		Label: "I always say the wrong thing. I'm terrible at conversations.",
		Hint:  "I'm still developing my social skills. It's okay to make mistakes - that's how I learn.",
	},
	{
		Label: "People probably don't want to talk to me.",
		Hint:  "I deserve connection just like anyone else. Some people will enjoy talking to me.",
	},
	{
		Label: "I should be more confident by now. What's wrong with me?",
		Hint:  "Building confidence takes time. I'm making progress at my own pace.",
	},
	{
		Label: "Everyone else finds socializing so easy. I'm the only one struggling.",
		Hint:  "Many people struggle with shyness - I'm not alone. Everyone has different strengths.",
	},
}

func selfCompassion() *flow.Definition {
	return &flow.Definition{
		ID:          SelfCompassion,
		Title:       "Self-Compassion Practice",
		Description: "Self-criticism increases anxiety. Let's replace harsh self-talk with compassionate, realistic thoughts.",
		Label:       "Shyness - Self-Compassion Practice",
		Steps: []flow.Step{{
			Key:    "reframe",
			Title:  "Self-Compassion Practice",
			Prompt: "Select the critical thoughts you recognise and read their compassionate reframe.",
			Detail: `When you notice self-critical thoughts, pause and ask: "What would I say to a friend in this situation?"`,
			Fields: []flow.Field{{Key: "thoughts", Kind: flow.FieldMulti, Options: compassionPairs}},
			Rule:   flow.Selected("thoughts"),
		}},
		Compose: func(in flow.Inputs) string {
			items := in.Items("thoughts")
			parts := make([]string, len(items))
			for i, it := range items {
				parts[i] = fmt.Sprintf("From: \"%s\"\nTo: \"%s\"", it.Text, optionHint(compassionPairs, it.Text))
			}
			return "Practiced Reframing:\n" + strings.Join(parts, "\n\n")
		},
	}
}

var scriptOptions = concat(
	grouped("Conversation Starters",
		"Hi! How's your day going?",
		"Nice weather today, isn't it?",
		"I like your [item]. Where did you get it?",
		"Have you been here before?",
	),
	grouped("Small Talk",
		"What do you do for work/study?",
		"Any plans for the weekend?",
		"Have you seen [recent movie/show]?",
		"How do you know [mutual connection]?",
	),
	grouped("Leaving Conversations",
		"It was nice talking to you! I should get going.",
		"I need to catch up with someone, but great chatting!",
		"Excuse me, I'm going to grab a drink. See you around!",
		"I'll let you go, but it was lovely meeting you!",
	),
	grouped("Handling Awkwardness",
		"Sorry, what was that? I didn't catch it.",
		"That's interesting! Tell me more about that.",
		"I'm not sure what to say to that, but...",
		"Can I think about that and get back to you?",
	),
)

func socialScripts() *flow.Definition {
	return &flow.Definition{
		ID:          SocialScripts,
		Title:       "Social Scripts",
		Description: "Having a few phrases ready reduces anxiety and makes conversations easier.",
		Label:       "Shyness - Social Scripts",
		Steps: []flow.Step{{
			Key:    "scripts",
			Title:  "Social Scripts",
			Prompt: "Select the scripts you want to practice.",
			Detail: "Say these out loud a few times before social situations.",
			Fields: []flow.Field{{Key: "scripts", Kind: flow.FieldMulti, Options: scriptOptions}},
			Rule:   flow.Selected("scripts"),
		}},
		Compose: func(in flow.Inputs) string {
			return "Practiced Scripts:\n" + numbered(itemTexts(in.Items("scripts")))
		},
	}
}

var exposureLevels = []struct {
	level   int
	title   string
	actions []string
}{
	{1, "Very Low Pressure", []string{
		"Make eye contact with a cashier",
		`Say "thank you" to a stranger`,
		"Smile at someone passing by",
	}},
	{2, "Low Pressure", []string{
		"Ask a store employee for help",
		"Make small talk about the weather",
		"Compliment someone on something small",
	}},
	{3, "Medium Pressure", []string{
		"Introduce yourself to someone new",
		"Join a conversation in a group",
		"Share your opinion in a low-stakes discussion",
	}},
	{4, "Higher Pressure", []string{
		"Start a conversation with someone you admire",
		"Speak up in a meeting or class",
		"Attend a social event alone",
	}},
}

func exposureOptions() []flow.Option {
	var out []flow.Option
	for _, l := range exposureLevels {
		for _, a := range l.actions {
			out = append(out, flow.Option{
				Label: a,
				Group: fmt.Sprintf("Level %d: %s", l.level, l.title),
				Hint:  fmt.Sprint(l.level),
			})
		}
	}
	return out
}

func gradualExposure() *flow.Definition {
	opts := exposureOptions()
	return &flow.Definition{
		ID:          GradualExposure,
		Title:       "Gradual Exposure Practice",
		Description: "Build confidence by starting with small, low-pressure social interactions and gradually increasing difficulty.",
		Label:       "Shyness - Gradual Exposure",
		Steps: []flow.Step{
			{
				Key:    "choose",
				Title:  "Gradual Exposure Practice",
				Prompt: "Choose ONE challenge that feels slightly uncomfortable but doable:",
				Fields: []flow.Field{{Key: "action", Kind: flow.FieldChoice, Options: opts}},
				Rule:   flow.Selected("action"),
			},
			{
				Key:    "commit",
				Title:  "Ready to Take the Challenge?",
				Prompt: "The goal isn't to be perfect. The goal is to practice feeling comfortable with discomfort.",
				Fields: []flow.Field{{Key: "ready", Label: "I'm Ready to Try This", Kind: flow.FieldConfirm}},
				Rule:   flow.Confirmed("ready"),
			},
		},
		Compose: func(in flow.Inputs) string {
			action := in.Text("action")
			return fmt.Sprintf("Challenge Level: %s\nAction Committed: %s", optionHint(opts, action), action)
		},
	}
}
