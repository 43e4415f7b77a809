package exercises

import (
	"fmt"
	"strings"

	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/flow"
)

type prompt struct {
	key, question, placeholder string
}

type promptSet struct {
	title, description string
	prompts            []prompt
}

var journalPrompts = map[string]promptSet{
	"anger": {
		title:       "Anger Journaling",
		description: "Take time to explore what's behind your anger. There's no right or wrong answer.",
		prompts: []prompt{
			{"trigger", "What triggered my anger?", "What happened or what did someone say/do?"},
			{"wish", "What do I wish I could say?", "If you could express yourself freely, what would you say?"},
			{"response", "What response would help me calm down?", "What do you need to feel heard and validated?"},
		},
	},
	"overthinking": {
		title:       "Thought Dump Journaling",
		description: "Get those racing thoughts out of your head and onto paper.",
		prompts: []prompt{
			{"stuck", "What am I stuck thinking about?", "What thoughts keep cycling through your mind?"},
			{"control", "Is this in my control right now?", "What parts can you influence and what parts are beyond your control?"},
			{"action", "What is one small action I can take today?", "What's one tiny step you could take instead of thinking?"},
		},
	},
	"smoking": {
		title:       "Craving Reflection",
		description: "Understanding your triggers helps you prepare for next time.",
		prompts: []prompt{
			{"context", "What was happening when the craving started?", "Where were you? What were you doing? Who were you with?"},
			{"feeling", "What emotion was I feeling before the craving?", "Stressed? Bored? Anxious? Celebrating?"},
			{"next", "What will I do differently next time this happens?", "How can you prepare for this trigger in the future?"},
		},
	},
	"procrastination": {
		title:       "Avoidance Reflection",
		description: "Look at what is keeping you from starting, without judging yourself.",
		prompts: []prompt{
			{"task", "What am I putting off right now?", "Name the task as specifically as you can."},
			{"feeling", "What feeling comes up when I think about starting?", "Fear of failure? Boredom? Overwhelm?"},
			{"step", "What is the smallest first step I could take?", "Something you could do in under two minutes."},
		},
	},
	"shyness": {
		title:       "Social Confidence Reflection",
		description: "Notice your thoughts about social moments and be kind to yourself.",
		prompts: []prompt{
			{"situation", "Which social situation felt hard for me?", "Where were you and who was there?"},
			{"thought", "What was I telling myself in that moment?", "What did you assume others were thinking?"},
			{"kind", "What would I say to a friend who felt this way?", "Write it as if you were comforting someone you care about."},
		},
	},
	"rejection": {
		title:       "Rejection Reflection",
		description: "Separate what happened from the story your mind is telling.",
		prompts: []prompt{
			{"event", "What happened that felt like rejection?", "Describe it as objectively as you can."},
			{"meaning", "What am I afraid this says about me?", "Name the fear underneath the hurt."},
			{"truth", "What do I know to be true about my worth?", "List qualities that don't depend on anyone's approval."},
		},
	},
	"alcohol": {
		title:       "Craving Reflection",
		description: "Understanding what drives the urge helps you choose differently.",
		prompts: []prompt{
			{"context", "What was happening when the urge to drink started?", "Where were you? What were you doing? Who were you with?"},
			{"need", "What was I hoping a drink would give me?", "Relief? Connection? Escape? Celebration?"},
			{"instead", "What could meet that need instead?", "One healthier way to get what you were looking for."},
		},
	},
}

func journaling(e *domain.Emotion) *flow.Definition {
	set, ok := journalPrompts[e.ID]
	if !ok {
		set = promptSet{
			title:       e.Name + " Journaling",
			description: "Write about what you are feeling right now.",
			prompts: []prompt{
				{"what", "What am I feeling right now?", "Describe it in your own words."},
				{"why", "What might have caused it?", "What happened before this feeling started?"},
				{"need", "What do I need right now?", "What would help you feel a little better?"},
			},
		}
	}

	fields := make([]flow.Field, len(set.prompts))
	keys := make([]string, len(set.prompts))
	for i, p := range set.prompts {
		fields[i] = flow.Field{Key: p.key, Label: p.question, Placeholder: p.placeholder, Kind: flow.FieldText}
		keys[i] = p.key
	}

	return &flow.Definition{
		ID:          JournalingID(e.ID),
		Title:       set.title,
		Description: set.description,
		Label:       e.Name,
		Steps: []flow.Step{{
			Key:    "prompts",
			Title:  set.title,
			Prompt: set.description,
			Fields: fields,
			Rule:   flow.Filled(keys...),
		}},
		Compose: func(in flow.Inputs) string {
			parts := make([]string, len(set.prompts))
			for i, p := range set.prompts {
				parts[i] = fmt.Sprintf("%s\n%s", p.question, in.Text(p.key))
			}
			return strings.Join(parts, "\n\n")
		},
	}
}
