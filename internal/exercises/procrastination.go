package exercises

import (
	"fmt"
	"strings"
	"time"

	"github.com/xvierd/calm-cli/internal/countdown"
	"github.com/xvierd/calm-cli/internal/flow"
)

func taskChunking() *flow.Definition {
	return &flow.Definition{
		ID:          TaskChunking,
		Title:       "Task Chunking",
		Description: "Big tasks feel overwhelming. Let's break yours into tiny, non-intimidating steps.",
		Label:       "Procrastination - Task Chunking",
		Steps: []flow.Step{{
			Key:    "chunk",
			Title:  "Task Chunking",
			Prompt: "Break it into tiny steps:",
			Detail: `Make each step ridiculously small. "Open document" is better than "Write paper."`,
			Fields: []flow.Field{
				{
					Key:         "task",
					Label:       "What task are you avoiding?",
					Placeholder: "e.g., Write research paper, Clean my room, Start a project...",
					Kind:        flow.FieldText,
				},
				{
					Key:         "chunks",
					Label:       "Steps",
					Placeholder: "Keep it small and specific",
					Kind:        flow.FieldTextList,
					Count:       3,
					Extendable:  true,
				},
			},
			Rule: flow.All(flow.Filled("task"), flow.AnyFilled("chunks")),
		}},
		Compose: func(in flow.Inputs) string {
			return fmt.Sprintf("Main Task: %s\n\nBroken Down Into:\n%s",
				in.Text("task"), numbered(in["chunks"].NonBlank()))
		},
	}
}

func twoMinuteRule(d time.Duration) *flow.Definition {
	return &flow.Definition{
		ID:          TwoMinuteRule,
		Title:       "The 2-Minute Rule",
		Description: "Commit to working on your task for just 2 minutes. That's it. No pressure to finish.",
		Steps: []flow.Step{{
			Key:    "start",
			Title:  "The 2-Minute Rule",
			Prompt: "Start your task now and keep going until the timer ends.",
			Detail: "Once you begin, momentum builds naturally.",
			Timer:  fixedTimer(countdown.Single("work", int(d/time.Second))),
		}},
		Summarize: func(flow.Inputs) string {
			return "Great job! You've overcome the hardest part - starting. Now you have momentum."
		},
	}
}

func visualProgress() *flow.Definition {
	return &flow.Definition{
		ID:          VisualProgress,
		Title:       "Visual Progress Tracking",
		Description: "Seeing your progress visually builds momentum and motivation. Let's create your tracker.",
		Label:       "Procrastination - Visual Progress Tracker",
		Steps: []flow.Step{{
			Key:    "tasks",
			Title:  "Your Progress",
			Prompt: "Add tasks you want to complete:",
			Detail: "Each checkmark gives you a small dopamine hit, making you want to complete more tasks.",
			Fields: []flow.Field{{
				Key:         "tasks",
				Placeholder: "Task",
				Kind:        flow.FieldChecklist,
				Count:       3,
				Extendable:  true,
			}},
			Rule: flow.AnyFilled("tasks"),
		}},
		Compose: func(in flow.Inputs) string {
			var lines []string
			for _, t := range in.Items("tasks") {
				if strings.TrimSpace(t.Text) == "" {
					continue
				}
				mark := "○"
				if t.Done {
					mark = "✓"
				}
				lines = append(lines, mark+" "+t.Text)
			}
			return "Task List:\n" + strings.Join(lines, "\n")
		},
	}
}
