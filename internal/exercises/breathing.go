package exercises

import (
	"fmt"

	"github.com/xvierd/calm-cli/internal/countdown"
	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/flow"
)

func breathing(e *domain.Emotion) *flow.Definition {
	p := e.Breathing
	detail := ""
	if e.ID == "smoking" {
		detail = `Remember: "I will decide after 10 minutes"`
	}
	return &flow.Definition{
		ID:          BreathingID(e.ID),
		Title:       "Breathing Exercise",
		Description: describeBreathing(p),
		Steps: []flow.Step{{
			Key:    "breathe",
			Title:  "Breathe",
			Prompt: "Follow the rhythm. Breathe slowly and let each breath settle you.",
			Detail: detail,
			Timer:  fixedTimer(countdown.FromBreathing(p)),
		}},
		Summarize: func(flow.Inputs) string {
			return fmt.Sprintf("Completed %d breathing cycles.", p.Cycles)
		},
	}
}

func describeBreathing(p domain.BreathingPattern) string {
	if p.Hold > 0 {
		return fmt.Sprintf("Breathe in for %d seconds, hold for %d, breathe out for %d. Repeat %d times.",
			p.Inhale, p.Hold, p.Exhale, p.Cycles)
	}
	return fmt.Sprintf("Breathe in for %d seconds, breathe out for %d. Repeat %d times.",
		p.Inhale, p.Exhale, p.Cycles)
}

func postureBreathing(p domain.BreathingPattern) *flow.Definition {
	return &flow.Definition{
		ID:          PostureBreathing,
		Title:       "Posture & Breathing",
		Description: "Your posture affects how you feel AND how others perceive you.",
		Steps: []flow.Step{
			{
				Key:    "posture",
				Title:  "Open Posture Check",
				Prompt: "Adjust Your Body Language",
				Detail: "1. Uncross your arms and relax your shoulders\n" +
					"2. Lift your chin slightly and look ahead\n" +
					"3. Remind yourself: \"I'm allowed to take up space\"\n\n" +
					"Try adjusting your posture right now. Notice how it changes how you feel.",
				Fields: []flow.Field{{Key: "posture", Label: "Posture Adjusted", Kind: flow.FieldConfirm}},
				Rule:   flow.Confirmed("posture"),
			},
			{
				Key:    "breath",
				Title:  "Calming Breath",
				Prompt: describeBreathing(p),
				Timer:  fixedTimer(countdown.FromBreathing(p)),
			},
		},
		Summarize: func(flow.Inputs) string {
			return "Body and Mind Aligned! You've practiced confident posture and calming breathing."
		},
	}
}
