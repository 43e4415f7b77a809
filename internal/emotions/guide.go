package emotions

import (
	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/exercises"
)

// Message is a heading with supporting text shown on a non-exercise step.
type Message struct {
	Heading string
	Body    string
	Note    string
}

// Stage is one exercise step of a coping flow.
type Stage struct {
	Title    string
	Exercise string
}

// Guide defines the interface for emotion-specific coping behavior.
// Views query the Guide for messages and stages instead of switching on
// the emotion id.
type Guide interface {
	// Emotion returns the emotion this guide belongs to.
	Emotion() *domain.Emotion

	// Acknowledgement returns the message of the first step.
	Acknowledgement() Message

	// Stages returns the exercises run between acknowledgement and closing.
	Stages() []Stage

	// Closing returns the message of the final step.
	Closing() Message
}

// ForEmotion returns the Guide for the given emotion id.
func ForEmotion(id string) (Guide, error) {
	e, err := Find(id)
	if err != nil {
		return nil, err
	}
	switch id {
	case "anger":
		return &angerGuide{e}, nil
	case "overthinking":
		return &overthinkingGuide{e}, nil
	case "smoking":
		return &smokingGuide{e}, nil
	case "procrastination":
		return &procrastinationGuide{e}, nil
	case "shyness":
		return &shynessGuide{e}, nil
	case "rejection":
		return &rejectionGuide{e}, nil
	default:
		return &alcoholGuide{e}, nil
	}
}

// --- Anger ---

type angerGuide struct{ e *domain.Emotion }

func (g *angerGuide) Emotion() *domain.Emotion { return g.e }

func (g *angerGuide) Acknowledgement() Message {
	return Message{
		Heading: "It's okay to feel angry",
		Body:    "Anger is a natural emotion that tells us something matters to us. Let's work through this together.",
		Note:    "Take a deep breath. You're taking the first step toward feeling better.",
	}
}

func (g *angerGuide) Stages() []Stage {
	return []Stage{
		{Title: "Breathing to Release Anger", Exercise: exercises.BreathingID("anger")},
		{Title: "Physical Grounding", Exercise: exercises.PhysicalGrounding},
		{Title: "Anger Journaling", Exercise: exercises.JournalingID("anger")},
	}
}

func (g *angerGuide) Closing() Message {
	return Message{
		Heading: "Well Done!",
		Body:    "You've completed the coping exercises. How are you feeling now?",
		Note:    "Remember, these exercises are always here when you need them. Now, let's learn more about anger and discover additional strategies.",
	}
}

// --- Overthinking ---

type overthinkingGuide struct{ e *domain.Emotion }

func (g *overthinkingGuide) Emotion() *domain.Emotion { return g.e }

func (g *overthinkingGuide) Acknowledgement() Message {
	return Message{
		Heading: "Your mind is working overtime",
		Body:    "Overthinking is your mind trying to solve problems, but sometimes we need to pause and reset.",
		Note:    "Let's interrupt those racing thoughts and bring you back to the present.",
	}
}

func (g *overthinkingGuide) Stages() []Stage {
	return []Stage{
		{Title: "Thought-Interrupt Breathing", Exercise: exercises.BreathingID("overthinking")},
		{Title: "5-4-3-2-1 Grounding", Exercise: exercises.Grounding},
		{Title: "Thought Dump Journaling", Exercise: exercises.JournalingID("overthinking")},
	}
}

func (g *overthinkingGuide) Closing() Message {
	return Message{
		Heading: "Well Done!",
		Body:    "You've successfully interrupted the overthinking cycle. Notice how your mind feels now.",
		Note:    "These grounding techniques help you break free from rumination. Let's explore more strategies.",
	}
}

// --- Smoking ---

type smokingGuide struct{ e *domain.Emotion }

func (g *smokingGuide) Emotion() *domain.Emotion { return g.e }

func (g *smokingGuide) Acknowledgement() Message {
	return Message{
		Heading: "You're experiencing a craving",
		Body:    "Cravings are temporary. They rise like waves and will fall. You have the strength to ride this out.",
		Note:    "Let's use proven techniques to help this urge pass.",
	}
}

func (g *smokingGuide) Stages() []Stage {
	return []Stage{
		{Title: "Urge Surfing", Exercise: exercises.UrgeSurfing},
		{Title: "Breathing + Delay", Exercise: exercises.BreathingID("smoking")},
		{Title: "Replacement Action", Exercise: exercises.ReplacementAction},
	}
}

func (g *smokingGuide) Closing() Message {
	return Message{
		Heading: "You Did It!",
		Body:    "You've successfully navigated through a craving. That takes real strength.",
		Note:    "Each time you resist, you're rewiring your brain. Let's learn more about managing cravings.",
	}
}

// --- Procrastination ---

type procrastinationGuide struct{ e *domain.Emotion }

func (g *procrastinationGuide) Emotion() *domain.Emotion { return g.e }

func (g *procrastinationGuide) Acknowledgement() Message {
	return Message{
		Heading: "Starting is the hardest part",
		Body:    "Procrastination isn't laziness. It's usually a way of avoiding an uncomfortable feeling.",
		Note:    "Let's make the task smaller and get you moving.",
	}
}

func (g *procrastinationGuide) Stages() []Stage {
	return []Stage{
		{Title: "Task Chunking", Exercise: exercises.TaskChunking},
		{Title: "Two-Minute Start", Exercise: exercises.TwoMinuteRule},
		{Title: "Visual Progress", Exercise: exercises.VisualProgress},
	}
}

func (g *procrastinationGuide) Closing() Message {
	return Message{
		Heading: "Well Done!",
		Body:    "You've turned an overwhelming task into a plan and already made a start.",
		Note:    "Momentum builds on itself. Let's learn more about beating procrastination.",
	}
}

// --- Shyness ---

type shynessGuide struct{ e *domain.Emotion }

func (g *shynessGuide) Emotion() *domain.Emotion { return g.e }

func (g *shynessGuide) Acknowledgement() Message {
	return Message{
		Heading: "Feeling shy is completely normal",
		Body:    "Many people feel uneasy in social situations. Confidence is a skill you can practice.",
		Note:    "Let's calm your body first, then build up one small step at a time.",
	}
}

func (g *shynessGuide) Stages() []Stage {
	return []Stage{
		{Title: "Posture & Breathing", Exercise: exercises.PostureBreathing},
		{Title: "Self-Compassion", Exercise: exercises.SelfCompassion},
		{Title: "Social Scripts", Exercise: exercises.SocialScripts},
		{Title: "Gradual Exposure", Exercise: exercises.GradualExposure},
	}
}

func (g *shynessGuide) Closing() Message {
	return Message{
		Heading: "Well Done!",
		Body:    "You've prepared your body, your self-talk and your words for the next social moment.",
		Note:    "Every small step counts. Let's learn more about shyness and building confidence.",
	}
}

// --- Rejection Sensitivity ---

type rejectionGuide struct{ e *domain.Emotion }

func (g *rejectionGuide) Emotion() *domain.Emotion { return g.e }

func (g *rejectionGuide) Acknowledgement() Message {
	return Message{
		Heading: "That really hurt",
		Body:    "Feeling rejected can be intensely painful. Your feelings are valid, even if the situation is unclear.",
		Note:    "Let's slow down and look at what's really happening.",
	}
}

func (g *rejectionGuide) Stages() []Stage {
	return []Stage{
		{Title: "Emotion Labeling", Exercise: exercises.EmotionLabeling},
		{Title: "Reality Check", Exercise: exercises.RealityCheck},
		{Title: "Response Delay", Exercise: exercises.ResponseDelay},
		{Title: "Reframing", Exercise: exercises.Reframing},
	}
}

func (g *rejectionGuide) Closing() Message {
	return Message{
		Heading: "Well Done!",
		Body:    "You've named your feelings, checked the facts and given yourself space to respond.",
		Note:    "Your worth doesn't depend on anyone's reaction. Let's learn more about rejection sensitivity.",
	}
}

// --- Alcohol ---

type alcoholGuide struct{ e *domain.Emotion }

func (g *alcoholGuide) Emotion() *domain.Emotion { return g.e }

func (g *alcoholGuide) Acknowledgement() Message {
	return Message{
		Heading: "You're facing an urge to drink",
		Body:    "Urges are temporary. Reaching out to yourself right now is already a strong choice.",
		Note:    "Let's ride out this urge and plan what to do instead.",
	}
}

func (g *alcoholGuide) Stages() []Stage {
	return []Stage{
		{Title: "Urge Surfing", Exercise: exercises.UrgeSurfing},
		{Title: "Trigger Identification", Exercise: exercises.TriggerIdentification},
		{Title: "Substitution Habits", Exercise: exercises.SubstitutionHabits},
	}
}

func (g *alcoholGuide) Closing() Message {
	return Message{
		Heading: "You Did It!",
		Body:    "You've made it through an urge and built a plan for the next one.",
		Note:    "Each urge you ride out makes the next one easier. Let's learn more about managing cravings.",
	}
}
