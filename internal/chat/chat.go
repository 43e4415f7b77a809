// Package chat implements the supportive keyword-response lookup. It is not
// a conversational model: the first matching keyword picks a fixed reply.
package chat

import "strings"

// Greeting opens every transcript.
const Greeting = "Hello! I'm here to provide supportive guidance. I'm not a replacement for professional help, but I can offer a listening ear and suggest coping strategies. How can I support you today?"

const (
	thanksReply  = "You're welcome! Remember, taking steps to understand and manage your emotions is a sign of strength. I'm here whenever you need support."
	betterReply  = "I'm glad to hear you're feeling better! Keep practicing the techniques that work for you. Self-care is an ongoing journey, not a destination."
	defaultReply = "Thank you for sharing. I'm here to listen. Can you tell me more about how you're feeling? Or would you like me to suggest some coping techniques?"
)

// Checked in order; the first keyword contained in the input wins.
var responses = []struct {
	keyword string
	reply   string
}{
	{"stress", "It sounds like you're feeling stressed. That's completely understandable. Have you tried the breathing exercises in our tools section? Taking slow, deep breaths can help calm your nervous system. Is there a specific situation causing stress?"},
	{"anxious", "Anxiety can feel overwhelming. Remember, it's your body trying to protect you, even if it feels uncomfortable. Try grounding yourself in the present moment - notice 5 things you can see right now. Would you like to try our grounding exercise?"},
	{"sad", "I hear that you're feeling sad. It's okay to feel this way - your emotions are valid. Sometimes just acknowledging our feelings helps. Is there something specific that's weighing on you?"},
	{"angry", "Anger is a natural emotion that tells us something matters to us. Before we react, let's pause. Try taking some slow breaths. What's behind this anger - is it hurt, frustration, or feeling unheard?"},
	{"lonely", "Feeling lonely can be really painful. You're not alone in feeling alone. Connection is a basic human need. Have you considered reaching out to someone you trust, or perhaps joining a community or activity that interests you?"},
	{"overwhelm", "When everything feels like too much, remember you don't have to do it all at once. What's one small thing you could do right now to feel a bit better? Breaking things down into smaller steps can help."},
	{"tired", "Physical and emotional exhaustion are real. Your body might be telling you it needs rest. Have you been able to take breaks? Sometimes self-care means simply resting without guilt."},
	{"help", "I'm here to listen and provide support. I can help you explore your feelings, suggest coping strategies, and point you toward helpful resources. Remember, if you're in crisis, please reach out to a mental health professional or crisis helpline."},
}

// Reply returns the response for a user message.
func Reply(input string) string {
	text := strings.ToLower(input)
	for _, r := range responses {
		if strings.Contains(text, r.keyword) {
			return r.reply
		}
	}
	if strings.Contains(text, "thank") {
		return thanksReply
	}
	if strings.Contains(text, "better") {
		return betterReply
	}
	return defaultReply
}

// Role identifies who sent a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one line of a transcript.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is the in-memory conversation of a single chat session.
// It is never persisted.
type Transcript struct {
	messages []Message
}

// NewTranscript starts a transcript with the greeting.
func NewTranscript() *Transcript {
	return &Transcript{messages: []Message{{Role: RoleBot, Content: Greeting}}}
}

// Send appends the user message and its reply. Blank input is ignored.
func (t *Transcript) Send(input string) (Message, bool) {
	if strings.TrimSpace(input) == "" {
		return Message{}, false
	}
	reply := Message{Role: RoleBot, Content: Reply(input)}
	t.messages = append(t.messages, Message{Role: RoleUser, Content: input}, reply)
	return reply, true
}

// Messages returns a copy of the transcript.
func (t *Transcript) Messages() []Message {
	return append([]Message(nil), t.messages...)
}
