package chat

import (
	"strings"
	"testing"
)

func TestReply(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // prefix of the expected reply
	}{
		{"stress", "I'm so STRESSED today", "It sounds like you're feeling stressed."},
		{"anxious", "feeling anxious", "Anxiety can feel overwhelming."},
		{"sad", "i am sad", "I hear that you're feeling sad."},
		{"angry", "angry at my boss", "Anger is a natural emotion"},
		{"lonely", "so lonely", "Feeling lonely can be really painful."},
		{"overwhelm", "overwhelmed by work", "When everything feels like too much"},
		{"tired", "just tired", "Physical and emotional exhaustion are real."},
		{"help", "can you help", "I'm here to listen and provide support."},
		{"table order wins", "stressed and sad", "It sounds like you're feeling stressed."},
		{"substring match", "I'm sadder than usual", "I hear that you're feeling sad."},
		{"keyword beats thanks", "thanks, still anxious", "Anxiety can feel overwhelming."},
		{"thanks", "Thank you!", "You're welcome!"},
		{"better", "I feel better now", "I'm glad to hear you're feeling better!"},
		{"thanks before better", "thanks, I feel better", "You're welcome!"},
		{"default", "hello there", "Thank you for sharing."},
		{"empty", "", "Thank you for sharing."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reply(tt.input)
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("Reply(%q) = %q, want prefix %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTranscript(t *testing.T) {
	tr := NewTranscript()

	msgs := tr.Messages()
	if len(msgs) != 1 || msgs[0].Role != RoleBot || msgs[0].Content != Greeting {
		t.Fatalf("new transcript = %+v, want greeting only", msgs)
	}

	if _, ok := tr.Send("   "); ok {
		t.Error("Send(blank) should be ignored")
	}
	if len(tr.Messages()) != 1 {
		t.Error("blank input should not change the transcript")
	}

	reply, ok := tr.Send("I'm tired")
	if !ok {
		t.Fatal("Send() = false, want true")
	}
	if reply.Role != RoleBot {
		t.Errorf("reply.Role = %v, want bot", reply.Role)
	}

	msgs = tr.Messages()
	if len(msgs) != 3 {
		t.Fatalf("len(Messages()) = %d, want 3", len(msgs))
	}
	if msgs[1].Role != RoleUser || msgs[1].Content != "I'm tired" {
		t.Errorf("user message = %+v", msgs[1])
	}
}
