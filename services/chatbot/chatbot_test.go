package chatbot

import "testing"

func TestReply(t *testing.T) {
	bot := &Bot{Intn: func(n int) int { return 0 }}

	tests := []struct {
		name       string
		message    string
		wantTopic  string
		wantCrisis bool
	}{
		{"crisis wins over other topics", "I feel anxious and want to end my life", "crisis", true},
		{"crisis mixed case", "Thinking about SUICIDE", "crisis", true},
		{"greeting", "Hi there", "greeting", false},
		{"anxiety", "I get panic attacks at work", "anxiety", false},
		{"sleep", "I can't sleep at all", "sleep", false},
		{"booking", "How do I book a therapist?", "booking", false},
		{"postnatal", "since the baby arrived I cry a lot", "postnatal", false},
		{"fallback", "purple elephants", "fallback", false},
		{"empty", "", "fallback", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bot.Reply(tt.message)
			if got.Topic != tt.wantTopic || got.IsCrisis != tt.wantCrisis {
				t.Errorf("Reply(%q) = %s/%v, want %s/%v", tt.message, got.Topic, got.IsCrisis, tt.wantTopic, tt.wantCrisis)
			}
			if got.Reply == "" {
				t.Errorf("Reply(%q) returned empty text", tt.message)
			}
		})
	}
}

func TestReply_UsesRandomIndex(t *testing.T) {
	var asked int
	bot := &Bot{Intn: func(n int) int { asked = n; return n - 1 }}

	got := bot.Reply("so much stress")
	if asked != 2 {
		t.Fatalf("Intn called with %d, want 2 stress replies", asked)
	}
	if got.Reply != topics[4].replies[1] {
		t.Errorf("Reply = %q, want the last stress reply", got.Reply)
	}
}
