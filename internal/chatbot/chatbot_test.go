package chatbot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubreg/internal/genai"
)

func TestRespondDecisionTable(t *testing.T) {
	cases := []struct {
		name     string
		message  string
		contains string
	}{
		{"registration", "How do I register for the club?", RegistrationSteps},
		{"track change beats generic track", "Can I change track later?", TrackLock},
		{"track overview", "What development tracks do you offer?", TrackSummary},
		{"submission rules", "where do I submit?", SubmissionLimit},
		{"president", "Who is the president?", ClubPresident},
		{"contact email", "How can I contact the club?", ClubEmail},
		{"case insensitive", "HELP me please", "I'm here to help!"},
	}

	bot := New(nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reply, err := bot.Respond(context.Background(), tc.message)
			require.NoError(t, err)
			assert.Contains(t, reply, tc.contains)
		})
	}
}

func TestRespondFallbackWithoutModel(t *testing.T) {
	bot := New(nil)
	reply, err := bot.Respond(context.Background(), "what is the meaning of life")
	require.NoError(t, err)
	assert.Contains(t, reply, "Contact Us form")
	assert.Contains(t, reply, "what is the meaning of life")
}

func TestRespondUsesModelForUnmatched(t *testing.T) {
	bot := New(genai.New("", "", true))
	reply, err := bot.Respond(context.Background(), "what is the meaning of life")
	require.NoError(t, err)
	assert.Equal(t, "This is a mock assistant reply.", reply)
}

func TestRespondTableMatchSkipsModel(t *testing.T) {
	// Skip-mode model would answer with the mock reply; a keyword hit must
	// win without touching it.
	bot := New(genai.New("", "", true))
	reply, err := bot.Respond(context.Background(), "how do I sign up?")
	require.NoError(t, err)
	assert.Contains(t, reply, RegistrationSteps)
}
