package blackjack

import (
	"context"
	"testing"

	"github.com/lox/blackjack/internal/cards"
)

// scriptedPrompter replays canned answers and records every prompt
type scriptedPrompter struct {
	answers []string
	prompts []string
}

func newScriptedPrompter(answers ...string) *scriptedPrompter {
	return &scriptedPrompter{answers: answers}
}

func (s *scriptedPrompter) Prompt(_ context.Context, message string) (string, error) {
	s.prompts = append(s.prompts, message)
	if len(s.answers) == 0 {
		return "", ErrAborted
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

// recorder captures reported events
type recorder struct {
	events []Event
}

func (r *recorder) Report(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) ofType(et EventType) []Event {
	var out []Event
	for _, e := range r.events {
		if e.Type == et {
			out = append(out, e)
		}
	}
	return out
}

func hand(t *testing.T, s string) Hand {
	t.Helper()
	return Hand(cards.MustParseRanks(s))
}
