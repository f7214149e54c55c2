package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/resumeforge/resumeforge/internal/agent"
)

// Turn is one message in a session's conversation transcript.
type Turn struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Transcript is the ordered, append-only log of turns for one session. The
// full log is kept for the UI; only a recent window is fed to the model.
type Transcript struct {
	turns []Turn
}

// Append records a turn and returns it.
func (t *Transcript) Append(role, text string) Turn {
	turn := Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	}
	t.turns = append(t.turns, turn)
	return turn
}

// Turns returns a copy of the full transcript.
func (t *Transcript) Turns() []Turn {
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Recent returns the last n turns as model messages, in original order.
func (t *Transcript) Recent(n int) []agent.Message {
	turns := t.turns
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	msgs := make([]agent.Message, 0, len(turns))
	for _, turn := range turns {
		msgs = append(msgs, agent.Message{Role: turn.Role, Content: turn.Text})
	}
	return msgs
}

// Len returns the number of recorded turns.
func (t *Transcript) Len() int { return len(t.turns) }
