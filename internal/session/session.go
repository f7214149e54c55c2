// Package session owns per-conversation editing state: the authoritative
// document, the transcript, and the serialization of edit requests.
package session

import (
	"context"
	"sync"

	"github.com/resumeforge/resumeforge/internal/agent"
	"github.com/resumeforge/resumeforge/internal/apperr"
	"github.com/resumeforge/resumeforge/internal/latex"
)

// historyWindow mirrors the prompt builder's window so the snapshot passed
// to the orchestrator never carries more turns than the prompt will use.
const historyWindow = 10

// Document is the authoritative LaTeX source for one editing session.
// Content is only ever replaced wholesale by an applied outcome; it is never
// partially overwritten.
type Document struct {
	Content                string
	LastAppliedExplanation string
}

// Session coordinates edit requests for one document. At most one request is
// in flight at a time; concurrent submissions are refused with ErrBusy.
type Session struct {
	ID string

	mu              sync.Mutex
	doc             Document
	transcript      Transcript
	mode            agent.Mode
	lastInstruction string
	inFlight        bool

	orch *agent.Orchestrator
}

// New creates a session seeded with the given document content.
func New(id, seed string, orch *agent.Orchestrator) *Session {
	return &Session{
		ID:   id,
		doc:  Document{Content: seed},
		mode: agent.ModeAsk,
		orch: orch,
	}
}

// SetMode switches the session between ask and edit. Switching does not
// reset the transcript.
func (s *Session) SetMode(mode agent.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode == agent.ModeAsk || mode == agent.ModeEdit {
		s.mode = mode
	}
}

// Mode returns the session-scoped mode.
func (s *Session) Mode() agent.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Document returns a copy of the current document state.
func (s *Session) Document() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Turns returns the full transcript.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Turns()
}

// Submit runs one edit request through the orchestrator with an optional
// per-request mode override. The snapshot of document and history is taken
// under the lock; the model call itself runs unlocked so the session can
// report busy state rather than queueing.
func (s *Session) Submit(ctx context.Context, instruction string, mode agent.Mode) (agent.Result, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return agent.Result{}, apperr.ErrBusy
	}
	s.inFlight = true
	if mode != "" {
		s.mode = mode
	}
	// A complete document pasted into the chat becomes the working
	// document, so the request runs against what the user is looking at.
	// Fragments stay out; the document is never partially replaced.
	if pasted := latex.ExtractFromMessage(instruction); pasted != "" && latex.IsComplete(pasted) {
		s.doc.Content = pasted
	}
	req := agent.Request{
		Instruction: instruction,
		Mode:        s.mode,
		Document:    s.doc.Content,
		History:     s.transcript.Recent(historyWindow),
	}
	s.mu.Unlock()

	res, err := s.orch.Process(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	// A cancelled request must not apply its result.
	if ctx.Err() != nil {
		return res, ctx.Err()
	}

	if res.Outcome == agent.OutcomeRejected {
		return res, err
	}

	s.lastInstruction = instruction
	s.transcript.Append("user", instruction)
	s.transcript.Append("assistant", res.Explanation)

	if res.Applied() {
		s.doc.Content = res.Document
		s.doc.LastAppliedExplanation = res.Explanation
	}
	return res, err
}

// Retry re-issues the most recent instruction as a fresh request against the
// current document state, not the snapshot of the original attempt.
func (s *Session) Retry(ctx context.Context) (agent.Result, error) {
	s.mu.Lock()
	instruction := s.lastInstruction
	s.mu.Unlock()
	if instruction == "" {
		return agent.Result{}, apperr.ErrNotFound
	}
	return s.Submit(ctx, instruction, "")
}
