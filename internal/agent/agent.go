package agent

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/resumeforge/resumeforge/internal/apperr"
)

// Outcome classifies the result of one edit request.
type Outcome string

const (
	OutcomeApplied  Outcome = "applied"
	OutcomeNoOp     Outcome = "no_op"
	OutcomeRejected Outcome = "rejected"
	OutcomeError    Outcome = "error"
)

// Request is one invocation of the orchestrator. Document is the snapshot of
// the session's content at submission time; History the recent transcript.
type Request struct {
	Instruction string
	Mode        Mode
	Document    string
	History     []Message
}

// Result is the outcome of one Request. Document is non-empty if and only if
// Outcome is OutcomeApplied, and then it always passes the completeness
// validator.
type Result struct {
	Outcome     Outcome
	Explanation string
	Document    string
	ToolsUsed   []string
}

// Applied reports whether the result carries a replacement document.
func (r Result) Applied() bool { return r.Outcome == OutcomeApplied }

// Orchestrator coordinates one edit request: prompt construction, the model
// call, extraction, and outcome classification. It holds no per-session
// state; sessions own the document and transcript.
type Orchestrator struct {
	llm    LLMClient
	logger *slog.Logger
}

// New creates an orchestrator over the given model client.
func New(llm LLMClient, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{llm: llm, logger: logger}
}

// Process runs one request to completion. The returned error is non-nil only
// for upstream failures and mirrors Result.Outcome == OutcomeError; the
// Result is always usable (its explanation is what the transcript records).
func (o *Orchestrator) Process(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Instruction) == "" {
		return Result{
			Outcome:     OutcomeRejected,
			Explanation: "instruction must not be empty",
		}, nil
	}

	mode := req.Mode
	if mode == "" {
		mode = DetectMode(req.Instruction)
	}

	var prompt Prompt
	if mode == ModeEdit {
		prompt = BuildEditPrompt(req.Instruction, req.Document, req.History)
	} else {
		prompt = BuildAskPrompt(req.Instruction, req.Document, req.History)
	}

	raw, err := o.llm.Complete(ctx, prompt)
	if err != nil {
		o.logger.Warn("llm call failed",
			slog.String("mode", string(mode)),
			slog.String("error", err.Error()))
		return Result{
			Outcome:     OutcomeError,
			Explanation: failureMessage(err),
		}, err
	}

	if mode == ModeAsk {
		explanation := strings.TrimSpace(raw)
		if explanation == "" {
			explanation = fallbackExplanation
		}
		return Result{Outcome: OutcomeNoOp, Explanation: explanation}, nil
	}

	res := Extract(raw, req.Document)
	if res.Applied() {
		res.ToolsUsed = DetectTools(req.Instruction)
	}
	return res, nil
}

// failureMessage renders a short human-readable message for each upstream
// failure class.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, apperr.ErrUpstreamAuth):
		return "the assistant could not authenticate with the language model; check the configured API key"
	case errors.Is(err, apperr.ErrUpstreamRateLimited):
		return "the language model is rate limiting requests; wait a moment and try again"
	default:
		return "the language model service is unavailable; try again shortly"
	}
}
