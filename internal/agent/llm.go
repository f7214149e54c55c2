// Package agent implements the conversational document-edit orchestrator:
// prompt construction, defensive response extraction, and outcome decisions
// over an external language-model collaborator.
package agent

import "context"

// Message is one conversation turn forwarded to the model.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// Prompt is the payload sent to the language model.
type Prompt struct {
	System  string
	User    string
	History []Message
}

// LLMClient abstracts the language-model collaborator so it can be mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings configures a concrete client implementation.
type LLMSettings struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
}
