package internal

import "github.com/resumeforge/resumeforge/internal/agent"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	llm    agent.LLMClient
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithLLM overrides the language-model client, mainly for tests.
func WithLLM(llm agent.LLMClient) Option {
	return func(a *application) {
		a.llm = llm
	}
}
