package agent

import "context"

// MockLLM is a scripted LLMClient for tests and local debugging. Each call
// consumes the next queued response; Err, when set, is returned instead.
type MockLLM struct {
	Responses []string
	Err       error

	// Prompts records every prompt received, in order.
	Prompts []Prompt

	next int
}

func (m *MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if m.next >= len(m.Responses) {
		return "", nil
	}
	resp := m.Responses[m.next]
	m.next++
	return resp, nil
}
