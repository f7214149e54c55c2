package agent

import "strings"

// Mode selects the orchestrator's behavior for a request.
type Mode string

const (
	// ModeAsk answers questions conversationally and never mutates the document.
	ModeAsk Mode = "ask"
	// ModeEdit may produce a complete replacement document.
	ModeEdit Mode = "edit"
)

var (
	askKeywords  = []string{"explain", "what is", "how does", "why", "tell me"}
	editKeywords = []string{"add", "fix", "change", "update", "create", "modify", "replace", "insert", "remove"}
)

// DetectMode falls back to keyword heuristics when the caller did not pick
// a mode explicitly. Question phrasing wins over embedded edit verbs
// ("explain how to add a section" is a question); the default is ask.
func DetectMode(instruction string) Mode {
	lowered := strings.ToLower(instruction)
	for _, kw := range askKeywords {
		if strings.Contains(lowered, kw) {
			return ModeAsk
		}
	}
	for _, kw := range editKeywords {
		if strings.Contains(lowered, kw) {
			return ModeEdit
		}
	}
	return ModeAsk
}

// DetectTools maps the instruction onto the advisory tool list reported back
// to the UI as toolsUsed. Purely informational.
func DetectTools(instruction string) []string {
	lowered := strings.ToLower(instruction)
	switch {
	case containsAny(lowered, "template", "start over", "new resume", "create resume"):
		return []string{"template_generator"}
	case containsAny(lowered, "compile", "build", "pdf"):
		return []string{"validator", "compiler"}
	case containsAny(lowered, "validate", "check", "errors", "syntax"):
		return []string{"validator"}
	case containsAny(lowered, "improve", "enhance", "better", "suggestions"):
		return []string{"enhancer"}
	case containsAny(lowered, "format", "clean", "organize"):
		return []string{"formatter"}
	case containsAny(lowered, "section", "extract", "show me"):
		return []string{"extractor"}
	case containsAny(lowered, "change", "modify", "update", "add", "remove"):
		return []string{"validator", "enhancer"}
	}
	return nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
