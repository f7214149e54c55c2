package agent

import (
	"fmt"
	"strings"

	"github.com/resumeforge/resumeforge/internal/latex"
)

// historyWindow is the number of recent transcript turns embedded in a
// prompt. Older turns stay in the UI transcript but are dropped here.
const historyWindow = 10

const editSystemPrompt = `You are ResumeForge, a LaTeX resume editing assistant.
You receive the user's current resume document and an instruction, and you produce the edited document.

Respond with a single JSON object and NOTHING else (no prose, no markdown fences):
{"explanation": string, "modifiedDocument": string, "hasChanges": boolean}

NON-NEGOTIABLE RULE: modifiedDocument must contain the ENTIRE document, from its \documentclass declaration to its \end{document} marker, with the requested change applied in place. Returning only the changed section or a snippet is a contract violation. If no change is needed, set hasChanges to false and omit nothing from the explanation.`

const askSystemPrompt = `You are ResumeForge, a LaTeX resume mentor. Explain concepts clearly, reference the provided document context when helpful, and include short examples inside ` + "```latex" + ` blocks when relevant. Do not rewrite the user's document.`

// BuildEditPrompt constructs the edit-mode payload: the document verbatim,
// the instruction, and the recent history rendered as "role: text" lines.
func BuildEditPrompt(instruction, document string, history []Message) Prompt {
	var sb strings.Builder
	sb.WriteString("Current document:\n```latex\n")
	sb.WriteString(document)
	sb.WriteString("\n```\n\n")
	if h := renderHistory(history); h != "" {
		sb.WriteString("Recent conversation:\n")
		sb.WriteString(h)
		sb.WriteString("\n")
	}
	sb.WriteString("Instruction: ")
	sb.WriteString(instruction)

	return Prompt{
		System:  editSystemPrompt,
		User:    sb.String(),
		History: window(history),
	}
}

// BuildAskPrompt constructs the ask-mode payload: conversational, with
// document insights as context and no structured-output requirement.
func BuildAskPrompt(instruction, document string, history []Message) Prompt {
	system := askSystemPrompt
	if document != "" {
		insights := latex.Analyze(document, -1)
		// The snippet is bounded in lines, not bytes; cap it so a long
		// single-line document cannot flood the system prompt.
		if len(insights.Snippet) > 2000 {
			insights.Snippet = insights.Snippet[:2000]
		}
		excerpt := document
		if len(excerpt) > 4000 {
			excerpt = excerpt[:4000]
		}
		system = fmt.Sprintf("%s\n\nDocument context:\n%s\n---\nCurrent document excerpt:\n```latex\n%s\n```",
			askSystemPrompt, insights.Summary(), excerpt)
	}
	return Prompt{
		System:  system,
		User:    instruction,
		History: window(history),
	}
}

func window(history []Message) []Message {
	if len(history) <= historyWindow {
		return history
	}
	return history[len(history)-historyWindow:]
}

func renderHistory(history []Message) string {
	var sb strings.Builder
	for _, m := range window(history) {
		if m.Content == "" {
			continue
		}
		sb.WriteString(m.Role)
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}
