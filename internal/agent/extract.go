package agent

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/resumeforge/resumeforge/internal/latex"
)

// fallbackExplanation is returned when no structured record can be
// recovered from a response that looked structured.
const fallbackExplanation = "could not process request, please rephrase"

// editRecord is the structured payload the edit prompt asks the model for.
// Pointer fields distinguish "absent" from "empty"; the self-reported
// HasChanges flag is parsed but never trusted (the real decision comes from
// comparing the candidate against the current document).
type editRecord struct {
	Explanation      *string `json:"explanation"`
	ModifiedDocument *string `json:"modifiedDocument"`
	HasChanges       *bool   `json:"hasChanges"`
}

var (
	fenceOpenRe  = regexp.MustCompile("^```[a-zA-Z]*[ \t]*\r?\n")
	fenceCloseRe = regexp.MustCompile("\r?\n```[ \t]*$")

	// Matches one escape-shaped token at a time: an escaped pair, a full
	// \uXXXX escape, a recognised escape letter that continues into a word,
	// a bare recognised escape, any other backslash sequence, or a trailing
	// backslash. LaTeX-bearing payloads routinely carry \documentclass,
	// \usepackage, \begin and friends raw inside string values, which
	// breaks a strict JSON parse.
	escapeRe = regexp.MustCompile(`\\\\|\\u[0-9a-fA-F]{4}|\\[bfnrt][A-Za-z]|\\["/bfnrt]|\\.|\\$`)
)

// Extract parses raw model output into a Result, applying the ordered
// fallback chain: fence stripping, brace-slice parse, backslash repair,
// whole-text parse, and finally a non-structured fallback. A structured
// record is gated through the completeness validator before any document
// is allowed to reach the caller.
func Extract(raw, currentDocument string) Result {
	cleaned := stripFences(raw)

	rec, ok := parseRecord(cleaned)
	if !ok {
		// No opening brace means the model answered in prose. That is a
		// conversational reply, not a failure: keep the text as the
		// explanation and leave the document alone. Anything brace-bearing
		// that survived no parse stage is mangled structured output.
		if !strings.Contains(cleaned, "{") {
			if text := strings.TrimSpace(cleaned); text != "" {
				return Result{Outcome: OutcomeNoOp, Explanation: text}
			}
		}
		return Result{Outcome: OutcomeError, Explanation: fallbackExplanation}
	}

	explanation := ""
	if rec.Explanation != nil {
		explanation = strings.TrimSpace(*rec.Explanation)
	}

	if rec.ModifiedDocument == nil {
		return Result{Outcome: OutcomeNoOp, Explanation: explanation}
	}

	candidate := strings.TrimSpace(*rec.ModifiedDocument)
	if candidate == "" {
		return Result{Outcome: OutcomeNoOp, Explanation: explanation}
	}

	// Completeness gate: an incomplete fragment is suppressed regardless of
	// the model's own hasChanges claim. The user still gets the explanation.
	if !latex.IsComplete(candidate) {
		return Result{Outcome: OutcomeNoOp, Explanation: explanation}
	}

	// Change detection is re-derived from content, never self-reported.
	if candidate == strings.TrimSpace(currentDocument) {
		return Result{Outcome: OutcomeNoOp, Explanation: explanation}
	}

	return Result{
		Outcome:     OutcomeApplied,
		Explanation: explanation,
		Document:    candidate,
	}
}

// parseRecord attempts the structured parsing chain and reports whether a
// usable record (carrying at least an explanation or a document) came out.
func parseRecord(cleaned string) (editRecord, bool) {
	first := strings.Index(cleaned, "{")
	last := strings.LastIndex(cleaned, "}")

	if first >= 0 && last > first {
		slice := cleaned[first : last+1]
		if rec, ok := tryParse(slice); ok {
			return rec, true
		}
		if rec, ok := tryParse(repairEscapes(slice)); ok {
			return rec, true
		}
	}

	// Whole cleaned text, for responses with no surrounding prose.
	if rec, ok := tryParse(cleaned); ok {
		return rec, true
	}
	return editRecord{}, false
}

func tryParse(s string) (editRecord, bool) {
	var rec editRecord
	if err := json.Unmarshal([]byte(s), &rec); err != nil {
		return editRecord{}, false
	}
	if rec.Explanation == nil && rec.ModifiedDocument == nil {
		return editRecord{}, false
	}
	return rec, true
}

// repairEscapes doubles every backslash that cannot be a valid JSON escape
// in a LaTeX-bearing payload: unrecognised letters (\documentclass, \end),
// \u without four hex digits (\usepackage), and recognised escape letters
// that continue into a word (\begin, \newline, \textbf are commands here,
// not control characters). Escaped pairs are consumed first so a valid \\
// never gets re-escaped.
func repairEscapes(s string) string {
	return escapeRe.ReplaceAllStringFunc(s, func(m string) string {
		switch {
		case m == `\\`:
			return m
		case len(m) == 6: // \uXXXX
			return m
		case len(m) == 2 && strings.ContainsAny(m[1:], `"/bfnrt`):
			return m
		default:
			return `\\` + m[1:]
		}
	})
}

// stripFences removes one surrounding markdown code fence, if present.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	stripped := fenceOpenRe.ReplaceAllString(s, "")
	if stripped == s {
		return s
	}
	stripped = fenceCloseRe.ReplaceAllString(stripped, "")
	return strings.TrimSpace(stripped)
}
