package agent

import (
	"strings"
	"testing"
)

const currentDoc = `\documentclass{article}
\begin{document}
\section*{Experience}
Engineer at Acme.
\end{document}`

const updatedDoc = `\documentclass{article}
\begin{document}
\section*{Experience}
Senior Engineer at Acme.
\end{document}`

// payload builds a well-formed JSON edit record by hand so tests control the
// exact escaping the extractor sees.
func payload(explanation, document string, hasChanges bool) string {
	doc := strings.ReplaceAll(document, `\`, `\\`)
	doc = strings.ReplaceAll(doc, "\n", `\n`)
	flag := "false"
	if hasChanges {
		flag = "true"
	}
	return `{"explanation": "` + explanation + `", "modifiedDocument": "` + doc + `", "hasChanges": ` + flag + `}`
}

func TestExtractApplied(t *testing.T) {
	res := Extract(payload("promoted you", updatedDoc, true), currentDoc)
	if res.Outcome != OutcomeApplied {
		t.Fatalf("outcome = %s, want applied (%s)", res.Outcome, res.Explanation)
	}
	if res.Document != updatedDoc {
		t.Errorf("document mismatch:\n%q", res.Document)
	}
	if res.Explanation != "promoted you" {
		t.Errorf("explanation = %q", res.Explanation)
	}
}

func TestExtractFencedPayload(t *testing.T) {
	raw := "```json\n" + payload("done", updatedDoc, true) + "\n```"
	res := Extract(raw, currentDoc)
	if res.Outcome != OutcomeApplied {
		t.Fatalf("fenced payload outcome = %s", res.Outcome)
	}
	if res.Document != updatedDoc {
		t.Errorf("document mismatch after fence stripping")
	}
}

func TestExtractSurroundingProse(t *testing.T) {
	raw := "Sure! Here is the result:\n" + payload("done", updatedDoc, true) + "\nLet me know if you need more."
	res := Extract(raw, currentDoc)
	if res.Outcome != OutcomeApplied {
		t.Fatalf("brace-slice parse outcome = %s", res.Outcome)
	}
}

func TestExtractRepairsBadEscapes(t *testing.T) {
	// Raw LaTeX backslashes inside the JSON string: \documentclass is an
	// invalid JSON escape and only parses after repair.
	raw := `{"explanation": "ok", "modifiedDocument": "\documentclass{article}\n\begin{document}\nhi\n\end{document}", "hasChanges": true}`
	res := Extract(raw, currentDoc)
	if res.Outcome != OutcomeApplied {
		t.Fatalf("outcome = %s, want applied after escape repair (%s)", res.Outcome, res.Explanation)
	}
	if !strings.Contains(res.Document, `\documentclass{article}`) {
		t.Errorf("document lost its preamble: %q", res.Document)
	}
}

func TestExtractRepairsRealisticResume(t *testing.T) {
	// Raw LaTeX backslashes throughout: \usepackage is \u plus non-hex
	// digits, \begin and \textbf collide with the \b and \t escapes.
	raw := `{"explanation": "added skills", "modifiedDocument": "\documentclass{article}\n\usepackage{xcolor}\n\begin{document}\n\textbf{Skills}: Go, SQL\n\end{document}", "hasChanges": true}`
	res := Extract(raw, currentDoc)
	if res.Outcome != OutcomeApplied {
		t.Fatalf("outcome = %s, want applied (%s)", res.Outcome, res.Explanation)
	}
	for _, want := range []string{`\usepackage{xcolor}`, `\begin{document}`, `\textbf{Skills}`} {
		if !strings.Contains(res.Document, want) {
			t.Errorf("document lost %q:\n%s", want, res.Document)
		}
	}
}

func TestExtractSelfReportedChangesOverridden(t *testing.T) {
	// Model claims hasChanges=true but returns the document unchanged.
	res := Extract(payload("changed it, promise", currentDoc, true), currentDoc)
	if res.Outcome != OutcomeNoOp {
		t.Errorf("identical document must be a no_op, got %s", res.Outcome)
	}
	if res.Document != "" {
		t.Errorf("no_op must not carry a document")
	}
}

func TestExtractIncompleteFragmentSuppressed(t *testing.T) {
	res := Extract(payload("added a skills section", "\\section*{Skills}\nGo", true), currentDoc)
	if res.Outcome != OutcomeNoOp {
		t.Errorf("fragment must downgrade to no_op, got %s", res.Outcome)
	}
	if res.Document != "" {
		t.Errorf("suppressed fragment leaked into document: %q", res.Document)
	}
	if res.Explanation != "added a skills section" {
		t.Errorf("explanation must be retained, got %q", res.Explanation)
	}
}

func TestExtractNoDocumentField(t *testing.T) {
	res := Extract(`{"explanation": "your resume already has that", "hasChanges": false}`, currentDoc)
	if res.Outcome != OutcomeNoOp {
		t.Errorf("outcome = %s, want no_op", res.Outcome)
	}
	if res.Explanation != "your resume already has that" {
		t.Errorf("explanation = %q", res.Explanation)
	}
}

func TestExtractEmptyDocumentField(t *testing.T) {
	res := Extract(`{"explanation": "nothing to do", "modifiedDocument": "   ", "hasChanges": true}`, currentDoc)
	if res.Outcome != OutcomeNoOp {
		t.Errorf("blank document must be a no_op, got %s", res.Outcome)
	}
}

func TestExtractProseFallback(t *testing.T) {
	res := Extract("I would suggest tightening the Experience bullets.", currentDoc)
	if res.Outcome != OutcomeNoOp {
		t.Fatalf("prose must become a conversational no_op, got %s", res.Outcome)
	}
	if res.Explanation != "I would suggest tightening the Experience bullets." {
		t.Errorf("prose must be kept as the explanation, got %q", res.Explanation)
	}
}

func TestExtractUnparseableWithBraces(t *testing.T) {
	res := Extract(`{"explanation": truncated garbage`, currentDoc)
	if res.Outcome != OutcomeError {
		t.Fatalf("outcome = %s, want error", res.Outcome)
	}
	if res.Explanation != fallbackExplanation {
		t.Errorf("explanation = %q, want fallback", res.Explanation)
	}
}

func TestExtractEmptyResponse(t *testing.T) {
	res := Extract("   \n ", currentDoc)
	if res.Outcome != OutcomeError {
		t.Errorf("empty response outcome = %s, want error", res.Outcome)
	}
}

func TestRepairEscapesKeepsValidPairs(t *testing.T) {
	in := `"a\\b \n \t \documentclass \end"`
	out := repairEscapes(in)
	if !strings.Contains(out, `a\\b`) {
		t.Errorf("valid pair was re-escaped: %q", out)
	}
	if !strings.Contains(out, `\\documentclass`) {
		t.Errorf("bad escape not doubled: %q", out)
	}
	if !strings.Contains(out, `\n`) || strings.Contains(out, `\\n`) {
		t.Errorf("recognised escape mangled: %q", out)
	}
}

func TestRepairEscapesUnicodeAndCommands(t *testing.T) {
	uesc := "\\" + "u0041"
	out := repairEscapes(`"` + uesc + ` \usepackage \begin \n"`)
	if !strings.Contains(out, uesc+" ") || strings.Contains(out, "\\"+uesc) {
		t.Errorf("unicode escape mangled: %q", out)
	}
	if !strings.Contains(out, `\\usepackage`) {
		t.Errorf(`\usepackage not doubled: %q`, out)
	}
	if !strings.Contains(out, `\\begin`) {
		t.Errorf(`\begin not doubled: %q`, out)
	}
	if !strings.Contains(out, `\n"`) || strings.Contains(out, `\\n"`) {
		t.Errorf("standalone newline escape mangled: %q", out)
	}
}

func TestStripFences(t *testing.T) {
	if got := stripFences("```json\n{\"a\":1}\n```"); got != `{"a":1}` {
		t.Errorf("stripFences = %q", got)
	}
	// Unfenced input passes through.
	if got := stripFences(`{"a":1}`); got != `{"a":1}` {
		t.Errorf("stripFences unfenced = %q", got)
	}
}
