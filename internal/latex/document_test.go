package latex

import (
	"strings"
	"testing"
)

const completeDoc = `\documentclass[11pt]{article}
\usepackage[margin=1in]{geometry}
\usepackage{xcolor,enumitem}
\begin{document}
\section*{Experience}
\textbf{Engineer}
\begin{itemize}
\item Did things.
\end{itemize}
\section*{Education}
\textbf{B.Sc.}
\end{document}
`

func TestIsComplete(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"complete document", completeDoc, true},
		{"empty", "", false},
		{"whitespace only", "   \n\t  ", false},
		{"missing documentclass", "\\begin{document}\nhi\n\\end{document}", false},
		{"missing begin", "\\documentclass{article}\n\\end{document}", false},
		{"missing end", "\\documentclass{article}\n\\begin{document}\nhi", false},
		{"end before begin", "\\documentclass{article}\n\\end{document}\n\\begin{document}", false},
		{"bare section fragment", "\\section*{Experience}\n\\item New role", false},
		{"prose", "Here is your updated resume, looks great!", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsComplete(tc.in); got != tc.want {
				t.Errorf("IsComplete = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsCompleteEndAfterLaterBegin(t *testing.T) {
	// The last \end{document} is the one that counts.
	doc := "\\documentclass{article}\n\\end{document}\n\\begin{document}\nbody\n\\end{document}"
	if !IsComplete(doc) {
		t.Error("document with a final end marker after begin should be complete")
	}
}

func TestExtractFromMessage(t *testing.T) {
	fenced := "Please review:\n```latex\n" + strings.TrimSpace(completeDoc) + "\n```\nthanks"
	if got := ExtractFromMessage(fenced); got != strings.TrimSpace(completeDoc) {
		t.Errorf("fenced extraction mismatch:\n%q", got)
	}

	if got := ExtractFromMessage(completeDoc); got != strings.TrimSpace(completeDoc) {
		t.Errorf("whole-message extraction mismatch:\n%q", got)
	}

	if got := ExtractFromMessage("how do I add a skills section?"); got != "" {
		t.Errorf("prose should yield no LaTeX, got %q", got)
	}
}

func TestAnalyze(t *testing.T) {
	in := Analyze(completeDoc, -1)

	wantPkgs := []string{"geometry", "xcolor", "enumitem"}
	if len(in.Packages) != len(wantPkgs) {
		t.Fatalf("packages = %v, want %v", in.Packages, wantPkgs)
	}
	for i, p := range wantPkgs {
		if in.Packages[i] != p {
			t.Errorf("package[%d] = %q, want %q", i, in.Packages[i], p)
		}
	}

	if len(in.Sections) != 2 || in.Sections[0] != "Experience" || in.Sections[1] != "Education" {
		t.Errorf("sections = %v", in.Sections)
	}

	// No cursor: current section falls back to the first.
	if in.CurrentSection != "Experience" {
		t.Errorf("current section = %q, want Experience", in.CurrentSection)
	}
}

func TestAnalyzeCursorSection(t *testing.T) {
	// Line 9 (0-based) is \section*{Education}; a cursor below it lands there.
	in := Analyze(completeDoc, 10)
	if in.CurrentSection != "Education" {
		t.Errorf("current section = %q, want Education", in.CurrentSection)
	}
	if in.Snippet == "" {
		t.Error("expected non-empty snippet around cursor")
	}
}

func TestAnalyzeEmptyDocument(t *testing.T) {
	in := Analyze("", -1)
	if len(in.Packages) != 0 || len(in.Sections) != 0 || in.CurrentSection != "" {
		t.Errorf("empty document should yield empty insights: %+v", in)
	}
}

func TestInsightsSummary(t *testing.T) {
	s := Insights{}.Summary()
	if !strings.Contains(s, "Current section: Unknown") {
		t.Errorf("summary missing Unknown fallback: %q", s)
	}
	if !strings.Contains(s, "Detected packages: None") {
		t.Errorf("summary missing None fallback: %q", s)
	}
}
