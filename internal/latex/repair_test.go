package latex

import (
	"strings"
	"testing"
)

func TestEnsureWrapperBareFragment(t *testing.T) {
	out := EnsureWrapper("\\section*{Skills}\nGo, SQL")
	if !IsComplete(out) {
		t.Fatalf("wrapped fragment should be complete:\n%s", out)
	}
	if !strings.Contains(out, "\\section*{Skills}") {
		t.Error("original content lost")
	}
}

func TestEnsureWrapperPreambleOnly(t *testing.T) {
	out := EnsureWrapper("\\documentclass{article}\n\\usepackage{xcolor}")
	if !IsComplete(out) {
		t.Fatalf("preamble-only input should be completed:\n%s", out)
	}
	// The body must come after the preamble lines.
	if strings.Index(out, "\\usepackage{xcolor}") > strings.Index(out, "\\begin{document}") {
		t.Errorf("begin marker inserted before preamble:\n%s", out)
	}
}

func TestEnsureWrapperCompleteUnchanged(t *testing.T) {
	if out := EnsureWrapper(completeDoc); out != completeDoc {
		t.Error("complete document should pass through unchanged")
	}
}

func TestAutoRepair(t *testing.T) {
	src := "\\section*{Experience}\n\\begin{itemize}\n\\item Shipped {things"
	out, fixes := AutoRepair(src)

	if !IsComplete(out) {
		t.Fatalf("repaired output not complete:\n%s", out)
	}
	if strings.Count(out, "{") != strings.Count(out, "}") {
		t.Errorf("braces still unbalanced:\n%s", out)
	}
	if strings.Count(out, `\begin{itemize}`) != strings.Count(out, `\end{itemize}`) {
		t.Errorf("itemize still unclosed:\n%s", out)
	}
	if len(fixes) != 3 {
		t.Errorf("fixes = %v, want wrapper+braces+itemize", fixes)
	}
}

func TestAutoRepairNoChanges(t *testing.T) {
	out, fixes := AutoRepair(completeDoc)
	if out != completeDoc {
		t.Error("well-formed document modified")
	}
	if len(fixes) != 0 {
		t.Errorf("unexpected fixes: %v", fixes)
	}
}

func TestFormat(t *testing.T) {
	in := "\\documentclass{article}   \n\n\n\n\\begin{document}\t\nhi\n\n\n\\end{document}\n\n\n"
	want := "\\documentclass{article}\n\n\\begin{document}\nhi\n\n\\end{document}\n"
	if got := Format(in); got != want {
		t.Errorf("Format:\n got %q\nwant %q", got, want)
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format("\n\n  \n"); got != "" {
		t.Errorf("blank input should format to empty, got %q", got)
	}
}
