// Package latex provides lightweight analysis of LaTeX resume documents:
// completeness checking, section/package extraction, and snippet detection.
package latex

import (
	"regexp"
	"strings"
)

const (
	docClassAnchor = `\documentclass`
	beginDocAnchor = `\begin{document}`
	endDocAnchor   = `\end{document}`
)

var (
	sectionRe   = regexp.MustCompile(`(?m)^\s*\\(?:section|resumeSection)\*?\{([^}]+)\}`)
	packageRe   = regexp.MustCompile(`\\usepackage(?:\[[^\]]*\])?\{([^}]+)\}`)
	codeBlockRe = regexp.MustCompile("(?s)```(?:latex|tex)?\\s*\\n(.*?)\\n```")
)

// IsComplete reports whether candidate is a complete compilable document:
// it must contain a \documentclass declaration, \begin{document}, and
// \end{document}, with the end marker after the begin marker. Anything
// else — a bare section, prose, an empty string — is a fragment and must
// never replace the user's document.
func IsComplete(candidate string) bool {
	if strings.TrimSpace(candidate) == "" {
		return false
	}
	if !strings.Contains(candidate, docClassAnchor) {
		return false
	}
	begin := strings.Index(candidate, beginDocAnchor)
	end := strings.LastIndex(candidate, endDocAnchor)
	return begin >= 0 && end >= 0 && end > begin
}

// ExtractFromMessage pulls LaTeX source out of a user message: either the
// first fenced ```latex block, or the whole message when it is itself a
// document. Returns "" when the message carries no LaTeX.
func ExtractFromMessage(message string) string {
	if m := codeBlockRe.FindStringSubmatch(message); m != nil {
		return strings.TrimSpace(m[1])
	}
	if strings.Contains(message, docClassAnchor) && strings.Contains(message, beginDocAnchor) {
		return strings.TrimSpace(message)
	}
	return ""
}

// Insights is a summarised view of a document used for prompt context.
type Insights struct {
	Packages       []string
	Sections       []string
	CurrentSection string
	Snippet        string
}

// Summary renders the insights as prompt-ready context lines.
func (in Insights) Summary() string {
	sections := "None"
	if len(in.Sections) > 0 {
		sections = strings.Join(in.Sections, ", ")
	}
	packages := "None"
	if len(in.Packages) > 0 {
		packages = strings.Join(in.Packages, ", ")
	}
	current := in.CurrentSection
	if current == "" {
		current = "Unknown"
	}
	lines := []string{
		"Current section: " + current,
		"Detected packages: " + packages,
		"Sections: " + sections,
	}
	if in.Snippet != "" {
		lines = append(lines, "Context snippet:\n"+in.Snippet)
	}
	return strings.Join(lines, "\n")
}

// Analyze extracts packages, section headings, the section containing
// cursorLine (-1 for none), and a snippet of up to snippetRadius lines
// around the cursor.
func Analyze(document string, cursorLine int) Insights {
	const snippetRadius = 20

	var packages []string
	for _, m := range packageRe.FindAllStringSubmatch(document, -1) {
		for _, pkg := range strings.Split(m[1], ",") {
			if pkg = strings.TrimSpace(pkg); pkg != "" {
				packages = append(packages, pkg)
			}
		}
	}

	type entry struct {
		line int
		name string
	}
	var entries []entry
	for _, loc := range sectionRe.FindAllStringSubmatchIndex(document, -1) {
		name := document[loc[2]:loc[3]]
		line := strings.Count(document[:loc[0]], "\n")
		entries = append(entries, entry{line: line, name: name})
	}

	var sections []string
	current := ""
	for _, e := range entries {
		sections = append(sections, e.name)
	}
	if cursorLine < 0 {
		if len(entries) > 0 {
			current = entries[0].name
		}
	} else {
		for _, e := range entries {
			if e.line <= cursorLine {
				current = e.name
			} else {
				break
			}
		}
	}

	return Insights{
		Packages:       packages,
		Sections:       sections,
		CurrentSection: current,
		Snippet:        snippet(document, cursorLine, snippetRadius),
	}
}

// snippet returns up to radius lines either side of cursorLine.
func snippet(document string, cursorLine, radius int) string {
	lines := strings.Split(document, "\n")
	if len(lines) == 0 || document == "" {
		return ""
	}
	idx := cursorLine
	if idx < 0 {
		idx = 0
	}
	if idx > len(lines)-1 {
		idx = len(lines) - 1
	}
	start := idx - radius
	if start < 0 {
		start = 0
	}
	end := idx + radius + 1
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}
