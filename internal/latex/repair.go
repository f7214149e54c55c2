package latex

import (
	"regexp"
	"strings"
)

var preambleLineRe = regexp.MustCompile(`(?m)^(?:\\documentclass|\\usepackage).*?$`)

const minimalPreamble = `\documentclass[11pt]{article}
\usepackage[margin=0.8in]{geometry}
\usepackage[hidelinks]{hyperref}
\usepackage{xcolor}
\usepackage{enumitem}
\setlist[itemize]{leftmargin=*,itemsep=2pt,topsep=2pt}
\pagestyle{empty}
`

// EnsureWrapper guarantees minimal document structure around src so the
// compile relay never submits a bare fragment. It does not validate content.
func EnsureWrapper(src string) string {
	hasClass := strings.Contains(src, docClassAnchor)
	hasBegin := strings.Contains(src, beginDocAnchor)
	hasEnd := strings.Contains(src, endDocAnchor)

	if !hasClass {
		if !strings.HasPrefix(src, "\n") {
			src = "\n" + src
		}
		src = minimalPreamble + src
	}

	if hasClass && !hasBegin && !hasEnd {
		return src + "\n\\begin{document}\n\n\\end{document}\n"
	}
	if !hasBegin {
		insert := 0
		if locs := preambleLineRe.FindAllStringIndex(src, -1); len(locs) > 0 {
			insert = locs[len(locs)-1][1]
		}
		src = src[:insert] + "\n\\begin{document}\n" + src[insert:]
	}
	if !hasEnd {
		src += "\n\\end{document}\n"
	}
	return src
}

// AutoRepair applies mechanical fixes (wrapper, unbalanced braces, unclosed
// itemize environments) and reports what it changed.
func AutoRepair(src string) (string, []string) {
	var fixes []string

	repaired := EnsureWrapper(src)
	if repaired != src {
		fixes = append(fixes, "added minimal document wrapper")
	}

	if open, close := strings.Count(repaired, "{"), strings.Count(repaired, "}"); open > close {
		repaired += strings.Repeat("}", open-close)
		fixes = append(fixes, "balanced braces")
	}

	opens := strings.Count(repaired, `\begin{itemize}`)
	closes := strings.Count(repaired, `\end{itemize}`)
	if opens > closes {
		for i := 0; i < opens-closes; i++ {
			repaired += "\n\\end{itemize}"
		}
		repaired += "\n"
		fixes = append(fixes, "closed itemize environments")
	}

	return repaired, fixes
}

// Format applies deterministic whitespace formatting: trailing whitespace is
// stripped, runs of blank lines collapse to one, and the output ends with a
// single newline.
func Format(src string) string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if blank || len(out) == 0 {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	// Drop trailing blank lines.
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}
