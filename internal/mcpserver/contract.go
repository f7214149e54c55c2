package mcpserver

// ResumeFormatContract describes the canonical LaTeX resume format that
// LLM consumers should follow when producing or rewriting documents.
const ResumeFormatContract = `# ResumeForge Resume Format Contract

Every LaTeX document produced for ResumeForge MUST follow this structure.

## Structure

` + "```" + `latex
\documentclass[11pt]{article}
\usepackage[margin=0.8in]{geometry}   % preamble: packages and setup
\pagestyle{empty}
\begin{document}

% header block: name and contact line

\section*{Experience}
% entries with \begin{itemize} ... \end{itemize} bullet lists

\section*{Education}

\section*{Skills}

\end{document}
` + "```" + `

## Rules

1. **Documents are always complete.** Every document MUST contain
   ` + "`" + `\documentclass` + "`" + `, ` + "`" + `\begin{document}` + "`" + ` and a closing
   ` + "`" + `\end{document}` + "`" + `. Fragments and partial diffs are rejected.
2. **Rewrite, never patch.** When modifying a resume, return the ENTIRE
   updated document, not just the changed lines.
3. **Sections** use ` + "`" + `\section*{...}` + "`" + ` (unnumbered). Typical order:
   Experience, Education, Skills, then optional sections.
4. **Bullet lists** use ` + "`" + `itemize` + "`" + ` environments; every
   ` + "`" + `\begin{itemize}` + "`" + ` MUST have a matching ` + "`" + `\end{itemize}` + "`" + `.
5. **Braces must balance.** Unbalanced ` + "`" + `{` + "`" + `/` + "`" + `}` + "`" + ` pairs fail
   compilation.
6. **One page** is the target for non-academic resumes; keep entries concise.
7. **Encoding** is UTF-8; escape LaTeX special characters
   (` + "`" + `% & # _` + "`" + `) in prose.

## Validation

Run the ` + "`" + `validate_document` + "`" + ` tool before storing or compiling a
document. Use ` + "`" + `analyze_document` + "`" + ` to inspect the section outline of
an existing resume, and ` + "`" + `get_template` + "`" + ` to start from a known-good
skeleton.
`
