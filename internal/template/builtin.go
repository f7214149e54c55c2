package template

// Built-in styles are always available, even with an empty template
// directory. Files on disk with the same stem override them.

const modernTemplate = `\documentclass[11pt]{article}
\usepackage[margin=0.8in]{geometry}
\usepackage[hidelinks]{hyperref}
\usepackage{xcolor}
\usepackage{enumitem}
\setlist[itemize]{leftmargin=*,itemsep=2pt,topsep=2pt}
\pagestyle{empty}
\begin{document}

\begin{center}
	{\LARGE \textbf{Your Name}}\\[2pt]
	your.email@example.com \, | \, (555) 000-0000 \, | \, \href{https://example.com}{example.com}
\end{center}

\section*{Experience}
\textbf{Software Engineer} \hfill 2022--Present\\
\textit{Company Name} \hfill City, Country
\begin{itemize}
	\item Describe a concrete accomplishment with measurable impact.
	\item Describe another accomplishment.
\end{itemize}

\section*{Education}
\textbf{B.Sc.\ in Computer Science} \hfill 2018--2022\\
\textit{University Name}

\section*{Skills}
Languages: \, Go, Python, SQL\\
Tools: \, Docker, Git, Linux

\end{document}
`

const classicTemplate = `\documentclass[11pt]{article}
\usepackage[margin=1in]{geometry}
\usepackage[hidelinks]{hyperref}
\pagestyle{empty}
\begin{document}

\begin{center}
	{\Large \textsc{Your Name}}\\
	your.email@example.com
\end{center}

\section*{Experience}
\textbf{Job Title}, Company Name \hfill 2022--Present

\section*{Education}
\textbf{Degree}, University Name \hfill 2018--2022

\section*{Skills}
List your skills here.

\end{document}
`

const academicTemplate = `\documentclass[11pt]{article}
\usepackage[margin=1in]{geometry}
\usepackage[hidelinks]{hyperref}
\pagestyle{empty}
\begin{document}

\begin{center}
	{\Large \textbf{Your Name}}\\
	Department, University \, | \, your.email@example.edu
\end{center}

\section*{Education}
\textbf{Ph.D.\ in Field} \hfill 2020--Present\\
\textit{University Name}

\section*{Publications}
\begin{itemize}
	\item Author, A., \textbf{Your Name}. ` + "``" + `Paper Title.'' Venue, Year.
\end{itemize}

\section*{Teaching}
\textbf{Course Name} (Teaching Assistant) \hfill Term

\section*{Research Interests}
Describe your research interests.

\end{document}
`

func builtinStyles() map[string]string {
	return map[string]string{
		"modern":   modernTemplate,
		"classic":  classicTemplate,
		"academic": academicTemplate,
	}
}
