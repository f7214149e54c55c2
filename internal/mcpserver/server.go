// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes ResumeForge tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/resumeforge/resumeforge/internal/latex"
	"github.com/resumeforge/resumeforge/internal/resume"
	"github.com/resumeforge/resumeforge/internal/template"
)

// Server wraps the MCP server with ResumeForge tools.
type Server struct {
	mcp       *server.MCPServer
	resumes   resume.Store
	templates *template.Registry
	owner     string
}

// New creates a new MCP server with all ResumeForge tools registered.
// owner scopes every resume operation.
func New(resumes resume.Store, templates *template.Registry, owner string) *Server {
	s := &Server{resumes: resumes, templates: templates, owner: owner}

	s.mcp = server.NewMCPServer(
		"ResumeForge",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_resumes",
		mcp.WithDescription("List stored resumes with their ids, titles and checksums."),
	), s.listResumes)

	s.mcp.AddTool(mcp.NewTool("read_resume",
		mcp.WithDescription("Read the full LaTeX source of a stored resume."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Resume id")),
	), s.readResume)

	s.mcp.AddTool(mcp.NewTool("validate_document",
		mcp.WithDescription("Check whether a LaTeX document is structurally complete "+
			"(documentclass declaration plus matched begin/end document markers). "+
			"Only complete documents are safe to store or compile."),
		mcp.WithString("content", mcp.Required(), mcp.Description("LaTeX source to validate")),
	), s.validateDocument)

	s.mcp.AddTool(mcp.NewTool("analyze_document",
		mcp.WithDescription("Summarize a LaTeX resume: loaded packages, section outline, "+
			"and the section surrounding an optional cursor line."),
		mcp.WithString("content", mcp.Required(), mcp.Description("LaTeX source to analyze")),
		mcp.WithString("cursor_line", mcp.Description("Optional 1-based cursor line for context")),
	), s.analyzeDocument)

	s.mcp.AddTool(mcp.NewTool("get_template",
		mcp.WithDescription("Return a named resume template. Produced documents MUST follow "+
			"the canonical resume format; read the resumeforge://resume-format resource first."),
		mcp.WithString("style", mcp.Description("Template style (empty for the default)")),
	), s.getTemplate)

	// Resource: resume format contract.
	s.mcp.AddResource(
		mcp.NewResource("resumeforge://resume-format", "Resume Format Contract",
			mcp.WithResourceDescription("Canonical LaTeX resume format that all documents must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readResumeFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listResumes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, _, err := s.resumes.List(ctx, s.owner, 0, 0)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readResume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.resumes.Get(ctx, s.owner, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	return mcp.NewToolResultText(res.Content), nil
}

func (s *Server) validateDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if latex.IsComplete(content) {
		return mcp.NewToolResultText("complete"), nil
	}

	var missing []string
	if !strings.Contains(content, `\documentclass`) {
		missing = append(missing, `\documentclass`)
	}
	if !strings.Contains(content, `\begin{document}`) {
		missing = append(missing, `\begin{document}`)
	}
	if !strings.Contains(content, `\end{document}`) {
		missing = append(missing, `\end{document}`)
	}
	return mcp.NewToolResultText("incomplete: missing " + strings.Join(missing, ", ")), nil
}

func (s *Server) analyzeDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	// cursor_line is 1-based; Analyze counts lines from 0.
	cursorLine := -1
	if raw, err := req.RequireString("cursor_line"); err == nil {
		if n, convErr := strconv.Atoi(raw); convErr == nil && n > 0 {
			cursorLine = n - 1
		}
	}
	return mcp.NewToolResultText(latex.Analyze(content, cursorLine).Summary()), nil
}

func (s *Server) getTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	style := template.DefaultStyle
	if v, err := req.RequireString("style"); err == nil && v != "" {
		style = v
	}
	tpl, err := s.templates.Get(style)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("unknown style: %s (available: %s)",
			style, strings.Join(s.templates.Styles(), ", "))), nil
	}
	return mcp.NewToolResultText(tpl), nil
}

func (s *Server) readResumeFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "resumeforge://resume-format",
			MIMEType: "text/markdown",
			Text:     ResumeFormatContract,
		},
	}, nil
}
