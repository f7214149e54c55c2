package internal

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/resumeforge/resumeforge/internal/mcpserver"
	"github.com/resumeforge/resumeforge/internal/resume"
	"github.com/resumeforge/resumeforge/internal/template"
)

// RunMCP serves the MCP tool surface over stdio. Logs go to stderr so they
// never corrupt the protocol stream on stdout.
func RunMCP(cfg *Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	db, err := resume.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init resume store: %w", err)
	}
	defer db.Close()

	templates, err := template.NewRegistry(cfg.Templates.Path, logger)
	if err != nil {
		return fmt.Errorf("init templates: %w", err)
	}

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(db, templates, cfg.Auth.User).ServeStdio()
}
