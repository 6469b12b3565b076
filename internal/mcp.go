package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/kbase/internal/mcpserver"
)

// RunMCP serves the MCP tools on stdin/stdout. Logs go to stderr so they
// never mix with the protocol stream.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := newLogger(cfg, os.Stderr)
	slog.SetDefault(logger)

	st, err := openStack(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.db.Close()

	logger.Info("MCP server starting", slog.String("content_path", cfg.Content.Path))
	return mcpserver.New(st.svc, st.store, cfg.Quality.Workers, app.version).ServeStdio()
}
