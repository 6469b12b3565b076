// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes kbase tools for LLM integration via stdio transport.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/kbase/internal/apperr"
	"github.com/starford/kbase/internal/entryservice"
	"github.com/starford/kbase/internal/library"
	"github.com/starford/kbase/internal/models"
	"github.com/starford/kbase/internal/quality"
	"github.com/starford/kbase/internal/report"
	"github.com/starford/kbase/internal/storage"
)

// ChecklistURI is the resource holding the quality checklist.
const ChecklistURI = "kbase://checklist"

const searchLimit = 20

// Server wraps the MCP server with kbase tools.
type Server struct {
	mcp     *server.MCPServer
	svc     *entryservice.Service
	store   storage.Provider
	workers int
}

// New creates a new MCP server with all kbase tools registered. Quality
// checks read every file in store, drafts included.
func New(svc *entryservice.Service, store storage.Provider, workers int, version string) *Server {
	s := &Server{svc: svc, store: store, workers: workers}

	s.mcp = server.NewMCPServer(
		"kbase",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_entries",
		mcp.WithDescription("Full-text search through published entries."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchEntries)

	s.mcp.AddTool(mcp.NewTool("read_entry",
		mcp.WithDescription("Read the raw Markdown of an entry, frontmatter included."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Entry slug, e.g. attention or ml/attention")),
	), s.readEntry)

	s.mcp.AddTool(mcp.NewTool("list_entries",
		mcp.WithDescription("List published entries, newest first, optionally filtered."),
		mcp.WithString("tag", mcp.Description("Only entries with this tag")),
		mcp.WithString("category", mcp.Description("Only entries in this category")),
		mcp.WithString("level", mcp.Description("beginner, intermediate or advanced")),
	), s.listEntries)

	s.mcp.AddTool(mcp.NewTool("check_quality",
		mcp.WithDescription("Score entries against the quality checklist. "+
			"Without a slug every file is checked, drafts included. "+
			"Read the checklist first via get_checklist or the "+ChecklistURI+" resource."),
		mcp.WithString("slug", mcp.Description("Entry to check (empty for all)")),
		mcp.WithBoolean("verbose", mcp.Description("List passing checks too")),
	), s.checkQuality)

	s.mcp.AddTool(mcp.NewTool("get_checklist",
		mcp.WithDescription("Returns the entry format and the quality checklist."),
	), s.getChecklist)

	s.mcp.AddResource(
		mcp.NewResource(ChecklistURI, "Entry Quality Checklist",
			mcp.WithResourceDescription("Entry format and the checks every entry is scored against."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readChecklistResource,
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

func (s *Server) searchEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, searchLimit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(storage.PathFromSlug(slug))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) listEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := entryservice.ListQuery{
		Category: req.GetString("category", ""),
		Level:    models.Level(req.GetString("level", "")),
	}
	if tag := req.GetString("tag", ""); tag != "" {
		q.Tags = []string{tag}
	}
	items, err := s.svc.ListEntries(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(items) == 0 {
		return mcp.NewToolResultText("no entries found"), nil
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = fmt.Sprintf("%s: %s", it.Slug, it.Title)
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) checkQuality(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug := strings.TrimSuffix(req.GetString("slug", ""), ".md")
	verbose := req.GetBool("verbose", false)

	if slug != "" {
		doc, err := library.ReadDocument(s.store, storage.PathFromSlug(slug))
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug)), nil
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(report.Format(quality.Evaluate(doc), verbose)), nil
	}

	docs, err := library.LoadDocuments(ctx, s.store)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(docs) == 0 {
		return mcp.NewToolResultError("no markdown files found"), nil
	}
	reports, err := quality.EvaluateAll(ctx, docs, s.workers)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var buf bytes.Buffer
	if err := report.New(&buf, report.WithColor(false), report.WithVerbose(verbose)).Batch(reports); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) getChecklist(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ChecklistMarkdown()), nil
}

func (s *Server) readChecklistResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ChecklistURI,
			MIMEType: "text/markdown",
			Text:     ChecklistMarkdown(),
		},
	}, nil
}
