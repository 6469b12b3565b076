package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/kbase/internal/entryservice"
	"github.com/starford/kbase/internal/library"
	"github.com/starford/kbase/internal/quality"
	"github.com/starford/kbase/internal/storage"
	"github.com/starford/kbase/internal/testutil"
)

func testServer(t *testing.T) (*Server, storage.Provider) {
	t.Helper()

	_, store := testutil.TestContent(t, map[string]string{
		"attention.md":  testutil.Entry("Attention for practitioners", "2024-03-01", "nlp", "## Queries\n\nBody."),
		"embeddings.md": testutil.Entry("Embeddings", "2024-02-01", "nlp, vectors", "Dense vectors."),
		"wip.md":        "---\ntitle: hi\nstatus: draft\n---\nHello world.",
	})
	db := testutil.TestDB(t)
	logger := testutil.Logger()
	lib := library.New(store, library.Options{}, logger)
	svc := entryservice.NewService(lib, db, store, nil, entryservice.Options{Logger: logger})
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	return New(svc, store, 2, "test"), store
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" helper, so handlers are invoked directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "search_entries":
		result, err = srv.searchEntries(ctx, req)
	case "read_entry":
		result, err = srv.readEntry(ctx, req)
	case "list_entries":
		result, err = srv.listEntries(ctx, req)
	case "check_quality":
		result, err = srv.checkQuality(ctx, req)
	case "get_checklist":
		result, err = srv.getChecklist(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestReadEntry(t *testing.T) {
	srv, _ := testServer(t)

	text := resultText(callTool(t, srv, "read_entry", map[string]any{"slug": "embeddings"}))
	if !strings.HasPrefix(text, "---\ntitle: Embeddings\n") {
		t.Errorf("read result = %q", text)
	}
	// Drafts are readable for authoring.
	r := callTool(t, srv, "read_entry", map[string]any{"slug": "wip.md"})
	if r.IsError {
		t.Errorf("draft read failed: %s", resultText(r))
	}
}

func TestReadEntryMissing(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "read_entry", map[string]any{"slug": "nope"})
	if !r.IsError {
		t.Error("expected error for missing entry")
	}
	r = callTool(t, srv, "read_entry", map[string]any{})
	if !r.IsError {
		t.Error("expected error without slug")
	}
}

func TestListEntries(t *testing.T) {
	srv, _ := testServer(t)

	text := resultText(callTool(t, srv, "list_entries", map[string]any{}))
	if text != "attention: Attention for practitioners\nembeddings: Embeddings" {
		t.Errorf("list = %q", text)
	}

	text = resultText(callTool(t, srv, "list_entries", map[string]any{"tag": "vectors"}))
	if text != "embeddings: Embeddings" {
		t.Errorf("filtered list = %q", text)
	}

	text = resultText(callTool(t, srv, "list_entries", map[string]any{"category": "none"}))
	if text != "no entries found" {
		t.Errorf("empty list = %q", text)
	}
}

func TestSearchEntries(t *testing.T) {
	srv, _ := testServer(t)
	text := resultText(callTool(t, srv, "search_entries", map[string]any{"query": "vectors"}))
	if !strings.Contains(text, `"embeddings"`) {
		t.Errorf("search = %q", text)
	}
}

func TestCheckQuality_Single(t *testing.T) {
	srv, _ := testServer(t)

	text := resultText(callTool(t, srv, "check_quality", map[string]any{"slug": "wip"}))
	if !strings.Contains(text, "📄 hi (wip)") || !strings.Contains(text, "Score: 41% (13/32 checks passed)") {
		t.Errorf("report = %q", text)
	}
	if strings.Contains(text, "✓") {
		t.Error("passing checks listed without verbose")
	}

	text = resultText(callTool(t, srv, "check_quality", map[string]any{"slug": "wip", "verbose": true}))
	if !strings.Contains(text, "✓") {
		t.Error("verbose report should list passing checks")
	}

	r := callTool(t, srv, "check_quality", map[string]any{"slug": "missing"})
	if !r.IsError {
		t.Error("expected error for missing entry")
	}
}

func TestCheckQuality_All(t *testing.T) {
	srv, _ := testServer(t)

	text := resultText(callTool(t, srv, "check_quality", map[string]any{}))
	if !strings.Contains(text, "Checked 3 file(s)") {
		t.Errorf("batch = %q", text)
	}
	if strings.Contains(text, "\x1b[") {
		t.Error("tool output must be plain text")
	}
	// Lowest score first: the draft comes before the published entries.
	if strings.Index(text, "(wip)") > strings.Index(text, "(embeddings)") {
		t.Error("reports not sorted ascending by score")
	}
}

func TestGetChecklist(t *testing.T) {
	srv, _ := testServer(t)
	text := resultText(callTool(t, srv, "get_checklist", nil))
	for _, cat := range quality.Categories {
		if !strings.Contains(text, "## "+cat) {
			t.Errorf("missing category %q", cat)
		}
	}
	if got := strings.Count(text, "\n- **"); got != quality.Size() {
		t.Errorf("items = %d, want %d", got, quality.Size())
	}
}

func TestChecklistResource(t *testing.T) {
	srv, _ := testServer(t)
	contents, err := srv.readChecklistResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.URI != ChecklistURI || tc.Text != ChecklistMarkdown() {
		t.Errorf("resource = %+v", contents[0])
	}
}
