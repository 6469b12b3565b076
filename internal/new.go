package internal

import (
	"fmt"
	"path/filepath"

	"github.com/starford/kbase/internal/scaffold"
	"github.com/starford/kbase/internal/storage"
)

// RunNew writes a draft entry skeleton into the content directory and
// returns its path on disk.
func RunNew(e scaffold.Entry, opts ...Option) (string, error) {
	app := newApplication(opts)
	if app.config == nil {
		return "", fmt.Errorf("config is required")
	}
	cfg := app.config

	store, err := storage.NewFS(cfg.Content.Path, cfg.Content.Pattern)
	if err != nil {
		return "", fmt.Errorf("content directory %s: %w", cfg.Content.Path, err)
	}
	rel, err := scaffold.Create(store, e)
	if err != nil {
		return "", err
	}
	full := filepath.Join(store.Root(), rel)

	fmt.Fprintf(app.stdout, "\nCreated:\n%s\n\nNext steps:\n", full)
	fmt.Fprintln(app.stdout, "1) Fill in the sections")
	fmt.Fprintln(app.stdout, "2) Set status to published when ready")
	fmt.Fprintf(app.stdout, "3) Run: kbase check %s\n", storage.SlugFromPath(rel))
	return full, nil
}
