package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/starford/kbase/internal/apperr"
	"github.com/starford/kbase/internal/library"
	"github.com/starford/kbase/internal/models"
	"github.com/starford/kbase/internal/quality"
	"github.com/starford/kbase/internal/report"
	"github.com/starford/kbase/internal/storage"
)

// ErrCheckFailed is returned after the check command has already reported
// the failure to the user.
var ErrCheckFailed = errors.New("check failed")

// CheckOptions selects what the check command audits.
type CheckOptions struct {
	Slug          string // empty checks every file
	Dir           string // overrides content.path
	Verbose       bool
	MinScore      int // 0 disables the gate
	AutomatedOnly bool
	NoColor       bool
}

// RunCheck audits entry files on disk and prints the report. Drafts and
// entries that fail schema validation are audited too.
func RunCheck(ctx context.Context, co CheckOptions, opts ...Option) error {
	app := newApplication(opts)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	dir := co.Dir
	if dir == "" {
		dir = cfg.Content.Path
	}

	color := report.IsTerminal(app.stdout) && !co.NoColor
	out := report.New(app.stdout, report.WithVerbose(co.Verbose), report.WithColor(color))
	errOut := report.New(app.stderr, report.WithColor(color && report.IsTerminal(app.stderr)))

	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		errOut.Error("Content directory not found: %s", dir)
		return ErrCheckFailed
	}
	store, err := storage.NewFS(dir, cfg.Content.Pattern)
	if err != nil {
		return err
	}

	docs, err := loadForCheck(ctx, store, co.Slug, errOut)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		errOut.Error("No markdown files found")
		return ErrCheckFailed
	}

	reports, err := quality.EvaluateAll(ctx, docs, cfg.Quality.Workers)
	if err != nil {
		return err
	}
	if err := out.Batch(reports); err != nil {
		return err
	}

	if co.MinScore > 0 {
		below := 0
		for _, r := range reports {
			score := r.Score
			if co.AutomatedOnly {
				score = r.AutomatedScore()
			}
			if score < co.MinScore {
				below++
			}
		}
		if below > 0 {
			errOut.Error("%d file(s) below minimum score %d%%", below, co.MinScore)
			return ErrCheckFailed
		}
	}
	return nil
}

func loadForCheck(ctx context.Context, store storage.Provider, slug string, errOut *report.Formatter) ([]models.Document, error) {
	if slug == "" {
		return library.LoadDocuments(ctx, store)
	}
	path := storage.PathFromSlug(slug)
	doc, err := library.ReadDocument(store, path)
	if errors.Is(err, apperr.ErrNotFound) {
		errOut.Warn("File not found: %s", filepath.Join(store.Root(), path))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []models.Document{doc}, nil
}
