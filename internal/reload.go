package internal

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/starford/kbase/internal/entryservice"
	"github.com/starford/kbase/internal/metrics"
)

const reloadDelay = 150 * time.Millisecond

type change struct {
	kind string
	slug string
}

// publisher receives per-entry change notifications after a reload.
type publisher interface {
	PublishEntryEvent(kind, slug string)
}

// reloader coalesces watcher events into one library reload, refreshes
// the quality gauges, then publishes the events.
type reloader struct {
	svc    *entryservice.Service
	m      *metrics.Metrics
	pub    publisher
	logger *slog.Logger
	delay  time.Duration

	mu      sync.Mutex
	pending []change
	wake    chan struct{}
}

func newReloader(svc *entryservice.Service, m *metrics.Metrics, pub publisher, logger *slog.Logger) *reloader {
	return &reloader{
		svc:    svc,
		m:      m,
		pub:    pub,
		logger: logger,
		delay:  reloadDelay,
		wake:   make(chan struct{}, 1),
	}
}

// notify is the index.EventCallback. It never blocks the watcher.
func (r *reloader) notify(kind, slug string) {
	r.m.ContentChanged(kind)
	r.mu.Lock()
	r.pending = append(r.pending, change{kind: kind, slug: slug})
	r.mu.Unlock()
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// run processes batches until ctx is cancelled.
func (r *reloader) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.wake:
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(r.delay):
		}
		r.flush(ctx)
	}
}

func (r *reloader) flush(ctx context.Context) {
	r.mu.Lock()
	batch := r.pending
	r.pending = nil
	r.mu.Unlock()
	if len(batch) == 0 {
		return
	}

	if err := r.svc.Library().Reload(ctx); err != nil {
		r.logger.Error("reload failed", slog.String("error", err.Error()))
		return
	}
	r.observe(ctx)
	for _, c := range batch {
		r.pub.PublishEntryEvent(c.kind, c.slug)
	}
}

// observe re-evaluates the library into the quality gauges.
func (r *reloader) observe(ctx context.Context) {
	qr, err := r.svc.QualityReport(ctx)
	if err != nil {
		r.logger.Warn("quality evaluation failed", slog.String("error", err.Error()))
		return
	}
	r.m.ObserveReports(qr.Reports)
	r.m.SetEntries(r.svc.Library().Len())
}
