// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package syncer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/huguryildiz/senior-design-jury/models"
)

// Appender is the write half of the record log contract. Implemented by
// db.RecordLog and by any HTTP client wrapper.
type Appender interface {
	Append(records []models.EvaluationRecord) error
}

const (
	DefaultDebounce     = 2 * time.Second
	DefaultSyncInterval = 30 * time.Second
)

// Scheduler coalesces rapid local edits into periodic appends. Each call
// to Update replaces the pending snapshot for its group and arms a short
// debounce timer, so a burst of keystrokes produces one write. A separate
// ticker re-appends the full current state at a fixed interval regardless
// of debounce activity, which is what actually guarantees convergence:
// individual appends are fire-and-forget and may be lost without anyone
// noticing.
//
// Errors from the Appender are logged and dropped. A failed append is not
// retried - retry logic would have to guess whether the write was
// delivered, and reordering retries behind newer appends buys nothing
// that the periodic re-append does not already provide.
type Scheduler struct {
	appender Appender
	debounce time.Duration
	interval time.Duration

	mu      sync.Mutex
	current map[string]models.EvaluationRecord // by group id
	timer   *time.Timer
}

// New creates a scheduler. Zero durations take the defaults.
func New(appender Appender, debounce, interval time.Duration) *Scheduler {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	return &Scheduler{
		appender: appender,
		debounce: debounce,
		interval: interval,
		current:  make(map[string]models.EvaluationRecord),
	}
}

// Update replaces the pending record for its group and arms the debounce
// timer. The record's RecordedAt is stamped here so the eventual append
// carries the edit time, not the flush time.
func (s *Scheduler) Update(rec models.EvaluationRecord) {
	rec.RecordedAt = time.Now().UTC().Format(time.RFC3339Nano)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current[rec.GroupID] = rec
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.Flush)
}

// Flush appends a snapshot of the full current state immediately.
// Safe to call at any time; a tab close mid-debounce simply loses the
// pending flush, which the next periodic sync absorbs.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	batch := make([]models.EvaluationRecord, 0, len(s.current))
	for _, rec := range s.current {
		rec.ID = uuid.NewString()
		batch = append(batch, rec)
	}
	s.mu.Unlock()

	if len(batch) == 0 {
		return
	}
	if err := s.appender.Append(batch); err != nil {
		// Swallowed: convergence comes from the periodic re-append.
		slog.Warn("append failed, awaiting re-sync", "error", err, "count", len(batch))
	}
}

// Run re-appends the full current state every interval until the context
// is cancelled, then flushes once more on the way out.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Flush()
		case <-ctx.Done():
			s.Flush()
			return
		}
	}
}
