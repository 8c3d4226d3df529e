package worker

import (
	"context"
	"log/slog"

	"debatetab/pkg/platform/actionlog"
)

// Worker consumes action-log entries from a channel and persists them.
// Store failures are logged and the entry is dropped; the worker keeps
// running until its context is cancelled or the inbox is closed.
type Worker struct {
	store  actionlog.Store
	inbox  <-chan actionlog.Entry
	logger *slog.Logger
}

func NewWorker(store actionlog.Store, inbox <-chan actionlog.Entry, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run blocks until ctx is done or the inbox is closed. Entries still
// buffered when ctx is cancelled are not drained; use Drain for that.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case entry, ok := <-w.inbox:
			if !ok {
				return nil
			}
			w.append(ctx, entry)
		}
	}
}

// Drain persists everything left in the inbox without blocking.
func (w *Worker) Drain(ctx context.Context) {
	for {
		select {
		case entry, ok := <-w.inbox:
			if !ok {
				return
			}
			w.append(ctx, entry)
		default:
			return
		}
	}
}

func (w *Worker) append(ctx context.Context, entry actionlog.Entry) {
	if err := w.store.Append(ctx, entry); err != nil {
		w.logger.ErrorContext(ctx, "failed to persist action log entry",
			"type", string(entry.Type),
			"request_id", entry.RequestID,
			"error", err,
		)
	}
}
