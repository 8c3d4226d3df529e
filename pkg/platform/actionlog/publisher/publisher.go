// Package publisher is the entry point services use to record actions.
package publisher

import (
	"context"
	"log/slog"
	"sync"

	"debatetab/pkg/platform/actionlog"
	"debatetab/pkg/platform/actionlog/worker"
	"debatetab/pkg/requestcontext"
)

// Recorder counts accepted and dropped entries.
type Recorder interface {
	IncrementActionLogEvent(eventType string)
	IncrementActionLogDropped()
}

// Publisher stamps entries with request metadata and hands them to a store,
// either inline or through a buffered worker.
type Publisher struct {
	store   actionlog.Store
	logger  *slog.Logger
	metrics Recorder

	bufferSize int
	inbox      chan actionlog.Entry
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to async mode with a queue of size n.
// A full queue drops entries rather than blocking the request.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		p.bufferSize = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m Recorder) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

func NewPublisher(store actionlog.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufferSize > 0 {
		p.inbox = make(chan actionlog.Entry, p.bufferSize)
		ctx, cancel := context.WithCancel(context.Background())
		p.cancel = cancel
		w := worker.NewWorker(p.store, p.inbox, p.logger)
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			_ = w.Run(ctx)
			w.Drain(context.Background())
		}()
	}
	return p
}

// Emit records an entry. Missing actor, IP, request id and timestamp are
// filled from the request context. In sync mode store errors are returned;
// in async mode Emit never fails.
func (p *Publisher) Emit(ctx context.Context, entry actionlog.Entry) error {
	if entry.Actor == "" {
		entry.Actor = requestcontext.Actor(ctx)
	}
	if entry.IPAddress == "" {
		entry.IPAddress = requestcontext.ClientIP(ctx)
	}
	if entry.RequestID == "" {
		entry.RequestID = requestcontext.RequestID(ctx)
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = requestcontext.Now(ctx)
	}

	if p.inbox == nil {
		if err := p.store.Append(ctx, entry); err != nil {
			return err
		}
		p.count(entry)
		return nil
	}

	select {
	case p.inbox <- entry:
		p.count(entry)
	default:
		if p.metrics != nil {
			p.metrics.IncrementActionLogDropped()
		}
		p.logger.WarnContext(ctx, "action log queue full, dropping entry",
			"type", string(entry.Type),
			"request_id", entry.RequestID,
		)
	}
	return nil
}

func (p *Publisher) count(entry actionlog.Entry) {
	if p.metrics != nil {
		p.metrics.IncrementActionLogEvent(string(entry.Type))
	}
}

// Close stops the background worker after persisting queued entries.
// Safe to call more than once and in sync mode.
func (p *Publisher) Close() {
	p.closeOnce.Do(func() {
		if p.cancel != nil {
			p.cancel()
			p.wg.Wait()
		}
	})
}
