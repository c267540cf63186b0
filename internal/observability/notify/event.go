// Package notify carries mutation outcome notifications to user-facing and operator sinks.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Outcome of a mutation.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Event is the canonical payload emitted after every create, update or delete.
type Event struct {
	Resource   string
	Op         string
	Outcome    Outcome
	Title      string
	Message    string
	ResourceID string
	// ErrorKind is the mutation failure kind (validation, network, ...), empty on success.
	ErrorKind  string
	ErrorClass string
	OccurredAt time.Time
	Metadata   map[string]string
}

// Failed reports whether the event describes a failed mutation.
func (e Event) Failed() bool { return e.Outcome == OutcomeFailure }

// Sink describes a destination capable of consuming mutation notifications.
type Sink interface {
	Notify(ctx context.Context, event Event) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, event Event) error

// Notify implements the Sink interface.
func (f SinkFunc) Notify(ctx context.Context, event Event) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

// Fanout delivers each event to every sink and joins their errors.
type Fanout []Sink

// Notify implements the Sink interface.
func (f Fanout) Notify(ctx context.Context, event Event) error {
	var errs []error
	for _, s := range f {
		if s == nil {
			continue
		}
		if err := s.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FailuresOnly forwards failure events and drops successes.
func FailuresOnly(next Sink) Sink {
	return SinkFunc(func(ctx context.Context, event Event) error {
		if next == nil || !event.Failed() {
			return nil
		}
		return next.Notify(ctx, event)
	})
}

// LogSink writes every event to a structured logger.
type LogSink struct {
	Logger *slog.Logger
}

// Notify implements the Sink interface.
func (s LogSink) Notify(ctx context.Context, event Event) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{
		"resource", event.Resource,
		"op", event.Op,
		"outcome", string(event.Outcome),
		"title", event.Title,
	}
	if event.ResourceID != "" {
		attrs = append(attrs, "id", event.ResourceID)
	}
	if event.Failed() {
		attrs = append(attrs, "kind", event.ErrorKind, "error", event.Message)
		logger.WarnContext(ctx, "mutation failed", attrs...)
		return nil
	}
	logger.InfoContext(ctx, "mutation succeeded", attrs...)
	return nil
}
