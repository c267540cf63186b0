// Package mutation runs create, update and delete operations against a backend, keeping the
// resource store coherent and reporting each outcome.
package mutation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shutterdesk/studio/internal/domain/model"
	apperrors "github.com/shutterdesk/studio/internal/errors"
	obserrors "github.com/shutterdesk/studio/internal/observability/errors"
	"github.com/shutterdesk/studio/internal/observability/metrics"
	"github.com/shutterdesk/studio/internal/observability/notify"
	"github.com/shutterdesk/studio/internal/observability/statsd"
)

// Backend is the write side of a resource repository.
type Backend[T model.Resource, C any, U any] interface {
	Create(ctx context.Context, req C) (T, error)
	Update(ctx context.Context, id string, req U) (T, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Invalidator is implemented by store.Store.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// Options configures an Executor.
type Options struct {
	Resource    string
	Messages    Messages
	Invalidator Invalidator
	Sink        notify.Sink
	Logger      *slog.Logger
	Metrics     statsd.Sink
	Now         func() time.Time
}

// Executor performs mutations of one resource. Concurrent mutations are independent; the
// backend applies them in arrival order and the last write wins.
type Executor[T model.Resource, C any, U any] struct {
	backend Backend[T, C, U]
	opts    Options
}

// New creates an Executor over backend.
func New[T model.Resource, C any, U any](backend Backend[T, C, U], opts Options) *Executor[T, C, U] {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = statsd.Nop{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Executor[T, C, U]{backend: backend, opts: opts}
}

// Resource returns the resource key the executor mutates.
func (e *Executor[T, C, U]) Resource() string { return e.opts.Resource }

// Create creates a record.
func (e *Executor[T, C, U]) Create(ctx context.Context, req C) (T, error) {
	started := e.opts.Now()
	out, err := e.backend.Create(ctx, req)
	if err != nil {
		var zero T
		return zero, e.fail(ctx, OpCreate, "", started, err)
	}
	e.succeed(ctx, OpCreate, out.ResourceID(), started)
	return out, nil
}

// Update applies req to the record with the given id.
func (e *Executor[T, C, U]) Update(ctx context.Context, id string, req U) (T, error) {
	var zero T
	started := e.opts.Now()
	id = strings.TrimSpace(id)
	if id == "" {
		return zero, e.fail(ctx, OpUpdate, "", started, apperrors.ValidationField("id", "id is required"))
	}
	out, err := e.backend.Update(ctx, id, req)
	if err != nil {
		return zero, e.fail(ctx, OpUpdate, id, started, err)
	}
	e.succeed(ctx, OpUpdate, id, started)
	return out, nil
}

// Delete removes the record with the given id. A missing record is a not_found failure.
func (e *Executor[T, C, U]) Delete(ctx context.Context, id string) error {
	started := e.opts.Now()
	id = strings.TrimSpace(id)
	if id == "" {
		return e.fail(ctx, OpDelete, "", started, apperrors.ValidationField("id", "id is required"))
	}
	ok, err := e.backend.Delete(ctx, id)
	if err == nil && !ok {
		err = apperrors.NotFoundf("%s %s not found", e.opts.Resource, id)
	}
	if err != nil {
		return e.fail(ctx, OpDelete, id, started, err)
	}
	e.succeed(ctx, OpDelete, id, started)
	return nil
}

// Fail reports a failure found before the backend call, such as a record missing from the
// cached collection, with the same metrics and notification as a backend failure.
func (e *Executor[T, C, U]) Fail(ctx context.Context, op Op, id string, cause error) *Error {
	return e.fail(ctx, op, strings.TrimSpace(id), e.opts.Now(), cause)
}

func (e *Executor[T, C, U]) succeed(ctx context.Context, op Op, id string, started time.Time) {
	// The write already happened, so invalidate even if the caller has gone away.
	detached := context.WithoutCancel(ctx)
	if e.opts.Invalidator != nil {
		e.opts.Invalidator.Invalidate(detached)
	}
	metrics.Mutation(e.opts.Metrics, metrics.MutationMetric{
		Resource: e.opts.Resource, Op: string(op), Duration: e.opts.Now().Sub(started),
	})

	notice := e.opts.Messages.success(op)
	e.notify(detached, notify.Event{
		Resource:   e.opts.Resource,
		Op:         string(op),
		Outcome:    notify.OutcomeSuccess,
		Title:      notice.Title,
		Message:    notice.Message,
		ResourceID: id,
		OccurredAt: e.opts.Now(),
	})
}

func (e *Executor[T, C, U]) fail(ctx context.Context, op Op, id string, started time.Time, cause error) *Error {
	merr := &Error{Kind: KindOf(cause), Op: op, Resource: e.opts.Resource, Err: cause}
	metrics.Mutation(e.opts.Metrics, metrics.MutationMetric{
		Resource: e.opts.Resource, Op: string(op), Kind: string(merr.Kind),
		Duration: e.opts.Now().Sub(started), Err: cause,
	})

	title := e.opts.Messages.failure(op)
	if title == "" {
		title = "Failed to " + string(op) + " " + e.opts.Resource
	}
	e.notify(context.WithoutCancel(ctx), notify.Event{
		Resource:   e.opts.Resource,
		Op:         string(op),
		Outcome:    notify.OutcomeFailure,
		Title:      title,
		Message:    apperrors.Message(cause),
		ResourceID: id,
		ErrorKind:  string(merr.Kind),
		ErrorClass: obserrors.Classify(cause),
		OccurredAt: e.opts.Now(),
	})
	return merr
}

func (e *Executor[T, C, U]) notify(ctx context.Context, event notify.Event) {
	if e.opts.Sink == nil {
		return
	}
	if err := e.opts.Sink.Notify(ctx, event); err != nil {
		e.opts.Logger.WarnContext(ctx, "mutation notification failed",
			"resource", event.Resource, "op", event.Op, "error", err)
	}
}
