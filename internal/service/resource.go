// Package service composes the resource store, mutation executor, form schemas and view
// projection into one service per resource.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shutterdesk/studio/internal/domain/model"
	apperrors "github.com/shutterdesk/studio/internal/errors"
	"github.com/shutterdesk/studio/internal/mutation"
	"github.com/shutterdesk/studio/internal/projection"
	"github.com/shutterdesk/studio/internal/store"
	"github.com/shutterdesk/studio/internal/validation"
)

// ListResult is one projected page of a collection.
type ListResult[T any] struct {
	Items []T `json:"items"`
	// Total counts the filtered items before paging.
	Total     int       `json:"total"`
	Stale     bool      `json:"stale,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
	// Err is the failure of the latest fetch when stale data is being served.
	Err error `json:"-"`
}

// codec converts between form drafts and typed requests for one resource.
type codec[T any, C any, U any] struct {
	schema       func() *validation.Schema
	decodeCreate func(validation.Draft) (C, error)
	decodeUpdate func(current, patch validation.Draft) (U, error)
	draft        func(T) validation.Draft
}

// loadMessages are shown when a collection cannot be served at all.
var loadMessages = map[string]string{
	model.KeyJobs.String():         "Failed to load job postings",
	model.KeyInvoices.String():     "Failed to load invoices",
	model.KeyTransactions.String(): "Failed to load transactions",
	model.KeyGallery.String():      "Failed to load gallery images",
}

func loadError(key string, err error) error {
	msg, ok := loadMessages[key]
	if !ok {
		msg = "Failed to load " + key
	}
	return apperrors.Unavailable(err, msg)
}

// resource is the CRUD core shared by the resource services.
type resource[T model.Resource, C any, U any] struct {
	store  *store.Store[T]
	exec   *mutation.Executor[T, C, U]
	codec  codec[T, C, U]
	acc    func() projection.Accessors[T]
	logger *slog.Logger
}

func (r *resource[T, C, U]) key() string { return r.store.Key() }

// snapshot reads the collection. It fails only when nothing can be served.
func (r *resource[T, C, U]) snapshot(ctx context.Context) (store.Snapshot[T], error) {
	snap := r.store.Get(ctx)
	if err := ctx.Err(); err != nil {
		return snap, err
	}
	if snap.Err != nil && !snap.HasData() {
		return snap, loadError(r.key(), snap.Err)
	}
	if snap.Err != nil {
		r.logger.WarnContext(ctx, "serving stale collection", "resource", r.key(), "error", snap.Err)
	}
	return snap, nil
}

// List projects the cached collection through c.
func (r *resource[T, C, U]) List(ctx context.Context, c projection.Criteria) (ListResult[T], error) {
	snap, err := r.snapshot(ctx)
	if err != nil {
		return ListResult[T]{}, err
	}
	items := projection.Apply(snap.Data, c, r.acc())
	return ListResult[T]{
		Items:     projection.Page(items, c),
		Total:     len(items),
		Stale:     snap.Err != nil,
		FetchedAt: snap.FetchedAt,
		Err:       snap.Err,
	}, nil
}

// Get finds a record in the cached collection.
func (r *resource[T, C, U]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	id = strings.TrimSpace(id)
	if id == "" {
		return zero, apperrors.ValidationField("id", "id is required")
	}
	snap, err := r.snapshot(ctx)
	if err != nil {
		return zero, err
	}
	for _, it := range snap.Data {
		if it.ResourceID() == id {
			return it, nil
		}
	}
	return zero, apperrors.NotFoundf("%s %s not found", r.key(), id)
}

// Create validates draft and creates the record. An invalid draft never reaches the backend.
func (r *resource[T, C, U]) Create(ctx context.Context, draft validation.Draft) (T, error) {
	req, err := r.codec.decodeCreate(draft)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.exec.Create(ctx, req)
}

// Update validates the fields present in patch against the current record and applies them.
func (r *resource[T, C, U]) Update(ctx context.Context, id string, patch validation.Draft) (T, error) {
	if strings.TrimSpace(id) == "" {
		var none U
		return r.exec.Update(ctx, id, none)
	}
	current, err := r.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, r.exec.Fail(ctx, mutation.OpUpdate, id, err)
	}
	req, err := r.codec.decodeUpdate(r.codec.draft(current), patch)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.exec.Update(ctx, id, req)
}

// Delete removes the record.
func (r *resource[T, C, U]) Delete(ctx context.Context, id string) error {
	return r.exec.Delete(ctx, id)
}

// ValidateField checks one value as the form does on blur. ok is false for unknown fields.
func (r *resource[T, C, U]) ValidateField(field, value string) (msg string, ok bool) {
	return r.codec.schema().ValidateField(field, value)
}

// Validate checks a whole draft without submitting it.
func (r *resource[T, C, U]) Validate(draft validation.Draft) validation.Result {
	return r.codec.schema().Validate(draft)
}

// DraftOf renders a record as a form draft.
func (r *resource[T, C, U]) DraftOf(item T) validation.Draft {
	return r.codec.draft(item)
}

// Subscribe holds the collection warm for a long-lived consumer.
func (r *resource[T, C, U]) Subscribe(ctx context.Context) *store.Subscription[T] {
	return r.store.Subscribe(ctx)
}

// SortKeys lists the supported sort keys.
func (r *resource[T, C, U]) SortKeys() []string { return r.acc().SortKeys() }
