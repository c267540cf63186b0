package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shutterdesk/studio/internal/domain/model"
	"github.com/shutterdesk/studio/internal/projection"
	"github.com/shutterdesk/studio/internal/service"
	"github.com/shutterdesk/studio/internal/store"
	"github.com/shutterdesk/studio/internal/validation"
)

// ResourceService is the surface the generic CRUD handlers need.
type ResourceService[T model.Resource] interface {
	List(ctx context.Context, c projection.Criteria) (service.ListResult[T], error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, draft validation.Draft) (T, error)
	Update(ctx context.Context, id string, patch validation.Draft) (T, error)
	Delete(ctx context.Context, id string) error
	ValidateField(field, value string) (string, bool)
	Validate(draft validation.Draft) validation.Result
	Subscribe(ctx context.Context) *store.Subscription[T]
	SortKeys() []string
}

type listResponse[T any] struct {
	service.ListResult[T]
	Error    string   `json:"error,omitempty"`
	SortKeys []string `json:"sort_keys"`
}

type validateRequest struct {
	Field *string        `json:"field"`
	Value any            `json:"value"`
	Draft map[string]any `json:"draft"`
}

type fieldResult struct {
	Field string `json:"field"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ResourceHandlers serves the CRUD routes of one resource.
type ResourceHandlers[T model.Resource] struct {
	Name   string
	Svc    ResourceService[T]
	Logger *slog.Logger
}

func (h *ResourceHandlers[T]) List(w http.ResponseWriter, r *http.Request) {
	c, err := parseCriteria(r)
	if err != nil {
		writeCriteriaError(w, err)
		return
	}
	res, err := h.Svc.List(r.Context(), c)
	if err != nil {
		WriteServiceError(w, r, h.Logger, err)
		return
	}
	resp := listResponse[T]{ListResult: res, SortKeys: h.Svc.SortKeys()}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (h *ResourceHandlers[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeNotFound(w, h.Name, id)
		return
	}
	item, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

func (h *ResourceHandlers[T]) Create(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	item, err := h.Svc.Create(r.Context(), draft)
	if err != nil {
		WriteServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, item)
}

func (h *ResourceHandlers[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeNotFound(w, h.Name, id)
		return
	}
	patch, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	item, err := h.Svc.Update(r.Context(), id, patch)
	if err != nil {
		WriteServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

func (h *ResourceHandlers[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeNotFound(w, h.Name, id)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Validate checks a single field when "field" is given, otherwise the whole "draft".
func (h *ResourceHandlers[T]) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Field != nil {
		value := validation.DraftFromJSON(map[string]any{*req.Field: req.Value})[*req.Field]
		msg, known := h.Svc.ValidateField(*req.Field, value)
		if !known {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "unknown_field",
				Message: fmt.Sprintf("%s has no field %q", h.Name, *req.Field),
			})
			return
		}
		WriteJSON(w, http.StatusOK, fieldResult{Field: *req.Field, Valid: msg == "", Error: msg})
		return
	}
	WriteJSON(w, http.StatusOK, h.Svc.Validate(validation.DraftFromJSON(req.Draft)))
}

type streamEvent struct {
	Count     int       `json:"count"`
	FetchedAt time.Time `json:"fetched_at"`
	Stale     bool      `json:"stale"`
	Error     string    `json:"error,omitempty"`
}

// Stream keeps the collection warm while the client is connected and pushes a
// server-sent event for every committed fetch.
func (h *ResourceHandlers[T]) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, ErrorParams{
			Code: http.StatusInternalServerError, ErrCode: "internal", Message: "streaming unsupported",
		})
		return
	}

	sub := h.Svc.Subscribe(r.Context())
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	if snap := sub.Snapshot(); snap.HasData() {
		if !writeEvent(w, snap) {
			return
		}
		flusher.Flush()
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case snap, open := <-sub.Updates():
			if !open || !writeEvent(w, snap) {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent[T any](w http.ResponseWriter, snap store.Snapshot[T]) bool {
	ev := streamEvent{Count: len(snap.Data), FetchedAt: snap.FetchedAt, Stale: snap.Stale}
	if snap.Err != nil {
		ev.Error = snap.Err.Error()
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return false
	}
	_, err = fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", b)
	return err == nil
}
