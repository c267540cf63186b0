package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shutterdesk/studio/internal/domain/model"
	"github.com/shutterdesk/studio/internal/service"
)

// DomainHandlers serves the resource-specific routes.
type DomainHandlers struct {
	Svc    *service.Services
	Logger *slog.Logger
}

type paymentRequest struct {
	Amount json.Number `json:"amount"`
}

// RecordPayment applies a payment to an invoice.
func (h *DomainHandlers) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeNotFound(w, "invoice", id)
		return
	}
	var req paymentRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	amount, err := req.Amount.Float64()
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Message: errMsgFixBelow,
			Fields:  map[string]string{"amount": "Payment amount must be a positive number"},
		})
		return
	}
	inv, err := h.Svc.Invoices.RecordPayment(r.Context(), id, amount)
	if err != nil {
		WriteServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, inv)
}

// InvoiceStats totals the invoices matching the query filters.
func (h *DomainHandlers) InvoiceStats(w http.ResponseWriter, r *http.Request) {
	c, err := parseCriteria(r)
	if err != nil {
		writeCriteriaError(w, err)
		return
	}
	st, err := h.Svc.Invoices.Stats(r.Context(), c)
	if err != nil {
		WriteServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, st)
}

// TransactionSummary totals income and expense for the matching transactions.
func (h *DomainHandlers) TransactionSummary(w http.ResponseWriter, r *http.Request) {
	c, err := parseCriteria(r)
	if err != nil {
		writeCriteriaError(w, err)
		return
	}
	sum, err := h.Svc.Transactions.Summary(r.Context(), c)
	if err != nil {
		WriteServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, sum)
}

// GalleryCategories lists the distinct gallery categories.
func (h *DomainHandlers) GalleryCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.Svc.Gallery.Categories(r.Context())
	if err != nil {
		WriteServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string][]string{"categories": cats})
}

type assignmentResponse struct {
	Status model.AssignmentStatus `json:"status"`
	Label  string                 `json:"label"`
}

// JobAssignment classifies a job's crew staffing from the posted counts.
func (h *DomainHandlers) JobAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeNotFound(w, "job", id)
		return
	}
	var counts model.AssignmentCounts
	if !DecodeJSON(w, r, &counts) {
		return
	}
	job, err := h.Svc.Jobs.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, h.Logger, err)
		return
	}
	st := h.Svc.Jobs.AssignmentStatus(job, &counts)
	WriteJSON(w, http.StatusOK, assignmentResponse{Status: st, Label: st.Label()})
}

// Dashboard renders the overview stat cards.
func (h *DomainHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	ov, err := h.Svc.Dashboard.Overview(r.Context())
	if err != nil {
		WriteServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, ov)
}
