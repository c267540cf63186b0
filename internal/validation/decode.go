package validation

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shutterdesk/studio/internal/domain/model"
)

// The Decode* functions validate a draft and coerce it into a typed request. The *Update
// variants only consider fields present in the patch.

// DecodeJob validates d and returns the create request.
func DecodeJob(d Draft) (*model.CreateJobRequest, error) {
	if err := JobSchema().Validate(d).Err(model.KeyJobs.String()); err != nil {
		return nil, err
	}
	status, _ := model.ParseJobStatus(d["status"])
	return &model.CreateJobRequest{
		Title:               strings.TrimSpace(d["title"]),
		Description:         strings.TrimSpace(d["description"]),
		Location:            strings.TrimSpace(d["location"]),
		EventDate:           date(d["event_date"]),
		Budget:              number(d["budget"]),
		Status:              status,
		Category:            strings.TrimSpace(d["category"]),
		PhotographersNeeded: integer(d["photographers_needed"]),
		VideographersNeeded: integer(d["videographers_needed"]),
	}, nil
}

// DecodeJobUpdate validates patch against current and returns the partial update.
func DecodeJobUpdate(current, patch Draft) (*model.UpdateJobRequest, error) {
	if err := JobSchema().ValidateUpdate(current, patch).Err(model.KeyJobs.String()); err != nil {
		return nil, err
	}
	req := &model.UpdateJobRequest{
		Title:               text(patch, "title"),
		Description:         text(patch, "description"),
		Location:            text(patch, "location"),
		EventDate:           datePtr(patch, "event_date"),
		Budget:              numberPtr(patch, "budget"),
		Category:            text(patch, "category"),
		PhotographersNeeded: intPtr(patch, "photographers_needed"),
		VideographersNeeded: intPtr(patch, "videographers_needed"),
	}
	if v, ok := patch["status"]; ok {
		s, _ := model.ParseJobStatus(v)
		req.Status = &s
	}
	return req, nil
}

// JobDraft renders a job as a form draft, as when opening the edit dialog.
func JobDraft(j *model.Job) Draft {
	return Draft{
		"title":                j.Title,
		"description":          j.Description,
		"location":             j.Location,
		"event_date":           model.FormatDate(j.EventDate),
		"budget":               formatNumber(j.Budget),
		"status":               string(j.Status),
		"category":             j.Category,
		"photographers_needed": strconv.Itoa(j.PhotographersNeeded),
		"videographers_needed": strconv.Itoa(j.VideographersNeeded),
	}
}

// DecodeInvoice validates d and returns the create request.
func DecodeInvoice(d Draft) (*model.CreateInvoiceRequest, error) {
	if err := InvoiceSchema().Validate(d).Err(model.KeyInvoices.String()); err != nil {
		return nil, err
	}
	status, _ := model.ParseInvoiceStatus(d["status"])
	return &model.CreateInvoiceRequest{
		Number:      strings.TrimSpace(d["number"]),
		ClientName:  strings.TrimSpace(d["client_name"]),
		ClientEmail: strings.TrimSpace(d["client_email"]),
		Amount:      number(d["amount"]),
		AmountPaid:  number(d["amount_paid"]),
		Status:      status,
		IssueDate:   date(d["issue_date"]),
		DueDate:     date(d["due_date"]),
		Notes:       strings.TrimSpace(d["notes"]),
	}, nil
}

// DecodeInvoiceUpdate validates patch against current and returns the partial update.
func DecodeInvoiceUpdate(current, patch Draft) (*model.UpdateInvoiceRequest, error) {
	if err := InvoiceSchema().ValidateUpdate(current, patch).Err(model.KeyInvoices.String()); err != nil {
		return nil, err
	}
	req := &model.UpdateInvoiceRequest{
		Number:      text(patch, "number"),
		ClientName:  text(patch, "client_name"),
		ClientEmail: text(patch, "client_email"),
		Amount:      numberPtr(patch, "amount"),
		AmountPaid:  numberPtr(patch, "amount_paid"),
		IssueDate:   datePtr(patch, "issue_date"),
		DueDate:     datePtr(patch, "due_date"),
		Notes:       text(patch, "notes"),
	}
	if v, ok := patch["status"]; ok {
		s, _ := model.ParseInvoiceStatus(v)
		req.Status = &s
	}
	return req, nil
}

// InvoiceDraft renders an invoice as a form draft.
func InvoiceDraft(inv *model.Invoice) Draft {
	return Draft{
		"number":       inv.Number,
		"client_name":  inv.ClientName,
		"client_email": inv.ClientEmail,
		"amount":       formatNumber(inv.Amount),
		"amount_paid":  formatNumber(inv.AmountPaid),
		"status":       string(inv.Status),
		"issue_date":   model.FormatDate(inv.IssueDate),
		"due_date":     model.FormatDate(inv.DueDate),
		"notes":        inv.Notes,
	}
}

// DecodeTransaction validates d and returns the create request.
func DecodeTransaction(d Draft) (*model.CreateTransactionRequest, error) {
	if err := TransactionSchema().Validate(d).Err(model.KeyTransactions.String()); err != nil {
		return nil, err
	}
	return &model.CreateTransactionRequest{
		Type:            model.TransactionType(canonical(d["transaction_type"], model.TransactionTypes())),
		CategoryID:      strings.TrimSpace(d["category_id"]),
		SubcategoryID:   strings.TrimSpace(d["subcategory_id"]),
		Amount:          number(d["amount"]),
		TransactionDate: date(d["transaction_date"]),
		Description:     strings.TrimSpace(d["description"]),
		PaymentMethod:   strings.TrimSpace(d["payment_method"]),
		SourceID:        strings.TrimSpace(d["source_id"]),
		SourceType:      strings.TrimSpace(d["source_type"]),
		Metadata:        object(d["metadata"]),
	}, nil
}

// DecodeTransactionUpdate validates patch and returns the partial update.
func DecodeTransactionUpdate(current, patch Draft) (*model.UpdateTransactionRequest, error) {
	if err := TransactionSchema().ValidateUpdate(current, patch).Err(model.KeyTransactions.String()); err != nil {
		return nil, err
	}
	req := &model.UpdateTransactionRequest{
		CategoryID:      text(patch, "category_id"),
		SubcategoryID:   text(patch, "subcategory_id"),
		Amount:          numberPtr(patch, "amount"),
		TransactionDate: datePtr(patch, "transaction_date"),
		Description:     text(patch, "description"),
		PaymentMethod:   text(patch, "payment_method"),
		SourceID:        text(patch, "source_id"),
		SourceType:      text(patch, "source_type"),
	}
	if v, ok := patch["transaction_type"]; ok {
		t := model.TransactionType(canonical(v, model.TransactionTypes()))
		req.Type = &t
	}
	if v, ok := patch["metadata"]; ok {
		req.Metadata = object(v)
	}
	return req, nil
}

// TransactionDraft renders a transaction as a form draft.
func TransactionDraft(t *model.Transaction) Draft {
	meta := "{}"
	if len(t.Metadata) > 0 {
		if b, err := json.Marshal(t.Metadata); err == nil {
			meta = string(b)
		}
	}
	return Draft{
		"transaction_type": string(t.Type),
		"category_id":      t.CategoryID,
		"subcategory_id":   t.SubcategoryID,
		"amount":           formatNumber(t.Amount),
		"transaction_date": model.FormatDate(t.TransactionDate),
		"description":      t.Description,
		"payment_method":   t.PaymentMethod,
		"source_id":        t.SourceID,
		"source_type":      t.SourceType,
		"metadata":         meta,
	}
}

// DecodeGalleryImage validates d and returns the create request.
func DecodeGalleryImage(d Draft) (*model.CreateGalleryImageRequest, error) {
	if err := GalleryImageSchema().Validate(d).Err(model.KeyGallery.String()); err != nil {
		return nil, err
	}
	return &model.CreateGalleryImageRequest{
		URL:      strings.TrimSpace(d["url"]),
		Title:    strings.TrimSpace(d["title"]),
		Category: canonical(d["category"], model.GalleryCategories()),
	}, nil
}

// DecodeGalleryImageUpdate validates patch and returns the partial update.
func DecodeGalleryImageUpdate(current, patch Draft) (*model.UpdateGalleryImageRequest, error) {
	if err := GalleryImageSchema().ValidateUpdate(current, patch).Err(model.KeyGallery.String()); err != nil {
		return nil, err
	}
	req := &model.UpdateGalleryImageRequest{
		URL:   text(patch, "url"),
		Title: text(patch, "title"),
	}
	if v, ok := patch["category"]; ok {
		c := canonical(v, model.GalleryCategories())
		if c == "" {
			c = model.DefaultGalleryCategory
		}
		req.Category = &c
	}
	return req, nil
}

// GalleryImageDraft renders a gallery image as a form draft.
func GalleryImageDraft(g *model.GalleryImage) Draft {
	return Draft{"url": g.URL, "title": g.Title, "category": g.Category}
}

func date(v string) time.Time {
	t, _ := model.ParseDate(v)
	return t
}

func number(v string) float64 {
	f, _ := parseNumber(v)
	return f
}

func integer(v string) int {
	i, _ := strconv.Atoi(strings.TrimSpace(v))
	return i
}

func object(v string) map[string]any {
	m := map[string]any{}
	if strings.TrimSpace(v) != "" {
		_ = json.Unmarshal([]byte(v), &m)
	}
	return m
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func text(d Draft, key string) *string {
	v, ok := d[key]
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	return &v
}

func numberPtr(d Draft, key string) *float64 {
	v, ok := d[key]
	if !ok {
		return nil
	}
	f := number(v)
	return &f
}

func intPtr(d Draft, key string) *int {
	v, ok := d[key]
	if !ok {
		return nil
	}
	i := integer(v)
	return &i
}

func datePtr(d Draft, key string) *time.Time {
	v, ok := d[key]
	if !ok {
		return nil
	}
	t := date(v)
	return &t
}
