package model

import (
	"strings"
	"time"
)

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// InvoiceStatuses lists the supported invoice statuses.
func InvoiceStatuses() []string {
	return []string{
		string(InvoiceStatusDraft),
		string(InvoiceStatusPending),
		string(InvoiceStatusPaid),
		string(InvoiceStatusOverdue),
	}
}

// Valid reports whether the invoice status is supported.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	default:
		return false
	}
}

// ParseInvoiceStatus normalizes a status string, defaulting to draft when empty.
func ParseInvoiceStatus(v string) (InvoiceStatus, bool) {
	s := InvoiceStatus(normalizeEnum(v))
	if s == "" {
		return InvoiceStatusDraft, true
	}
	return s, s.Valid()
}

// Invoice is a bill issued to a client.
type Invoice struct {
	ID          string        `json:"id"           db:"id"`
	Number      string        `json:"number"       db:"number"`
	ClientName  string        `json:"client_name"  db:"client_name"`
	ClientEmail string        `json:"client_email" db:"client_email"`
	Amount      float64       `json:"amount"       db:"amount"`
	AmountPaid  float64       `json:"amount_paid"  db:"amount_paid"`
	Status      InvoiceStatus `json:"status"       db:"status"`
	IssueDate   time.Time     `json:"issue_date"   db:"issue_date"`
	DueDate     time.Time     `json:"due_date"     db:"due_date"`
	Notes       string        `json:"notes"        db:"notes"`
	CreatedAt   time.Time     `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"   db:"updated_at"`
}

// ResourceID implements Resource.
func (i *Invoice) ResourceID() string { return i.ID }

// Outstanding returns the unpaid balance, never negative.
func (i *Invoice) Outstanding() float64 {
	return max(i.Amount-i.AmountPaid, 0)
}

// IsOverdue reports whether the invoice is unpaid past its due date, or flagged overdue.
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.Status == InvoiceStatusOverdue {
		return true
	}
	if i.Status == InvoiceStatusPaid || i.Status == InvoiceStatusDraft {
		return false
	}
	return i.Outstanding() > 0 && now.After(i.DueDate)
}

// CreateInvoiceRequest carries the fields of a new invoice.
type CreateInvoiceRequest struct {
	Number      string        `json:"number"`
	ClientName  string        `json:"client_name"`
	ClientEmail string        `json:"client_email,omitempty"`
	Amount      float64       `json:"amount"`
	AmountPaid  float64       `json:"amount_paid,omitempty"`
	Status      InvoiceStatus `json:"status,omitempty"`
	IssueDate   time.Time     `json:"issue_date"`
	DueDate     time.Time     `json:"due_date"`
	Notes       string        `json:"notes,omitempty"`
}

// Normalize trims text fields and applies the default status.
func (r *CreateInvoiceRequest) Normalize() {
	r.Number = strings.TrimSpace(r.Number)
	r.ClientName = strings.TrimSpace(r.ClientName)
	r.ClientEmail = strings.TrimSpace(r.ClientEmail)
	r.Notes = strings.TrimSpace(r.Notes)
	if r.Status == "" {
		r.Status = InvoiceStatusDraft
	}
}

// UpdateInvoiceRequest carries a partial update of an invoice.
type UpdateInvoiceRequest struct {
	Number      *string        `json:"number,omitempty"`
	ClientName  *string        `json:"client_name,omitempty"`
	ClientEmail *string        `json:"client_email,omitempty"`
	Amount      *float64       `json:"amount,omitempty"`
	AmountPaid  *float64       `json:"amount_paid,omitempty"`
	Status      *InvoiceStatus `json:"status,omitempty"`
	IssueDate   *time.Time     `json:"issue_date,omitempty"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
}

// HasUpdates reports whether any field is set.
func (r *UpdateInvoiceRequest) HasUpdates() bool {
	return r.Number != nil || r.ClientName != nil || r.ClientEmail != nil || r.Amount != nil ||
		r.AmountPaid != nil || r.Status != nil || r.IssueDate != nil || r.DueDate != nil || r.Notes != nil
}

// Apply copies the set fields onto inv.
func (r *UpdateInvoiceRequest) Apply(inv *Invoice) {
	if r.Number != nil {
		inv.Number = strings.TrimSpace(*r.Number)
	}
	if r.ClientName != nil {
		inv.ClientName = strings.TrimSpace(*r.ClientName)
	}
	if r.ClientEmail != nil {
		inv.ClientEmail = strings.TrimSpace(*r.ClientEmail)
	}
	if r.Amount != nil {
		inv.Amount = *r.Amount
	}
	if r.AmountPaid != nil {
		inv.AmountPaid = *r.AmountPaid
	}
	if r.Status != nil {
		inv.Status = *r.Status
	}
	if r.IssueDate != nil {
		inv.IssueDate = *r.IssueDate
	}
	if r.DueDate != nil {
		inv.DueDate = *r.DueDate
	}
	if r.Notes != nil {
		inv.Notes = strings.TrimSpace(*r.Notes)
	}
}
