package model

import (
	"maps"
	"strings"
	"time"
)

// TransactionType separates money received from money spent.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// TransactionTypes lists the supported transaction types.
func TransactionTypes() []string {
	return []string{string(TransactionIncome), string(TransactionExpense)}
}

// Valid reports whether the transaction type is supported.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is a single income or expense entry in the studio's books.
type Transaction struct {
	ID              string          `json:"id"               db:"id"`
	Type            TransactionType `json:"transaction_type" db:"transaction_type"`
	CategoryID      string          `json:"category_id"      db:"category_id"`
	SubcategoryID   string          `json:"subcategory_id"   db:"subcategory_id"`
	Amount          float64         `json:"amount"           db:"amount"`
	TransactionDate time.Time       `json:"transaction_date" db:"transaction_date"`
	Description     string          `json:"description"      db:"description"`
	PaymentMethod   string          `json:"payment_method"   db:"payment_method"`
	// SourceID and SourceType link the entry to whatever produced it (invoice, vendor, general).
	SourceID   string         `json:"source_id"   db:"source_id"`
	SourceType string         `json:"source_type" db:"source_type"`
	Metadata   map[string]any `json:"metadata"    db:"metadata"`
	CreatedAt  time.Time      `json:"created_at"  db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"  db:"updated_at"`
}

// ResourceID implements Resource.
func (t *Transaction) ResourceID() string { return t.ID }

// Signed returns the amount with expenses negated.
func (t *Transaction) Signed() float64 {
	if t.Type == TransactionExpense {
		return -t.Amount
	}
	return t.Amount
}

// CreateTransactionRequest carries the fields of a new transaction.
type CreateTransactionRequest struct {
	Type            TransactionType `json:"transaction_type"`
	CategoryID      string          `json:"category_id"`
	SubcategoryID   string          `json:"subcategory_id,omitempty"`
	Amount          float64         `json:"amount"`
	TransactionDate time.Time       `json:"transaction_date"`
	Description     string          `json:"description,omitempty"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	SourceID        string          `json:"source_id,omitempty"`
	SourceType      string          `json:"source_type,omitempty"`
	Metadata        map[string]any  `json:"metadata,omitempty"`
}

// Normalize trims text fields and guarantees a non-nil metadata map.
func (r *CreateTransactionRequest) Normalize() {
	r.CategoryID = strings.TrimSpace(r.CategoryID)
	r.SubcategoryID = strings.TrimSpace(r.SubcategoryID)
	r.Description = strings.TrimSpace(r.Description)
	r.PaymentMethod = strings.TrimSpace(r.PaymentMethod)
	r.SourceID = strings.TrimSpace(r.SourceID)
	r.SourceType = strings.TrimSpace(r.SourceType)
	if r.Metadata == nil {
		r.Metadata = map[string]any{}
	}
}

// UpdateTransactionRequest carries a partial update of a transaction.
type UpdateTransactionRequest struct {
	Type            *TransactionType `json:"transaction_type,omitempty"`
	CategoryID      *string          `json:"category_id,omitempty"`
	SubcategoryID   *string          `json:"subcategory_id,omitempty"`
	Amount          *float64         `json:"amount,omitempty"`
	TransactionDate *time.Time       `json:"transaction_date,omitempty"`
	Description     *string          `json:"description,omitempty"`
	PaymentMethod   *string          `json:"payment_method,omitempty"`
	SourceID        *string          `json:"source_id,omitempty"`
	SourceType      *string          `json:"source_type,omitempty"`
	Metadata        map[string]any   `json:"metadata,omitempty"`
}

// HasUpdates reports whether any field is set.
func (r *UpdateTransactionRequest) HasUpdates() bool {
	return r.Type != nil || r.CategoryID != nil || r.SubcategoryID != nil || r.Amount != nil ||
		r.TransactionDate != nil || r.Description != nil || r.PaymentMethod != nil ||
		r.SourceID != nil || r.SourceType != nil || r.Metadata != nil
}

// Apply copies the set fields onto t. Metadata replaces the previous map wholesale.
func (r *UpdateTransactionRequest) Apply(t *Transaction) {
	if r.Type != nil {
		t.Type = *r.Type
	}
	if r.CategoryID != nil {
		t.CategoryID = strings.TrimSpace(*r.CategoryID)
	}
	if r.SubcategoryID != nil {
		t.SubcategoryID = strings.TrimSpace(*r.SubcategoryID)
	}
	if r.Amount != nil {
		t.Amount = *r.Amount
	}
	if r.TransactionDate != nil {
		t.TransactionDate = *r.TransactionDate
	}
	if r.Description != nil {
		t.Description = strings.TrimSpace(*r.Description)
	}
	if r.PaymentMethod != nil {
		t.PaymentMethod = strings.TrimSpace(*r.PaymentMethod)
	}
	if r.SourceID != nil {
		t.SourceID = strings.TrimSpace(*r.SourceID)
	}
	if r.SourceType != nil {
		t.SourceType = strings.TrimSpace(*r.SourceType)
	}
	if r.Metadata != nil {
		t.Metadata = maps.Clone(r.Metadata)
	}
}
