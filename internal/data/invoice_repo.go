package data

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shutterdesk/studio/internal/core"
	"github.com/shutterdesk/studio/internal/data/database"
	"github.com/shutterdesk/studio/internal/data/pgxutil"
	"github.com/shutterdesk/studio/internal/domain/model"
)

var invoicesTable = database.Table{
	Name:  "invoices",
	IDCol: "id",
	Columns: []string{
		"id", "number", "client_name", "client_email", "amount", "amount_paid", "status",
		"issue_date", "due_date", "notes", "created_at", "updated_at",
	},
	Casts: map[string]string{"id": "text", "amount": "float8", "amount_paid": "float8"},
}

// InvoiceRepo provides database operations for invoices.
type InvoiceRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

var _ core.InvoiceRepository = (*InvoiceRepo)(nil)

// NewInvoiceRepo creates a new InvoiceRepo.
func NewInvoiceRepo(db *sql.DB) *InvoiceRepo {
	return &InvoiceRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// List returns every invoice, most recently issued first.
func (r *InvoiceRepo) List(ctx context.Context) ([]*model.Invoice, error) {
	out, err := pgxutil.CollectAll[model.Invoice](ctx, r.DB, invoicesTable.SelectAll("issue_date desc", "number"))
	if err != nil {
		return nil, mapReadErr(err, ErrInvoiceNotFound, "failed to list invoices")
	}
	return out, nil
}

// GetByID retrieves an invoice by ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*model.Invoice, error) {
	inv, err := pgxutil.CollectOne[model.Invoice](ctx, r.DB, invoicesTable.SelectByID(), id)
	if err != nil {
		return nil, mapReadErr(err, ErrInvoiceNotFound, "failed to get invoice")
	}
	return inv, nil
}

// Create inserts a new invoice. Duplicate numbers surface as conflict errors.
func (r *InvoiceRepo) Create(ctx context.Context, req *model.CreateInvoiceRequest) (*model.Invoice, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	req.Normalize()

	now := r.timeProvider.Now().UTC()
	q := invoicesTable.Insert(
		"number", "client_name", "client_email", "amount", "amount_paid", "status",
		"issue_date", "due_date", "notes", "created_at", "updated_at",
	)
	inv, err := pgxutil.CollectOne[model.Invoice](ctx, r.DB, q,
		req.Number, req.ClientName, req.ClientEmail, req.Amount, req.AmountPaid, string(req.Status),
		req.IssueDate, req.DueDate, req.Notes, now, now,
	)
	if err != nil {
		return nil, mapReadErr(err, ErrInvoiceNotFound, "failed to create invoice")
	}
	return inv, nil
}

// Update applies a partial update. An empty request returns the current row.
func (r *InvoiceRepo) Update(ctx context.Context, id string, req *model.UpdateInvoiceRequest) (*model.Invoice, error) {
	if req == nil || !req.HasUpdates() {
		return r.GetByID(ctx, id)
	}

	set := &database.SetClause{}
	if req.Number != nil {
		set.Set("number", strings.TrimSpace(*req.Number))
	}
	if req.ClientName != nil {
		set.Set("client_name", strings.TrimSpace(*req.ClientName))
	}
	if req.ClientEmail != nil {
		set.Set("client_email", strings.TrimSpace(*req.ClientEmail))
	}
	if req.Amount != nil {
		set.Set("amount", *req.Amount)
	}
	if req.AmountPaid != nil {
		set.Set("amount_paid", *req.AmountPaid)
	}
	if req.Status != nil {
		set.Set("status", string(*req.Status))
	}
	if req.IssueDate != nil {
		set.Set("issue_date", *req.IssueDate)
	}
	if req.DueDate != nil {
		set.Set("due_date", *req.DueDate)
	}
	if req.Notes != nil {
		set.Set("notes", strings.TrimSpace(*req.Notes))
	}

	q, args := invoicesTable.Update(set, id)
	inv, err := pgxutil.CollectOne[model.Invoice](ctx, r.DB, q, args...)
	if err != nil {
		return nil, mapReadErr(err, ErrInvoiceNotFound, "failed to update invoice")
	}
	return inv, nil
}

// Delete deletes an invoice by ID.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) (bool, error) {
	n, err := pgxutil.Exec(ctx, r.DB, invoicesTable.Delete(), id)
	if err != nil {
		return false, mapReadErr(err, ErrInvoiceNotFound, "failed to delete invoice")
	}
	return n > 0, nil
}
