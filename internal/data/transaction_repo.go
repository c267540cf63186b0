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

var transactionsTable = database.Table{
	Name:  "transactions",
	IDCol: "id",
	Columns: []string{
		"id", "transaction_type", "category_id", "subcategory_id", "amount", "transaction_date",
		"description", "payment_method", "source_id", "source_type", "metadata", "created_at", "updated_at",
	},
	Casts: map[string]string{"id": "text", "amount": "float8"},
}

// TransactionRepo provides database operations for financial transactions.
type TransactionRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

var _ core.TransactionRepository = (*TransactionRepo)(nil)

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(db *sql.DB) *TransactionRepo {
	return &TransactionRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// List returns every transaction, newest first.
func (r *TransactionRepo) List(ctx context.Context) ([]*model.Transaction, error) {
	out, err := pgxutil.CollectAll[model.Transaction](ctx, r.DB,
		transactionsTable.SelectAll("transaction_date desc", "created_at desc"))
	if err != nil {
		return nil, mapReadErr(err, ErrTransactionNotFound, "failed to list transactions")
	}
	return out, nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*model.Transaction, error) {
	tx, err := pgxutil.CollectOne[model.Transaction](ctx, r.DB, transactionsTable.SelectByID(), id)
	if err != nil {
		return nil, mapReadErr(err, ErrTransactionNotFound, "failed to get transaction")
	}
	return tx, nil
}

// Create inserts a new transaction.
func (r *TransactionRepo) Create(ctx context.Context, req *model.CreateTransactionRequest) (*model.Transaction, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	req.Normalize()

	now := r.timeProvider.Now().UTC()
	q := transactionsTable.Insert(
		"transaction_type", "category_id", "subcategory_id", "amount", "transaction_date",
		"description", "payment_method", "source_id", "source_type", "metadata", "created_at", "updated_at",
	)
	tx, err := pgxutil.CollectOne[model.Transaction](ctx, r.DB, q,
		string(req.Type), req.CategoryID, req.SubcategoryID, req.Amount, req.TransactionDate,
		req.Description, req.PaymentMethod, req.SourceID, req.SourceType, req.Metadata, now, now,
	)
	if err != nil {
		return nil, mapReadErr(err, ErrTransactionNotFound, "failed to create transaction")
	}
	return tx, nil
}

// Update applies a partial update. Metadata, when present, replaces the stored object.
func (r *TransactionRepo) Update(
	ctx context.Context,
	id string,
	req *model.UpdateTransactionRequest,
) (*model.Transaction, error) {
	if req == nil || !req.HasUpdates() {
		return r.GetByID(ctx, id)
	}

	set := &database.SetClause{}
	if req.Type != nil {
		set.Set("transaction_type", string(*req.Type))
	}
	for col, v := range map[string]*string{
		"category_id":    req.CategoryID,
		"subcategory_id": req.SubcategoryID,
		"description":    req.Description,
		"payment_method": req.PaymentMethod,
		"source_id":      req.SourceID,
		"source_type":    req.SourceType,
	} {
		if v != nil {
			set.Set(col, strings.TrimSpace(*v))
		}
	}
	if req.Amount != nil {
		set.Set("amount", *req.Amount)
	}
	if req.TransactionDate != nil {
		set.Set("transaction_date", *req.TransactionDate)
	}
	if req.Metadata != nil {
		set.Set("metadata", req.Metadata)
	}

	q, args := transactionsTable.Update(set, id)
	tx, err := pgxutil.CollectOne[model.Transaction](ctx, r.DB, q, args...)
	if err != nil {
		return nil, mapReadErr(err, ErrTransactionNotFound, "failed to update transaction")
	}
	return tx, nil
}

// Delete deletes a transaction by ID.
func (r *TransactionRepo) Delete(ctx context.Context, id string) (bool, error) {
	n, err := pgxutil.Exec(ctx, r.DB, transactionsTable.Delete(), id)
	if err != nil {
		return false, mapReadErr(err, ErrTransactionNotFound, "failed to delete transaction")
	}
	return n > 0, nil
}
