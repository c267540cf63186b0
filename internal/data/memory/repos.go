package memory

import (
	"cmp"
	"context"
	"strings"
	"time"

	"github.com/shutterdesk/studio/internal/core"
	"github.com/shutterdesk/studio/internal/data"
	"github.com/shutterdesk/studio/internal/domain/model"
	apperrors "github.com/shutterdesk/studio/internal/errors"
)

// JobRepo is an in-memory core.JobRepository.
type JobRepo struct{ t *table[model.Job] }

// InvoiceRepo is an in-memory core.InvoiceRepository. Invoice numbers are unique.
type InvoiceRepo struct{ t *table[model.Invoice] }

// TransactionRepo is an in-memory core.TransactionRepository.
type TransactionRepo struct{ t *table[model.Transaction] }

// GalleryImageRepo is an in-memory core.GalleryImageRepository.
type GalleryImageRepo struct{ t *table[model.GalleryImage] }

var (
	_ core.JobRepository          = (*JobRepo)(nil)
	_ core.InvoiceRepository      = (*InvoiceRepo)(nil)
	_ core.TransactionRepository  = (*TransactionRepo)(nil)
	_ core.GalleryImageRepository = (*GalleryImageRepo)(nil)
)

func NewJobRepo() *JobRepo {
	return &JobRepo{t: newTable("Job", data.ErrJobNotFound, cloneJob, func(a, b *model.Job) int {
		return cmp.Or(a.EventDate.Compare(b.EventDate), a.CreatedAt.Compare(b.CreatedAt))
	})}
}

func NewInvoiceRepo() *InvoiceRepo {
	return &InvoiceRepo{t: newTable("Invoice", data.ErrInvoiceNotFound, cloneInvoice, func(a, b *model.Invoice) int {
		return cmp.Or(b.IssueDate.Compare(a.IssueDate), cmp.Compare(a.Number, b.Number))
	})}
}

func NewTransactionRepo() *TransactionRepo {
	return &TransactionRepo{t: newTable("Transaction", data.ErrTransactionNotFound, cloneTransaction,
		func(a, b *model.Transaction) int {
			return cmp.Or(b.TransactionDate.Compare(a.TransactionDate), b.CreatedAt.Compare(a.CreatedAt))
		})}
}

func NewGalleryImageRepo() *GalleryImageRepo {
	return &GalleryImageRepo{t: newTable("Gallery image", data.ErrGalleryImageNotFound, cloneGalleryImage,
		func(a, b *model.GalleryImage) int { return b.CreatedAt.Compare(a.CreatedAt) })}
}

// NewRepositories wires a full in-memory backend.
func NewRepositories() core.Repositories {
	return core.Repositories{
		Jobs:         NewJobRepo(),
		Invoices:     NewInvoiceRepo(),
		Transactions: NewTransactionRepo(),
		Gallery:      NewGalleryImageRepo(),
		Health:       func(context.Context) error { return nil },
	}
}

// SetClock overrides the timestamp source; used by tests.
func (r *JobRepo) SetClock(now func() time.Time) { r.t.now = now }

func (r *JobRepo) List(ctx context.Context) ([]*model.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t.list(), nil
}

func (r *JobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t.get(id)
}

func (r *JobRepo) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, data.ErrNilRequest
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req.Normalize()
	return r.t.insert(func(id string, now time.Time) *model.Job {
		return &model.Job{
			ID:                  id,
			Title:               req.Title,
			Description:         req.Description,
			Location:            req.Location,
			EventDate:           req.EventDate,
			Budget:              req.Budget,
			Status:              req.Status,
			Category:            req.Category,
			PhotographersNeeded: req.PhotographersNeeded,
			VideographersNeeded: req.VideographersNeeded,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
	}, nil)
}

func (r *JobRepo) Update(ctx context.Context, id string, req *model.UpdateJobRequest) (*model.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req == nil || !req.HasUpdates() {
		return r.t.get(id)
	}
	return r.t.update(id, func(j *model.Job, now time.Time) {
		req.Apply(j)
		j.UpdatedAt = now
	}, nil)
}

func (r *JobRepo) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return r.t.remove(id), nil
}

func (r *InvoiceRepo) List(ctx context.Context) ([]*model.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t.list(), nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*model.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t.get(id)
}

func (r *InvoiceRepo) Create(ctx context.Context, req *model.CreateInvoiceRequest) (*model.Invoice, error) {
	if req == nil {
		return nil, data.ErrNilRequest
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req.Normalize()
	check := func(existing *model.Invoice) error { return numberTaken(existing, req.Number) }
	return r.t.insert(func(id string, now time.Time) *model.Invoice {
		return &model.Invoice{
			ID:          id,
			Number:      req.Number,
			ClientName:  req.ClientName,
			ClientEmail: req.ClientEmail,
			Amount:      req.Amount,
			AmountPaid:  req.AmountPaid,
			Status:      req.Status,
			IssueDate:   req.IssueDate,
			DueDate:     req.DueDate,
			Notes:       req.Notes,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}, check)
}

func (r *InvoiceRepo) Update(ctx context.Context, id string, req *model.UpdateInvoiceRequest) (*model.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req == nil || !req.HasUpdates() {
		return r.t.get(id)
	}
	return r.t.update(id, func(inv *model.Invoice, now time.Time) {
		req.Apply(inv)
		inv.UpdatedAt = now
	}, func(existing, updated *model.Invoice) error {
		return numberTaken(existing, updated.Number)
	})
}

func (r *InvoiceRepo) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return r.t.remove(id), nil
}

func numberTaken(existing *model.Invoice, number string) error {
	if strings.EqualFold(existing.Number, number) {
		return apperrors.Conflict("invoice number already exists")
	}
	return nil
}

func (r *TransactionRepo) List(ctx context.Context) ([]*model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t.list(), nil
}

func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t.get(id)
}

func (r *TransactionRepo) Create(ctx context.Context, req *model.CreateTransactionRequest) (*model.Transaction, error) {
	if req == nil {
		return nil, data.ErrNilRequest
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req.Normalize()
	return r.t.insert(func(id string, now time.Time) *model.Transaction {
		return &model.Transaction{
			ID:              id,
			Type:            req.Type,
			CategoryID:      req.CategoryID,
			SubcategoryID:   req.SubcategoryID,
			Amount:          req.Amount,
			TransactionDate: req.TransactionDate,
			Description:     req.Description,
			PaymentMethod:   req.PaymentMethod,
			SourceID:        req.SourceID,
			SourceType:      req.SourceType,
			Metadata:        cloneMap(req.Metadata),
			CreatedAt:       now,
			UpdatedAt:       now,
		}
	}, nil)
}

func (r *TransactionRepo) Update(
	ctx context.Context,
	id string,
	req *model.UpdateTransactionRequest,
) (*model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req == nil || !req.HasUpdates() {
		return r.t.get(id)
	}
	return r.t.update(id, func(tx *model.Transaction, now time.Time) {
		req.Apply(tx)
		tx.Metadata = cloneMap(tx.Metadata)
		tx.UpdatedAt = now
	}, nil)
}

func (r *TransactionRepo) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return r.t.remove(id), nil
}

func (r *GalleryImageRepo) List(ctx context.Context) ([]*model.GalleryImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t.list(), nil
}

func (r *GalleryImageRepo) GetByID(ctx context.Context, id string) (*model.GalleryImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t.get(id)
}

func (r *GalleryImageRepo) Create(ctx context.Context, req *model.CreateGalleryImageRequest) (*model.GalleryImage, error) {
	if req == nil {
		return nil, data.ErrNilRequest
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req.Normalize()
	return r.t.insert(func(id string, now time.Time) *model.GalleryImage {
		return &model.GalleryImage{
			ID:        id,
			URL:       req.URL,
			Title:     req.Title,
			Category:  req.Category,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}, nil)
}

func (r *GalleryImageRepo) Update(
	ctx context.Context,
	id string,
	req *model.UpdateGalleryImageRequest,
) (*model.GalleryImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req == nil || !req.HasUpdates() {
		return r.t.get(id)
	}
	return r.t.update(id, func(g *model.GalleryImage, now time.Time) {
		req.Apply(g)
		g.UpdatedAt = now
	}, nil)
}

func (r *GalleryImageRepo) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return r.t.remove(id), nil
}
