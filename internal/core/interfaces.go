package core

import (
	"context"

	"github.com/shutterdesk/studio/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and the backend adapters.
// Service implementations should depend on these interfaces, not concrete implementations.
//
// List returns the whole collection in the backend's canonical order; filtering and sorting
// happen in the view projection over the cached collection. Delete reports false when the id
// did not exist.

// JobRepository defines the interface for job posting data operations.
type JobRepository interface {
	List(ctx context.Context) ([]*model.Job, error)
	GetByID(ctx context.Context, id string) (*model.Job, error)
	Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error)
	Update(ctx context.Context, id string, req *model.UpdateJobRequest) (*model.Job, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// InvoiceRepository defines the interface for invoice data operations.
type InvoiceRepository interface {
	List(ctx context.Context) ([]*model.Invoice, error)
	GetByID(ctx context.Context, id string) (*model.Invoice, error)
	Create(ctx context.Context, req *model.CreateInvoiceRequest) (*model.Invoice, error)
	Update(ctx context.Context, id string, req *model.UpdateInvoiceRequest) (*model.Invoice, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// TransactionRepository defines the interface for financial transaction data operations.
type TransactionRepository interface {
	List(ctx context.Context) ([]*model.Transaction, error)
	GetByID(ctx context.Context, id string) (*model.Transaction, error)
	Create(ctx context.Context, req *model.CreateTransactionRequest) (*model.Transaction, error)
	Update(ctx context.Context, id string, req *model.UpdateTransactionRequest) (*model.Transaction, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// GalleryImageRepository defines the interface for portfolio gallery data operations.
type GalleryImageRepository interface {
	List(ctx context.Context) ([]*model.GalleryImage, error)
	GetByID(ctx context.Context, id string) (*model.GalleryImage, error)
	Create(ctx context.Context, req *model.CreateGalleryImageRequest) (*model.GalleryImage, error)
	Update(ctx context.Context, id string, req *model.UpdateGalleryImageRequest) (*model.GalleryImage, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Repositories bundles the backend ports wired at startup.
type Repositories struct {
	Jobs         JobRepository
	Invoices     InvoiceRepository
	Transactions TransactionRepository
	Gallery      GalleryImageRepository
	// Health reports backend reachability; nil means always healthy.
	Health func(ctx context.Context) error
}
