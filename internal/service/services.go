package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shutterdesk/studio/internal/core"
	"github.com/shutterdesk/studio/internal/domain/model"
	"github.com/shutterdesk/studio/internal/mutation"
	"github.com/shutterdesk/studio/internal/observability/notify"
	"github.com/shutterdesk/studio/internal/observability/statsd"
	"github.com/shutterdesk/studio/internal/projection"
	"github.com/shutterdesk/studio/internal/store"
)

// Options groups the dependencies shared by the resource services.
type Options struct {
	Registry *store.Registry
	Repos    core.Repositories
	// Sink receives every mutation outcome.
	Sink    notify.Sink
	Metrics statsd.Sink
	Logger  *slog.Logger
	Now     func() time.Time
}

// Services bundles one service per resource.
type Services struct {
	Jobs         *JobService
	Invoices     *InvoiceService
	Transactions *TransactionService
	Gallery      *GalleryService
	Dashboard    *DashboardService
}

// New registers a store per resource and builds the services over them.
func New(opts Options) (*Services, error) {
	if opts.Registry == nil {
		return nil, errors.New("service: store registry is required")
	}
	r := opts.Repos
	if r.Jobs == nil || r.Invoices == nil || r.Transactions == nil || r.Gallery == nil {
		return nil, errors.New("service: every repository is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	jobs, err := newResource[*model.Job, *model.CreateJobRequest, *model.UpdateJobRequest](
		opts, model.KeyJobs, r.Jobs, mutation.JobMessages, jobCodec, projection.JobAccessors)
	if err != nil {
		return nil, err
	}
	invoices, err := newResource[*model.Invoice, *model.CreateInvoiceRequest, *model.UpdateInvoiceRequest](
		opts, model.KeyInvoices, r.Invoices, mutation.InvoiceMessages, invoiceCodec,
		func() projection.Accessors[*model.Invoice] { return projection.InvoiceAccessors(opts.Now) })
	if err != nil {
		return nil, err
	}
	transactions, err := newResource[*model.Transaction, *model.CreateTransactionRequest, *model.UpdateTransactionRequest](
		opts, model.KeyTransactions, r.Transactions, mutation.TransactionMessages,
		transactionCodec, projection.TransactionAccessors)
	if err != nil {
		return nil, err
	}
	gallery, err := newResource[*model.GalleryImage, *model.CreateGalleryImageRequest, *model.UpdateGalleryImageRequest](
		opts, model.KeyGallery, r.Gallery, mutation.GalleryMessages, galleryCodec,
		projection.GalleryAccessors)
	if err != nil {
		return nil, err
	}

	s := &Services{
		Jobs:         &JobService{jobs},
		Invoices:     &InvoiceService{resource: invoices, now: opts.Now},
		Transactions: &TransactionService{transactions},
		Gallery:      &GalleryService{gallery},
	}
	s.Dashboard = NewDashboardService(DashboardOptions{
		Jobs:         jobs.store,
		Invoices:     invoices.store,
		Transactions: transactions.store,
		Gallery:      gallery.store,
		Now:          opts.Now,
	})
	return s, nil
}

type repository[T model.Resource, C any, U any] interface {
	mutation.Backend[T, C, U]
	List(ctx context.Context) ([]T, error)
}

func newResource[T model.Resource, C any, U any](
	opts Options,
	key model.ResourceKey,
	repo repository[T, C, U],
	messages mutation.Messages,
	c codec[T, C, U],
	acc func() projection.Accessors[T],
) (*resource[T, C, U], error) {
	st, err := store.Register(opts.Registry, key.String(), store.Fetcher[T](repo.List))
	if err != nil {
		return nil, fmt.Errorf("register %s store: %w", key, err)
	}
	exec := mutation.New[T, C, U](repo, mutation.Options{
		Resource:    key.String(),
		Messages:    messages,
		Invalidator: st,
		Sink:        opts.Sink,
		Logger:      opts.Logger,
		Metrics:     opts.Metrics,
		Now:         opts.Now,
	})
	return &resource[T, C, U]{
		store:  st,
		exec:   exec,
		codec:  c,
		acc:    acc,
		logger: opts.Logger.With("resource", key.String()),
	}, nil
}
