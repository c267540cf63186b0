// Package mocks provides gomock implementations of the backend ports used by the store,
// mutation and service tests.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	repo := mocks.NewMockJobRepository(ctrl)
//	repo.EXPECT().List(gomock.Any()).Return(jobs, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=job_repository_mock.go github.com/shutterdesk/studio/internal/core JobRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=invoice_repository_mock.go github.com/shutterdesk/studio/internal/core InvoiceRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=transaction_repository_mock.go github.com/shutterdesk/studio/internal/core TransactionRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=gallery_image_repository_mock.go github.com/shutterdesk/studio/internal/core GalleryImageRepository

// Shared cache tier and cross-replica invalidation.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_repository_mock.go github.com/shutterdesk/studio/internal/core CacheRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=invalidation_bus_mock.go github.com/shutterdesk/studio/internal/core InvalidationBus

// Mutation notifications.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=notify_sink_mock.go github.com/shutterdesk/studio/internal/observability/notify Sink
