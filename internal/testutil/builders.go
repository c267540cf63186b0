package testutil

import (
	"time"

	"github.com/shutterdesk/studio/internal/domain/model"
)

// JobRequestBuilder provides a fluent interface for building CreateJobRequest objects for testing.
type JobRequestBuilder struct {
	req *model.CreateJobRequest
}

// NewJobRequest creates a new JobRequestBuilder with sensible defaults.
func NewJobRequest() *JobRequestBuilder {
	return &JobRequestBuilder{
		req: &model.CreateJobRequest{
			Title:               "Smith Wedding",
			Description:         "Ceremony and reception coverage",
			Location:            "Austin, TX",
			EventDate:           TestTime().AddDate(0, 2, 0),
			Budget:              3200,
			Status:              model.JobStatusOpen,
			Category:            "Wedding",
			PhotographersNeeded: 2,
			VideographersNeeded: 1,
		},
	}
}

// WithTitle sets the job title.
func (b *JobRequestBuilder) WithTitle(title string) *JobRequestBuilder {
	b.req.Title = title
	return b
}

// WithStatus sets the job status.
func (b *JobRequestBuilder) WithStatus(status model.JobStatus) *JobRequestBuilder {
	b.req.Status = status
	return b
}

// WithBudget sets the job budget.
func (b *JobRequestBuilder) WithBudget(budget float64) *JobRequestBuilder {
	b.req.Budget = budget
	return b
}

// WithEventDate sets the event date.
func (b *JobRequestBuilder) WithEventDate(d time.Time) *JobRequestBuilder {
	b.req.EventDate = d
	return b
}

// Build returns the constructed request.
func (b *JobRequestBuilder) Build() *model.CreateJobRequest {
	out := *b.req
	return &out
}

// NewInvoiceRequest returns a valid pending invoice request.
func NewInvoiceRequest(number string) *model.CreateInvoiceRequest {
	issue := TestTime()
	return &model.CreateInvoiceRequest{
		Number:      number,
		ClientName:  "Acme Events",
		ClientEmail: "billing@acme.example",
		Amount:      1200,
		Status:      model.InvoiceStatusPending,
		IssueDate:   issue,
		DueDate:     issue.AddDate(0, 0, 30),
	}
}

// NewTransactionRequest returns a valid transaction request of the given type.
func NewTransactionRequest(kind model.TransactionType, amount float64) *model.CreateTransactionRequest {
	return &model.CreateTransactionRequest{
		Type:            kind,
		CategoryID:      "gear",
		Amount:          amount,
		TransactionDate: TestTime(),
		PaymentMethod:   "card",
		Metadata:        map[string]any{"vendor": "B&H"},
	}
}

// NewGalleryImageRequest returns a valid gallery upload request.
func NewGalleryImageRequest(title, category string) *model.CreateGalleryImageRequest {
	return &model.CreateGalleryImageRequest{
		URL:      "https://cdn.example.com/" + title + ".jpg",
		Title:    title,
		Category: category,
	}
}
