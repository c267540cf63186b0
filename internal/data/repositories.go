package data

import (
	"database/sql"

	"github.com/shutterdesk/studio/internal/core"
)

// NewRepositories wires the PostgreSQL backend.
func NewRepositories(db *sql.DB) core.Repositories {
	return core.Repositories{
		Jobs:         NewJobRepo(db),
		Invoices:     NewInvoiceRepo(db),
		Transactions: NewTransactionRepo(db),
		Gallery:      NewGalleryImageRepo(db),
		Health:       db.PingContext,
	}
}
