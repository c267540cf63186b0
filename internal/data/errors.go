package data

import (
	"errors"
	"fmt"

	apperrors "github.com/shutterdesk/studio/internal/errors"
)

// Shared sentinel errors for data-layer repositories.
var (
	ErrJobNotFound          = errors.New("job not found")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrGalleryImageNotFound = errors.New("gallery image not found")

	// ErrNilRequest is returned when a repository write receives a nil request.
	ErrNilRequest = errors.New("request is required")
)

// mapReadErr converts a single-row read failure into an AppError, using notFound when the row
// does not exist.
func mapReadErr(err error, notFound error, op string) error {
	if err == nil {
		return nil
	}
	mapped := apperrors.MapDBError(err)
	if apperrors.IsNotFound(mapped) {
		return apperrors.Wrap(notFound, apperrors.ErrCodeNotFound, capitalize(notFound.Error()))
	}
	var appErr *apperrors.AppError
	if errors.As(mapped, &appErr) {
		return mapped
	}
	return fmt.Errorf("%s: %w", op, err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
