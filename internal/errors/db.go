package errors

import (
	"context"
	"errors"
	"net"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// reKeyField extracts field name from unique violation detail: "Key (field)=(value) already exists.".
var reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)

// checkFieldMessages maps CHECK constraint names from the schema to the field they guard and
// the message shown to the user.
var checkFieldMessages = map[string][2]string{
	"jobs_budget_check":                    {"budget", "Budget must be a positive number"},
	"jobs_status_check":                    {"status", "Status must be open, filled or closed"},
	"jobs_photographers_needed_check":      {"photographers_needed", "Must be zero or more"},
	"jobs_videographers_needed_check":      {"videographers_needed", "Must be zero or more"},
	"invoices_amount_check":                {"amount", "Amount must be a positive number"},
	"invoices_amount_paid_check":           {"amount_paid", "Amount paid cannot exceed the invoice amount"},
	"invoices_status_check":                {"status", "Status must be draft, pending, paid or overdue"},
	"invoices_due_date_check":              {"due_date", "Due date cannot be before the issue date"},
	"transactions_amount_check":            {"amount", "Amount must be a positive number"},
	"transactions_transaction_type_check":  {"transaction_type", "Transaction type is required"},
	"transactions_metadata_check":          {"metadata", "Metadata must be a JSON object"},
	"gallery_images_category_check":        {"category", "Unknown gallery category"},
	"gallery_images_url_check":             {"url", "Image URL must start with http:// or https://"},
}

// MapDBError maps database errors to AppError instances.
// It handles common database error patterns including:
// - pgx.ErrNoRows → NotFound
// - Unique constraint violations → Conflict
// - Check constraint violations → Validation
// - NOT NULL violations → Validation
// - Connection failures → Unavailable
// - Context timeouts/cancellations → Timeout/Canceled
//
// If the error is not a recognized database error, it returns the original error.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return &AppError{
			Code:    ErrCodeNotFound,
			Message: "Resource not found",
			Cause:   err,
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	var netErr net.Error
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || errors.As(err, &netErr) {
		return &AppError{
			Code:    ErrCodeUnavailable,
			Message: "The database is unreachable. Please try again.",
			Cause:   err,
		}
	}

	return err
}

// mapPgError maps PostgreSQL-specific errors to AppError instances.
func mapPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return mapUniqueViolation(pgErr)
	case pgerrcode.CheckViolation:
		return mapCheckViolation(pgErr)
	case pgerrcode.NotNullViolation:
		return mapNotNullViolation(pgErr)
	case pgerrcode.InvalidTextRepresentation, pgerrcode.InvalidDatetimeFormat:
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "Invalid value format.",
			Cause:   pgErr,
		}
	case pgerrcode.InsufficientPrivilege:
		return &AppError{
			Code:    ErrCodeUnauthorized,
			Message: "You do not have permission to perform this action.",
			Cause:   pgErr,
		}
	default:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "A database error occurred. Please try again.",
			Cause:   pgErr,
		}
	}
}

// mapUniqueViolation maps unique constraint violations to Conflict errors.
func mapUniqueViolation(pgErr *pgconn.PgError) error {
	field := pgErr.ColumnName
	if field == "" && pgErr.Detail != "" {
		if m := reKeyField.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
			field = m[1]
		}
	}
	if field == "" {
		field = inferFieldFromConstraint(pgErr.ConstraintName)
	}

	message := "This value already exists. Please choose a different one."
	if field == "number" && strings.HasPrefix(pgErr.TableName, "invoices") {
		message = "An invoice with this number already exists."
	}
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
		Field:   field,
		Cause:   pgErr,
	}
}

// mapNotNullViolation maps NOT NULL constraint violations to Validation errors.
func mapNotNullViolation(pgErr *pgconn.PgError) error {
	if pgErr.ColumnName != "" {
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "This field is required.",
			Field:   pgErr.ColumnName,
			Cause:   pgErr,
		}
	}
	return &AppError{
		Code:    ErrCodeValidation,
		Message: "Required field is missing. Please check your input.",
		Cause:   pgErr,
	}
}

// mapCheckViolation maps CHECK constraint violations to Validation errors.
func mapCheckViolation(pgErr *pgconn.PgError) error {
	if fm, ok := checkFieldMessages[pgErr.ConstraintName]; ok {
		return &AppError{
			Code:    ErrCodeValidation,
			Message: fm[1],
			Field:   fm[0],
			Cause:   pgErr,
		}
	}
	if pgErr.ColumnName != "" {
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "This field has an invalid value.",
			Field:   pgErr.ColumnName,
			Cause:   pgErr,
		}
	}
	return &AppError{
		Code:    ErrCodeValidation,
		Message: "Invalid " + mapTableToDomain(pgErr.TableName) + " data. Please check your input.",
		Cause:   pgErr,
	}
}

// inferFieldFromConstraint attempts to infer the field name from a constraint name.
// e.g., "invoices_number_key" → "number"
// Returns empty string if inference fails or is ambiguous.
func inferFieldFromConstraint(constraintName string) string {
	parts := strings.Split(constraintName, "_")
	if len(parts) != 3 {
		return ""
	}
	switch parts[1] {
	case "lower", "upper", "trim":
		// expression index
		return ""
	}
	return parts[1]
}

// mapTableToDomain maps internal table names to user-friendly domain names.
func mapTableToDomain(tableName string) string {
	switch strings.ToLower(strings.TrimSpace(tableName)) {
	case "jobs":
		return "job"
	case "invoices":
		return "invoice"
	case "transactions":
		return "transaction"
	case "gallery_images":
		return "gallery image"
	case "":
		return "record"
	default:
		return strings.ReplaceAll(strings.ToLower(tableName), "_", " ")
	}
}
