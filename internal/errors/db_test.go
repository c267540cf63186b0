package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError_NilError(t *testing.T) {
	if err := MapDBError(nil); err != nil {
		t.Errorf("MapDBError(nil) = %v, want nil", err)
	}
}

func TestMapDBError_ContextErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
	}{
		{name: "deadline exceeded", err: context.DeadlineExceeded, wantCode: ErrCodeTimeout},
		{name: "canceled", err: fmt.Errorf("query: %w", context.Canceled), wantCode: ErrCodeCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.err)
			if !IsAppError(err, tt.wantCode) {
				t.Errorf("MapDBError() code = %v, want %v", GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestMapDBError_NoRows(t *testing.T) {
	err := MapDBError(pgx.ErrNoRows)
	if !IsNotFound(err) {
		t.Errorf("MapDBError(pgx.ErrNoRows) should be NotFound, got %v", GetCode(err))
	}
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	tests := []struct {
		name      string
		pgErr     *pgconn.PgError
		wantField string
		wantMsg   string
	}{
		{
			name: "detail names the column",
			pgErr: &pgconn.PgError{
				Code:      pgerrcode.UniqueViolation,
				Detail:    "Key (number)=(INV-001) already exists.",
				TableName: "invoices",
			},
			wantField: "number",
			wantMsg:   "An invoice with this number already exists.",
		},
		{
			name: "constraint name inference",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "gallery_url_key",
			},
			wantField: "url",
			wantMsg:   "This value already exists. Please choose a different one.",
		},
		{
			name: "expression index is ambiguous",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "jobs_lower_key",
			},
			wantField: "",
			wantMsg:   "This value already exists. Please choose a different one.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.pgErr)
			if !IsConflict(err) {
				t.Fatalf("expected conflict, got %v", GetCode(err))
			}
			if got := GetField(err); got != tt.wantField {
				t.Errorf("field = %q, want %q", got, tt.wantField)
			}
			if got := Message(err); got != tt.wantMsg {
				t.Errorf("message = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestMapDBError_CheckViolation(t *testing.T) {
	err := MapDBError(&pgconn.PgError{
		Code:           pgerrcode.CheckViolation,
		ConstraintName: "invoices_amount_paid_check",
		TableName:      "invoices",
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation, got %v", GetCode(err))
	}
	if GetField(err) != "amount_paid" {
		t.Errorf("field = %q, want amount_paid", GetField(err))
	}

	generic := MapDBError(&pgconn.PgError{Code: pgerrcode.CheckViolation, TableName: "gallery_images"})
	if got := Message(generic); got != "Invalid gallery image data. Please check your input." {
		t.Errorf("message = %q", got)
	}
}

func TestMapDBError_NotNullViolation(t *testing.T) {
	err := MapDBError(&pgconn.PgError{Code: pgerrcode.NotNullViolation, ColumnName: "title"})
	if !IsValidation(err) || GetField(err) != "title" {
		t.Errorf("expected validation on title, got %v/%q", GetCode(err), GetField(err))
	}
}

func TestMapDBError_PrivilegeAndConnection(t *testing.T) {
	if err := MapDBError(&pgconn.PgError{Code: pgerrcode.InsufficientPrivilege}); !IsUnauthorized(err) {
		t.Errorf("expected unauthorized, got %v", GetCode(err))
	}

	if err := MapDBError(&pgconn.PgError{Code: pgerrcode.DeadlockDetected}); !IsInternal(err) {
		t.Errorf("expected internal, got %v", GetCode(err))
	}
}

func TestMapDBError_PassThrough(t *testing.T) {
	orig := errors.New("something else")
	if got := MapDBError(orig); !errors.Is(got, orig) || GetCode(got) != "" {
		t.Errorf("unrecognized errors must pass through unchanged, got %v", got)
	}
}

// IsAppError reports whether err carries the given code.
func IsAppError(err error, code ErrorCode) bool {
	return GetCode(err) == code
}
