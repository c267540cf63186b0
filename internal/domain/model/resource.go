// Package model defines the resource types managed by the studio service.
package model

import (
	"fmt"
	"strings"
	"time"
)

// ResourceKey names a cached resource collection.
type ResourceKey string

const (
	// KeyJobs is the collection of job postings.
	KeyJobs ResourceKey = "jobs"
	// KeyInvoices is the collection of client invoices.
	KeyInvoices ResourceKey = "invoices"
	// KeyTransactions is the collection of financial transactions.
	KeyTransactions ResourceKey = "transactions"
	// KeyGallery is the collection of portfolio gallery images.
	KeyGallery ResourceKey = "gallery"
)

// String returns the key as a plain string.
func (k ResourceKey) String() string { return string(k) }

// Resource is implemented by every backend-managed record. The identifier is assigned by the
// backend on create and never changes afterwards.
type Resource interface {
	ResourceID() string
}

// dateLayout is the calendar date format accepted for date-only fields.
const dateLayout = "2006-01-02"

// ParseDate accepts RFC3339 timestamps or YYYY-MM-DD dates and returns the time in UTC.
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", v, err)
	}
	return t.UTC(), nil
}

// FormatDate renders a time as a calendar date.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func normalizeEnum(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
