package projection

import (
	"time"

	"github.com/shutterdesk/studio/internal/domain/model"
)

func byTime[T any](get func(T) time.Time) func(a, b T) int {
	return func(a, b T) int { return get(a).Compare(get(b)) }
}

// JobAccessors projects job postings.
func JobAccessors() Accessors[*model.Job] {
	return Accessors[*model.Job]{
		Search: func(j *model.Job) []string {
			return []string{j.Title, j.Description, j.Location, j.Category}
		},
		Status:   func(j *model.Job) string { return string(j.Status) },
		Category: func(j *model.Job) string { return j.Category },
		Sorts: map[string]func(a, b *model.Job) int{
			"event_date": byTime(func(j *model.Job) time.Time { return j.EventDate }),
			"title":      byString(func(j *model.Job) string { return j.Title }),
			"budget":     byNumber(func(j *model.Job) float64 { return j.Budget }),
			"created_at": byTime(func(j *model.Job) time.Time { return j.CreatedAt }),
		},
	}
}

// InvoiceAccessors projects invoices. Status filtering and sorting use the effective status,
// so an unpaid invoice past its due date counts as "overdue" at now().
func InvoiceAccessors(now func() time.Time) Accessors[*model.Invoice] {
	if now == nil {
		now = time.Now
	}
	status := func(inv *model.Invoice) string {
		if inv.IsOverdue(now()) {
			return string(model.InvoiceStatusOverdue)
		}
		return string(inv.Status)
	}
	return Accessors[*model.Invoice]{
		Search: func(inv *model.Invoice) []string {
			return []string{inv.Number, inv.ClientName, inv.ClientEmail, inv.Notes}
		},
		Status: status,
		Sorts: map[string]func(a, b *model.Invoice) int{
			"issue_date": byTime(func(inv *model.Invoice) time.Time { return inv.IssueDate }),
			"due_date":   byTime(func(inv *model.Invoice) time.Time { return inv.DueDate }),
			"amount":     byNumber(func(inv *model.Invoice) float64 { return inv.Amount }),
			"client":     byString(func(inv *model.Invoice) string { return inv.ClientName }),
			"number":     byString(func(inv *model.Invoice) string { return inv.Number }),
			"status":     byString(status),
		},
	}
}

// TransactionAccessors projects transactions. Status matches the transaction type and the
// metadata object is exposed to JMESPath expressions.
func TransactionAccessors() Accessors[*model.Transaction] {
	return Accessors[*model.Transaction]{
		Search: func(t *model.Transaction) []string {
			return []string{t.Description, t.CategoryID, t.SubcategoryID, t.PaymentMethod}
		},
		Status:   func(t *model.Transaction) string { return string(t.Type) },
		Category: func(t *model.Transaction) string { return t.CategoryID },
		Metadata: func(t *model.Transaction) any {
			if t.Metadata == nil {
				return map[string]any{}
			}
			return t.Metadata
		},
		Sorts: map[string]func(a, b *model.Transaction) int{
			"date":   byTime(func(t *model.Transaction) time.Time { return t.TransactionDate }),
			"amount": byNumber(func(t *model.Transaction) float64 { return t.Amount }),
		},
	}
}

// GalleryAccessors projects portfolio images.
func GalleryAccessors() Accessors[*model.GalleryImage] {
	return Accessors[*model.GalleryImage]{
		Search:   func(g *model.GalleryImage) []string { return []string{g.Title, g.Category} },
		Category: func(g *model.GalleryImage) string { return g.Category },
		Sorts: map[string]func(a, b *model.GalleryImage) int{
			"title":    byString(func(g *model.GalleryImage) string { return g.Title }),
			"category": byString(func(g *model.GalleryImage) string { return g.Category }),
		},
	}
}

// GalleryCategories lists "all" plus the categories present in images.
func GalleryCategories(images []*model.GalleryImage) []string {
	return Categories(images, func(g *model.GalleryImage) string { return g.Category })
}
