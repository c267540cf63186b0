package validation

import (
	"testing"

	"github.com/shutterdesk/studio/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validJobDraft() Draft {
	return Draft{
		"title":                "Smith Wedding",
		"location":             "Austin, TX",
		"event_date":           "2026-06-20",
		"budget":               "3200",
		"status":               "open",
		"photographers_needed": "2",
	}
}

func validInvoiceDraft() Draft {
	return Draft{
		"number":      "INV-1",
		"client_name": "Acme",
		"amount":      "1000",
		"amount_paid": "0",
		"issue_date":  "2026-01-01",
		"due_date":    "2026-01-31",
	}
}

func validTransactionDraft() Draft {
	return Draft{
		"transaction_type": "expense",
		"category_id":      "gear",
		"amount":           "89.99",
		"transaction_date": "2026-02-14",
	}
}

func validGalleryDraft() Draft {
	return Draft{"url": "https://cdn.example.com/a.jpg", "title": "Dunes"}
}

func TestSchemas_ValidDraftsHaveNoErrors(t *testing.T) {
	cases := map[string]struct {
		schema *Schema
		draft  Draft
	}{
		"jobs":         {JobSchema(), validJobDraft()},
		"invoices":     {InvoiceSchema(), validInvoiceDraft()},
		"transactions": {TransactionSchema(), validTransactionDraft()},
		"gallery":      {GalleryImageSchema(), validGalleryDraft()},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			res := tc.schema.Validate(tc.draft)
			assert.True(t, res.Valid)
			assert.NotNil(t, res.Errors)
			assert.Empty(t, res.Errors)
		})
	}
}

func TestSchemas_MissingRequiredFieldReportsExactlyThatField(t *testing.T) {
	cases := []struct {
		schema *Schema
		draft  func() Draft
		fields []string
	}{
		{JobSchema(), validJobDraft, []string{"title", "location", "event_date", "budget"}},
		{InvoiceSchema(), validInvoiceDraft, []string{"number", "client_name", "amount", "issue_date", "due_date"}},
		{TransactionSchema(), validTransactionDraft, []string{"transaction_type", "category_id", "amount", "transaction_date"}},
		{GalleryImageSchema(), validGalleryDraft, []string{"url", "title"}},
	}
	for _, tc := range cases {
		for _, field := range tc.fields {
			t.Run(tc.schema.Resource+"/"+field, func(t *testing.T) {
				d := tc.draft()
				delete(d, field)
				res := tc.schema.Validate(d)
				assert.False(t, res.Valid)
				require.Len(t, res.Errors, 1, "errors: %v", res.Errors)
				assert.Contains(t, res.Errors, field)
			})
		}
	}
}

func TestTransactionSchema_Messages(t *testing.T) {
	res := TransactionSchema().Validate(Draft{"amount": "0"})
	assert.Equal(t, map[string]string{
		"transaction_type": "Transaction type is required",
		"category_id":      "Please select a category",
		"amount":           "Amount must be a positive number",
		"transaction_date": "Transaction date is required",
	}, res.Errors)
}

func TestValidate_DoesNotMutateDraft(t *testing.T) {
	d := Draft{"title": "  padded  ", "budget": "abc", "extra": "ignored"}
	before := map[string]string{"title": "  padded  ", "budget": "abc", "extra": "ignored"}
	_ = JobSchema().Validate(d)
	assert.Equal(t, Draft(before), d)
}

func TestInvoiceSchema_CrossFieldChecks(t *testing.T) {
	d := validInvoiceDraft()
	d["due_date"] = "2025-12-01"
	d["amount_paid"] = "1500"

	res := InvoiceSchema().Validate(d)
	assert.False(t, res.Valid)
	assert.Equal(t, "Due date cannot be before the issue date", res.Errors["due_date"])
	assert.Equal(t, "Amount paid cannot exceed the invoice amount", res.Errors["amount_paid"])
}

func TestInvoiceSchema_CrossCheckSkippedWhenFieldInvalid(t *testing.T) {
	d := validInvoiceDraft()
	d["amount"] = "nope"
	d["amount_paid"] = "1500"

	res := InvoiceSchema().Validate(d)
	assert.Equal(t, map[string]string{"amount": "Amount must be a positive number."}, res.Errors)
}

func TestSchema_ValidateUpdate(t *testing.T) {
	s := InvoiceSchema()
	current := validInvoiceDraft()

	res := s.ValidateUpdate(current, Draft{"notes": "thanks"})
	assert.True(t, res.Valid)

	// Only the patched field is validated; absent required fields are fine.
	res = s.ValidateUpdate(nil, Draft{"status": "paid"})
	assert.True(t, res.Valid)

	res = s.ValidateUpdate(current, Draft{"amount_paid": "2000"})
	assert.Equal(t, map[string]string{"amount_paid": "Amount paid cannot exceed the invoice amount"}, res.Errors)

	res = s.ValidateUpdate(current, Draft{"client_name": " "})
	assert.Equal(t, map[string]string{"client_name": "Client name is required."}, res.Errors)
}

func TestSchema_ValidateField(t *testing.T) {
	s := JobSchema()

	msg, ok := s.ValidateField("budget", "-1")
	assert.True(t, ok)
	assert.Equal(t, "Budget must be a positive number.", msg)

	msg, ok = s.ValidateField("budget", "10")
	assert.True(t, ok)
	assert.Empty(t, msg)

	_, ok = s.ValidateField("nope", "x")
	assert.False(t, ok)
	assert.False(t, s.Has("nope"))
}

func TestResult_Err(t *testing.T) {
	assert.NoError(t, Result{Valid: true, Errors: map[string]string{}}.Err("jobs"))

	err := Result{Errors: map[string]string{"title": "Title is required.", "budget": "bad"}}.Err("jobs")
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "jobs", verr.Resource)
	assert.Equal(t, "invalid jobs: budget: bad; title: Title is required.", err.Error())
}

func TestDraftFromJSON(t *testing.T) {
	d := DraftFromJSON(map[string]any{
		"title":    "x",
		"budget":   float64(1250.5),
		"count":    float64(2),
		"flag":     true,
		"metadata": map[string]any{"a": float64(1)},
		"none":     nil,
	})
	assert.Equal(t, Draft{
		"title":    "x",
		"budget":   "1250.5",
		"count":    "2",
		"flag":     "true",
		"metadata": `{"a":1}`,
		"none":     "",
	}, d)
}

func TestSchemaResourcesMatchKeys(t *testing.T) {
	assert.Equal(t, model.KeyJobs.String(), JobSchema().Resource)
	assert.Equal(t, model.KeyGallery.String(), GalleryImageSchema().Resource)
}
