package validation

import (
	"github.com/shutterdesk/studio/internal/domain/model"
)

// JobSchema validates job posting forms.
func JobSchema() *Schema {
	return &Schema{
		Resource: model.KeyJobs.String(),
		Fields: []Field{
			{Name: "title", Validators: []Validator{Required("Title is required."), MaxLen("Title", 255)}},
			{Name: "description", Validators: []Validator{Optional(MaxLen("Description", 5000))}},
			{Name: "location", Validators: []Validator{Required("Location is required."), MaxLen("Location", 255)}},
			{Name: "event_date", Validators: []Validator{
				Required("Event date is required."), Date("Enter a valid event date."),
			}},
			{Name: "budget", Validators: []Validator{PositiveNumber("Budget must be a positive number.")}},
			{Name: "status", Validators: []Validator{Optional(OneOf("Status", model.JobStatuses()))}},
			{Name: "category", Validators: []Validator{Optional(MaxLen("Category", 100))}},
			{Name: "photographers_needed", Validators: []Validator{Optional(NonNegativeInt("Photographers needed"))}},
			{Name: "videographers_needed", Validators: []Validator{Optional(NonNegativeInt("Videographers needed"))}},
		},
	}
}

// InvoiceSchema validates invoice forms, including the due date and payment cross-checks.
func InvoiceSchema() *Schema {
	return &Schema{
		Resource: model.KeyInvoices.String(),
		Fields: []Field{
			{Name: "number", Validators: []Validator{Required("Invoice number is required."), MaxLen("Invoice number", 50)}},
			{Name: "client_name", Validators: []Validator{Required("Client name is required."), MaxLen("Client name", 255)}},
			{Name: "client_email", Validators: []Validator{Optional(Email())}},
			{Name: "amount", Validators: []Validator{PositiveNumber("Amount must be a positive number.")}},
			{Name: "amount_paid", Validators: []Validator{Optional(NonNegativeNumber("Amount paid"))}},
			{Name: "status", Validators: []Validator{Optional(OneOf("Status", model.InvoiceStatuses()))}},
			{Name: "issue_date", Validators: []Validator{
				Required("Issue date is required."), Date("Enter a valid issue date."),
			}},
			{Name: "due_date", Validators: []Validator{
				Required("Due date is required."), Date("Enter a valid due date."),
			}},
			{Name: "notes", Validators: []Validator{Optional(MaxLen("Notes", 5000))}},
		},
		Checks: []Check{
			{
				Field:  "due_date",
				Fields: []string{"issue_date", "due_date"},
				Fn: func(d Draft) string {
					issue, _ := model.ParseDate(d["issue_date"])
					due, _ := model.ParseDate(d["due_date"])
					if due.Before(issue) {
						return "Due date cannot be before the issue date"
					}
					return ""
				},
			},
			{
				Field:  "amount_paid",
				Fields: []string{"amount", "amount_paid"},
				Fn: func(d Draft) string {
					amount, _ := parseNumber(d["amount"])
					paid, _ := parseNumber(d["amount_paid"])
					if paid > amount {
						return "Amount paid cannot exceed the invoice amount"
					}
					return ""
				},
			},
		},
	}
}

// TransactionSchema validates the income/expense form.
func TransactionSchema() *Schema {
	return &Schema{
		Resource: model.KeyTransactions.String(),
		Fields: []Field{
			{Name: "transaction_type", Validators: []Validator{
				Required("Transaction type is required"), OneOf("Transaction type", model.TransactionTypes()),
			}},
			{Name: "category_id", Validators: []Validator{Required("Please select a category")}},
			{Name: "subcategory_id"},
			{Name: "amount", Validators: []Validator{PositiveNumber("Amount must be a positive number")}},
			{Name: "transaction_date", Validators: []Validator{
				Required("Transaction date is required"), Date("Invalid date"),
			}},
			{Name: "description"},
			{Name: "payment_method"},
			{Name: "source_id"},
			{Name: "source_type"},
			{Name: "metadata", Validators: []Validator{Optional(JSONObject("Metadata must be a JSON object"))}},
		},
	}
}

// GalleryImageSchema validates portfolio uploads.
func GalleryImageSchema() *Schema {
	return &Schema{
		Resource: model.KeyGallery.String(),
		Fields: []Field{
			{Name: "url", Validators: []Validator{Required("Image URL is required."), MaxLen("Image URL", 2048), URL()}},
			{Name: "title", Validators: []Validator{Required("Title is required."), MaxLen("Title", 255)}},
			{Name: "category", Validators: []Validator{Optional(OneOf("Category", model.GalleryCategories()))}},
		},
	}
}
