package service

import (
	"context"
	"math"
	"time"

	"github.com/shutterdesk/studio/internal/domain/model"
	"github.com/shutterdesk/studio/internal/projection"
	"github.com/shutterdesk/studio/internal/validation"
)

// paymentTolerance absorbs float rounding when comparing money amounts.
const paymentTolerance = 0.005

var invoiceCodec = codec[*model.Invoice, *model.CreateInvoiceRequest, *model.UpdateInvoiceRequest]{
	schema:       validation.InvoiceSchema,
	decodeCreate: validation.DecodeInvoice,
	decodeUpdate: validation.DecodeInvoiceUpdate,
	draft:        validation.InvoiceDraft,
}

// InvoiceService manages client invoices.
type InvoiceService struct {
	*resource[*model.Invoice, *model.CreateInvoiceRequest, *model.UpdateInvoiceRequest]
	now func() time.Time
}

// InvoiceStats totals a set of invoices.
type InvoiceStats struct {
	Count         int     `json:"count"`
	Total         float64 `json:"total"`
	Paid          float64 `json:"paid"`
	Outstanding   float64 `json:"outstanding"`
	Overdue       int     `json:"overdue"`
	OverdueAmount float64 `json:"overdue_amount"`
	Stale         bool    `json:"stale,omitempty"`
}

// RecordPayment adds amount to the invoice's paid total, marking it paid once settled.
func (s *InvoiceService) RecordPayment(ctx context.Context, id string, amount float64) (*model.Invoice, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, paymentError("Payment amount must be a positive number")
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if amount > current.Outstanding()+paymentTolerance {
		return nil, paymentError("Payment exceeds the outstanding balance")
	}

	paid := min(current.AmountPaid+amount, current.Amount)
	req := &model.UpdateInvoiceRequest{AmountPaid: &paid}
	switch {
	case current.Amount-paid <= paymentTolerance:
		status := model.InvoiceStatusPaid
		req.Status = &status
	case current.Status == model.InvoiceStatusDraft:
		status := model.InvoiceStatusPending
		req.Status = &status
	}
	return s.exec.Update(ctx, current.ID, req)
}

func paymentError(msg string) error {
	return &validation.Error{Resource: model.KeyInvoices.String(), Fields: map[string]string{"amount": msg}}
}

// Stats totals the invoices selected by c, ignoring paging.
func (s *InvoiceService) Stats(ctx context.Context, c projection.Criteria) (InvoiceStats, error) {
	c.Limit, c.Offset = 0, 0
	res, err := s.List(ctx, c)
	if err != nil {
		return InvoiceStats{}, err
	}
	now := s.now()
	st := InvoiceStats{Count: len(res.Items), Stale: res.Stale}
	for _, inv := range res.Items {
		st.Total += inv.Amount
		st.Paid += inv.AmountPaid
		st.Outstanding += inv.Outstanding()
		if inv.IsOverdue(now) {
			st.Overdue++
			st.OverdueAmount += inv.Outstanding()
		}
	}
	return st, nil
}
