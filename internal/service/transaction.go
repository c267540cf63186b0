package service

import (
	"context"

	"github.com/shutterdesk/studio/internal/domain/model"
	"github.com/shutterdesk/studio/internal/projection"
	"github.com/shutterdesk/studio/internal/validation"
)

var transactionCodec = codec[*model.Transaction, *model.CreateTransactionRequest, *model.UpdateTransactionRequest]{
	schema:       validation.TransactionSchema,
	decodeCreate: validation.DecodeTransaction,
	decodeUpdate: validation.DecodeTransactionUpdate,
	draft:        validation.TransactionDraft,
}

// TransactionService manages income and expense entries.
type TransactionService struct {
	*resource[*model.Transaction, *model.CreateTransactionRequest, *model.UpdateTransactionRequest]
}

// TransactionSummary totals a set of transactions.
type TransactionSummary struct {
	Count   int     `json:"count"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
	Stale   bool    `json:"stale,omitempty"`
}

// Summary totals the transactions selected by c, ignoring paging.
func (s *TransactionService) Summary(ctx context.Context, c projection.Criteria) (TransactionSummary, error) {
	c.Limit, c.Offset = 0, 0
	res, err := s.List(ctx, c)
	if err != nil {
		return TransactionSummary{}, err
	}
	sum := TransactionSummary{Count: len(res.Items), Stale: res.Stale}
	for _, t := range res.Items {
		switch t.Type {
		case model.TransactionIncome:
			sum.Income += t.Amount
		case model.TransactionExpense:
			sum.Expense += t.Amount
		}
		sum.Net += t.Signed()
	}
	return sum, nil
}
