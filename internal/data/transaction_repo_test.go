package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shutterdesk/studio/internal/domain/model"
	"github.com/shutterdesk/studio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepo_CRUD(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewTransactionRepo(db)

		created, err := repo.Create(ctx, testutil.NewTransactionRequest(model.TransactionExpense, 89.5))
		require.NoError(t, err)
		assert.Equal(t, model.TransactionExpense, created.Type)
		assert.InDelta(t, -89.5, created.Signed(), 0.001)
		assert.Equal(t, "B&H", created.Metadata["vendor"])

		updated, err := repo.Update(ctx, created.ID, &model.UpdateTransactionRequest{
			Description: stringPtr(" lens rental "),
			Metadata:    map[string]any{"vendor": "Lensrentals", "days": float64(3)},
		})
		require.NoError(t, err)
		assert.Equal(t, "lens rental", updated.Description)
		assert.Equal(t, map[string]any{"vendor": "Lensrentals", "days": float64(3)}, updated.Metadata)

		deleted, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)
	})
}

func TestTransactionRepo_NilMetadataStoredAsObject(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewTransactionRepo(db)

		req := testutil.NewTransactionRequest(model.TransactionIncome, 500)
		req.Metadata = nil
		created, err := repo.Create(ctx, req)
		require.NoError(t, err)
		assert.NotNil(t, created.Metadata)
		assert.Empty(t, created.Metadata)

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, created.ID, list[0].ID)
	})
}
