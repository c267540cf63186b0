package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shutterdesk/studio/internal/domain/model"
	apperrors "github.com/shutterdesk/studio/internal/errors"
	"github.com/shutterdesk/studio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestJobRepo_CRUD(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		fixed := testutil.TestTime()
		repo := NewJobRepoWithTimeProvider(db, NewFixedTimeProvider(fixed))

		created, err := repo.Create(ctx, testutil.NewJobRequest().WithTitle("  Lee Engagement ").Build())
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Lee Engagement", created.Title)
		assert.Equal(t, model.JobStatusOpen, created.Status)
		assert.InDelta(t, 3200, created.Budget, 0.001)
		assert.True(t, created.CreatedAt.Equal(fixed))

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, 2, got.PhotographersNeeded)

		status := model.JobStatusFilled
		updated, err := repo.Update(ctx, created.ID, &model.UpdateJobRequest{
			Status:              &status,
			VideographersNeeded: intPtr(0),
		})
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusFilled, updated.Status)
		assert.Equal(t, 0, updated.VideographersNeeded)
		assert.Equal(t, "Lee Engagement", updated.Title)

		deleted, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestJobRepo_ListOrdersByEventDate(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewJobRepo(db)

		base := testutil.TestTime()
		_, err := repo.Create(ctx, testutil.NewJobRequest().WithTitle("later").WithEventDate(base.AddDate(0, 3, 0)).Build())
		require.NoError(t, err)
		_, err = repo.Create(ctx, testutil.NewJobRequest().WithTitle("sooner").WithEventDate(base.AddDate(0, 1, 0)).Build())
		require.NoError(t, err)

		jobs, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, "sooner", jobs[0].Title)
		assert.Equal(t, "later", jobs[1].Title)
	})
}

func TestJobRepo_NotFound(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewJobRepo(db)

		_, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrJobNotFound)
		assert.True(t, apperrors.IsNotFound(err))

		// Malformed ids are simply absent rows.
		_, err = repo.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrJobNotFound)

		_, err = repo.Update(ctx, "00000000-0000-0000-0000-000000000000",
			&model.UpdateJobRequest{Title: stringPtr("x")})
		assert.ErrorIs(t, err, ErrJobNotFound)
	})
}

func TestJobRepo_CheckViolationIsValidation(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewJobRepo(db)

		_, err := repo.Create(ctx, testutil.NewJobRequest().WithBudget(-5).Build())
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err), "got %v", err)
	})
}

func TestJobRepo_NilRequest(t *testing.T) {
	repo := NewJobRepo(nil)
	_, err := repo.Create(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilRequest)
}
