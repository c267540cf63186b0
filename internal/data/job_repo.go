package data

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shutterdesk/studio/internal/core"
	"github.com/shutterdesk/studio/internal/data/database"
	"github.com/shutterdesk/studio/internal/data/pgxutil"
	"github.com/shutterdesk/studio/internal/domain/model"
)

var jobsTable = database.Table{
	Name:  "jobs",
	IDCol: "id",
	Columns: []string{
		"id", "title", "description", "location", "event_date", "budget", "status", "category",
		"photographers_needed", "videographers_needed", "created_at", "updated_at",
	},
	Casts: map[string]string{"id": "text", "budget": "float8"},
}

// JobRepo provides database operations for job postings.
type JobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

var _ core.JobRepository = (*JobRepo)(nil)

// NewJobRepo creates a new JobRepo with real time provider.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewJobRepoWithTimeProvider creates a new JobRepo with a custom time provider (useful for tests).
func NewJobRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *JobRepo {
	return &JobRepo{DB: db, timeProvider: tp}
}

// List returns every job posting, soonest event first.
func (r *JobRepo) List(ctx context.Context) ([]*model.Job, error) {
	out, err := pgxutil.CollectAll[model.Job](ctx, r.DB, jobsTable.SelectAll("event_date", "created_at"))
	if err != nil {
		return nil, mapReadErr(err, ErrJobNotFound, "failed to list jobs")
	}
	return out, nil
}

// GetByID retrieves a job posting by ID.
func (r *JobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	job, err := pgxutil.CollectOne[model.Job](ctx, r.DB, jobsTable.SelectByID(), id)
	if err != nil {
		return nil, mapReadErr(err, ErrJobNotFound, "failed to get job")
	}
	return job, nil
}

// Create inserts a new job posting.
func (r *JobRepo) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	req.Normalize()

	now := r.timeProvider.Now().UTC()
	q := jobsTable.Insert(
		"title", "description", "location", "event_date", "budget", "status", "category",
		"photographers_needed", "videographers_needed", "created_at", "updated_at",
	)
	job, err := pgxutil.CollectOne[model.Job](ctx, r.DB, q,
		req.Title, req.Description, req.Location, req.EventDate, req.Budget, string(req.Status),
		req.Category, req.PhotographersNeeded, req.VideographersNeeded, now, now,
	)
	if err != nil {
		return nil, mapReadErr(err, ErrJobNotFound, "failed to create job")
	}
	return job, nil
}

// Update applies a partial update. An empty request returns the current row.
func (r *JobRepo) Update(ctx context.Context, id string, req *model.UpdateJobRequest) (*model.Job, error) {
	if req == nil || !req.HasUpdates() {
		return r.GetByID(ctx, id)
	}

	set := &database.SetClause{}
	if req.Title != nil {
		set.Set("title", strings.TrimSpace(*req.Title))
	}
	if req.Description != nil {
		set.Set("description", strings.TrimSpace(*req.Description))
	}
	if req.Location != nil {
		set.Set("location", strings.TrimSpace(*req.Location))
	}
	if req.EventDate != nil {
		set.Set("event_date", *req.EventDate)
	}
	if req.Budget != nil {
		set.Set("budget", *req.Budget)
	}
	if req.Status != nil {
		set.Set("status", string(*req.Status))
	}
	if req.Category != nil {
		set.Set("category", strings.TrimSpace(*req.Category))
	}
	if req.PhotographersNeeded != nil {
		set.Set("photographers_needed", *req.PhotographersNeeded)
	}
	if req.VideographersNeeded != nil {
		set.Set("videographers_needed", *req.VideographersNeeded)
	}

	q, args := jobsTable.Update(set, id)
	job, err := pgxutil.CollectOne[model.Job](ctx, r.DB, q, args...)
	if err != nil {
		return nil, mapReadErr(err, ErrJobNotFound, "failed to update job")
	}
	return job, nil
}

// Delete deletes a job posting by ID.
func (r *JobRepo) Delete(ctx context.Context, id string) (bool, error) {
	n, err := pgxutil.Exec(ctx, r.DB, jobsTable.Delete(), id)
	if err != nil {
		return false, mapReadErr(err, ErrJobNotFound, "failed to delete job")
	}
	return n > 0, nil
}
