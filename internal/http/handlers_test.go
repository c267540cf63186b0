package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shutterdesk/studio/internal/core"
	"github.com/shutterdesk/studio/internal/data/memory"
	"github.com/shutterdesk/studio/internal/domain/model"
	"github.com/shutterdesk/studio/internal/service"
	"github.com/shutterdesk/studio/internal/store"
	"github.com/shutterdesk/studio/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC)

// flakyJobs fails List while fail is set.
type flakyJobs struct {
	*memory.JobRepo
	fail atomic.Bool
}

func (r *flakyJobs) List(ctx context.Context) ([]*model.Job, error) {
	if r.fail.Load() {
		return nil, errors.New("connection refused")
	}
	return r.JobRepo.List(ctx)
}

type fixture struct {
	handler http.Handler
	jobs    *flakyJobs
}

func newFixture(t *testing.T, health map[string]HealthCheck) *fixture {
	t.Helper()
	jobs := &flakyJobs{JobRepo: memory.NewJobRepo()}
	repos := memory.NewRepositories()
	repos.Jobs = jobs

	now := func() time.Time { return testNow }
	reg := store.NewRegistry(store.Options{Now: now})
	t.Cleanup(func() { _ = reg.Close() })
	svcs, err := service.New(service.Options{Registry: reg, Repos: repos, Now: now})
	require.NoError(t, err)

	return &fixture{
		handler: NewRouter(RouterServices{Services: svcs, Health: health}),
		jobs:    jobs,
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func jobBody(title string) map[string]any {
	return map[string]any{
		"title":                title,
		"location":             "Riverside Gardens",
		"event_date":           "2026-06-20",
		"budget":               3200,
		"status":               "open",
		"photographers_needed": 2,
		"videographers_needed": 1,
	}
}

func (f *fixture) createJob(t *testing.T, title string) model.Job {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/jobs", jobBody(title))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.Job](t, rec)
}

type listBody struct {
	Items    []model.Job `json:"items"`
	Total    int         `json:"total"`
	Stale    bool        `json:"stale"`
	Error    string      `json:"error"`
	SortKeys []string    `json:"sort_keys"`
}

func TestJobs_CreateGetList(t *testing.T) {
	f := newFixture(t, nil)
	job := f.createJob(t, "Lee Wedding")
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, "Lee Wedding", job.Title)
	assert.InDelta(t, 3200, job.Budget, 0.001)

	rec := f.do(t, http.MethodGet, "/api/jobs/"+job.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, job.ID, decode[model.Job](t, rec).ID)

	rec = f.do(t, http.MethodGet, "/api/jobs?q=lee", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[listBody](t, rec)
	assert.Equal(t, 1, list.Total)
	assert.False(t, list.Stale)
	assert.NotEmpty(t, list.SortKeys)
}

func TestJobs_CreateValidationFailure(t *testing.T) {
	f := newFixture(t, nil)
	body := jobBody("")
	rec := f.do(t, http.MethodPost, "/api/jobs", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	eb := decode[ErrorBody](t, rec)
	assert.Equal(t, "validation_failed", eb.Error)
	assert.Equal(t, "Title is required.", eb.Fields["title"])
}

func TestJobs_InvalidJSON(t *testing.T) {
	f := newFixture(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", decode[ErrorBody](t, rec).Error)
}

func TestJobs_NotFound(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodGet, "/api/jobs/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/jobs/00000000-0000-0000-0000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[ErrorBody](t, rec).Error)

	rec = f.do(t, http.MethodDelete, "/api/jobs/00000000-0000-0000-0000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJobs_UpdateAndDelete(t *testing.T) {
	f := newFixture(t, nil)
	job := f.createJob(t, "Lee Wedding")

	rec := f.do(t, http.MethodPatch, "/api/jobs/"+job.ID, map[string]any{"status": "filled"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[model.Job](t, rec)
	assert.Equal(t, model.JobStatusFilled, updated.Status)
	assert.Equal(t, "Lee Wedding", updated.Title)

	rec = f.do(t, http.MethodDelete, "/api/jobs/"+job.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/jobs", nil)
	assert.Equal(t, 0, decode[listBody](t, rec).Total)
}

func TestJobs_StaleListAfterFailedRefetch(t *testing.T) {
	f := newFixture(t, nil)
	job := f.createJob(t, "Lee Wedding")
	f.createJob(t, "Park Portraits")

	rec := f.do(t, http.MethodGet, "/api/jobs", nil)
	require.Equal(t, 2, decode[listBody](t, rec).Total)

	f.jobs.fail.Store(true)
	// The delete succeeds and invalidates; the refetch then fails.
	rec = f.do(t, http.MethodDelete, "/api/jobs/"+job.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/jobs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[listBody](t, rec)
	assert.True(t, list.Stale)
	assert.Contains(t, list.Error, "connection refused")
	assert.Equal(t, 2, list.Total)
}

func TestJobs_LoadFailureWithoutData(t *testing.T) {
	f := newFixture(t, nil)
	f.jobs.fail.Store(true)

	rec := f.do(t, http.MethodGet, "/api/jobs", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	eb := decode[ErrorBody](t, rec)
	assert.Equal(t, "network", eb.Error)
	assert.Equal(t, "Failed to load job postings", eb.Message)
}

func TestJobs_ValidateEndpoint(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodPost, "/api/jobs/validate", map[string]any{"field": "budget", "value": -1})
	require.Equal(t, http.StatusOK, rec.Code)
	fr := decode[fieldResult](t, rec)
	assert.False(t, fr.Valid)
	assert.Equal(t, "Budget must be a positive number.", fr.Error)

	rec = f.do(t, http.MethodPost, "/api/jobs/validate", map[string]any{"field": "budget", "value": "250"})
	assert.True(t, decode[fieldResult](t, rec).Valid)

	rec = f.do(t, http.MethodPost, "/api/jobs/validate", map[string]any{"field": "nope", "value": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/jobs/validate", map[string]any{"draft": jobBody("")})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[validation.Result](t, rec)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "title")
}

func TestInvoices_RecordPayment(t *testing.T) {
	f := newFixture(t, nil)
	rec := f.do(t, http.MethodPost, "/api/invoices", map[string]any{
		"number":      "INV-1001",
		"client_name": "Avery Lee",
		"amount":      1500,
		"status":      "pending",
		"issue_date":  "2026-05-01",
		"due_date":    "2026-05-31",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	inv := decode[model.Invoice](t, rec)

	rec = f.do(t, http.MethodPost, "/api/invoices/"+inv.ID+"/payments", map[string]any{"amount": 2000})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorBody](t, rec).Fields, "amount")

	rec = f.do(t, http.MethodPost, "/api/invoices/"+inv.ID+"/payments", map[string]any{"amount": 1500})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, model.InvoiceStatusPaid, decode[model.Invoice](t, rec).Status)

	rec = f.do(t, http.MethodGet, "/api/invoices/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[service.InvoiceStats](t, rec)
	assert.Equal(t, 1, st.Count)
	assert.InDelta(t, 0, st.Outstanding, 0.001)
}

func TestListRejectsBadCriteria(t *testing.T) {
	f := newFixture(t, nil)
	rec := f.do(t, http.MethodGet, "/api/transactions?limit=-3", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_query", decode[ErrorBody](t, rec).Error)
}

func TestJobAssignment(t *testing.T) {
	f := newFixture(t, nil)
	job := f.createJob(t, "Lee Wedding")

	rec := f.do(t, http.MethodPost, "/api/jobs/"+job.ID+"/assignment", model.AssignmentCounts{
		TotalPhotographers: 2, TotalVideographers: 1,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ar := decode[assignmentResponse](t, rec)
	assert.Equal(t, model.AssignmentFullyAssigned, ar.Status)
	assert.Equal(t, "Fully Assigned", ar.Label)
}

func TestDashboardAndCategories(t *testing.T) {
	f := newFixture(t, nil)
	f.createJob(t, "Lee Wedding")

	rec := f.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ov := decode[service.Overview](t, rec)
	require.NotEmpty(t, ov.Cards)
	assert.Equal(t, "Open Jobs", ov.Cards[0].Title)
	assert.Equal(t, "1", ov.Cards[0].Value)

	rec = f.do(t, http.MethodGet, "/api/gallery/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "categories")
}

func TestHealth(t *testing.T) {
	f := newFixture(t, map[string]HealthCheck{
		"backend": func(context.Context) error { return nil },
	})
	rec := f.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	f = newFixture(t, map[string]HealthCheck{
		"cache": func(context.Context) error { return errors.New("redis down") },
	})
	rec = f.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	hr := decode[healthResponse](t, rec)
	assert.Equal(t, "degraded", hr.Status)
	assert.Equal(t, "redis down", hr.Checks["cache"])
}

func TestRecoverWritesJSON(t *testing.T) {
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }),
		Recover(discardLogger()))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal", decode[ErrorBody](t, rec).Error)
}

func TestRequestIDKeepsClientValue(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

var _ core.JobRepository = (*flakyJobs)(nil)
