package model

import (
	"strings"
	"time"
)

// JobStatus is the lifecycle state of a job posting.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusFilled JobStatus = "filled"
	JobStatusClosed JobStatus = "closed"
)

// JobStatuses lists the supported job statuses in display order.
func JobStatuses() []string {
	return []string{string(JobStatusOpen), string(JobStatusFilled), string(JobStatusClosed)}
}

// Valid reports whether the job status is supported.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusOpen, JobStatusFilled, JobStatusClosed:
		return true
	default:
		return false
	}
}

// ParseJobStatus normalizes a status string, defaulting to open when empty.
func ParseJobStatus(v string) (JobStatus, bool) {
	s := JobStatus(normalizeEnum(v))
	if s == "" {
		return JobStatusOpen, true
	}
	return s, s.Valid()
}

// Job is a posting that hires photographers and videographers for an event.
type Job struct {
	ID                  string    `json:"id"                   db:"id"`
	Title               string    `json:"title"                db:"title"`
	Description         string    `json:"description"          db:"description"`
	Location            string    `json:"location"             db:"location"`
	EventDate           time.Time `json:"event_date"           db:"event_date"`
	Budget              float64   `json:"budget"               db:"budget"`
	Status              JobStatus `json:"status"               db:"status"`
	Category            string    `json:"category"             db:"category"`
	PhotographersNeeded int       `json:"photographers_needed" db:"photographers_needed"`
	VideographersNeeded int       `json:"videographers_needed" db:"videographers_needed"`
	CreatedAt           time.Time `json:"created_at"           db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"           db:"updated_at"`
}

// ResourceID implements Resource.
func (j *Job) ResourceID() string { return j.ID }

// CreateJobRequest carries the fields of a new job posting.
type CreateJobRequest struct {
	Title               string    `json:"title"`
	Description         string    `json:"description,omitempty"`
	Location            string    `json:"location"`
	EventDate           time.Time `json:"event_date"`
	Budget              float64   `json:"budget"`
	Status              JobStatus `json:"status,omitempty"`
	Category            string    `json:"category,omitempty"`
	PhotographersNeeded int       `json:"photographers_needed"`
	VideographersNeeded int       `json:"videographers_needed"`
}

// Normalize trims text fields and applies the default status.
func (r *CreateJobRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Location = strings.TrimSpace(r.Location)
	r.Category = strings.TrimSpace(r.Category)
	if r.Status == "" {
		r.Status = JobStatusOpen
	}
}

// UpdateJobRequest carries a partial update of a job posting. Nil fields are left unchanged.
type UpdateJobRequest struct {
	Title               *string    `json:"title,omitempty"`
	Description         *string    `json:"description,omitempty"`
	Location            *string    `json:"location,omitempty"`
	EventDate           *time.Time `json:"event_date,omitempty"`
	Budget              *float64   `json:"budget,omitempty"`
	Status              *JobStatus `json:"status,omitempty"`
	Category            *string    `json:"category,omitempty"`
	PhotographersNeeded *int       `json:"photographers_needed,omitempty"`
	VideographersNeeded *int       `json:"videographers_needed,omitempty"`
}

// HasUpdates reports whether any field is set.
func (r *UpdateJobRequest) HasUpdates() bool {
	return r.Title != nil || r.Description != nil || r.Location != nil || r.EventDate != nil ||
		r.Budget != nil || r.Status != nil || r.Category != nil ||
		r.PhotographersNeeded != nil || r.VideographersNeeded != nil
}

// Apply copies the set fields onto j.
func (r *UpdateJobRequest) Apply(j *Job) {
	if r.Title != nil {
		j.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		j.Description = strings.TrimSpace(*r.Description)
	}
	if r.Location != nil {
		j.Location = strings.TrimSpace(*r.Location)
	}
	if r.EventDate != nil {
		j.EventDate = *r.EventDate
	}
	if r.Budget != nil {
		j.Budget = *r.Budget
	}
	if r.Status != nil {
		j.Status = *r.Status
	}
	if r.Category != nil {
		j.Category = strings.TrimSpace(*r.Category)
	}
	if r.PhotographersNeeded != nil {
		j.PhotographersNeeded = *r.PhotographersNeeded
	}
	if r.VideographersNeeded != nil {
		j.VideographersNeeded = *r.VideographersNeeded
	}
}
