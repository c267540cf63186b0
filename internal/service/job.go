package service

import (
	"github.com/shutterdesk/studio/internal/domain/model"
	"github.com/shutterdesk/studio/internal/validation"
)

var jobCodec = codec[*model.Job, *model.CreateJobRequest, *model.UpdateJobRequest]{
	schema:       validation.JobSchema,
	decodeCreate: validation.DecodeJob,
	decodeUpdate: validation.DecodeJobUpdate,
	draft:        validation.JobDraft,
}

// JobService manages job postings.
type JobService struct {
	*resource[*model.Job, *model.CreateJobRequest, *model.UpdateJobRequest]
}

// AssignmentStatus derives the crew staffing badge of a job from its assignment counts.
func (s *JobService) AssignmentStatus(job *model.Job, counts *model.AssignmentCounts) model.AssignmentStatus {
	if job == nil {
		return model.AssignmentNeedsAssignment
	}
	return model.ClassifyAssignment(counts, job.PhotographersNeeded, job.VideographersNeeded)
}
