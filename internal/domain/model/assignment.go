package model

// AssignmentCounts summarises crew assignments for a job.
type AssignmentCounts struct {
	TotalPhotographers   int `json:"total_photographers"`
	TotalVideographers   int `json:"total_videographers"`
	PendingPhotographers int `json:"pending_photographers"`
	PendingVideographers int `json:"pending_videographers"`
}

// AssignmentStatus is the crew staffing badge shown in the production workflow.
type AssignmentStatus string

const (
	AssignmentFullyAssigned    AssignmentStatus = "fully_assigned"
	AssignmentPendingResponses AssignmentStatus = "pending_responses"
	AssignmentNeedsAssignment  AssignmentStatus = "needs_assignment"
)

// Label returns the human-readable badge text.
func (s AssignmentStatus) Label() string {
	switch s {
	case AssignmentFullyAssigned:
		return "Fully Assigned"
	case AssignmentPendingResponses:
		return "Pending Responses"
	default:
		return "Needs Assignment"
	}
}

// ClassifyAssignment compares assigned crew against what the job needs.
// A job is fully assigned only when both totals match exactly; otherwise any outstanding
// invitation makes it pending.
func ClassifyAssignment(counts *AssignmentCounts, photographersNeeded, videographersNeeded int) AssignmentStatus {
	var c AssignmentCounts
	if counts != nil {
		c = *counts
	}
	if c.TotalPhotographers == photographersNeeded && c.TotalVideographers == videographersNeeded {
		return AssignmentFullyAssigned
	}
	if c.PendingPhotographers+c.PendingVideographers > 0 {
		return AssignmentPendingResponses
	}
	return AssignmentNeedsAssignment
}
