package domain

import (
	"strings"
	"time"
)

// ApplicationStatus represents the status of an application
type ApplicationStatus string

const (
	ApplicationStatusApplied            ApplicationStatus = "applied"
	ApplicationStatusReviewing          ApplicationStatus = "reviewing"
	ApplicationStatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	ApplicationStatusAccepted           ApplicationStatus = "accepted"
	ApplicationStatusRejected           ApplicationStatus = "rejected"
)

// ParseApplicationStatus normalizes a raw application status string
func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	switch ApplicationStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case ApplicationStatusApplied:
		return ApplicationStatusApplied, nil
	case ApplicationStatusReviewing:
		return ApplicationStatusReviewing, nil
	case ApplicationStatusInterviewScheduled:
		return ApplicationStatusInterviewScheduled, nil
	case ApplicationStatusAccepted:
		return ApplicationStatusAccepted, nil
	case ApplicationStatusRejected:
		return ApplicationStatusRejected, nil
	default:
		return "", ErrValidation
	}
}

// IsTerminal reports whether no further transition is offered from the status
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

// applicationTransitions is the legal transition table. The review chain
// moves forward only; accept/reject are reachable from any non-terminal
// status.
var applicationTransitions = map[ApplicationStatus]map[ApplicationStatus]bool{
	ApplicationStatusApplied: {
		ApplicationStatusReviewing: true,
		ApplicationStatusAccepted:  true,
		ApplicationStatusRejected:  true,
	},
	ApplicationStatusReviewing: {
		ApplicationStatusInterviewScheduled: true,
		ApplicationStatusAccepted:           true,
		ApplicationStatusRejected:           true,
	},
	ApplicationStatusInterviewScheduled: {
		ApplicationStatusAccepted: true,
		ApplicationStatusRejected: true,
	},
}

// CanTransition reports whether moving from one status to another is legal
func CanTransition(from, to ApplicationStatus) bool {
	return applicationTransitions[from][to]
}

// Application represents a student's application to a job. Status
// transitions are backend-authoritative; the portal only requests them,
// and MatchScore is computed server-side and never recomputed here.
type Application struct {
	ID               string            `json:"id"`
	JobID            string            `json:"job_id"`
	StudentProfileID string            `json:"student_profile_id"`
	Status           ApplicationStatus `json:"status"`
	CoverLetter      string            `json:"cover_letter,omitempty"`
	MatchScore       float64           `json:"match_score"`
	AppliedAt        time.Time         `json:"applied_at"`
}

// transition moves the application to the target status if legal
func (a *Application) transition(to ApplicationStatus) error {
	if !CanTransition(a.Status, to) {
		return ErrInvalidTransition
	}
	a.Status = to
	return nil
}

// Review marks the application as under review
func (a *Application) Review() error {
	return a.transition(ApplicationStatusReviewing)
}

// ScheduleInterview marks the application as interview scheduled
func (a *Application) ScheduleInterview() error {
	return a.transition(ApplicationStatusInterviewScheduled)
}

// Accept marks the application as accepted (terminal)
func (a *Application) Accept() error {
	return a.transition(ApplicationStatusAccepted)
}

// Reject marks the application as rejected (terminal)
func (a *Application) Reject() error {
	return a.transition(ApplicationStatusRejected)
}
