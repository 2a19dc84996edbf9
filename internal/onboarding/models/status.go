package models

// Status tracks one onboarding run through its lifecycle. Transitions are
// strictly forward: Pending -> Running -> Completed or Escalated.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusRunning   Status = "RUNNING"
	StatusCompleted Status = "COMPLETED"
	StatusEscalated Status = "ESCALATED"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}
