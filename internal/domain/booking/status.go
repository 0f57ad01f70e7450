package booking

import "github.com/sparklewash/carwash-booking/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var Statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

func IsValidStatus(s Status) bool {
	for _, st := range Statuses {
		if st == s {
			return true
		}
	}
	return false
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Transition policy
// ===============================

// TransitionPolicy decides whether a status change is allowed. The
// strictness of the lifecycle is a deployment choice, so the policy is
// swappable rather than hard-coded into the update path.
type TransitionPolicy interface {
	CanTransition(from, to Status) error
}

// LenientPolicy accepts any transition between valid statuses. This is
// how the admin update path has historically behaved.
type LenientPolicy struct{}

func (LenientPolicy) CanTransition(from, to Status) error {
	if !IsValidStatus(to) {
		return httperr.ErrBusiness("invalid_status")
	}
	return nil
}

// StrictPolicy enforces the natural lifecycle:
// pending -> confirmed|cancelled, confirmed -> in-progress|cancelled,
// in-progress -> completed|cancelled; completed and cancelled are terminal.
type StrictPolicy struct{}

var strictEdges = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

func (StrictPolicy) CanTransition(from, to Status) error {
	if !IsValidStatus(to) {
		return httperr.ErrBusiness("invalid_status")
	}
	if from == to {
		return nil
	}
	for _, next := range strictEdges[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_transition")
}

func PolicyFor(strict bool) TransitionPolicy {
	if strict {
		return StrictPolicy{}
	}
	return LenientPolicy{}
}
