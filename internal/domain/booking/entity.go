package booking

import (
	"github.com/sparklewash/carwash-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves a booking to a new status under the given policy.
// The returned flag is true when the change crosses into confirmed,
// which is the one transition with a side effect (confirmation email).
// Re-asserting confirmed on an already confirmed booking notifies nobody.
func Transition(b *models.Booking, to Status, policy TransitionPolicy) (bool, error) {
	from := Status(b.Status)

	if err := policy.CanTransition(from, to); err != nil {
		return false, err
	}

	b.Status = string(to)
	return to == StatusConfirmed && from != StatusConfirmed, nil
}
