package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparklewash/carwash-booking/internal/httperr"
	"github.com/sparklewash/carwash-booking/internal/models"
)

func TestLenientPolicy_AllowsAnyValidTarget(t *testing.T) {
	p := LenientPolicy{}

	for _, from := range Statuses {
		for _, to := range Statuses {
			assert.NoError(t, p.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestLenientPolicy_RejectsUnknownStatus(t *testing.T) {
	p := LenientPolicy{}

	err := p.CanTransition(StatusPending, Status("washed"))
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestStrictPolicy_Lifecycle(t *testing.T) {
	p := StrictPolicy{}

	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusInProgress},
		{StatusConfirmed, StatusCancelled},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusCancelled},
	}
	for _, tc := range allowed {
		assert.NoError(t, p.CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	rejected := []struct{ from, to Status }{
		{StatusPending, StatusCompleted},
		{StatusPending, StatusInProgress},
		{StatusConfirmed, StatusCompleted},
		{StatusCompleted, StatusPending},
		{StatusCompleted, StatusConfirmed},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusConfirmed},
	}
	for _, tc := range rejected {
		err := p.CanTransition(tc.from, tc.to)
		assert.True(t, httperr.IsBusiness(err, "invalid_transition"), "%s -> %s", tc.from, tc.to)
	}
}

func TestStrictPolicy_SameStatusIsNoop(t *testing.T) {
	p := StrictPolicy{}

	for _, s := range Statuses {
		assert.NoError(t, p.CanTransition(s, s), "%s -> %s", s, s)
	}
}

func TestPolicyFor(t *testing.T) {
	assert.IsType(t, StrictPolicy{}, PolicyFor(true))
	assert.IsType(t, LenientPolicy{}, PolicyFor(false))
}

func TestTransition_NotifiesOnlyWhenEnteringConfirmed(t *testing.T) {
	b := &models.Booking{Status: string(StatusPending)}

	notify, err := Transition(b, StatusConfirmed, LenientPolicy{})
	require.NoError(t, err)
	assert.True(t, notify)
	assert.Equal(t, string(StatusConfirmed), b.Status)

	// Re-asserting confirmed must not trigger a second notification.
	notify, err = Transition(b, StatusConfirmed, LenientPolicy{})
	require.NoError(t, err)
	assert.False(t, notify)

	notify, err = Transition(b, StatusCompleted, LenientPolicy{})
	require.NoError(t, err)
	assert.False(t, notify)
}

func TestTransition_RejectedChangeLeavesStatusUntouched(t *testing.T) {
	b := &models.Booking{Status: string(StatusCompleted)}

	notify, err := Transition(b, StatusPending, StrictPolicy{})
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
	assert.False(t, notify)
	assert.Equal(t, string(StatusCompleted), b.Status)
}
