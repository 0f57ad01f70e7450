package booking

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sparklewash/carwash-booking/internal/audit"
	domain "github.com/sparklewash/carwash-booking/internal/domain/booking"
	"github.com/sparklewash/carwash-booking/internal/models"
	"github.com/sparklewash/carwash-booking/internal/notify"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type UpdateStatusInput struct {
	BookingID uint
	NewStatus string
	ActorID   uint
}

type UpdateStatusResult struct {
	Booking *models.Booking

	// EmailSent reports whether the confirmation dispatch succeeded.
	// EmailError carries the operator-facing warning when it did not;
	// the status change itself is never rolled back over it.
	EmailSent  bool
	EmailError string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateStatus struct {
	repo   domain.Repository
	mailer notify.Mailer
	policy domain.TransitionPolicy
	audit  *audit.Dispatcher
	log    zerolog.Logger
}

func NewUpdateStatus(
	repo domain.Repository,
	mailer notify.Mailer,
	policy domain.TransitionPolicy,
	auditDispatcher *audit.Dispatcher,
	log zerolog.Logger,
) *UpdateStatus {
	return &UpdateStatus{
		repo:   repo,
		mailer: mailer,
		policy: policy,
		audit:  auditDispatcher,
		log:    log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*UpdateStatusResult, error) {

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}

	oldStatus := b.Status

	notifyCustomer, err := domain.Transition(b, domain.Status(in.NewStatus), uc.policy)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	result := &UpdateStatusResult{Booking: b}

	if notifyCustomer {
		if err := uc.mailer.SendBookingConfirmation(ctx, b); err != nil {
			uc.log.Warn().
				Err(err).
				Uint("booking_id", b.ID).
				Str("email", b.CustomerEmail).
				Msg("confirmation email failed")
			result.EmailError = "confirmation email could not be sent"
		} else {
			result.EmailSent = true
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "booking_status_changed",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]string{
			"from": oldStatus,
			"to":   b.Status,
		},
	})

	return result, nil
}
