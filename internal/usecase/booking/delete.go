package booking

import (
	"context"

	"github.com/sparklewash/carwash-booking/internal/audit"
	domain "github.com/sparklewash/carwash-booking/internal/domain/booking"
	"github.com/sparklewash/carwash-booking/internal/httperr"
	"github.com/sparklewash/carwash-booking/internal/models"
)

// DeleteBooking removes a booking outright. Only the owning account or
// an admin may do it; there is no soft delete and no lifecycle gating.
type DeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteBooking(repo domain.Repository, auditDispatcher *audit.Dispatcher) *DeleteBooking {
	return &DeleteBooking{
		repo:  repo,
		audit: auditDispatcher,
	}
}

func (uc *DeleteBooking) Execute(
	ctx context.Context,
	bookingID uint,
	actor *models.User,
) error {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if b.UserID != actor.ID && !actor.IsAdmin() {
		return httperr.ErrBusiness("forbidden")
	}

	if err := uc.repo.DeleteBooking(ctx, b.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return nil
}
