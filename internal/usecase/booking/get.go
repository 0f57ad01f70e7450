package booking

import (
	"context"

	domain "github.com/sparklewash/carwash-booking/internal/domain/booking"
	"github.com/sparklewash/carwash-booking/internal/httperr"
	"github.com/sparklewash/carwash-booking/internal/models"
)

// GetBooking returns one booking to its owner or to an admin. Anyone
// else gets a forbidden error and learns nothing about the record.
type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

func (uc *GetBooking) Execute(
	ctx context.Context,
	bookingID uint,
	actor *models.User,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.UserID != actor.ID && !actor.IsAdmin() {
		return nil, httperr.ErrBusiness("forbidden")
	}

	return b, nil
}
