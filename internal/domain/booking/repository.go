package booking

import (
	"context"

	"github.com/sparklewash/carwash-booking/internal/models"
)

// StatusCounts is the read-side rollup over the booking set, recomputed
// on demand. Derived data, never the source of truth.
type StatusCounts struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Confirmed  int64 `json:"confirmed"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
}

type Repository interface {
	// -------- Catalog --------
	GetActiveService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	// -------- Booking (create / slot cap) --------

	// CreateWithSlotCheck counts non-cancelled bookings on the booking's
	// (date, time) pair and inserts only while the count is below
	// SlotCapacity. Check and insert are atomic with respect to
	// concurrent attempts for the same slot. Returns the slot_full
	// business error when the cap is reached.
	CreateWithSlotCheck(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (read / state change) --------
	GetBooking(
		ctx context.Context,
		bookingID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	DeleteBooking(
		ctx context.Context,
		bookingID uint,
	) error

	// -------- Aggregation --------
	CountByStatus(
		ctx context.Context,
	) (StatusCounts, error)

	CountUserByStatus(
		ctx context.Context,
		userID uint,
	) (StatusCounts, error)

	CompletedRevenue(
		ctx context.Context,
	) (float64, error)

	// SlotOccupancy reports non-cancelled bookings per time slot for one
	// date. Slots without bookings are present with a zero count.
	SlotOccupancy(
		ctx context.Context,
		date string,
	) (map[string]int, error)
}
