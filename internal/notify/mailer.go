package notify

import (
	"context"

	"github.com/sparklewash/carwash-booking/internal/models"
)

// Mailer delivers booking confirmation emails. Delivery is best-effort:
// a failed send is reported to the operator but never rolls back the
// status change that triggered it.
type Mailer interface {
	SendBookingConfirmation(ctx context.Context, b *models.Booking) error
}
