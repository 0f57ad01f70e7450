package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sparklewash/carwash-booking/internal/audit"
	domain "github.com/sparklewash/carwash-booking/internal/domain/booking"
	"github.com/sparklewash/carwash-booking/internal/httperr"
	"github.com/sparklewash/carwash-booking/internal/models"
	"github.com/sparklewash/carwash-booking/internal/weather"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID uint

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	VehicleType  string
	VehiclePlate string

	ServiceID uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo    domain.Repository
	weather *weather.Service
	audit   *audit.Dispatcher
	loc     *time.Location
	now     func() time.Time
}

// NewCreateBooking wires the creation path. weatherSvc may be nil; the
// booking then simply carries no weather snapshot.
func NewCreateBooking(
	repo domain.Repository,
	weatherSvc *weather.Service,
	auditDispatcher *audit.Dispatcher,
	loc *time.Location,
) *CreateBooking {
	return &CreateBooking{
		repo:    repo,
		weather: weatherSvc,
		audit:   auditDispatcher,
		loc:     loc,
		now:     time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if !models.IsValidVehicleType(in.VehicleType) {
		return nil, httperr.ErrBusiness("invalid_vehicle")
	}

	// Past dates and off-grid times are rejected before anything is
	// read; "date_in_past" and "slot_full" stay distinguishable.
	if err := domain.ValidateSlot(in.Date, in.Time, uc.now().In(uc.loc), uc.loc); err != nil {
		return nil, err
	}

	svc, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		Reference: uuid.NewString(),
		UserID:    in.UserID,

		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,

		VehicleType:  in.VehicleType,
		VehiclePlate: in.VehiclePlate,

		// Snapshot: label and price are copied so later catalog edits
		// never reprice this booking.
		ServiceID:    &svc.ID,
		ServiceLabel: svc.Name,
		Price:        svc.Price,

		BookingDate: in.Date,
		BookingTime: in.Time,
		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
	}

	uc.attachWeather(ctx, b)

	if err := uc.repo.CreateWithSlotCheck(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

// attachWeather records a best-effort snapshot of the conditions at
// creation time. Any weather failure leaves the fields empty; it never
// affects whether the booking is accepted.
func (uc *CreateBooking) attachWeather(ctx context.Context, b *models.Booking) {
	if uc.weather == nil {
		return
	}

	adv := uc.weather.Advise(ctx, "")
	if adv.Error != "" {
		return
	}

	temp := float64(adv.Temperature)
	b.WeatherCondition = adv.Condition
	b.WeatherTemperature = &temp
	b.WeatherDescription = adv.Description
}
