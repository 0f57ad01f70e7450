package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/sparklewash/carwash-booking/internal/domain/booking"
	"github.com/sparklewash/carwash-booking/internal/httperr"
	"github.com/sparklewash/carwash-booking/internal/infra/repository"
	"github.com/sparklewash/carwash-booking/internal/models"
)

type stubMailer struct {
	calls int
	fail  bool
}

func (m *stubMailer) SendBookingConfirmation(_ context.Context, _ *models.Booking) error {
	m.calls++
	if m.fail {
		return errors.New("provider down")
	}
	return nil
}

func seedBooking(t *testing.T, db *gorm.DB, status string) *models.Booking {
	t.Helper()

	b := &models.Booking{
		Reference:     uuid.NewString(),
		UserID:        1,
		CustomerName:  "Dana Cruz",
		CustomerEmail: "dana@example.com",
		CustomerPhone: "+63 917 000 0000",
		VehicleType:   "sedan",
		VehiclePlate:  "ABC-1234",
		ServiceLabel:  "Premium Wash",
		Price:         25,
		BookingDate:   "2026-03-15",
		BookingTime:   "09:00",
		Status:        status,
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

func newUpdateUC(db *gorm.DB, mailer *stubMailer, policy domain.TransitionPolicy) *UpdateStatus {
	return NewUpdateStatus(
		repository.NewBookingGormRepository(db),
		mailer,
		policy,
		newTestDispatcher(db),
		zerolog.Nop(),
	)
}

func TestUpdateStatus_ConfirmSendsExactlyOneEmail(t *testing.T) {
	db := newTestDB(t)
	b := seedBooking(t, db, "pending")
	mailer := &stubMailer{}
	uc := newUpdateUC(db, mailer, domain.LenientPolicy{})
	ctx := context.Background()

	result, err := uc.Execute(ctx, UpdateStatusInput{
		BookingID: b.ID,
		NewStatus: "confirmed",
		ActorID:   42,
	})
	require.NoError(t, err)
	assert.True(t, result.EmailSent)
	assert.Empty(t, result.EmailError)
	assert.Equal(t, 1, mailer.calls)

	// Confirming again notifies nobody.
	result, err = uc.Execute(ctx, UpdateStatusInput{
		BookingID: b.ID,
		NewStatus: "confirmed",
		ActorID:   42,
	})
	require.NoError(t, err)
	assert.False(t, result.EmailSent)
	assert.Equal(t, 1, mailer.calls)
}

func TestUpdateStatus_NonConfirmTransitionsSendNothing(t *testing.T) {
	db := newTestDB(t)
	mailer := &stubMailer{}
	uc := newUpdateUC(db, mailer, domain.LenientPolicy{})
	ctx := context.Background()

	for _, to := range []string{"in-progress", "completed", "cancelled"} {
		b := seedBooking(t, db, "pending")

		_, err := uc.Execute(ctx, UpdateStatusInput{BookingID: b.ID, NewStatus: to, ActorID: 42})
		require.NoError(t, err)
	}

	assert.Zero(t, mailer.calls)
}

func TestUpdateStatus_MailFailureKeepsTheStatusChange(t *testing.T) {
	db := newTestDB(t)
	b := seedBooking(t, db, "pending")
	mailer := &stubMailer{fail: true}
	uc := newUpdateUC(db, mailer, domain.LenientPolicy{})

	result, err := uc.Execute(context.Background(), UpdateStatusInput{
		BookingID: b.ID,
		NewStatus: "confirmed",
		ActorID:   42,
	})
	require.NoError(t, err)

	assert.False(t, result.EmailSent)
	assert.NotEmpty(t, result.EmailError)

	var stored models.Booking
	require.NoError(t, db.First(&stored, b.ID).Error)
	assert.Equal(t, "confirmed", stored.Status)
}

func TestUpdateStatus_StrictPolicyRejection(t *testing.T) {
	db := newTestDB(t)
	b := seedBooking(t, db, "completed")
	mailer := &stubMailer{}
	uc := newUpdateUC(db, mailer, domain.StrictPolicy{})

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		BookingID: b.ID,
		NewStatus: "pending",
		ActorID:   42,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))

	var stored models.Booking
	require.NoError(t, db.First(&stored, b.ID).Error)
	assert.Equal(t, "completed", stored.Status)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	db := newTestDB(t)
	b := seedBooking(t, db, "pending")
	uc := newUpdateUC(db, &stubMailer{}, domain.LenientPolicy{})

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		BookingID: b.ID,
		NewStatus: "soaked",
		ActorID:   42,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestUpdateStatus_MissingBooking(t *testing.T) {
	db := newTestDB(t)
	uc := newUpdateUC(db, &stubMailer{}, domain.LenientPolicy{})

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		BookingID: 9999,
		NewStatus: "confirmed",
		ActorID:   42,
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
