package dashboard

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/sparklewash/carwash-booking/internal/domain/booking"
	"github.com/sparklewash/carwash-booking/internal/infra/repository"
	"github.com/sparklewash/carwash-booking/internal/models"
)

func newTestStats(t *testing.T) (*Stats, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Booking{}))

	return NewStats(repository.NewBookingGormRepository(db)), db
}

func seedBookings(t *testing.T, db *gorm.DB) {
	t.Helper()

	rows := []struct {
		userID uint
		date   string
		slot   string
		status string
		price  float64
	}{
		{1, "2026-03-15", "08:00", "pending", 25},
		{1, "2026-03-15", "09:00", "pending", 25},
		{1, "2026-03-15", "10:00", "confirmed", 25},
		{2, "2026-03-16", "08:00", "completed", 30},
		{2, "2026-03-16", "09:00", "completed", 40},
		{2, "2026-03-16", "10:00", "cancelled", 25},
	}

	for i, row := range rows {
		b := models.Booking{
			Reference:     fmt.Sprintf("stats-%d", i),
			UserID:        row.userID,
			CustomerName:  "Dana Cruz",
			CustomerEmail: "dana@example.com",
			CustomerPhone: "+63 917 000 0000",
			VehicleType:   "sedan",
			VehiclePlate:  "ABC-1234",
			ServiceLabel:  "Premium Wash",
			Price:         row.price,
			BookingDate:   row.date,
			BookingTime:   row.slot,
			Status:        row.status,
		}
		require.NoError(t, db.Create(&b).Error)
	}
}

func TestStats_Admin(t *testing.T) {
	stats, db := newTestStats(t)
	seedBookings(t, db)

	out, err := stats.Admin(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(6), out.Counts.Total)
	assert.Equal(t, int64(2), out.Counts.Pending)
	assert.Equal(t, int64(1), out.Counts.Confirmed)
	assert.Equal(t, int64(2), out.Counts.Completed)
	assert.Equal(t, int64(1), out.Counts.Cancelled)

	// Revenue counts completed bookings only.
	assert.InDelta(t, 70.0, out.Revenue, 0.001)
}

func TestStats_User(t *testing.T) {
	stats, db := newTestStats(t)
	seedBookings(t, db)

	counts, err := stats.User(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, int64(3), counts.Total)
	assert.Equal(t, int64(2), counts.Completed)
	assert.Equal(t, int64(1), counts.Cancelled)
	assert.Equal(t, int64(0), counts.Pending)
}

func TestStats_Occupancy(t *testing.T) {
	stats, db := newTestStats(t)
	seedBookings(t, db)

	occupancy, err := stats.Occupancy(context.Background(), "2026-03-15")
	require.NoError(t, err)

	assert.Len(t, occupancy, len(domain.TimeSlots))
	assert.Equal(t, 1, occupancy["08:00"])
	assert.Equal(t, 1, occupancy["09:00"])
	assert.Equal(t, 1, occupancy["10:00"])
	assert.Equal(t, 0, occupancy["11:00"])
}
