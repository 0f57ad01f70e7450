package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sparklewash/carwash-booking/internal/httperr"
)

func TestValidateSlot(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, loc)

	t.Run("future date on a valid slot", func(t *testing.T) {
		assert.NoError(t, ValidateSlot("2026-03-15", "09:00", now, loc))
	})

	t.Run("today is bookable regardless of clock time", func(t *testing.T) {
		// 08:00 has already passed at 14:30; the check is date-only.
		assert.NoError(t, ValidateSlot("2026-03-10", "08:00", now, loc))
	})

	t.Run("yesterday is rejected", func(t *testing.T) {
		err := ValidateSlot("2026-03-09", "09:00", now, loc)
		assert.True(t, httperr.IsBusiness(err, "date_in_past"))
	})

	t.Run("off-grid time is rejected", func(t *testing.T) {
		err := ValidateSlot("2026-03-15", "09:30", now, loc)
		assert.True(t, httperr.IsBusiness(err, "invalid_time_slot"))

		err = ValidateSlot("2026-03-15", "18:00", now, loc)
		assert.True(t, httperr.IsBusiness(err, "invalid_time_slot"))
	})

	t.Run("garbage date is rejected", func(t *testing.T) {
		err := ValidateSlot("15/03/2026", "09:00", now, loc)
		assert.True(t, httperr.IsBusiness(err, "invalid_date"))
	})
}

func TestTimeSlots(t *testing.T) {
	assert.Len(t, TimeSlots, 10)
	assert.Equal(t, "08:00", TimeSlots[0])
	assert.Equal(t, "17:00", TimeSlots[len(TimeSlots)-1])

	assert.True(t, IsValidSlot("12:00"))
	assert.False(t, IsValidSlot("07:00"))
}

func TestSlotKey(t *testing.T) {
	a := SlotKey("2026-03-15", "09:00")
	b := SlotKey("2026-03-15", "09:00")
	c := SlotKey("2026-03-15", "10:00")
	d := SlotKey("2026-03-16", "09:00")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
}
