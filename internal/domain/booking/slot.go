package booking

import (
	"hash/fnv"
	"time"

	"github.com/sparklewash/carwash-booking/internal/httperr"
)

const (
	// SlotCapacity is the maximum number of non-cancelled bookings that
	// may share one (date, time) pair.
	SlotCapacity = 5

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// TimeSlots are the ten bookable hours, 08:00 through 17:00.
var TimeSlots = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

func IsValidSlot(t string) bool {
	for _, s := range TimeSlots {
		if s == t {
			return true
		}
	}
	return false
}

// ValidateSlot checks the candidate (date, time) pair: the time must be
// one of the fixed slots and the date must not be before today in loc.
// Date-only comparison, the current time of day does not matter.
func ValidateSlot(date, slot string, now time.Time, loc *time.Location) error {
	if !IsValidSlot(slot) {
		return httperr.ErrBusiness("invalid_time_slot")
	}

	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return httperr.ErrBusiness("invalid_date")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if d.Before(today) {
		return httperr.ErrBusiness("date_in_past")
	}

	return nil
}

// SlotKey maps a (date, time) pair to a stable int64 for the postgres
// advisory lock taken around the capacity check.
func SlotKey(date, slot string) int64 {
	h := fnv.New64a()
	h.Write([]byte(date + " " + slot))
	return int64(h.Sum64())
}
