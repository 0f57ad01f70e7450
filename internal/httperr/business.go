package httperr

import "errors"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code from a business error, or "" when err
// is something else.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// Human-readable messages for the business codes raised by the booking
// core. Handlers fall back to the bare code for anything unlisted.
var businessMessages = map[string]string{
	"date_in_past":       "Cannot book appointments in the past. Please select a future date.",
	"slot_full":          "This time slot is fully booked. Please select a different time.",
	"invalid_date":       "Invalid booking date.",
	"invalid_time_slot":  "Invalid booking time. Choose one of the available hourly slots.",
	"invalid_status":     "Unknown booking status.",
	"invalid_transition": "The booking cannot move to that status from its current one.",
	"invalid_vehicle":    "Unknown vehicle type.",
	"invalid_category":   "Unknown service category.",
	"service_not_found":  "Selected service not found.",
	"service_inactive":   "Selected service is no longer offered.",
}

func BusinessMessage(code string) string {
	if msg, ok := businessMessages[code]; ok {
		return msg
	}
	return code
}
