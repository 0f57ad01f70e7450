package dto

import "github.com/sparklewash/carwash-booking/internal/models"

type BookingListDTO struct {
	ID           uint    `json:"id"`
	Reference    string  `json:"reference"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Status       string  `json:"status"`
	ServiceLabel string  `json:"service_label"`
	VehicleType  string  `json:"vehicle_type"`
	VehiclePlate string  `json:"vehicle_plate"`
	Price        float64 `json:"price"`
}

func BookingList(bookings []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingListDTO{
			ID:           b.ID,
			Reference:    b.Reference,
			Date:         b.BookingDate,
			Time:         b.BookingTime,
			Status:       b.Status,
			ServiceLabel: b.ServiceLabel,
			VehicleType:  b.VehicleType,
			VehiclePlate: b.VehiclePlate,
			Price:        b.Price,
		})
	}
	return out
}
