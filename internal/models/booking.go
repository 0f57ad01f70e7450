package models

import "time"

type Booking struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CustomerName  string `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail string `gorm:"size:100;not null" json:"customer_email"`
	CustomerPhone string `gorm:"size:50;not null" json:"customer_phone"`

	VehicleType  string `gorm:"size:20;not null" json:"vehicle_type"`
	VehiclePlate string `gorm:"size:50;not null" json:"vehicle_plate"`

	// ServiceID keeps provenance to the catalog entry; ServiceLabel and
	// Price are the immutable snapshot taken at creation time. Catalog
	// edits never touch existing bookings.
	ServiceID    *uint   `json:"service_id"`
	ServiceLabel string  `gorm:"size:100;not null" json:"service_label"`
	Price        float64 `json:"price"`

	BookingDate string `gorm:"size:10;index;not null" json:"booking_date"`
	BookingTime string `gorm:"size:5;not null" json:"booking_time"`

	Status string `gorm:"size:20;index;default:'pending'" json:"status"`

	WeatherCondition   string   `gorm:"size:100" json:"weather_condition,omitempty"`
	WeatherTemperature *float64 `json:"weather_temperature,omitempty"`
	WeatherDescription string   `gorm:"size:255" json:"weather_description,omitempty"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var VehicleTypes = []string{"sedan", "suv", "truck", "van", "motorcycle"}

func IsValidVehicleType(vt string) bool {
	for _, v := range VehicleTypes {
		if v == vt {
			return true
		}
	}
	return false
}
