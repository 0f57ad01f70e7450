package models

import (
	"strings"
	"time"
)

const (
	CategoryPackage    = "package"
	CategoryIndividual = "individual"
)

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Category    string  `gorm:"size:20;not null" json:"category"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`

	Icon     string `gorm:"size:50;default:'fa-car'" json:"icon"`
	Features string `gorm:"type:text" json:"features"`
	ImageURL string `gorm:"size:255" json:"image_url"`

	Active       bool `gorm:"default:true" json:"active"`
	DisplayOrder int  `gorm:"default:0" json:"display_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) FeatureList() []string {
	if s.Features == "" {
		return nil
	}
	parts := strings.Split(s.Features, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func IsValidCategory(category string) bool {
	return category == CategoryPackage || category == CategoryIndividual
}
