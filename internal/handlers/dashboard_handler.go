package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/sparklewash/carwash-booking/internal/domain/booking"
	"github.com/sparklewash/carwash-booking/internal/dto"
	"github.com/sparklewash/carwash-booking/internal/httperr"
	"github.com/sparklewash/carwash-booking/internal/middleware"
	"github.com/sparklewash/carwash-booking/internal/models"
	ucDashboard "github.com/sparklewash/carwash-booking/internal/usecase/dashboard"
	"github.com/sparklewash/carwash-booking/internal/weather"
)

type DashboardHandler struct {
	db      *gorm.DB
	stats   *ucDashboard.Stats
	weather *weather.Service
}

func NewDashboardHandler(db *gorm.DB, stats *ucDashboard.Stats, weatherSvc *weather.Service) *DashboardHandler {
	return &DashboardHandler{
		db:      db,
		stats:   stats,
		weather: weatherSvc,
	}
}

// Show renders the customer dashboard: own booking counts, the next
// upcoming washes, and today's weather advisory.
func (h *DashboardHandler) Show(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	counts, err := h.stats.User(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load the dashboard.")
		return
	}

	var upcoming []models.Booking
	if err := h.db.
		Where(
			"user_id = ? AND status IN ?",
			userID,
			[]string{
				string(domain.StatusPending),
				string(domain.StatusConfirmed),
				string(domain.StatusInProgress),
			},
		).
		Order("booking_date ASC, booking_time ASC").
		Limit(10).
		Find(&upcoming).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load the dashboard.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_bookings":     counts.Total,
		"pending_bookings":   counts.Pending,
		"completed_bookings": counts.Completed,
		"upcoming":           dto.BookingList(upcoming),
		"weather":            h.weather.Advise(c.Request.Context(), ""),
	})
}
