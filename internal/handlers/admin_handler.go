package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/sparklewash/carwash-booking/internal/domain/booking"
	"github.com/sparklewash/carwash-booking/internal/httperr"
	"github.com/sparklewash/carwash-booking/internal/middleware"
	"github.com/sparklewash/carwash-booking/internal/models"
	"github.com/sparklewash/carwash-booking/internal/pagination"
	"github.com/sparklewash/carwash-booking/internal/timezone"
	ucBooking "github.com/sparklewash/carwash-booking/internal/usecase/booking"
	ucDashboard "github.com/sparklewash/carwash-booking/internal/usecase/dashboard"
)

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	db             *gorm.DB
	stats          *ucDashboard.Stats
	updateStatusUC *ucBooking.UpdateStatus
	tz             string
}

func NewAdminHandler(
	db *gorm.DB,
	stats *ucDashboard.Stats,
	updateStatusUC *ucBooking.UpdateStatus,
	tz string,
) *AdminHandler {
	return &AdminHandler{
		db:             db,
		stats:          stats,
		updateStatusUC: updateStatusUC,
		tz:             tz,
	}
}

// ======================================================
// DASHBOARD
// ======================================================

type adminUserRow struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsStaff      bool      `json:"is_staff"`
	Role         *string   `json:"role"`
	BookingCount int64     `json:"booking_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type pageSection[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
}

// Dashboard aggregates everything the admin screen needs: status
// counts, completed revenue, per-slot occupancy, and three
// independently paginated sections (bookings, users, services).
func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.stats.Admin(ctx)
	if err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load the dashboard.")
		return
	}

	occupancyDate := c.Query("occupancy_date")
	if occupancyDate == "" {
		occupancyDate = timezone.NowIn(h.tz).Format(domain.DateLayout)
	}

	occupancy, err := h.stats.Occupancy(ctx, occupancyDate)
	if err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load the dashboard.")
		return
	}

	bookings, err := h.bookingsSection(c)
	if err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load bookings.")
		return
	}

	users, err := h.usersSection(c)
	if err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load users.")
		return
	}

	services, err := h.servicesSection(c)
	if err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":          stats,
		"occupancy_date": occupancyDate,
		"occupancy":      occupancy,
		"bookings":       bookings,
		"users":          users,
		"services":       services,
	})
}

func (h *AdminHandler) bookingsSection(c *gin.Context) (*pageSection[models.Booking], error) {
	q := h.db.Model(&models.Booking{})

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"customer_name LIKE ? OR customer_email LIKE ? OR vehicle_plate LIKE ?",
			like, like, like,
		)
	}
	q = applyBookingFilters(q, c)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	page := pagination.ParsePage(c.Query("bookings_page"))

	var bookings []models.Booking
	if err := q.
		Order("booking_date ASC, booking_time ASC").
		Scopes(pagination.Scope(page)).
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return &pageSection[models.Booking]{Data: bookings, Total: total, Page: page}, nil
}

func (h *AdminHandler) usersSection(c *gin.Context) (*pageSection[adminUserRow], error) {
	q := h.db.Model(&models.User{}).
		Select(`users.id, users.username, users.email, users.first_name, users.last_name,
			users.is_staff, users.created_at, profiles.role AS role,
			(SELECT COUNT(*) FROM bookings WHERE bookings.user_id = users.id) AS booking_count`).
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id")

	if search := c.Query("user_search"); search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"users.username LIKE ? OR users.email LIKE ? OR users.first_name LIKE ? OR users.last_name LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	page := pagination.ParsePage(c.Query("users_page"))

	// Admins first, then newest accounts.
	var users []adminUserRow
	if err := q.
		Order("CASE WHEN profiles.role = 'admin' OR users.is_staff THEN 0 ELSE 1 END, users.created_at DESC").
		Scopes(pagination.Scope(page)).
		Scan(&users).Error; err != nil {
		return nil, err
	}

	return &pageSection[adminUserRow]{Data: users, Total: total, Page: page}, nil
}

func (h *AdminHandler) servicesSection(c *gin.Context) (*pageSection[models.Service], error) {
	q := h.db.Model(&models.Service{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	page := pagination.ParsePage(c.Query("services_page"))

	var services []models.Service
	if err := q.
		Order("category ASC, display_order ASC, name ASC").
		Scopes(pagination.Scope(page)).
		Find(&services).Error; err != nil {
		return nil, err
	}

	return &pageSection[models.Service]{Data: services, Total: total, Page: page}, nil
}

// ======================================================
// LIST (all bookings)
// ======================================================

func (h *AdminHandler) ListBookings(c *gin.Context) {
	section, err := h.bookingsSection(c)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not load bookings.")
		return
	}
	c.JSON(http.StatusOK, section)
}

// ======================================================
// LIST (accounts)
// ======================================================

func (h *AdminHandler) ListUsers(c *gin.Context) {
	section, err := h.usersSection(c)
	if err != nil {
		httperr.Internal(c, "failed_to_list_users", "Could not load users.")
		return
	}
	c.JSON(http.StatusOK, section)
}

// ======================================================
// STATUS UPDATE
// ======================================================

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminHandler) UpdateBookingStatus(c *gin.Context) {
	actor := c.MustGet(middleware.ContextUser).(*models.User)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "No status provided.")
		return
	}

	result, err := h.updateStatusUC.Execute(c.Request.Context(), ucBooking.UpdateStatusInput{
		BookingID: uint(id),
		NewStatus: req.Status,
		ActorID:   actor.ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
		default:
			if code := httperr.BusinessCode(err); code != "" {
				httperr.BadRequest(c, code, httperr.BusinessMessage(code))
				return
			}
			httperr.Internal(c, "failed_to_update_status", "Could not update the booking status.")
		}
		return
	}

	resp := gin.H{
		"booking":    result.Booking,
		"email_sent": result.EmailSent,
	}
	if result.EmailError != "" {
		resp["warning"] = result.EmailError
	}

	c.JSON(http.StatusOK, resp)
}
