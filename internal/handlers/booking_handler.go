package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sparklewash/carwash-booking/internal/httperr"
	"github.com/sparklewash/carwash-booking/internal/httpresp"
	"github.com/sparklewash/carwash-booking/internal/middleware"
	"github.com/sparklewash/carwash-booking/internal/models"
	"github.com/sparklewash/carwash-booking/internal/pagination"
	ucBooking "github.com/sparklewash/carwash-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db       *gorm.DB
	createUC *ucBooking.CreateBooking
	getUC    *ucBooking.GetBooking
	deleteUC *ucBooking.DeleteBooking
}

func NewBookingHandler(
	db *gorm.DB,
	createUC *ucBooking.CreateBooking,
	getUC *ucBooking.GetBooking,
	deleteUC *ucBooking.DeleteBooking,
) *BookingHandler {
	return &BookingHandler{
		db:       db,
		createUC: createUC,
		getUC:    getUC,
		deleteUC: deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	VehicleType   string `json:"vehicle_type" binding:"required"`
	VehiclePlate  string `json:"vehicle_plate" binding:"required"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	Notes         string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:        userID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		VehicleType:   req.VehicleType,
		VehiclePlate:  req.VehiclePlate,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	})
	if err != nil {
		if code := httperr.BusinessCode(err); code != "" {
			httperr.BadRequest(c, code, httperr.BusinessMessage(code))
			return
		}
		httperr.Internal(c, "failed_to_create_booking", "Could not create the booking.")
		return
	}

	httpresp.Created(c, created)
}

// ======================================================
// LIST (own bookings)
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	q := h.db.Model(&models.Booking{}).Where("user_id = ?", userID)
	q = applyBookingFilters(q, c)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not load bookings.")
		return
	}

	page := pagination.ParsePage(c.Query("page"))

	var bookings []models.Booking
	if err := q.
		Order("booking_date DESC, booking_time DESC").
		Scopes(pagination.Scope(page)).
		Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not load bookings.")
		return
	}

	httpresp.Page(c, bookings, total, page, pagination.PerPage)
}

// applyBookingFilters narrows a booking query by the optional status,
// service label and exact-date parameters shared by the listing pages.
func applyBookingFilters(q *gorm.DB, c *gin.Context) *gorm.DB {
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if service := c.Query("service"); service != "" {
		q = q.Where("service_label = ?", service)
	}
	if date := c.Query("date"); date != "" {
		q = q.Where("booking_date = ?", date)
	}
	return q
}

// ======================================================
// DETAIL
// ======================================================

func (h *BookingHandler) Detail(c *gin.Context) {
	actor := c.MustGet(middleware.ContextUser).(*models.User)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	b, err := h.getUC.Execute(c.Request.Context(), uint(id), actor)
	if err != nil {
		writeBookingAccessError(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// DELETE
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	actor := c.MustGet(middleware.ContextUser).(*models.User)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), uint(id), actor); err != nil {
		writeBookingAccessError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Booking deleted successfully."})
}

func writeBookingAccessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
	case httperr.IsBusiness(err, "forbidden"):
		httperr.Forbidden(c, "forbidden", "You do not have permission to access this booking.")
	default:
		httperr.Internal(c, "booking_error", "Could not process the booking.")
	}
}
