package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sparklewash/carwash-booking/internal/audit"
	"github.com/sparklewash/carwash-booking/internal/httperr"
	"github.com/sparklewash/carwash-booking/internal/media"
	"github.com/sparklewash/carwash-booking/internal/middleware"
	"github.com/sparklewash/carwash-booking/internal/models"
)

const maxPhotoBytes = 8 << 20

type ServiceHandler struct {
	db       *gorm.DB
	uploader *media.Uploader
	audit    *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, uploader *media.Uploader, auditDispatcher *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{
		db:       db,
		uploader: uploader,
		audit:    auditDispatcher,
	}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Category     string  `json:"category" binding:"required"`
	Price        float64 `json:"price" binding:"min=0"`
	DurationMin  int     `json:"duration_min" binding:"required,min=1"`
	Icon         string  `json:"icon"`
	Features     string  `json:"features"`
	Active       *bool   `json:"active,omitempty"`
	DisplayOrder int     `json:"display_order"`
}

type UpdateServiceRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	DurationMin  *int     `json:"duration_min,omitempty"`
	Icon         *string  `json:"icon,omitempty"`
	Features     *string  `json:"features,omitempty"`
	Active       *bool    `json:"active,omitempty"`
	DisplayOrder *int     `json:"display_order,omitempty"`
}

// --------- Handlers ---------

// List returns active services for the booking pages, packages before
// individual services, in display order.
func (h *ServiceHandler) List(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("active = ?", true)

	if category != "" {
		if !models.IsValidCategory(category) {
			httperr.BadRequest(c, "invalid_category", httperr.BusinessMessage("invalid_category"))
			return
		}
		q = q.Where("category = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.
		Order("category ASC, display_order ASC, price ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not load services.")
		return
	}

	packages := make([]models.Service, 0)
	individual := make([]models.Service, 0)
	for _, s := range services {
		if s.Category == models.CategoryPackage {
			packages = append(packages, s)
		} else {
			individual = append(individual, s)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"packages":            packages,
		"individual_services": individual,
	})
}

func (h *ServiceHandler) Create(c *gin.Context) {
	actor := c.MustGet(middleware.ContextUser).(*models.User)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !models.IsValidCategory(req.Category) {
		httperr.BadRequest(c, "invalid_category", httperr.BusinessMessage("invalid_category"))
		return
	}

	svc := models.Service{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		DurationMin:  req.DurationMin,
		Icon:         req.Icon,
		Features:     req.Features,
		Active:       true,
		DisplayOrder: req.DisplayOrder,
	}
	if svc.Icon == "" {
		svc.Icon = "fa-car"
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create the service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &svc.ID,
	})

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	actor := c.MustGet(middleware.ContextUser).(*models.User)

	svc, ok := h.findService(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Category != nil && !models.IsValidCategory(*req.Category) {
		httperr.BadRequest(c, "invalid_category", httperr.BusinessMessage("invalid_category"))
		return
	}
	if req.DurationMin != nil && *req.DurationMin <= 0 {
		httperr.BadRequest(c, "invalid_duration", "Duration must be positive.")
		return
	}
	if req.Price != nil && *req.Price < 0 {
		httperr.BadRequest(c, "invalid_price", "Price cannot be negative.")
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.DurationMin != nil {
		svc.DurationMin = *req.DurationMin
	}
	if req.Icon != nil {
		svc.Icon = *req.Icon
	}
	if req.Features != nil {
		svc.Features = *req.Features
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}
	if req.DisplayOrder != nil {
		svc.DisplayOrder = *req.DisplayOrder
	}

	if err := h.db.Save(svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update the service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &svc.ID,
	})

	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	actor := c.MustGet(middleware.ContextUser).(*models.User)

	svc, ok := h.findService(c)
	if !ok {
		return
	}

	// Bookings keep their own label/price snapshot, so removing the
	// catalog entry never touches them.
	if err := h.db.Delete(svc).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not delete the service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: &svc.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Service %q deleted successfully.", svc.Name)})
}

// UploadPhoto stores a catalog photo: the image is re-encoded to webp
// and pushed to S3, only the public URL lands in the database.
func (h *ServiceHandler) UploadPhoto(c *gin.Context) {
	if h.uploader == nil || !h.uploader.Configured() {
		httperr.BadRequest(c, "photo_storage_disabled", "Photo storage is not configured.")
		return
	}

	svc, ok := h.findService(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "A photo file is required.")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil || len(raw) > maxPhotoBytes {
		httperr.BadRequest(c, "photo_too_large", "The photo exceeds the size limit.")
		return
	}

	key := fmt.Sprintf("services/%d.webp", svc.ID)
	url, err := h.uploader.UploadServicePhoto(c.Request.Context(), key, raw)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedImage) {
			httperr.BadRequest(c, "unsupported_image", "Only PNG and JPEG photos are accepted.")
			return
		}
		httperr.Internal(c, "failed_to_upload_photo", "Could not store the photo.")
		return
	}

	svc.ImageURL = url
	if err := h.db.Save(svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update the service.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

func (h *ServiceHandler) findService(c *gin.Context) (*models.Service, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return nil, false
	}

	var svc models.Service
	if err := h.db.First(&svc, uint(id)).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return nil, false
	}
	return &svc, true
}
