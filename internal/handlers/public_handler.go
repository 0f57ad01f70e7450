package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/sparklewash/carwash-booking/internal/config"
	"github.com/sparklewash/carwash-booking/internal/httperr"
	"github.com/sparklewash/carwash-booking/internal/models"
)

type PublicHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewPublicHandler(db *gorm.DB, cfg *config.Config) *PublicHandler {
	return &PublicHandler{db: db, config: cfg}
}

// Home is the landing page: signed-in callers are redirected to their
// role's dashboard, everyone else sees the featured wash packages.
func (h *PublicHandler) Home(c *gin.Context) {
	if user := h.currentUser(c); user != nil {
		target := "/api/dashboard"
		if user.IsAdmin() {
			target = "/api/admin/dashboard"
		}
		c.Redirect(http.StatusFound, target)
		return
	}

	var featured []models.Service
	if err := h.db.
		Where("category = ? AND active = ?", models.CategoryPackage, true).
		Order("display_order ASC").
		Limit(3).
		Find(&featured).Error; err != nil {
		httperr.Internal(c, "failed_to_load_home", "Could not load the landing page.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"featured_services": featured,
	})
}

// Contact returns the shop's contact details and opening hours. Static
// payload, the original serves this as a plain page.
func (h *PublicHandler) Contact(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":  "SparkleWash Car Wash",
		"email": "hello@sparklewash.example",
		"phone": "+63 2 8000 0000",
		"hours": gin.H{
			"open":  "08:00",
			"close": "17:00",
			"days":  "Monday to Sunday",
		},
	})
}

// currentUser resolves an optional bearer token. Invalid or absent
// tokens just mean an anonymous visit.
func (h *PublicHandler) currentUser(c *gin.Context) *models.User {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(h.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil
	}

	var user models.User
	if err := h.db.Preload("Profile").First(&user, uint(sub)).Error; err != nil {
		return nil
	}
	return &user
}
