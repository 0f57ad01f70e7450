package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sparklewash/carwash-booking/internal/models"
)

const ContextUser = "currentUser"

// AdminMiddleware loads the authenticated account with its profile and
// rejects callers without admin capability. Capability is the platform
// staff flag OR the profile role; a missing profile just means the
// second signal is absent.
func AdminMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet(ContextUserID).(uint)

		var user models.User
		if err := db.Preload("Profile").First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account_not_found"})
			return
		}

		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin_required"})
			return
		}

		c.Set(ContextUser, &user)
		c.Next()
	}
}

// LoadUserMiddleware loads the authenticated account with its profile
// for routes that need ownership checks but not admin capability.
func LoadUserMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet(ContextUserID).(uint)

		var user models.User
		if err := db.Preload("Profile").First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account_not_found"})
			return
		}

		c.Set(ContextUser, &user)
		c.Next()
	}
}
