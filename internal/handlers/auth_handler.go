package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sparklewash/carwash-booking/internal/config"
	"github.com/sparklewash/carwash-booking/internal/httperr"
	"github.com/sparklewash/carwash-booking/internal/integrations/supabase"
	"github.com/sparklewash/carwash-booking/internal/models"
	"github.com/sparklewash/carwash-booking/internal/validators"
)

// AuthHandler delegates identity to Supabase and keeps a local mirror
// of the account. Auth-provider failure here IS surfaced as a blocking
// error: without the provider no identity can be established.
type AuthHandler struct {
	db       *gorm.DB
	config   *config.Config
	supabase *supabase.Client
	log      zerolog.Logger
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, sb *supabase.Client, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, supabase: sb, log: log}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type LoginRequest struct {
	// Email or username. Emails authenticate against Supabase, bare
	// usernames against the local password hash.
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type LogoutRequest struct {
	SupabaseAccessToken string `json:"supabase_access_token"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	authUser, err := h.supabase.SignUp(c.Request.Context(), email, req.Password, &supabase.SignUpMetadata{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		h.writeSupabaseError(c, err)
		return
	}

	user, err := h.mirrorAccount(email, req.FirstName, req.LastName, req.Phone, authUser.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_create_account", "Could not create the local account.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
		"message": "Account created! Please check your email for verification.",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	identifier := strings.TrimSpace(req.Identifier)

	var (
		user *models.User
		err  error
	)

	if strings.Contains(identifier, "@") {
		user, err = h.loginWithSupabase(c, strings.ToLower(identifier), req.Password)
	} else {
		user, err = h.loginWithLocalPassword(identifier, req.Password)
	}
	if err != nil {
		switch {
		case errors.Is(err, supabase.ErrInvalidCredentials), errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		default:
			h.writeSupabaseError(c, err)
		}
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue a session token.")
		return
	}

	redirect := "/api/dashboard"
	if user.IsAdmin() {
		redirect = "/api/admin/dashboard"
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"is_admin": user.IsAdmin(),
		},
		"token":    token,
		"redirect": redirect,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	_ = c.ShouldBindJSON(&req)

	// Provider sign-out is best-effort; the local session token simply
	// expires client-side.
	if req.SupabaseAccessToken != "" {
		if err := h.supabase.SignOut(c.Request.Context(), req.SupabaseAccessToken); err != nil {
			h.log.Warn().Err(err).Msg("supabase sign-out failed")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "You have been logged out."})
}

func (h *AuthHandler) PasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.supabase.Recover(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email))); err != nil {
		h.writeSupabaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent! Check your inbox."})
}

// --------- Login paths ---------

func (h *AuthHandler) loginWithSupabase(c *gin.Context, email, password string) (*models.User, error) {
	session, err := h.supabase.SignInWithPassword(c.Request.Context(), email, password)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = h.db.Preload("Profile").Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// First login on this instance: mirror the provider identity.
		return h.mirrorAccount(email, "", "", "", session.User.ID)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (h *AuthHandler) loginWithLocalPassword(username, password string) (*models.User, error) {
	var user models.User
	if err := h.db.Preload("Profile").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}

	if user.PasswordHash == "" {
		return nil, bcrypt.ErrMismatchedHashAndPassword
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}
	return &user, nil
}

// mirrorAccount upserts the local User + Profile pair for a provider
// identity.
func (h *AuthHandler) mirrorAccount(email, firstName, lastName, phone, supabaseID string) (*models.User, error) {
	var user models.User
	err := h.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		username, err := h.uniqueUsername(email[:strings.Index(email, "@")])
		if err != nil {
			return nil, err
		}
		user = models.User{
			Username:  username,
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
		}
		if err := h.db.Create(&user).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	var profile models.Profile
	err = h.db.Where("user_id = ?", user.ID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{
			UserID:     user.ID,
			Phone:      phone,
			Role:       models.RoleCustomer,
			SupabaseID: supabaseID,
		}
		if err := h.db.Create(&profile).Error; err != nil {
			return nil, err
		}
	} else if err == nil {
		profile.SupabaseID = supabaseID
		if phone != "" {
			profile.Phone = phone
		}
		if err := h.db.Save(&profile).Error; err != nil {
			return nil, err
		}
	} else {
		return nil, err
	}

	user.Profile = &profile
	return &user, nil
}

// uniqueUsername derives a username from the email local-part. Two
// registrations sharing a local-part ("dana@a.com", "dana@b.com") get
// numbered suffixes instead of colliding on the unique index.
func (h *AuthHandler) uniqueUsername(base string) (string, error) {
	username := base
	for i := 1; ; i++ {
		var n int64
		if err := h.db.Model(&models.User{}).
			Where("username = ?", username).
			Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return username, nil
		}
		username = fmt.Sprintf("%s%d", base, i)
	}
}

func (h *AuthHandler) writeSupabaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, supabase.ErrInvalidCredentials):
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
	case errors.Is(err, supabase.ErrRejected):
		httperr.BadRequest(c, "auth_rejected", err.Error())
	default:
		h.log.Error().Err(err).Msg("auth provider failure")
		httperr.BadGateway(c, "auth_provider_unavailable", "The authentication service is unavailable. Please try again.")
	}
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	role := models.RoleCustomer
	if user.Profile != nil {
		role = user.Profile.Role
	}

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"role":  role,
		"staff": user.IsStaff,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
