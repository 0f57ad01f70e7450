package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sparklewash/carwash-booking/internal/audit"
	"github.com/sparklewash/carwash-booking/internal/config"
	"github.com/sparklewash/carwash-booking/internal/domain/booking"
	"github.com/sparklewash/carwash-booking/internal/handlers"
	infraRepo "github.com/sparklewash/carwash-booking/internal/infra/repository"
	"github.com/sparklewash/carwash-booking/internal/integrations/supabase"
	"github.com/sparklewash/carwash-booking/internal/media"
	"github.com/sparklewash/carwash-booking/internal/middleware"
	"github.com/sparklewash/carwash-booking/internal/notify"
	"github.com/sparklewash/carwash-booking/internal/timezone"
	ucBooking "github.com/sparklewash/carwash-booking/internal/usecase/booking"
	ucDashboard "github.com/sparklewash/carwash-booking/internal/usecase/dashboard"
	"github.com/sparklewash/carwash-booking/internal/weather"
)

// Deps carries everything the route tree needs. Handlers receive their
// collaborators explicitly; nothing reaches for a package-level client.
type Deps struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Log      zerolog.Logger
	Weather  *weather.Service
	Supabase *supabase.Client
	Mailer   notify.Mailer
	Uploader *media.Uploader
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)

	auditLogger := audit.New(d.DB)
	auditDispatcher := audit.NewDispatcher(auditLogger, d.Log)

	loc := timezone.Location(d.Cfg.Timezone)
	policy := booking.PolicyFor(d.Cfg.StrictTransitions)

	// ======================================================
	// USE CASES
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		d.Weather,
		auditDispatcher,
		loc,
	)

	updateStatusUC := ucBooking.NewUpdateStatus(
		bookingRepo,
		d.Mailer,
		policy,
		auditDispatcher,
		d.Log,
	)

	getBookingUC := ucBooking.NewGetBooking(bookingRepo)
	deleteBookingUC := ucBooking.NewDeleteBooking(bookingRepo, auditDispatcher)

	statsUC := ucDashboard.NewStats(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Cfg, d.Supabase, d.Log)
	meHandler := handlers.NewMeHandler(d.DB)
	publicHandler := handlers.NewPublicHandler(d.DB, d.Cfg)

	bookingHandler := handlers.NewBookingHandler(
		d.DB,
		createBookingUC,
		getBookingUC,
		deleteBookingUC,
	)

	serviceHandler := handlers.NewServiceHandler(d.DB, d.Uploader, auditDispatcher)
	dashboardHandler := handlers.NewDashboardHandler(d.DB, statsUC, d.Weather)
	adminHandler := handlers.NewAdminHandler(d.DB, statsUC, updateStatusUC, d.Cfg.Timezone)
	weatherHandler := handlers.NewWeatherHandler(d.Weather)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/", publicHandler.Home)
	r.GET("/contact", publicHandler.Contact)

	api := r.Group("/api")
	{
		api.GET("/weather", weatherHandler.Get)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.POST("/auth/password-reset", authHandler.PasswordReset)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/dashboard", dashboardHandler.Show)
			secured.GET("/services", serviceHandler.List)

			secured.GET("/bookings", bookingHandler.List)
			secured.POST("/bookings", bookingHandler.Create)

			// Detail and delete compare the booking owner against the
			// full user record, so it is loaded up front.
			owned := secured.Group("/")
			owned.Use(middleware.LoadUserMiddleware(d.DB))
			{
				owned.GET("/bookings/:id", bookingHandler.Detail)
				owned.DELETE("/bookings/:id", bookingHandler.Delete)
			}
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(d.Cfg), middleware.AdminMiddleware(d.DB))
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/bookings", adminHandler.ListBookings)
			admin.GET("/users", adminHandler.ListUsers)
			admin.PATCH("/bookings/:id/status", adminHandler.UpdateBookingStatus)

			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)
			admin.DELETE("/services/:id", serviceHandler.Delete)
			admin.POST("/services/:id/photo", serviceHandler.UploadPhoto)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
