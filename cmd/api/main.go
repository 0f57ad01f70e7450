package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/sparklewash/carwash-booking/internal/config"
	dbpkg "github.com/sparklewash/carwash-booking/internal/db"
	"github.com/sparklewash/carwash-booking/internal/integrations/openweather"
	"github.com/sparklewash/carwash-booking/internal/integrations/supabase"
	"github.com/sparklewash/carwash-booking/internal/media"
	"github.com/sparklewash/carwash-booking/internal/middleware"
	"github.com/sparklewash/carwash-booking/internal/notify"
	"github.com/sparklewash/carwash-booking/internal/routes"
	"github.com/sparklewash/carwash-booking/internal/weather"
)

func main() {

	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	// Redis is optional; without it the weather advisory just skips
	// caching.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}

	weatherClient := openweather.NewClient(cfg.OpenWeatherAPIKey, 5*time.Second)
	weatherSvc := weather.NewService(weatherClient, redisClient, cfg.OpenWeatherCity, log)

	supabaseClient := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, 10*time.Second)

	mailer := notify.NewEmailJSMailer(
		cfg.EmailJSServiceID,
		cfg.EmailJSTemplateID,
		cfg.EmailJSPublicKey,
		cfg.EmailJSPrivateKey,
	)

	uploader := media.NewUploader(
		cfg.S3Region,
		cfg.S3AccessKey,
		cfg.S3SecretKey,
		cfg.S3Bucket,
		cfg.S3BaseURL,
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware())
	r.Use(metrics.Handler())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Cfg:      cfg,
		Log:      log,
		Weather:  weatherSvc,
		Supabase: supabaseClient,
		Mailer:   mailer,
		Uploader: uploader,
	})

	log.Info().Str("addr", cfg.Addr()).Msg("server starting")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
