package booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sparklewash/carwash-booking/internal/audit"
	domain "github.com/sparklewash/carwash-booking/internal/domain/booking"
	"github.com/sparklewash/carwash-booking/internal/httperr"
	"github.com/sparklewash/carwash-booking/internal/infra/repository"
	"github.com/sparklewash/carwash-booking/internal/integrations/openweather"
	"github.com/sparklewash/carwash-booking/internal/models"
	"github.com/sparklewash/carwash-booking/internal/weather"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Service{},
		&models.Booking{},
		&models.AuditLog{},
	))
	return db
}

func newTestDispatcher(db *gorm.DB) *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(db), zerolog.Nop())
}

func newCreateUC(t *testing.T, db *gorm.DB) *CreateBooking {
	return newCreateUCWithWeather(t, db, nil)
}

func newCreateUCWithWeather(t *testing.T, db *gorm.DB, weatherSvc *weather.Service) *CreateBooking {
	t.Helper()

	uc := NewCreateBooking(
		repository.NewBookingGormRepository(db),
		weatherSvc,
		newTestDispatcher(db),
		time.UTC,
	)
	uc.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	return uc
}

func stubWeather(t *testing.T, status int, body string) *weather.Service {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client := openweather.NewClientWithBaseURL(srv.URL, "test-key", time.Second)
	return weather.NewService(client, nil, "Manila", zerolog.Nop())
}

func seedService(t *testing.T, db *gorm.DB) *models.Service {
	t.Helper()

	svc := models.Service{
		Name:     "Premium Wash",
		Category: "package",
		Price:    25,
		Active:   true,
	}
	require.NoError(t, db.Create(&svc).Error)
	return &svc
}

func validInput(serviceID uint) CreateBookingInput {
	return CreateBookingInput{
		UserID:        1,
		CustomerName:  "Dana Cruz",
		CustomerEmail: "dana@example.com",
		CustomerPhone: "+63 917 000 0000",
		VehicleType:   "sedan",
		VehiclePlate:  "ABC-1234",
		ServiceID:     serviceID,
		Date:          "2026-03-15",
		Time:          "09:00",
		Notes:         "back seat needs attention",
	}
}

func TestCreateBooking_Success(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db)
	uc := newCreateUC(t, db)

	b, err := uc.Execute(context.Background(), validInput(svc.ID))
	require.NoError(t, err)

	assert.NotZero(t, b.ID)
	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, string(domain.StatusPending), b.Status)
	assert.Equal(t, "Premium Wash", b.ServiceLabel)
	assert.InDelta(t, 25.0, b.Price, 0.001)
	require.NotNil(t, b.ServiceID)
	assert.Equal(t, svc.ID, *b.ServiceID)
}

func TestCreateBooking_SnapshotSurvivesCatalogEdits(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db)
	uc := newCreateUC(t, db)

	b, err := uc.Execute(context.Background(), validInput(svc.ID))
	require.NoError(t, err)

	// Reprice and rename the catalog entry after the fact.
	require.NoError(t, db.Model(svc).Updates(map[string]any{
		"price": 99.0,
		"name":  "Mega Wash",
	}).Error)

	var stored models.Booking
	require.NoError(t, db.First(&stored, b.ID).Error)
	assert.Equal(t, "Premium Wash", stored.ServiceLabel)
	assert.InDelta(t, 25.0, stored.Price, 0.001)
}

func TestCreateBooking_RejectsPastDate(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db)
	uc := newCreateUC(t, db)

	in := validInput(svc.ID)
	in.Date = "2026-03-09"

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "date_in_past"))
}

func TestCreateBooking_RejectsUnknownVehicleType(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db)
	uc := newCreateUC(t, db)

	in := validInput(svc.ID)
	in.VehicleType = "hovercraft"

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_vehicle"))
}

func TestCreateBooking_RejectsOffGridTime(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db)
	uc := newCreateUC(t, db)

	in := validInput(svc.ID)
	in.Time = "09:30"

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_time_slot"))
}

func TestCreateBooking_RejectsInactiveService(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db)
	require.NoError(t, db.Model(svc).Update("active", false).Error)
	uc := newCreateUC(t, db)

	_, err := uc.Execute(context.Background(), validInput(svc.ID))
	assert.True(t, httperr.IsBusiness(err, "service_inactive"))
}

func TestCreateBooking_CapturesWeatherSnapshot(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db)
	w := stubWeather(t, http.StatusOK, `{
		"name": "Manila",
		"main": {"temp": 29.4, "humidity": 60},
		"weather": [{"main": "Clouds", "description": "few clouds", "icon": "02d"}],
		"wind": {"speed": 3.5}
	}`)
	uc := newCreateUCWithWeather(t, db, w)

	b, err := uc.Execute(context.Background(), validInput(svc.ID))
	require.NoError(t, err)

	var stored models.Booking
	require.NoError(t, db.First(&stored, b.ID).Error)
	assert.Equal(t, "Clouds", stored.WeatherCondition)
	assert.Equal(t, "few clouds", stored.WeatherDescription)
	require.NotNil(t, stored.WeatherTemperature)
	assert.InDelta(t, 29.0, *stored.WeatherTemperature, 0.001)
}

func TestCreateBooking_WeatherFailureDoesNotBlockCreation(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db)
	w := stubWeather(t, http.StatusBadGateway, "upstream broke")
	uc := newCreateUCWithWeather(t, db, w)

	b, err := uc.Execute(context.Background(), validInput(svc.ID))
	require.NoError(t, err)

	var stored models.Booking
	require.NoError(t, db.First(&stored, b.ID).Error)
	assert.Empty(t, stored.WeatherCondition)
	assert.Empty(t, stored.WeatherDescription)
	assert.Nil(t, stored.WeatherTemperature)
	assert.Equal(t, string(domain.StatusPending), stored.Status)
}

func TestCreateBooking_FullSlot(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db)
	uc := newCreateUC(t, db)
	ctx := context.Background()

	for i := 0; i < domain.SlotCapacity; i++ {
		in := validInput(svc.ID)
		in.UserID = uint(i + 1)
		_, err := uc.Execute(ctx, in)
		require.NoError(t, err)
	}

	_, err := uc.Execute(ctx, validInput(svc.ID))
	assert.True(t, httperr.IsBusiness(err, "slot_full"))
}
