package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/sparklewash/carwash-booking/internal/integrations/openweather"
)

func stubProvider(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func observationBody(condition, description string, temp float64) string {
	return `{
		"name": "Manila",
		"main": {"temp": ` + strconv.FormatFloat(temp, 'f', -1, 64) + `, "humidity": 60},
		"weather": [{"main": "` + condition + `", "description": "` + description + `", "icon": "01d"}],
		"wind": {"speed": 3.5}
	}`
}

func newStubService(t *testing.T, status int, body string) *Service {
	srv := stubProvider(t, status, body)
	client := openweather.NewClientWithBaseURL(srv.URL, "test-key", time.Second)
	return NewService(client, nil, "Manila", zerolog.Nop())
}

func TestAdvise_RainIsNotRecommended(t *testing.T) {
	svc := newStubService(t, http.StatusOK, observationBody("Rain", "light rain", 27))

	adv := svc.Advise(context.Background(), "")

	assert.False(t, adv.GoodForWash)
	assert.Equal(t, "Not recommended - Rain expected. Consider rescheduling.", adv.Recommendation)
	assert.Equal(t, "Manila", adv.Location)
	assert.Equal(t, 27, adv.Temperature)
	assert.Empty(t, adv.Error)
}

func TestAdvise_DustIsNotIdeal(t *testing.T) {
	svc := newStubService(t, http.StatusOK, observationBody("Dust", "dust whirls", 30))

	adv := svc.Advise(context.Background(), "")

	assert.False(t, adv.GoodForWash)
	assert.Equal(t, "Not ideal - Dusty conditions. Your car might get dirty quickly.", adv.Recommendation)
}

func TestAdvise_TemperatureCaveats(t *testing.T) {
	hot := newStubService(t, http.StatusOK, observationBody("Clear", "clear sky", 38)).
		Advise(context.Background(), "")
	assert.True(t, hot.GoodForWash)
	assert.Equal(t, "Good for a car wash, but very hot! Early morning or late afternoon is better.", hot.Recommendation)

	cool := newStubService(t, http.StatusOK, observationBody("Clear", "clear sky", 10)).
		Advise(context.Background(), "")
	assert.True(t, cool.GoodForWash)
	assert.Equal(t, "Good for a car wash, but quite cool. Dress warmly!", cool.Recommendation)

	mild := newStubService(t, http.StatusOK, observationBody("Clouds", "few clouds", 26)).
		Advise(context.Background(), "")
	assert.True(t, mild.GoodForWash)
	assert.Equal(t, "Perfect weather for a car wash!", mild.Recommendation)
}

func TestAdvise_ProviderFailureDegrades(t *testing.T) {
	svc := newStubService(t, http.StatusBadGateway, "upstream broke")

	adv := svc.Advise(context.Background(), "")

	assert.NotEmpty(t, adv.Error)
	assert.Equal(t, "Weather conditions unavailable", adv.Recommendation)
	assert.False(t, adv.GoodForWash)
}

func TestAdvise_MissingKeyDegrades(t *testing.T) {
	client := openweather.NewClient("", time.Second)
	svc := NewService(client, nil, "Manila", zerolog.Nop())

	adv := svc.Advise(context.Background(), "")

	assert.NotEmpty(t, adv.Error)
	assert.Equal(t, "Weather conditions unavailable", adv.Recommendation)
}
