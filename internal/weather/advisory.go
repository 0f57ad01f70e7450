package weather

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/sparklewash/carwash-booking/internal/integrations/openweather"
)

// Advisory maps current conditions to a wash recommendation. It is
// informational only and never blocks booking creation.
type Advisory struct {
	Location    string  `json:"location,omitempty"`
	Temperature int     `json:"temperature"`
	Condition   string  `json:"condition,omitempty"`
	Description string  `json:"description,omitempty"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Icon        string  `json:"icon,omitempty"`

	Recommendation string `json:"recommendation"`
	GoodForWash    bool   `json:"is_good_for_wash"`

	// Error is set on degraded results, alongside a generic
	// "unavailable" recommendation.
	Error string `json:"error,omitempty"`
}

const cacheTTL = 10 * time.Minute

type Service struct {
	client      *openweather.Client
	cache       *redis.Client
	defaultCity string
	log         zerolog.Logger
}

// NewService builds the advisory service. cache may be nil, in which
// case every call goes straight to the provider.
func NewService(
	client *openweather.Client,
	cache *redis.Client,
	defaultCity string,
	log zerolog.Logger,
) *Service {
	return &Service{
		client:      client,
		cache:       cache,
		defaultCity: defaultCity,
		log:         log,
	}
}

// Advise returns the advisory for a city. Provider failures degrade to
// a result carrying the error and a generic recommendation; the caller
// never sees an error value.
func (s *Service) Advise(ctx context.Context, city string) Advisory {
	if city == "" {
		city = s.defaultCity
	}

	if adv, ok := s.cached(ctx, city); ok {
		return adv
	}

	obs, err := s.client.Current(ctx, city)
	if err != nil {
		s.log.Warn().Err(err).Str("city", city).Msg("weather fetch failed")
		return Advisory{
			Error:          err.Error(),
			Recommendation: "Weather conditions unavailable",
		}
	}

	adv := fromObservation(obs)
	s.store(ctx, city, adv)
	return adv
}

func fromObservation(obs *openweather.Observation) Advisory {
	adv := Advisory{
		Location:    obs.Location,
		Temperature: int(math.Round(obs.Temperature)),
		Condition:   obs.Condition,
		Description: obs.Description,
		Humidity:    obs.Humidity,
		WindSpeed:   obs.WindSpeed,
		Icon:        obs.Icon,
		GoodForWash: true,
	}

	switch obs.Condition {
	case "Rain", "Drizzle", "Thunderstorm":
		adv.Recommendation = "Not recommended - Rain expected. Consider rescheduling."
		adv.GoodForWash = false
	case "Dust", "Sand":
		adv.Recommendation = "Not ideal - Dusty conditions. Your car might get dirty quickly."
		adv.GoodForWash = false
	default:
		switch {
		case obs.Temperature > 35:
			adv.Recommendation = "Good for a car wash, but very hot! Early morning or late afternoon is better."
		case obs.Temperature < 15:
			adv.Recommendation = "Good for a car wash, but quite cool. Dress warmly!"
		default:
			adv.Recommendation = "Perfect weather for a car wash!"
		}
	}

	return adv
}

// --------------------------------------------------
// Cache (best-effort, failures ignored)
// --------------------------------------------------

func (s *Service) cached(ctx context.Context, city string) (Advisory, bool) {
	if s.cache == nil {
		return Advisory{}, false
	}

	raw, err := s.cache.Get(ctx, cacheKey(city)).Result()
	if err != nil {
		return Advisory{}, false
	}

	var adv Advisory
	if err := json.Unmarshal([]byte(raw), &adv); err != nil {
		return Advisory{}, false
	}
	return adv, true
}

func (s *Service) store(ctx context.Context, city string, adv Advisory) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(adv)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(city), raw, cacheTTL).Err(); err != nil {
		s.log.Debug().Err(err).Msg("weather cache write failed")
	}
}

func cacheKey(city string) string {
	return "weather:" + city
}
