package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparklewash/carwash-booking/internal/weather"
)

type WeatherHandler struct {
	weather *weather.Service
}

func NewWeatherHandler(weatherSvc *weather.Service) *WeatherHandler {
	return &WeatherHandler{weather: weatherSvc}
}

// Get returns the wash advisory for a city. Degraded results still get
// a 200: the advisory is informational and its failure is not the
// caller's problem.
func (h *WeatherHandler) Get(c *gin.Context) {
	adv := h.weather.Advise(c.Request.Context(), c.Query("city"))
	c.JSON(http.StatusOK, adv)
}
