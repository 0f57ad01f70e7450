package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparklewash/carwash-booking/internal/config"
)

func TestPublicHandler_Contact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	h := NewPublicHandler(db, &config.Config{JWTSecret: "test-secret"})

	r := gin.New()
	r.GET("/contact", h.Contact)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["email"])
	assert.NotEmpty(t, body["phone"])

	hours, ok := body["hours"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "08:00", hours["open"])
	assert.Equal(t, "17:00", hours["close"])
}
