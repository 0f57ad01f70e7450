package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparklewash/carwash-booking/internal/models"
)

func confirmationBooking() *models.Booking {
	return &models.Booking{
		Reference:     "ref-001",
		CustomerName:  "Dana Cruz",
		CustomerEmail: "dana@example.com",
		ServiceLabel:  "Premium Wash",
		Price:         25,
		BookingDate:   "2026-03-15",
		BookingTime:   "09:00",
		VehiclePlate:  "ABC-1234",
	}
}

func TestSendBookingConfirmation(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewEmailJSMailerWithEndpoint(srv.URL, "svc_1", "tpl_1", "pub_1", "priv_1")
	require.NoError(t, m.SendBookingConfirmation(context.Background(), confirmationBooking()))

	assert.Equal(t, "svc_1", got["service_id"])
	assert.Equal(t, "tpl_1", got["template_id"])
	assert.Equal(t, "pub_1", got["user_id"])

	params, ok := got["template_params"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "dana@example.com", params["to_email"])
	assert.Equal(t, "Premium Wash", params["service"])
	assert.Equal(t, "25.00", params["price"])
	assert.Equal(t, "ref-001", params["reference"])
}

func TestSendBookingConfirmation_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("API calls are disabled"))
	}))
	defer srv.Close()

	m := NewEmailJSMailerWithEndpoint(srv.URL, "svc_1", "tpl_1", "pub_1", "")
	err := m.SendBookingConfirmation(context.Background(), confirmationBooking())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestSendBookingConfirmation_NotConfigured(t *testing.T) {
	m := NewEmailJSMailer("", "", "", "")
	err := m.SendBookingConfirmation(context.Background(), confirmationBooking())
	assert.ErrorIs(t, err, ErrMailerNotConfigured)
}
