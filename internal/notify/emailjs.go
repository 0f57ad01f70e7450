package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sparklewash/carwash-booking/internal/models"
)

const emailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

var ErrMailerNotConfigured = errors.New("emailjs: mailer not configured")

// EmailJSMailer sends the confirmation template through the EmailJS
// REST API.
type EmailJSMailer struct {
	endpoint   string
	serviceID  string
	templateID string
	publicKey  string
	privateKey string
	httpClient *http.Client
}

func NewEmailJSMailer(serviceID, templateID, publicKey, privateKey string) *EmailJSMailer {
	return &EmailJSMailer{
		endpoint:   emailJSEndpoint,
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
		privateKey: privateKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewEmailJSMailerWithEndpoint is used by tests to target a stub server.
func NewEmailJSMailerWithEndpoint(endpoint, serviceID, templateID, publicKey, privateKey string) *EmailJSMailer {
	m := NewEmailJSMailer(serviceID, templateID, publicKey, privateKey)
	m.endpoint = endpoint
	return m
}

type emailJSRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams map[string]any `json:"template_params"`
}

func (m *EmailJSMailer) SendBookingConfirmation(
	ctx context.Context,
	b *models.Booking,
) error {

	if m.serviceID == "" || m.templateID == "" || m.publicKey == "" {
		return ErrMailerNotConfigured
	}

	payload, err := json.Marshal(emailJSRequest{
		ServiceID:   m.serviceID,
		TemplateID:  m.templateID,
		UserID:      m.publicKey,
		AccessToken: m.privateKey,
		TemplateParams: map[string]any{
			"to_email":      b.CustomerEmail,
			"customer_name": b.CustomerName,
			"service":       b.ServiceLabel,
			"booking_date":  b.BookingDate,
			"booking_time":  b.BookingTime,
			"vehicle_plate": b.VehiclePlate,
			"price":         fmt.Sprintf("%.2f", b.Price),
			"reference":     b.Reference,
		},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("emailjs: status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

var _ Mailer = (*EmailJSMailer)(nil)
