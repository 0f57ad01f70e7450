package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Client fetches current conditions from OpenWeather. It holds no
// storage resources and is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub
// server.
func NewClientWithBaseURL(baseURL, apiKey string, timeout time.Duration) *Client {
	c := NewClient(apiKey, timeout)
	c.baseURL = baseURL
	return c
}

// Current returns the present conditions for a city, metric units.
func (c *Client) Current(ctx context.Context, city string) (*Observation, error) {
	if c.apiKey == "" {
		return nil, ErrMissingKey
	}

	endpoint := fmt.Sprintf(
		"%s/weather?q=%s&appid=%s&units=metric",
		c.baseURL, url.QueryEscape(city), url.QueryEscape(c.apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var raw currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(raw.Weather) == 0 {
		return nil, fmt.Errorf("%w: empty weather block", ErrInvalidResponse)
	}

	return &Observation{
		Location:    raw.Name,
		Temperature: raw.Main.Temp,
		Condition:   raw.Weather[0].Main,
		Description: raw.Weather[0].Description,
		Humidity:    raw.Main.Humidity,
		WindSpeed:   raw.Wind.Speed,
		Icon:        raw.Weather[0].Icon,
	}, nil
}
