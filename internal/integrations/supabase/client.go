package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the Supabase auth (GoTrue) REST endpoints. It is
// constructed once at startup and handed to the handlers that need it;
// there is no package-level instance.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

func NewClient(baseURL, anonKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) configured() bool {
	return c.baseURL != "" && c.anonKey != ""
}

// SignUp registers a new identity with the provider.
func (c *Client) SignUp(
	ctx context.Context,
	email, password string,
	meta *SignUpMetadata,
) (*AuthUser, error) {

	var out signUpResponse
	err := c.post(ctx, "/auth/v1/signup", signUpRequest{
		Email:    email,
		Password: password,
		Data:     meta,
	}, &out)
	if err != nil {
		return nil, err
	}

	// Depending on email-confirmation settings the user object is
	// either the body itself or nested under "user".
	if out.User != nil {
		return out.User, nil
	}
	if out.ID == "" {
		return nil, fmt.Errorf("%w: empty signup response", ErrRejected)
	}
	return &AuthUser{ID: out.ID, Email: out.Email}, nil
}

// SignInWithPassword performs the password grant and returns a session.
func (c *Client) SignInWithPassword(
	ctx context.Context,
	email, password string,
) (*Session, error) {

	var session Session
	err := c.post(ctx, "/auth/v1/token?grant_type=password", passwordGrantRequest{
		Email:    email,
		Password: password,
	}, &session)
	if err != nil {
		// The token endpoint reports a bad password as a 400.
		if errors.Is(err, ErrRejected) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if session.AccessToken == "" {
		return nil, ErrInvalidCredentials
	}
	return &session, nil
}

// SignOut revokes the provider session. Best-effort on the logout path.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if !c.configured() {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", nil,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// Recover triggers the provider's password-reset email.
func (c *Client) Recover(ctx context.Context, email string) error {
	return c.post(ctx, "/auth/v1/recover", recoverRequest{Email: email}, nil)
}

// --------------------------------------------------
// Transport
// --------------------------------------------------

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	if !c.configured() {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRejected, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		msg := e.Message
		if msg == "" {
			msg = e.ErrorDescription
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return ErrInvalidCredentials
		}
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("%w: %s", ErrRejected, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
