package supabase

// AuthUser is the provider-side identity mirror.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is returned by the password grant.
type Session struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int      `json:"expires_in"`
	User         AuthUser `json:"user"`
}

// SignUpMetadata is attached to the provider account at registration.
type SignUpMetadata struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type signUpRequest struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Data     *SignUpMetadata `json:"data,omitempty"`
}

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type recoverRequest struct {
	Email string `json:"email"`
}

type signUpResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	User  *AuthUser `json:"user"`
}

type errorResponse struct {
	Message          string `json:"msg"`
	ErrorDescription string `json:"error_description"`
}
