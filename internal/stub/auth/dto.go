package auth

// CreateTokenRequest for POST /auth
type CreateTokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned on valid credentials
type TokenResponse struct {
	Token string `json:"token"`
}

// ReasonResponse is returned, still with 200, on bad credentials
type ReasonResponse struct {
	Reason string `json:"reason"`
}

// BadCredentialsReason is the reason text restful-booker reports
const BadCredentialsReason = "Bad credentials"
