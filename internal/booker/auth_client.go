package booker

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mwork/booker-qa/internal/pkg/logger"
)

// Known-valid account of the public restful-booker deployment.
const (
	DefaultUsername = "admin"
	DefaultPassword = "password123"
)

// AuthClient exchanges credentials for a token on POST /auth.
type AuthClient struct {
	session  *Session
	username string
	password string
}

// NewAuthClient creates an auth client that uses the default account for
// CreateDefaultToken.
func NewAuthClient(s *Session) *AuthClient {
	return &AuthClient{session: s, username: DefaultUsername, password: DefaultPassword}
}

// WithAccount returns a copy whose CreateDefaultToken uses the given account.
func (c *AuthClient) WithAccount(username, password string) *AuthClient {
	cp := *c
	cp.username = username
	cp.password = password
	return &cp
}

// CreateDefaultToken requests a token for the client's configured account.
func (c *AuthClient) CreateDefaultToken(ctx context.Context) (string, error) {
	return c.CreateToken(ctx, c.username, c.password)
}

// CreateToken requests a token. The token is not cached; callers that need
// one per test session keep it themselves.
func (c *AuthClient) CreateToken(ctx context.Context, username, password string) (string, error) {
	req := request{
		op:     "create token",
		method: http.MethodPost,
		path:   "/auth",
		body:   Credentials{Username: username, Password: password},
	}
	c.session.log.Info().Str("username", username).Msg("Creating token")

	resp, err := c.session.do(ctx, req)
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= 400 {
		var failure struct {
			Reason string `json:"reason"`
		}
		if json.Unmarshal(resp.Body, &failure) == nil && failure.Reason != "" {
			return "", &AuthError{Reason: failure.Reason, StatusCode: resp.StatusCode}
		}
		return "", c.session.httpError(req, resp)
	}
	if !resp.ok() {
		return "", c.session.httpError(req, resp)
	}

	var wire tokenWire
	if err := decodeBody(req.op, resp.Body, &wire); err != nil {
		return "", err
	}
	// the public deployment answers bad credentials with 200 and a reason
	if wire.Token == nil && wire.Reason != nil && *wire.Reason != "" {
		return "", &AuthError{Reason: *wire.Reason, StatusCode: resp.StatusCode}
	}

	out := TokenResponse{}
	if wire.Token != nil {
		out.Token = *wire.Token
	}
	if err := checkShape(req.op, &out); err != nil {
		return "", err
	}

	c.session.log.Info().Str("token", logger.MaskSecret(out.Token)).Msg("Token created")
	return out.Token, nil
}
