package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mwork/booker-qa/internal/pkg/response"
)

// TokenCookie is the cookie the booking API reads the session token from.
const TokenCookie = "token"

// Authenticator decides whether a mutating request may proceed.
type Authenticator interface {
	ValidateToken(ctx context.Context, token string) (bool, error)
	CheckBasic(username, password string) bool
}

// Auth admits requests carrying a valid token cookie or admin basic auth
// and answers 403 otherwise.
func Auth(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(TokenCookie); err == nil && cookie.Value != "" {
				ok, err := a.ValidateToken(r.Context(), cookie.Value)
				if err != nil {
					log.Error().Err(err).Msg("Token lookup failed")
					response.InternalError(w)
					return
				}
				if ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			if user, pass, ok := r.BasicAuth(); ok && a.CheckBasic(user, pass) {
				next.ServeHTTP(w, r)
				return
			}

			response.Forbidden(w)
		})
	}
}
