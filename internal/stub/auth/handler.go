package auth

import (
	"errors"
	"mime"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mwork/booker-qa/internal/pkg/logger"
	"github.com/mwork/booker-qa/internal/pkg/response"
)

// Handler handles auth HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates auth handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateToken handles POST /auth
//
// Bad credentials are answered with 200 and a reason, never with 401.
// A body that is not declared as JSON is ignored, so it authenticates as
// empty credentials.
func (h *Handler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var req CreateTokenRequest
	if isJSON(r) {
		if err := response.DecodeJSON(r.Body, &req); err != nil {
			log.Debug().Err(err).Msg("Unreadable auth body")
			req = CreateTokenRequest{}
		}
	}

	token, err := h.service.CreateToken(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Info().Str("username", req.Username).Msg("Rejected credentials")
			response.OK(w, ReasonResponse{Reason: BadCredentialsReason})
			return
		}
		log.Error().Err(err).Msg("Failed to create token")
		response.InternalError(w)
		return
	}

	log.Info().Str("token", logger.MaskSecret(token)).Msg("Issued token")
	response.OK(w, TokenResponse{Token: token})
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}
