package testkit

import (
	"context"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog/log"

	"github.com/mwork/booker-qa/internal/booker"
	"github.com/mwork/booker-qa/internal/config"
	"github.com/mwork/booker-qa/internal/pkg/logger"
	"github.com/mwork/booker-qa/internal/stub"
)

// DefaultSeed is how many bookings the in-process server starts with.
const DefaultSeed = 10

// Harness is the session-scoped context of an e2e run: one HTTP session,
// the two clients on it and a lazily created token.
type Harness struct {
	Config   *config.Config
	Session  *booker.Session
	Auth     *booker.AuthClient
	Bookings *booker.BookingClient

	server *httptest.Server

	tokenOnce sync.Once
	token     string
	tokenErr  error
}

// Setup builds the harness. Unless cfg.Live is set it starts a seeded
// in-process reference server and points the clients at it.
func Setup(cfg *config.Config) (*Harness, func(), error) {
	h := &Harness{Config: cfg}
	baseURL := cfg.BaseURL

	if !cfg.Live {
		deps, err := stub.NewInMemory(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("build reference server: %w", err)
		}
		seed := cfg.StubSeedBookings
		if seed <= 0 {
			seed = DefaultSeed
		}
		if err := deps.Seed(context.Background(), seed); err != nil {
			return nil, nil, err
		}
		h.server = httptest.NewServer(stub.NewRouter(deps))
		baseURL = h.server.URL
	}

	h.Session = booker.NewSession(baseURL,
		booker.WithTimeout(cfg.HTTPTimeout),
		booker.WithUserAgent("booker-qa-e2e"),
		booker.WithLogger(logger.Component("e2e")),
	)
	h.Auth = booker.NewAuthClient(h.Session).WithAccount(cfg.Username, cfg.Password)
	h.Bookings = booker.NewBookingClient(h.Session)

	log.Info().Str("base_url", baseURL).Bool("live", cfg.Live).Msg("E2E harness ready")
	return h, h.close, nil
}

func (h *Harness) close() {
	h.Session.Close()
	if h.server != nil {
		h.server.Close()
	}
}

// Token returns the session token, requesting it on first use.
func (h *Harness) Token(ctx context.Context) (string, error) {
	h.tokenOnce.Do(func() {
		h.token, h.tokenErr = h.Auth.CreateDefaultToken(ctx)
	})
	return h.token, h.tokenErr
}

// MustToken is Token for tests; a failed token fails every caller.
func (h *Harness) MustToken(t testing.TB) string {
	t.Helper()
	token, err := h.Token(context.Background())
	if err != nil {
		t.Fatalf("auth token unavailable: %v", err)
	}
	return token
}
