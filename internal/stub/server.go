// Package stub is a restful-booker compatible booking server used as the
// hermetic target of the e2e suite and shipped as cmd/booker-stub.
package stub

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/mwork/booker-qa/internal/booker"
	"github.com/mwork/booker-qa/internal/config"
	"github.com/mwork/booker-qa/internal/middleware"
	"github.com/mwork/booker-qa/internal/stub/auth"
	"github.com/mwork/booker-qa/internal/stub/booking"
)

// Deps are the services the router is built from
type Deps struct {
	Auth           *auth.Service
	Bookings       *booking.Service
	AllowedOrigins []string
}

// NewDeps builds services on Postgres and Redis when they are given and on
// memory stores otherwise.
func NewDeps(ctx context.Context, cfg *config.Config, db *sqlx.DB, rdb *redis.Client) (*Deps, error) {
	var repo booking.Repository
	if db != nil {
		pg := booking.NewPostgresRepository(db)
		if err := pg.Migrate(ctx); err != nil {
			return nil, err
		}
		repo = pg
		log.Info().Msg("Bookings stored in PostgreSQL")
	} else {
		repo = booking.NewMemoryRepository()
		log.Info().Msg("Bookings stored in memory")
	}

	var store auth.TokenStore
	if rdb != nil {
		store = auth.NewRedisTokenStore(rdb)
		log.Info().Msg("Tokens stored in Redis")
	} else {
		store = auth.NewMemoryTokenStore()
	}

	authService, err := auth.NewService(cfg.Username, cfg.Password, store, cfg.StubTokenTTL)
	if err != nil {
		return nil, err
	}

	return &Deps{
		Auth:           authService,
		Bookings:       booking.NewService(repo),
		AllowedOrigins: cfg.StubAllowedOrigins,
	}, nil
}

// NewInMemory builds memory-backed services
func NewInMemory(cfg *config.Config) (*Deps, error) {
	return NewDeps(context.Background(), cfg, nil, nil)
}

// Seed creates n bookings with check-ins from today onwards
func (d *Deps) Seed(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	if err := d.Bookings.Seed(ctx, n, booker.Today()); err != nil {
		return fmt.Errorf("seed bookings: %w", err)
	}
	log.Info().Int("count", n).Msg("Seeded bookings")
	return nil
}

// NewRouter wires the auth, booking and ping routes
func NewRouter(deps *Deps) http.Handler {
	authHandler := auth.NewHandler(deps.Auth)
	bookingHandler := booking.NewHandler(deps.Bookings)
	authMiddleware := middleware.Auth(deps.Auth)

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(origins))

	r.Get("/ping", bookingHandler.Ping)
	r.Mount("/auth", authHandler.Routes())
	r.Mount("/booking", bookingHandler.Routes(authMiddleware))

	return r
}

// NewServer returns an http.Server for the reference API on cfg.StubPort
func NewServer(cfg *config.Config, deps *Deps) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.StubPort,
		Handler:      NewRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
