package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog/log"

	"github.com/mwork/booker-qa/internal/pkg/logger"
)

func TestLoggerAttachesRequestLogger(t *testing.T) {
	var scoped bool
	h := RequestID(Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scoped = logger.FromContext(r.Context()) != &log.Logger
		w.WriteHeader(http.StatusTeapot)
	})))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/booking", nil))
	if !scoped {
		t.Fatal("expected a request-scoped logger in the context")
	}
	if w.Code != http.StatusTeapot {
		t.Fatalf("expected status to pass through, got %d", w.Code)
	}
}
