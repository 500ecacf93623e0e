package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func postAuth(t *testing.T, h *Handler, contentType, body string) map[string]string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var out map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

func TestCreateTokenHandler(t *testing.T) {
	h := NewHandler(newTestService(t))

	out := postAuth(t, h, "application/json", `{"username":"admin","password":"password123"}`)
	if out["token"] == "" || out["reason"] != "" {
		t.Fatalf("expected token, got %v", out)
	}

	out = postAuth(t, h, "application/json; charset=utf-8", `{"username":"admin","password":"nope"}`)
	if out["reason"] != BadCredentialsReason || out["token"] != "" {
		t.Fatalf("expected reason, got %v", out)
	}
}

func TestCreateTokenHandlerIgnoresNonJSONBody(t *testing.T) {
	h := NewHandler(newTestService(t))

	for _, ct := range []string{"text/plain", ""} {
		out := postAuth(t, h, ct, `{"username":"admin","password":"password123"}`)
		if out["reason"] != BadCredentialsReason {
			t.Fatalf("content type %q: expected bad credentials, got %v", ct, out)
		}
	}

	out := postAuth(t, h, "application/json", `{not json`)
	if out["reason"] != BadCredentialsReason {
		t.Fatalf("malformed body: expected bad credentials, got %v", out)
	}
}
