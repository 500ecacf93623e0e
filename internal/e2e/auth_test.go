package e2e

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwork/booker-qa/internal/booker"
	"github.com/mwork/booker-qa/internal/testkit"
)

func TestCreateTokenSuccess(t *testing.T) {
	t.Log("STEP 1: Requesting a token with the default account")
	token, err := h.Auth.CreateDefaultToken(context.Background())
	require.NoError(t, err)

	t.Log("STEP 2: Verifying the token is a non-empty string without spaces")
	testkit.AssertValidToken(t, token)
	t.Logf("  Token issued: %s", strings.Repeat("*", len(token)))
}

func assertBadCredentials(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, booker.ErrAuthentication)
	assert.ErrorContains(t, err, h.Config.AuthFailureMessage)
}

func TestCreateTokenNegativeCases(t *testing.T) {
	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong credentials", "wrong_user", "wrong_pass"},
		{"empty username", "", "password123"},
		{"empty password", "admin", ""},
		{"unknown user", "nonexistent", "test123"},
		{"short password", "admin", "short"},
		{"very long username", strings.Repeat("a", 100), "password123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Logf("STEP 1: Sending username=%q password=%q", tc.username, tc.password)
			_, err := h.Auth.CreateToken(context.Background(), tc.username, tc.password)

			t.Log("STEP 2: Verifying the request is rejected with bad credentials")
			assertBadCredentials(t, err)
		})
	}
}

func TestCreateTokenSQLInjectionAttempt(t *testing.T) {
	cases := []struct {
		name     string
		username string
		password string
	}{
		{"password OR bypass", "admin", "' OR '1'='1' --"},
		{"username OR bypass", "' OR 1=1 --", "password123"},
		{"union select", "admin", "' UNION SELECT NULL --"},
		{"drop table", "admin", "'; DROP TABLE users; --"},
		{"basic injection", "admin", "' OR 'a'='a"},
		{"empty username injection", "", "' OR ''='"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Logf("STEP 1: Trying injection username=%q password=%q", tc.username, tc.password)
			_, err := h.Auth.CreateToken(context.Background(), tc.username, tc.password)

			t.Log("STEP 2: Verifying the injection is rejected")
			assertBadCredentials(t, err)
		})
	}
}

func TestCreateTokenWrongContentType(t *testing.T) {
	t.Log("STEP 1: Saving the session headers")
	saved := h.Session.Headers()
	defer h.Session.RestoreHeaders(saved)

	t.Log("STEP 2: Switching Content-Type to text/plain")
	h.Session.SetHeader("Content-Type", "text/plain")

	t.Log("STEP 3: Requesting a token")
	_, err := h.Auth.CreateDefaultToken(context.Background())
	assertBadCredentials(t, err)

	t.Log("STEP 4: Restoring the headers")
	h.Session.RestoreHeaders(saved)
	assert.Equal(t, "application/json", h.Session.Header("Content-Type"))
}

func TestAuthResponseTime(t *testing.T) {
	t.Log("STEP 1: Timing a token request")
	token, elapsed, err := testkit.Measure(func() (string, error) {
		return h.Auth.CreateDefaultToken(context.Background())
	})
	require.NoError(t, err)
	t.Logf("  Response time: %s", elapsed)

	t.Log("STEP 2: Verifying response time and token")
	testkit.AssertResponseTime(t, elapsed, h.Config.MaxResponseTime)
	testkit.AssertValidToken(t, token)
}

func TestMutatingCallsWithoutTokenAreForbidden(t *testing.T) {
	ctx := context.Background()

	t.Log("STEP 1: Creating a booking")
	id, payload := testkit.CreateTestBooking(ctx, t, h.Bookings, testkit.WithName("No", "Token"))
	testkit.DeleteOnCleanup(t, h.Bookings, id, h.MustToken(t))

	t.Log("STEP 2: Updating it with an invalid token")
	_, err := h.Bookings.UpdateBookingFull(ctx, id, "not-a-token", testkit.NewUpdateDetails())
	require.ErrorIs(t, err, booker.ErrForbidden)

	var httpErr *booker.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)

	t.Log("STEP 3: Patching and deleting it without a token")
	_, err = h.Bookings.UpdateBookingPartial(ctx, id, "", booker.BookingPatch{}.SetFirstname("X"))
	assert.ErrorIs(t, err, booker.ErrForbidden)
	_, err = h.Bookings.DeleteBooking(ctx, id, "")
	assert.ErrorIs(t, err, booker.ErrForbidden)

	t.Log("STEP 4: Verifying the booking is unchanged")
	got, err := h.Bookings.GetBooking(ctx, id)
	require.NoError(t, err)
	testkit.AssertBookingCreated(t, got, testkit.ExpectedFrom(payload))
}
