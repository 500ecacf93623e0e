package testkit

import (
	"context"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwork/booker-qa/internal/booker"
)

// DefaultMaxResponseTime bounds AssertResponseTime when max is zero.
const DefaultMaxResponseTime = 2 * time.Second

// CreateTestBooking builds a factory payload and creates it, failing t on error.
func CreateTestBooking(ctx context.Context, t require.TestingT, client *booker.BookingClient, opts ...BookingOption) (int, booker.BookingDetails) {
	payload := NewBookingDetails(opts...)
	id, err := client.CreateBooking(ctx, payload)
	require.NoError(t, err, "create booking")
	require.Positive(t, id, "booking id")
	return id, payload
}

// CreateAndGetBooking creates a factory booking and fetches it back.
func CreateAndGetBooking(ctx context.Context, t require.TestingT, client *booker.BookingClient, opts ...BookingOption) (int, booker.BookingDetails, booker.BookingDetails) {
	id, payload := CreateTestBooking(ctx, t, client, opts...)
	fetched, err := client.GetBooking(ctx, id)
	require.NoError(t, err, "get booking %d", id)
	return id, payload, fetched
}

// Cleaner is the part of testing.TB that DeleteOnCleanup needs.
type Cleaner interface {
	Cleanup(func())
	Logf(format string, args ...any)
}

// DeleteOnCleanup deletes booking id when the test ends. Failures are only
// logged since the test may have deleted it already.
func DeleteOnCleanup(t Cleaner, client *booker.BookingClient, id int, token string) {
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := client.DeleteBooking(ctx, id, token); err != nil {
			t.Logf("cleanup: booking %d not deleted: %v", id, err)
		}
	})
}

// Measure runs fn and reports how long it took.
func Measure[T any](fn func() (T, error)) (T, time.Duration, error) {
	start := time.Now()
	v, err := fn()
	return v, time.Since(start), err
}

// MeasureResponseTime runs fn and reports how long it took.
func MeasureResponseTime(fn func() error) (time.Duration, error) {
	start := time.Now()
	err := fn()
	return time.Since(start), err
}

// AssertResponseTime checks d < limit, DefaultMaxResponseTime when limit is zero.
func AssertResponseTime(t assert.TestingT, d, limit time.Duration) bool {
	if limit <= 0 {
		limit = DefaultMaxResponseTime
	}
	return assert.Less(t, d, limit, "response time too long: %s", d)
}
