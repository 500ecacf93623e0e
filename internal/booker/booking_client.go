package booker

import (
	"context"
	"net/http"
	"strconv"
)

// BookingClient performs CRUD calls against /booking.
type BookingClient struct {
	session *Session
}

// NewBookingClient creates a booking client on the shared session.
func NewBookingClient(s *Session) *BookingClient {
	return &BookingClient{session: s}
}

func bookingPath(id int) string {
	return "/booking/" + strconv.Itoa(id)
}

// Ping checks GET /ping, the service health endpoint.
func (c *BookingClient) Ping(ctx context.Context) error {
	req := request{op: "ping", method: http.MethodGet, path: "/ping"}
	resp, err := c.session.do(ctx, req)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return c.session.httpError(req, resp)
	}
	return nil
}

// ListBookingIDs returns booking ids in server order. The order is not
// stable across calls.
func (c *BookingClient) ListBookingIDs(ctx context.Context, filter BookingFilter) ([]int, error) {
	req := request{op: "list bookings", method: http.MethodGet, path: "/booking", query: filter.Query()}
	resp, err := c.session.do(ctx, req)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, c.session.httpError(req, resp)
	}

	ids, err := decodeIDList(req.op, resp.Body)
	if err != nil {
		return nil, err
	}
	c.session.log.Info().Int("count", len(ids)).Msg("Listed bookings")
	return ids, nil
}

// GetBooking fetches one booking. A missing id yields ErrNotFound.
func (c *BookingClient) GetBooking(ctx context.Context, id int) (BookingDetails, error) {
	req := request{op: "get booking", method: http.MethodGet, path: bookingPath(id)}
	resp, err := c.session.do(ctx, req)
	if err != nil {
		return BookingDetails{}, err
	}
	if !resp.ok() {
		return BookingDetails{}, c.session.httpError(req, resp)
	}
	return decodeBooking(req.op, resp.Body)
}

// CreateBooking creates a booking and returns its id.
func (c *BookingClient) CreateBooking(ctx context.Context, details BookingDetails) (int, error) {
	rec, err := c.CreateBookingRecord(ctx, details)
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

// CreateBookingRecord creates a booking and returns the id with the stored echo.
func (c *BookingClient) CreateBookingRecord(ctx context.Context, details BookingDetails) (BookingRecord, error) {
	req := request{op: "create booking", method: http.MethodPost, path: "/booking", body: details}
	resp, err := c.session.do(ctx, req)
	if err != nil {
		return BookingRecord{}, err
	}
	if !resp.ok() {
		return BookingRecord{}, c.session.httpError(req, resp)
	}

	rec, err := decodeRecord(req.op, resp.Body)
	if err != nil {
		return BookingRecord{}, err
	}
	c.session.log.Info().Int("booking_id", rec.ID).Msg("Booking created")
	return rec, nil
}

// UpdateBookingFull replaces every field of the booking (PUT).
func (c *BookingClient) UpdateBookingFull(ctx context.Context, id int, token string, details BookingDetails) (BookingDetails, error) {
	req := request{
		op:      "update booking",
		method:  http.MethodPut,
		path:    bookingPath(id),
		body:    details,
		headers: tokenCookie(token),
	}
	return c.mutate(ctx, req)
}

// UpdateBookingPartial changes only the fields set in patch (PATCH).
func (c *BookingClient) UpdateBookingPartial(ctx context.Context, id int, token string, patch BookingPatch) (BookingDetails, error) {
	req := request{
		op:      "partial update booking",
		method:  http.MethodPatch,
		path:    bookingPath(id),
		body:    patch,
		headers: tokenCookie(token),
	}
	c.session.log.Info().Int("booking_id", id).Strs("fields", patch.Fields()).Msg("Patching booking")
	return c.mutate(ctx, req)
}

func (c *BookingClient) mutate(ctx context.Context, req request) (BookingDetails, error) {
	resp, err := c.session.do(ctx, req)
	if err != nil {
		return BookingDetails{}, err
	}
	if !resp.ok() {
		return BookingDetails{}, c.session.httpError(req, resp)
	}
	return decodeBooking(req.op, resp.Body)
}

// DeleteBooking deletes a booking. It reports true for 200/201. Deleting an
// unknown or already deleted id fails with ErrMethodNotAllowed or ErrNotFound.
func (c *BookingClient) DeleteBooking(ctx context.Context, id int, token string) (bool, error) {
	req := request{
		op:      "delete booking",
		method:  http.MethodDelete,
		path:    bookingPath(id),
		headers: tokenCookie(token),
	}
	resp, err := c.session.do(ctx, req)
	if err != nil {
		return false, err
	}
	if !resp.ok() {
		return false, c.session.httpError(req, resp)
	}

	deleted := resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated
	c.session.log.Info().Int("booking_id", id).Bool("deleted", deleted).Msg("Delete finished")
	return deleted, nil
}
