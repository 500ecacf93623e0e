package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mwork/booker-qa/internal/booker"
	"github.com/mwork/booker-qa/internal/pkg/logger"
	"github.com/mwork/booker-qa/internal/pkg/response"
	"github.com/mwork/booker-qa/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /booking
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(r)
	if !ok {
		response.BadRequest(w)
		return
	}

	ids, err := h.service.List(r.Context(), filter)
	if err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("Failed to list bookings")
		response.InternalError(w)
		return
	}

	items := make([]IDItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, IDItem{BookingID: id})
	}
	response.OK(w, items)
}

// Get handles GET /booking/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.NotFound(w)
			return
		}
		logger.FromContext(r.Context()).Error().Err(err).Int("booking_id", id).Msg("Failed to get booking")
		response.InternalError(w)
		return
	}
	response.OK(w, b.ToResponse())
}

// Create handles POST /booking
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req Request
	if !decodeValid(w, r, &req) {
		return
	}

	b, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err, 0)
		return
	}

	logger.FromContext(r.Context()).Info().Int("booking_id", b.ID).Msg("Booking created")
	response.OK(w, CreateResponse{BookingID: b.ID, Booking: b.ToResponse()})
}

// Update handles PUT /booking/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		response.MethodNotAllowed(w)
		return
	}
	var req Request
	if !decodeValid(w, r, &req) {
		return
	}

	b, err := h.service.Replace(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, r, err, id)
		return
	}
	response.OK(w, b.ToResponse())
}

// Patch handles PATCH /booking/{id}
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		response.MethodNotAllowed(w)
		return
	}
	var req PatchRequest
	if !decodeValid(w, r, &req) {
		return
	}

	b, err := h.service.Patch(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, r, err, id)
		return
	}
	response.OK(w, b.ToResponse())
}

// Delete handles DELETE /booking/{id}.
// Success is 201 "Created"; an unknown id is 405, matching restful-booker.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		response.MethodNotAllowed(w)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, id)
		return
	}

	logger.FromContext(r.Context()).Info().Int("booking_id", id).Msg("Booking deleted")
	response.Created(w)
}

// Ping handles GET /ping
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	response.Created(w)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, id int) {
	switch {
	case errors.Is(err, ErrInvalidDates):
		response.BadRequest(w)
	case errors.Is(err, ErrBookingNotFound):
		// restful-booker refuses writes to unknown ids instead of answering 404
		response.MethodNotAllowed(w)
	default:
		logger.FromContext(r.Context()).Error().Err(err).Int("booking_id", id).Msg("Booking operation failed")
		response.InternalError(w)
	}
}

func decodeValid(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := response.DecodeJSON(r.Body, v); err != nil {
		logger.FromContext(r.Context()).Debug().Err(err).Msg("Invalid booking body")
		response.BadRequest(w)
		return false
	}
	if errs := validator.Validate(v); errs != nil {
		logger.FromContext(r.Context()).Debug().Str("errors", validator.Summary(errs)).Msg("Booking validation failed")
		response.BadRequest(w)
		return false
	}
	return true
}

func parseID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseFilter(r *http.Request) (Filter, bool) {
	q := r.URL.Query()
	f := Filter{
		Firstname: q.Get("firstname"),
		Lastname:  q.Get("lastname"),
	}

	var ok bool
	if f.Checkin, ok = parseQueryDate(q.Get("checkin")); !ok {
		return Filter{}, false
	}
	if f.Checkout, ok = parseQueryDate(q.Get("checkout")); !ok {
		return Filter{}, false
	}
	return f, true
}

func parseQueryDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	d, err := booker.ParseDate(raw)
	if err != nil {
		return time.Time{}, false
	}
	return d.Time(), true
}
