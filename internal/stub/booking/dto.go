package booking

import (
	"github.com/mwork/booker-qa/internal/booker"
)

// DatesRequest is the nested bookingdates object
type DatesRequest struct {
	Checkin  *booker.Date `json:"checkin" validate:"required"`
	Checkout *booker.Date `json:"checkout" validate:"required"`
}

// Request for POST /booking and PUT /booking/{id}.
// Pointers distinguish a missing field from its zero value.
type Request struct {
	Firstname       *string       `json:"firstname" validate:"required,notblank"`
	Lastname        *string       `json:"lastname" validate:"required,notblank"`
	TotalPrice      *int          `json:"totalprice" validate:"required,gte=0"`
	DepositPaid     *bool         `json:"depositpaid" validate:"required"`
	BookingDates    *DatesRequest `json:"bookingdates" validate:"required"`
	AdditionalNeeds *string       `json:"additionalneeds"`
}

// PatchRequest for PATCH /booking/{id}; only present fields change
type PatchRequest struct {
	Firstname       *string     `json:"firstname" validate:"omitempty,notblank"`
	Lastname        *string     `json:"lastname" validate:"omitempty,notblank"`
	TotalPrice      *int        `json:"totalprice" validate:"omitempty,gte=0"`
	DepositPaid     *bool       `json:"depositpaid"`
	BookingDates    *PatchDates `json:"bookingdates"`
	AdditionalNeeds *string     `json:"additionalneeds"`
}

// PatchDates lets a patch move either end of the stay
type PatchDates struct {
	Checkin  *booker.Date `json:"checkin"`
	Checkout *booker.Date `json:"checkout"`
}

// Response is the booking as returned by GET/PUT/PATCH
type Response struct {
	Firstname       string           `json:"firstname"`
	Lastname        string           `json:"lastname"`
	TotalPrice      int              `json:"totalprice"`
	DepositPaid     bool             `json:"depositpaid"`
	BookingDates    booker.DateRange `json:"bookingdates"`
	AdditionalNeeds string           `json:"additionalneeds,omitempty"`
}

// CreateResponse is returned by POST /booking
type CreateResponse struct {
	BookingID int       `json:"bookingid"`
	Booking   *Response `json:"booking"`
}

// IDItem is one element of GET /booking
type IDItem struct {
	BookingID int `json:"bookingid"`
}

// toEntity builds a booking from a validated request
func (r *Request) toEntity() *Booking {
	b := &Booking{
		Firstname:   *r.Firstname,
		Lastname:    *r.Lastname,
		TotalPrice:  *r.TotalPrice,
		DepositPaid: *r.DepositPaid,
		Checkin:     r.BookingDates.Checkin.Time(),
		Checkout:    r.BookingDates.Checkout.Time(),
	}
	if r.AdditionalNeeds != nil {
		b.AdditionalNeeds = *r.AdditionalNeeds
	}
	return b
}

// applyTo merges the present fields into b
func (p *PatchRequest) applyTo(b *Booking) {
	if p.Firstname != nil {
		b.Firstname = *p.Firstname
	}
	if p.Lastname != nil {
		b.Lastname = *p.Lastname
	}
	if p.TotalPrice != nil {
		b.TotalPrice = *p.TotalPrice
	}
	if p.DepositPaid != nil {
		b.DepositPaid = *p.DepositPaid
	}
	if p.BookingDates != nil {
		if p.BookingDates.Checkin != nil && !p.BookingDates.Checkin.IsZero() {
			b.Checkin = p.BookingDates.Checkin.Time()
		}
		if p.BookingDates.Checkout != nil && !p.BookingDates.Checkout.IsZero() {
			b.Checkout = p.BookingDates.Checkout.Time()
		}
	}
	if p.AdditionalNeeds != nil {
		b.AdditionalNeeds = *p.AdditionalNeeds
	}
}
