package booker

import (
	"net/url"
	"strings"
)

// Credentials is the body of POST /auth.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the body returned by POST /auth.
// The service reports bad credentials as a reason instead of a token.
type TokenResponse struct {
	Token  string `json:"token,omitempty" validate:"token"`
	Reason string `json:"reason,omitempty"`
}

// BookingDetails is the canonical booking shape for create requests and for
// get/update responses.
type BookingDetails struct {
	Firstname       string    `json:"firstname"`
	Lastname        string    `json:"lastname"`
	TotalPrice      int       `json:"totalprice"`
	DepositPaid     bool      `json:"depositpaid"`
	BookingDates    DateRange `json:"bookingdates"`
	AdditionalNeeds string    `json:"additionalneeds"`
}

// BookingRecord is the create response: the new id plus the stored details.
type BookingRecord struct {
	ID      int            `json:"bookingid"`
	Booking BookingDetails `json:"booking"`
}

// BookingFilter narrows GET /booking. Zero fields are not sent.
type BookingFilter struct {
	Firstname string
	Lastname  string
	Checkin   Date
	Checkout  Date
}

// Query encodes the filter as URL query parameters.
func (f BookingFilter) Query() url.Values {
	q := url.Values{}
	if f.Firstname != "" {
		q.Set("firstname", f.Firstname)
	}
	if f.Lastname != "" {
		q.Set("lastname", f.Lastname)
	}
	if !f.Checkin.IsZero() {
		q.Set("checkin", f.Checkin.String())
	}
	if !f.Checkout.IsZero() {
		q.Set("checkout", f.Checkout.String())
	}
	return q
}

// BookingPatch is a sparse PATCH body: only non-nil fields are sent and only
// those change on the server.
type BookingPatch struct {
	Firstname       *string    `json:"firstname,omitempty"`
	Lastname        *string    `json:"lastname,omitempty"`
	TotalPrice      *int       `json:"totalprice,omitempty"`
	DepositPaid     *bool      `json:"depositpaid,omitempty"`
	BookingDates    *DateRange `json:"bookingdates,omitempty"`
	AdditionalNeeds *string    `json:"additionalneeds,omitempty"`
}

func (p BookingPatch) SetFirstname(v string) BookingPatch {
	p.Firstname = &v
	return p
}

func (p BookingPatch) SetLastname(v string) BookingPatch {
	p.Lastname = &v
	return p
}

func (p BookingPatch) SetTotalPrice(v int) BookingPatch {
	p.TotalPrice = &v
	return p
}

func (p BookingPatch) SetDepositPaid(v bool) BookingPatch {
	p.DepositPaid = &v
	return p
}

func (p BookingPatch) SetDates(v DateRange) BookingPatch {
	p.BookingDates = &v
	return p
}

func (p BookingPatch) SetAdditionalNeeds(v string) BookingPatch {
	p.AdditionalNeeds = &v
	return p
}

// Fields lists the wire names of the fields the patch sets.
func (p BookingPatch) Fields() []string {
	var fields []string
	if p.Firstname != nil {
		fields = append(fields, "firstname")
	}
	if p.Lastname != nil {
		fields = append(fields, "lastname")
	}
	if p.TotalPrice != nil {
		fields = append(fields, "totalprice")
	}
	if p.DepositPaid != nil {
		fields = append(fields, "depositpaid")
	}
	if p.BookingDates != nil {
		fields = append(fields, "bookingdates")
	}
	if p.AdditionalNeeds != nil {
		fields = append(fields, "additionalneeds")
	}
	return fields
}

func (p BookingPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Apply returns base with the patched fields replaced.
func (p BookingPatch) Apply(base BookingDetails) BookingDetails {
	if p.Firstname != nil {
		base.Firstname = *p.Firstname
	}
	if p.Lastname != nil {
		base.Lastname = *p.Lastname
	}
	if p.TotalPrice != nil {
		base.TotalPrice = *p.TotalPrice
	}
	if p.DepositPaid != nil {
		base.DepositPaid = *p.DepositPaid
	}
	if p.BookingDates != nil {
		base.BookingDates = *p.BookingDates
	}
	if p.AdditionalNeeds != nil {
		base.AdditionalNeeds = *p.AdditionalNeeds
	}
	return base
}

func (p BookingPatch) String() string {
	return "patch(" + strings.Join(p.Fields(), ",") + ")"
}

// Wire shapes used to check that a response carries every required field
// before it is converted to the public types above.

type tokenWire struct {
	Token  *string `json:"token"`
	Reason *string `json:"reason"`
}

type datesWire struct {
	Checkin  *Date `json:"checkin" validate:"required"`
	Checkout *Date `json:"checkout" validate:"required"`
}

type bookingWire struct {
	Firstname       *string    `json:"firstname" validate:"required"`
	Lastname        *string    `json:"lastname" validate:"required"`
	TotalPrice      *int       `json:"totalprice" validate:"required"`
	DepositPaid     *bool      `json:"depositpaid" validate:"required"`
	BookingDates    *datesWire `json:"bookingdates" validate:"required"`
	AdditionalNeeds *string    `json:"additionalneeds"`
}

func (w bookingWire) details() BookingDetails {
	d := BookingDetails{
		Firstname:   *w.Firstname,
		Lastname:    *w.Lastname,
		TotalPrice:  *w.TotalPrice,
		DepositPaid: *w.DepositPaid,
		BookingDates: DateRange{
			Checkin:  *w.BookingDates.Checkin,
			Checkout: *w.BookingDates.Checkout,
		},
	}
	if w.AdditionalNeeds != nil {
		d.AdditionalNeeds = *w.AdditionalNeeds
	}
	return d
}

type recordWire struct {
	ID      *int         `json:"bookingid" validate:"required"`
	Booking *bookingWire `json:"booking" validate:"required"`
}

type idItemWire struct {
	ID *int `json:"bookingid" validate:"required"`
}
