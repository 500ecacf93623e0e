package booking

import (
	"time"

	"github.com/mwork/booker-qa/internal/booker"
)

// Booking is a stored hotel booking
type Booking struct {
	ID              int       `db:"id"`
	Firstname       string    `db:"firstname"`
	Lastname        string    `db:"lastname"`
	TotalPrice      int       `db:"totalprice"`
	DepositPaid     bool      `db:"depositpaid"`
	Checkin         time.Time `db:"checkin"`
	Checkout        time.Time `db:"checkout"`
	AdditionalNeeds string    `db:"additionalneeds"`
	CreatedAt       time.Time `db:"created_at"`
}

// Filter narrows List. Zero fields do not filter.
type Filter struct {
	Firstname string
	Lastname  string
	// Checkin keeps bookings starting on or after it
	Checkin time.Time
	// Checkout keeps bookings ending on or after it
	Checkout time.Time
}

// Matches reports whether b passes every set filter field
func (f Filter) Matches(b *Booking) bool {
	if f.Firstname != "" && b.Firstname != f.Firstname {
		return false
	}
	if f.Lastname != "" && b.Lastname != f.Lastname {
		return false
	}
	if !f.Checkin.IsZero() && b.Checkin.Before(f.Checkin) {
		return false
	}
	if !f.Checkout.IsZero() && b.Checkout.Before(f.Checkout) {
		return false
	}
	return true
}

// ToResponse converts entity to the wire shape
func (b *Booking) ToResponse() *Response {
	return &Response{
		Firstname:   b.Firstname,
		Lastname:    b.Lastname,
		TotalPrice:  b.TotalPrice,
		DepositPaid: b.DepositPaid,
		BookingDates: booker.DateRange{
			Checkin:  booker.DateOf(b.Checkin),
			Checkout: booker.DateOf(b.Checkout),
		},
		AdditionalNeeds: b.AdditionalNeeds,
	}
}
