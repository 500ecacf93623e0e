package testkit

import (
	"strings"
	"unicode"

	"github.com/stretchr/testify/assert"

	"github.com/mwork/booker-qa/internal/booker"
)

// Expected is the field set a booking is compared against.
// AdditionalNeeds is only compared by AssertBookingCreated when set.
type Expected struct {
	Firstname       string
	Lastname        string
	TotalPrice      int
	DepositPaid     bool
	Checkin         booker.Date
	Checkout        booker.Date
	AdditionalNeeds *string
}

// ExpectedFrom builds expectations from a payload. An empty additionalneeds
// is left unset since the service may drop it.
func ExpectedFrom(d booker.BookingDetails) Expected {
	e := Expected{
		Firstname:   d.Firstname,
		Lastname:    d.Lastname,
		TotalPrice:  d.TotalPrice,
		DepositPaid: d.DepositPaid,
		Checkin:     d.BookingDates.Checkin,
		Checkout:    d.BookingDates.Checkout,
	}
	if d.AdditionalNeeds != "" {
		e = e.WithAdditionalNeeds(d.AdditionalNeeds)
	}
	return e
}

// WithAdditionalNeeds returns a copy that also expects additionalneeds.
func (e Expected) WithAdditionalNeeds(v string) Expected {
	e.AdditionalNeeds = &v
	return e
}

func assertCoreFields(t assert.TestingT, got booker.BookingDetails, want Expected) bool {
	ok := assert.Equal(t, want.Firstname, got.Firstname, "firstname")
	ok = assert.Equal(t, want.Lastname, got.Lastname, "lastname") && ok
	ok = assert.Equal(t, want.TotalPrice, got.TotalPrice, "totalprice") && ok
	ok = assert.Equal(t, want.DepositPaid, got.DepositPaid, "depositpaid") && ok
	ok = assert.Equal(t, want.Checkin, got.BookingDates.Checkin, "checkin") && ok
	ok = assert.Equal(t, want.Checkout, got.BookingDates.Checkout, "checkout") && ok
	return ok
}

// AssertBookingCreated checks the stored booking against the expectations.
func AssertBookingCreated(t assert.TestingT, got booker.BookingDetails, want Expected) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	ok := assertCoreFields(t, got, want)
	if want.AdditionalNeeds != nil {
		ok = assert.Equal(t, *want.AdditionalNeeds, got.AdditionalNeeds, "additionalneeds") && ok
	}
	return ok
}

// AssertBookingUpdated checks every field, additionalneeds included.
func AssertBookingUpdated(t assert.TestingT, got booker.BookingDetails, want Expected) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	needs := ""
	if want.AdditionalNeeds != nil {
		needs = *want.AdditionalNeeds
	}
	ok := assertCoreFields(t, got, want)
	return assert.Equal(t, needs, got.AdditionalNeeds, "additionalneeds") && ok
}

// AssertStayDuration checks the number of nights between checkin and checkout.
func AssertStayDuration(t assert.TestingT, got booker.BookingDetails, days int) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return assert.Equal(t, days, got.BookingDates.Nights(), "expected %d days, got %d", days, got.BookingDates.Nights())
}

// AssertSameDayStay checks that checkin and checkout both equal date.
func AssertSameDayStay(t assert.TestingT, got booker.BookingDetails, date booker.Date) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	ok := assert.Equal(t, date, got.BookingDates.Checkin, "checkin")
	return assert.Equal(t, date, got.BookingDates.Checkout, "checkout") && ok
}

// AssertValidToken checks that token is non-empty and has no whitespace.
func AssertValidToken(t assert.TestingT, token string) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if !assert.NotEmpty(t, token, "token must not be empty") {
		return false
	}
	return assert.False(t, strings.ContainsFunc(token, unicode.IsSpace), "token %q must not contain whitespace", token)
}

// AssertOnlyPatchedChanged checks that after equals before with only the
// patched fields replaced.
func AssertOnlyPatchedChanged(t assert.TestingT, before, after booker.BookingDetails, patch booker.BookingPatch) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return assert.Equal(t, patch.Apply(before), after, "only %v may change", patch.Fields())
}
