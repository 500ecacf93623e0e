// Package testkit holds the booking factories, assertions and session
// harness shared by the e2e suite.
package testkit

import (
	"github.com/mwork/booker-qa/internal/booker"
)

// DefaultStayDays is the stay length of a factory booking without dates.
const DefaultStayDays = 7

// BookingOption overrides one field of a factory booking.
type BookingOption func(*bookingDraft)

type bookingDraft struct {
	details  booker.BookingDetails
	checkin  booker.Date
	checkout booker.Date
	days     int
}

func WithName(firstname, lastname string) BookingOption {
	return func(s *bookingDraft) {
		s.details.Firstname = firstname
		s.details.Lastname = lastname
	}
}

func WithFirstname(v string) BookingOption {
	return func(s *bookingDraft) { s.details.Firstname = v }
}

func WithLastname(v string) BookingOption {
	return func(s *bookingDraft) { s.details.Lastname = v }
}

func WithTotalPrice(v int) BookingOption {
	return func(s *bookingDraft) { s.details.TotalPrice = v }
}

func WithDepositPaid(v bool) BookingOption {
	return func(s *bookingDraft) { s.details.DepositPaid = v }
}

func WithCheckin(d booker.Date) BookingOption {
	return func(s *bookingDraft) { s.checkin = d }
}

func WithCheckout(d booker.Date) BookingOption {
	return func(s *bookingDraft) { s.checkout = d }
}

// WithStayDays sets checkout to checkin+days unless WithCheckout is given.
func WithStayDays(days int) BookingOption {
	return func(s *bookingDraft) { s.days = days }
}

func WithAdditionalNeeds(v string) BookingOption {
	return func(s *bookingDraft) { s.details.AdditionalNeeds = v }
}

func build(base booker.BookingDetails, defaultCheckin booker.Date, days int, opts []BookingOption) booker.BookingDetails {
	s := &bookingDraft{details: base, days: days}
	for _, opt := range opts {
		opt(s)
	}

	checkin := s.checkin
	if checkin.IsZero() {
		checkin = defaultCheckin
	}
	checkout := s.checkout
	if checkout.IsZero() {
		checkout = checkin.AddDays(s.days)
	}
	s.details.BookingDates = booker.DateRange{Checkin: checkin, Checkout: checkout}
	return s.details
}

// NewBookingDetails returns a create payload: Test User, 100, deposit paid,
// checking in today for DefaultStayDays nights.
func NewBookingDetails(opts ...BookingOption) booker.BookingDetails {
	base := booker.BookingDetails{
		Firstname:   "Test",
		Lastname:    "User",
		TotalPrice:  100,
		DepositPaid: true,
	}
	return build(base, booker.Today(), DefaultStayDays, opts)
}

// NewUpdateDetails returns a full-update payload: Updated User, 200, no
// deposit, 2025-02-01 to 2025-02-05, Breakfast. Without explicit dates it
// keeps that fixed window.
func NewUpdateDetails(opts ...BookingOption) booker.BookingDetails {
	base := booker.BookingDetails{
		Firstname:       "Updated",
		Lastname:        "User",
		TotalPrice:      200,
		DepositPaid:     false,
		AdditionalNeeds: "Breakfast",
	}
	checkin := booker.MustParseDate("2025-02-01")
	return build(base, checkin, checkin.DaysUntil(booker.MustParseDate("2025-02-05")), opts)
}

// NewCredentials returns an auth payload.
func NewCredentials(username, password string) booker.Credentials {
	return booker.Credentials{Username: username, Password: password}
}

// DefaultCredentials returns the known-valid test account.
func DefaultCredentials() booker.Credentials {
	return NewCredentials(booker.DefaultUsername, booker.DefaultPassword)
}
