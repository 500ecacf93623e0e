package booking

import (
	"context"
	"fmt"

	"github.com/mwork/booker-qa/internal/booker"
)

// Service handles booking business logic
type Service struct {
	repo Repository
}

// NewService creates booking service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new booking
func (s *Service) Create(ctx context.Context, req *Request) (*Booking, error) {
	if err := checkDates(req.BookingDates); err != nil {
		return nil, err
	}
	b := req.toEntity()
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return b, nil
}

// Get returns a booking by id
func (s *Service) Get(ctx context.Context, id int) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %d: %w", id, err)
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// List returns the ids of bookings matching filter
func (s *Service) List(ctx context.Context, filter Filter) ([]int, error) {
	return s.repo.List(ctx, filter)
}

// Replace overwrites every field of an existing booking
func (s *Service) Replace(ctx context.Context, id int, req *Request) (*Booking, error) {
	if err := checkDates(req.BookingDates); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	b := req.toEntity()
	b.ID = id
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Patch changes only the fields present in req
func (s *Service) Patch(ctx context.Context, id int, req *PatchRequest) (*Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.applyTo(b)
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes a booking
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func checkDates(d *DatesRequest) error {
	if d == nil || d.Checkin == nil || d.Checkout == nil {
		return ErrInvalidDates
	}
	if d.Checkin.IsZero() || d.Checkout.IsZero() {
		return ErrInvalidDates
	}
	return nil
}

// SeedNames are the guests seeded bookings are made out to
var SeedNames = [][2]string{
	{"Sally", "Brown"},
	{"Jim", "Jones"},
	{"Mary", "Wilson"},
	{"Eric", "Smith"},
	{"Susan", "Jackson"},
	{"Mark", "Ericsson"},
	{"John", "Brown"},
	{"Jane", "Wilson"},
}

// Seed creates n deterministic bookings starting from base
func (s *Service) Seed(ctx context.Context, n int, base booker.Date) error {
	for i := 0; i < n; i++ {
		name := SeedNames[i%len(SeedNames)]
		checkin := base.AddDays(i * 3)
		b := &Booking{
			Firstname:   name[0],
			Lastname:    name[1],
			TotalPrice:  100 + i*37%900,
			DepositPaid: i%2 == 0,
			Checkin:     checkin.Time(),
			Checkout:    checkin.AddDays(1 + i%5).Time(),
		}
		if i%3 == 0 {
			b.AdditionalNeeds = "Breakfast"
		}
		if err := s.repo.Create(ctx, b); err != nil {
			return fmt.Errorf("seed booking %d: %w", i, err)
		}
	}
	return nil
}
