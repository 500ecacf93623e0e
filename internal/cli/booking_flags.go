package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwork/booker-qa/internal/booker"
)

const defaultNights = 7

// bookingFlags are the field flags shared by create, update and patch.
type bookingFlags struct {
	firstname string
	lastname  string
	price     int
	deposit   bool
	checkin   string
	checkout  string
	nights    int
	needs     string
}

func (f *bookingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.firstname, "firstname", "Test", "Guest first name")
	cmd.Flags().StringVar(&f.lastname, "lastname", "User", "Guest last name")
	cmd.Flags().IntVar(&f.price, "price", 100, "Total price")
	cmd.Flags().BoolVar(&f.deposit, "deposit", true, "Deposit paid")
	cmd.Flags().StringVar(&f.checkin, "checkin", "", "Checkin date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.checkout, "checkout", "", "Checkout date YYYY-MM-DD (default checkin + nights)")
	cmd.Flags().IntVar(&f.nights, "nights", defaultNights, "Stay length when --checkout is not given")
	cmd.Flags().StringVar(&f.needs, "needs", "", "Additional needs")
}

func (f *bookingFlags) dates() (booker.DateRange, error) {
	checkin, err := parseOptionalDate("checkin", f.checkin)
	if err != nil {
		return booker.DateRange{}, err
	}
	if checkin.IsZero() {
		checkin = booker.Today()
	}
	checkout, err := parseOptionalDate("checkout", f.checkout)
	if err != nil {
		return booker.DateRange{}, err
	}
	if checkout.IsZero() {
		if f.nights < 0 {
			return booker.DateRange{}, fmt.Errorf("invalid --nights %d", f.nights)
		}
		checkout = checkin.AddDays(f.nights)
	}
	return booker.DateRange{Checkin: checkin, Checkout: checkout}, nil
}

func (f *bookingFlags) details() (booker.BookingDetails, error) {
	dates, err := f.dates()
	if err != nil {
		return booker.BookingDetails{}, err
	}
	return booker.BookingDetails{
		Firstname:       f.firstname,
		Lastname:        f.lastname,
		TotalPrice:      f.price,
		DepositPaid:     f.deposit,
		BookingDates:    dates,
		AdditionalNeeds: f.needs,
	}, nil
}

// patch includes only the flags set on the command line.
func (f *bookingFlags) patch(cmd *cobra.Command) (booker.BookingPatch, error) {
	changed := cmd.Flags().Changed
	p := booker.BookingPatch{}
	if changed("firstname") {
		p = p.SetFirstname(f.firstname)
	}
	if changed("lastname") {
		p = p.SetLastname(f.lastname)
	}
	if changed("price") {
		p = p.SetTotalPrice(f.price)
	}
	if changed("deposit") {
		p = p.SetDepositPaid(f.deposit)
	}
	if changed("checkin") || changed("checkout") || changed("nights") {
		if !changed("checkin") || (!changed("checkout") && !changed("nights")) {
			return p, fmt.Errorf("patching dates needs --checkin and --checkout or --nights")
		}
		dates, err := f.dates()
		if err != nil {
			return p, err
		}
		p = p.SetDates(dates)
	}
	if changed("needs") {
		p = p.SetAdditionalNeeds(f.needs)
	}
	return p, nil
}
