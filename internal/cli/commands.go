package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mwork/booker-qa/internal/booker"
)

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the API health endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.bookings.Ping(cmd.Context()); err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(cmd.OutOrStdout(), map[string]string{"status": "ok", "base_url": a.session.BaseURL()})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is up\n", a.session.BaseURL())
			return nil
		},
	}
}

func newTokenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Request a session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.auth.CreateDefaultToken(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(cmd.OutOrStdout(), booker.TokenResponse{Token: token})
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var firstname, lastname, checkin, checkout string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List booking ids",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := booker.BookingFilter{Firstname: firstname, Lastname: lastname}
			var err error
			if filter.Checkin, err = parseOptionalDate("checkin", checkin); err != nil {
				return err
			}
			if filter.Checkout, err = parseOptionalDate("checkout", checkout); err != nil {
				return err
			}

			ids, err := a.bookings.ListBookingIDs(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(cmd.OutOrStdout(), ids)
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&firstname, "firstname", "", "Only bookings with this first name")
	cmd.Flags().StringVar(&lastname, "lastname", "", "Only bookings with this last name")
	cmd.Flags().StringVar(&checkin, "checkin", "", "Only bookings checking in on or after YYYY-MM-DD")
	cmd.Flags().StringVar(&checkout, "checkout", "", "Only bookings checking out on or after YYYY-MM-DD")
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			details, err := a.bookings.GetBooking(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printBooking(cmd.OutOrStdout(), id, details)
		},
	}
}

func newCreateCmd(a *app) *cobra.Command {
	f := &bookingFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a booking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := f.details()
			if err != nil {
				return err
			}
			rec, err := a.bookings.CreateBookingRecord(cmd.Context(), details)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(cmd.OutOrStdout(), rec)
			}
			return a.printBooking(cmd.OutOrStdout(), rec.ID, rec.Booking)
		},
	}

	f.register(cmd)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	f := &bookingFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace every field of a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			details, err := f.details()
			if err != nil {
				return err
			}
			token, err := a.mutationToken(cmd.Context())
			if err != nil {
				return err
			}
			updated, err := a.bookings.UpdateBookingFull(cmd.Context(), id, token, details)
			if err != nil {
				return err
			}
			return a.printBooking(cmd.OutOrStdout(), id, updated)
		},
	}

	f.register(cmd)
	return cmd
}

func newPatchCmd(a *app) *cobra.Command {
	f := &bookingFlags{}

	cmd := &cobra.Command{
		Use:   "patch <id>",
		Short: "Change only the given fields of a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			patch, err := f.patch(cmd)
			if err != nil {
				return err
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to patch: set at least one field flag")
			}
			token, err := a.mutationToken(cmd.Context())
			if err != nil {
				return err
			}
			updated, err := a.bookings.UpdateBookingPartial(cmd.Context(), id, token, patch)
			if err != nil {
				return err
			}
			return a.printBooking(cmd.OutOrStdout(), id, updated)
		},
	}

	f.register(cmd)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a booking",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			token, err := a.mutationToken(cmd.Context())
			if err != nil {
				return err
			}
			deleted, err := a.bookings.DeleteBooking(cmd.Context(), id, token)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(cmd.OutOrStdout(), map[string]any{"bookingid": id, "deleted": deleted})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "booking %d deleted: %t\n", id, deleted)
			return nil
		},
	}
}

func (a *app) printBooking(w io.Writer, id int, d booker.BookingDetails) error {
	if a.jsonOut {
		return a.printJSON(w, d)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "bookingid\t%d\n", id)
	fmt.Fprintf(tw, "name\t%s %s\n", d.Firstname, d.Lastname)
	fmt.Fprintf(tw, "totalprice\t%d\n", d.TotalPrice)
	fmt.Fprintf(tw, "depositpaid\t%t\n", d.DepositPaid)
	fmt.Fprintf(tw, "checkin\t%s\n", d.BookingDates.Checkin)
	fmt.Fprintf(tw, "checkout\t%s (%d nights)\n", d.BookingDates.Checkout, d.BookingDates.Nights())
	if d.AdditionalNeeds != "" {
		fmt.Fprintf(tw, "additionalneeds\t%s\n", d.AdditionalNeeds)
	}
	return tw.Flush()
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid booking id %q", s)
	}
	return id, nil
}

func parseOptionalDate(name, s string) (booker.Date, error) {
	if s == "" {
		return booker.Date{}, nil
	}
	d, err := booker.ParseDate(s)
	if err != nil {
		return booker.Date{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return d, nil
}
