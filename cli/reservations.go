package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newReservationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reservations",
		Short:   "List, book and cancel reservations",
		Aliases: []string{"res"},
	}
	cmd.AddCommand(newReservationsListCmd(a), newBookCmd(a), newCancelCmd(a))
	return cmd
}

func newReservationsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all reservations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			renderReservations(cmd.OutOrStdout(), m.ListReservations())
			return nil
		},
	}
}

func newBookCmd(a *app) *cobra.Command {
	var interactive bool
	cmd := &cobra.Command{
		Use:   "book ROOM_ID NAME PHONE CHECK_IN CHECK_OUT",
		Short: "Book an available room",
		Example: `  hoteltracker reservations book R101 "Asha Rao" 9845012345 2025-03-01 2025-03-04
  hoteltracker reservations book --interactive`,
		Args: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(5)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			var in bookingInput
			if interactive {
				in, err = askBooking(cmd.Context(), formIO{in: cmd.InOrStdin(), out: cmd.OutOrStdout()}, m.ListAvailableRooms())
				if err != nil {
					return err
				}
			} else {
				in = bookingInput{RoomID: args[0], Name: args[1], Phone: args[2], CheckIn: args[3], CheckOut: args[4]}
			}

			for _, f := range []struct{ label, value string }{
				{"room id", in.RoomID}, {"customer name", in.Name}, {"phone", in.Phone},
			} {
				if err := required(f.label)(f.value); err != nil {
					return err
				}
			}
			checkIn, checkOut, err := parseStay(in.CheckIn, in.CheckOut)
			if err != nil {
				return err
			}

			res, err := m.BookRoom(cmd.Context(), strings.TrimSpace(in.RoomID), strings.TrimSpace(in.Name), strings.TrimSpace(in.Phone), checkIn, checkOut)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles.Success.Render("Booked! Reservation ID: "+res.ReservationID))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a room and enter guest details in a form")
	return cmd
}

func newCancelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel RESERVATION_ID",
		Short: "Cancel a reservation and free its room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := m.CancelReservation(cmd.Context(), strings.TrimSpace(args[0])); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles.Success.Render("Reservation cancelled."))
			return nil
		},
	}
}
