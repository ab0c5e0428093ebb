package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hotel-tracker/models"
)

func newRoomsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rooms",
		Short:   "List, add and remove rooms",
		Aliases: []string{"room"},
	}
	cmd.AddCommand(newRoomsListCmd(a), newRoomsAddCmd(a), newRoomsRemoveCmd(a))
	return cmd
}

func newRoomsListCmd(a *app) *cobra.Command {
	var available bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the room inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			rooms := m.ListRooms()
			if available {
				rooms = m.ListAvailableRooms()
			}
			renderRooms(cmd.OutOrStdout(), rooms)
			return nil
		},
	}
	cmd.Flags().BoolVar(&available, "available", false, "only rooms that can be booked")
	return cmd
}

func newRoomsAddCmd(a *app) *cobra.Command {
	var interactive bool
	cmd := &cobra.Command{
		Use:   "add ROOM_ID CATEGORY PRICE",
		Short: "Add a room",
		Example: `  hoteltracker rooms add R401 Suite 5200
  hoteltracker rooms add --interactive`,
		Args: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(3)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var in roomInput
			if interactive {
				var err error
				in, err = askRoom(cmd.Context(), formIO{in: cmd.InOrStdin(), out: cmd.OutOrStdout()})
				if err != nil {
					return err
				}
			} else {
				in = roomInput{ID: args[0], Category: args[1], Price: args[2]}
			}

			room := models.Room{
				RoomID:    strings.TrimSpace(in.ID),
				Category:  strings.TrimSpace(in.Category),
				Available: true,
			}
			if room.RoomID == "" || room.Category == "" {
				return errors.New("please enter Room ID and category")
			}
			price, err := parsePrice(in.Price)
			if err != nil {
				return err
			}
			room.Price = price

			m, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := m.AddRoom(cmd.Context(), room); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles.Success.Render("Room added: "+room.String()))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for the room details")
	return cmd
}

func newRoomsRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ROOM_ID",
		Short:   "Remove a room that has no reservations",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := m.RemoveRoom(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles.Success.Render("Room removed."))
			return nil
		},
	}
}
