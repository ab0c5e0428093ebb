package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"hotel-tracker/models"
)

var (
	colorAccent  = lipgloss.Color("#20B9B4")
	colorSuccess = lipgloss.Color("#2CD7C7")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#2C4A54")
)

var styles = struct {
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}{
	Header:  lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1),
	Cell:    lipgloss.NewStyle().Padding(0, 1),
	Success: lipgloss.NewStyle().Foreground(colorSuccess),
	Warning: lipgloss.NewStyle().Foreground(colorWarning),
	Error:   lipgloss.NewStyle().Foreground(colorError),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			return styles.Cell
		})
}

func formatPrice(p float64) string {
	return "₹" + strconv.FormatFloat(p, 'f', -1, 64)
}

func renderRooms(w io.Writer, rooms []models.Room) {
	if len(rooms) == 0 {
		fmt.Fprintln(w, styles.Muted.Render("No rooms."))
		return
	}
	t := newTable("Room ID", "Category", "Price", "Status")
	for _, r := range rooms {
		t.Row(r.RoomID, r.Category, formatPrice(r.Price), r.Status())
	}
	fmt.Fprintln(w, t.Render())
}

func renderReservations(w io.Writer, reservations []models.Reservation) {
	if len(reservations) == 0 {
		fmt.Fprintln(w, styles.Muted.Render("No reservations."))
		return
	}
	t := newTable("Res ID", "Room", "Customer", "Phone", "Check-in", "Check-out", "Nights")
	for _, r := range reservations {
		t.Row(r.ReservationID, r.RoomID, r.CustomerName, r.Phone, r.CheckIn.String(), r.CheckOut.String(), strconv.Itoa(r.Nights()))
	}
	fmt.Fprintln(w, t.Render())
}
