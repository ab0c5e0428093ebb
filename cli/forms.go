package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"hotel-tracker/models"
)

var roomCategories = []string{"Single", "Double", "Suite"}

var errNoAvailableRooms = errors.New("no available rooms")

func formTheme() *huh.Theme {
	t := huh.ThemeBase()
	t.Focused.Title = t.Focused.Title.Foreground(colorAccent).Bold(true)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(colorAccent)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(colorError)
	return t
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func parsePrice(s string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, errors.New("price must be a non-negative number")
	}
	return p, nil
}

func validatePrice(s string) error {
	_, err := parsePrice(s)
	return err
}

func validateDate(s string) error {
	if _, err := models.ParseDate(strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

// parseStay parses both dates and requires the stay to be at least one night.
func parseStay(in, out string) (models.Date, models.Date, error) {
	checkIn, err := models.ParseDate(strings.TrimSpace(in))
	if err != nil {
		return models.Date{}, models.Date{}, err
	}
	checkOut, err := models.ParseDate(strings.TrimSpace(out))
	if err != nil {
		return models.Date{}, models.Date{}, err
	}
	if !checkIn.Before(checkOut) {
		return models.Date{}, models.Date{}, errors.New("check-out must be after check-in")
	}
	return checkIn, checkOut, nil
}

type formIO struct {
	in  io.Reader
	out io.Writer
}

func (f formIO) run(ctx context.Context, groups ...*huh.Group) error {
	return huh.NewForm(groups...).
		WithTheme(formTheme()).
		WithInput(f.in).
		WithOutput(f.out).
		RunWithContext(ctx)
}

type roomInput struct {
	ID       string
	Category string
	Price    string
}

func askRoom(ctx context.Context, fio formIO) (roomInput, error) {
	in := roomInput{Category: roomCategories[0]}
	err := fio.run(ctx, huh.NewGroup(
		huh.NewInput().Title("Room ID").Value(&in.ID).Validate(required("room id")),
		huh.NewSelect[string]().Title("Category").Options(huh.NewOptions(roomCategories...)...).Value(&in.Category),
		huh.NewInput().Title("Price").Value(&in.Price).Validate(validatePrice),
	))
	return in, err
}

type bookingInput struct {
	RoomID   string
	Name     string
	Phone    string
	CheckIn  string
	CheckOut string
}

func askBooking(ctx context.Context, fio formIO, available []models.Room) (bookingInput, error) {
	if len(available) == 0 {
		return bookingInput{}, errNoAvailableRooms
	}
	opts := make([]huh.Option[string], 0, len(available))
	for _, r := range available {
		opts = append(opts, huh.NewOption(r.String(), r.RoomID))
	}
	in := bookingInput{RoomID: available[0].RoomID}
	err := fio.run(ctx,
		huh.NewGroup(
			huh.NewSelect[string]().Title("Room").Options(opts...).Value(&in.RoomID),
		),
		huh.NewGroup(
			huh.NewInput().Title("Customer name").Value(&in.Name).Validate(required("customer name")),
			huh.NewInput().Title("Phone").Value(&in.Phone).Validate(required("phone")),
			huh.NewInput().Title("Check-in (YYYY-MM-DD)").Value(&in.CheckIn).Validate(validateDate),
			huh.NewInput().Title("Check-out (YYYY-MM-DD)").Value(&in.CheckOut).Validate(func(s string) error {
				if err := validateDate(s); err != nil {
					return err
				}
				_, _, err := parseStay(in.CheckIn, s)
				return err
			}),
		),
	)
	return in, err
}
