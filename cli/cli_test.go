package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-tracker/services"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// run executes the CLI against a CSV store in dir.
func run(t *testing.T, dir string, args ...string) result {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("STRICT_PERSISTENCE", "true")
	var out, errb bytes.Buffer
	full := append([]string{"--backend", "csv", "--data-dir", dir}, args...)
	code := Execute(context.Background(), full, &out, &errb)
	return result{code: code, stdout: out.String(), stderr: errb.String()}
}

func TestRoomsListSeedsInventory(t *testing.T) {
	dir := t.TempDir()
	r := run(t, dir, "rooms", "list")
	require.Equal(t, 0, r.code, r.stderr)
	for _, id := range []string{"R101", "R102", "R201", "R202", "R301"} {
		assert.Contains(t, r.stdout, id)
	}
	assert.Contains(t, r.stdout, "₹4500")

	data, err := os.ReadFile(filepath.Join(dir, "rooms.csv"))
	require.NoError(t, err)
	assert.Equal(t, "R101,Single,1200,true\nR102,Single,1200,true\nR201,Double,2000,true\nR202,Double,2000,true\nR301,Suite,4500,true\n", string(data))
}

func TestRoomsAddAndRemove(t *testing.T) {
	dir := t.TempDir()

	r := run(t, dir, "rooms", "add", "R401", "Suite", "5200")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Room added: R401 - Suite - ₹5200 - Available")

	r = run(t, dir, "rooms", "add", "R401", "Single", "100")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "Room ID already exists.")

	r = run(t, dir, "rooms", "add", "--", "R402", "Single", "-5")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "non-negative")

	r = run(t, dir, "rooms", "add", "R402", "Single", "NaN")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "non-negative")

	r = run(t, dir, "rooms", "add", "R402", "Single")
	assert.Equal(t, 1, r.code)

	r = run(t, dir, "rooms", "remove", "R401")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Room removed.")

	r = run(t, dir, "rooms", "list")
	assert.NotContains(t, r.stdout, "R401")
}

func TestBookingLifecycle(t *testing.T) {
	dir := t.TempDir()

	r := run(t, dir, "reservations", "book", "R101", "Asha Rao", "98450", "2025-03-01", "2025-03-04")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Booked! Reservation ID: RES-1000")

	r = run(t, dir, "reservations", "book", "R101", "Ben", "1", "2025-03-01", "2025-03-02")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "Booking failed. Room not available.")

	r = run(t, dir, "rooms", "remove", "R101")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "Cannot remove room (it may have reservations).")

	r = run(t, dir, "rooms", "list", "--available")
	require.Equal(t, 0, r.code, r.stderr)
	assert.NotContains(t, r.stdout, "R101")
	assert.Contains(t, r.stdout, "R102")

	r = run(t, dir, "reservations", "list")
	assert.Contains(t, r.stdout, "RES-1000")
	assert.Contains(t, r.stdout, "Asha Rao")

	data, err := os.ReadFile(filepath.Join(dir, "reservations.csv"))
	require.NoError(t, err)
	assert.Equal(t, "RES-1000,R101,Asha Rao,98450,2025-03-01,2025-03-04\n", string(data))

	r = run(t, dir, "reservations", "book", "R102", "Ben", "1", "2025-03-01", "2025-03-02")
	assert.Contains(t, r.stdout, "RES-1001")

	r = run(t, dir, "reservations", "cancel", "RES-1000")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Reservation cancelled.")

	r = run(t, dir, "reservations", "cancel", "RES-1000")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "Cancellation failed.")

	r = run(t, dir, "rooms", "list", "--available")
	assert.Contains(t, r.stdout, "R101")
}

func TestBookRejectsBadStay(t *testing.T) {
	dir := t.TempDir()
	for _, args := range [][]string{
		{"R101", "Asha", "1", "2025-03-04", "2025-03-01"},
		{"R101", "Asha", "1", "2025-03-01", "2025-03-01"},
		{"R101", "Asha", "1", "03/01/2025", "2025-03-04"},
		{"R101", " ", "1", "2025-03-01", "2025-03-04"},
	} {
		t.Run(fmt.Sprint(args), func(t *testing.T) {
			r := run(t, dir, append([]string{"reservations", "book"}, args...)...)
			assert.Equal(t, 1, r.code)
		})
	}
	r := run(t, dir, "reservations", "list")
	assert.Contains(t, r.stdout, "No reservations.")
}

func TestUnknownBackend(t *testing.T) {
	var out, errb bytes.Buffer
	t.Setenv("LOG_LEVEL", "error")
	code := Execute(context.Background(), []string{"--backend", "floppy", "rooms", "list"}, &out, &errb)
	assert.Equal(t, 1, code)
	assert.Contains(t, errb.String(), "floppy")
}

func TestMemoryBackendLeavesNoFiles(t *testing.T) {
	dir := t.TempDir()
	var out, errb bytes.Buffer
	t.Setenv("LOG_LEVEL", "error")
	code := Execute(context.Background(), []string{"--backend", "memory", "--data-dir", dir, "rooms", "list"}, &out, &errb)
	require.Equal(t, 0, code, errb.String())
	assert.Contains(t, out.String(), "R301")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBadgerBackendPersistsAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LOG_LEVEL", "error")
	exec := func(args ...string) (int, string, string) {
		var out, errb bytes.Buffer
		code := Execute(context.Background(), append([]string{"--backend", "badger", "--data-dir", dir}, args...), &out, &errb)
		return code, out.String(), errb.String()
	}

	code, out, stderr := exec("reservations", "book", "R301", "Meera", "555", "2025-06-01", "2025-06-05")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "RES-1000")

	code, out, stderr = exec("reservations", "list")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "Meera")
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Room not found.", userMessage(fmt.Errorf("%w: R9", services.ErrRoomNotFound)))
	assert.Equal(t, "Error: boom", userMessage(fmt.Errorf("boom")))
}

func TestPriceAndDateValidators(t *testing.T) {
	p, err := parsePrice(" 1200.50 ")
	require.NoError(t, err)
	assert.Equal(t, 1200.5, p)
	assert.Error(t, validatePrice("abc"))
	assert.Error(t, validatePrice("-1"))
	assert.NoError(t, validatePrice("0"))
	for _, s := range []string{"NaN", "Inf", "+Inf", "-Inf", "1e400"} {
		assert.Error(t, validatePrice(s), s)
	}

	assert.NoError(t, validateDate("2025-12-31"))
	assert.Error(t, validateDate("2025-13-01"))

	_, _, err = parseStay("2025-01-02", "2025-01-01")
	assert.EqualError(t, err, "check-out must be after check-in")
	assert.Error(t, required("phone")("  "))
}

func TestAskBookingNeedsAvailableRoom(t *testing.T) {
	_, err := askBooking(context.Background(), formIO{}, nil)
	assert.ErrorIs(t, err, errNoAvailableRooms)
	assert.Equal(t, "No available rooms.", userMessage(err))
	assert.NotNil(t, formTheme())
}
