package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2025, time.February, 28)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-02-28"`, string(b))

	var got Date
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, d, got)

	assert.Error(t, json.Unmarshal([]byte(`"28/02/2025"`), &got))
}

func TestDateOfDropsClock(t *testing.T) {
	ts := time.Date(2025, time.May, 4, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, NewDate(2025, time.May, 4), DateOf(ts))
}

func TestRoomString(t *testing.T) {
	r := Room{RoomID: "R101", Category: "Single", Price: 1200, Available: true}
	assert.Equal(t, "R101 - Single - ₹1200 - Available", r.String())
	r.Available = false
	assert.Equal(t, "Booked", r.Status())
}
