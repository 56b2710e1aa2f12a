package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auralis-io/auralis/internal/model"
)

func entry(id, styleID int, terminalID *int, start, end string) model.ScheduleEntry {
	return model.ScheduleEntry{ID: id, StyleID: styleID, TerminalID: terminalID, StartTime: start, EndTime: end}
}

func intp(v int) *int { return &v }

func TestResolveSpecificBeatsGlobal(t *testing.T) {
	entries := []model.ScheduleEntry{
		entry(1, 20, nil, "00:00", "23:59"),      // global, StyleB
		entry(2, 10, intp(7), "09:00", "12:00"), // terminal 7, StyleA
	}

	got := Resolve(entries, 7, "10:00")
	require.NotNil(t, got)
	assert.Equal(t, 10, got.StyleID)

	// A different terminal only sees the global entry.
	got = Resolve(entries, 8, "10:00")
	require.NotNil(t, got)
	assert.Equal(t, 20, got.StyleID)
}

func TestResolveNoMatch(t *testing.T) {
	entries := []model.ScheduleEntry{
		entry(1, 10, intp(7), "09:00", "12:00"),
	}
	assert.Nil(t, Resolve(entries, 7, "12:01"))
	assert.Nil(t, Resolve(entries, 7, "08:59"))
	assert.Nil(t, Resolve(nil, 7, "10:00"))
}

func TestResolveInclusiveBounds(t *testing.T) {
	entries := []model.ScheduleEntry{
		entry(1, 10, intp(7), "09:00", "12:00"),
	}
	for _, now := range []string{"09:00", "12:00"} {
		got := Resolve(entries, 7, now)
		require.NotNil(t, got, now)
		assert.Equal(t, 10, got.StyleID)
	}
}

func TestResolveFirstMatchWinsWithinScope(t *testing.T) {
	entries := []model.ScheduleEntry{
		entry(1, 10, intp(7), "09:00", "12:00"),
		entry(2, 20, intp(7), "09:00", "12:00"),
	}
	got := Resolve(entries, 7, "10:30")
	require.NotNil(t, got)
	assert.Equal(t, 10, got.StyleID)
}

func TestResolveRejectsMalformedClock(t *testing.T) {
	entries := []model.ScheduleEntry{
		entry(1, 10, nil, "00:00", "23:59"),
	}
	assert.Nil(t, Resolve(entries, 7, "9:00"))
	assert.Nil(t, Resolve(entries, 7, "25:00"))
	assert.Nil(t, Resolve(entries, 7, "10-00"))
}
