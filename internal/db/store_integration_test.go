package db

import (
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var initTestDBOnce sync.Once

// integrationStore skips unless TEST_DATABASE_URL points at a disposable
// Postgres. These tests exercise the real upsert SQL that the in-memory
// fake only mirrors.
func integrationStore(t *testing.T) Store {
	t.Helper()
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	var err error
	initTestDBOnce.Do(func() { err = InitTestDB("../../migrations") })
	if err != nil {
		t.Fatalf("init test db: %v", err)
	}
	if TestStore == nil {
		t.Skip("test database unavailable")
	}
	return TestStore
}

func TestRecordHeartbeatAgainstPostgres(t *testing.T) {
	store := integrationStore(t)

	terminal, err := store.CreateTerminal("it-heartbeat-terminal", nil)
	require.NoError(t, err)
	mix := "https://cdn.example.com/it-heartbeat.mp3"
	style, err := store.CreateStyle("it-heartbeat-style", nil, &mix, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.DeleteTerminal(terminal.ID)
		_ = store.DeleteStyle(style.ID)
	})

	_, _, position, err := store.ChangeTerminalStyle(terminal.ID, style.ID)
	require.NoError(t, err)
	assert.Zero(t, position, "never-played pair starts at 0")

	for _, pos := range []int{10, 20, 30} {
		require.NoError(t, store.RecordHeartbeat(terminal.ID, pos, true))
	}
	// a stop-save persists the position without extending the session
	require.NoError(t, store.RecordHeartbeat(terminal.ID, 42, false))

	got, err := store.GetProgress(terminal.ID, style.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	sessions, err := store.ListPlaySessions(&terminal.ID, &style.ID, nil)
	require.NoError(t, err)
	require.Len(t, sessions, 1, "same day accumulates one row")
	assert.Equal(t, 30, sessions[0].TotalPlayed)

	_, _, resumed, err := store.ChangeTerminalStyle(terminal.ID, style.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, resumed)

	updated, err := store.GetTerminalByID(terminal.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsPlaying)
	assert.NotNil(t, updated.LastPlayedAt)
}

func TestChangeTerminalStyleRejectsMixlessAgainstPostgres(t *testing.T) {
	store := integrationStore(t)

	terminal, err := store.CreateTerminal("it-mixless-terminal", nil)
	require.NoError(t, err)
	style, err := store.CreateStyle("it-mixless-style", nil, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.DeleteTerminal(terminal.ID)
		_ = store.DeleteStyle(style.ID)
	})

	_, _, _, err = store.ChangeTerminalStyle(terminal.ID, style.ID)
	assert.ErrorIs(t, err, ErrStyleUnavailable)

	unchanged, err := store.GetTerminalByID(terminal.ID)
	require.NoError(t, err)
	assert.Nil(t, unchanged.CurrentStyleID)
}
