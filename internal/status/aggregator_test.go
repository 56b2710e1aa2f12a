package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auralis-io/auralis/internal/model"
)

func overview(id int, name string, playing, active, auto bool, lastPlayed *time.Time) model.TerminalOverview {
	return model.TerminalOverview{Terminal: model.Terminal{
		ID: id, Name: name, IsPlaying: playing, IsActive: active,
		IsAutoMode: auto, LastPlayedAt: lastPlayed, Volume: 70,
	}}
}

func TestBuildPartitionsAndCounts(t *testing.T) {
	now := time.Now()
	rows := []model.TerminalOverview{
		overview(1, "Downtown", true, true, true, &now),
		overview(2, "Airport", false, true, false, &now),
		overview(3, "Harbor", false, false, true, nil),
	}

	report := Build(rows, nil)

	require.Len(t, report.Playing, 1)
	require.Len(t, report.Paused, 1)
	require.Len(t, report.Inactive, 1)
	assert.Equal(t, "Downtown", report.Playing[0].Name)
	assert.Equal(t, "Airport", report.Paused[0].Name)
	assert.Equal(t, "Harbor", report.Inactive[0].Name)

	assert.Equal(t, Stats{Total: 3, Active: 2, PlayingNow: 1, AutoMode: 1}, report.Stats)
}

func TestBuildOrderingChain(t *testing.T) {
	older := time.Now().Add(-time.Hour)
	newer := time.Now()
	rows := []model.TerminalOverview{
		overview(1, "Zeta", false, true, false, &older),
		overview(2, "Alpha", false, true, false, &older),
		overview(3, "Mid", false, true, false, &newer),
		overview(4, "Playing", true, true, false, nil),
		overview(5, "Never", false, true, false, nil),
	}

	report := Build(rows, nil)

	require.Len(t, report.Playing, 1)
	assert.Equal(t, "Playing", report.Playing[0].Name)

	names := make([]string, 0, len(report.Paused))
	for _, e := range report.Paused {
		names = append(names, e.Name)
	}
	// most recent first, then alphabetical, never-played last
	assert.Equal(t, []string{"Mid", "Alpha", "Zeta", "Never"}, names)
}

func TestBuildMarksStalePlayers(t *testing.T) {
	now := time.Now()
	rows := []model.TerminalOverview{
		overview(1, "Fresh", true, true, false, &now),
		overview(2, "Ghost", true, true, false, &now),
		overview(3, "Paused", false, true, false, &now),
	}
	present := func(id int) bool { return id == 1 }

	report := Build(rows, present)

	require.Len(t, report.Playing, 2)
	for _, e := range report.Playing {
		assert.Equal(t, e.Name == "Ghost", e.Stale, e.Name)
	}
	// paused terminals are never stale regardless of presence
	assert.False(t, report.Paused[0].Stale)
}
