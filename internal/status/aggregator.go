// Package status builds the consolidated live view of all terminals that the
// operations dashboard polls. It is a pure projection over terminal rows;
// nothing is cached, the report is recomputed on every request.
package status

import (
	"sort"
	"time"

	"github.com/auralis-io/auralis/internal/model"
)

// Entry is one terminal in the live report.
type Entry struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Location     *string    `json:"location"`
	GroupName    *string    `json:"group_name"`
	StyleID      *int       `json:"style_id"`
	StyleName    *string    `json:"style_name"`
	Volume       int        `json:"volume"`
	IsPlaying    bool       `json:"is_playing"`
	IsAutoMode   bool       `json:"is_auto_mode"`
	LastPlayedAt *time.Time `json:"last_played_at"`
	Stale        bool       `json:"stale"`
}

type Stats struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	PlayingNow int `json:"playing_now"`
	AutoMode   int `json:"auto_mode"`
}

type Report struct {
	Stats    Stats   `json:"stats"`
	Playing  []Entry `json:"playing"`
	Paused   []Entry `json:"paused"`
	Inactive []Entry `json:"inactive"`
}

// Presence reports whether a terminal has heart-beaten recently. A playing
// terminal whose presence key has expired is flagged stale in the report.
// A nil Presence marks nothing stale.
type Presence func(terminalID int) bool

// Build partitions terminals into playing / paused / inactive and computes
// the summary counts. Each partition is ordered playing-first, then most
// recently played, then alphabetically, so the dashboard output is stable.
func Build(rows []model.TerminalOverview, present Presence) Report {
	sorted := make([]model.TerminalOverview, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := &sorted[i], &sorted[j]
		if a.IsPlaying != b.IsPlaying {
			return a.IsPlaying
		}
		if !timeEqual(a.LastPlayedAt, b.LastPlayedAt) {
			return timeAfter(a.LastPlayedAt, b.LastPlayedAt)
		}
		return a.Name < b.Name
	})

	var report Report
	report.Playing = []Entry{}
	report.Paused = []Entry{}
	report.Inactive = []Entry{}
	for _, row := range sorted {
		e := Entry{
			ID:           row.ID,
			Name:         row.Name,
			Location:     row.Location,
			GroupName:    row.GroupName,
			StyleID:      row.CurrentStyleID,
			StyleName:    row.StyleName,
			Volume:       row.Volume,
			IsPlaying:    row.IsPlaying,
			IsAutoMode:   row.IsAutoMode,
			LastPlayedAt: row.LastPlayedAt,
		}
		if row.IsPlaying && present != nil && !present(row.ID) {
			e.Stale = true
		}

		report.Stats.Total++
		switch {
		case !row.IsActive:
			report.Inactive = append(report.Inactive, e)
		case row.IsPlaying:
			report.Stats.Active++
			report.Stats.PlayingNow++
			report.Playing = append(report.Playing, e)
		default:
			report.Stats.Active++
			report.Paused = append(report.Paused, e)
		}
		if row.IsActive && row.IsAutoMode {
			report.Stats.AutoMode++
		}
	}
	return report
}

func timeEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// timeAfter orders non-nil before nil, then by recency.
func timeAfter(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}
