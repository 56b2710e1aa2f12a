package db

import (
	"strconv"

	"github.com/auralis-io/auralis/internal/model"
)

// ListPlaySessions returns accumulated listening facts, newest day first.
// Each filter is optional; day is a "YYYY-MM-DD" string.
func (s *pgStore) ListPlaySessions(terminalID, styleID *int, day *string) ([]model.PlaySession, error) {
	q := `
		SELECT id, terminal_id, style_id, day, started_at, ended_at, total_played
		FROM play_sessions
		WHERE 1=1`
	args := []any{}
	if terminalID != nil {
		args = append(args, *terminalID)
		q += ` AND terminal_id = $` + strconv.Itoa(len(args))
	}
	if styleID != nil {
		args = append(args, *styleID)
		q += ` AND style_id = $` + strconv.Itoa(len(args))
	}
	if day != nil {
		args = append(args, *day)
		q += ` AND day = $` + strconv.Itoa(len(args))
	}
	q += ` ORDER BY day DESC, terminal_id, style_id`

	var sessions []model.PlaySession
	err := s.db.Select(&sessions, q, args...)
	return sessions, err
}
