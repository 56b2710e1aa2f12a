package db

import (
	"github.com/rs/zerolog/log"

	"github.com/auralis-io/auralis/internal/model"
)

func (s *pgStore) RecordActivity(terminalID int, action string, details *string) error {
	_, err := s.db.Exec(`
		INSERT INTO activity_log (terminal_id, action, details)
		VALUES ($1, $2, $3)
		`, terminalID, action, details)
	if err != nil {
		log.Error().Err(err).Int("terminal", terminalID).Str("action", action).
			Msg("failed to record activity")
	}
	return err
}

func (s *pgStore) ListActivity(terminalID *int, limit, offset int) ([]model.ActivityEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var entries []model.ActivityEntry
	if terminalID != nil {
		err := s.db.Select(&entries, `
			SELECT id, terminal_id, action, details, created_at
			FROM activity_log
			WHERE terminal_id = $1
			ORDER BY id DESC
			LIMIT $2 OFFSET $3
			`, *terminalID, limit, offset)
		return entries, err
	}
	err := s.db.Select(&entries, `
		SELECT id, terminal_id, action, details, created_at
		FROM activity_log
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
		`, limit, offset)
	return entries, err
}
