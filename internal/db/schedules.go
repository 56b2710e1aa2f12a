package db

import (
	"github.com/rs/zerolog/log"

	"github.com/auralis-io/auralis/internal/model"
)

func (s *pgStore) CreateScheduleEntry(styleID int, terminalID *int, startTime, endTime string) (model.ScheduleEntry, error) {
	var e model.ScheduleEntry
	q := `
	INSERT INTO schedule_entries (style_id, terminal_id, start_time, end_time)
	VALUES ($1, $2, $3, $4)
	RETURNING id, style_id, terminal_id, start_time, end_time, created_at, updated_at`
	if err := s.db.Get(&e, q, styleID, terminalID, startTime, endTime); err != nil {
		log.Error().Err(err).Msg("failed to create schedule entry")
		return model.ScheduleEntry{}, err
	}
	return e, nil
}

func (s *pgStore) ListScheduleEntries() ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := s.db.Select(&entries, `
		SELECT id, style_id, terminal_id, start_time, end_time, created_at, updated_at
		FROM schedule_entries
		ORDER BY id
		`)
	return entries, err
}

// ListScheduleEntriesForTerminal returns the entries the program resolver
// considers for one terminal: its own entries plus the global ones, in
// creation order. Resolution precedence lives in the schedule package.
func (s *pgStore) ListScheduleEntriesForTerminal(terminalID int) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := s.db.Select(&entries, `
		SELECT id, style_id, terminal_id, start_time, end_time, created_at, updated_at
		FROM schedule_entries
		WHERE terminal_id = $1 OR terminal_id IS NULL
		ORDER BY id
		`, terminalID)
	return entries, err
}

func (s *pgStore) UpdateScheduleEntry(id int, styleID *int, startTime, endTime *string) error {
	_, err := s.db.Exec(`
		UPDATE schedule_entries
		SET style_id = COALESCE($2, style_id),
		start_time = COALESCE($3, start_time),
		end_time = COALESCE($4, end_time),
		updated_at = now()
		WHERE id = $1
		`, id, styleID, startTime, endTime)
	return err
}

func (s *pgStore) DeleteScheduleEntry(id int) error {
	_, err := s.db.Exec(`DELETE FROM schedule_entries WHERE id = $1`, id)
	return err
}
