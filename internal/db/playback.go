package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/auralis-io/auralis/internal/model"
)

// heartbeatQuantum is the number of seconds credited to the day's play
// session per heartbeat. The heartbeat cadence is the unit of accounting; a
// missed tick under-counts and a duplicate tick over-counts.
const heartbeatQuantum = 10

// RecordHeartbeat applies one heartbeat atomically: stamp the terminal's
// last_played_at and is_playing, upsert the progress row for the terminal's
// active style, and extend today's play session when the terminal is playing.
func (s *pgStore) RecordHeartbeat(terminalID, position int, isPlaying bool) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin heartbeat tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var styleID *int
	err = tx.Get(&styleID, `
		UPDATE terminals
		SET last_played_at = now(),
		is_playing = $2,
		updated_at = now()
		WHERE id = $1
		RETURNING current_style_id
		`, terminalID, isPlaying)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return fmt.Errorf("stamp terminal: %w", err)
	}

	// Progress and sessions are keyed by the active style. A terminal that
	// has never selected a style still gets its last_played_at stamped.
	if styleID == nil {
		return tx.Commit()
	}

	_, err = tx.Exec(`
		INSERT INTO playback_progress (terminal_id, style_id, last_position, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (terminal_id, style_id)
		DO UPDATE SET last_position = $3, updated_at = now()
		`, terminalID, *styleID, position)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}

	if isPlaying {
		_, err = tx.Exec(`
			INSERT INTO play_sessions (terminal_id, style_id, day, started_at, ended_at, total_played)
			VALUES ($1, $2, CURRENT_DATE, now(), now(), $3)
			ON CONFLICT (terminal_id, style_id, day)
			DO UPDATE SET total_played = play_sessions.total_played + $3, ended_at = now()
			`, terminalID, *styleID, heartbeatQuantum)
		if err != nil {
			return fmt.Errorf("accumulate session: %w", err)
		}
	}

	return tx.Commit()
}

// ChangeTerminalStyle makes styleID the terminal's active style and returns
// the terminal, the style, and the resume position previously saved for that
// specific style (0 when the pair has never played).
func (s *pgStore) ChangeTerminalStyle(terminalID, styleID int) (model.Terminal, model.Style, int, error) {
	style, err := s.GetStyleByID(styleID)
	if err != nil {
		return model.Terminal{}, model.Style{}, 0, err
	}
	if style.MixURL == nil || *style.MixURL == "" {
		return model.Terminal{}, model.Style{}, 0, ErrStyleUnavailable
	}

	_, err = s.db.Exec(`
		UPDATE terminals
		SET current_style_id = $2,
		updated_at = now()
		WHERE id = $1
		`, terminalID, styleID)
	if err != nil {
		log.Error().Err(err).Int("terminal", terminalID).Msg("failed to change terminal style")
		return model.Terminal{}, model.Style{}, 0, err
	}

	terminal, err := s.GetTerminalByID(terminalID)
	if err != nil {
		return model.Terminal{}, model.Style{}, 0, err
	}

	position, err := s.GetProgress(terminalID, styleID)
	if err != nil {
		return model.Terminal{}, model.Style{}, 0, err
	}
	return terminal, style, position, nil
}

// GetProgress returns the saved resume position for a (terminal, style)
// pair, or 0 when no heartbeat has ever been recorded for it.
func (s *pgStore) GetProgress(terminalID, styleID int) (int, error) {
	var position int
	err := s.db.Get(&position, `
		SELECT last_position
		FROM playback_progress
		WHERE terminal_id = $1 AND style_id = $2
		`, terminalID, styleID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return position, err
}
