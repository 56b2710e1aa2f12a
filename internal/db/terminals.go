package db

import (
	"github.com/rs/zerolog/log"

	"github.com/auralis-io/auralis/internal/model"
)

const terminalColumns = `
	id, device_id, name, location, group_id, current_style_id, volume,
	is_playing, is_auto_mode, is_active, paired, last_played_at,
	created_at, updated_at`

func (s *pgStore) CreateTerminal(name string, location *string) (model.Terminal, error) {
	var t model.Terminal
	q := `
	INSERT INTO terminals (name, location)
	VALUES ($1, $2)
	RETURNING ` + terminalColumns
	if err := s.db.Get(&t, q, name, location); err != nil {
		log.Error().Err(err).Msg("failed to create terminal")
		return model.Terminal{}, err
	}
	return t, nil
}

func (s *pgStore) GetTerminalByID(id int) (model.Terminal, error) {
	var t model.Terminal
	err := s.db.Get(&t, `
		SELECT `+terminalColumns+`
		FROM terminals
		WHERE id = $1
		`, id)
	return t, err
}

func (s *pgStore) GetTerminalByDeviceID(deviceID string) (model.Terminal, error) {
	var t model.Terminal
	err := s.db.Get(&t, `
		SELECT `+terminalColumns+`
		FROM terminals
		WHERE device_id = $1
		`, deviceID)
	return t, err
}

func (s *pgStore) ListTerminals() ([]model.Terminal, error) {
	var terminals []model.Terminal
	err := s.db.Select(&terminals, `
		SELECT `+terminalColumns+`
		FROM terminals
		ORDER BY id
		`)
	return terminals, err
}

// ListTerminalOverviews joins terminals with style and group names for the
// live status view.
func (s *pgStore) ListTerminalOverviews() ([]model.TerminalOverview, error) {
	var rows []model.TerminalOverview
	err := s.db.Select(&rows, `
		SELECT t.id, t.device_id, t.name, t.location, t.group_id,
		       t.current_style_id, t.volume, t.is_playing, t.is_auto_mode,
		       t.is_active, t.paired, t.last_played_at, t.created_at, t.updated_at,
		       st.name AS style_name, g.name AS group_name
		FROM terminals t
		LEFT JOIN styles st ON st.id = t.current_style_id
		LEFT JOIN terminal_groups g ON g.id = t.group_id
		ORDER BY t.id
		`)
	return rows, err
}

func (s *pgStore) UpdateTerminal(id int, name, location *string) error {
	_, err := s.db.Exec(`
		UPDATE terminals
		SET name = COALESCE($2, name),
		location = COALESCE($3, location),
		updated_at = now()
		WHERE id = $1
		`, id, name, location)
	return err
}

func (s *pgStore) DeleteTerminal(id int) error {
	_, err := s.db.Exec(`DELETE FROM terminals WHERE id = $1`, id)
	return err
}

func (s *pgStore) PairTerminal(id int, deviceID string) error {
	_, err := s.db.Exec(`
		UPDATE terminals
		SET device_id = $2,
		paired = TRUE,
		updated_at = now()
		WHERE id = $1
		`, id, deviceID)
	return err
}

func (s *pgStore) SetTerminalActive(id int, active bool) error {
	_, err := s.db.Exec(`
		UPDATE terminals
		SET is_active = $2,
		updated_at = now()
		WHERE id = $1
		`, id, active)
	return err
}

func (s *pgStore) SetTerminalAutoMode(id int, auto bool) error {
	_, err := s.db.Exec(`
		UPDATE terminals
		SET is_auto_mode = $2,
		updated_at = now()
		WHERE id = $1
		`, id, auto)
	return err
}

func (s *pgStore) SetTerminalVolume(id int, volume int) error {
	_, err := s.db.Exec(`
		UPDATE terminals
		SET volume = $2,
		updated_at = now()
		WHERE id = $1
		`, id, volume)
	return err
}

func (s *pgStore) SetTerminalGroup(terminalID int, groupID *int) error {
	_, err := s.db.Exec(`
		UPDATE terminals
		SET group_id = $2,
		updated_at = now()
		WHERE id = $1
		`, terminalID, groupID)
	return err
}
