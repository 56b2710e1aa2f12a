package db

import (
	"github.com/rs/zerolog/log"

	"github.com/auralis-io/auralis/internal/model"
)

func (s *pgStore) CreateStyle(name string, description, mixURL *string, duration *int) (model.Style, error) {
	var st model.Style
	q := `
	INSERT INTO styles (name, description, mix_url, duration)
	VALUES ($1, $2, $3, $4)
	RETURNING id, name, description, mix_url, duration, created_at, updated_at`
	if err := s.db.Get(&st, q, name, description, mixURL, duration); err != nil {
		log.Error().Err(err).Msg("failed to create style")
		return model.Style{}, err
	}
	return st, nil
}

func (s *pgStore) GetStyleByID(id int) (model.Style, error) {
	var st model.Style
	err := s.db.Get(&st, `
		SELECT id, name, description, mix_url, duration, created_at, updated_at
		FROM styles
		WHERE id = $1
		`, id)
	return st, err
}

func (s *pgStore) ListStyles() ([]model.Style, error) {
	var styles []model.Style
	err := s.db.Select(&styles, `
		SELECT id, name, description, mix_url, duration, created_at, updated_at
		FROM styles
		ORDER BY name, id
		`)
	return styles, err
}

func (s *pgStore) UpdateStyle(id int, name, description, mixURL *string, duration *int) error {
	_, err := s.db.Exec(`
		UPDATE styles
		SET name = COALESCE($2, name),
		description = COALESCE($3, description),
		mix_url = COALESCE($4, mix_url),
		duration = COALESCE($5, duration),
		updated_at = now()
		WHERE id = $1
		`, id, name, description, mixURL, duration)
	return err
}

func (s *pgStore) DeleteStyle(id int) error {
	_, err := s.db.Exec(`DELETE FROM styles WHERE id = $1`, id)
	return err
}
