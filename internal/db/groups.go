package db

import (
	"fmt"

	"github.com/auralis-io/auralis/internal/model"
)

func (s *pgStore) CreateGroup(name string, description *string) (model.TerminalGroup, error) {
	var g model.TerminalGroup
	if name == "" {
		return g, fmt.Errorf("group name is required")
	}
	err := s.db.Get(&g, `
		INSERT INTO terminal_groups (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, created_at, updated_at
	`, name, description)
	return g, err
}

func (s *pgStore) ListGroups() ([]model.TerminalGroup, error) {
	var groups []model.TerminalGroup
	err := s.db.Select(&groups, `
		SELECT id, name, description, created_at, updated_at
		FROM terminal_groups
		ORDER BY name, id
		`)
	return groups, err
}

func (s *pgStore) RenameGroup(id int, name, description *string) (model.TerminalGroup, error) {
	var g model.TerminalGroup
	err := s.db.Get(&g, `
		UPDATE terminal_groups
		SET name = COALESCE($2, name),
		description = COALESCE($3, description),
		updated_at = now()
		WHERE id = $1
		RETURNING id, name, description, created_at, updated_at
		`, id, name, description)
	return g, err
}

func (s *pgStore) DeleteGroup(id int) error {
	_, err := s.db.Exec(`DELETE FROM terminal_groups WHERE id = $1`, id)
	return err
}
