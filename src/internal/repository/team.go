package repository

import (
	"database/sql"
	"errors"
	"time"

	"tracker-api/src/internal/database"
	"tracker-api/src/internal/model"
)

// TeamRepo implements TeamRepository
type TeamRepo struct {
	db *database.DB
}

// NewTeamRepo creates a new team repository
func NewTeamRepo(db *database.DB) TeamRepository {
	return &TeamRepo{db: db}
}

const teamColumns = `uuid, name, slug, organization_id, owner_id, created_at, updated_at`

func scanTeam(row interface{ Scan(...interface{}) error }) (*model.Team, error) {
	team := &model.Team{}
	err := row.Scan(
		&team.UUID, &team.Name, &team.Slug, &team.OrganizationID, &team.OwnerID,
		&team.CreatedAt, &team.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return team, nil
}

// CreateTeam inserts a new team
func (r *TeamRepo) CreateTeam(team *model.Team) error {
	team.CreatedAt = time.Now()
	team.UpdatedAt = time.Now()

	query := `
		INSERT INTO teams (` + teamColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(r.db.Rebind(query), team.UUID, team.Name, team.Slug,
		team.OrganizationID, team.OwnerID, team.CreatedAt, team.UpdatedAt)
	return err
}

// GetTeamByUUID retrieves a team by ID
func (r *TeamRepo) GetTeamByUUID(uuid string) (*model.Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM teams
		WHERE uuid = ?
	`
	team, err := scanTeam(r.db.QueryRow(r.db.Rebind(query), uuid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return team, nil
}

// GetTeamBySlug retrieves a team by slug within an organization
func (r *TeamRepo) GetTeamBySlug(orgID, slug string) (*model.Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM teams
		WHERE organization_id = ? AND slug = ?
	`
	team, err := scanTeam(r.db.QueryRow(r.db.Rebind(query), orgID, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return team, nil
}

// GetTeamsByOrganizationID retrieves all teams for an organization
func (r *TeamRepo) GetTeamsByOrganizationID(orgID string) ([]*model.Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM teams
		WHERE organization_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(r.db.Rebind(query), orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*model.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// DeleteTeam removes a team
func (r *TeamRepo) DeleteTeam(uuid string) error {
	query := `DELETE FROM teams WHERE uuid = ?`
	_, err := r.db.Exec(r.db.Rebind(query), uuid)
	return err
}
