package repository

import (
	"database/sql"
	"errors"
	"time"

	"tracker-api/src/internal/database"
	"tracker-api/src/internal/model"
)

// ProjectRepo implements ProjectRepository
type ProjectRepo struct {
	db *database.DB
}

// NewProjectRepo creates a new project repository
func NewProjectRepo(db *database.DB) ProjectRepository {
	return &ProjectRepo{db: db}
}

const projectColumns = `uuid, name, slug, organization_id, owner_id, team_id, status, is_default, created_at, updated_at`

func scanProject(row interface{ Scan(...interface{}) error }) (*model.Project, error) {
	project := &model.Project{}
	err := row.Scan(
		&project.UUID, &project.Name, &project.Slug, &project.OrganizationID, &project.OwnerID,
		&project.TeamID, &project.Status, &project.IsDefault, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return project, nil
}

// CreateProject inserts a new project
func (r *ProjectRepo) CreateProject(project *model.Project) error {
	project.CreatedAt = time.Now()
	project.UpdatedAt = time.Now()

	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(r.db.Rebind(query), project.UUID, project.Name, project.Slug,
		project.OrganizationID, project.OwnerID, project.TeamID, project.Status,
		project.IsDefault, project.CreatedAt, project.UpdatedAt)
	return err
}

// GetProjectByUUID retrieves a project by ID
func (r *ProjectRepo) GetProjectByUUID(uuid string) (*model.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE uuid = ?
	`
	project, err := scanProject(r.db.QueryRow(r.db.Rebind(query), uuid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return project, nil
}

// GetProjectBySlug retrieves a project by slug within an organization
func (r *ProjectRepo) GetProjectBySlug(orgID, slug string) (*model.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE organization_id = ? AND slug = ?
	`
	project, err := scanProject(r.db.QueryRow(r.db.Rebind(query), orgID, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return project, nil
}

// GetProjectsByOrganizationID retrieves all projects for an organization
func (r *ProjectRepo) GetProjectsByOrganizationID(orgID string) ([]*model.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE organization_id = ?
		ORDER BY created_at DESC
	`
	return r.queryProjects(query, orgID)
}

// GetProjectsByUserID retrieves the projects a user can see in an
// organization: projects whose team the user belongs to. Disabled projects
// are included.
func (r *ProjectRepo) GetProjectsByUserID(orgID, userID string) ([]*model.Project, error) {
	query := `
		SELECT p.uuid, p.name, p.slug, p.organization_id, p.owner_id, p.team_id, p.status, p.is_default, p.created_at, p.updated_at
		FROM projects p
		INNER JOIN team_members tm ON tm.team_id = p.team_id
		WHERE p.organization_id = ? AND tm.user_id = ?
		ORDER BY p.created_at DESC
	`
	return r.queryProjects(query, orgID, userID)
}

func (r *ProjectRepo) queryProjects(query string, args ...interface{}) ([]*model.Project, error) {
	rows, err := r.db.Query(r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// UpdateProject modifies an existing project
func (r *ProjectRepo) UpdateProject(project *model.Project) error {
	project.UpdatedAt = time.Now()
	query := `
		UPDATE projects
		SET name = ?, slug = ?, owner_id = ?, status = ?, updated_at = ?
		WHERE uuid = ?
	`
	_, err := r.db.Exec(r.db.Rebind(query), project.Name, project.Slug, project.OwnerID,
		project.Status, project.UpdatedAt, project.UUID)
	return err
}

// UpdateProjectStatus sets the status flag without touching other fields
func (r *ProjectRepo) UpdateProjectStatus(uuid, status string) error {
	query := `UPDATE projects SET status = ?, updated_at = ? WHERE uuid = ?`
	_, err := r.db.Exec(r.db.Rebind(query), status, time.Now(), uuid)
	return err
}

// DeleteProject removes a project
func (r *ProjectRepo) DeleteProject(uuid string) error {
	query := `DELETE FROM projects WHERE uuid = ?`
	_, err := r.db.Exec(r.db.Rebind(query), uuid)
	return err
}

// CountProjectsByTeamID counts projects referencing a team
func (r *ProjectRepo) CountProjectsByTeamID(teamID string) (int, error) {
	query := `SELECT COUNT(*) FROM projects WHERE team_id = ?`
	var count int
	err := r.db.QueryRow(r.db.Rebind(query), teamID).Scan(&count)
	return count, err
}
