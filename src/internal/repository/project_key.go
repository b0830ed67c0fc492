package repository

import (
	"database/sql"
	"errors"
	"time"

	"tracker-api/src/internal/database"
	"tracker-api/src/internal/model"
)

// ProjectKeyRepo implements ProjectKeyRepository
type ProjectKeyRepo struct {
	db *database.DB
}

// NewProjectKeyRepo creates a new project key repository
func NewProjectKeyRepo(db *database.DB) ProjectKeyRepository {
	return &ProjectKeyRepo{db: db}
}

// CreateKey inserts a new project key
func (r *ProjectKeyRepo) CreateKey(key *model.ProjectKey) error {
	key.CreatedAt = time.Now()

	query := `
		INSERT INTO project_keys (uuid, project_id, user_id, public_key, secret_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(r.db.Rebind(query), key.UUID, key.ProjectID, key.UserID,
		key.PublicKey, key.SecretKey, key.CreatedAt)
	return err
}

// GetKeyByProjectAndUser retrieves a user's key for a project
func (r *ProjectKeyRepo) GetKeyByProjectAndUser(projectID, userID string) (*model.ProjectKey, error) {
	key := &model.ProjectKey{}
	query := `
		SELECT uuid, project_id, user_id, public_key, secret_key, created_at
		FROM project_keys
		WHERE project_id = ? AND user_id = ?
	`
	err := r.db.QueryRow(r.db.Rebind(query), projectID, userID).Scan(
		&key.UUID, &key.ProjectID, &key.UserID, &key.PublicKey, &key.SecretKey, &key.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return key, nil
}

// GetKeysByProjectID retrieves all keys for a project
func (r *ProjectKeyRepo) GetKeysByProjectID(projectID string) ([]*model.ProjectKey, error) {
	query := `
		SELECT uuid, project_id, user_id, public_key, secret_key, created_at
		FROM project_keys
		WHERE project_id = ?
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(r.db.Rebind(query), projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []*model.ProjectKey
	for rows.Next() {
		key := &model.ProjectKey{}
		err := rows.Scan(&key.UUID, &key.ProjectID, &key.UserID, &key.PublicKey, &key.SecretKey, &key.CreatedAt)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

// MoveKeysToProject reassigns keys from one project to another during a
// merge. Keys whose user already holds a key on the destination are left
// behind (the caller deletes leftovers with the source project).
func (r *ProjectKeyRepo) MoveKeysToProject(srcProjectID, dstProjectID string) error {
	query := `
		UPDATE project_keys
		SET project_id = ?
		WHERE project_id = ?
		  AND user_id NOT IN (SELECT user_id FROM project_keys WHERE project_id = ?)
	`
	_, err := r.db.Exec(r.db.Rebind(query), dstProjectID, srcProjectID, dstProjectID)
	return err
}

// DeleteKeysByProjectID removes all keys of a project
func (r *ProjectKeyRepo) DeleteKeysByProjectID(projectID string) error {
	query := `DELETE FROM project_keys WHERE project_id = ?`
	_, err := r.db.Exec(r.db.Rebind(query), projectID)
	return err
}
