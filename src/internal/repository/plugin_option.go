package repository

import (
	"database/sql"
	"errors"
	"time"

	"tracker-api/src/internal/database"
)

// PluginOptionRepo implements PluginOptionRepository
type PluginOptionRepo struct {
	db *database.DB
}

// NewPluginOptionRepo creates a new plugin option repository
func NewPluginOptionRepo(db *database.DB) PluginOptionRepository {
	return &PluginOptionRepo{db: db}
}

// UpsertOption stores a plugin option value for a project, replacing any
// previous value for the same key
func (r *PluginOptionRepo) UpsertOption(projectID, pluginSlug, key, value string) error {
	query := `
		INSERT INTO plugin_options (project_id, plugin_slug, key, value, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (project_id, plugin_slug, key)
		DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	_, err := r.db.Exec(r.db.Rebind(query), projectID, pluginSlug, key, value, time.Now())
	return err
}

// GetOption retrieves a single plugin option value. The second return value
// reports whether the option is set.
func (r *PluginOptionRepo) GetOption(projectID, pluginSlug, key string) (string, bool, error) {
	query := `
		SELECT value FROM plugin_options
		WHERE project_id = ? AND plugin_slug = ? AND key = ?
	`
	var value string
	err := r.db.QueryRow(r.db.Rebind(query), projectID, pluginSlug, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// GetOptionsByPlugin retrieves all options stored for a plugin on a project
func (r *PluginOptionRepo) GetOptionsByPlugin(projectID, pluginSlug string) (map[string]string, error) {
	query := `
		SELECT key, value FROM plugin_options
		WHERE project_id = ? AND plugin_slug = ?
	`
	rows, err := r.db.Query(r.db.Rebind(query), projectID, pluginSlug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	options := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		options[key] = value
	}

	return options, rows.Err()
}

// MoveOptionsToProject reassigns plugin options from one project to another
// during a merge. Options already set on the destination win; conflicting
// source options are left behind and removed with the source project.
func (r *PluginOptionRepo) MoveOptionsToProject(srcProjectID, dstProjectID string) error {
	query := `
		UPDATE plugin_options
		SET project_id = ?
		WHERE project_id = ?
		  AND NOT EXISTS (
			SELECT 1 FROM plugin_options dst
			WHERE dst.project_id = ? AND dst.plugin_slug = plugin_options.plugin_slug AND dst.key = plugin_options.key
		  )
	`
	_, err := r.db.Exec(r.db.Rebind(query), dstProjectID, srcProjectID, dstProjectID)
	return err
}

// DeleteOptionsByProjectID removes all plugin options of a project
func (r *PluginOptionRepo) DeleteOptionsByProjectID(projectID string) error {
	query := `DELETE FROM plugin_options WHERE project_id = ?`
	_, err := r.db.Exec(r.db.Rebind(query), projectID)
	return err
}
