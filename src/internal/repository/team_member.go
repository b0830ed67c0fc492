package repository

import (
	"database/sql"
	"errors"
	"time"

	"tracker-api/src/internal/database"
	"tracker-api/src/internal/model"
)

// TeamMemberRepo implements TeamMemberRepository
type TeamMemberRepo struct {
	db *database.DB
}

// NewTeamMemberRepo creates a new team membership repository
func NewTeamMemberRepo(db *database.DB) TeamMemberRepository {
	return &TeamMemberRepo{db: db}
}

// CreateMember inserts a new team membership
func (r *TeamMemberRepo) CreateMember(member *model.TeamMember) error {
	member.CreatedAt = time.Now()

	query := `
		INSERT INTO team_members (uuid, team_id, user_id, type, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(r.db.Rebind(query), member.UUID, member.TeamID, member.UserID,
		member.Type, member.CreatedAt)
	return err
}

// GetMembersByTeamID retrieves all memberships of a team
func (r *TeamMemberRepo) GetMembersByTeamID(teamID string) ([]*model.TeamMember, error) {
	query := `
		SELECT uuid, team_id, user_id, type, created_at
		FROM team_members
		WHERE team_id = ?
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(r.db.Rebind(query), teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*model.TeamMember
	for rows.Next() {
		member := &model.TeamMember{}
		err := rows.Scan(&member.UUID, &member.TeamID, &member.UserID, &member.Type, &member.CreatedAt)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

// GetMemberByTeamAndUser retrieves a user's membership in a team
func (r *TeamMemberRepo) GetMemberByTeamAndUser(teamID, userID string) (*model.TeamMember, error) {
	member := &model.TeamMember{}
	query := `
		SELECT uuid, team_id, user_id, type, created_at
		FROM team_members
		WHERE team_id = ? AND user_id = ?
	`
	err := r.db.QueryRow(r.db.Rebind(query), teamID, userID).Scan(
		&member.UUID, &member.TeamID, &member.UserID, &member.Type, &member.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return member, nil
}

// DeleteMembersByTeamID removes all memberships of a team
func (r *TeamMemberRepo) DeleteMembersByTeamID(teamID string) error {
	query := `DELETE FROM team_members WHERE team_id = ?`
	_, err := r.db.Exec(r.db.Rebind(query), teamID)
	return err
}
