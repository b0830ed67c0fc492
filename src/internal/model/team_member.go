package model

import (
	"time"
)

// TeamMember is the join entity between users and teams. A user's
// membership in a project is resolved through the project's team.
// Exactly one owner membership is created when a team is created.
type TeamMember struct {
	UUID      string    `json:"uuid" db:"uuid"`
	TeamID    string    `json:"team_id" db:"team_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Type      string    `json:"type" db:"type"` // owner | member
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the TeamMember model
func (TeamMember) TableName() string {
	return "team_members"
}
