package model

import (
	"time"
)

// Project represents a project entity in the error tracking platform.
// Every project belongs to exactly one team; the team is created together
// with the project.
type Project struct {
	UUID           string    `json:"uuid" db:"uuid"`
	Name           string    `json:"name" db:"name"`
	Slug           string    `json:"slug" db:"slug"`
	OrganizationID string    `json:"organization_id" db:"organization_id"` // FK to the owning organization
	OwnerID        string    `json:"owner_id" db:"owner_id"`
	TeamID         string    `json:"team_id" db:"team_id"` // FK to Team.UUID
	Status         string    `json:"status" db:"status"`   // active | disabled
	IsDefault      bool      `json:"is_default" db:"is_default"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Project model
func (Project) TableName() string {
	return "projects"
}
