package model

import (
	"time"
)

// Team represents a group of users sharing access to one or more projects
type Team struct {
	UUID           string    `json:"uuid" db:"uuid"`
	Name           string    `json:"name" db:"name"`
	Slug           string    `json:"slug" db:"slug"`
	OrganizationID string    `json:"organization_id" db:"organization_id"`
	OwnerID        string    `json:"owner_id" db:"owner_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Team model
func (Team) TableName() string {
	return "teams"
}
