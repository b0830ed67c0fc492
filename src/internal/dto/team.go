package dto

import (
	"time"
)

// Team represents a team as exposed by the management API
type Team struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	OrganizationID string    `json:"organization_id"`
	OwnerID        string    `json:"owner_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TeamMember represents a user's membership within a team
type TeamMember struct {
	ID     string `json:"id"`
	TeamID string `json:"team_id"`
	UserID string `json:"user_id"`
	Type   string `json:"type"`
}

// TeamListResponse is the standard list envelope for teams
type TeamListResponse struct {
	Count      int        `json:"count"`
	List       []*Team    `json:"list"`
	Pagination Pagination `json:"pagination"`
}

// TeamMemberListResponse is the standard list envelope for team members
type TeamMemberListResponse struct {
	Count int           `json:"count"`
	List  []*TeamMember `json:"list"`
}

// CreateTeamRequest is the payload for POST /api/v1/teams
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,min=3,max=64"`
	Slug string `json:"slug" binding:"omitempty,min=3,max=63"`
}
