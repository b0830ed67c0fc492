package dto

import (
	"time"
)

// Project represents a project as exposed by the management API. MemberType
// and DSN are annotations for the requesting user and are only populated on
// listing endpoints.
type Project struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	OrganizationID string    `json:"organization_id"`
	OwnerID        string    `json:"owner_id"`
	TeamID         string    `json:"team_id"`
	Status         string    `json:"status"`
	IsDefault      bool      `json:"is_default"`
	MemberType     string    `json:"member_type,omitempty"`
	DSN            string    `json:"dsn,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Pagination describes the window of a list response
type Pagination struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ProjectListResponse is the standard list envelope for projects
type ProjectListResponse struct {
	Count      int        `json:"count"`
	List       []*Project `json:"list"`
	Pagination Pagination `json:"pagination"`
}

// ProjectDetailResponse is the single-project envelope with the member list
// of the project's team
type ProjectDetailResponse struct {
	Project *Project      `json:"project"`
	Members []*TeamMember `json:"members"`
}

// CreateProjectRequest is the payload for POST /api/v1/projects.
// Owner is honored only for admin callers.
type CreateProjectRequest struct {
	Name  string `json:"name" binding:"required,min=3,max=64"`
	Slug  string `json:"slug" binding:"omitempty,min=3,max=63"`
	Owner string `json:"owner" binding:"omitempty"`
}

// UpdateProjectRequest is the payload for PUT /api/v1/projects/:projectId
type UpdateProjectRequest struct {
	Name   string `json:"name" binding:"omitempty,min=3,max=64"`
	Slug   string `json:"slug" binding:"omitempty,min=3,max=63"`
	Owner  string `json:"owner" binding:"omitempty"`
	Status string `json:"status" binding:"omitempty,oneof=active disabled"`
}

// RemoveProjectRequest selects the removal mode for DELETE
// /api/v1/projects/:projectId. RemovalType "1" deletes, "2" merges into
// TargetProjectID, "3" disables.
type RemoveProjectRequest struct {
	RemovalType     string `json:"removal_type" binding:"required,oneof=1 2 3"`
	TargetProjectID string `json:"target_project_id" binding:"omitempty"`
}
