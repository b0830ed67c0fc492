package dto

import (
	"time"
)

// ProjectEvent is pushed to connected dashboards when a project or its
// plugin configuration changes
type ProjectEvent struct {
	Type           string            `json:"type"`
	OrganizationID string            `json:"organization_id"`
	ProjectID      string            `json:"project_id"`
	ProjectName    string            `json:"project_name,omitempty"`
	Actor          string            `json:"actor,omitempty"`
	Data           map[string]string `json:"data,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
}
