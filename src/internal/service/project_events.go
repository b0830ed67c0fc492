package service

import (
	"encoding/json"
	"time"

	"tracker-api/src/internal/dto"
	"tracker-api/src/internal/utils"
)

// Dashboard event types
const (
	EventProjectCreated   = "project.created"
	EventProjectUpdated   = "project.updated"
	EventProjectRemoved   = "project.removed"
	EventProjectMerged    = "project.merged"
	EventProjectDisabled  = "project.disabled"
	EventPluginsUpdated   = "plugins.updated"
	EventPluginConfigured = "plugin.configured"
)

// Broadcaster fans a payload out to every dashboard of an organization and
// reports how many connections received it
type Broadcaster interface {
	Broadcast(orgID string, payload []byte) int
}

// ProjectEventsService publishes project lifecycle events to connected
// dashboards. Delivery is best effort; failures are logged and never fail
// the originating operation.
type ProjectEventsService struct {
	broadcaster Broadcaster
}

func NewProjectEventsService(broadcaster Broadcaster) *ProjectEventsService {
	return &ProjectEventsService{broadcaster: broadcaster}
}

// Publish sends one event to every dashboard of the organization
func (s *ProjectEventsService) Publish(eventType, organizationID, projectID, projectName, actor string, data map[string]string) {
	if s == nil || s.broadcaster == nil {
		return
	}

	event := &dto.ProjectEvent{
		Type:           eventType,
		OrganizationID: organizationID,
		ProjectID:      projectID,
		ProjectName:    projectName,
		Actor:          actor,
		Data:           data,
		Timestamp:      time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		utils.LogError("Failed to marshal dashboard event", err)
		return
	}

	s.broadcaster.Broadcast(organizationID, payload)
}
