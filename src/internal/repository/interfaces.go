package repository

import "tracker-api/src/internal/model"

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	CreateProject(project *model.Project) error
	GetProjectByUUID(uuid string) (*model.Project, error)
	GetProjectBySlug(orgID, slug string) (*model.Project, error)
	GetProjectsByOrganizationID(orgID string) ([]*model.Project, error)
	GetProjectsByUserID(orgID, userID string) ([]*model.Project, error)
	UpdateProject(project *model.Project) error
	UpdateProjectStatus(uuid, status string) error
	DeleteProject(uuid string) error
	CountProjectsByTeamID(teamID string) (int, error)
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	CreateTeam(team *model.Team) error
	GetTeamByUUID(uuid string) (*model.Team, error)
	GetTeamBySlug(orgID, slug string) (*model.Team, error)
	GetTeamsByOrganizationID(orgID string) ([]*model.Team, error)
	DeleteTeam(uuid string) error
}

// TeamMemberRepository defines the interface for team membership data access
type TeamMemberRepository interface {
	CreateMember(member *model.TeamMember) error
	GetMembersByTeamID(teamID string) ([]*model.TeamMember, error)
	GetMemberByTeamAndUser(teamID, userID string) (*model.TeamMember, error)
	DeleteMembersByTeamID(teamID string) error
}

// ProjectKeyRepository defines the interface for project key data access
type ProjectKeyRepository interface {
	CreateKey(key *model.ProjectKey) error
	GetKeyByProjectAndUser(projectID, userID string) (*model.ProjectKey, error)
	GetKeysByProjectID(projectID string) ([]*model.ProjectKey, error)
	MoveKeysToProject(srcProjectID, dstProjectID string) error
	DeleteKeysByProjectID(projectID string) error
}

// PluginOptionRepository defines the interface for per-project plugin
// option storage
type PluginOptionRepository interface {
	UpsertOption(projectID, pluginSlug, key, value string) error
	GetOption(projectID, pluginSlug, key string) (string, bool, error)
	GetOptionsByPlugin(projectID, pluginSlug string) (map[string]string, error)
	MoveOptionsToProject(srcProjectID, dstProjectID string) error
	DeleteOptionsByProjectID(projectID string) error
}
