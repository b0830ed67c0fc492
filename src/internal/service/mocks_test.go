package service

import (
	"tracker-api/src/config"
	"tracker-api/src/internal/model"
	"tracker-api/src/internal/plugin"
)

// In-memory repository fakes. Each stores rows in maps and mirrors the SQL
// implementations' conventions: lookups return (nil, nil) when no row
// matches, forced errors short-circuit every method.

type mockProjectRepo struct {
	projects map[string]*model.Project
	err      error
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[string]*model.Project)}
}

func (m *mockProjectRepo) CreateProject(project *model.Project) error {
	if m.err != nil {
		return m.err
	}
	clone := *project
	m.projects[project.UUID] = &clone
	return nil
}

func (m *mockProjectRepo) GetProjectByUUID(uuid string) (*model.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	project, ok := m.projects[uuid]
	if !ok {
		return nil, nil
	}
	clone := *project
	return &clone, nil
}

func (m *mockProjectRepo) GetProjectBySlug(orgID, slug string) (*model.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, project := range m.projects {
		if project.OrganizationID == orgID && project.Slug == slug {
			clone := *project
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockProjectRepo) GetProjectsByOrganizationID(orgID string) ([]*model.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []*model.Project
	for _, project := range m.projects {
		if project.OrganizationID == orgID {
			clone := *project
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (m *mockProjectRepo) GetProjectsByUserID(orgID, userID string) ([]*model.Project, error) {
	// Membership filtering lives in SQL; the fake approximates it through
	// ownership, which is what the service tests exercise
	if m.err != nil {
		return nil, m.err
	}
	var result []*model.Project
	for _, project := range m.projects {
		if project.OrganizationID == orgID && project.OwnerID == userID {
			clone := *project
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (m *mockProjectRepo) UpdateProject(project *model.Project) error {
	if m.err != nil {
		return m.err
	}
	clone := *project
	m.projects[project.UUID] = &clone
	return nil
}

func (m *mockProjectRepo) UpdateProjectStatus(uuid, status string) error {
	if m.err != nil {
		return m.err
	}
	if project, ok := m.projects[uuid]; ok {
		project.Status = status
	}
	return nil
}

func (m *mockProjectRepo) DeleteProject(uuid string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.projects, uuid)
	return nil
}

func (m *mockProjectRepo) CountProjectsByTeamID(teamID string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	count := 0
	for _, project := range m.projects {
		if project.TeamID == teamID {
			count++
		}
	}
	return count, nil
}

type mockTeamRepo struct {
	teams map[string]*model.Team
	err   error
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{teams: make(map[string]*model.Team)}
}

func (m *mockTeamRepo) CreateTeam(team *model.Team) error {
	if m.err != nil {
		return m.err
	}
	clone := *team
	m.teams[team.UUID] = &clone
	return nil
}

func (m *mockTeamRepo) GetTeamByUUID(uuid string) (*model.Team, error) {
	if m.err != nil {
		return nil, m.err
	}
	team, ok := m.teams[uuid]
	if !ok {
		return nil, nil
	}
	clone := *team
	return &clone, nil
}

func (m *mockTeamRepo) GetTeamBySlug(orgID, slug string) (*model.Team, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, team := range m.teams {
		if team.OrganizationID == orgID && team.Slug == slug {
			clone := *team
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockTeamRepo) GetTeamsByOrganizationID(orgID string) ([]*model.Team, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []*model.Team
	for _, team := range m.teams {
		if team.OrganizationID == orgID {
			clone := *team
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (m *mockTeamRepo) DeleteTeam(uuid string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.teams, uuid)
	return nil
}

type mockMemberRepo struct {
	members []*model.TeamMember
	err     error
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{}
}

func (m *mockMemberRepo) CreateMember(member *model.TeamMember) error {
	if m.err != nil {
		return m.err
	}
	clone := *member
	m.members = append(m.members, &clone)
	return nil
}

func (m *mockMemberRepo) GetMembersByTeamID(teamID string) ([]*model.TeamMember, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []*model.TeamMember
	for _, member := range m.members {
		if member.TeamID == teamID {
			clone := *member
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (m *mockMemberRepo) GetMemberByTeamAndUser(teamID, userID string) (*model.TeamMember, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, member := range m.members {
		if member.TeamID == teamID && member.UserID == userID {
			clone := *member
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockMemberRepo) DeleteMembersByTeamID(teamID string) error {
	if m.err != nil {
		return m.err
	}
	var kept []*model.TeamMember
	for _, member := range m.members {
		if member.TeamID != teamID {
			kept = append(kept, member)
		}
	}
	m.members = kept
	return nil
}

type mockKeyRepo struct {
	keys []*model.ProjectKey
	err  error
}

func newMockKeyRepo() *mockKeyRepo {
	return &mockKeyRepo{}
}

func (m *mockKeyRepo) CreateKey(key *model.ProjectKey) error {
	if m.err != nil {
		return m.err
	}
	clone := *key
	m.keys = append(m.keys, &clone)
	return nil
}

func (m *mockKeyRepo) GetKeyByProjectAndUser(projectID, userID string) (*model.ProjectKey, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, key := range m.keys {
		if key.ProjectID == projectID && key.UserID == userID {
			clone := *key
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockKeyRepo) GetKeysByProjectID(projectID string) ([]*model.ProjectKey, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []*model.ProjectKey
	for _, key := range m.keys {
		if key.ProjectID == projectID {
			clone := *key
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (m *mockKeyRepo) MoveKeysToProject(srcProjectID, dstProjectID string) error {
	if m.err != nil {
		return m.err
	}
	for _, key := range m.keys {
		if key.ProjectID != srcProjectID {
			continue
		}
		conflict := false
		for _, other := range m.keys {
			if other.ProjectID == dstProjectID && other.UserID == key.UserID {
				conflict = true
				break
			}
		}
		if !conflict {
			key.ProjectID = dstProjectID
		}
	}
	return nil
}

func (m *mockKeyRepo) DeleteKeysByProjectID(projectID string) error {
	if m.err != nil {
		return m.err
	}
	var kept []*model.ProjectKey
	for _, key := range m.keys {
		if key.ProjectID != projectID {
			kept = append(kept, key)
		}
	}
	m.keys = kept
	return nil
}

type optionKey struct {
	projectID  string
	pluginSlug string
	key        string
}

type mockOptionRepo struct {
	options map[optionKey]string
	err     error
}

func newMockOptionRepo() *mockOptionRepo {
	return &mockOptionRepo{options: make(map[optionKey]string)}
}

func (m *mockOptionRepo) UpsertOption(projectID, pluginSlug, key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.options[optionKey{projectID, pluginSlug, key}] = value
	return nil
}

func (m *mockOptionRepo) GetOption(projectID, pluginSlug, key string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	value, ok := m.options[optionKey{projectID, pluginSlug, key}]
	return value, ok, nil
}

func (m *mockOptionRepo) GetOptionsByPlugin(projectID, pluginSlug string) (map[string]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make(map[string]string)
	for k, v := range m.options {
		if k.projectID == projectID && k.pluginSlug == pluginSlug {
			result[k.key] = v
		}
	}
	return result, nil
}

func (m *mockOptionRepo) MoveOptionsToProject(srcProjectID, dstProjectID string) error {
	if m.err != nil {
		return m.err
	}
	for k, v := range m.options {
		if k.projectID != srcProjectID {
			continue
		}
		dst := optionKey{dstProjectID, k.pluginSlug, k.key}
		if _, exists := m.options[dst]; !exists {
			m.options[dst] = v
			delete(m.options, k)
		}
	}
	return nil
}

func (m *mockOptionRepo) DeleteOptionsByProjectID(projectID string) error {
	if m.err != nil {
		return m.err
	}
	for k := range m.options {
		if k.projectID == projectID {
			delete(m.options, k)
		}
	}
	return nil
}

// mockBroadcaster records published dashboard events
type mockBroadcaster struct {
	payloads [][]byte
}

func (m *mockBroadcaster) Broadcast(orgID string, payload []byte) int {
	m.payloads = append(m.payloads, payload)
	return 1
}

// testEnv bundles the fakes and services for one test case
type testEnv struct {
	projectRepo *mockProjectRepo
	teamRepo    *mockTeamRepo
	memberRepo  *mockMemberRepo
	keyRepo     *mockKeyRepo
	optionRepo  *mockOptionRepo
	broadcaster *mockBroadcaster
	registry    *plugin.Registry

	teams    *TeamService
	projects *ProjectService
	plugins  *PluginService
}

func newTestEnv(projectsCfg config.Projects) *testEnv {
	env := &testEnv{
		projectRepo: newMockProjectRepo(),
		teamRepo:    newMockTeamRepo(),
		memberRepo:  newMockMemberRepo(),
		keyRepo:     newMockKeyRepo(),
		optionRepo:  newMockOptionRepo(),
		broadcaster: &mockBroadcaster{},
		registry:    plugin.NewRegistry(),
	}

	events := NewProjectEventsService(env.broadcaster)
	permissions := NewPermissionService(env.registry, &projectsCfg)
	env.teams = NewTeamService(env.teamRepo, env.memberRepo)
	env.projects = NewProjectService(env.projectRepo, env.teamRepo, env.memberRepo, env.keyRepo,
		env.optionRepo, env.teams, permissions, events, &config.DSN{Scheme: "https", Host: "tracker.example.com"})
	env.plugins = NewPluginService(env.registry, env.projectRepo, env.optionRepo, permissions, events)

	return env
}
