/*
 *  Copyright (c) 2026, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package service

import (
	"strings"
	"time"

	"tracker-api/src/config"
	"tracker-api/src/internal/constants"
	"tracker-api/src/internal/dto"
	"tracker-api/src/internal/model"
	"tracker-api/src/internal/repository"
	"tracker-api/src/internal/utils"

	"github.com/google/uuid"
)

type ProjectService struct {
	projectRepo repository.ProjectRepository
	teamRepo    repository.TeamRepository
	memberRepo  repository.TeamMemberRepository
	keyRepo     repository.ProjectKeyRepository
	optionRepo  repository.PluginOptionRepository
	teamService *TeamService
	permissions *PermissionService
	events      *ProjectEventsService
	dsnCfg      *config.DSN
}

func NewProjectService(projectRepo repository.ProjectRepository, teamRepo repository.TeamRepository,
	memberRepo repository.TeamMemberRepository, keyRepo repository.ProjectKeyRepository,
	optionRepo repository.PluginOptionRepository, teamService *TeamService,
	permissions *PermissionService, events *ProjectEventsService, dsnCfg *config.DSN) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
		memberRepo:  memberRepo,
		keyRepo:     keyRepo,
		optionRepo:  optionRepo,
		teamService: teamService,
		permissions: permissions,
		events:      events,
		dsnCfg:      dsnCfg,
	}
}

// CreateProject creates a project together with its team, the owner's team
// membership and the owner's project key. The Owner field of the request is
// honored only for admin callers; everyone else becomes the owner themselves.
func (s *ProjectService) CreateProject(actor *Actor, organizationID string, req *dto.CreateProjectRequest) (*dto.Project, error) {
	if !s.permissions.CanCreateProjects(actor) {
		return nil, constants.ErrPermissionDenied
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, constants.ErrInvalidProjectName
	}

	ownerID := actor.UserID
	if req.Owner != "" && actor.IsAdmin() {
		ownerID = req.Owner
	}

	slug, err := s.resolveSlug(name, req.Slug, organizationID, "")
	if err != nil {
		return nil, err
	}

	// Every project gets its own team, created alongside it
	team, err := s.teamService.CreateTeam(name, "", organizationID, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	project := &model.Project{
		UUID:           uuid.New().String(),
		Name:           name,
		Slug:           slug,
		OrganizationID: organizationID,
		OwnerID:        ownerID,
		TeamID:         team.ID,
		Status:         constants.ProjectStatusActive,
		IsDefault:      false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.projectRepo.CreateProject(project); err != nil {
		return nil, err
	}

	// The owner gets a project key immediately so the DSN is available on
	// the first listing
	key := newProjectKey(project.UUID, ownerID)
	if err := s.keyRepo.CreateKey(key); err != nil {
		return nil, err
	}

	utils.LogInfo("Project created: projectID=" + project.UUID + " organizationID=" + organizationID)
	s.events.Publish(EventProjectCreated, organizationID, project.UUID, project.Name, actor.Username, nil)

	result := s.ModelToDTO(project)
	result.MemberType = constants.MemberTypeOwner
	if ownerID == actor.UserID {
		result.DSN = key.DSN(s.dsnCfg.Scheme, s.dsnCfg.Host)
	}
	return result, nil
}

// ListProjects returns the projects visible to the actor within the
// organization, each annotated with the actor's membership type and DSN.
// Admins see every project of the organization.
func (s *ProjectService) ListProjects(actor *Actor, organizationID string) (*dto.ProjectListResponse, error) {
	var (
		projects []*model.Project
		err      error
	)
	if actor.IsAdmin() {
		projects, err = s.projectRepo.GetProjectsByOrganizationID(organizationID)
	} else {
		projects, err = s.projectRepo.GetProjectsByUserID(organizationID, actor.UserID)
	}
	if err != nil {
		return nil, err
	}

	list := make([]*dto.Project, 0, len(projects))
	for _, project := range projects {
		item := s.ModelToDTO(project)
		if err := s.annotateForActor(actor, project, item); err != nil {
			return nil, err
		}
		list = append(list, item)
	}

	return &dto.ProjectListResponse{
		Count: len(list),
		List:  list,
		Pagination: dto.Pagination{
			Total:  len(list),
			Offset: 0,
			Limit:  len(list),
		},
	}, nil
}

// GetProject returns one project with the member list of its team
func (s *ProjectService) GetProject(actor *Actor, organizationID, projectID string) (*dto.ProjectDetailResponse, error) {
	project, err := s.getOrgProject(organizationID, projectID)
	if err != nil {
		return nil, err
	}

	item := s.ModelToDTO(project)
	if err := s.annotateForActor(actor, project, item); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.GetMembersByTeamID(project.TeamID)
	if err != nil {
		return nil, err
	}
	memberList := make([]*dto.TeamMember, 0, len(members))
	for _, member := range members {
		memberList = append(memberList, memberModelToDTO(member))
	}

	return &dto.ProjectDetailResponse{
		Project: item,
		Members: memberList,
	}, nil
}

// UpdateProject changes project settings. Authorization is decided through
// the plugin permission hooks with an admin-or-owner fallback.
func (s *ProjectService) UpdateProject(actor *Actor, organizationID, projectID string, req *dto.UpdateProjectRequest) (*dto.Project, error) {
	project, err := s.getOrgProject(organizationID, projectID)
	if err != nil {
		return nil, err
	}

	if !s.permissions.CanEditProject(actor, project) {
		return nil, constants.ErrPermissionDenied
	}

	if req.Name != "" {
		project.Name = strings.TrimSpace(req.Name)
		if project.Name == "" {
			return nil, constants.ErrInvalidProjectName
		}
	}

	if req.Slug != "" && req.Slug != project.Slug {
		slug, slugErr := s.resolveSlug(project.Name, req.Slug, organizationID, project.UUID)
		if slugErr != nil {
			return nil, slugErr
		}
		project.Slug = slug
	}

	// Ownership transfer is restricted to admins
	if req.Owner != "" && actor.IsAdmin() {
		project.OwnerID = req.Owner
	}

	if req.Status != "" {
		if !constants.ValidProjectStatuses[req.Status] {
			return nil, constants.ErrInvalidProjectStatus
		}
		project.Status = req.Status
	}

	project.UpdatedAt = time.Now()
	if err := s.projectRepo.UpdateProject(project); err != nil {
		return nil, err
	}

	s.events.Publish(EventProjectUpdated, organizationID, project.UUID, project.Name, actor.Username, nil)
	return s.ModelToDTO(project), nil
}

// RemoveProject removes a project in one of three modes: delete outright,
// merge its keys and plugin options into another project before deleting,
// or disable it in place. The organization's default project can never be
// removed.
func (s *ProjectService) RemoveProject(actor *Actor, organizationID, projectID string, req *dto.RemoveProjectRequest) error {
	project, err := s.getOrgProject(organizationID, projectID)
	if err != nil {
		return err
	}

	if project.IsDefault {
		return constants.ErrCannotRemoveDefaultProject
	}

	if !s.permissions.CanRemoveProject(actor, project) {
		return constants.ErrPermissionDenied
	}

	switch req.RemovalType {
	case constants.RemovalTypeDelete:
		if err := s.deleteProjectCascade(project); err != nil {
			return err
		}
		utils.LogInfo("Project deleted: projectID=" + project.UUID)
		s.events.Publish(EventProjectRemoved, organizationID, project.UUID, project.Name, actor.Username, nil)
		return nil

	case constants.RemovalTypeMerge:
		target, mergeErr := s.resolveMergeTarget(organizationID, project, req.TargetProjectID)
		if mergeErr != nil {
			return mergeErr
		}
		if err := s.keyRepo.MoveKeysToProject(project.UUID, target.UUID); err != nil {
			return err
		}
		if err := s.optionRepo.MoveOptionsToProject(project.UUID, target.UUID); err != nil {
			return err
		}
		if err := s.deleteProjectCascade(project); err != nil {
			return err
		}
		utils.LogInfo("Project merged: projectID=" + project.UUID + " targetProjectID=" + target.UUID)
		s.events.Publish(EventProjectMerged, organizationID, project.UUID, project.Name, actor.Username,
			map[string]string{"target_project_id": target.UUID})
		return nil

	case constants.RemovalTypeDisable:
		if err := s.projectRepo.UpdateProjectStatus(project.UUID, constants.ProjectStatusDisabled); err != nil {
			return err
		}
		utils.LogInfo("Project disabled: projectID=" + project.UUID)
		s.events.Publish(EventProjectDisabled, organizationID, project.UUID, project.Name, actor.Username, nil)
		return nil

	default:
		// The request binding rejects unknown modes, but the service guards
		// anyway for non-HTTP callers
		return constants.ErrUnknownRemovalType
	}
}

// getOrgProject looks up a project and hides projects of other
// organizations behind a not-found error
func (s *ProjectService) getOrgProject(organizationID, projectID string) (*model.Project, error) {
	project, err := s.projectRepo.GetProjectByUUID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.OrganizationID != organizationID {
		return nil, constants.ErrProjectNotFound
	}
	return project, nil
}

func (s *ProjectService) resolveMergeTarget(organizationID string, source *model.Project, targetID string) (*model.Project, error) {
	if targetID == "" {
		return nil, constants.ErrMergeTargetRequired
	}
	if targetID == source.UUID {
		return nil, constants.ErrMergeIntoSelf
	}

	target, err := s.projectRepo.GetProjectByUUID(targetID)
	if err != nil {
		return nil, err
	}
	if target == nil || target.OrganizationID != organizationID {
		return nil, constants.ErrMergeTargetNotFound
	}
	return target, nil
}

// deleteProjectCascade removes the project with its keys and plugin
// options. The project's team is removed as well once it no longer backs
// any project.
func (s *ProjectService) deleteProjectCascade(project *model.Project) error {
	if err := s.keyRepo.DeleteKeysByProjectID(project.UUID); err != nil {
		return err
	}
	if err := s.optionRepo.DeleteOptionsByProjectID(project.UUID); err != nil {
		return err
	}
	if err := s.projectRepo.DeleteProject(project.UUID); err != nil {
		return err
	}

	remaining, err := s.projectRepo.CountProjectsByTeamID(project.TeamID)
	if err != nil {
		return err
	}
	if remaining == 0 {
		if err := s.memberRepo.DeleteMembersByTeamID(project.TeamID); err != nil {
			return err
		}
		if err := s.teamRepo.DeleteTeam(project.TeamID); err != nil {
			return err
		}
	}
	return nil
}

// annotateForActor fills the per-user listing annotations: the actor's
// membership type in the project's team and the actor's DSN when a project
// key exists
func (s *ProjectService) annotateForActor(actor *Actor, project *model.Project, item *dto.Project) error {
	member, err := s.memberRepo.GetMemberByTeamAndUser(project.TeamID, actor.UserID)
	if err != nil {
		return err
	}
	if member != nil {
		item.MemberType = member.Type
	}

	key, err := s.keyRepo.GetKeyByProjectAndUser(project.UUID, actor.UserID)
	if err != nil {
		return err
	}
	if key != nil {
		item.DSN = key.DSN(s.dsnCfg.Scheme, s.dsnCfg.Host)
	}
	return nil
}

// resolveSlug validates a caller-supplied slug or derives one from the
// project name, guaranteeing uniqueness within the organization. excludeID
// ignores the project being updated during duplicate checks.
func (s *ProjectService) resolveSlug(name, slug, organizationID, excludeID string) (string, error) {
	existsCheck := func(candidate string) bool {
		existing, err := s.projectRepo.GetProjectBySlug(organizationID, candidate)
		if err != nil {
			// Treat lookup failures as collisions so generation retries
			return true
		}
		return existing != nil && existing.UUID != excludeID
	}

	if slug != "" {
		if err := utils.ValidateSlug(slug); err != nil {
			return "", err
		}
		if existsCheck(slug) {
			return "", constants.ErrProjectExists
		}
		return slug, nil
	}

	return utils.GenerateSlug(name, existsCheck)
}

// newProjectKey mints a credential pair for a user on a project
func newProjectKey(projectID, userID string) *model.ProjectKey {
	return &model.ProjectKey{
		UUID:      uuid.New().String(),
		ProjectID: projectID,
		UserID:    userID,
		PublicKey: strings.ReplaceAll(uuid.New().String(), "-", ""),
		SecretKey: strings.ReplaceAll(uuid.New().String(), "-", ""),
		CreatedAt: time.Now(),
	}
}

// Mapping functions
func (s *ProjectService) ModelToDTO(project *model.Project) *dto.Project {
	if project == nil {
		return nil
	}

	return &dto.Project{
		ID:             project.UUID,
		Name:           project.Name,
		Slug:           project.Slug,
		OrganizationID: project.OrganizationID,
		OwnerID:        project.OwnerID,
		TeamID:         project.TeamID,
		Status:         project.Status,
		IsDefault:      project.IsDefault,
		CreatedAt:      project.CreatedAt,
		UpdatedAt:      project.UpdatedAt,
	}
}

func (s *ProjectService) DtoToModel(project *dto.Project) *model.Project {
	if project == nil {
		return nil
	}

	return &model.Project{
		UUID:           project.ID,
		Name:           project.Name,
		Slug:           project.Slug,
		OrganizationID: project.OrganizationID,
		OwnerID:        project.OwnerID,
		TeamID:         project.TeamID,
		Status:         project.Status,
		IsDefault:      project.IsDefault,
		CreatedAt:      project.CreatedAt,
		UpdatedAt:      project.UpdatedAt,
	}
}
