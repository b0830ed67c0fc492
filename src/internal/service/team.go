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
	"time"

	"tracker-api/src/internal/constants"
	"tracker-api/src/internal/dto"
	"tracker-api/src/internal/model"
	"tracker-api/src/internal/repository"
	"tracker-api/src/internal/utils"

	"github.com/google/uuid"
)

type TeamService struct {
	teamRepo   repository.TeamRepository
	memberRepo repository.TeamMemberRepository
}

func NewTeamService(teamRepo repository.TeamRepository, memberRepo repository.TeamMemberRepository) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
	}
}

// CreateTeam creates a team and enrolls the owner as its single initial
// member with the owner membership type.
func (s *TeamService) CreateTeam(name, slug, organizationID, ownerID string) (*dto.Team, error) {
	if name == "" {
		return nil, constants.ErrInvalidTeamName
	}

	slug, err := s.resolveSlug(name, slug, organizationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	team := &model.Team{
		UUID:           uuid.New().String(),
		Name:           name,
		Slug:           slug,
		OrganizationID: organizationID,
		OwnerID:        ownerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.teamRepo.CreateTeam(team); err != nil {
		return nil, err
	}

	// The owner is the team's only initial member
	member := &model.TeamMember{
		UUID:      uuid.New().String(),
		TeamID:    team.UUID,
		UserID:    ownerID,
		Type:      constants.MemberTypeOwner,
		CreatedAt: now,
	}
	if err := s.memberRepo.CreateMember(member); err != nil {
		return nil, err
	}

	utils.LogInfo("Team created: teamID=" + team.UUID + " organizationID=" + organizationID)
	return s.ModelToDTO(team), nil
}

func (s *TeamService) GetTeamByID(teamID string) (*dto.Team, error) {
	team, err := s.teamRepo.GetTeamByUUID(teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, constants.ErrTeamNotFound
	}
	return s.ModelToDTO(team), nil
}

func (s *TeamService) GetTeamsByOrganization(organizationID string) (*dto.TeamListResponse, error) {
	teams, err := s.teamRepo.GetTeamsByOrganizationID(organizationID)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.Team, 0, len(teams))
	for _, team := range teams {
		list = append(list, s.ModelToDTO(team))
	}
	return &dto.TeamListResponse{
		Count: len(list),
		List:  list,
		Pagination: dto.Pagination{
			Total:  len(list),
			Offset: 0,
			Limit:  len(list),
		},
	}, nil
}

// GetTeamMembers returns the member list of a team. The team must belong to
// the caller's organization.
func (s *TeamService) GetTeamMembers(teamID, organizationID string) (*dto.TeamMemberListResponse, error) {
	team, err := s.teamRepo.GetTeamByUUID(teamID)
	if err != nil {
		return nil, err
	}
	if team == nil || team.OrganizationID != organizationID {
		return nil, constants.ErrTeamNotFound
	}

	members, err := s.memberRepo.GetMembersByTeamID(teamID)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.TeamMember, 0, len(members))
	for _, member := range members {
		list = append(list, memberModelToDTO(member))
	}
	return &dto.TeamMemberListResponse{
		Count: len(list),
		List:  list,
	}, nil
}

// resolveSlug validates a caller-supplied slug or derives one from the team
// name, guaranteeing uniqueness within the organization
func (s *TeamService) resolveSlug(name, slug, organizationID string) (string, error) {
	existsCheck := func(candidate string) bool {
		existing, err := s.teamRepo.GetTeamBySlug(organizationID, candidate)
		if err != nil {
			// Treat lookup failures as collisions so generation retries
			return true
		}
		return existing != nil
	}

	if slug != "" {
		if err := utils.ValidateSlug(slug); err != nil {
			return "", err
		}
		if existsCheck(slug) {
			return "", constants.ErrTeamExists
		}
		return slug, nil
	}

	return utils.GenerateSlug(name, existsCheck)
}

// Mapping functions
func (s *TeamService) ModelToDTO(team *model.Team) *dto.Team {
	if team == nil {
		return nil
	}

	return &dto.Team{
		ID:             team.UUID,
		Name:           team.Name,
		Slug:           team.Slug,
		OrganizationID: team.OrganizationID,
		OwnerID:        team.OwnerID,
		CreatedAt:      team.CreatedAt,
		UpdatedAt:      team.UpdatedAt,
	}
}

func memberModelToDTO(member *model.TeamMember) *dto.TeamMember {
	if member == nil {
		return nil
	}

	return &dto.TeamMember{
		ID:     member.UUID,
		TeamID: member.TeamID,
		UserID: member.UserID,
		Type:   member.Type,
	}
}
