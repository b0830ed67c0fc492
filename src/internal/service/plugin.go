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
	"tracker-api/src/internal/constants"
	"tracker-api/src/internal/dto"
	"tracker-api/src/internal/model"
	"tracker-api/src/internal/plugin"
	"tracker-api/src/internal/repository"
	"tracker-api/src/internal/utils"
)

// Stored values for the reserved "enabled" plugin option
const (
	optionValueEnabled  = "1"
	optionValueDisabled = "0"
)

type PluginService struct {
	registry    *plugin.Registry
	projectRepo repository.ProjectRepository
	optionRepo  repository.PluginOptionRepository
	permissions *PermissionService
	events      *ProjectEventsService
}

func NewPluginService(registry *plugin.Registry, projectRepo repository.ProjectRepository,
	optionRepo repository.PluginOptionRepository, permissions *PermissionService,
	events *ProjectEventsService) *PluginService {
	return &PluginService{
		registry:    registry,
		projectRepo: projectRepo,
		optionRepo:  optionRepo,
		permissions: permissions,
		events:      events,
	}
}

// ListPlugins returns every registered plugin with its enablement on the
// project
func (s *PluginService) ListPlugins(actor *Actor, organizationID, projectID string) (*dto.PluginListResponse, error) {
	project, err := s.getOrgProject(organizationID, projectID)
	if err != nil {
		return nil, err
	}
	return s.buildPluginList(project)
}

// SetEnabledPlugins applies the full desired set of enabled plugin slugs to
// a project: every toggleable plugin in the set is enabled, every
// toggleable plugin outside it is disabled. Plugins that cannot be disabled
// and slugs not registered are ignored.
func (s *PluginService) SetEnabledPlugins(actor *Actor, organizationID, projectID string, slugs []string) (*dto.PluginListResponse, error) {
	project, err := s.getOrgProject(organizationID, projectID)
	if err != nil {
		return nil, err
	}

	if !s.permissions.CanManagePlugins(actor, project) {
		return nil, constants.ErrPermissionDenied
	}

	desired := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		desired[slug] = true
	}

	for _, p := range s.registry.All() {
		if !p.CanDisable {
			continue
		}
		value := optionValueDisabled
		if desired[p.Slug] {
			value = optionValueEnabled
		}
		if err := s.optionRepo.UpsertOption(project.UUID, p.Slug, constants.PluginOptionEnabled, value); err != nil {
			return nil, err
		}
	}

	utils.LogInfo("Project plugins updated: projectID=" + project.UUID)
	s.events.Publish(EventPluginsUpdated, organizationID, project.UUID, project.Name, actor.Username, nil)

	return s.buildPluginList(project)
}

// GetPluginConfig returns the declared configuration fields of a plugin
// with their stored values for the project. Secret values are redacted.
func (s *PluginService) GetPluginConfig(actor *Actor, organizationID, projectID, slug string) (*dto.PluginConfigResponse, error) {
	project, p, err := s.getConfigurablePlugin(actor, organizationID, projectID, slug)
	if err != nil {
		return nil, err
	}
	return s.buildConfigResponse(project, p)
}

// UpdatePluginConfig validates and stores submitted configuration values
// for a plugin on a project
func (s *PluginService) UpdatePluginConfig(actor *Actor, organizationID, projectID, slug string, values map[string]string) (*dto.PluginConfigResponse, error) {
	project, p, err := s.getConfigurablePlugin(actor, organizationID, projectID, slug)
	if err != nil {
		return nil, err
	}

	existing, err := s.optionRepo.GetOptionsByPlugin(project.UUID, p.Slug)
	if err != nil {
		return nil, err
	}

	if err := p.ValidateConfig(values, existing); err != nil {
		return nil, err
	}

	for key, value := range values {
		if err := s.optionRepo.UpsertOption(project.UUID, p.Slug, key, value); err != nil {
			return nil, err
		}
	}

	utils.LogInfo("Plugin configured: projectID=" + project.UUID + " plugin=" + p.Slug)
	s.events.Publish(EventPluginConfigured, organizationID, project.UUID, project.Name, actor.Username,
		map[string]string{"plugin": p.Slug})

	return s.buildConfigResponse(project, p)
}

// getConfigurablePlugin runs the shared guard chain for configuration
// endpoints: project exists, plugin registered, plugin enabled on the
// project, actor authorized, plugin declares configuration.
func (s *PluginService) getConfigurablePlugin(actor *Actor, organizationID, projectID, slug string) (*model.Project, *plugin.Plugin, error) {
	project, err := s.getOrgProject(organizationID, projectID)
	if err != nil {
		return nil, nil, err
	}

	p, ok := s.registry.Get(slug)
	if !ok {
		return nil, nil, constants.ErrPluginNotFound
	}

	enabled, err := s.isEnabled(project.UUID, p)
	if err != nil {
		return nil, nil, err
	}
	if !enabled {
		return nil, nil, constants.ErrPluginNotEnabled
	}

	if !s.permissions.CanConfigurePlugins(actor, project) {
		return nil, nil, constants.ErrPermissionDenied
	}

	if !p.HasConfig() {
		return nil, nil, constants.ErrPluginNotConfigurable
	}

	return project, p, nil
}

// isEnabled resolves a plugin's enablement on a project: plugins that
// cannot be disabled are always on; otherwise the stored "enabled" option
// decides, falling back to the plugin's default.
func (s *PluginService) isEnabled(projectID string, p *plugin.Plugin) (bool, error) {
	if !p.CanDisable {
		return true, nil
	}

	value, found, err := s.optionRepo.GetOption(projectID, p.Slug, constants.PluginOptionEnabled)
	if err != nil {
		return false, err
	}
	if !found {
		return p.EnabledByDefault, nil
	}
	return value == optionValueEnabled, nil
}

func (s *PluginService) buildPluginList(project *model.Project) (*dto.PluginListResponse, error) {
	plugins := s.registry.All()
	list := make([]*dto.PluginSummary, 0, len(plugins))
	for _, p := range plugins {
		enabled, err := s.isEnabled(project.UUID, p)
		if err != nil {
			return nil, err
		}
		list = append(list, &dto.PluginSummary{
			Slug:        p.Slug,
			Title:       p.Title,
			Description: p.Description,
			Enabled:     enabled,
			HasConfig:   p.HasConfig(),
			CanDisable:  p.CanDisable,
		})
	}
	return &dto.PluginListResponse{
		Count: len(list),
		List:  list,
	}, nil
}

func (s *PluginService) buildConfigResponse(project *model.Project, p *plugin.Plugin) (*dto.PluginConfigResponse, error) {
	stored, err := s.optionRepo.GetOptionsByPlugin(project.UUID, p.Slug)
	if err != nil {
		return nil, err
	}

	fields := make([]*dto.PluginConfigField, 0, len(p.ConfFields))
	for _, field := range p.ConfFields {
		value, ok := stored[field.Key]
		if !ok {
			value = field.Default
		}
		// Stored secrets never leave the server
		if field.Secret {
			value = ""
		}
		fields = append(fields, &dto.PluginConfigField{
			Key:      field.Key,
			Label:    field.Label,
			Type:     field.Type,
			Required: field.Required,
			Secret:   field.Secret,
			Choices:  field.Choices,
			Value:    value,
		})
	}

	return &dto.PluginConfigResponse{
		Slug:   p.Slug,
		Title:  p.Title,
		Fields: fields,
	}, nil
}

func (s *PluginService) getOrgProject(organizationID, projectID string) (*model.Project, error) {
	project, err := s.projectRepo.GetProjectByUUID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.OrganizationID != organizationID {
		return nil, constants.ErrProjectNotFound
	}
	return project, nil
}
