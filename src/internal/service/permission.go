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
	"tracker-api/src/config"
	"tracker-api/src/internal/constants"
	"tracker-api/src/internal/model"
	"tracker-api/src/internal/plugin"
)

// Actor is the authenticated principal performing a management operation,
// as extracted from the request token.
type Actor struct {
	UserID   string
	Username string
	Scopes   []string
}

// HasScope reports whether the actor's token carries a scope
func (a *Actor) HasScope(scope string) bool {
	for _, s := range a.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the actor carries the admin scope
func (a *Actor) IsAdmin() bool {
	return a.HasScope(constants.ScopeAdmin)
}

// PermissionService decides project management authorization. For actions
// plugins may override, the registered permission hooks are consulted first
// and the framework default applies only when every plugin abstains.
type PermissionService struct {
	registry *plugin.Registry
	cfg      *config.Projects
}

// NewPermissionService creates a new permission service instance
func NewPermissionService(registry *plugin.Registry, cfg *config.Projects) *PermissionService {
	return &PermissionService{
		registry: registry,
		cfg:      cfg,
	}
}

// CanCreateProjects reports whether the actor may create projects. Creation
// is open to everyone when PROJECTS_ALLOW_CREATION is set; otherwise the
// project:create scope (or admin) is required.
func (s *PermissionService) CanCreateProjects(actor *Actor) bool {
	if actor.IsAdmin() || actor.HasScope(constants.ScopeProjectCreate) {
		return true
	}
	return s.cfg.AllowCreation
}

// CanRemoveProject reports whether the actor may remove a project.
// Admins and the project owner qualify.
func (s *PermissionService) CanRemoveProject(actor *Actor, project *model.Project) bool {
	return actor.IsAdmin() || project.OwnerID == actor.UserID
}

// CanEditProject reports whether the actor may edit project settings.
// Plugins are consulted first; a hook deny binds non-admins only, and the
// framework default is admin or owner.
func (s *PermissionService) CanEditProject(actor *Actor, project *model.Project) bool {
	if result := s.registry.FirstPerm(actor.UserID, actor.Scopes, constants.ActionEditProject, project); result != nil {
		if *result {
			return true
		}
		return actor.IsAdmin()
	}
	return actor.IsAdmin() || project.OwnerID == actor.UserID
}

// CanConfigurePlugins reports whether the actor may change a project's
// plugin configuration. Plugins are consulted first; a hook deny binds
// non-admins only, and the framework default restricts configuration to
// admins.
func (s *PermissionService) CanConfigurePlugins(actor *Actor, project *model.Project) bool {
	if result := s.registry.FirstPerm(actor.UserID, actor.Scopes, constants.ActionConfigureProjectPlugin, project); result != nil {
		if *result {
			return true
		}
		return actor.IsAdmin()
	}
	return actor.IsAdmin()
}

// CanManagePlugins reports whether the actor may toggle which plugins are
// enabled on a project. The hook chain is consulted with the plugin
// configuration action; a hook deny binds non-admins only, and the
// framework default is admin or owner.
func (s *PermissionService) CanManagePlugins(actor *Actor, project *model.Project) bool {
	if result := s.registry.FirstPerm(actor.UserID, actor.Scopes, constants.ActionConfigureProjectPlugin, project); result != nil {
		if *result {
			return true
		}
		return actor.IsAdmin()
	}
	return actor.IsAdmin() || project.OwnerID == actor.UserID
}
