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

package constants

import "errors"

var (
	ErrProjectNotFound            = errors.New("project not found")
	ErrProjectExists              = errors.New("project slug already exists in organization")
	ErrInvalidProjectName         = errors.New("invalid project name")
	ErrInvalidProjectStatus       = errors.New("invalid project status")
	ErrCannotRemoveDefaultProject = errors.New("the default project cannot be removed")
	ErrUnknownRemovalType         = errors.New("unknown removal type")
	ErrMergeTargetRequired        = errors.New("merge target project is required")
	ErrMergeTargetNotFound        = errors.New("merge target project not found")
	ErrMergeIntoSelf              = errors.New("project cannot be merged into itself")
)

var (
	ErrTeamNotFound    = errors.New("team not found")
	ErrTeamExists      = errors.New("team slug already exists in organization")
	ErrInvalidTeamName = errors.New("invalid team name")
)

var (
	ErrPluginNotFound        = errors.New("plugin not found")
	ErrPluginNotEnabled      = errors.New("plugin is not enabled for project")
	ErrPluginNotConfigurable = errors.New("plugin has no configuration")
	ErrPluginSlugExists      = errors.New("plugin slug already registered")
	ErrPluginOptionInvalid   = errors.New("invalid plugin option value")
)

var ErrPermissionDenied = errors.New("permission denied")
