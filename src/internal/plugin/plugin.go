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

package plugin

import (
	"fmt"

	"tracker-api/src/internal/constants"
	"tracker-api/src/internal/model"
)

// ConfigField declares one configuration field a plugin accepts per project
type ConfigField struct {
	Key      string
	Label    string
	Type     string // text | url | secret | choice
	Required bool
	Secret   bool
	Choices  []string
	Default  string
}

// PermissionHook lets a plugin override authorization for project actions.
// Return nil to abstain, &true to allow, &false to deny. The first plugin
// that does not abstain decides; otherwise the framework default applies.
type PermissionHook func(userID string, scopes []string, action string, project *model.Project) *bool

// Plugin is a registered extension: a descriptor (identity plus declared
// config fields) and optional behavior hooks.
type Plugin struct {
	Slug        string
	Title       string
	Description string

	// CanDisable reports whether enablement can be toggled per project.
	// Plugins with CanDisable false are always on.
	CanDisable bool

	// EnabledByDefault applies when no per-project enablement option is stored
	EnabledByDefault bool

	ConfFields []ConfigField

	// HasPerm is the authorization override hook; nil means always abstain
	HasPerm PermissionHook
}

// HasConfig reports whether the plugin declares any configuration fields
func (p *Plugin) HasConfig() bool {
	return len(p.ConfFields) > 0
}

// Field returns the declared config field for a key
func (p *Plugin) Field(key string) (*ConfigField, bool) {
	for i := range p.ConfFields {
		if p.ConfFields[i].Key == key {
			return &p.ConfFields[i], true
		}
	}
	return nil, false
}

// ValidateConfig checks submitted values against the declared fields.
// Unknown keys are rejected; required fields must be present in the
// submission or already stored; choice fields must hold a declared choice.
func (p *Plugin) ValidateConfig(values, existing map[string]string) error {
	for key := range values {
		if _, ok := p.Field(key); !ok {
			return fmt.Errorf("%w: unknown field %q", constants.ErrPluginOptionInvalid, key)
		}
	}

	for _, field := range p.ConfFields {
		value, submitted := values[field.Key]
		if !submitted {
			if _, stored := existing[field.Key]; field.Required && !stored {
				return fmt.Errorf("%w: field %q is required", constants.ErrPluginOptionInvalid, field.Key)
			}
			continue
		}

		if field.Required && value == "" {
			return fmt.Errorf("%w: field %q is required", constants.ErrPluginOptionInvalid, field.Key)
		}

		if field.Type == constants.PluginFieldTypeChoice && value != "" {
			valid := false
			for _, choice := range field.Choices {
				if value == choice {
					valid = true
					break
				}
			}
			if !valid {
				return fmt.Errorf("%w: field %q must be one of %v", constants.ErrPluginOptionInvalid, field.Key, field.Choices)
			}
		}
	}

	return nil
}
