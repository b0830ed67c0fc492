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
	"errors"
	"testing"

	"tracker-api/src/internal/constants"
	"tracker-api/src/internal/dto"
	"tracker-api/src/internal/model"
	"tracker-api/src/internal/plugin"
)

// registerTestPlugins loads a representative plugin set: a toggleable
// configurable plugin, an always-on plugin, and a plugin without config
func registerTestPlugins(t *testing.T, env *testEnv) {
	t.Helper()

	plugins := []*plugin.Plugin{
		{
			Slug:       "webhooks",
			Title:      "WebHooks",
			CanDisable: true,
			ConfFields: []plugin.ConfigField{
				{Key: "urls", Label: "Callback URLs", Type: constants.PluginFieldTypeURL, Required: true},
				{Key: "secret", Label: "Signing Secret", Type: constants.PluginFieldTypeSecret, Secret: true},
				{Key: "mode", Label: "Mode", Type: constants.PluginFieldTypeChoice, Choices: []string{"all", "errors"}},
			},
		},
		{
			Slug:             "mail",
			Title:            "Mail",
			CanDisable:       false,
			EnabledByDefault: true,
			ConfFields: []plugin.ConfigField{
				{Key: "subject_prefix", Label: "Subject Prefix", Type: constants.PluginFieldTypeText},
			},
		},
		{
			Slug:       "heartbeat",
			Title:      "Heartbeat",
			CanDisable: true,
		},
	}
	for _, p := range plugins {
		if err := env.registry.Register(p); err != nil {
			t.Fatalf("Register(%s) error = %v", p.Slug, err)
		}
	}
}

func enabledSet(resp *dto.PluginListResponse) map[string]bool {
	result := make(map[string]bool)
	for _, p := range resp.List {
		result[p.Slug] = p.Enabled
	}
	return result
}

func TestListPluginsDefaults(t *testing.T) {
	env := newTestEnv(openCreation())
	registerTestPlugins(t, env)
	created := mustCreateProject(t, env, ownerActor(), "Plugged")

	resp, err := env.plugins.ListPlugins(ownerActor(), "org-1", created.ID)
	if err != nil {
		t.Fatalf("ListPlugins() error = %v", err)
	}
	if resp.Count != 3 {
		t.Fatalf("ListPlugins() count = %d, want 3", resp.Count)
	}

	enabled := enabledSet(resp)
	if enabled["webhooks"] {
		t.Error("webhooks enabled without stored option or default")
	}
	if !enabled["mail"] {
		t.Error("always-on mail plugin reported disabled")
	}
}

func TestSetEnabledPluginsTogglesFullSet(t *testing.T) {
	env := newTestEnv(openCreation())
	registerTestPlugins(t, env)
	actor := ownerActor()
	created := mustCreateProject(t, env, actor, "Plugged")

	resp, err := env.plugins.SetEnabledPlugins(actor, "org-1", created.ID, []string{"webhooks", "unknown-slug"})
	if err != nil {
		t.Fatalf("SetEnabledPlugins() error = %v", err)
	}

	enabled := enabledSet(resp)
	if !enabled["webhooks"] {
		t.Error("webhooks not enabled after submission")
	}
	if enabled["heartbeat"] {
		t.Error("heartbeat left enabled despite absence from the submitted set")
	}
	if !enabled["mail"] {
		t.Error("always-on mail plugin disabled by toggle")
	}

	// Submitting an empty set disables every toggleable plugin again
	resp, err = env.plugins.SetEnabledPlugins(actor, "org-1", created.ID, nil)
	if err != nil {
		t.Fatalf("SetEnabledPlugins() error = %v", err)
	}
	enabled = enabledSet(resp)
	if enabled["webhooks"] || enabled["heartbeat"] {
		t.Error("toggleable plugins still enabled after empty submission")
	}
	if !enabled["mail"] {
		t.Error("always-on mail plugin disabled by empty submission")
	}
}

func TestSetEnabledPluginsPermissionDenied(t *testing.T) {
	env := newTestEnv(openCreation())
	registerTestPlugins(t, env)
	created := mustCreateProject(t, env, ownerActor(), "Plugged")

	stranger := &Actor{UserID: "user-9"}
	_, err := env.plugins.SetEnabledPlugins(stranger, "org-1", created.ID, []string{"webhooks"})
	if !errors.Is(err, constants.ErrPermissionDenied) {
		t.Fatalf("SetEnabledPlugins() error = %v, want ErrPermissionDenied", err)
	}
}

func TestGetPluginConfigGuardChain(t *testing.T) {
	env := newTestEnv(openCreation())
	registerTestPlugins(t, env)
	admin := adminActor()
	created := mustCreateProject(t, env, ownerActor(), "Plugged")

	// Unknown plugin
	_, err := env.plugins.GetPluginConfig(admin, "org-1", created.ID, "no-such-plugin")
	if !errors.Is(err, constants.ErrPluginNotFound) {
		t.Fatalf("GetPluginConfig() error = %v, want ErrPluginNotFound", err)
	}

	// Registered but disabled plugin
	_, err = env.plugins.GetPluginConfig(admin, "org-1", created.ID, "webhooks")
	if !errors.Is(err, constants.ErrPluginNotEnabled) {
		t.Fatalf("GetPluginConfig() for disabled plugin error = %v, want ErrPluginNotEnabled", err)
	}

	// Enabled, but caller lacks configuration permission (default is admin only)
	if _, err := env.plugins.SetEnabledPlugins(ownerActor(), "org-1", created.ID, []string{"webhooks", "heartbeat"}); err != nil {
		t.Fatalf("SetEnabledPlugins() error = %v", err)
	}
	_, err = env.plugins.GetPluginConfig(ownerActor(), "org-1", created.ID, "webhooks")
	if !errors.Is(err, constants.ErrPermissionDenied) {
		t.Fatalf("GetPluginConfig() for non-admin error = %v, want ErrPermissionDenied", err)
	}

	// Enabled plugin without declared config
	_, err = env.plugins.GetPluginConfig(admin, "org-1", created.ID, "heartbeat")
	if !errors.Is(err, constants.ErrPluginNotConfigurable) {
		t.Fatalf("GetPluginConfig() for configless plugin error = %v, want ErrPluginNotConfigurable", err)
	}

	// Happy path
	cfg, err := env.plugins.GetPluginConfig(admin, "org-1", created.ID, "webhooks")
	if err != nil {
		t.Fatalf("GetPluginConfig() error = %v", err)
	}
	if cfg.Slug != "webhooks" || len(cfg.Fields) != 3 {
		t.Errorf("GetPluginConfig() = %+v, want webhooks with 3 fields", cfg)
	}
}

func TestConfigurePluginsHookOverridesAdminDefault(t *testing.T) {
	env := newTestEnv(openCreation())
	registerTestPlugins(t, env)
	actor := ownerActor()
	created := mustCreateProject(t, env, actor, "Plugged")

	if _, err := env.plugins.SetEnabledPlugins(actor, "org-1", created.ID, []string{"webhooks"}); err != nil {
		t.Fatalf("SetEnabledPlugins() error = %v", err)
	}

	// A plugin hook that grants configuration to the project owner
	if err := env.registry.SetHook("webhooks", func(userID string, scopes []string, action string, project *model.Project) *bool {
		if action == constants.ActionConfigureProjectPlugin && project.OwnerID == userID {
			allow := true
			return &allow
		}
		return nil
	}); err != nil {
		t.Fatalf("SetHook() error = %v", err)
	}

	if _, err := env.plugins.GetPluginConfig(actor, "org-1", created.ID, "webhooks"); err != nil {
		t.Fatalf("GetPluginConfig() with granting hook error = %v", err)
	}

	// A hook deny binds non-admins but never admins
	deny := false
	if err := env.registry.SetHook("webhooks", func(userID string, scopes []string, action string, project *model.Project) *bool {
		return &deny
	}); err != nil {
		t.Fatalf("SetHook() error = %v", err)
	}
	if _, err := env.plugins.GetPluginConfig(actor, "org-1", created.ID, "webhooks"); !errors.Is(err, constants.ErrPermissionDenied) {
		t.Fatalf("GetPluginConfig() with denying hook error = %v, want ErrPermissionDenied", err)
	}
	if _, err := env.plugins.GetPluginConfig(adminActor(), "org-1", created.ID, "webhooks"); err != nil {
		t.Fatalf("GetPluginConfig() as admin with denying hook error = %v", err)
	}
}

func TestSetEnabledPluginsConsultsConfigureAction(t *testing.T) {
	env := newTestEnv(openCreation())
	registerTestPlugins(t, env)
	actor := ownerActor()
	created := mustCreateProject(t, env, actor, "Plugged")

	var gotAction string
	if err := env.registry.SetHook("webhooks", func(userID string, scopes []string, action string, project *model.Project) *bool {
		gotAction = action
		return nil
	}); err != nil {
		t.Fatalf("SetHook() error = %v", err)
	}

	if _, err := env.plugins.SetEnabledPlugins(actor, "org-1", created.ID, []string{"webhooks"}); err != nil {
		t.Fatalf("SetEnabledPlugins() error = %v", err)
	}
	if gotAction != constants.ActionConfigureProjectPlugin {
		t.Errorf("hook consulted with action %q, want %q", gotAction, constants.ActionConfigureProjectPlugin)
	}
}

func TestUpdatePluginConfigStoresAndRedacts(t *testing.T) {
	env := newTestEnv(openCreation())
	registerTestPlugins(t, env)
	admin := adminActor()
	created := mustCreateProject(t, env, ownerActor(), "Plugged")

	if _, err := env.plugins.SetEnabledPlugins(admin, "org-1", created.ID, []string{"webhooks"}); err != nil {
		t.Fatalf("SetEnabledPlugins() error = %v", err)
	}

	cfg, err := env.plugins.UpdatePluginConfig(admin, "org-1", created.ID, "webhooks", map[string]string{
		"urls":   "https://example.com/hook",
		"secret": "hunter2",
		"mode":   "errors",
	})
	if err != nil {
		t.Fatalf("UpdatePluginConfig() error = %v", err)
	}

	for _, field := range cfg.Fields {
		switch field.Key {
		case "urls":
			if field.Value != "https://example.com/hook" {
				t.Errorf("urls value = %q, want stored URL", field.Value)
			}
		case "secret":
			if field.Value != "" {
				t.Errorf("secret value = %q, want redacted", field.Value)
			}
		case "mode":
			if field.Value != "errors" {
				t.Errorf("mode value = %q, want errors", field.Value)
			}
		}
	}

	// The secret is stored even though responses redact it
	stored, _, err := env.optionRepo.GetOption(created.ID, "webhooks", "secret")
	if err != nil || stored != "hunter2" {
		t.Errorf("stored secret = %q, want hunter2", stored)
	}
}

func TestUpdatePluginConfigValidation(t *testing.T) {
	env := newTestEnv(openCreation())
	registerTestPlugins(t, env)
	admin := adminActor()
	created := mustCreateProject(t, env, ownerActor(), "Plugged")

	if _, err := env.plugins.SetEnabledPlugins(admin, "org-1", created.ID, []string{"webhooks"}); err != nil {
		t.Fatalf("SetEnabledPlugins() error = %v", err)
	}

	tests := []struct {
		name   string
		values map[string]string
	}{
		{name: "unknown field", values: map[string]string{"urls": "https://example.com", "bogus": "x"}},
		{name: "missing required field", values: map[string]string{"mode": "all"}},
		{name: "invalid choice", values: map[string]string{"urls": "https://example.com", "mode": "everything"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.plugins.UpdatePluginConfig(admin, "org-1", created.ID, "webhooks", tt.values)
			if !errors.Is(err, constants.ErrPluginOptionInvalid) {
				t.Errorf("UpdatePluginConfig() error = %v, want ErrPluginOptionInvalid", err)
			}
		})
	}

	// Once the required field is stored, it may be omitted from later updates
	if _, err := env.plugins.UpdatePluginConfig(admin, "org-1", created.ID, "webhooks", map[string]string{
		"urls": "https://example.com",
	}); err != nil {
		t.Fatalf("UpdatePluginConfig() error = %v", err)
	}
	if _, err := env.plugins.UpdatePluginConfig(admin, "org-1", created.ID, "webhooks", map[string]string{
		"mode": "all",
	}); err != nil {
		t.Errorf("UpdatePluginConfig() with stored required field error = %v", err)
	}
}
