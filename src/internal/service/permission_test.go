package service

import (
	"testing"

	"tracker-api/src/config"
	"tracker-api/src/internal/constants"
	"tracker-api/src/internal/model"
	"tracker-api/src/internal/plugin"
)

func TestCanCreateProjects(t *testing.T) {
	tests := []struct {
		name          string
		allowCreation bool
		scopes        []string
		want          bool
	}{
		{name: "open creation", allowCreation: true, want: true},
		{name: "closed creation without scope", allowCreation: false, want: false},
		{name: "closed creation with create scope", allowCreation: false, scopes: []string{constants.ScopeProjectCreate}, want: true},
		{name: "closed creation as admin", allowCreation: false, scopes: []string{constants.ScopeAdmin}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPermissionService(plugin.NewRegistry(), &config.Projects{AllowCreation: tt.allowCreation})
			actor := &Actor{UserID: "user-1", Scopes: tt.scopes}
			if got := svc.CanCreateProjects(actor); got != tt.want {
				t.Errorf("CanCreateProjects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanRemoveProject(t *testing.T) {
	svc := NewPermissionService(plugin.NewRegistry(), &config.Projects{})
	project := &model.Project{UUID: "p1", OwnerID: "user-1"}

	if !svc.CanRemoveProject(&Actor{UserID: "user-1"}, project) {
		t.Error("owner denied removal")
	}
	if !svc.CanRemoveProject(&Actor{UserID: "x", Scopes: []string{constants.ScopeAdmin}}, project) {
		t.Error("admin denied removal")
	}
	if svc.CanRemoveProject(&Actor{UserID: "user-2"}, project) {
		t.Error("stranger allowed removal")
	}
}

func TestCanEditProjectFirstHookWins(t *testing.T) {
	registry := plugin.NewRegistry()
	svc := NewPermissionService(registry, &config.Projects{})
	project := &model.Project{UUID: "p1", OwnerID: "user-1"}

	allow := true
	deny := false

	// Registered first: abstains. Second: denies. Third: would allow but is
	// never consulted because the second already answered.
	hooks := []struct {
		slug   string
		answer *bool
	}{
		{slug: "abstainer", answer: nil},
		{slug: "denier", answer: &deny},
		{slug: "allower", answer: &allow},
	}
	for _, h := range hooks {
		answer := h.answer
		p := &plugin.Plugin{Slug: h.slug, Title: h.slug}
		if answer != nil {
			p.HasPerm = func(userID string, scopes []string, action string, project *model.Project) *bool {
				return answer
			}
		}
		if err := registry.Register(p); err != nil {
			t.Fatalf("Register(%s) error = %v", h.slug, err)
		}
	}

	if svc.CanEditProject(&Actor{UserID: "user-1"}, project) {
		t.Error("denying hook did not override the owner default")
	}
	if !svc.CanEditProject(&Actor{UserID: "x", Scopes: []string{constants.ScopeAdmin}}, project) {
		t.Error("hook deny locked an admin out of editing")
	}
}

func TestCanConfigurePluginsAdminOverridesHookDeny(t *testing.T) {
	registry := plugin.NewRegistry()
	deny := false
	if err := registry.Register(&plugin.Plugin{
		Slug:  "lockdown",
		Title: "Lockdown",
		HasPerm: func(userID string, scopes []string, action string, project *model.Project) *bool {
			return &deny
		},
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	svc := NewPermissionService(registry, &config.Projects{})
	project := &model.Project{UUID: "p1", OwnerID: "user-1"}

	if svc.CanConfigurePlugins(&Actor{UserID: "user-1"}, project) {
		t.Error("denying hook did not bind a non-admin")
	}
	if !svc.CanConfigurePlugins(&Actor{UserID: "x", Scopes: []string{constants.ScopeAdmin}}, project) {
		t.Error("hook deny locked an admin out of plugin configuration")
	}
}

func TestCanManagePlugins(t *testing.T) {
	registry := plugin.NewRegistry()
	var gotAction string
	if err := registry.Register(&plugin.Plugin{
		Slug:  "witness",
		Title: "Witness",
		HasPerm: func(userID string, scopes []string, action string, project *model.Project) *bool {
			gotAction = action
			return nil
		},
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	svc := NewPermissionService(registry, &config.Projects{})
	project := &model.Project{UUID: "p1", OwnerID: "user-1"}

	if !svc.CanManagePlugins(&Actor{UserID: "user-1"}, project) {
		t.Error("owner denied plugin management with abstaining hooks")
	}
	if gotAction != constants.ActionConfigureProjectPlugin {
		t.Errorf("hook consulted with action %q, want %q", gotAction, constants.ActionConfigureProjectPlugin)
	}
	if svc.CanManagePlugins(&Actor{UserID: "user-2"}, project) {
		t.Error("stranger allowed plugin management")
	}

	deny := false
	if err := registry.SetHook("witness", func(userID string, scopes []string, action string, project *model.Project) *bool {
		return &deny
	}); err != nil {
		t.Fatalf("SetHook() error = %v", err)
	}
	if svc.CanManagePlugins(&Actor{UserID: "user-1"}, project) {
		t.Error("denying hook did not bind the owner")
	}
	if !svc.CanManagePlugins(&Actor{UserID: "x", Scopes: []string{constants.ScopeAdmin}}, project) {
		t.Error("hook deny locked an admin out of plugin management")
	}
}

func TestCanEditProjectFallsBackWhenAllAbstain(t *testing.T) {
	registry := plugin.NewRegistry()
	if err := registry.Register(&plugin.Plugin{Slug: "quiet", Title: "Quiet"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	svc := NewPermissionService(registry, &config.Projects{})
	project := &model.Project{UUID: "p1", OwnerID: "user-1"}

	if !svc.CanEditProject(&Actor{UserID: "user-1"}, project) {
		t.Error("owner denied edit with abstaining hooks")
	}
	if svc.CanEditProject(&Actor{UserID: "user-2"}, project) {
		t.Error("stranger allowed edit with abstaining hooks")
	}
}

func TestCanConfigurePluginsDefaultIsAdminOnly(t *testing.T) {
	svc := NewPermissionService(plugin.NewRegistry(), &config.Projects{})
	project := &model.Project{UUID: "p1", OwnerID: "user-1"}

	if svc.CanConfigurePlugins(&Actor{UserID: "user-1"}, project) {
		t.Error("owner allowed plugin configuration without admin scope")
	}
	if !svc.CanConfigurePlugins(&Actor{UserID: "x", Scopes: []string{constants.ScopeAdmin}}, project) {
		t.Error("admin denied plugin configuration")
	}
}
