package service

import (
	"errors"
	"testing"

	"tracker-api/src/internal/constants"
)

func TestCreateTeamEnrollsSingleOwner(t *testing.T) {
	env := newTestEnv(openCreation())

	team, err := env.teams.CreateTeam("Platform", "", "org-1", "user-1")
	if err != nil {
		t.Fatalf("CreateTeam() error = %v", err)
	}
	if team.Slug != "platform" {
		t.Errorf("Slug = %q, want platform", team.Slug)
	}

	members, err := env.memberRepo.GetMembersByTeamID(team.ID)
	if err != nil {
		t.Fatalf("GetMembersByTeamID() error = %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("new team has %d members, want exactly 1", len(members))
	}
	if members[0].UserID != "user-1" || members[0].Type != constants.MemberTypeOwner {
		t.Errorf("initial member = %+v, want owner membership for user-1", members[0])
	}
}

func TestCreateTeamEmptyNameRejected(t *testing.T) {
	env := newTestEnv(openCreation())

	_, err := env.teams.CreateTeam("", "", "org-1", "user-1")
	if !errors.Is(err, constants.ErrInvalidTeamName) {
		t.Fatalf("CreateTeam() error = %v, want ErrInvalidTeamName", err)
	}
	if len(env.teamRepo.teams) != 0 {
		t.Error("team persisted despite invalid name")
	}
}

func TestCreateTeamExplicitSlugConflict(t *testing.T) {
	env := newTestEnv(openCreation())

	if _, err := env.teams.CreateTeam("Platform", "platform", "org-1", "user-1"); err != nil {
		t.Fatalf("CreateTeam() error = %v", err)
	}

	_, err := env.teams.CreateTeam("Platform Two", "platform", "org-1", "user-2")
	if !errors.Is(err, constants.ErrTeamExists) {
		t.Fatalf("CreateTeam() with taken slug error = %v, want ErrTeamExists", err)
	}

	// The same slug is free in another organization
	if _, err := env.teams.CreateTeam("Platform", "platform", "org-2", "user-1"); err != nil {
		t.Errorf("CreateTeam() in another organization error = %v", err)
	}
}

func TestGetTeamMembersChecksOrganization(t *testing.T) {
	env := newTestEnv(openCreation())

	team, err := env.teams.CreateTeam("Platform", "", "org-1", "user-1")
	if err != nil {
		t.Fatalf("CreateTeam() error = %v", err)
	}

	members, err := env.teams.GetTeamMembers(team.ID, "org-1")
	if err != nil {
		t.Fatalf("GetTeamMembers() error = %v", err)
	}
	if members.Count != 1 {
		t.Errorf("GetTeamMembers() count = %d, want 1", members.Count)
	}

	_, err = env.teams.GetTeamMembers(team.ID, "org-2")
	if !errors.Is(err, constants.ErrTeamNotFound) {
		t.Fatalf("GetTeamMembers() across organizations error = %v, want ErrTeamNotFound", err)
	}
}
