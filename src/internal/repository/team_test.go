package repository

import (
	"testing"

	"tracker-api/src/internal/constants"
	"tracker-api/src/internal/model"

	"github.com/google/uuid"
)

func TestTeamRepoCreateAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewTeamRepo(db)
	team := &model.Team{
		UUID:           uuid.New().String(),
		Name:           "Backend",
		Slug:           "backend",
		OrganizationID: "org-1",
		OwnerID:        "user-1",
	}
	if err := repo.CreateTeam(team); err != nil {
		t.Fatalf("CreateTeam() error = %v", err)
	}

	got, err := repo.GetTeamByUUID(team.UUID)
	if err != nil {
		t.Fatalf("GetTeamByUUID() error = %v", err)
	}
	if got == nil || got.Slug != "backend" {
		t.Errorf("GetTeamByUUID() = %+v, want slug=backend", got)
	}

	bySlug, err := repo.GetTeamBySlug("org-1", "backend")
	if err != nil {
		t.Fatalf("GetTeamBySlug() error = %v", err)
	}
	if bySlug == nil || bySlug.UUID != team.UUID {
		t.Errorf("GetTeamBySlug() = %+v, want UUID %s", bySlug, team.UUID)
	}

	missing, err := repo.GetTeamBySlug("org-2", "backend")
	if err != nil {
		t.Fatalf("GetTeamBySlug() error = %v", err)
	}
	if missing != nil {
		t.Errorf("GetTeamBySlug() across organizations = %+v, want nil", missing)
	}
}

func TestTeamRepoDeleteTeam(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewTeamRepo(db)
	team := seedTeam(t, db, "org-1", "user-1")

	if err := repo.DeleteTeam(team.UUID); err != nil {
		t.Fatalf("DeleteTeam() error = %v", err)
	}

	got, err := repo.GetTeamByUUID(team.UUID)
	if err != nil {
		t.Fatalf("GetTeamByUUID() error = %v", err)
	}
	if got != nil {
		t.Errorf("team still present after delete: %+v", got)
	}
}

func TestTeamMemberRepoMembership(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	memberRepo := NewTeamMemberRepo(db)
	team := seedTeam(t, db, "org-1", "user-1")

	owner := &model.TeamMember{
		UUID:   uuid.New().String(),
		TeamID: team.UUID,
		UserID: "user-1",
		Type:   constants.MemberTypeOwner,
	}
	if err := memberRepo.CreateMember(owner); err != nil {
		t.Fatalf("CreateMember() error = %v", err)
	}

	member := &model.TeamMember{
		UUID:   uuid.New().String(),
		TeamID: team.UUID,
		UserID: "user-2",
		Type:   constants.MemberTypeMember,
	}
	if err := memberRepo.CreateMember(member); err != nil {
		t.Fatalf("CreateMember() error = %v", err)
	}

	members, err := memberRepo.GetMembersByTeamID(team.UUID)
	if err != nil {
		t.Fatalf("GetMembersByTeamID() error = %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("GetMembersByTeamID() returned %d members, want 2", len(members))
	}

	got, err := memberRepo.GetMemberByTeamAndUser(team.UUID, "user-1")
	if err != nil {
		t.Fatalf("GetMemberByTeamAndUser() error = %v", err)
	}
	if got == nil || got.Type != constants.MemberTypeOwner {
		t.Errorf("GetMemberByTeamAndUser() = %+v, want owner membership", got)
	}

	missing, err := memberRepo.GetMemberByTeamAndUser(team.UUID, "user-3")
	if err != nil {
		t.Fatalf("GetMemberByTeamAndUser() error = %v", err)
	}
	if missing != nil {
		t.Errorf("GetMemberByTeamAndUser() = %+v for non-member, want nil", missing)
	}

	if err := memberRepo.DeleteMembersByTeamID(team.UUID); err != nil {
		t.Fatalf("DeleteMembersByTeamID() error = %v", err)
	}
	members, err = memberRepo.GetMembersByTeamID(team.UUID)
	if err != nil {
		t.Fatalf("GetMembersByTeamID() error = %v", err)
	}
	if len(members) != 0 {
		t.Errorf("members still present after delete: %d", len(members))
	}
}

func TestTeamMemberRepoDuplicateMembershipRejected(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	memberRepo := NewTeamMemberRepo(db)
	team := seedTeam(t, db, "org-1", "user-1")

	first := &model.TeamMember{
		UUID:   uuid.New().String(),
		TeamID: team.UUID,
		UserID: "user-1",
		Type:   constants.MemberTypeOwner,
	}
	if err := memberRepo.CreateMember(first); err != nil {
		t.Fatalf("CreateMember() error = %v", err)
	}

	dup := &model.TeamMember{
		UUID:   uuid.New().String(),
		TeamID: team.UUID,
		UserID: "user-1",
		Type:   constants.MemberTypeMember,
	}
	if err := memberRepo.CreateMember(dup); err == nil {
		t.Error("CreateMember() accepted a duplicate team/user pair")
	}
}
