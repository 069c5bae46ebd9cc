package service

import (
	"context"
	"testing"

	"github.com/encikiz/planr-backend/internal/repository"
	"github.com/encikiz/planr-backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type teamFixture struct {
	teamRepo    *fakeTeamRepo
	userRepo    *fakeUserRepo
	projectRepo *fakeProjectRepo
	svc         TeamService
}

func newTeamFixture() *teamFixture {
	f := &teamFixture{
		teamRepo:    newFakeTeamRepo(),
		userRepo:    newFakeUserRepo(),
		projectRepo: newFakeProjectRepo(),
	}
	f.svc = NewTeamService(f.teamRepo, f.userRepo, f.projectRepo)
	return f
}

func (f *teamFixture) addUser(t *testing.T, name string) *repository.User {
	t.Helper()
	u := &repository.User{Name: name}
	require.NoError(t, f.userRepo.Create(context.Background(), u))
	return u
}

func TestCreateTeamAutoJoinsLeader(t *testing.T) {
	f := newTeamFixture()
	leader := f.addUser(t, "Hafiz")

	team, err := f.svc.Create(context.Background(), &CreateTeamRequest{
		Name:       "Product Squad",
		TeamLeader: &leader.ID,
	})
	require.NoError(t, err)

	members, err := f.svc.ListMembers(context.Background(), team.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, leader.ID, members[0].UserID)
	assert.Equal(t, types.RoleLeader, members[0].Role)
}

func TestCreateTeamRejectsUnknownLeader(t *testing.T) {
	f := newTeamFixture()

	ghost := "no-such-user"
	_, err := f.svc.Create(context.Background(), &CreateTeamRequest{
		Name:       "Product Squad",
		TeamLeader: &ghost,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddMemberDefaultsToMemberRole(t *testing.T) {
	f := newTeamFixture()
	user := f.addUser(t, "Aina")

	team, err := f.svc.Create(context.Background(), &CreateTeamRequest{Name: "Squad"})
	require.NoError(t, err)

	member, err := f.svc.AddMember(context.Background(), team.ID, user.ID, "")
	require.NoError(t, err)
	assert.Equal(t, types.RoleMember, member.Role)
	require.NotNil(t, member.User)
	assert.Equal(t, "Aina", member.User.Name)
}

func TestAddMemberRejectsUnknownUser(t *testing.T) {
	f := newTeamFixture()

	team, err := f.svc.Create(context.Background(), &CreateTeamRequest{Name: "Squad"})
	require.NoError(t, err)

	_, err = f.svc.AddMember(context.Background(), team.ID, "no-such-user", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateMemberRole(t *testing.T) {
	f := newTeamFixture()
	user := f.addUser(t, "Aina")

	team, err := f.svc.Create(context.Background(), &CreateTeamRequest{Name: "Squad"})
	require.NoError(t, err)

	_, err = f.svc.AddMember(context.Background(), team.ID, user.ID, "")
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateMemberRole(context.Background(), team.ID, user.ID, types.RoleLeader))

	member, err := f.teamRepo.FindMember(context.Background(), team.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, types.RoleLeader, member.Role)
}

func TestRemoveMissingMemberReturnsNotFound(t *testing.T) {
	f := newTeamFixture()

	team, err := f.svc.Create(context.Background(), &CreateTeamRequest{Name: "Squad"})
	require.NoError(t, err)

	err = f.svc.RemoveMember(context.Background(), team.ID, "no-such-user")
	assert.ErrorIs(t, err, ErrNotFound)
}
