package service

import (
	"context"
	"time"

	"github.com/encikiz/planr-backend/internal/repository"
	"github.com/google/uuid"
)

// In-memory repository fakes. They mirror the pg repositories' contract,
// including the not-found convention of returning (nil, nil).

type fakeUserRepo struct {
	users map[string]*repository.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*repository.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *repository.User) error {
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*repository.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*repository.User, error) {
	for _, u := range r.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []string) ([]*repository.User, error) {
	var out []*repository.User
	for _, id := range ids {
		if u := r.users[id]; u != nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*repository.User, error) {
	var out []*repository.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *repository.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type fakeProjectRepo struct {
	projects map[string]*repository.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[string]*repository.Project{}}
}

func (r *fakeProjectRepo) Create(_ context.Context, project *repository.Project) error {
	project.ID = uuid.New().String()
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) FindByID(_ context.Context, id string) (*repository.Project, error) {
	return r.projects[id], nil
}

func (r *fakeProjectRepo) FindByLegacyID(_ context.Context, legacyID int) (*repository.Project, error) {
	for _, p := range r.projects {
		if p.LegacyID != nil && *p.LegacyID == legacyID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProjectRepo) FindAll(_ context.Context) ([]*repository.Project, error) {
	var out []*repository.Project
	for _, p := range r.projects {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *repository.Project) error {
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id string) error {
	delete(r.projects, id)
	return nil
}

func (r *fakeProjectRepo) UpdateProgress(_ context.Context, id string, progress int) error {
	if p := r.projects[id]; p != nil {
		p.Progress = progress
	}
	return nil
}

func (r *fakeProjectRepo) UpdateProgressAndStatus(_ context.Context, id string, progress int, status string) error {
	if p := r.projects[id]; p != nil {
		p.Progress = progress
		p.Status = status
	}
	return nil
}

func (r *fakeProjectRepo) ResetAllProgress(_ context.Context) error {
	for _, p := range r.projects {
		p.Progress = 0
	}
	return nil
}

type fakeMilestoneRepo struct {
	milestones map[string]*repository.Milestone
}

func newFakeMilestoneRepo() *fakeMilestoneRepo {
	return &fakeMilestoneRepo{milestones: map[string]*repository.Milestone{}}
}

func (r *fakeMilestoneRepo) Create(_ context.Context, milestone *repository.Milestone) error {
	milestone.ID = uuid.New().String()
	milestone.CreatedAt = time.Now()
	milestone.UpdatedAt = milestone.CreatedAt
	r.milestones[milestone.ID] = milestone
	return nil
}

func (r *fakeMilestoneRepo) FindByID(_ context.Context, id string) (*repository.Milestone, error) {
	return r.milestones[id], nil
}

func (r *fakeMilestoneRepo) FindAll(_ context.Context) ([]*repository.Milestone, error) {
	var out []*repository.Milestone
	for _, m := range r.milestones {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMilestoneRepo) FindByProjectID(_ context.Context, projectID string) ([]*repository.Milestone, error) {
	var out []*repository.Milestone
	for _, m := range r.milestones {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMilestoneRepo) Update(_ context.Context, milestone *repository.Milestone) error {
	r.milestones[milestone.ID] = milestone
	return nil
}

func (r *fakeMilestoneRepo) Delete(_ context.Context, id string) error {
	delete(r.milestones, id)
	return nil
}

func (r *fakeMilestoneRepo) DeleteByProjectID(_ context.Context, projectID string) error {
	for id, m := range r.milestones {
		if m.ProjectID == projectID {
			delete(r.milestones, id)
		}
	}
	return nil
}

func (r *fakeMilestoneRepo) UpdateProgressAndStatus(_ context.Context, id string, progress int, status string) error {
	if m := r.milestones[id]; m != nil {
		m.Progress = progress
		m.Status = status
	}
	return nil
}

type fakeTaskRepo struct {
	tasks map[string]*repository.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[string]*repository.Task{}}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *repository.Task) error {
	task.ID = uuid.New().String()
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id string) (*repository.Task, error) {
	return r.tasks[id], nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *repository.Task) error {
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) FindAll(_ context.Context) ([]*repository.Task, error) {
	var out []*repository.Task
	for _, t := range r.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTaskRepo) FindByProjectID(_ context.Context, projectID string) ([]*repository.Task, error) {
	var out []*repository.Task
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindByMilestoneID(_ context.Context, milestoneID string) ([]*repository.Task, error) {
	var out []*repository.Task
	for _, t := range r.tasks {
		if t.MilestoneID != nil && *t.MilestoneID == milestoneID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindByAssigneeID(_ context.Context, assigneeID string) ([]*repository.Task, error) {
	var out []*repository.Task
	for _, t := range r.tasks {
		for _, id := range t.AssignedTo {
			if id == assigneeID {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindOverdue(_ context.Context) ([]*repository.Task, error) {
	now := time.Now()
	var out []*repository.Task
	for _, t := range r.tasks {
		if t.DueDate != nil && t.DueDate.Before(now) && t.Status != "completed" {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(r.tasks))
	r.tasks = map[string]*repository.Task{}
	return n, nil
}

func (r *fakeTaskRepo) DeleteByProjectID(_ context.Context, projectID string) error {
	for id, t := range r.tasks {
		if t.ProjectID == projectID {
			delete(r.tasks, id)
		}
	}
	return nil
}

type fakeTeamRepo struct {
	teams   map[string]*repository.Team
	members map[string]map[string]*repository.TeamMember
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		teams:   map[string]*repository.Team{},
		members: map[string]map[string]*repository.TeamMember{},
	}
}

func (r *fakeTeamRepo) Create(_ context.Context, team *repository.Team) error {
	team.ID = uuid.New().String()
	team.CreatedAt = time.Now()
	team.UpdatedAt = team.CreatedAt
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) FindByID(_ context.Context, id string) (*repository.Team, error) {
	return r.teams[id], nil
}

func (r *fakeTeamRepo) FindAll(_ context.Context) ([]*repository.Team, error) {
	var out []*repository.Team
	for _, t := range r.teams {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *repository.Team) error {
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id string) error {
	delete(r.teams, id)
	delete(r.members, id)
	return nil
}

func (r *fakeTeamRepo) AddMember(_ context.Context, member *repository.TeamMember) error {
	if r.members[member.TeamID] == nil {
		r.members[member.TeamID] = map[string]*repository.TeamMember{}
	}
	member.ID = uuid.New().String()
	member.JoinedAt = time.Now()
	r.members[member.TeamID][member.UserID] = member
	return nil
}

func (r *fakeTeamRepo) FindMembers(_ context.Context, teamID string) ([]*repository.TeamMember, error) {
	var out []*repository.TeamMember
	for _, m := range r.members[teamID] {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeTeamRepo) FindMember(_ context.Context, teamID, userID string) (*repository.TeamMember, error) {
	return r.members[teamID][userID], nil
}

func (r *fakeTeamRepo) UpdateMemberRole(_ context.Context, teamID, userID, role string) error {
	if m := r.members[teamID][userID]; m != nil {
		m.Role = role
	}
	return nil
}

func (r *fakeTeamRepo) RemoveMember(_ context.Context, teamID, userID string) error {
	delete(r.members[teamID], userID)
	return nil
}

type fakeSessionStore struct {
	sessions map[string]*Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*Session{}}
}

func (s *fakeSessionStore) SetSession(_ context.Context, key string, value interface{}, _ time.Duration) error {
	session := value.(*Session)
	copied := *session
	s.sessions[key] = &copied
	return nil
}

func (s *fakeSessionStore) GetSession(_ context.Context, key string, dest interface{}) error {
	session, ok := s.sessions[key]
	if !ok {
		return ErrInvalidToken
	}
	*dest.(*Session) = *session
	return nil
}

func (s *fakeSessionStore) DeleteSession(_ context.Context, key string) error {
	delete(s.sessions, key)
	return nil
}
