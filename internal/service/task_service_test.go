package service

import (
	"context"
	"testing"

	"github.com/encikiz/planr-backend/internal/repository"
	"github.com/encikiz/planr-backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taskFixture struct {
	taskRepo      *fakeTaskRepo
	projectRepo   *fakeProjectRepo
	milestoneRepo *fakeMilestoneRepo
	userRepo      *fakeUserRepo
	svc           TaskService
}

func newTaskFixture() *taskFixture {
	f := &taskFixture{
		taskRepo:      newFakeTaskRepo(),
		projectRepo:   newFakeProjectRepo(),
		milestoneRepo: newFakeMilestoneRepo(),
		userRepo:      newFakeUserRepo(),
	}
	progressSvc := NewProgressService(f.taskRepo, f.projectRepo, f.milestoneRepo, nil)
	f.svc = NewTaskService(f.taskRepo, f.projectRepo, f.milestoneRepo, f.userRepo, progressSvc, nil)
	return f
}

func (f *taskFixture) addProject(t *testing.T) *repository.Project {
	t.Helper()
	p := &repository.Project{Name: "p", Status: types.StatusInProgress, Priority: types.PriorityMedium}
	require.NoError(t, f.projectRepo.Create(context.Background(), p))
	return p
}

func (f *taskFixture) addMilestone(t *testing.T, projectID string) *repository.Milestone {
	t.Helper()
	m := &repository.Milestone{ProjectID: projectID, Name: "m", Status: types.StatusNotStarted}
	require.NoError(t, f.milestoneRepo.Create(context.Background(), m))
	return m
}

func TestCreateTaskRejectsMissingProject(t *testing.T) {
	f := newTaskFixture()

	_, err := f.svc.Create(context.Background(), &CreateTaskRequest{
		ProjectID: "no-such-project",
		Name:      "task",
	})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.taskRepo.tasks)
}

func TestCreateTaskRejectsMissingMilestone(t *testing.T) {
	f := newTaskFixture()
	p := f.addProject(t)

	missing := "no-such-milestone"
	_, err := f.svc.Create(context.Background(), &CreateTaskRequest{
		ProjectID:   p.ID,
		MilestoneID: &missing,
		Name:        "task",
	})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.taskRepo.tasks)
}

func TestCreateTaskRejectsMilestoneFromAnotherProject(t *testing.T) {
	f := newTaskFixture()
	p1 := f.addProject(t)
	p2 := f.addProject(t)
	foreign := f.addMilestone(t, p2.ID)

	_, err := f.svc.Create(context.Background(), &CreateTaskRequest{
		ProjectID:   p1.ID,
		MilestoneID: &foreign.ID,
		Name:        "task",
	})

	assert.ErrorIs(t, err, ErrMilestoneMismatch)
	assert.Empty(t, f.taskRepo.tasks)
}

func TestCreateCompletedTaskForcesFullProgress(t *testing.T) {
	f := newTaskFixture()
	p := f.addProject(t)

	detail, err := f.svc.Create(context.Background(), &CreateTaskRequest{
		ProjectID: p.ID,
		Name:      "task",
		Status:    types.StatusCompleted,
		Progress:  30,
	})

	require.NoError(t, err)
	assert.Equal(t, 100, detail.Task.Progress)
}

func TestCreateTaskRecalculatesProjectProgress(t *testing.T) {
	f := newTaskFixture()
	p := f.addProject(t)

	_, err := f.svc.Create(context.Background(), &CreateTaskRequest{
		ProjectID: p.ID,
		Name:      "task",
		Status:    types.StatusInProgress,
		Progress:  40,
	})

	require.NoError(t, err)
	assert.Equal(t, 40, f.projectRepo.projects[p.ID].Progress)
	assert.Equal(t, types.StatusInProgress, f.projectRepo.projects[p.ID].Status)
}

func TestCreateTaskRejectsOutOfRangeProgress(t *testing.T) {
	f := newTaskFixture()
	p := f.addProject(t)

	_, err := f.svc.Create(context.Background(), &CreateTaskRequest{
		ProjectID: p.ID,
		Name:      "task",
		Progress:  140,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateTaskClearsMilestoneWithSentinel(t *testing.T) {
	f := newTaskFixture()
	p := f.addProject(t)
	m := f.addMilestone(t, p.ID)

	detail, err := f.svc.Create(context.Background(), &CreateTaskRequest{
		ProjectID:   p.ID,
		MilestoneID: &m.ID,
		Name:        "task",
		Status:      types.StatusInProgress,
		Progress:    50,
	})
	require.NoError(t, err)

	sentinel := "null"
	updated, err := f.svc.Update(context.Background(), detail.Task.ID, &UpdateTaskRequest{
		MilestoneID: &sentinel,
	})

	require.NoError(t, err)
	assert.Nil(t, updated.Task.MilestoneID)
}

func TestUpdateTaskCompletionForcesFullProgress(t *testing.T) {
	f := newTaskFixture()
	p := f.addProject(t)

	detail, err := f.svc.Create(context.Background(), &CreateTaskRequest{
		ProjectID: p.ID,
		Name:      "task",
		Status:    types.StatusInProgress,
		Progress:  50,
	})
	require.NoError(t, err)

	completed := types.StatusCompleted
	lowProgress := 10
	updated, err := f.svc.Update(context.Background(), detail.Task.ID, &UpdateTaskRequest{
		Status:   &completed,
		Progress: &lowProgress,
	})

	require.NoError(t, err)
	// The completion override beats the caller-supplied progress
	assert.Equal(t, 100, updated.Task.Progress)
}

func TestMovingTaskRecalculatesBothMilestones(t *testing.T) {
	f := newTaskFixture()
	p := f.addProject(t)
	m1 := f.addMilestone(t, p.ID)
	m2 := f.addMilestone(t, p.ID)

	// Anchor task so m1 keeps a task set after the move
	_, err := f.svc.Create(context.Background(), &CreateTaskRequest{
		ProjectID:   p.ID,
		MilestoneID: &m1.ID,
		Name:        "anchor",
		Status:      types.StatusInProgress,
		Progress:    20,
	})
	require.NoError(t, err)

	detail, err := f.svc.Create(context.Background(), &CreateTaskRequest{
		ProjectID:   p.ID,
		MilestoneID: &m1.ID,
		Name:        "mover",
		Status:      types.StatusCompleted,
	})
	require.NoError(t, err)

	// m1 currently averages the two tasks
	assert.Equal(t, 60, f.milestoneRepo.milestones[m1.ID].Progress)

	_, err = f.svc.Update(context.Background(), detail.Task.ID, &UpdateTaskRequest{
		MilestoneID: &m2.ID,
	})
	require.NoError(t, err)

	// Old milestone re-derived from its remaining task, new one from the mover
	assert.Equal(t, 20, f.milestoneRepo.milestones[m1.ID].Progress)
	assert.Equal(t, 100, f.milestoneRepo.milestones[m2.ID].Progress)
}

func TestDeleteTaskRecalculatesProject(t *testing.T) {
	f := newTaskFixture()
	p := f.addProject(t)

	keep, err := f.svc.Create(context.Background(), &CreateTaskRequest{
		ProjectID: p.ID,
		Name:      "keep",
		Status:    types.StatusInProgress,
		Progress:  20,
	})
	require.NoError(t, err)

	drop, err := f.svc.Create(context.Background(), &CreateTaskRequest{
		ProjectID: p.ID,
		Name:      "drop",
		Status:    types.StatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, 60, f.projectRepo.projects[p.ID].Progress)

	require.NoError(t, f.svc.Delete(context.Background(), drop.Task.ID))

	assert.Equal(t, 20, f.projectRepo.projects[p.ID].Progress)
	_ = keep
}

func TestDeleteMissingTaskReturnsNotFound(t *testing.T) {
	f := newTaskFixture()
	err := f.svc.Delete(context.Background(), "no-such-task")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClearAllDeletesTasksAndResetsProgress(t *testing.T) {
	f := newTaskFixture()
	p1 := f.addProject(t)
	p2 := f.addProject(t)

	for _, pid := range []string{p1.ID, p1.ID, p2.ID} {
		_, err := f.svc.Create(context.Background(), &CreateTaskRequest{
			ProjectID: pid,
			Name:      "task",
			Status:    types.StatusInProgress,
			Progress:  50,
		})
		require.NoError(t, err)
	}

	deleted, err := f.svc.ClearAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), deleted)
	assert.Empty(t, f.taskRepo.tasks)
	assert.Equal(t, 0, f.projectRepo.projects[p1.ID].Progress)
	assert.Equal(t, 0, f.projectRepo.projects[p2.ID].Progress)
}

func TestListFiltersByAssignee(t *testing.T) {
	f := newTaskFixture()
	p := f.addProject(t)

	user := &repository.User{Name: "Aina"}
	require.NoError(t, f.userRepo.Create(context.Background(), user))

	_, err := f.svc.Create(context.Background(), &CreateTaskRequest{
		ProjectID:  p.ID,
		Name:       "mine",
		AssignedTo: []string{user.ID},
	})
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), &CreateTaskRequest{
		ProjectID: p.ID,
		Name:      "someone else's",
	})
	require.NoError(t, err)

	details, err := f.svc.List(context.Background(), &TaskFilter{AssigneeID: user.ID})
	require.NoError(t, err)

	require.Len(t, details, 1)
	assert.Equal(t, "mine", details[0].Task.Name)
	require.Len(t, details[0].Assignees, 1)
	assert.Equal(t, user.ID, details[0].Assignees[0].ID)
}
