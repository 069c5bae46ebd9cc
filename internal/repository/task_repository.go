package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type Task struct {
	ID          string     `json:"id" db:"id"`
	ProjectID   string     `json:"projectId" db:"project_id"`
	MilestoneID *string    `json:"milestoneId,omitempty" db:"milestone_id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description,omitempty" db:"description"`
	AssignedTo  []string   `json:"assignedTo" db:"assigned_to"`
	Status      string     `json:"status" db:"status"`
	Progress    int        `json:"progress" db:"progress"`
	Priority    string     `json:"priority" db:"priority"`
	StartDate   *time.Time `json:"startDate,omitempty" db:"start_date"`
	DueDate     *time.Time `json:"dueDate,omitempty" db:"due_date"`
	CreatedBy   *string    `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// TaskRepository interface
type TaskRepository interface {
	// Basic CRUD
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id string) error

	// Listing methods
	FindAll(ctx context.Context) ([]*Task, error)
	FindByProjectID(ctx context.Context, projectID string) ([]*Task, error)
	FindByMilestoneID(ctx context.Context, milestoneID string) ([]*Task, error)
	FindByAssigneeID(ctx context.Context, assigneeID string) ([]*Task, error)
	FindOverdue(ctx context.Context) ([]*Task, error)

	// Bulk operations
	DeleteAll(ctx context.Context) (int64, error)
	DeleteByProjectID(ctx context.Context, projectID string) error
}

type taskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `
			id, project_id, milestone_id, name, description, assigned_to,
			status, progress, priority, start_date, due_date, created_by,
			created_at, updated_at`

// Create inserts a new task
func (r *taskRepository) Create(ctx context.Context, task *Task) error {
	query := `
		INSERT INTO tasks (
			project_id, milestone_id, name, description, assigned_to,
			status, progress, priority, start_date, due_date, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(
		ctx, query,
		task.ProjectID, task.MilestoneID, task.Name, task.Description,
		pq.Array(task.AssignedTo), task.Status, task.Progress, task.Priority,
		task.StartDate, task.DueDate, task.CreatedBy,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

// Update updates an existing task
func (r *taskRepository) Update(ctx context.Context, task *Task) error {
	query := `
		UPDATE tasks SET
			project_id = $2, milestone_id = $3, name = $4, description = $5,
			assigned_to = $6, status = $7, progress = $8, priority = $9,
			start_date = $10, due_date = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowContext(
		ctx, query,
		task.ID, task.ProjectID, task.MilestoneID, task.Name, task.Description,
		pq.Array(task.AssignedTo), task.Status, task.Progress, task.Priority,
		task.StartDate, task.DueDate,
	).Scan(&task.UpdatedAt)
}

// Delete removes a task
func (r *taskRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task := &Task{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.ProjectID,
		&task.MilestoneID,
		&task.Name,
		&task.Description,
		pq.Array(&task.AssignedTo),
		&task.Status,
		&task.Progress,
		&task.Priority,
		&task.StartDate,
		&task.DueDate,
		&task.CreatedBy,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC`
	return r.queryTasks(ctx, query)
}

// FindByProjectID retrieves all tasks for a project
func (r *taskRepository) FindByProjectID(ctx context.Context, projectID string) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = $1 ORDER BY created_at DESC`
	return r.queryTasks(ctx, query, projectID)
}

// FindByMilestoneID retrieves all tasks attached to a milestone
func (r *taskRepository) FindByMilestoneID(ctx context.Context, milestoneID string) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE milestone_id = $1 ORDER BY created_at DESC`
	return r.queryTasks(ctx, query, milestoneID)
}

// FindByAssigneeID retrieves tasks assigned to a user
func (r *taskRepository) FindByAssigneeID(ctx context.Context, assigneeID string) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE $1 = ANY(assigned_to) ORDER BY due_date ASC NULLS LAST, created_at DESC`
	return r.queryTasks(ctx, query, assigneeID)
}

func (r *taskRepository) FindOverdue(ctx context.Context) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE due_date < NOW() AND status != 'completed' ORDER BY due_date ASC`
	return r.queryTasks(ctx, query)
}

// DeleteAll removes every task and reports how many were deleted
func (r *taskRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *taskRepository) DeleteByProjectID(ctx context.Context, projectID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = $1`, projectID)
	return err
}

func (r *taskRepository) queryTasks(ctx context.Context, query string, args ...interface{}) ([]*Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		task := &Task{}
		if err := rows.Scan(
			&task.ID,
			&task.ProjectID,
			&task.MilestoneID,
			&task.Name,
			&task.Description,
			pq.Array(&task.AssignedTo),
			&task.Status,
			&task.Progress,
			&task.Priority,
			&task.StartDate,
			&task.DueDate,
			&task.CreatedBy,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}
