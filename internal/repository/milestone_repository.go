package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Milestone struct {
	ID           string
	ProjectID    string
	Name         string
	Description  *string
	Status       string
	Progress     int
	Deliverables []string
	DueDate      *time.Time
	CreatedBy    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type MilestoneRepository interface {
	Create(ctx context.Context, milestone *Milestone) error
	FindByID(ctx context.Context, id string) (*Milestone, error)
	FindAll(ctx context.Context) ([]*Milestone, error)
	FindByProjectID(ctx context.Context, projectID string) ([]*Milestone, error)
	Update(ctx context.Context, milestone *Milestone) error
	Delete(ctx context.Context, id string) error
	DeleteByProjectID(ctx context.Context, projectID string) error

	// Aggregate write
	UpdateProgressAndStatus(ctx context.Context, id string, progress int, status string) error
}

type pgMilestoneRepository struct {
	pool *pgxpool.Pool
}

func NewMilestoneRepository(pool *pgxpool.Pool) MilestoneRepository {
	return &pgMilestoneRepository{pool: pool}
}

const milestoneColumns = `id, project_id, name, description, status, progress, deliverables, due_date, created_by, created_at, updated_at`

func (r *pgMilestoneRepository) Create(ctx context.Context, milestone *Milestone) error {
	query := `
		INSERT INTO milestones (project_id, name, description, status, progress, deliverables, due_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		milestone.ProjectID, milestone.Name, milestone.Description, milestone.Status,
		milestone.Progress, milestone.Deliverables, milestone.DueDate, milestone.CreatedBy,
	).Scan(&milestone.ID, &milestone.CreatedAt, &milestone.UpdatedAt)
}

func (r *pgMilestoneRepository) FindByID(ctx context.Context, id string) (*Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id = $1`
	m := &Milestone{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.ProjectID, &m.Name, &m.Description, &m.Status,
		&m.Progress, &m.Deliverables, &m.DueDate, &m.CreatedBy,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *pgMilestoneRepository) FindAll(ctx context.Context) ([]*Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones ORDER BY due_date ASC NULLS LAST, created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *pgMilestoneRepository) FindByProjectID(ctx context.Context, projectID string) ([]*Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE project_id = $1 ORDER BY due_date ASC NULLS LAST, created_at DESC`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *pgMilestoneRepository) Update(ctx context.Context, milestone *Milestone) error {
	query := `
		UPDATE milestones SET
			name = $2, description = $3, status = $4, progress = $5,
			deliverables = $6, due_date = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.pool.QueryRow(ctx, query,
		milestone.ID, milestone.Name, milestone.Description, milestone.Status,
		milestone.Progress, milestone.Deliverables, milestone.DueDate,
	).Scan(&milestone.UpdatedAt)
}

func (r *pgMilestoneRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM milestones WHERE id = $1`, id)
	return err
}

func (r *pgMilestoneRepository) DeleteByProjectID(ctx context.Context, projectID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM milestones WHERE project_id = $1`, projectID)
	return err
}

func (r *pgMilestoneRepository) UpdateProgressAndStatus(ctx context.Context, id string, progress int, status string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE milestones SET progress = $2, status = $3, updated_at = NOW() WHERE id = $1`,
		id, progress, status,
	)
	return err
}

func (r *pgMilestoneRepository) scanMany(rows pgx.Rows) ([]*Milestone, error) {
	var milestones []*Milestone
	for rows.Next() {
		m := &Milestone{}
		if err := rows.Scan(
			&m.ID, &m.ProjectID, &m.Name, &m.Description, &m.Status,
			&m.Progress, &m.Deliverables, &m.DueDate, &m.CreatedBy,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}
