package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Project struct {
	ID          string
	LegacyID    *int // numeric alias kept from the pre-migration addressing scheme
	Name        string
	Description *string
	Status      string
	Progress    int
	Priority    string
	TeamMembers []string
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedBy   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	FindByID(ctx context.Context, id string) (*Project, error)
	FindByLegacyID(ctx context.Context, legacyID int) (*Project, error)
	FindAll(ctx context.Context) ([]*Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id string) error

	// Aggregate writes
	UpdateProgress(ctx context.Context, id string, progress int) error
	UpdateProgressAndStatus(ctx context.Context, id string, progress int, status string) error
	ResetAllProgress(ctx context.Context) error
}

type pgProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &pgProjectRepository{pool: pool}
}

const projectColumns = `id, legacy_id, name, description, status, progress, priority, team_members, start_date, end_date, created_by, created_at, updated_at`

func (r *pgProjectRepository) Create(ctx context.Context, project *Project) error {
	query := `
		INSERT INTO projects (legacy_id, name, description, status, progress, priority, team_members, start_date, end_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		project.LegacyID, project.Name, project.Description, project.Status,
		project.Progress, project.Priority, project.TeamMembers,
		project.StartDate, project.EndDate, project.CreatedBy,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
}

func (r *pgProjectRepository) FindByID(ctx context.Context, id string) (*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *pgProjectRepository) FindByLegacyID(ctx context.Context, legacyID int) (*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE legacy_id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, legacyID))
}

func (r *pgProjectRepository) FindAll(ctx context.Context) ([]*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		p := &Project{}
		if err := rows.Scan(
			&p.ID, &p.LegacyID, &p.Name, &p.Description, &p.Status,
			&p.Progress, &p.Priority, &p.TeamMembers,
			&p.StartDate, &p.EndDate, &p.CreatedBy,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *pgProjectRepository) Update(ctx context.Context, project *Project) error {
	query := `
		UPDATE projects SET
			name = $2, description = $3, status = $4, progress = $5,
			priority = $6, team_members = $7, start_date = $8, end_date = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.pool.QueryRow(ctx, query,
		project.ID, project.Name, project.Description, project.Status,
		project.Progress, project.Priority, project.TeamMembers,
		project.StartDate, project.EndDate,
	).Scan(&project.UpdatedAt)
}

func (r *pgProjectRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

// UpdateProgress writes the derived progress value, leaving status untouched.
func (r *pgProjectRepository) UpdateProgress(ctx context.Context, id string, progress int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE projects SET progress = $2, updated_at = NOW() WHERE id = $1`,
		id, progress,
	)
	return err
}

func (r *pgProjectRepository) UpdateProgressAndStatus(ctx context.Context, id string, progress int, status string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE projects SET progress = $2, status = $3, updated_at = NOW() WHERE id = $1`,
		id, progress, status,
	)
	return err
}

// ResetAllProgress zeroes every project's progress. Used by the bulk
// clear-all task endpoint, which skips per-task aggregation.
func (r *pgProjectRepository) ResetAllProgress(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `UPDATE projects SET progress = 0, updated_at = NOW()`)
	return err
}

func (r *pgProjectRepository) scanOne(row pgx.Row) (*Project, error) {
	p := &Project{}
	err := row.Scan(
		&p.ID, &p.LegacyID, &p.Name, &p.Description, &p.Status,
		&p.Progress, &p.Priority, &p.TeamMembers,
		&p.StartDate, &p.EndDate, &p.CreatedBy,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
