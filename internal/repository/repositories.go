package repository

import (
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	// Core repositories (pgxpool)
	UserRepo      UserRepository
	ProjectRepo   ProjectRepository
	MilestoneRepo MilestoneRepository
	TeamRepo      TeamRepository

	// Task repository (sql.DB)
	TaskRepo TaskRepository
}

func NewRepositories(pool *pgxpool.Pool, db *sql.DB) *Repositories {
	return &Repositories{
		// pgxpool repos
		UserRepo:      NewUserRepository(pool),
		ProjectRepo:   NewProjectRepository(pool),
		MilestoneRepo: NewMilestoneRepository(pool),
		TeamRepo:      NewTeamRepository(pool),

		// sql.DB repos
		TaskRepo: NewTaskRepository(db),
	}
}
