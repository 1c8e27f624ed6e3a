package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrProjectNotFound = errors.New("project not found")

type Repository interface {
	Create(ctx context.Context, userId int, project Project) (Project, error)
	GetAll(ctx context.Context, userId int) ([]Project, error)
	GetById(ctx context.Context, userId int, id int) (Project, error)
	GetByClient(ctx context.Context, userId int, clientId int) ([]Project, error)
	GetActive(ctx context.Context, userId int) ([]Project, error)
	Update(ctx context.Context, userId int, project Project) (Project, error)
	Delete(ctx context.Context, userId int, id int) error
	CountActive(ctx context.Context, userId int) (int, error)
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const projectColumns = `id, name, description, client_id, status, start_date, deadline, completed_at, budget, progress, created_at`

func scanProject(row pgx.Row) (Project, error) {
	var p Project
	err := row.Scan(
		&p.Id,
		&p.Name,
		&p.Description,
		&p.ClientId,
		&p.Status,
		&p.StartDate,
		&p.Deadline,
		&p.CompletedAt,
		&p.Budget,
		&p.Progress,
		&p.CreatedAt,
	)
	return p, err
}

func (r *PostgresRepository) Create(ctx context.Context, userId int, project Project) (Project, error) {
	query := `INSERT INTO projects (name, description, client_id, status, start_date, deadline, budget, progress, created_by)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING ` + projectColumns
	created, err := scanProject(r.db.QueryRow(ctx, query,
		project.Name,
		project.Description,
		project.ClientId,
		project.Status,
		project.StartDate,
		project.Deadline,
		project.Budget,
		project.Progress,
		userId,
	))
	if err != nil {
		log.Errorf("failed to create project: %v", err)
		return Project{}, fmt.Errorf("failed to create project: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context, userId int) ([]Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE created_by = $1 ORDER BY created_at DESC`
	return r.queryProjects(ctx, query, userId)
}

func (r *PostgresRepository) GetByClient(ctx context.Context, userId int, clientId int) ([]Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE created_by = $1 AND client_id = $2 ORDER BY created_at DESC`
	return r.queryProjects(ctx, query, userId, clientId)
}

func (r *PostgresRepository) GetActive(ctx context.Context, userId int) ([]Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
				WHERE created_by = $1 AND status IN ($2, $3) ORDER BY created_at DESC`
	return r.queryProjects(ctx, query, userId, StatusNotStarted, StatusInProgress)
}

func (r *PostgresRepository) queryProjects(ctx context.Context, query string, args ...any) ([]Project, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Errorf("failed to get projects: %v", err)
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}
	defer rows.Close()
	projects := make([]Project, 0, 10)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return projects, nil
}

func (r *PostgresRepository) GetById(ctx context.Context, userId int, id int) (Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE created_by = $1 AND id = $2`
	p, err := scanProject(r.db.QueryRow(ctx, query, userId, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Project{}, ErrProjectNotFound
	} else if err != nil {
		log.Errorf("failed to get project: %v", err)
		return Project{}, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userId int, project Project) (Project, error) {
	query := `UPDATE projects
				SET name = $1, description = $2, client_id = $3, status = $4, start_date = $5, deadline = $6,
					completed_at = $7, budget = $8, progress = $9
				WHERE created_by = $10 AND id = $11
				RETURNING ` + projectColumns
	updated, err := scanProject(r.db.QueryRow(ctx, query,
		project.Name,
		project.Description,
		project.ClientId,
		project.Status,
		project.StartDate,
		project.Deadline,
		project.CompletedAt,
		project.Budget,
		project.Progress,
		userId,
		project.Id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Project{}, ErrProjectNotFound
	} else if err != nil {
		log.Errorf("failed to update project: %v", err)
		return Project{}, fmt.Errorf("failed to update project: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userId int, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM projects WHERE created_by = $1 AND id = $2`, userId, id)
	if err != nil {
		log.Errorf("failed to delete project: %v", err)
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *PostgresRepository) CountActive(ctx context.Context, userId int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM projects WHERE created_by = $1 AND status IN ($2, $3)`,
		userId, StatusNotStarted, StatusInProgress).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}
