package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrTaskNotFound = errors.New("task not found")

type Repository interface {
	Create(ctx context.Context, userId int, task Task) (Task, error)
	GetAll(ctx context.Context, userId int) ([]Task, error)
	GetById(ctx context.Context, userId int, id int) (Task, error)
	GetByProject(ctx context.Context, userId int, projectId int) ([]Task, error)
	GetUpcoming(ctx context.Context, userId int, from time.Time, limit int) ([]Task, error)
	Update(ctx context.Context, userId int, task Task) (Task, error)
	Delete(ctx context.Context, userId int, id int) error
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const taskColumns = `id, title, description, project_id, assigned_to, status, priority, due_date, estimated_hours, completed_at, created_at`

func scanTask(row pgx.Row) (Task, error) {
	var t Task
	err := row.Scan(
		&t.Id,
		&t.Title,
		&t.Description,
		&t.ProjectId,
		&t.AssignedTo,
		&t.Status,
		&t.Priority,
		&t.DueDate,
		&t.EstimatedHours,
		&t.CompletedAt,
		&t.CreatedAt,
	)
	return t, err
}

func (r *PostgresRepository) Create(ctx context.Context, userId int, task Task) (Task, error) {
	query := `INSERT INTO tasks (title, description, project_id, assigned_to, status, priority, due_date, estimated_hours, created_by)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING ` + taskColumns
	created, err := scanTask(r.db.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.ProjectId,
		task.AssignedTo,
		task.Status,
		task.Priority,
		task.DueDate,
		task.EstimatedHours,
		userId,
	))
	if err != nil {
		log.Errorf("failed to create task: %v", err)
		return Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context, userId int) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE created_by = $1 ORDER BY created_at DESC`
	return r.queryTasks(ctx, query, userId)
}

func (r *PostgresRepository) GetByProject(ctx context.Context, userId int, projectId int) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE created_by = $1 AND project_id = $2 ORDER BY created_at DESC`
	return r.queryTasks(ctx, query, userId, projectId)
}

// GetUpcoming returns unfinished tasks due at or after the given time,
// soonest first. Tasks without a due date come last.
func (r *PostgresRepository) GetUpcoming(ctx context.Context, userId int, from time.Time, limit int) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
				WHERE created_by = $1 AND status != $2 AND (due_date IS NULL OR due_date >= $3)
				ORDER BY due_date ASC NULLS LAST LIMIT $4`
	return r.queryTasks(ctx, query, userId, StatusCompleted, from, limit)
}

func (r *PostgresRepository) queryTasks(ctx context.Context, query string, args ...any) ([]Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Errorf("failed to get tasks: %v", err)
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	defer rows.Close()
	tasks := make([]Task, 0, 10)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return tasks, nil
}

func (r *PostgresRepository) GetById(ctx context.Context, userId int, id int) (Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE created_by = $1 AND id = $2`
	t, err := scanTask(r.db.QueryRow(ctx, query, userId, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Task{}, ErrTaskNotFound
	} else if err != nil {
		log.Errorf("failed to get task: %v", err)
		return Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userId int, task Task) (Task, error) {
	query := `UPDATE tasks
				SET title = $1, description = $2, project_id = $3, assigned_to = $4, status = $5, priority = $6,
					due_date = $7, estimated_hours = $8, completed_at = $9
				WHERE created_by = $10 AND id = $11
				RETURNING ` + taskColumns
	updated, err := scanTask(r.db.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.ProjectId,
		task.AssignedTo,
		task.Status,
		task.Priority,
		task.DueDate,
		task.EstimatedHours,
		task.CompletedAt,
		userId,
		task.Id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Task{}, ErrTaskNotFound
	} else if err != nil {
		log.Errorf("failed to update task: %v", err)
		return Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userId int, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE created_by = $1 AND id = $2`, userId, id)
	if err != nil {
		log.Errorf("failed to delete task: %v", err)
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}
