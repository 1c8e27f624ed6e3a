package timeentry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrEntryNotFound = errors.New("time entry not found")

type Repository interface {
	Create(ctx context.Context, entry TimeEntry) (TimeEntry, error)
	GetById(ctx context.Context, userId int, id int) (TimeEntry, error)
	GetRunning(ctx context.Context, userId int) (*TimeEntry, error)
	GetAll(ctx context.Context, userId int) ([]TimeEntry, error)
	GetInRange(ctx context.Context, userId int, from, to time.Time) ([]TimeEntry, error)
	Update(ctx context.Context, userId int, entry TimeEntry) (TimeEntry, error)
	Delete(ctx context.Context, userId int, id int) error
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const entryColumns = `id, task_id, project_id, user_id, description, start_time, end_time, duration, billable, invoice_id, created_at`

func scanEntry(row pgx.Row) (TimeEntry, error) {
	var e TimeEntry
	err := row.Scan(
		&e.Id,
		&e.TaskId,
		&e.ProjectId,
		&e.UserId,
		&e.Description,
		&e.StartTime,
		&e.EndTime,
		&e.Duration,
		&e.Billable,
		&e.InvoiceId,
		&e.CreatedAt,
	)
	return e, err
}

func (r *PostgresRepository) Create(ctx context.Context, entry TimeEntry) (TimeEntry, error) {
	query := `INSERT INTO time_entries (task_id, project_id, user_id, description, start_time, end_time, duration, billable, invoice_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING ` + entryColumns
	created, err := scanEntry(r.db.QueryRow(ctx, query,
		entry.TaskId,
		entry.ProjectId,
		entry.UserId,
		entry.Description,
		entry.StartTime,
		entry.EndTime,
		entry.Duration,
		entry.Billable,
		entry.InvoiceId,
	))
	if err != nil {
		log.Errorf("failed to create time entry: %v", err)
		return TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) GetById(ctx context.Context, userId int, id int) (TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE user_id = $1 AND id = $2`
	e, err := scanEntry(r.db.QueryRow(ctx, query, userId, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return TimeEntry{}, ErrEntryNotFound
	} else if err != nil {
		log.Errorf("failed to get time entry: %v", err)
		return TimeEntry{}, fmt.Errorf("failed to get time entry: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) GetRunning(ctx context.Context, userId int) (*TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries
				WHERE user_id = $1 AND end_time IS NULL
				ORDER BY start_time DESC LIMIT 1`
	e, err := scanEntry(r.db.QueryRow(ctx, query, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		log.Errorf("failed to get running time entry: %v", err)
		return nil, fmt.Errorf("failed to get running time entry: %w", err)
	}
	return &e, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context, userId int) ([]TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE user_id = $1 ORDER BY start_time DESC`
	return r.queryEntries(ctx, query, userId)
}

func (r *PostgresRepository) GetInRange(ctx context.Context, userId int, from, to time.Time) ([]TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries
				WHERE user_id = $1 AND start_time >= $2 AND start_time <= $3
				ORDER BY start_time`
	return r.queryEntries(ctx, query, userId, from, to)
}

func (r *PostgresRepository) queryEntries(ctx context.Context, query string, args ...any) ([]TimeEntry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Errorf("failed to get time entries: %v", err)
		return nil, fmt.Errorf("failed to get time entries: %w", err)
	}
	defer rows.Close()
	entries := make([]TimeEntry, 0, 10)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return entries, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userId int, entry TimeEntry) (TimeEntry, error) {
	query := `UPDATE time_entries
				SET task_id = $1, project_id = $2, description = $3, start_time = $4, end_time = $5,
					duration = $6, billable = $7, invoice_id = $8
				WHERE user_id = $9 AND id = $10
				RETURNING ` + entryColumns
	updated, err := scanEntry(r.db.QueryRow(ctx, query,
		entry.TaskId,
		entry.ProjectId,
		entry.Description,
		entry.StartTime,
		entry.EndTime,
		entry.Duration,
		entry.Billable,
		entry.InvoiceId,
		userId,
		entry.Id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return TimeEntry{}, ErrEntryNotFound
	} else if err != nil {
		log.Errorf("failed to update time entry: %v", err)
		return TimeEntry{}, fmt.Errorf("failed to update time entry: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userId int, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM time_entries WHERE user_id = $1 AND id = $2`, userId, id)
	if err != nil {
		log.Errorf("failed to delete time entry: %v", err)
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}
