package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrEventNotFound = errors.New("event not found")

type Repository interface {
	Create(ctx context.Context, userId int, event Event) (Event, error)
	GetAll(ctx context.Context, userId int) ([]Event, error)
	GetById(ctx context.Context, userId int, id int) (Event, error)
	GetUpcoming(ctx context.Context, userId int, after time.Time, limit int) ([]Event, error)
	Update(ctx context.Context, userId int, event Event) (Event, error)
	Delete(ctx context.Context, userId int, id int) error
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const eventColumns = `id, title, description, start_time, end_time, all_day, client_id, project_id, created_at`

func scanEvent(row pgx.Row) (Event, error) {
	var e Event
	err := row.Scan(
		&e.Id,
		&e.Title,
		&e.Description,
		&e.StartTime,
		&e.EndTime,
		&e.AllDay,
		&e.ClientId,
		&e.ProjectId,
		&e.CreatedAt,
	)
	return e, err
}

func (r *PostgresRepository) Create(ctx context.Context, userId int, event Event) (Event, error) {
	query := `INSERT INTO events (title, description, start_time, end_time, all_day, client_id, project_id, created_by)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				RETURNING ` + eventColumns
	created, err := scanEvent(r.db.QueryRow(ctx, query,
		event.Title,
		event.Description,
		event.StartTime,
		event.EndTime,
		event.AllDay,
		event.ClientId,
		event.ProjectId,
		userId,
	))
	if err != nil {
		log.Errorf("failed to create event: %v", err)
		return Event{}, fmt.Errorf("failed to create event: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context, userId int) ([]Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE created_by = $1 ORDER BY start_time`
	return r.queryEvents(ctx, query, userId)
}

func (r *PostgresRepository) GetUpcoming(ctx context.Context, userId int, after time.Time, limit int) ([]Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
				WHERE created_by = $1 AND start_time > $2
				ORDER BY start_time LIMIT $3`
	return r.queryEvents(ctx, query, userId, after, limit)
}

func (r *PostgresRepository) queryEvents(ctx context.Context, query string, args ...any) ([]Event, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Errorf("failed to get events: %v", err)
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()
	events := make([]Event, 0, 10)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return events, nil
}

func (r *PostgresRepository) GetById(ctx context.Context, userId int, id int) (Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE created_by = $1 AND id = $2`
	e, err := scanEvent(r.db.QueryRow(ctx, query, userId, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Event{}, ErrEventNotFound
	} else if err != nil {
		log.Errorf("failed to get event: %v", err)
		return Event{}, fmt.Errorf("failed to get event: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userId int, event Event) (Event, error) {
	query := `UPDATE events
				SET title = $1, description = $2, start_time = $3, end_time = $4, all_day = $5, client_id = $6, project_id = $7
				WHERE created_by = $8 AND id = $9
				RETURNING ` + eventColumns
	updated, err := scanEvent(r.db.QueryRow(ctx, query,
		event.Title,
		event.Description,
		event.StartTime,
		event.EndTime,
		event.AllDay,
		event.ClientId,
		event.ProjectId,
		userId,
		event.Id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Event{}, ErrEventNotFound
	} else if err != nil {
		log.Errorf("failed to update event: %v", err)
		return Event{}, fmt.Errorf("failed to update event: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userId int, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM events WHERE created_by = $1 AND id = $2`, userId, id)
	if err != nil {
		log.Errorf("failed to delete event: %v", err)
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}
