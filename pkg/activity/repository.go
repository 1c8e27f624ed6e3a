package activity

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Create(ctx context.Context, activity Activity) (Activity, error)
	GetRecent(ctx context.Context, userId int, limit int) ([]Activity, error)
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, activity Activity) (Activity, error) {
	query := `INSERT INTO activities (user_id, action, entity_type, entity_id, description)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		activity.UserId,
		activity.Action,
		activity.EntityType,
		activity.EntityId,
		activity.Description,
	).Scan(&activity.Id, &activity.CreatedAt)
	if err != nil {
		log.Errorf("failed to create activity: %v", err)
		return Activity{}, fmt.Errorf("failed to create activity: %w", err)
	}
	return activity, nil
}

func (r *PostgresRepository) GetRecent(ctx context.Context, userId int, limit int) ([]Activity, error) {
	query := `SELECT id, user_id, action, entity_type, entity_id, description, created_at
				FROM activities WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.Query(ctx, query, userId, limit)
	if err != nil {
		log.Errorf("failed to get activities: %v", err)
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}
	defer rows.Close()
	activities := make([]Activity, 0, limit)
	for rows.Next() {
		var a Activity
		err := rows.Scan(&a.Id, &a.UserId, &a.Action, &a.EntityType, &a.EntityId, &a.Description, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return activities, nil
}
