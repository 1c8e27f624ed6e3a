package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrClientNotFound = errors.New("client not found")

type Repository interface {
	Create(ctx context.Context, userId int, client Client) (Client, error)
	GetAll(ctx context.Context, userId int) ([]Client, error)
	GetById(ctx context.Context, userId int, id int) (Client, error)
	Update(ctx context.Context, userId int, client Client) (Client, error)
	Delete(ctx context.Context, userId int, id int) error
	Count(ctx context.Context, userId int) (int, error)
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const clientColumns = `id, name, email, phone, address, city, country, contact_person, notes, created_at`

func scanClient(row pgx.Row) (Client, error) {
	var c Client
	err := row.Scan(
		&c.Id,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.City,
		&c.Country,
		&c.ContactPerson,
		&c.Notes,
		&c.CreatedAt,
	)
	return c, err
}

func (r *PostgresRepository) Create(ctx context.Context, userId int, client Client) (Client, error) {
	query := `INSERT INTO clients (name, email, phone, address, city, country, contact_person, notes, created_by)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING ` + clientColumns
	created, err := scanClient(r.db.QueryRow(ctx, query,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.City,
		client.Country,
		client.ContactPerson,
		client.Notes,
		userId,
	))
	if err != nil {
		log.Errorf("failed to create client: %v", err)
		return Client{}, fmt.Errorf("failed to create client: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context, userId int) ([]Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE created_by = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		log.Errorf("failed to get clients: %v", err)
		return nil, fmt.Errorf("failed to get clients: %w", err)
	}
	defer rows.Close()
	clients := make([]Client, 0, 10)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return clients, nil
}

func (r *PostgresRepository) GetById(ctx context.Context, userId int, id int) (Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE created_by = $1 AND id = $2`
	c, err := scanClient(r.db.QueryRow(ctx, query, userId, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Client{}, ErrClientNotFound
	} else if err != nil {
		log.Errorf("failed to get client: %v", err)
		return Client{}, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userId int, client Client) (Client, error) {
	query := `UPDATE clients
				SET name = $1, email = $2, phone = $3, address = $4, city = $5, country = $6, contact_person = $7, notes = $8
				WHERE created_by = $9 AND id = $10
				RETURNING ` + clientColumns
	updated, err := scanClient(r.db.QueryRow(ctx, query,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.City,
		client.Country,
		client.ContactPerson,
		client.Notes,
		userId,
		client.Id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Client{}, ErrClientNotFound
	} else if err != nil {
		log.Errorf("failed to update client: %v", err)
		return Client{}, fmt.Errorf("failed to update client: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userId int, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM clients WHERE created_by = $1 AND id = $2`, userId, id)
	if err != nil {
		log.Errorf("failed to delete client: %v", err)
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context, userId int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clients WHERE created_by = $1`, userId).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return count, nil
}
