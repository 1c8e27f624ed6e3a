package contract

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrContractNotFound = errors.New("contract not found")

type Repository interface {
	Create(ctx context.Context, userId int, contract Contract) (Contract, error)
	GetAll(ctx context.Context, userId int) ([]Contract, error)
	GetById(ctx context.Context, userId int, id int) (Contract, error)
	GetByClient(ctx context.Context, userId int, clientId int) ([]Contract, error)
	Update(ctx context.Context, userId int, contract Contract) (Contract, error)
	Delete(ctx context.Context, userId int, id int) error
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const contractColumns = `id, title, client_id, project_id, status, start_date, end_date, value, terms, signed_by_client, signed_by_me, signed_at, created_at`

func scanContract(row pgx.Row) (Contract, error) {
	var c Contract
	err := row.Scan(
		&c.Id,
		&c.Title,
		&c.ClientId,
		&c.ProjectId,
		&c.Status,
		&c.StartDate,
		&c.EndDate,
		&c.Value,
		&c.Terms,
		&c.SignedByClient,
		&c.SignedByMe,
		&c.SignedAt,
		&c.CreatedAt,
	)
	return c, err
}

func (r *PostgresRepository) Create(ctx context.Context, userId int, contract Contract) (Contract, error) {
	query := `INSERT INTO contracts (title, client_id, project_id, status, start_date, end_date, value, terms, signed_by_client, signed_by_me, signed_at, created_by)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
				RETURNING ` + contractColumns
	created, err := scanContract(r.db.QueryRow(ctx, query,
		contract.Title,
		contract.ClientId,
		contract.ProjectId,
		contract.Status,
		contract.StartDate,
		contract.EndDate,
		contract.Value,
		contract.Terms,
		contract.SignedByClient,
		contract.SignedByMe,
		contract.SignedAt,
		userId,
	))
	if err != nil {
		log.Errorf("failed to create contract: %v", err)
		return Contract{}, fmt.Errorf("failed to create contract: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context, userId int) ([]Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE created_by = $1 ORDER BY created_at DESC`
	return r.queryContracts(ctx, query, userId)
}

func (r *PostgresRepository) GetByClient(ctx context.Context, userId int, clientId int) ([]Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE created_by = $1 AND client_id = $2 ORDER BY created_at DESC`
	return r.queryContracts(ctx, query, userId, clientId)
}

func (r *PostgresRepository) queryContracts(ctx context.Context, query string, args ...any) ([]Contract, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Errorf("failed to get contracts: %v", err)
		return nil, fmt.Errorf("failed to get contracts: %w", err)
	}
	defer rows.Close()
	contracts := make([]Contract, 0, 10)
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return contracts, nil
}

func (r *PostgresRepository) GetById(ctx context.Context, userId int, id int) (Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE created_by = $1 AND id = $2`
	c, err := scanContract(r.db.QueryRow(ctx, query, userId, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Contract{}, ErrContractNotFound
	} else if err != nil {
		log.Errorf("failed to get contract: %v", err)
		return Contract{}, fmt.Errorf("failed to get contract: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userId int, contract Contract) (Contract, error) {
	query := `UPDATE contracts
				SET title = $1, client_id = $2, project_id = $3, status = $4, start_date = $5, end_date = $6,
					value = $7, terms = $8, signed_by_client = $9, signed_by_me = $10, signed_at = $11
				WHERE created_by = $12 AND id = $13
				RETURNING ` + contractColumns
	updated, err := scanContract(r.db.QueryRow(ctx, query,
		contract.Title,
		contract.ClientId,
		contract.ProjectId,
		contract.Status,
		contract.StartDate,
		contract.EndDate,
		contract.Value,
		contract.Terms,
		contract.SignedByClient,
		contract.SignedByMe,
		contract.SignedAt,
		userId,
		contract.Id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Contract{}, ErrContractNotFound
	} else if err != nil {
		log.Errorf("failed to update contract: %v", err)
		return Contract{}, fmt.Errorf("failed to update contract: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userId int, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM contracts WHERE created_by = $1 AND id = $2`, userId, id)
	if err != nil {
		log.Errorf("failed to delete contract: %v", err)
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrContractNotFound
	}
	return nil
}
