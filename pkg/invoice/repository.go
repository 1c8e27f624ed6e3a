package invoice

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrInvoiceNotFound = errors.New("invoice not found")

type Repository interface {
	Create(ctx context.Context, userId int, invoice Invoice) (Invoice, error)
	GetAll(ctx context.Context, userId int) ([]Invoice, error)
	GetById(ctx context.Context, userId int, id int) (Invoice, error)
	GetByClient(ctx context.Context, userId int, clientId int) ([]Invoice, error)
	GetByStatus(ctx context.Context, userId int, status Status) ([]Invoice, error)
	Update(ctx context.Context, userId int, invoice Invoice) (Invoice, error)
	Delete(ctx context.Context, userId int, id int) error
	CountByStatus(ctx context.Context, userId int, status Status) (int, error)
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const invoiceColumns = `id, invoice_number, client_id, issue_date, due_date, status, subtotal, tax, discount, total, notes, terms, paid_at, paid_amount, created_at`

func scanInvoice(row pgx.Row) (Invoice, error) {
	var i Invoice
	err := row.Scan(
		&i.Id,
		&i.InvoiceNumber,
		&i.ClientId,
		&i.IssueDate,
		&i.DueDate,
		&i.Status,
		&i.Subtotal,
		&i.Tax,
		&i.Discount,
		&i.Total,
		&i.Notes,
		&i.Terms,
		&i.PaidAt,
		&i.PaidAmount,
		&i.CreatedAt,
	)
	return i, err
}

// Create stores the invoice and its line items in one transaction.
func (r *PostgresRepository) Create(ctx context.Context, userId int, invoice Invoice) (Invoice, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Invoice{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `INSERT INTO invoices (invoice_number, client_id, issue_date, due_date, status, subtotal, tax, discount, total, notes, terms, paid_at, paid_amount, created_by)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
				RETURNING ` + invoiceColumns
	created, err := scanInvoice(tx.QueryRow(ctx, query,
		invoice.InvoiceNumber,
		invoice.ClientId,
		invoice.IssueDate,
		invoice.DueDate,
		invoice.Status,
		invoice.Subtotal,
		invoice.Tax,
		invoice.Discount,
		invoice.Total,
		invoice.Notes,
		invoice.Terms,
		invoice.PaidAt,
		invoice.PaidAmount,
		userId,
	))
	if err != nil {
		log.Errorf("failed to create invoice: %v", err)
		return Invoice{}, fmt.Errorf("failed to create invoice: %w", err)
	}
	created.Items, err = insertItems(ctx, tx, created.Id, invoice.Items)
	if err != nil {
		return Invoice{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Invoice{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}

func insertItems(ctx context.Context, tx pgx.Tx, invoiceId int, items []Item) ([]Item, error) {
	inserted := make([]Item, 0, len(items))
	for _, item := range items {
		query := `INSERT INTO invoice_items (invoice_id, description, quantity, unit_price, amount, project_id, task_id)
					VALUES ($1, $2, $3, $4, $5, $6, $7)
					RETURNING id`
		err := tx.QueryRow(ctx, query,
			invoiceId,
			item.Description,
			item.Quantity,
			item.UnitPrice,
			item.Amount,
			item.ProjectId,
			item.TaskId,
		).Scan(&item.Id)
		if err != nil {
			log.Errorf("failed to create invoice item: %v", err)
			return nil, fmt.Errorf("failed to create invoice item: %w", err)
		}
		item.InvoiceId = invoiceId
		inserted = append(inserted, item)
	}
	return inserted, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context, userId int) ([]Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE created_by = $1 ORDER BY issue_date DESC`
	return r.queryInvoices(ctx, query, userId)
}

func (r *PostgresRepository) GetByClient(ctx context.Context, userId int, clientId int) ([]Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE created_by = $1 AND client_id = $2 ORDER BY issue_date DESC`
	return r.queryInvoices(ctx, query, userId, clientId)
}

func (r *PostgresRepository) GetByStatus(ctx context.Context, userId int, status Status) ([]Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE created_by = $1 AND status = $2 ORDER BY issue_date DESC`
	return r.queryInvoices(ctx, query, userId, status)
}

func (r *PostgresRepository) queryInvoices(ctx context.Context, query string, args ...any) ([]Invoice, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Errorf("failed to get invoices: %v", err)
		return nil, fmt.Errorf("failed to get invoices: %w", err)
	}
	defer rows.Close()
	invoices := make([]Invoice, 0, 10)
	for rows.Next() {
		i, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return invoices, nil
}

func (r *PostgresRepository) GetById(ctx context.Context, userId int, id int) (Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE created_by = $1 AND id = $2`
	i, err := scanInvoice(r.db.QueryRow(ctx, query, userId, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Invoice{}, ErrInvoiceNotFound
	} else if err != nil {
		log.Errorf("failed to get invoice: %v", err)
		return Invoice{}, fmt.Errorf("failed to get invoice: %w", err)
	}
	i.Items, err = r.getItems(ctx, i.Id)
	if err != nil {
		return Invoice{}, err
	}
	return i, nil
}

func (r *PostgresRepository) getItems(ctx context.Context, invoiceId int) ([]Item, error) {
	query := `SELECT id, invoice_id, description, quantity, unit_price, amount, project_id, task_id
				FROM invoice_items WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, invoiceId)
	if err != nil {
		log.Errorf("failed to get invoice items: %v", err)
		return nil, fmt.Errorf("failed to get invoice items: %w", err)
	}
	defer rows.Close()
	items := make([]Item, 0, 5)
	for rows.Next() {
		var item Item
		err := rows.Scan(
			&item.Id,
			&item.InvoiceId,
			&item.Description,
			&item.Quantity,
			&item.UnitPrice,
			&item.Amount,
			&item.ProjectId,
			&item.TaskId,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return items, nil
}

// Update replaces the invoice row and, when items are provided, its line items.
func (r *PostgresRepository) Update(ctx context.Context, userId int, invoice Invoice) (Invoice, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Invoice{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `UPDATE invoices
				SET invoice_number = $1, client_id = $2, issue_date = $3, due_date = $4, status = $5,
					subtotal = $6, tax = $7, discount = $8, total = $9, notes = $10, terms = $11,
					paid_at = $12, paid_amount = $13
				WHERE created_by = $14 AND id = $15
				RETURNING ` + invoiceColumns
	updated, err := scanInvoice(tx.QueryRow(ctx, query,
		invoice.InvoiceNumber,
		invoice.ClientId,
		invoice.IssueDate,
		invoice.DueDate,
		invoice.Status,
		invoice.Subtotal,
		invoice.Tax,
		invoice.Discount,
		invoice.Total,
		invoice.Notes,
		invoice.Terms,
		invoice.PaidAt,
		invoice.PaidAmount,
		userId,
		invoice.Id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Invoice{}, ErrInvoiceNotFound
	} else if err != nil {
		log.Errorf("failed to update invoice: %v", err)
		return Invoice{}, fmt.Errorf("failed to update invoice: %w", err)
	}
	if invoice.Items != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoice.Id); err != nil {
			return Invoice{}, fmt.Errorf("failed to replace invoice items: %w", err)
		}
		updated.Items, err = insertItems(ctx, tx, invoice.Id, invoice.Items)
		if err != nil {
			return Invoice{}, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return Invoice{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userId int, id int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete invoice items: %w", err)
	}
	result, err := tx.Exec(ctx, `DELETE FROM invoices WHERE created_by = $1 AND id = $2`, userId, id)
	if err != nil {
		log.Errorf("failed to delete invoice: %v", err)
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrInvoiceNotFound
	}
	return tx.Commit(ctx)
}

func (r *PostgresRepository) CountByStatus(ctx context.Context, userId int, status Status) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices WHERE created_by = $1 AND status = $2`, userId, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return count, nil
}
