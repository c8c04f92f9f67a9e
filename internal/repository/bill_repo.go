// Package repository persists bills and users in sqlite.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/billed-app/billed/internal/domain/entity"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BillRepository handles bill database operations
type BillRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *sql.DB, logger *zap.Logger) *BillRepository {
	return &BillRepository{db: db, logger: logger}
}

const billColumns = `id, email, type, name, amount, date, vat, pct, commentary,
	file_url, file_name, status, comment_admin`

// Create inserts a new bill record. A missing ID is assigned here.
func (r *BillRepository) Create(ctx context.Context, bill *entity.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.NewString()
	}

	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		bill.ID,
		bill.Email,
		bill.Type,
		bill.Name,
		bill.Amount,
		bill.Date,
		bill.VAT,
		bill.Pct,
		bill.Commentary,
		bill.FileURL,
		bill.FileName,
		bill.Status,
		bill.CommentAdmin,
	)
	if err != nil {
		r.logger.Error("Failed to create bill", zap.String("id", bill.ID), zap.Error(err))
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

// GetByID retrieves a bill by ID. Returns nil when no bill matches.
func (r *BillRepository) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = ?`

	bill, err := scanBill(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get bill", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

// List retrieves all bills, newest date first.
func (r *BillRepository) List(ctx context.Context) ([]entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills ORDER BY date DESC`
	return r.queryBills(ctx, query)
}

// ListByEmail retrieves one submitter's bills, newest date first.
func (r *BillRepository) ListByEmail(ctx context.Context, email string) ([]entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE email = ? ORDER BY date DESC`
	return r.queryBills(ctx, query, email)
}

// Update overwrites the mutable fields of the bill addressed by id.
func (r *BillRepository) Update(ctx context.Context, id string, bill *entity.Bill) error {
	query := `
		UPDATE bills
		SET email = ?, type = ?, name = ?, amount = ?, date = ?, vat = ?,
			pct = ?, commentary = ?, file_url = ?, file_name = ?,
			status = ?, comment_admin = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		bill.Email,
		bill.Type,
		bill.Name,
		bill.Amount,
		bill.Date,
		bill.VAT,
		bill.Pct,
		bill.Commentary,
		bill.FileURL,
		bill.FileName,
		bill.Status,
		bill.CommentAdmin,
		id,
	)
	if err != nil {
		r.logger.Error("Failed to update bill", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to update bill: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the bill addressed by id.
func (r *BillRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to delete bill", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete bill: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *BillRepository) queryBills(ctx context.Context, query string, args ...any) ([]entity.Bill, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list bills", zap.Error(err))
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	bills := []entity.Bill{}
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, *bill)
	}
	return bills, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBill(row rowScanner) (*entity.Bill, error) {
	var bill entity.Bill
	err := row.Scan(
		&bill.ID,
		&bill.Email,
		&bill.Type,
		&bill.Name,
		&bill.Amount,
		&bill.Date,
		&bill.VAT,
		&bill.Pct,
		&bill.Commentary,
		&bill.FileURL,
		&bill.FileName,
		&bill.Status,
		&bill.CommentAdmin,
	)
	if err != nil {
		return nil, err
	}
	return &bill, nil
}
