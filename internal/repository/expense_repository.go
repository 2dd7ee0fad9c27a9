package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/parogest/parogest/internal/domain"
)

// PostgresExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type PostgresExpenseRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresExpenseRepository creates a new expense repository
func NewPostgresExpenseRepository(db *sql.DB, logger *slog.Logger) *PostgresExpenseRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresExpenseRepository{
		db:     db,
		logger: logger,
	}
}

// amount_cents keeps the 2-decimal fixed point exact; no float crosses the
// wire in either direction.
const expenseColumns = `
	id, amount_cents, description, expense_date, status, user_id,
	category_id, supplier_id, approved_by_id, approved_at, created_at, updated_at
`

// Create inserts a new expense
func (r *PostgresExpenseRepository) Create(e *domain.Expense) error {
	query := `
		INSERT INTO expenses (
			amount_cents, description, expense_date, status, user_id,
			category_id, supplier_id, approved_by_id, approved_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		int64(e.Amount),
		e.Description,
		e.ExpenseDate,
		string(e.Status),
		e.UserID,
		e.CategoryID,
		nullInt64(e.SupplierID),
		nullInt64(e.ApprovedByID),
		e.ApprovedAt,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)

	if err != nil {
		r.logger.Error("failed to create expense",
			slog.Int64("user_id", e.UserID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// GetByID retrieves an expense by ID
func (r *PostgresExpenseRepository) GetByID(id int64) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`

	e, err := scanExpense(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("failed to get expense",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

// Update saves every mutable field of an existing expense
func (r *PostgresExpenseRepository) Update(e *domain.Expense) error {
	query := `
		UPDATE expenses SET
			amount_cents = $1, description = $2, expense_date = $3, status = $4,
			category_id = $5, supplier_id = $6, approved_by_id = $7,
			approved_at = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		int64(e.Amount),
		e.Description,
		e.ExpenseDate,
		string(e.Status),
		e.CategoryID,
		nullInt64(e.SupplierID),
		nullInt64(e.ApprovedByID),
		e.ApprovedAt,
		e.ID,
	).Scan(&e.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return nil
}

// Delete removes an expense
func (r *PostgresExpenseRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns a page of expenses matching the filter, most recent first
func (r *PostgresExpenseRepository) List(filter domain.ExpenseFilter, skip, limit int) ([]*domain.Expense, error) {
	where, args := expenseWhere(filter)
	query := fmt.Sprintf(
		`SELECT %s FROM expenses %s ORDER BY expense_date DESC OFFSET $%d LIMIT $%d`,
		expenseColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, skip, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("failed to list expenses", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*domain.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// Count returns the number of expenses matching the filter
func (r *PostgresExpenseRepository) Count(filter domain.ExpenseFilter) (int, error) {
	where, args := expenseWhere(filter)
	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM expenses `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return total, nil
}

func expenseWhere(f domain.ExpenseFilter) (string, []any) {
	conds := []string{}
	args := []any{}

	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.UserID > 0 {
		add("user_id = $%d", f.UserID)
	}
	if f.CategoryID > 0 {
		add("category_id = $%d", f.CategoryID)
	}
	if f.SupplierID > 0 {
		add("supplier_id = $%d", f.SupplierID)
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.MinAmount != nil {
		add("amount_cents >= $%d", int64(*f.MinAmount))
	}
	if f.MaxAmount != nil {
		add("amount_cents <= $%d", int64(*f.MaxAmount))
	}
	if f.StartDate != nil {
		add("expense_date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("expense_date <= $%d", *f.EndDate)
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	e := &domain.Expense{}
	var cents int64
	var status string
	var supplierID, approvedByID sql.NullInt64
	var approvedAt sql.NullTime

	err := row.Scan(
		&e.ID,
		&cents,
		&e.Description,
		&e.ExpenseDate,
		&status,
		&e.UserID,
		&e.CategoryID,
		&supplierID,
		&approvedByID,
		&approvedAt,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Amount = domain.Amount(cents)
	e.Status = domain.ExpenseStatus(status)
	if supplierID.Valid {
		v := supplierID.Int64
		e.SupplierID = &v
	}
	if approvedByID.Valid {
		v := approvedByID.Int64
		e.ApprovedByID = &v
	}
	if approvedAt.Valid {
		t := approvedAt.Time
		e.ApprovedAt = &t
	}
	return e, nil
}
