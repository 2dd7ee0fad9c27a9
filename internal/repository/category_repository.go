package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/parogest/parogest/internal/domain"
)

// PostgresCategoryRepository implements domain.CategoryRepository using PostgreSQL
type PostgresCategoryRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresCategoryRepository creates a new category repository
func NewPostgresCategoryRepository(db *sql.DB, logger *slog.Logger) *PostgresCategoryRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCategoryRepository{
		db:     db,
		logger: logger,
	}
}

const categoryColumns = `
	id, name, COALESCE(code, ''), COALESCE(description, ''), is_active,
	created_at, updated_at
`

// Create inserts a new category
func (r *PostgresCategoryRepository) Create(c *domain.Category) error {
	query := `
		INSERT INTO categories (name, code, description, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		c.Name,
		nullString(c.Code),
		nullString(c.Description),
		c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create category: %w", mapConflict(err))
	}

	return nil
}

// GetByID retrieves a category by ID
func (r *PostgresCategoryRepository) GetByID(id int64) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByName retrieves a category by its unique name
func (r *PostgresCategoryRepository) GetByName(name string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1`
	return r.scanOne(r.db.QueryRow(query, name))
}

// Update saves every mutable field of an existing category
func (r *PostgresCategoryRepository) Update(c *domain.Category) error {
	query := `
		UPDATE categories SET
			name = $1, code = $2, description = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		c.Name,
		nullString(c.Code),
		nullString(c.Description),
		c.IsActive,
		c.ID,
	).Scan(&c.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update category: %w", mapConflict(err))
	}

	return nil
}

// Delete removes a category
func (r *PostgresCategoryRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns a page of categories ordered by accounting code then name
func (r *PostgresCategoryRepository) List(includeInactive bool, skip, limit int) ([]*domain.Category, error) {
	where := "WHERE is_active = true"
	if includeInactive {
		where = ""
	}
	query := fmt.Sprintf(
		`SELECT %s FROM categories %s ORDER BY code NULLS LAST, name OFFSET $1 LIMIT $2`,
		categoryColumns, where,
	)

	rows, err := r.db.Query(query, skip, limit)
	if err != nil {
		r.logger.Error("failed to list categories", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Count returns the number of categories
func (r *PostgresCategoryRepository) Count(includeInactive bool) (int, error) {
	query := `SELECT COUNT(*) FROM categories WHERE is_active = true`
	if includeInactive {
		query = `SELECT COUNT(*) FROM categories`
	}
	var total int
	if err := r.db.QueryRow(query).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return total, nil
}

func (r *PostgresCategoryRepository) scanOne(row rowScanner) (*domain.Category, error) {
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("failed to get category", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	c := &domain.Category{}
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Code,
		&c.Description,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
