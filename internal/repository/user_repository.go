package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/parogest/parogest/internal/domain"
)

// PostgresUserRepository implements domain.UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresUserRepository creates a new user repository
func NewPostgresUserRepository(db *sql.DB, logger *slog.Logger) *PostgresUserRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserRepository{
		db:     db,
		logger: logger,
	}
}

const userColumns = `
	id, email, hashed_password, first_name, last_name, COALESCE(phone, ''),
	role, is_active, created_at, updated_at
`

// Create inserts a new user
func (r *PostgresUserRepository) Create(u *domain.User) error {
	query := `
		INSERT INTO users (email, hashed_password, first_name, last_name, phone, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		u.Email,
		u.HashedPassword,
		u.FirstName,
		u.LastName,
		nullString(u.Phone),
		string(u.Role),
		u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		err = mapConflict(err)
		if !errors.Is(err, domain.ErrDuplicateEmail) {
			r.logger.Error("failed to create user",
				slog.String("email", u.Email),
				slog.String("error", err.Error()),
			)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.db.QueryRow(query, email))
}

// Update saves every mutable field of an existing user
func (r *PostgresUserRepository) Update(u *domain.User) error {
	query := `
		UPDATE users SET
			email = $1, hashed_password = $2, first_name = $3, last_name = $4,
			phone = $5, role = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		u.Email,
		u.HashedPassword,
		u.FirstName,
		u.LastName,
		nullString(u.Phone),
		string(u.Role),
		u.IsActive,
		u.ID,
	).Scan(&u.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update user: %w", mapConflict(err))
	}

	return nil
}

// Delete removes a user
func (r *PostgresUserRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns a page of users matching the filter
func (r *PostgresUserRepository) List(filter domain.UserFilter, skip, limit int) ([]*domain.User, error) {
	where, args := userWhere(filter)
	query := fmt.Sprintf(
		`SELECT %s FROM users %s ORDER BY last_name, first_name OFFSET $%d LIMIT $%d`,
		userColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, skip, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Count returns the number of users matching the filter
func (r *PostgresUserRepository) Count(filter domain.UserFilter) (int, error) {
	where, args := userWhere(filter)
	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM users `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}

func userWhere(f domain.UserFilter) (string, []any) {
	conds := []string{}
	args := []any{}

	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Search != "" {
		add("(first_name ILIKE $%[1]d OR last_name ILIKE $%[1]d OR email ILIKE $%[1]d)", "%"+f.Search+"%")
	}
	if f.Role != "" {
		add("role = $%d", string(f.Role))
	}
	if f.IsActive != nil {
		add("is_active = $%d", *f.IsActive)
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func (r *PostgresUserRepository) scanOne(row rowScanner) (*domain.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("failed to get user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var role string

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.HashedPassword,
		&u.FirstName,
		&u.LastName,
		&u.Phone,
		&role,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Role = domain.UserRole(role)
	return u, nil
}
