package domain

import "time"

// Category classifies expenses against the French chart of accounts.
type Category struct {
	ID          int64
	Name        string // Unique
	Code        string // Optional accounting code (PCG), unique when set
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryRepository defines data access for categories
type CategoryRepository interface {
	Create(category *Category) error
	GetByID(id int64) (*Category, error)
	GetByName(name string) (*Category, error)
	Update(category *Category) error
	Delete(id int64) error
	List(includeInactive bool, skip, limit int) ([]*Category, error)
	Count(includeInactive bool) (int, error)
}
