package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/parogest/parogest/internal/domain"
	"github.com/parogest/parogest/internal/observability/metrics"
	"github.com/parogest/parogest/internal/validation"
)

// CategoryService validates and persists expense categories.
type CategoryService struct {
	categoryRepo domain.CategoryRepository
	logger       *slog.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo domain.CategoryRepository, logger *slog.Logger) *CategoryService {
	if logger == nil {
		logger = slog.Default()
	}

	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create validates and stores a new category.
func (s *CategoryService) Create(ctx context.Context, c *domain.Category) error {
	errs := validation.ValidateCategory(c)
	metrics.ObserveValidation("category", errorCodes(errs))
	if err := errs.Err(); err != nil {
		return err
	}

	if err := s.categoryRepo.Create(c); err != nil {
		if errors.Is(err, domain.ErrDuplicateName) || errors.Is(err, domain.ErrDuplicateCode) {
			metrics.ObserveConflict("category")
		}
		return err
	}

	s.logger.Info("category created",
		slog.Int64("id", c.ID),
		slog.String("name", c.Name),
	)
	return nil
}

// Update validates and saves a modified category.
func (s *CategoryService) Update(ctx context.Context, c *domain.Category) error {
	errs := validation.ValidateCategory(c)
	metrics.ObserveValidation("category", errorCodes(errs))
	if err := errs.Err(); err != nil {
		return err
	}

	if err := s.categoryRepo.Update(c); err != nil {
		if errors.Is(err, domain.ErrDuplicateName) || errors.Is(err, domain.ErrDuplicateCode) {
			metrics.ObserveConflict("category")
		}
		return err
	}
	return nil
}

// Get retrieves a category by ID.
func (s *CategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// List returns categories, active only unless includeInactive is set.
func (s *CategoryService) List(ctx context.Context, includeInactive bool, skip, limit int) ([]*domain.Category, error) {
	return s.categoryRepo.List(includeInactive, skip, limit)
}
