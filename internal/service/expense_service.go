package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/parogest/parogest/internal/domain"
	"github.com/parogest/parogest/internal/observability/metrics"
	"github.com/parogest/parogest/internal/validation"
	"github.com/parogest/parogest/pkg/pagination"
	"golang.org/x/sync/errgroup"
)

// ExpenseService validates and persists expenses and enforces the status
// state machine: PAID and CANCELLED expenses can no longer be modified.
type ExpenseService struct {
	expenseRepo  domain.ExpenseRepository
	categoryRepo domain.CategoryRepository
	logger       *slog.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo domain.ExpenseRepository,
	categoryRepo domain.CategoryRepository,
	logger *slog.Logger,
) *ExpenseService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// ExpensePage is a page of expenses plus its navigation descriptor.
type ExpensePage struct {
	Items []*domain.Expense `json:"items"`
	pagination.Page
}

// Create validates and stores a new expense. Submitted expenses always
// start in PENDING, whatever status the caller set.
func (s *ExpenseService) Create(ctx context.Context, e *domain.Expense) error {
	e.Status = domain.StatusPending

	errs := validation.ValidateExpense(e)
	metrics.ObserveValidation("expense", errorCodes(errs))
	if err := errs.Err(); err != nil {
		return err
	}

	if _, err := s.categoryRepo.GetByID(e.CategoryID); err != nil {
		return fmt.Errorf("category %d: %w", e.CategoryID, err)
	}

	if err := s.expenseRepo.Create(e); err != nil {
		return err
	}

	s.logger.Info("expense created",
		slog.Int64("id", e.ID),
		slog.String("amount", e.Amount.String()),
		slog.Int64("user_id", e.UserID),
	)
	return nil
}

// Get retrieves an expense by ID.
func (s *ExpenseService) Get(ctx context.Context, id int64) (*domain.Expense, error) {
	return s.expenseRepo.GetByID(id)
}

// Update validates and saves a modified expense. The update is rejected
// when the stored expense is in a terminal status or when the requested
// status change is not a legal transition.
func (s *ExpenseService) Update(ctx context.Context, e *domain.Expense) error {
	current, err := s.expenseRepo.GetByID(e.ID)
	if err != nil {
		return err
	}

	errs := validation.ValidateExpenseUpdate(current, e.Status)
	errs = append(errs, validation.ValidateExpense(e)...)
	metrics.ObserveValidation("expense", errorCodes(errs))
	if err := errs.Err(); err != nil {
		return err
	}

	if e.CategoryID != current.CategoryID {
		if _, err := s.categoryRepo.GetByID(e.CategoryID); err != nil {
			return fmt.Errorf("category %d: %w", e.CategoryID, err)
		}
	}

	if err := s.expenseRepo.Update(e); err != nil {
		return err
	}

	s.logger.Info("expense updated",
		slog.Int64("id", e.ID),
		slog.String("status", string(e.Status)),
	)
	return nil
}

// Approve moves a PENDING expense to PAID and stamps the approver.
func (s *ExpenseService) Approve(ctx context.Context, id, approverID int64) error {
	return s.transition(ctx, id, domain.StatusPaid, &approverID)
}

// Cancel moves a DRAFT or PENDING expense to CANCELLED.
func (s *ExpenseService) Cancel(ctx context.Context, id int64) error {
	return s.transition(ctx, id, domain.StatusCancelled, nil)
}

func (s *ExpenseService) transition(ctx context.Context, id int64, to domain.ExpenseStatus, approverID *int64) error {
	e, err := s.expenseRepo.GetByID(id)
	if err != nil {
		return err
	}

	errs := validation.ValidateExpenseUpdate(e, to)
	metrics.ObserveValidation("expense", errorCodes(errs))
	if err := errs.Err(); err != nil {
		return err
	}

	e.Status = to
	if to == domain.StatusPaid {
		now := time.Now()
		e.ApprovedByID = approverID
		e.ApprovedAt = &now
	}

	if err := s.expenseRepo.Update(e); err != nil {
		return err
	}

	s.logger.Info("expense status changed",
		slog.Int64("id", id),
		slog.String("status", string(to)),
	)
	return nil
}

// List returns one page of expenses matching the filter. The count and the
// page fetch run concurrently.
func (s *ExpenseService) List(ctx context.Context, filter domain.ExpenseFilter, params pagination.Params) (*ExpensePage, error) {
	params = params.Normalize()

	var (
		items []*domain.Expense
		total int
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.expenseRepo.List(filter, params.Skip(), params.Limit())
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.expenseRepo.Count(filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to page expenses: %w", err)
	}

	return &ExpensePage{
		Items: items,
		Page:  pagination.Describe(params.Page, params.PageSize, total),
	}, nil
}
