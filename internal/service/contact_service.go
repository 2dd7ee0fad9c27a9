package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/parogest/parogest/internal/domain"
	"github.com/parogest/parogest/internal/infrastructure/redis"
	"github.com/parogest/parogest/internal/observability/metrics"
	"github.com/parogest/parogest/internal/validation"
	"github.com/parogest/parogest/pkg/pagination"
	"golang.org/x/sync/errgroup"
)

// ContactCache is the slice of the Redis client the service reads and
// invalidates through. Get reports a missing key as redis.Nil.
type ContactCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ContactService validates and persists contacts. Reads go through an
// optional Redis cache; writes invalidate it.
type ContactService struct {
	contactRepo domain.ContactRepository
	cache       ContactCache // nil disables caching
	cacheTTL    time.Duration
	logger      *slog.Logger
}

// NewContactService creates a new contact service
func NewContactService(
	contactRepo domain.ContactRepository,
	cache ContactCache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *ContactService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ContactService{
		contactRepo: contactRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// ContactPage is a page of contacts plus its navigation descriptor.
type ContactPage struct {
	Items []*domain.Contact `json:"items"`
	pagination.Page
}

// Create validates a candidate contact and stores it. Field errors are
// returned as a validation.ErrorSet; an email collision surfaces as
// domain.ErrDuplicateEmail.
func (s *ContactService) Create(ctx context.Context, c *domain.Contact) error {
	errs := validation.ValidateContact(c)
	metrics.ObserveValidation("contact", errorCodes(errs))
	if err := errs.Err(); err != nil {
		return err
	}

	if err := s.contactRepo.Create(c); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.ObserveConflict("contact")
		}
		return err
	}

	s.logger.Info("contact created",
		slog.Int64("id", c.ID),
		slog.String("contact_type", string(c.ContactType)),
	)
	return nil
}

// Get retrieves a contact, preferring the cache.
func (s *ContactService) Get(ctx context.Context, id int64) (*domain.Contact, error) {
	key := contactCacheKey(id)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			c := &domain.Contact{}
			if err := json.Unmarshal([]byte(cached), c); err == nil {
				metrics.ObserveCache("hit")
				return c, nil
			}
			// Unreadable entry: fall through to the repository.
			_ = s.cache.Delete(ctx, key)
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("contact cache read failed",
				slog.Int64("id", id),
				slog.String("error", err.Error()),
			)
		}
		metrics.ObserveCache("miss")
	}

	c, err := s.contactRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(c); err == nil {
			if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
				s.logger.Warn("contact cache write failed",
					slog.Int64("id", id),
					slog.String("error", err.Error()),
				)
			}
		}
	}
	return c, nil
}

// Update validates and saves a modified contact, then drops it from the
// cache. The contact must have been loaded first; partial updates are the
// API layer's concern (it merges supplied fields before calling this).
func (s *ContactService) Update(ctx context.Context, c *domain.Contact) error {
	errs := validation.ValidateContact(c)
	metrics.ObserveValidation("contact", errorCodes(errs))
	if err := errs.Err(); err != nil {
		return err
	}

	if err := s.contactRepo.Update(c); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.ObserveConflict("contact")
		}
		return err
	}

	s.invalidate(ctx, c.ID)
	s.logger.Info("contact updated", slog.Int64("id", c.ID))
	return nil
}

// Delete removes a contact and drops it from the cache.
func (s *ContactService) Delete(ctx context.Context, id int64) error {
	if err := s.contactRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.logger.Info("contact deleted", slog.Int64("id", id))
	return nil
}

// List returns one page of contacts matching the filter. The count and the
// page fetch run concurrently.
func (s *ContactService) List(ctx context.Context, filter domain.ContactFilter, params pagination.Params) (*ContactPage, error) {
	params = params.Normalize()

	var (
		items []*domain.Contact
		total int
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.contactRepo.List(filter, params.Skip(), params.Limit())
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.contactRepo.Count(filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to page contacts: %w", err)
	}

	return &ContactPage{
		Items: items,
		Page:  pagination.Describe(params.Page, params.PageSize, total),
	}, nil
}

func (s *ContactService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, contactCacheKey(id)); err != nil {
		s.logger.Warn("contact cache invalidation failed",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
	}
}

func contactCacheKey(id int64) string {
	return fmt.Sprintf("contact:%d", id)
}

// errorCodes extracts the code of each field error for metrics labels.
func errorCodes(errs validation.ErrorSet) []string {
	if len(errs) == 0 {
		return nil
	}
	codes := make([]string, len(errs))
	for i, e := range errs {
		codes[i] = e.Code
	}
	return codes
}
