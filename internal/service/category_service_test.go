package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/parogest/parogest/internal/domain"
	"github.com/parogest/parogest/internal/validation"
)

// uniqueCategoryRepo enforces the name and code uniqueness the database
// constraints provide.
type uniqueCategoryRepo struct {
	byID   map[int64]*domain.Category
	nextID int64
}

func newUniqueCategoryRepo() *uniqueCategoryRepo {
	return &uniqueCategoryRepo{byID: map[int64]*domain.Category{}, nextID: 1}
}

func (m *uniqueCategoryRepo) conflict(c *domain.Category) error {
	for _, existing := range m.byID {
		if existing.ID == c.ID {
			continue
		}
		if existing.Name == c.Name {
			return domain.ErrDuplicateName
		}
		if c.Code != "" && existing.Code == c.Code {
			return domain.ErrDuplicateCode
		}
	}
	return nil
}

func (m *uniqueCategoryRepo) Create(c *domain.Category) error {
	if err := m.conflict(c); err != nil {
		return err
	}
	c.ID = m.nextID
	m.nextID++
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.byID[c.ID] = c
	return nil
}

func (m *uniqueCategoryRepo) GetByID(id int64) (*domain.Category, error) {
	if c, ok := m.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (m *uniqueCategoryRepo) GetByName(name string) (*domain.Category, error) {
	for _, c := range m.byID {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *uniqueCategoryRepo) Update(c *domain.Category) error {
	if _, ok := m.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := m.conflict(c); err != nil {
		return err
	}
	c.UpdatedAt = time.Now()
	m.byID[c.ID] = c
	return nil
}

func (m *uniqueCategoryRepo) Delete(id int64) error {
	delete(m.byID, id)
	return nil
}

func (m *uniqueCategoryRepo) List(includeInactive bool, skip, limit int) ([]*domain.Category, error) {
	out := []*domain.Category{}
	for _, c := range m.byID {
		if c.IsActive || includeInactive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *uniqueCategoryRepo) Count(includeInactive bool) (int, error) {
	cs, _ := m.List(includeInactive, 0, 0)
	return len(cs), nil
}

func TestCategoryCreateAndGet(t *testing.T) {
	repo := newUniqueCategoryRepo()
	s := NewCategoryService(repo, nil)

	c := &domain.Category{Name: "Entretien", Code: "615", IsActive: true}
	if err := s.Create(context.Background(), c); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if c.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	got, err := s.Get(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "Entretien" || got.Code != "615" {
		t.Fatalf("unexpected category: %+v", got)
	}
}

func TestCategoryCreateRejectsCaps(t *testing.T) {
	repo := newUniqueCategoryRepo()
	s := NewCategoryService(repo, nil)

	c := &domain.Category{
		Name: strings.Repeat("x", 101),
		Code: strings.Repeat("6", 11),
	}
	err := s.Create(context.Background(), c)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var errs validation.ErrorSet
	if !errors.As(err, &errs) {
		t.Fatalf("expected a validation.ErrorSet, got %T", err)
	}
	if !errs.Has("name") || !errs.Has("code") {
		t.Fatalf("expected errors for name and code, got %v", errs)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("rejected category must not reach the repository")
	}
}

func TestCategoryCreateDuplicateName(t *testing.T) {
	repo := newUniqueCategoryRepo()
	s := NewCategoryService(repo, nil)

	if err := s.Create(context.Background(), &domain.Category{Name: "Entretien", Code: "615"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	err := s.Create(context.Background(), &domain.Category{Name: "Entretien", Code: "616"})
	if !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("expected duplicate name conflict, got %v", err)
	}
}

func TestCategoryCreateDuplicateCode(t *testing.T) {
	repo := newUniqueCategoryRepo()
	s := NewCategoryService(repo, nil)

	if err := s.Create(context.Background(), &domain.Category{Name: "Entretien", Code: "615"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	err := s.Create(context.Background(), &domain.Category{Name: "Chauffage", Code: "615"})
	if !errors.Is(err, domain.ErrDuplicateCode) {
		t.Fatalf("expected duplicate code conflict, got %v", err)
	}
}

func TestCategoryUpdateDuplicateName(t *testing.T) {
	repo := newUniqueCategoryRepo()
	s := NewCategoryService(repo, nil)

	if err := s.Create(context.Background(), &domain.Category{Name: "Entretien", Code: "615"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	c := &domain.Category{Name: "Chauffage", Code: "616"}
	if err := s.Create(context.Background(), c); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	c.Name = "Entretien"
	if err := s.Update(context.Background(), c); !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("expected duplicate name conflict on update, got %v", err)
	}
}

func TestCategoryListActiveOnly(t *testing.T) {
	repo := newUniqueCategoryRepo()
	s := NewCategoryService(repo, nil)

	if err := s.Create(context.Background(), &domain.Category{Name: "Entretien", IsActive: true}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := s.Create(context.Background(), &domain.Category{Name: "Ancien poste", IsActive: false}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	active, err := s.List(context.Background(), false, 0, 100)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected only the active category, got %d", len(active))
	}
	all, err := s.List(context.Background(), true, 0, 100)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both categories, got %d", len(all))
	}
}
