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

type memUserRepo struct {
	byID    map[int64]*domain.User
	byEmail map[string]*domain.User
	nextID  int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[int64]*domain.User{}, byEmail: map[string]*domain.User{}, nextID: 1}
}

func (m *memUserRepo) Create(u *domain.User) error {
	if _, exists := m.byEmail[u.Email]; exists {
		return domain.ErrDuplicateEmail
	}
	u.ID = m.nextID
	m.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUserRepo) GetByID(id int64) (*domain.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) GetByEmail(email string) (*domain.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) Update(u *domain.User) error {
	if _, ok := m.byID[u.ID]; !ok {
		return domain.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUserRepo) Delete(id int64) error {
	if u, ok := m.byID[id]; ok {
		delete(m.byEmail, u.Email)
		delete(m.byID, id)
	}
	return nil
}

func (m *memUserRepo) List(filter domain.UserFilter, skip, limit int) ([]*domain.User, error) {
	out := []*domain.User{}
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUserRepo) Count(filter domain.UserFilter) (int, error) {
	return len(m.byID), nil
}

func newTestUser() *domain.User {
	return &domain.User{
		Email:     "cure@paroisse.fr",
		FirstName: "Jean",
		LastName:  "Martin",
		Role:      domain.RolePriest,
		IsActive:  true,
	}
}

func TestUserCreateAndAuthenticate(t *testing.T) {
	repo := newMemUserRepo()
	s := NewUserService(repo, nil)

	u := newTestUser()
	if err := s.Create(context.Background(), u, "Secret-123"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if u.HashedPassword == "" || u.HashedPassword == "Secret-123" {
		t.Fatalf("stored credential must be a hash, got %q", u.HashedPassword)
	}

	got, err := s.Authenticate(context.Background(), "cure@paroisse.fr", "Secret-123")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := s.Authenticate(context.Background(), "cure@paroisse.fr", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := s.Authenticate(context.Background(), "nobody@paroisse.fr", "Secret-123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
}

func TestUserCreateLongPassword(t *testing.T) {
	repo := newMemUserRepo()
	s := NewUserService(repo, nil)

	long := strings.Repeat("a", 1000)
	u := newTestUser()
	if err := s.Create(context.Background(), u, long); err != nil {
		t.Fatalf("create with 1000-char password failed: %v", err)
	}
	if _, err := s.Authenticate(context.Background(), u.Email, long); err != nil {
		t.Fatalf("authenticate with 1000-char password failed: %v", err)
	}
}

func TestUserCreateAccumulatesErrors(t *testing.T) {
	repo := newMemUserRepo()
	s := NewUserService(repo, nil)

	u := &domain.User{Email: "", FirstName: "", LastName: "Martin", Role: domain.UserRole("BISHOP")}
	err := s.Create(context.Background(), u, "short")
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var errs validation.ErrorSet
	if !errors.As(err, &errs) {
		t.Fatalf("expected a validation.ErrorSet, got %T", err)
	}
	for _, field := range []string{"email", "first_name", "role", "password"} {
		if !errs.Has(field) {
			t.Errorf("expected an error for %s, got %v", field, errs)
		}
	}
	if len(repo.byID) != 0 {
		t.Fatalf("rejected user must not reach the repository")
	}
}

func TestUserAuthenticateInactive(t *testing.T) {
	repo := newMemUserRepo()
	s := NewUserService(repo, nil)

	u := newTestUser()
	if err := s.Create(context.Background(), u, "Secret-123"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	u.IsActive = false

	if _, err := s.Authenticate(context.Background(), u.Email, "Secret-123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for inactive user, got %v", err)
	}
}

func TestUserAuthenticateCorruptHash(t *testing.T) {
	repo := newMemUserRepo()
	s := NewUserService(repo, nil)

	u := newTestUser()
	if err := s.Create(context.Background(), u, "Secret-123"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	u.HashedPassword = "not-a-bcrypt-hash"

	// A corrupt stored credential is reported as invalid credentials, not
	// as a successful or failed password check.
	if _, err := s.Authenticate(context.Background(), u.Email, "Secret-123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestUserChangePassword(t *testing.T) {
	repo := newMemUserRepo()
	s := NewUserService(repo, nil)

	u := newTestUser()
	if err := s.Create(context.Background(), u, "OldPass-123"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := s.ChangePassword(context.Background(), u.ID, "bad", "NewPass-123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected wrong current password to fail, got %v", err)
	}
	if err := s.ChangePassword(context.Background(), u.ID, "OldPass-123", "NewPass-123"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, err := s.Authenticate(context.Background(), u.Email, "OldPass-123"); err == nil {
		t.Fatalf("old password must no longer authenticate")
	}
	if _, err := s.Authenticate(context.Background(), u.Email, "NewPass-123"); err != nil {
		t.Fatalf("new password failed: %v", err)
	}
}
