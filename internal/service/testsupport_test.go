package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
)

// mockUserRepo is an in-memory UserRepository that mimics the version
// semantics of the real one: loads hand out copies, conditional updates
// bump the version, and stale writes fail with ErrVersionConflict.
type mockUserRepo struct {
	mu          sync.Mutex
	users       map[string]*domain.User
	updateErrs  []error
	updateCalls int
}

func newMockUserRepo(users ...*domain.User) *mockUserRepo {
	repo := &mockUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		stored := copyUser(u)
		if stored.Version == 0 {
			stored.Version = 1
		}
		repo.users[u.ID] = stored
	}
	return repo
}

// failNextUpdates queues errors returned by the next Update calls, before
// any version bookkeeping happens.
func (m *mockUserRepo) failNextUpdates(errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateErrs = append(m.updateErrs, errs...)
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	user.Version = 1
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = copyUser(user)
	return nil
}

func (m *mockUserRepo) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if len(m.updateErrs) > 0 {
		err := m.updateErrs[0]
		m.updateErrs = m.updateErrs[1:]
		return err
	}
	stored, ok := m.users[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if stored.Version != user.Version {
		return repository.ErrVersionConflict
	}
	next := copyUser(user)
	next.Version++
	next.UpdatedAt = time.Now()
	m.users[user.ID] = next
	user.Version = next.Version
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return copyUser(stored), nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, stored := range m.users {
		if strings.EqualFold(stored.Email, email) {
			return copyUser(stored), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func copyUser(u *domain.User) *domain.User {
	clone := *u
	clone.Favorites = append([]string{}, u.Favorites...)
	clone.Cart = append([]domain.CartItem{}, u.Cart...)
	clone.Orders = append([]domain.Order{}, u.Orders...)
	return &clone
}

func newTestUser(id string) *domain.User {
	return &domain.User{
		ID:           id,
		Name:         "Jamie",
		Email:        "jamie@example.com",
		PasswordHash: "$2a$10$irrelevant",
		Favorites:    []string{},
		Cart:         []domain.CartItem{},
		Orders:       []domain.Order{},
		Version:      1,
	}
}

func newTestCartItem(productID string, quantity int) domain.CartItem {
	return domain.CartItem{
		ProductID: productID,
		Name:      "Widget " + productID,
		Price:     10,
		Quantity:  quantity,
		Image:     "https://cdn.example.com/" + productID + ".jpg",
	}
}
