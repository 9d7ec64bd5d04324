package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/api/http/handlers"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/config"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/observability"
	"github.com/spec-kit/storefront-service/internal/repository"
	"github.com/spec-kit/storefront-service/internal/service"
)

// memoryUserRepo backs the HTTP tests without a database.
type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*domain.User)}
}

func (m *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	user.Version = 1
	m.users[user.ID] = cloneUser(user)
	return nil
}

func (m *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.users[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if stored.Version != user.Version {
		return repository.ErrVersionConflict
	}
	next := cloneUser(user)
	next.Version++
	m.users[user.ID] = next
	user.Version = next.Version
	return nil
}

func (m *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return cloneUser(stored), nil
}

func (m *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, stored := range m.users {
		if strings.EqualFold(stored.Email, email) {
			return cloneUser(stored), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.Favorites = append([]string{}, u.Favorites...)
	clone.Cart = append([]domain.CartItem{}, u.Cart...)
	clone.Orders = append([]domain.Order{}, u.Orders...)
	return &clone
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 240,
			BcryptCost:            4,
		},
	}
	repo := newMemoryUserRepo()

	authService := service.NewAuthService(cfg, service.AuthDependencies{UserRepo: repo})
	cartService := service.NewCartService(repo)
	favoritesService := service.NewFavoritesService(repo)
	orderService := service.NewOrderService(repo, nil)

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0, false)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("storefront-service", "test", nil, nil),
		Users:          handlers.NewUsersHandler(authService),
		Cart:           handlers.NewCartHandler(cartService),
		Favorites:      handlers.NewFavoritesHandler(favoritesService),
		Orders:         handlers.NewOrdersHandler(orderService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*nethttp.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := nethttp.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

func registerAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp, _ := doJSON(t, app, "POST", "/api/users/register", "", fiber.Map{
		"name": "Jamie", "email": email, "password": "s3cret-pass",
	})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/api/users/login", "", fiber.Map{
		"email": email, "password": "s3cret-pass",
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestEndToEnd_RegisterLoginCartOrderFlow(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "jamie@example.com")

	resp, body := doJSON(t, app, "POST", "/api/users/cart", token, fiber.Map{
		"item": fiber.Map{"productId": "p1", "quantity": 2, "name": "Widget", "price": 10, "image": "p1.jpg"},
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, "GET", "/api/users/cart", token, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	cart := body["cart"].([]any)
	require.Len(t, cart, 1)
	entry := cart[0].(map[string]any)
	assert.Equal(t, "p1", entry["productId"])
	assert.Equal(t, float64(2), entry["quantity"])
	assert.Equal(t, float64(10), entry["price"])

	resp, _ = doJSON(t, app, "PUT", "/api/users/cart/p1", token, fiber.Map{"quantity": 5})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, "GET", "/api/users/cart", token, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	entry = body["cart"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(5), entry["quantity"])

	resp, body = doJSON(t, app, "POST", "/api/users/orders", token, fiber.Map{
		"items": []fiber.Map{{"productId": "p1", "quantity": 5, "name": "Widget", "price": 10, "image": "p1.jpg"}},
		"total": 50,
		"shippingInfo": fiber.Map{
			"phoneNumber":   "01234567890",
			"address":       "42 Harbor Lane",
			"paymentMethod": "card",
		},
	})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	order := body["order"].(map[string]any)
	assert.NotEmpty(t, order["id"])
	assert.NotEmpty(t, order["createdAt"])

	resp, body = doJSON(t, app, "GET", "/api/users/orders", token, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	orders := body["orders"].([]any)
	require.Len(t, orders, 1)
	assert.Equal(t, float64(50), orders[0].(map[string]any)["total"])
}

func TestMergeCartEndpoint_SumsQuantities(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "merge@example.com")

	resp, _ := doJSON(t, app, "POST", "/api/users/cart", token, fiber.Map{
		"item": fiber.Map{"productId": "A", "quantity": 2, "name": "A", "price": 5, "image": ""},
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/api/users/merge-cart", token, fiber.Map{
		"cart": []fiber.Map{
			{"productId": "A", "quantity": 3, "name": "A", "price": 5, "image": ""},
			{"productId": "B", "quantity": 1, "name": "B", "price": 7, "image": ""},
		},
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	cart := body["cart"].([]any)
	require.Len(t, cart, 2)
	quantities := map[string]float64{}
	for _, raw := range cart {
		entry := raw.(map[string]any)
		quantities[entry["productId"].(string)] = entry["quantity"].(float64)
	}
	assert.Equal(t, float64(5), quantities["A"])
	assert.Equal(t, float64(1), quantities["B"])
}

func TestFavoritesEndpoints(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "fav@example.com")

	resp, body := doJSON(t, app, "POST", "/api/users/favorites/add", token, fiber.Map{"productId": "p9"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Len(t, body["favorites"].([]any), 1)

	// adding again stays a single entry
	resp, body = doJSON(t, app, "POST", "/api/users/favorites/add", token, fiber.Map{"productId": "p9"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Len(t, body["favorites"].([]any), 1)

	resp, body = doJSON(t, app, "POST", "/api/users/favorites/remove", token, fiber.Map{"productId": "missing"})
	require.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, body["message"])

	resp, body = doJSON(t, app, "POST", "/api/users/favorites/remove", token, fiber.Map{"productId": "p9"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Empty(t, body["favorites"])
}

func TestAuthRequiredEndpointsRejectMissingToken(t *testing.T) {
	app := newTestApp(t)

	paths := []struct{ method, path string }{
		{"GET", "/api/users/profile"},
		{"GET", "/api/users/cart"},
		{"GET", "/api/users/favorites"},
		{"GET", "/api/users/orders"},
	}
	for _, tc := range paths {
		resp, body := doJSON(t, app, tc.method, tc.path, "", nil)
		require.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode, fmt.Sprintf("%s %s", tc.method, tc.path))
		assert.NotEmpty(t, body["message"])
	}
}

func TestUnmatchedRouteReturnsNotFoundMessage(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/unknown", "", nil)
	require.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Route not found", body["message"])
}

func TestRegisterDuplicateEmailReturnsClientError(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/users/register", "", fiber.Map{
		"name": "Jamie", "email": "dup@example.com", "password": "s3cret-pass",
	})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/api/users/register", "", fiber.Map{
		"name": "Other", "email": "dup@example.com", "password": "other-pass",
	})
	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["message"])
}

func TestCreateOrderValidatesShippingInfo(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "ship@example.com")

	resp, body := doJSON(t, app, "POST", "/api/users/orders", token, fiber.Map{
		"items": []fiber.Map{{"productId": "p1", "quantity": 1, "name": "W", "price": 10, "image": ""}},
		"total": 10,
		"shippingInfo": fiber.Map{
			"phoneNumber":   "12345", // wrong length
			"address":       "42 Harbor Lane",
			"paymentMethod": "card",
		},
	})
	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["message"])
}
