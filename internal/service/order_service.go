package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/repository"
	apperrors "github.com/spec-kit/storefront-service/pkg/util/errorutil"
)

// OrderService snapshots checkouts into the immutable order history.
type OrderService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(users repository.UserRepository, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{users: users, dispatcher: dispatcher}
}

// CreateOrder appends a new order built from the caller-supplied items,
// total and shipping info. The order id and creation timestamp are assigned
// here; the total is stored verbatim and never recomputed from the items.
// The cart is left untouched, clearing it is the caller's decision.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, items []domain.OrderItem, total float64, shipping domain.ShippingInfo) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, apperrors.NewValidationError("order items are required", nil)
	}
	if total < 0 {
		return nil, apperrors.NewValidationError("total must not be negative", nil)
	}
	for _, item := range items {
		if item.ProductID == "" {
			return nil, apperrors.NewValidationError("productId is required for every order item", nil)
		}
		if item.Quantity < 1 {
			return nil, apperrors.NewValidationError("quantity must be at least 1 for every order item", nil)
		}
		if item.Price < 0 {
			return nil, apperrors.NewValidationError("price must not be negative", nil)
		}
	}

	order := domain.Order{
		ID:           uuid.NewString(),
		Items:        items,
		Total:        total,
		ShippingInfo: shipping,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := mutateUser(ctx, s.users, userID, func(u *domain.User) error {
		u.Orders = append(u.Orders, order)
		return nil
	}); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderCreated,
			UserID:    userID,
			Timestamp: time.Now(),
			Payload:   events.NewOrderCreatedPayload(order),
		})
	}

	return &order, nil
}

// ListOrders returns the user's full order history.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	user, err := loadUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	return user.Orders, nil
}
