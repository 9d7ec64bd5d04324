package service

import (
	"context"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
	apperrors "github.com/spec-kit/storefront-service/pkg/util/errorutil"
)

// CartService owns all mutations of the embedded cart list. Quantities are
// validated at every mutation boundary, so a stored cart never holds an
// entry with quantity below one.
type CartService struct {
	users repository.UserRepository
}

// NewCartService builds the service.
func NewCartService(users repository.UserRepository) *CartService {
	return &CartService{users: users}
}

// ListCart returns the current cart.
func (s *CartService) ListCart(ctx context.Context, userID string) ([]domain.CartItem, error) {
	user, err := loadUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	return user.Cart, nil
}

// AddItem merges the incoming item into the cart. An existing entry for the
// same product only gets its quantity bumped; the arriving name, price and
// image are ignored in that case.
func (s *CartService) AddItem(ctx context.Context, userID string, item domain.CartItem) ([]domain.CartItem, error) {
	if item.ProductID == "" {
		return nil, apperrors.NewValidationError("productId is required", nil)
	}
	if item.Quantity < 1 {
		return nil, apperrors.NewValidationError("quantity must be at least 1", nil)
	}
	if item.Price < 0 {
		return nil, apperrors.NewValidationError("price must not be negative", nil)
	}

	user, err := mutateUser(ctx, s.users, userID, func(u *domain.User) error {
		if idx := u.FindCartItem(item.ProductID); idx >= 0 {
			u.Cart[idx].Quantity += item.Quantity
		} else {
			u.Cart = append(u.Cart, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user.Cart, nil
}

// UpdateItem replaces the stored quantity for one cart entry.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID string, quantity int) ([]domain.CartItem, error) {
	if quantity < 1 {
		return nil, apperrors.NewValidationError("quantity must be at least 1", nil)
	}

	user, err := mutateUser(ctx, s.users, userID, func(u *domain.User) error {
		idx := u.FindCartItem(productID)
		if idx < 0 {
			return apperrors.NewNotFound("cart item", map[string]any{"productId": productID})
		}
		u.Cart[idx].Quantity = quantity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user.Cart, nil
}

// ReplaceCart swaps the whole cart for the caller-supplied list.
func (s *CartService) ReplaceCart(ctx context.Context, userID string, items []domain.CartItem) ([]domain.CartItem, error) {
	for _, item := range items {
		if item.ProductID == "" {
			return nil, apperrors.NewValidationError("productId is required for every cart item", nil)
		}
		if item.Quantity < 1 {
			return nil, apperrors.NewValidationError("quantity must be at least 1 for every cart item", nil)
		}
		if item.Price < 0 {
			return nil, apperrors.NewValidationError("price must not be negative", nil)
		}
	}
	if items == nil {
		items = []domain.CartItem{}
	}

	user, err := mutateUser(ctx, s.users, userID, func(u *domain.User) error {
		u.Cart = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user.Cart, nil
}

// RemoveItem drops one cart entry. Removing an absent product is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) ([]domain.CartItem, error) {
	user, err := mutateUser(ctx, s.users, userID, func(u *domain.User) error {
		idx := u.FindCartItem(productID)
		if idx < 0 {
			return nil
		}
		u.Cart = append(u.Cart[:idx], u.Cart[idx+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user.Cart, nil
}

// ClearCart empties the cart unconditionally.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	_, err := mutateUser(ctx, s.users, userID, func(u *domain.User) error {
		u.Cart = []domain.CartItem{}
		return nil
	})
	return err
}

// MergeCart folds a client-side cart into the stored one. Stored entries are
// the base; incoming entries are applied in caller order, summing quantities
// on a product match and appended verbatim otherwise. Used to reconcile a
// cart accumulated while unauthenticated.
func (s *CartService) MergeCart(ctx context.Context, userID string, incoming []domain.CartItem) ([]domain.CartItem, error) {
	for _, item := range incoming {
		if item.ProductID == "" {
			return nil, apperrors.NewValidationError("productId is required for every cart item", nil)
		}
		if item.Quantity < 1 {
			return nil, apperrors.NewValidationError("quantity must be at least 1 for every cart item", nil)
		}
	}

	user, err := mutateUser(ctx, s.users, userID, func(u *domain.User) error {
		for _, item := range incoming {
			if idx := u.FindCartItem(item.ProductID); idx >= 0 {
				u.Cart[idx].Quantity += item.Quantity
			} else {
				u.Cart = append(u.Cart, item)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user.Cart, nil
}
