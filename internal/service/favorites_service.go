package service

import (
	"context"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
	apperrors "github.com/spec-kit/storefront-service/pkg/util/errorutil"
)

// FavoritesService manages the favorited product id set.
type FavoritesService struct {
	users repository.UserRepository
}

// NewFavoritesService builds the service.
func NewFavoritesService(users repository.UserRepository) *FavoritesService {
	return &FavoritesService{users: users}
}

// List returns the favorited product ids.
func (s *FavoritesService) List(ctx context.Context, userID string) ([]string, error) {
	user, err := loadUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	return user.Favorites, nil
}

// Add appends a product id. Adding an id already present returns the list
// unchanged without error.
func (s *FavoritesService) Add(ctx context.Context, userID, productID string) ([]string, error) {
	if productID == "" {
		return nil, apperrors.NewValidationError("productId is required", nil)
	}

	user, err := mutateUser(ctx, s.users, userID, func(u *domain.User) error {
		if !u.HasFavorite(productID) {
			u.Favorites = append(u.Favorites, productID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user.Favorites, nil
}

// Remove drops a product id, failing when the id was never favorited.
func (s *FavoritesService) Remove(ctx context.Context, userID, productID string) ([]string, error) {
	if productID == "" {
		return nil, apperrors.NewValidationError("productId is required", nil)
	}

	user, err := mutateUser(ctx, s.users, userID, func(u *domain.User) error {
		for i, id := range u.Favorites {
			if id == productID {
				u.Favorites = append(u.Favorites[:i], u.Favorites[i+1:]...)
				return nil
			}
		}
		return apperrors.NewNotFound("favorite", map[string]any{"productId": productID})
	})
	if err != nil {
		return nil, err
	}
	return user.Favorites, nil
}
