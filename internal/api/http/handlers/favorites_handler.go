package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util/errorutil"
	"github.com/spec-kit/storefront-service/pkg/util/validation"
)

// FavoritesHandler manages favorite-list endpoints.
type FavoritesHandler struct {
	favorites *service.FavoritesService
}

// NewFavoritesHandler constructs handler.
func NewFavoritesHandler(favoritesService *service.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favoritesService}
}

// List handles GET /api/users/favorites.
func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	ids, err := h.favorites.List(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"favorites": ids})
}

// Add handles POST /api/users/favorites/add.
func (h *FavoritesHandler) Add(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	req, err := parseFavoriteRequest(c)
	if err != nil {
		return err
	}

	ids, err := h.favorites.Add(c.Context(), userID, req.ProductID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"favorites": ids})
}

// Remove handles POST /api/users/favorites/remove.
func (h *FavoritesHandler) Remove(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	req, err := parseFavoriteRequest(c)
	if err != nil {
		return err
	}

	ids, err := h.favorites.Remove(c.Context(), userID, req.ProductID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"favorites": ids})
}

func parseFavoriteRequest(c *fiber.Ctx) (*dto.FavoriteRequest, error) {
	var req dto.FavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if errs := validation.ValidateStruct(req); errs != nil {
		return nil, apperrors.NewValidationError("productId is required", errs)
	}
	return &req, nil
}
