package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util/errorutil"
	"github.com/spec-kit/storefront-service/pkg/util/validation"
)

// CartHandler manages cart endpoints.
type CartHandler struct {
	cart *service.CartService
}

// NewCartHandler constructs handler.
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cart: cartService}
}

// List handles GET /api/users/cart.
func (h *CartHandler) List(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	items, err := h.cart.ListCart(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"cart": cartPayload(items)})
}

// AddItem handles POST /api/users/cart.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.AddCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if errs := validation.ValidateStruct(req.Item); errs != nil {
		return apperrors.NewValidationError("invalid cart item", errs)
	}

	items, err := h.cart.AddItem(c.Context(), userID, cartItemFromPayload(req.Item))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"cart": cartPayload(items)})
}

// Replace handles PUT /api/users/cart.
func (h *CartHandler) Replace(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ReplaceCartRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	for _, item := range req.Cart {
		if errs := validation.ValidateStruct(item); errs != nil {
			return apperrors.NewValidationError("invalid cart item", errs)
		}
	}

	items, err := h.cart.ReplaceCart(c.Context(), userID, cartItemsFromPayload(req.Cart))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"cart": cartPayload(items)})
}

// UpdateItem handles PUT /api/users/cart/:productId.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	productID := c.Params("productId")
	if productID == "" {
		return apperrors.NewValidationError("productId is required", nil)
	}

	var req dto.UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if errs := validation.ValidateStruct(req); errs != nil {
		return apperrors.NewValidationError("quantity must be at least 1", errs)
	}

	items, err := h.cart.UpdateItem(c.Context(), userID, productID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"cart": cartPayload(items)})
}

// RemoveItem handles DELETE /api/users/cart/:productId.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	productID := c.Params("productId")
	if productID == "" {
		return apperrors.NewValidationError("productId is required", nil)
	}

	items, err := h.cart.RemoveItem(c.Context(), userID, productID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"cart": cartPayload(items)})
}

// Clear handles DELETE /api/users/cart.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.cart.ClearCart(c.Context(), userID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"cart": []dto.CartItemPayload{}})
}

// Merge handles POST /api/users/merge-cart.
func (h *CartHandler) Merge(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ReplaceCartRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	for _, item := range req.Cart {
		if errs := validation.ValidateStruct(item); errs != nil {
			return apperrors.NewValidationError("invalid cart item", errs)
		}
	}

	items, err := h.cart.MergeCart(c.Context(), userID, cartItemsFromPayload(req.Cart))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"cart": cartPayload(items)})
}

func cartItemFromPayload(p dto.CartItemPayload) domain.CartItem {
	return domain.CartItem{
		ProductID: p.ProductID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  p.Quantity,
		Image:     p.Image,
	}
}

func cartItemsFromPayload(payloads []dto.CartItemPayload) []domain.CartItem {
	items := make([]domain.CartItem, 0, len(payloads))
	for _, p := range payloads {
		items = append(items, cartItemFromPayload(p))
	}
	return items
}

func cartPayload(items []domain.CartItem) []dto.CartItemPayload {
	out := make([]dto.CartItemPayload, 0, len(items))
	for _, item := range items {
		out = append(out, dto.CartItemPayload{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}
	return out
}
