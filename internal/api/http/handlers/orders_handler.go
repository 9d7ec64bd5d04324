package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util/errorutil"
	"github.com/spec-kit/storefront-service/pkg/util/validation"
)

// OrdersHandler manages order endpoints.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orderService}
}

// Create handles POST /api/users/orders.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if errs := validation.ValidateStruct(req); errs != nil {
		return apperrors.NewValidationError("invalid order payload", errs)
	}

	order, err := h.orders.CreateOrder(c.Context(), userID,
		orderItemsFromPayload(req.Items),
		req.Total,
		domain.ShippingInfo{
			PhoneNumber:   req.ShippingInfo.PhoneNumber,
			Address:       req.ShippingInfo.Address,
			PaymentMethod: req.ShippingInfo.PaymentMethod,
		},
	)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"order": orderResponse(*order)})
}

// List handles GET /api/users/orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	orders, err := h.orders.ListOrders(c.Context(), userID)
	if err != nil {
		return err
	}

	out := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, orderResponse(order))
	}
	return c.JSON(fiber.Map{"orders": out})
}

func orderItemsFromPayload(payloads []dto.CartItemPayload) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(payloads))
	for _, p := range payloads {
		items = append(items, domain.OrderItem{
			ProductID: p.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  p.Quantity,
			Image:     p.Image,
		})
	}
	return items
}

func orderResponse(order domain.Order) dto.OrderResponse {
	items := make([]dto.CartItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.CartItemPayload{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}
	return dto.OrderResponse{
		ID:        order.ID,
		Items:     items,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
		ShippingInfo: dto.ShippingInfoPayload{
			PhoneNumber:   order.ShippingInfo.PhoneNumber,
			Address:       order.ShippingInfo.Address,
			PaymentMethod: order.ShippingInfo.PaymentMethod,
		},
	}
}
