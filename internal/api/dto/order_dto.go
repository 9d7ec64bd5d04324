package dto

import "time"

// ShippingInfoPayload carries delivery details at checkout. Phone numbers
// are fixed-length digit strings; addresses are bounded free text.
type ShippingInfoPayload struct {
	PhoneNumber   string `json:"phoneNumber" validate:"required,len=11,numeric"`
	Address       string `json:"address" validate:"required,max=200"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

// CreateOrderRequest payload for POST /orders.
type CreateOrderRequest struct {
	Items        []CartItemPayload   `json:"items" validate:"required,min=1,dive"`
	Total        float64             `json:"total" validate:"gte=0"`
	ShippingInfo ShippingInfoPayload `json:"shippingInfo" validate:"required"`
}

// OrderResponse is the stable public projection of one order.
type OrderResponse struct {
	ID           string              `json:"id"`
	Items        []CartItemPayload   `json:"items"`
	Total        float64             `json:"total"`
	CreatedAt    time.Time           `json:"createdAt"`
	ShippingInfo ShippingInfoPayload `json:"shippingInfo"`
}
