package domain

import "time"

// Order is an immutable snapshot of a checkout, appended to the user's
// order history and never mutated afterwards.
type Order struct {
	ID           string       `json:"id"`
	Items        []OrderItem  `json:"items"`
	Total        float64      `json:"total"`
	ShippingInfo ShippingInfo `json:"shippingInfo"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// OrderItem mirrors the cart line shape at the moment of checkout.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// ShippingInfo carries the delivery details supplied at checkout.
type ShippingInfo struct {
	PhoneNumber   string `json:"phoneNumber"`
	Address       string `json:"address"`
	PaymentMethod string `json:"paymentMethod"`
}
