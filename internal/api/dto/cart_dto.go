package dto

// CartItemPayload is the wire shape of one cart line.
type CartItemPayload struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	Image     string  `json:"image"`
}

// AddCartItemRequest payload for POST /cart.
type AddCartItemRequest struct {
	Item CartItemPayload `json:"item" validate:"required"`
}

// ReplaceCartRequest payload for PUT /cart and POST /merge-cart.
type ReplaceCartRequest struct {
	Cart []CartItemPayload `json:"cart" validate:"dive"`
}

// UpdateCartItemRequest payload for PUT /cart/:productId.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}
