package dto

// FavoriteRequest payload for POST /favorites/add and /favorites/remove.
type FavoriteRequest struct {
	ProductID string `json:"productId" validate:"required"`
}
