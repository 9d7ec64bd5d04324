package domain

import "time"

// User is the aggregate root for a storefront account. The cart, favorites
// and order history are embedded sub-collections owned exclusively by the
// user; none of them is addressable without the user id.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Favorites    []string
	Cart         []CartItem
	Orders       []Order
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CartItem is one line of the embedded cart. At most one entry exists per
// product id within a cart.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// FindCartItem returns the index of the cart entry matching productID,
// or -1 when absent.
func (u *User) FindCartItem(productID string) int {
	for i := range u.Cart {
		if u.Cart[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// HasFavorite reports whether productID is already favorited.
func (u *User) HasFavorite(productID string) bool {
	for _, id := range u.Favorites {
		if id == productID {
			return true
		}
	}
	return false
}
