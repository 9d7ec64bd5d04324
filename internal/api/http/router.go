package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/http/handlers"
	"github.com/spec-kit/storefront-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Cart           *handlers.CartHandler
	Favorites      *handlers.FavoritesHandler
	Orders         *handlers.OrdersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	users := app.Group("/api/users")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)

	protected := users.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/profile", cfg.Users.Profile)

	protected.Get("/cart", cfg.Cart.List)
	protected.Post("/cart", cfg.Cart.AddItem)
	protected.Put("/cart", cfg.Cart.Replace)
	protected.Put("/cart/:productId", cfg.Cart.UpdateItem)
	protected.Delete("/cart/:productId", cfg.Cart.RemoveItem)
	protected.Delete("/cart", cfg.Cart.Clear)
	protected.Post("/merge-cart", cfg.Cart.Merge)

	protected.Get("/favorites", cfg.Favorites.List)
	protected.Post("/favorites/add", cfg.Favorites.Add)
	protected.Post("/favorites/remove", cfg.Favorites.Remove)

	protected.Get("/orders", cfg.Orders.List)
	protected.Post("/orders", cfg.Orders.Create)

	// catch-all for unmatched routes
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Route not found"})
	})
}
