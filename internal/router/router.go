package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing

	"github.com/iliyamo/retail-pos-backend/internal/config"     // app configuration
	"github.com/iliyamo/retail-pos-backend/internal/handler"    // handlers implementing the endpoints
	"github.com/iliyamo/retail-pos-backend/internal/middleware" // JWT authentication and role enforcement
	"github.com/iliyamo/retail-pos-backend/internal/model"      // role names
)

// Handlers bundles every handler the API serves so Register stays a
// single call in main.
type Handlers struct {
	Auth       *handler.AuthHandler
	Categories *handler.CategoryHandler
	Products   *handler.ProductHandler
	Sales      *handler.SaleHandler
	Supply     *handler.SupplyHandler
	Users      *handler.UserHandler
}

// Register wires all application routes onto the provided Echo
// instance.  The catalog and ledger endpoints are open, matching the
// store frontend that calls them without a session; user management is
// JWT-protected and Admin-only.  The cache middleware, when non-nil, is
// applied to the hot catalog reads only: per-identity responses must
// never be served from a shared cache.
func Register(e *echo.Echo, cfg config.Config, h Handlers, cache echo.MiddlewareFunc) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	if cache == nil {
		cache = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	// Authentication endpoints that do not require an existing session.
	authGroup := e.Group("/v1/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)

	// Endpoints that need a resolvable identity from the bearer token.
	jwt := middleware.JWTAuth(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	session := e.Group("/v1")
	session.Use(jwt)
	session.GET("/me", h.Auth.Me)
	session.POST("/logout", h.Auth.Logout)

	// Category CRUD.
	e.GET("/v1/categories", h.Categories.ListCategories, cache)
	e.GET("/v1/categories/:id", h.Categories.GetCategory, cache)
	e.POST("/v1/categories", h.Categories.CreateCategory)
	e.PUT("/v1/categories/:id", h.Categories.UpdateCategory)
	e.DELETE("/v1/categories/:id", h.Categories.DeleteCategory)

	// Product CRUD plus the multi-line delivery endpoint the legacy
	// frontend calls under the products path.
	e.GET("/v1/products", h.Products.ListProducts, cache)
	e.GET("/v1/products/:id", h.Products.GetProduct, cache)
	e.POST("/v1/products", h.Products.CreateProduct)
	e.DELETE("/v1/products/:id", h.Products.DeleteProduct)
	e.PUT("/v1/products/add-multiple-stock", h.Supply.AddMultipleStock)

	// Sales ledger.
	e.GET("/v1/sales", h.Sales.ListSales)
	e.GET("/v1/sales/products", h.Sales.StoreProducts, cache)
	e.POST("/v1/sales/sell-multiple", h.Sales.SellMultiple)

	// Supply ledger.
	e.POST("/v1/supply/add-stock", h.Supply.AddStock)
	e.GET("/v1/supply/history", h.Supply.SupplyHistory)

	// User management is restricted to administrators.
	users := e.Group("/v1/users")
	users.Use(jwt)
	users.Use(middleware.RequireRole(model.RoleAdmin))
	users.GET("", h.Users.ListUsers)
	users.GET("/search", h.Users.SearchUsers)
	users.GET("/:id", h.Users.GetUser)
	users.POST("/cashiers", h.Users.CreateCashier)
	users.PUT("/:id", h.Users.UpdateUser)
	users.DELETE("/:id", h.Users.DeleteUser)
	users.POST("/promote", h.Users.PromoteToAdmin)
	users.POST("/demote", h.Users.DemoteToCustomer)
}
