package router

import (
	"github.com/gin-gonic/gin"

	"github.com/horologe/storefront/internal/interfaces/http/handler"
)

// Handlers are the endpoint handlers mounted by StorefrontGroups
type Handlers struct {
	Orders     *handler.OrderHandler
	Analytics  *handler.AnalyticsHandler
	Settings   *handler.SettingsHandler
	Products   *handler.ProductHandler
	Categories *handler.CategoryHandler
	Uploads    *handler.UploadHandler
	Auth       *handler.AuthHandler
}

// Guards are the access middleware. LoginRateLimit may be nil.
type Guards struct {
	Authenticate   gin.HandlerFunc
	RequireAdmin   gin.HandlerFunc
	LoginRateLimit gin.HandlerFunc
}

// StorefrontGroups returns the public storefront routes, the auth routes and
// the admin back office, in that order
func StorefrontGroups(h Handlers, g Guards) []RouteRegistrar {
	orders := NewDomainGroup("orders", "/orders").
		POST("", h.Orders.PlaceOrder)

	products := NewDomainGroup("products", "/products").
		GET("", h.Products.List).
		GET("/:id", h.Products.Get).
		GET("/:id/reviews", h.Products.ListReviews).
		POST("/:id/reviews", h.Products.CreateReview)

	categories := NewDomainGroup("categories", "/categories").
		GET("", h.Categories.List).
		GET("/:id", h.Categories.Get)

	settings := NewDomainGroup("settings", "").
		GET("/settings", h.Settings.GetPublic).
		GET("/landing", h.Settings.GetLanding)

	authRoutes := NewDomainGroup("auth", "/auth").
		POST("/login", g.LoginRateLimit, h.Auth.Login).
		GET("/me", g.Authenticate, h.Auth.Me).
		POST("/logout", g.Authenticate, h.Auth.Logout)

	admin := NewDomainGroup("admin", "/admin").Use(g.RequireAdmin)
	admin.Group("orders", "/orders").
		GET("", h.Orders.List).
		PUT("", h.Orders.UpdateStatus).
		GET("/:id", h.Orders.Get).
		GET("/:id/invoice", h.Orders.Invoice)
	admin.Group("customers", "/customers").
		GET("", h.Orders.Customers)
	admin.Group("analytics", "").
		GET("/analytics", h.Analytics.Report).
		GET("/dashboard", h.Analytics.Dashboard)
	admin.Group("settings", "").
		GET("/settings", h.Settings.GetStore).
		POST("/settings", h.Settings.UpdateStore).
		GET("/landing", h.Settings.GetLanding).
		POST("/landing", h.Settings.UpdateLanding)
	admin.Group("products", "/products").
		POST("", h.Products.Create).
		PUT("/:id", h.Products.Update).
		DELETE("/:id", h.Products.Delete)
	admin.Group("categories", "/categories").
		POST("", h.Categories.Create).
		PUT("/:id", h.Categories.Update).
		DELETE("/:id", h.Categories.Delete)
	admin.Group("uploads", "/uploads").
		POST("", h.Uploads.Upload)

	return []RouteRegistrar{orders, products, categories, settings, authRoutes, admin}
}
