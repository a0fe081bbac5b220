package router

import (
	"devenirShop/internal/middleware"
	"devenirShop/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupSearchRoutes(api *echo.Group, handler *rest.SearchHandler) {
	api.GET("/search", handler.Search, middleware.OptionalAuthMiddleware())
}

func SetupProfileRoutes(api *echo.Group, handler *rest.ProfileHandler) {
	profile := api.Group("/profile", middleware.AuthMiddleware())
	profile.GET("", handler.GetProfile)
	profile.DELETE("", handler.DeleteProfile)

	api.POST("/interactions", handler.TrackInteraction, middleware.AuthMiddleware())
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)
}
