package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/gabrielwillianfb/ecommerce/domain"
	"github.com/gabrielwillianfb/ecommerce/middleware"
	"github.com/gabrielwillianfb/ecommerce/services"
)

// ProductAPI serves the catalog endpoints.
type ProductAPI struct {
	products *services.ProductService
}

// NewProductAPI initializes the product API.
func NewProductAPI(products *services.ProductService) *ProductAPI {
	return &ProductAPI{products: products}
}

// RegisterRoutes registers the product routes. Mutating routes and the
// full listing are admin-only.
func (a *ProductAPI) RegisterRoutes(e *echo.Echo, gate echo.MiddlewareFunc) {
	g := e.Group("/api/products")
	g.GET("", a.ListAllHandler, gate, middleware.RequireAdmin)
	g.GET("/featured", a.FeaturedHandler)
	g.GET("/recommendations", a.RecommendationsHandler)
	g.GET("/category/:category", a.ByCategoryHandler)
	g.POST("", a.CreateHandler, gate, middleware.RequireAdmin)
	g.PATCH("/:id", a.ToggleFeaturedHandler, gate, middleware.RequireAdmin)
	g.DELETE("/:id", a.DeleteHandler, gate, middleware.RequireAdmin)
}

// ListAllHandler returns the whole catalog.
func (a *ProductAPI) ListAllHandler(c echo.Context) error {
	products, err := a.products.ListAll(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"products": products})
}

// FeaturedHandler returns the featured products, cache-first.
func (a *ProductAPI) FeaturedHandler(c echo.Context) error {
	products, err := a.products.Featured(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list featured products")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	return c.JSON(http.StatusOK, products)
}

// RecommendationsHandler returns a random product sample.
func (a *ProductAPI) RecommendationsHandler(c echo.Context) error {
	products, err := a.products.Recommended(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to sample products")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	return c.JSON(http.StatusOK, products)
}

// ByCategoryHandler returns the products of one category.
func (a *ProductAPI) ByCategoryHandler(c echo.Context) error {
	products, err := a.products.ListByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		log.Error().Err(err).Msg("failed to list products by category")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"products": products})
}

// CreateHandler creates a product, uploading its image first.
func (a *ProductAPI) CreateHandler(c echo.Context) error {
	var input services.CreateProductInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	product, err := a.products.Create(c.Request().Context(), input)
	if err != nil {
		log.Error().Err(err).Msg("failed to create product")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	return c.JSON(http.StatusCreated, product)
}

// ToggleFeaturedHandler flips the featured flag.
func (a *ProductAPI) ToggleFeaturedHandler(c echo.Context) error {
	product, err := a.products.ToggleFeatured(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "product not found"})
		}
		log.Error().Err(err).Msg("failed to toggle featured flag")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteHandler deletes a product and its hosted image.
func (a *ProductAPI) DeleteHandler(c echo.Context) error {
	if err := a.products.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "product not found"})
		}
		log.Error().Err(err).Msg("failed to delete product")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted successfully"})
}
