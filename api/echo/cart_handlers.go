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

// CartAPI serves the cart endpoints. Every route requires an
// authenticated user.
type CartAPI struct {
	carts *services.CartService
}

// NewCartAPI initializes the cart API.
func NewCartAPI(carts *services.CartService) *CartAPI {
	return &CartAPI{carts: carts}
}

// RegisterRoutes registers the cart routes behind the gate.
func (a *CartAPI) RegisterRoutes(e *echo.Echo, gate echo.MiddlewareFunc) {
	g := e.Group("/api/cart", gate)
	g.GET("", a.GetCartHandler)
	g.POST("", a.AddToCartHandler)
	g.DELETE("", a.RemoveFromCartHandler)
	g.PUT("/:id", a.UpdateQuantityHandler)
}

// GetCartHandler returns the cart lines joined with product data.
func (a *CartAPI) GetCartHandler(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	lines, err := a.carts.GetCart(c.Request().Context(), user)
	if err != nil {
		log.Error().Err(err).Msg("failed to load cart")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	return c.JSON(http.StatusOK, lines)
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
}

// AddToCartHandler adds one unit of a product to the cart.
func (a *CartAPI) AddToCartHandler(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req cartItemRequest
	if err := c.Bind(&req); err != nil || req.ProductID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "productId is required"})
	}

	items, err := a.carts.AddToCart(c.Request().Context(), user, req.ProductID)
	if err != nil {
		log.Error().Err(err).Msg("failed to add to cart")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	return c.JSON(http.StatusOK, items)
}

// RemoveFromCartHandler removes a product's line; with no productId in
// the body the whole cart is cleared.
func (a *CartAPI) RemoveFromCartHandler(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		req.ProductID = ""
	}

	items, err := a.carts.RemoveFromCart(c.Request().Context(), user, req.ProductID)
	if err != nil {
		log.Error().Err(err).Msg("failed to remove from cart")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	return c.JSON(http.StatusOK, items)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantityHandler sets the quantity of an existing cart line.
func (a *CartAPI) UpdateQuantityHandler(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil || req.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid quantity"})
	}

	items, err := a.carts.UpdateQuantity(c.Request().Context(), user, c.Param("id"), req.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "product not found"})
		}
		log.Error().Err(err).Msg("failed to update cart quantity")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	return c.JSON(http.StatusOK, items)
}
