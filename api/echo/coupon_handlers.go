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

// CouponAPI serves the coupon endpoints.
type CouponAPI struct {
	coupons *services.CouponService
}

// NewCouponAPI initializes the coupon API.
func NewCouponAPI(coupons *services.CouponService) *CouponAPI {
	return &CouponAPI{coupons: coupons}
}

// RegisterRoutes registers the coupon routes behind the gate.
func (a *CouponAPI) RegisterRoutes(e *echo.Echo, gate echo.MiddlewareFunc) {
	g := e.Group("/api/coupons", gate)
	g.GET("", a.GetCouponHandler)
	g.POST("/validate", a.ValidateCouponHandler)
}

// GetCouponHandler returns the user's active coupon, or null.
func (a *CouponAPI) GetCouponHandler(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	coupon, err := a.coupons.ActiveCoupon(c.Request().Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load coupon")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	return c.JSON(http.StatusOK, coupon)
}

type validateCouponRequest struct {
	Code string `json:"code"`
}

// ValidateCouponHandler checks a code for the current user.
func (a *CouponAPI) ValidateCouponHandler(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req validateCouponRequest
	if err := c.Bind(&req); err != nil || req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "code is required"})
	}

	coupon, err := a.coupons.Validate(c.Request().Context(), user.ID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCouponNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "coupon not found"})
		case errors.Is(err, domain.ErrCouponExpired):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "coupon expired"})
		default:
			log.Error().Err(err).Msg("failed to validate coupon")
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":            "coupon is valid",
		"code":               coupon.Code,
		"discountPercentage": coupon.DiscountPercentage,
	})
}
