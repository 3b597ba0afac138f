package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	echoapi "github.com/gabrielwillianfb/ecommerce/api/echo"
	"github.com/gabrielwillianfb/ecommerce/config"
)

// APIs groups the route registrars mounted on the HTTP server.
type APIs struct {
	Auth     *echoapi.AuthAPI
	Products *echoapi.ProductAPI
	Carts    *echoapi.CartAPI
	Coupons  *echoapi.CouponAPI
}

// NewHTTPServer creates and configures the storefront HTTP server.
// gate is the authentication middleware applied to protected routes.
func NewHTTPServer(cfg *config.ServerConfig, apis APIs, gate echo.MiddlewareFunc) *http.Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("HTTP request")
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	apis.Auth.RegisterRoutes(e, gate)
	apis.Products.RegisterRoutes(e, gate)
	apis.Carts.RegisterRoutes(e, gate)
	apis.Coupons.RegisterRoutes(e, gate)

	return &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      e,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
