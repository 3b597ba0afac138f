package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	echoapi "github.com/gabrielwillianfb/ecommerce/api/echo"
	redisstore "github.com/gabrielwillianfb/ecommerce/cache/redis"
	"github.com/gabrielwillianfb/ecommerce/config"
	"github.com/gabrielwillianfb/ecommerce/internal/auth"
	"github.com/gabrielwillianfb/ecommerce/internal/images"
	"github.com/gabrielwillianfb/ecommerce/internal/server"
	"github.com/gabrielwillianfb/ecommerce/middleware"
	"github.com/gabrielwillianfb/ecommerce/mongodb"
	"github.com/gabrielwillianfb/ecommerce/services"
	"github.com/gabrielwillianfb/ecommerce/token"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Logger setup
	logLevel, parseErr := zerolog.ParseLevel(cfg.LogLevel)
	if parseErr != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	log.Info().
		Str("http_port", cfg.HTTPPort).
		Str("mongo_db", cfg.MongoDBName).
		Str("redis_addr", cfg.RedisAddr).
		Str("environment", cfg.Environment).
		Msg("Starting storefront server")

	ctx := context.Background()

	// MongoDB
	if err := mongodb.InitMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize MongoDB connection")
	}
	db := mongodb.GetDB()

	// Redis
	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping Redis")
	}

	// Repositories
	userRepo, err := mongodb.NewUserRepository(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize UserRepository")
	}
	productRepo, err := mongodb.NewProductRepository(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize ProductRepository")
	}
	couponRepo, err := mongodb.NewCouponRepository(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize CouponRepository")
	}

	// Session protocol
	codec := token.NewCodec(
		[]byte(cfg.AccessTokenSecret),
		[]byte(cfg.RefreshTokenSecret),
		cfg.AccessTokenTTL(),
		cfg.RefreshTokenTTL(),
	)
	sessionStore := redisstore.NewSessionStore(redisClient)
	sessionManager := services.NewSessionManager(codec, sessionStore)

	// Services
	passwordHasher := auth.NewBcryptPasswordHasher(bcrypt.DefaultCost)
	userService := services.NewUserService(userRepo, passwordHasher)
	imageStore := images.NewHTTPImageStore(cfg.ImageStoreURL)
	featuredCache := redisstore.NewFeaturedCache(redisClient)
	productService := services.NewProductService(productRepo, imageStore, featuredCache)
	cartService := services.NewCartService(userRepo, productRepo)
	couponService := services.NewCouponService(couponRepo)

	// HTTP surface
	gate := middleware.RequireAuth(codec, sessionStore, userRepo)
	cookies := echoapi.NewCookieWriter(cfg.AccessTokenTTL(), cfg.RefreshTokenTTL(), cfg.IsProduction())
	apis := server.APIs{
		Auth:     echoapi.NewAuthAPI(userService, sessionManager, cookies),
		Products: echoapi.NewProductAPI(productService),
		Carts:    echoapi.NewCartAPI(cartService),
		Coupons:  echoapi.NewCouponAPI(couponService),
	}
	httpServer := server.NewHTTPServer(cfg, apis, gate)

	go func() {
		log.Info().Msgf("HTTP server listening on port %s", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	log.Info().Msgf("Received signal: %v. Shutting down server...", receivedSignal)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	if err := redisClient.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing Redis connection")
	}
	mongodb.CloseMongoDB(shutdownCtx)

	log.Info().Msg("Server gracefully stopped.")
}
