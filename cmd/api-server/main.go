package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"recipehub/database"
	"recipehub/internal/config"
	"recipehub/internal/httpapi/handler"
	"recipehub/internal/httpapi/repository"
	"recipehub/internal/httpapi/service"
	"recipehub/internal/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "err", err)
		os.Exit(1)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid redis url", "err", err)
			os.Exit(1)
		}
		if cfg.RedisPassword != "" {
			opts.Password = cfg.RedisPassword
		}
		rdb = redis.NewClient(opts)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewCommentLikeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	recipeService := service.NewRecipeService(recipeRepo, logger)
	commentService := service.NewCommentService(commentRepo, likeRepo, recipeRepo, logger)
	favoriteService := service.NewFavoriteService(favoriteRepo, recipeRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, int64(cfg.AccessTokenTTL.Seconds()))
	recipeHandler := handler.NewRecipeHandler(recipeService, favoriteService, commentService)
	commentHandler := handler.NewCommentHandler(commentService)
	adminHandler := handler.NewAdminHandler(recipeService, commentService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.NewRateLimiter(rdb, cfg.RateLimitPerMinute).Handler())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Reads work anonymously but pick up the caller when a token is sent,
	// so authors and admins can see unapproved recipes.
	public := api.Group("")
	public.Use(middleware.OptionalAuth(authService))

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(authService))

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authService), middleware.RequireAdmin())

	authHandler.RegisterRoutes(public, authed)
	recipeHandler.RegisterRoutes(public, authed)
	commentHandler.RegisterRoutes(authed)
	adminHandler.RegisterRoutes(admin)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting server", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
