package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"crewup/config"
	"crewup/internal/adapters/cache"
	httpdelivery "crewup/internal/delivery/http"
	"crewup/internal/delivery/http/controllers"
	"crewup/internal/delivery/http/middleware"
	"crewup/internal/domain"
	"crewup/internal/repository/postgres"
	"crewup/internal/services"
)

const featuredCacheTTL = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Error("failed to apply schema", "err", err)
		os.Exit(1)
	}
	logger.Info("database ready")

	// The group cache is optional; without REDIS_ADDR every read goes
	// straight to the store.
	var groupCache domain.GroupCache
	if cfg.RedisAddr != "" {
		rc := cache.NewGroupCache(cfg.RedisAddr, featuredCacheTTL)
		if err := rc.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, running without cache", "addr", cfg.RedisAddr, "err", err)
		} else {
			defer rc.Close()
			groupCache = rc
			logger.Info("group cache enabled", "addr", cfg.RedisAddr)
		}
	}

	groupRepo := postgres.NewGroupRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	userRepo := postgres.NewUserRepository(db)

	userService := services.NewUserService(userRepo)
	groupService := services.NewGroupService(groupRepo, bookingRepo, groupCache)
	bookingService := services.NewBookingService(groupRepo, bookingRepo)

	userController := controllers.NewUserController(logger, userService)
	groupController := controllers.NewGroupController(logger, groupService)
	bookingController := controllers.NewBookingController(logger, bookingService)

	router := httpdelivery.NewRouter(userController, groupController, bookingController)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, router))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("listening", "port", cfg.Port, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
