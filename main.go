package main

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/tabledine/Table_Ordering_Backend/config"
	controller "github.com/tabledine/Table_Ordering_Backend/controllers"
	middleware "github.com/tabledine/Table_Ordering_Backend/middlewares"
	"github.com/tabledine/Table_Ordering_Backend/routes"
	"github.com/tabledine/Table_Ordering_Backend/session"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()
	if cfg.SecretKey == "" {
		logger.Fatal().Msg("SECRET_KEY is not set")
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	if err := config.InitMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("schema migration failed")
	}

	// Session state lives in Redis when configured, in process memory
	// otherwise. The memory store is only good for a single worker.
	var store session.Store
	if cfg.RedisAddr != "" {
		redisStore, err := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		store = redisStore
	} else {
		logger.Warn().Msg("REDIS_ADDR not set, using in-memory session store")
		store = session.NewMemoryStore()
	}
	sessions := session.NewManager(store)

	userController := controller.NewUserController(db, cfg.SecretKey, logger)
	itemController := controller.NewItemController(db, logger)
	menuController := controller.NewMenuController(db, sessions, cfg.BaseURL, logger)
	cartController := controller.NewCartController(db, sessions, cfg.BaseURL, logger)
	orderController := controller.NewOrderController(db, sessions, cfg.BaseURL, logger)
	dashboardController := controller.NewDashboardController(db, logger)
	qrController := controller.NewQRController(cfg.BaseURL)

	router := mux.NewRouter().StrictSlash(true)
	router.Use(middleware.Logger(&logger))

	// Public Routes (No Authentication)
	routes.PublicUserRoutes(router, userController)

	// Customer routes carry a session cookie; a valid bearer token is
	// honored but never required.
	customerRoutes := router.PathPrefix("/").Subrouter()
	customerRoutes.Use(middleware.Session, middleware.OptionalAuthentication(cfg.SecretKey))
	routes.CustomerRoutes(customerRoutes, menuController, cartController, orderController)

	// Apply Authentication Middleware to Protected Routes
	securedRoutes := router.PathPrefix("/").Subrouter()
	securedRoutes.Use(middleware.Authentication(cfg.SecretKey))
	routes.ProtectedUserRoutes(securedRoutes, userController)
	routes.ItemProtectedRoutes(securedRoutes, itemController)
	routes.OrderProtectedRoutes(securedRoutes, orderController, dashboardController, qrController)

	logger.Info().Str("port", cfg.Port).Msg("server running")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
