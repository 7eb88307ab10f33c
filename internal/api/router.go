package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/CristopherGamboa/lab-identity-service/docs"
	"github.com/CristopherGamboa/lab-identity-service/internal/api/handler"
	"github.com/CristopherGamboa/lab-identity-service/internal/api/middleware"
	"github.com/CristopherGamboa/lab-identity-service/internal/core/authz"
	"github.com/CristopherGamboa/lab-identity-service/internal/core/service"
	"github.com/CristopherGamboa/lab-identity-service/internal/core/token"
	mongodb "github.com/CristopherGamboa/lab-identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/CristopherGamboa/lab-identity-service/internal/infrastructure/db/redis"
	"github.com/CristopherGamboa/lab-identity-service/internal/infrastructure/http/handlers"
	"github.com/CristopherGamboa/lab-identity-service/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	codec, err := token.NewCodec(cfg.JWT.Secret, cfg.JWT.Expiration)
	if err != nil {
		return nil, err
	}

	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	hasher := service.NewBcryptHasher(0)
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Login.MaxFailures, cfg.Login.FailureWindow)

	authService := service.NewAuthService(userRepo, hasher, codec, limiter, log)
	userService := service.NewUserService(userRepo, roleRepo, hasher, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	authMiddleware := middleware.Auth(codec)

	// --- Auth routes ---
	v1 := e.Group("/api/v1")
	v1.POST("/auth/login", authHandler.Login)

	// --- User routes (bearer token + role policy) ---
	users := v1.Group("/users", authMiddleware)
	users.POST("", userHandler.Create, middleware.Authorize(authz.OpUserCreate))
	users.GET("", userHandler.List, middleware.Authorize(authz.OpUserList))
	users.GET("/patients", userHandler.ListPatients, middleware.Authorize(authz.OpUserListPatients))
	users.GET("/:id", userHandler.GetByID, middleware.Authorize(authz.OpUserRead))
	users.PUT("/:id", userHandler.Update, middleware.Authorize(authz.OpUserUpdate))
	users.DELETE("/:id", userHandler.Delete, middleware.Authorize(authz.OpUserDelete))

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e, nil
}
