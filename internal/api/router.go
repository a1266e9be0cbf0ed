package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/JesloDev/e-library/internal/api/handler"
	"github.com/JesloDev/e-library/internal/api/middleware"
	"github.com/JesloDev/e-library/internal/core/ports"
	"github.com/JesloDev/e-library/internal/core/service"
	mongodb "github.com/JesloDev/e-library/internal/infrastructure/db/mongo"
	redisdb "github.com/JesloDev/e-library/internal/infrastructure/db/redis"
	"github.com/JesloDev/e-library/internal/pdfcover"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	store ports.ObjectStore,
	mailer ports.Mailer,
	jwtSecret string,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("elibrary"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	inviteRepo := mongodb.NewInviteRepository(db)
	bookRepo := mongodb.NewBookRepository(db)
	revoker := redisdb.NewTokenRevoker(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, inviteRepo, revoker, jwtSecret, 24*time.Hour, log)
	inviteService := service.NewInviteService(inviteRepo, log)
	approvalService := service.NewApprovalService(userRepo, mailer, log)
	catalogService := service.NewCatalogService(bookRepo, log)
	uploadService := service.NewUploadService(catalogService, store, pdfcover.NewRenderer(), log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(approvalService, inviteService)
	bookHandler := handler.NewBookHandler(catalogService)
	uploadHandler := handler.NewUploadHandler(uploadService)

	authMiddleware := middleware.Auth(jwtSecret, revoker)

	// --- Public routes ---
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/register", authHandler.Register)
	e.GET("/api/books", bookHandler.List)

	// --- Authenticated routes ---
	e.POST("/api/auth/logout", authHandler.Logout, authMiddleware)

	// --- Admin routes ---
	admin := e.Group("/api/admin", authMiddleware, middleware.AdminOnly())
	admin.GET("/pending-users", adminHandler.PendingUsers)
	admin.POST("/approve-user", adminHandler.ApproveUser)
	admin.POST("/generate-link", adminHandler.GenerateLink)
	admin.GET("/links", adminHandler.Links)
	admin.DELETE("/links/:id", adminHandler.DeleteLink)
	admin.POST("/books", bookHandler.Create)
	admin.DELETE("/books/:id", bookHandler.Delete)
	admin.POST("/upload", uploadHandler.Upload)
	admin.POST("/materials", uploadHandler.SubmitMaterial)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
