package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HolmesInc/data-storage/internal/config"
	"github.com/HolmesInc/data-storage/internal/database"
	"github.com/HolmesInc/data-storage/internal/handlers"
	"github.com/HolmesInc/data-storage/internal/middleware"
	"github.com/HolmesInc/data-storage/internal/services"
	"github.com/HolmesInc/data-storage/internal/storage"
	"github.com/HolmesInc/data-storage/pkg/logger"
	"github.com/HolmesInc/data-storage/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	logger.Init()

	cfg := config.Load()
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.ExpirationHours)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	storageClient, err := storage.NewMinIOClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("minio initialization failed: %v", err)
	}
	if err := storageClient.EnsureBucket(context.Background()); err != nil {
		log.Fatalf("failed ensuring minio bucket: %v", err)
	}

	auditService := services.NewAuditService(db)

	authHandler := handlers.NewAuthHandler(db, auditService)
	roomsHandler := handlers.NewRoomsHandler(db, storageClient, auditService)
	foldersHandler := handlers.NewFoldersHandler(db, storageClient, auditService)
	filesHandler := handlers.NewFilesHandler(db, storageClient, auditService)
	sharesHandler := handlers.NewSharesHandler(db, auditService)
	auditHandler := handlers.NewAuditHandler(db)

	authMiddleware := middleware.NewAuthMiddleware(db)

	app := fiber.New(fiber.Config{BodyLimit: 100 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v0")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", authMiddleware.RequireAuth, authHandler.Me)

	roomRoutes := api.Group("/rooms", authMiddleware.RequireAuth)
	roomRoutes.Get("/", roomsHandler.List)
	roomRoutes.Post("/", roomsHandler.Create)
	roomRoutes.Get("/:id", roomsHandler.Get)
	roomRoutes.Put("/:id", roomsHandler.Update)
	roomRoutes.Delete("/:id", roomsHandler.Delete)

	folderRoutes := api.Group("/folders", authMiddleware.RequireAuth)
	folderRoutes.Get("/", foldersHandler.List)
	folderRoutes.Post("/", foldersHandler.Create)
	folderRoutes.Get("/:id", foldersHandler.Get)
	folderRoutes.Patch("/:id", foldersHandler.Update)
	folderRoutes.Delete("/:id", foldersHandler.Delete)

	// The token download route must register before /files/:id so "share"
	// is never parsed as a file id.
	api.Get("/files/share/:token/download", filesHandler.ShareDownload)

	fileRoutes := api.Group("/files", authMiddleware.RequireAuth)
	fileRoutes.Get("/", filesHandler.List)
	fileRoutes.Post("/", filesHandler.Upload)
	fileRoutes.Get("/:id/download", filesHandler.Download)
	fileRoutes.Post("/:id/share", sharesHandler.Create)
	fileRoutes.Get("/:id/shares", sharesHandler.ListForFile)
	fileRoutes.Get("/:id", filesHandler.Get)
	fileRoutes.Patch("/:id", filesHandler.Update)
	fileRoutes.Delete("/:id", filesHandler.Delete)

	shareRoutes := api.Group("/shares", authMiddleware.RequireAuth)
	shareRoutes.Delete("/:id", sharesHandler.Delete)

	api.Get("/audit/export", authMiddleware.RequireAuth, auditHandler.ExportMyLog)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":       cfg.Server.Port,
		"address":    listenAddr,
		"body_limit": "100MB",
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
