package handlers

import (
	"bytes"
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/HolmesInc/data-storage/internal/middleware"
	"github.com/HolmesInc/data-storage/internal/models"
	"github.com/HolmesInc/data-storage/internal/services"
	"github.com/HolmesInc/data-storage/pkg/logger"
	"github.com/HolmesInc/data-storage/pkg/utils"
	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	store *fakeStore
}

// fakeStore is an in-memory ObjectStore so handler tests run without MinIO.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Upload(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectName] = data
	return nil
}

func (s *fakeStore) Download(_ context.Context, objectName string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[objectName]
	if !ok {
		return nil, fmt.Errorf("object %s not found", objectName)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) Delete(_ context.Context, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectName)
	return nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

var testSetupOnce sync.Once

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testSetupOnce.Do(func() {
		gosqlite.MustRegisterScalarFunction("NOW", 0, func(ctx *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			return time.Now().UTC(), nil
		})
		logger.Init()
		utils.ConfigureJWT("test-secret", 24)
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	err = db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Folder{},
		&models.File{},
		&models.Share{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("failed automigrating models: %v", err)
	}

	store := newFakeStore()
	auditService := services.NewAuditService(db)

	authHandler := NewAuthHandler(db, auditService)
	roomsHandler := NewRoomsHandler(db, store, auditService)
	foldersHandler := NewFoldersHandler(db, store, auditService)
	filesHandler := NewFilesHandler(db, store, auditService)
	sharesHandler := NewSharesHandler(db, auditService)
	auditHandler := NewAuditHandler(db)
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

	return &testEnv{app: app, db: db, store: store}
}

func createTestUser(t *testing.T, db *gorm.DB, email, password string) (*models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("failed hashing password: %v", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Test",
		LastName:     "User",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed creating test user: %v", err)
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		t.Fatalf("failed generating auth token: %v", err)
	}

	return user, token
}

func createTestRoom(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string) *models.Room {
	t.Helper()

	room := &models.Room{Name: name, OwnerID: ownerID}
	if err := db.Create(room).Error; err != nil {
		t.Fatalf("failed creating test room: %v", err)
	}
	return room
}

func createTestFolder(t *testing.T, db *gorm.DB, roomID uuid.UUID, parentID *uuid.UUID, name string) *models.Folder {
	t.Helper()

	folder := &models.Folder{Name: name, RoomID: roomID, ParentID: parentID}
	if err := db.Create(folder).Error; err != nil {
		t.Fatalf("failed creating test folder: %v", err)
	}
	return folder
}

func createTestFile(t *testing.T, env *testEnv, folderID uuid.UUID, name, content string) *models.File {
	t.Helper()

	storagePath := fmt.Sprintf("test/%s/%s", uuid.New().String(), name)
	if err := env.store.Upload(context.Background(), storagePath, bytes.NewReader([]byte(content)), int64(len(content)), "application/pdf"); err != nil {
		t.Fatalf("failed seeding fake storage: %v", err)
	}

	file := &models.File{
		Name:        name,
		Size:        int64(len(content)),
		ContentType: "application/pdf",
		FolderID:    folderID,
		StoragePath: storagePath,
	}
	if err := env.db.Create(file).Error; err != nil {
		t.Fatalf("failed creating test file: %v", err)
	}
	return file
}

func createTestShare(t *testing.T, db *gorm.DB, fileID uuid.UUID, expiresAt *time.Time) *models.Share {
	t.Helper()

	share := &models.Share{FileID: fileID, ExpiresAt: expiresAt}
	if err := db.Create(share).Error; err != nil {
		t.Fatalf("failed creating test share: %v", err)
	}
	return share
}

func authHeaders(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, int((10 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	return resp
}

func performJSONRequest(t *testing.T, app *fiber.App, method, path string, payload any, headers map[string]string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	requestHeaders := map[string]string{}
	for key, value := range headers {
		requestHeaders[key] = value
	}
	if payload != nil {
		requestHeaders["Content-Type"] = "application/json"
	}

	return performRequest(t, app, method, path, body, requestHeaders)
}

func decodeJSONMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed reading response body: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed decoding JSON response: %v body=%q", err, string(raw))
	}

	return payload
}

func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

func assertEnvelopeError(t *testing.T, body map[string]any, expected string) {
	t.Helper()
	if success, _ := body["success"].(bool); success {
		t.Fatalf("expected success=false, got %+v", body)
	}
	if got, _ := body["error"].(string); got != expected {
		t.Fatalf("expected error %q, got %q", expected, got)
	}
}

func dataMap(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %+v", body)
	}
	return data
}

func dataSlice(t *testing.T, body map[string]any) []any {
	t.Helper()
	data, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("expected data array, got %+v", body)
	}
	return data
}
