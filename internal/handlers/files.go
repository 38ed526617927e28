package handlers

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/HolmesInc/data-storage/internal/middleware"
	"github.com/HolmesInc/data-storage/internal/models"
	"github.com/HolmesInc/data-storage/internal/services"
	"github.com/HolmesInc/data-storage/pkg/logger"
	"github.com/HolmesInc/data-storage/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FilesHandler struct {
	DB      *gorm.DB
	Storage ObjectStore
	Audit   *services.AuditService
}

func NewFilesHandler(db *gorm.DB, store ObjectStore, audit *services.AuditService) *FilesHandler {
	return &FilesHandler{DB: db, Storage: store, Audit: audit}
}

func (h *FilesHandler) List(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	folderID, err := parseUUID(c.Query("folder_id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "folder_id is required")
	}

	folder, errResp := loadOwnedFolderByID(c, h.DB, currentUser, folderID)
	if folder == nil {
		return errResp
	}

	var files []models.File
	if err := h.DB.Where("folder_id = ?", folder.ID).Order("created_at ASC").Find(&files).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing files")
	}

	return utils.Success(c, fiber.StatusOK, files)
}

func (h *FilesHandler) Upload(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "file is required")
	}

	folderID, err := parseUUID(c.FormValue("folderID"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "folderID is required")
	}

	folder, errResp := loadOwnedFolderByID(c, h.DB, currentUser, folderID)
	if folder == nil {
		return errResp
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		name = filepath.Base(strings.TrimSpace(fileHeader.Filename))
	}
	if name == "" || name == "." {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file name")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(fileHeader.Filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	stream, err := fileHeader.Open()
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed opening uploaded file")
	}
	defer stream.Close()

	objectName := fmt.Sprintf("%s/%s/%s", currentUser.ID.String(), uuid.New().String(), filepath.Base(fileHeader.Filename))
	if err := h.Storage.Upload(c.Context(), objectName, stream, fileHeader.Size, contentType); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed uploading file")
	}

	entry := models.File{
		Name:        name,
		Size:        fileHeader.Size,
		ContentType: contentType,
		FolderID:    folder.ID,
		StoragePath: objectName,
	}
	if err := h.DB.Create(&entry).Error; err != nil {
		_ = h.Storage.Delete(c.Context(), objectName)
		return utils.Error(c, fiber.StatusInternalServerError, "failed creating file record")
	}

	logger.InfoWithUser(currentUser.ID.String(), "file_uploaded", map[string]interface{}{
		"file_id":      entry.ID.String(),
		"file_name":    name,
		"file_size":    fileHeader.Size,
		"content_type": contentType,
		"folder_id":    folder.ID.String(),
	})

	h.Audit.LogAsync(services.AuditEntry{
		UserID:       &currentUser.ID,
		Action:       "file.upload",
		ResourceType: "file",
		ResourceID:   &entry.ID,
		Details: map[string]interface{}{
			"file_name":    name,
			"file_size":    fileHeader.Size,
			"content_type": contentType,
			"folder_id":    folder.ID.String(),
		},
		IPAddress: c.IP(),
		RequestID: getRequestID(c),
	})

	return utils.Success(c, fiber.StatusCreated, entry)
}

func (h *FilesHandler) Get(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	file, errResp := h.loadOwnedFile(c, currentUser)
	if file == nil {
		return errResp
	}

	return utils.Success(c, fiber.StatusOK, file)
}

type updateFileRequest struct {
	Name *string `json:"name"`
}

func (h *FilesHandler) Update(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	file, errResp := h.loadOwnedFile(c, currentUser)
	if file == nil {
		return errResp
	}

	var req updateFileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == nil {
		return utils.Error(c, fiber.StatusBadRequest, "no valid fields to update")
	}
	name := strings.TrimSpace(*req.Name)
	if name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "name cannot be empty")
	}

	if err := h.DB.Model(&models.File{}).Where("id = ?", file.ID).Update("name", name).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed updating file")
	}

	var updated models.File
	if err := h.DB.First(&updated, "id = ?", file.ID).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading updated file")
	}

	h.Audit.LogAsync(services.AuditEntry{
		UserID:       &currentUser.ID,
		Action:       "file.rename",
		ResourceType: "file",
		ResourceID:   &file.ID,
		Details: map[string]interface{}{
			"old_name": file.Name,
			"new_name": updated.Name,
		},
		IPAddress: c.IP(),
		RequestID: getRequestID(c),
	})

	return utils.Success(c, fiber.StatusOK, updated)
}

func (h *FilesHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	file, errResp := h.loadOwnedFile(c, currentUser)
	if file == nil {
		return errResp
	}

	if err := deleteFileRecord(c.Context(), h.DB, h.Storage, file); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed deleting file")
	}

	logger.InfoWithUser(currentUser.ID.String(), "file_deleted", map[string]interface{}{
		"file_id":   file.ID.String(),
		"file_name": file.Name,
	})

	h.Audit.LogAsync(services.AuditEntry{
		UserID:       &currentUser.ID,
		Action:       "file.delete",
		ResourceType: "file",
		ResourceID:   &file.ID,
		Details:      map[string]interface{}{"file_name": file.Name},
		IPAddress:    c.IP(),
		RequestID:    getRequestID(c),
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "file deleted"})
}

func (h *FilesHandler) Download(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	file, errResp := h.loadOwnedFile(c, currentUser)
	if file == nil {
		return errResp
	}

	h.Audit.LogAsync(services.AuditEntry{
		UserID:       &currentUser.ID,
		Action:       "file.download",
		ResourceType: "file",
		ResourceID:   &file.ID,
		Details: map[string]interface{}{
			"file_name": file.Name,
			"file_size": file.Size,
		},
		IPAddress: c.IP(),
		RequestID: getRequestID(c),
	})

	return h.streamFile(c, file)
}

// ShareDownload serves a file payload for a share token. No credential is
// required; an unknown token is indistinguishable from a missing file.
func (h *FilesHandler) ShareDownload(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Params("token"))
	if token == "" {
		return utils.Error(c, fiber.StatusNotFound, "share not found")
	}

	var share models.Share
	if err := h.DB.First(&share, "token = ?", token).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "share not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading share")
	}

	if share.IsExpired(time.Now().UTC()) {
		return utils.Error(c, fiber.StatusForbidden, "share link has expired")
	}

	var file models.File
	if err := h.DB.First(&file, "id = ?", share.FileID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "file not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading file")
	}

	logger.Info("share_download", map[string]interface{}{
		"share_id":  share.ID.String(),
		"file_id":   file.ID.String(),
		"file_name": file.Name,
		"ip":        c.IP(),
	})

	h.Audit.LogAsync(services.AuditEntry{
		Action:       "share.download",
		ResourceType: "share",
		ResourceID:   &share.ID,
		Details: map[string]interface{}{
			"file_id":   file.ID.String(),
			"file_name": file.Name,
		},
		IPAddress: c.IP(),
		RequestID: getRequestID(c),
	})

	return h.streamFile(c, &file)
}

func (h *FilesHandler) streamFile(c *fiber.Ctx, file *models.File) error {
	obj, err := h.Storage.Download(c.Context(), file.StoragePath)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed downloading file")
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Set("Content-Type", contentType)
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	return c.SendStream(obj, int(file.Size))
}

func (h *FilesHandler) loadOwnedFile(c *fiber.Ctx, currentUser *models.User) (*models.File, error) {
	fileID, err := parseUUID(c.Params("id"))
	if err != nil {
		return nil, utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}
	return loadOwnedFileByID(c, h.DB, currentUser, fileID)
}

// loadOwnedFileByID loads a file and enforces ownership through the containing
// folder's room. On failure the file is nil and the returned error is the
// already-written response.
func loadOwnedFileByID(c *fiber.Ctx, db *gorm.DB, currentUser *models.User, fileID uuid.UUID) (*models.File, error) {
	var file models.File
	if err := db.First(&file, "id = ?", fileID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.Error(c, fiber.StatusNotFound, "file not found")
		}
		return nil, utils.Error(c, fiber.StatusInternalServerError, "failed loading file")
	}

	if folder, errResp := loadOwnedFolderByID(c, db, currentUser, file.FolderID); folder == nil {
		return nil, errResp
	}
	return &file, nil
}
