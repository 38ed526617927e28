package handlers

import (
	"context"
	"strings"

	"github.com/HolmesInc/data-storage/internal/middleware"
	"github.com/HolmesInc/data-storage/internal/models"
	"github.com/HolmesInc/data-storage/internal/services"
	"github.com/HolmesInc/data-storage/pkg/logger"
	"github.com/HolmesInc/data-storage/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FoldersHandler struct {
	DB      *gorm.DB
	Storage ObjectStore
	Audit   *services.AuditService
}

func NewFoldersHandler(db *gorm.DB, store ObjectStore, audit *services.AuditService) *FoldersHandler {
	return &FoldersHandler{DB: db, Storage: store, Audit: audit}
}

func (h *FoldersHandler) List(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	roomID, err := parseUUID(c.Query("room_id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "room_id is required")
	}

	var room models.Room
	if err := h.DB.First(&room, "id = ?", roomID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "room not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading room")
	}
	if room.OwnerID != currentUser.ID {
		return utils.Error(c, fiber.StatusForbidden, "access denied")
	}

	var folders []models.Folder
	if err := h.DB.Where("room_id = ?", roomID).Order("created_at ASC").Find(&folders).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing folders")
	}

	return utils.Success(c, fiber.StatusOK, folders)
}

type createFolderRequest struct {
	Name     string  `json:"name"`
	RoomID   string  `json:"roomID"`
	ParentID *string `json:"parentID"`
}

func (h *FoldersHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req createFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "name is required")
	}

	roomID, err := parseUUID(req.RoomID)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid roomID")
	}

	var room models.Room
	if err := h.DB.First(&room, "id = ?", roomID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "room not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading room")
	}
	if room.OwnerID != currentUser.ID {
		return utils.Error(c, fiber.StatusForbidden, "access denied")
	}

	var parentID *uuid.UUID
	if req.ParentID != nil && strings.TrimSpace(*req.ParentID) != "" {
		parsed, parseErr := parseUUID(*req.ParentID)
		if parseErr != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid parentID")
		}

		var parent models.Folder
		if err := h.DB.First(&parent, "id = ?", parsed).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.Error(c, fiber.StatusNotFound, "parent folder not found")
			}
			return utils.Error(c, fiber.StatusInternalServerError, "failed loading parent folder")
		}
		if parent.RoomID != roomID {
			return utils.Error(c, fiber.StatusBadRequest, "parent folder belongs to another room")
		}
		parentID = &parsed
	}

	folder := models.Folder{
		Name:     name,
		RoomID:   roomID,
		ParentID: parentID,
	}
	if err := h.DB.Create(&folder).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed creating folder")
	}

	logger.InfoWithUser(currentUser.ID.String(), "folder_created", map[string]interface{}{
		"folder_id":   folder.ID.String(),
		"folder_name": folder.Name,
		"room_id":     roomID.String(),
	})

	h.Audit.LogAsync(services.AuditEntry{
		UserID:       &currentUser.ID,
		Action:       "folder.create",
		ResourceType: "folder",
		ResourceID:   &folder.ID,
		Details: map[string]interface{}{
			"folder_name": folder.Name,
			"room_id":     roomID.String(),
		},
		IPAddress: c.IP(),
		RequestID: getRequestID(c),
	})

	return utils.Success(c, fiber.StatusCreated, folder)
}

// Get returns the folder plus its immediate subfolders and files, which is
// exactly the set clients need to render one tree level.
func (h *FoldersHandler) Get(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	folder, errResp := h.loadOwnedFolder(c, currentUser)
	if folder == nil {
		return errResp
	}

	var subfolders []models.Folder
	if err := h.DB.Where("parent_id = ?", folder.ID).Order("created_at ASC").Find(&subfolders).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing subfolders")
	}

	var files []models.File
	if err := h.DB.Where("folder_id = ?", folder.ID).Order("created_at ASC").Find(&files).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing files")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"folder":  folder,
		"folders": subfolders,
		"files":   files,
	})
}

type updateFolderRequest struct {
	Name *string `json:"name"`
}

func (h *FoldersHandler) Update(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	folder, errResp := h.loadOwnedFolder(c, currentUser)
	if folder == nil {
		return errResp
	}

	var req updateFolderRequest
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

	if err := h.DB.Model(&models.Folder{}).Where("id = ?", folder.ID).Update("name", name).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed updating folder")
	}

	var updated models.Folder
	if err := h.DB.First(&updated, "id = ?", folder.ID).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading updated folder")
	}

	h.Audit.LogAsync(services.AuditEntry{
		UserID:       &currentUser.ID,
		Action:       "folder.rename",
		ResourceType: "folder",
		ResourceID:   &folder.ID,
		Details: map[string]interface{}{
			"old_name": folder.Name,
			"new_name": updated.Name,
		},
		IPAddress: c.IP(),
		RequestID: getRequestID(c),
	})

	return utils.Success(c, fiber.StatusOK, updated)
}

func (h *FoldersHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	folder, errResp := h.loadOwnedFolder(c, currentUser)
	if folder == nil {
		return errResp
	}

	if err := deleteFolderRecursive(c.Context(), h.DB, h.Storage, folder.ID); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed deleting folder")
	}

	logger.InfoWithUser(currentUser.ID.String(), "folder_deleted", map[string]interface{}{
		"folder_id":   folder.ID.String(),
		"folder_name": folder.Name,
	})

	h.Audit.LogAsync(services.AuditEntry{
		UserID:       &currentUser.ID,
		Action:       "folder.delete",
		ResourceType: "folder",
		ResourceID:   &folder.ID,
		Details:      map[string]interface{}{"folder_name": folder.Name},
		IPAddress:    c.IP(),
		RequestID:    getRequestID(c),
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "folder deleted"})
}

func (h *FoldersHandler) loadOwnedFolder(c *fiber.Ctx, currentUser *models.User) (*models.Folder, error) {
	folderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return nil, utils.Error(c, fiber.StatusBadRequest, "invalid folder id")
	}
	return loadOwnedFolderByID(c, h.DB, currentUser, folderID)
}

// loadOwnedFolderByID loads a folder and enforces that the current user owns
// the room it belongs to. On failure the folder is nil and the returned error
// is the already-written response.
func loadOwnedFolderByID(c *fiber.Ctx, db *gorm.DB, currentUser *models.User, folderID uuid.UUID) (*models.Folder, error) {
	var folder models.Folder
	if err := db.First(&folder, "id = ?", folderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.Error(c, fiber.StatusNotFound, "folder not found")
		}
		return nil, utils.Error(c, fiber.StatusInternalServerError, "failed loading folder")
	}

	var room models.Room
	if err := db.First(&room, "id = ?", folder.RoomID).Error; err != nil {
		return nil, utils.Error(c, fiber.StatusInternalServerError, "failed loading room")
	}
	if room.OwnerID != currentUser.ID {
		return nil, utils.Error(c, fiber.StatusForbidden, "access denied")
	}
	return &folder, nil
}

// deleteFolderRecursive removes a folder subtree bottom-up: files first (the
// stored payload, then share rows, then the record), then child folders, then
// the folder itself.
func deleteFolderRecursive(ctx context.Context, db *gorm.DB, store ObjectStore, folderID uuid.UUID) error {
	var children []models.Folder
	if err := db.Where("parent_id = ?", folderID).Find(&children).Error; err != nil {
		return err
	}
	for _, child := range children {
		if err := deleteFolderRecursive(ctx, db, store, child.ID); err != nil {
			return err
		}
	}

	var files []models.File
	if err := db.Where("folder_id = ?", folderID).Find(&files).Error; err != nil {
		return err
	}
	for _, file := range files {
		if err := deleteFileRecord(ctx, db, store, &file); err != nil {
			return err
		}
	}

	return db.Delete(&models.Folder{}, "id = ?", folderID).Error
}

func deleteFileRecord(ctx context.Context, db *gorm.DB, store ObjectStore, file *models.File) error {
	if file.StoragePath != "" {
		if err := store.Delete(ctx, file.StoragePath); err != nil {
			return err
		}
	}
	if err := db.Where("file_id = ?", file.ID).Delete(&models.Share{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.File{}, "id = ?", file.ID).Error
}
