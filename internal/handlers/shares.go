package handlers

import (
	"strings"
	"time"

	"github.com/HolmesInc/data-storage/internal/middleware"
	"github.com/HolmesInc/data-storage/internal/models"
	"github.com/HolmesInc/data-storage/internal/services"
	"github.com/HolmesInc/data-storage/pkg/logger"
	"github.com/HolmesInc/data-storage/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SharesHandler struct {
	DB    *gorm.DB
	Audit *services.AuditService
}

func NewSharesHandler(db *gorm.DB, audit *services.AuditService) *SharesHandler {
	return &SharesHandler{DB: db, Audit: audit}
}

type createShareRequest struct {
	ExpiresAt *string `json:"expiresAt"`
}

// Create mints a new share link for a file. Each call produces a distinct
// token; existing shares for the same file are untouched.
func (h *SharesHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	fileID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	file, errResp := loadOwnedFileByID(c, h.DB, currentUser, fileID)
	if file == nil {
		return errResp
	}

	var req createShareRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil && strings.TrimSpace(*req.ExpiresAt) != "" {
		parsed, parseErr := time.Parse(time.RFC3339, strings.TrimSpace(*req.ExpiresAt))
		if parseErr != nil {
			return utils.Error(c, fiber.StatusBadRequest, "expiresAt must be RFC3339")
		}
		if !parsed.After(time.Now().UTC()) {
			return utils.Error(c, fiber.StatusBadRequest, "expiresAt must be in the future")
		}
		expiresAt = &parsed
	}

	share := models.Share{
		FileID:    file.ID,
		ExpiresAt: expiresAt,
	}
	if err := h.DB.Create(&share).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed creating share")
	}

	logger.InfoWithUser(currentUser.ID.String(), "share_created", map[string]interface{}{
		"share_id":   share.ID.String(),
		"file_id":    file.ID.String(),
		"file_name":  file.Name,
		"expires_at": share.ExpiresAt,
	})

	h.Audit.LogAsync(services.AuditEntry{
		UserID:       &currentUser.ID,
		Action:       "share.create",
		ResourceType: "share",
		ResourceID:   &share.ID,
		Details: map[string]interface{}{
			"file_id":   file.ID.String(),
			"file_name": file.Name,
		},
		IPAddress: c.IP(),
		RequestID: getRequestID(c),
	})

	return utils.Success(c, fiber.StatusCreated, share)
}

func (h *SharesHandler) ListForFile(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	fileID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	file, errResp := loadOwnedFileByID(c, h.DB, currentUser, fileID)
	if file == nil {
		return errResp
	}

	var shares []models.Share
	if err := h.DB.Where("file_id = ?", file.ID).Order("created_at ASC").Find(&shares).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing shares")
	}

	return utils.Success(c, fiber.StatusOK, shares)
}

// Delete revokes a share. The token stops working immediately; other shares
// on the same file keep working.
func (h *SharesHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	shareID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid share id")
	}

	var share models.Share
	if err := h.DB.First(&share, "id = ?", shareID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "share not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading share")
	}

	file, errResp := loadOwnedFileByID(c, h.DB, currentUser, share.FileID)
	if file == nil {
		return errResp
	}

	if err := h.DB.Delete(&models.Share{}, "id = ?", share.ID).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed deleting share")
	}

	logger.InfoWithUser(currentUser.ID.String(), "share_revoked", map[string]interface{}{
		"share_id": share.ID.String(),
		"file_id":  share.FileID.String(),
	})

	h.Audit.LogAsync(services.AuditEntry{
		UserID:       &currentUser.ID,
		Action:       "share.revoke",
		ResourceType: "share",
		ResourceID:   &share.ID,
		Details: map[string]interface{}{
			"file_id":   share.FileID.String(),
			"file_name": file.Name,
		},
		IPAddress: c.IP(),
		RequestID: getRequestID(c),
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "share revoked"})
}
