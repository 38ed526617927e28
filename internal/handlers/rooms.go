package handlers

import (
	"strings"

	"github.com/HolmesInc/data-storage/internal/middleware"
	"github.com/HolmesInc/data-storage/internal/models"
	"github.com/HolmesInc/data-storage/internal/services"
	"github.com/HolmesInc/data-storage/pkg/logger"
	"github.com/HolmesInc/data-storage/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RoomsHandler struct {
	DB      *gorm.DB
	Storage ObjectStore
	Audit   *services.AuditService
}

func NewRoomsHandler(db *gorm.DB, store ObjectStore, audit *services.AuditService) *RoomsHandler {
	return &RoomsHandler{DB: db, Storage: store, Audit: audit}
}

func (h *RoomsHandler) List(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var rooms []models.Room
	if err := h.DB.Where("owner_id = ?", currentUser.ID).Order("created_at ASC").Find(&rooms).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing rooms")
	}

	return utils.Success(c, fiber.StatusOK, rooms)
}

type createRoomRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *RoomsHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req createRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "name is required")
	}

	room := models.Room{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		OwnerID:     currentUser.ID,
	}
	if err := h.DB.Create(&room).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed creating room")
	}

	logger.InfoWithUser(currentUser.ID.String(), "room_created", map[string]interface{}{
		"room_id":   room.ID.String(),
		"room_name": room.Name,
	})

	h.Audit.LogAsync(services.AuditEntry{
		UserID:       &currentUser.ID,
		Action:       "room.create",
		ResourceType: "room",
		ResourceID:   &room.ID,
		Details:      map[string]interface{}{"room_name": room.Name},
		IPAddress:    c.IP(),
		RequestID:    getRequestID(c),
	})

	return utils.Success(c, fiber.StatusCreated, room)
}

// Get returns the room together with every folder it contains (a flat list,
// each folder carrying its ParentID so clients can rebuild the tree). Files
// never live at room level, so the files slice is always empty here.
func (h *RoomsHandler) Get(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	room, err := h.loadOwnedRoom(c, currentUser)
	if room == nil {
		return err
	}

	var folders []models.Folder
	if err := h.DB.Where("room_id = ?", room.ID).Order("created_at ASC").Find(&folders).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing folders")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"room":    room,
		"folders": folders,
		"files":   []models.File{},
	})
}

type updateRoomRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *RoomsHandler) Update(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	room, err := h.loadOwnedRoom(c, currentUser)
	if room == nil {
		return err
	}

	var req updateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return utils.Error(c, fiber.StatusBadRequest, "name cannot be empty")
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if len(updates) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "no valid fields to update")
	}

	if err := h.DB.Model(&models.Room{}).Where("id = ?", room.ID).Updates(updates).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed updating room")
	}

	var updated models.Room
	if err := h.DB.First(&updated, "id = ?", room.ID).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading updated room")
	}

	h.Audit.LogAsync(services.AuditEntry{
		UserID:       &currentUser.ID,
		Action:       "room.update",
		ResourceType: "room",
		ResourceID:   &room.ID,
		Details: map[string]interface{}{
			"room_name": updated.Name,
			"changes":   updates,
		},
		IPAddress: c.IP(),
		RequestID: getRequestID(c),
	})

	return utils.Success(c, fiber.StatusOK, updated)
}

func (h *RoomsHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	room, errResp := h.loadOwnedRoom(c, currentUser)
	if room == nil {
		return errResp
	}

	var rootFolders []models.Folder
	if err := h.DB.Where("room_id = ? AND parent_id IS NULL", room.ID).Find(&rootFolders).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading folders")
	}
	for _, folder := range rootFolders {
		if err := deleteFolderRecursive(c.Context(), h.DB, h.Storage, folder.ID); err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "failed deleting room contents")
		}
	}

	if err := h.DB.Delete(&models.Room{}, "id = ?", room.ID).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed deleting room")
	}

	logger.InfoWithUser(currentUser.ID.String(), "room_deleted", map[string]interface{}{
		"room_id":   room.ID.String(),
		"room_name": room.Name,
	})

	h.Audit.LogAsync(services.AuditEntry{
		UserID:       &currentUser.ID,
		Action:       "room.delete",
		ResourceType: "room",
		ResourceID:   &room.ID,
		Details:      map[string]interface{}{"room_name": room.Name},
		IPAddress:    c.IP(),
		RequestID:    getRequestID(c),
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "room deleted"})
}

// loadOwnedRoom resolves :id and enforces ownership. On failure the room is
// nil and the returned error is the already-written response.
func (h *RoomsHandler) loadOwnedRoom(c *fiber.Ctx, currentUser *models.User) (*models.Room, error) {
	roomID, err := parseUUID(c.Params("id"))
	if err != nil {
		return nil, utils.Error(c, fiber.StatusBadRequest, "invalid room id")
	}

	var room models.Room
	if err := h.DB.First(&room, "id = ?", roomID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.Error(c, fiber.StatusNotFound, "room not found")
		}
		return nil, utils.Error(c, fiber.StatusInternalServerError, "failed loading room")
	}
	if room.OwnerID != currentUser.ID {
		return nil, utils.Error(c, fiber.StatusForbidden, "access denied")
	}
	return &room, nil
}
