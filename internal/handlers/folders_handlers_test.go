package handlers

import (
	"net/http"
	"testing"

	"github.com/HolmesInc/data-storage/internal/models"
)

func TestCreateFolderAtRootAndNested(t *testing.T) {
	env := setupTestEnv(t)
	alice, token := createTestUser(t, env.db, "alice@example.com", "super-secret")
	room := createTestRoom(t, env.db, alice.ID, "Project Falcon")

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/v0/folders", map[string]string{
		"name":   "Financials",
		"roomID": room.ID.String(),
	}, authHeaders(token))
	assertStatus(t, resp, http.StatusCreated)
	parent := dataMap(t, decodeJSONMap(t, resp))
	if parent["parentID"] != nil {
		t.Fatalf("expected root folder, got parent %v", parent["parentID"])
	}

	resp = performJSONRequest(t, env.app, http.MethodPost, "/api/v0/folders", map[string]string{
		"name":     "2024",
		"roomID":   room.ID.String(),
		"parentID": parent["id"].(string),
	}, authHeaders(token))
	assertStatus(t, resp, http.StatusCreated)
	child := dataMap(t, decodeJSONMap(t, resp))
	if child["parentID"] != parent["id"] {
		t.Fatalf("expected nested folder under %v, got %v", parent["id"], child["parentID"])
	}
}

func TestCreateFolderRejectsCrossRoomParent(t *testing.T) {
	env := setupTestEnv(t)
	alice, token := createTestUser(t, env.db, "alice@example.com", "super-secret")
	roomA := createTestRoom(t, env.db, alice.ID, "Room A")
	roomB := createTestRoom(t, env.db, alice.ID, "Room B")
	parentInB := createTestFolder(t, env.db, roomB.ID, nil, "Elsewhere")

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/v0/folders", map[string]string{
		"name":     "Orphan",
		"roomID":   roomA.ID.String(),
		"parentID": parentInB.ID.String(),
	}, authHeaders(token))
	assertStatus(t, resp, http.StatusBadRequest)
	assertEnvelopeError(t, decodeJSONMap(t, resp), "parent folder belongs to another room")
}

func TestListFoldersRequiresRoomID(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "alice@example.com", "super-secret")

	resp := performRequest(t, env.app, http.MethodGet, "/api/v0/folders", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusBadRequest)
}

func TestGetFolderReturnsImmediateChildrenOnly(t *testing.T) {
	env := setupTestEnv(t)
	alice, token := createTestUser(t, env.db, "alice@example.com", "super-secret")
	room := createTestRoom(t, env.db, alice.ID, "Project Falcon")
	parent := createTestFolder(t, env.db, room.ID, nil, "Financials")
	child := createTestFolder(t, env.db, room.ID, &parent.ID, "2024")
	createTestFolder(t, env.db, room.ID, &child.ID, "Q1")
	createTestFile(t, env, parent.ID, "summary", "pdf-bytes")

	resp := performRequest(t, env.app, http.MethodGet, "/api/v0/folders/"+parent.ID.String(), nil, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)

	data := dataMap(t, decodeJSONMap(t, resp))
	folders, _ := data["folders"].([]any)
	if len(folders) != 1 {
		t.Fatalf("expected only immediate subfolder, got %+v", data["folders"])
	}
	files, _ := data["files"].([]any)
	if len(files) != 1 {
		t.Fatalf("expected 1 file in folder, got %+v", data["files"])
	}
}

func TestRenameFolder(t *testing.T) {
	env := setupTestEnv(t)
	alice, token := createTestUser(t, env.db, "alice@example.com", "super-secret")
	room := createTestRoom(t, env.db, alice.ID, "Project Falcon")
	folder := createTestFolder(t, env.db, room.ID, nil, "Old")

	resp := performJSONRequest(t, env.app, http.MethodPatch, "/api/v0/folders/"+folder.ID.String(), map[string]string{
		"name": "New",
	}, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)

	var reloaded models.Folder
	if err := env.db.First(&reloaded, "id = ?", folder.ID).Error; err != nil {
		t.Fatalf("reload folder: %v", err)
	}
	if reloaded.Name != "New" {
		t.Fatalf("expected renamed folder, got %q", reloaded.Name)
	}
}

func TestDeleteFolderRemovesDescendants(t *testing.T) {
	env := setupTestEnv(t)
	alice, token := createTestUser(t, env.db, "alice@example.com", "super-secret")
	room := createTestRoom(t, env.db, alice.ID, "Project Falcon")
	keep := createTestFolder(t, env.db, room.ID, nil, "Keep")
	doomed := createTestFolder(t, env.db, room.ID, nil, "Doomed")
	child := createTestFolder(t, env.db, room.ID, &doomed.ID, "Inner")
	createTestFile(t, env, child.ID, "buried", "pdf-bytes")
	survivor := createTestFile(t, env, keep.ID, "survivor", "pdf-bytes")

	resp := performRequest(t, env.app, http.MethodDelete, "/api/v0/folders/"+doomed.ID.String(), nil, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)

	var folderCount, fileCount int64
	env.db.Model(&models.Folder{}).Count(&folderCount)
	env.db.Model(&models.File{}).Count(&fileCount)
	if folderCount != 1 || fileCount != 1 {
		t.Fatalf("expected only surviving folder and file, got %d folders %d files", folderCount, fileCount)
	}
	if env.store.count() != 1 {
		t.Fatalf("expected 1 stored object left, got %d", env.store.count())
	}

	var reloaded models.File
	if err := env.db.First(&reloaded, "id = ?", survivor.ID).Error; err != nil {
		t.Fatalf("survivor file should remain: %v", err)
	}
}

func TestFolderAccessForbiddenForNonOwner(t *testing.T) {
	env := setupTestEnv(t)
	alice, _ := createTestUser(t, env.db, "alice@example.com", "super-secret")
	_, tokenB := createTestUser(t, env.db, "bob@example.com", "super-secret")
	room := createTestRoom(t, env.db, alice.ID, "Alice Room")
	folder := createTestFolder(t, env.db, room.ID, nil, "Private")

	resp := performRequest(t, env.app, http.MethodGet, "/api/v0/folders/"+folder.ID.String(), nil, authHeaders(tokenB))
	assertStatus(t, resp, http.StatusForbidden)
}
