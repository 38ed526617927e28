package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/HolmesInc/data-storage/internal/cli/session"
)

// pointing the user config dir at a temp dir keeps tests off the real config
func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "darwin" {
		t.Setenv("HOME", dir)
		return filepath.Join(dir, "Library", "Application Support", dirName, fileName)
	}
	t.Setenv("XDG_CONFIG_HOME", dir)
	return filepath.Join(dir, dirName, fileName)
}

func TestLoadReturnsDefaultsWhenMissing(t *testing.T) {
	useTempConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.ServerURL != DefaultURL {
		t.Errorf("expected default server URL, got %q", cfg.ServerURL)
	}
	if cfg.HasToken() {
		t.Error("fresh config must not have a token")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	useTempConfigDir(t)

	folderID := "f1"
	saved := &Config{
		ServerURL: "http://dataroom.internal:8080",
		Token:     "jwt-token",
		Nav: session.NavigationState{
			RoomID:   "r1",
			RoomName: "Project Falcon",
			FolderID: &folderID,
			Breadcrumb: []session.Crumb{
				{ID: "f1", Name: "Financials"},
			},
		},
	}
	if err := Save(saved); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if loaded.ServerURL != saved.ServerURL || loaded.Token != saved.Token {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
	if loaded.Nav.RoomID != "r1" || loaded.Nav.FolderID == nil || *loaded.Nav.FolderID != "f1" {
		t.Errorf("navigation state lost in round trip: %+v", loaded.Nav)
	}
	if len(loaded.Nav.Breadcrumb) != 1 || loaded.Nav.Breadcrumb[0].Name != "Financials" {
		t.Errorf("breadcrumb lost in round trip: %+v", loaded.Nav.Breadcrumb)
	}
}

func TestSaveUsesRestrictivePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	path := useTempConfigDir(t)

	if err := Save(&Config{ServerURL: DefaultURL, Token: "secret"}); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat config file: %v", err)
	}
	if perms := info.Mode().Perm(); perms != filePerms {
		t.Errorf("expected mode %o, got %o", filePerms, perms)
	}
}

func TestClearRemovesFile(t *testing.T) {
	path := useTempConfigDir(t)

	if err := Save(&Config{ServerURL: DefaultURL, Token: "secret"}); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}
	if err := Clear(); err != nil {
		t.Fatalf("Clear() returned error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected config file removed, stat err = %v", err)
	}

	// clearing again is a no-op
	if err := Clear(); err != nil {
		t.Fatalf("Clear() on missing file returned error: %v", err)
	}
}

func TestClearSessionKeepsServerURL(t *testing.T) {
	folderID := "f1"
	cfg := &Config{
		ServerURL: "http://dataroom.internal:8080",
		Token:     "jwt-token",
		Nav: session.NavigationState{
			RoomID:     "r1",
			RoomName:   "Project Falcon",
			FolderID:   &folderID,
			Breadcrumb: []session.Crumb{{ID: "f1", Name: "Financials"}},
		},
	}

	cfg.ClearSession()

	if cfg.ServerURL != "http://dataroom.internal:8080" {
		t.Errorf("server URL must survive session clear, got %q", cfg.ServerURL)
	}
	if cfg.HasToken() {
		t.Error("token must be cleared")
	}
	if cfg.Nav.RoomID != "" || cfg.Nav.FolderID != nil || len(cfg.Nav.Breadcrumb) != 0 {
		t.Errorf("navigation state must be cleared, got %+v", cfg.Nav)
	}
}
