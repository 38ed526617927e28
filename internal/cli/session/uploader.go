package session

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/HolmesInc/data-storage/internal/cli/api"
)

// UploadResult is the outcome of one file in a batch. Exactly one of File and
// Err is set.
type UploadResult struct {
	Path string
	Name string
	File *api.File
	Err  error
}

// UploadFiles sends a batch of local files to the currently open folder.
// Each file is validated and dispatched independently: one rejection or
// failed request never aborts the rest. The view is refreshed once, after
// the whole batch.
func (s *Session) UploadFiles(paths []string) ([]UploadResult, error) {
	if s.state.RoomID == "" {
		return nil, ErrNoRoom
	}
	if s.state.FolderID == nil {
		return nil, ErrNoFolder
	}

	results := make([]UploadResult, 0, len(paths))
	for _, path := range paths {
		name := displayName(path)
		result := UploadResult{Path: path, Name: name}

		if !strings.EqualFold(filepath.Ext(path), ".pdf") {
			result.Err = fmt.Errorf("only .pdf files are accepted")
			results = append(results, result)
			continue
		}

		file, err := s.gw.UploadFile(path, *s.state.FolderID, name)
		if err != nil {
			if api.IsUnauthorized(err) {
				return nil, ErrSessionExpired
			}
			result.Err = err
		} else {
			result.File = file
		}
		results = append(results, result)
	}

	if err := s.Refresh(); err != nil {
		return results, err
	}
	return results, nil
}

// displayName is the file's base name without its extension.
func displayName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
