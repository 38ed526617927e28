package session

import (
	"fmt"
	"strings"

	"github.com/HolmesInc/data-storage/internal/cli/api"
)

// Content tree mutations. Each call validates its input locally, dispatches
// exactly one gateway request, then refreshes the view.

func (s *Session) CreateRoom(name, description string) (*api.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("room name is required")
	}

	room, err := s.gw.CreateRoom(name, strings.TrimSpace(description))
	if err != nil {
		return nil, s.wrap(err)
	}
	return room, nil
}

func (s *Session) RenameRoom(roomID, name string) (*api.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("room name is required")
	}

	room, err := s.gw.UpdateRoom(roomID, &name, nil)
	if err != nil {
		return nil, s.wrap(err)
	}
	if roomID == s.state.RoomID {
		s.state.RoomName = room.Name
	}
	return room, nil
}

// DeleteRoom removes a room and everything inside it. Deleting the active
// room resets the session to an empty selection.
func (s *Session) DeleteRoom(roomID string) error {
	if err := s.gw.DeleteRoom(roomID); err != nil {
		return s.wrap(err)
	}
	if roomID == s.state.RoomID {
		s.Reset()
	}
	return nil
}

// CreateFolder creates a folder at the current position: under the open
// folder, or at the room root.
func (s *Session) CreateFolder(name string) (*api.Folder, error) {
	if s.state.RoomID == "" {
		return nil, ErrNoRoom
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("folder name is required")
	}

	folder, err := s.gw.CreateFolder(name, s.state.RoomID, s.state.FolderID)
	if err != nil {
		return nil, s.wrap(err)
	}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *Session) RenameFolder(folderID, name string) (*api.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("folder name is required")
	}

	folder, err := s.gw.RenameFolder(folderID, name)
	if err != nil {
		return nil, s.wrap(err)
	}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return folder, nil
}

// DeleteFolder removes a folder subtree. Deleting the folder the session is
// currently inside moves the position back to the room root.
func (s *Session) DeleteFolder(folderID string) error {
	if err := s.gw.DeleteFolder(folderID); err != nil {
		return s.wrap(err)
	}

	for _, crumb := range s.state.Breadcrumb {
		if crumb.ID == folderID {
			s.state.Breadcrumb = nil
			s.state.FolderID = nil
			break
		}
	}
	return s.Refresh()
}

func (s *Session) RenameFile(fileID, name string) (*api.File, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("file name is required")
	}

	file, err := s.gw.RenameFile(fileID, name)
	if err != nil {
		return nil, s.wrap(err)
	}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return file, nil
}

func (s *Session) DeleteFile(fileID string) error {
	if err := s.gw.DeleteFile(fileID); err != nil {
		return s.wrap(err)
	}
	return s.Refresh()
}
