package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/HolmesInc/data-storage/internal/cli/api"
)

var (
	// ErrSessionExpired signals a 401 from the server: the stored credential
	// is dead and the caller should drop it along with any navigation state.
	ErrSessionExpired = errors.New("session expired, please log in again")

	// ErrNoRoom is returned by operations that need an active room.
	ErrNoRoom = errors.New("no room selected")

	// ErrNoFolder is returned by operations that need an open folder.
	ErrNoFolder = errors.New("no folder open")
)

// Gateway is the slice of the API client the session needs. *api.Client
// satisfies it; tests substitute a fake.
type Gateway interface {
	GetRoom(roomID string) (*api.RoomDetail, error)
	CreateRoom(name, description string) (*api.Room, error)
	UpdateRoom(roomID string, name, description *string) (*api.Room, error)
	DeleteRoom(roomID string) error

	GetFolder(folderID string) (*api.FolderDetail, error)
	CreateFolder(name, roomID string, parentID *string) (*api.Folder, error)
	RenameFolder(folderID, name string) (*api.Folder, error)
	DeleteFolder(folderID string) error

	UploadFile(localPath, folderID, name string) (*api.File, error)
	RenameFile(fileID, name string) (*api.File, error)
	DeleteFile(fileID string) error

	CreateShare(fileID string, expiresAt *time.Time) (*api.Share, error)
	ListShares(fileID string) ([]api.Share, error)
	DeleteShare(shareID string) error
	ShareDownloadURL(token string) string
	DownloadToFile(rawURL, dest string) error
}

// Crumb is one ancestor folder on the breadcrumb trail.
type Crumb struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NavigationState is the persisted position inside the content tree.
// Invariants: FolderID nil exactly when Breadcrumb is empty; otherwise the
// last crumb's ID equals *FolderID. RoomID empty means nothing is selected.
type NavigationState struct {
	RoomID     string  `json:"room_id,omitempty"`
	RoomName   string  `json:"room_name,omitempty"`
	FolderID   *string `json:"folder_id,omitempty"`
	Breadcrumb []Crumb `json:"breadcrumb,omitempty"`
}

// AtRoot reports whether the position is the room's root level.
func (s NavigationState) AtRoot() bool {
	return s.FolderID == nil
}

// View is the rendered content of the current position: subfolders first,
// then files, both in repository order.
type View struct {
	Room    *api.Room
	Folder  *api.Folder
	Folders []api.Folder
	Files   []api.File
}

// Session threads the navigation state machine through every client
// operation. It is not safe for concurrent use.
type Session struct {
	gw    Gateway
	state NavigationState
	view  View
}

func New(gw Gateway, state NavigationState) *Session {
	return &Session{gw: gw, state: state}
}

// State returns the current navigation state for persistence.
func (s *Session) State() NavigationState {
	return s.state
}

// ActiveRoom returns the selected room ID, empty if none.
func (s *Session) ActiveRoom() string {
	return s.state.RoomID
}

// View returns the last rendered view. Call Refresh (or a navigation method)
// first.
func (s *Session) View() View {
	return s.view
}

// SelectRoom makes roomID the active room and positions at its root.
func (s *Session) SelectRoom(roomID string) error {
	detail, err := s.gw.GetRoom(roomID)
	if err != nil {
		return s.wrap(err)
	}

	s.state = NavigationState{RoomID: detail.Room.ID, RoomName: detail.Room.Name}
	s.view = View{
		Room:    &detail.Room,
		Folders: rootFolders(detail.Folders),
		Files:   detail.Files,
	}
	return nil
}

// EnterFolder descends into a folder of the current view, extending the
// breadcrumb trail.
func (s *Session) EnterFolder(folderID string) error {
	if s.state.RoomID == "" {
		return ErrNoRoom
	}

	detail, err := s.gw.GetFolder(folderID)
	if err != nil {
		return s.wrap(err)
	}
	if detail.Folder.RoomID != s.state.RoomID {
		return fmt.Errorf("folder belongs to another room")
	}

	s.state.FolderID = &detail.Folder.ID
	s.state.Breadcrumb = append(s.state.Breadcrumb, Crumb{ID: detail.Folder.ID, Name: detail.Folder.Name})
	s.view = View{
		Room:    s.view.Room,
		Folder:  &detail.Folder,
		Folders: detail.Folders,
		Files:   detail.Files,
	}
	return nil
}

// GoBack moves one level up. At the room root it re-fetches the room so the
// view is never stale.
func (s *Session) GoBack() error {
	if s.state.RoomID == "" {
		return ErrNoRoom
	}
	if len(s.state.Breadcrumb) == 0 {
		return s.Refresh()
	}

	s.state.Breadcrumb = s.state.Breadcrumb[:len(s.state.Breadcrumb)-1]
	if len(s.state.Breadcrumb) == 0 {
		s.state.FolderID = nil
	} else {
		last := s.state.Breadcrumb[len(s.state.Breadcrumb)-1]
		s.state.FolderID = &last.ID
	}
	return s.Refresh()
}

// JumpToBreadcrumb truncates the trail to the given index (0-based) and
// repositions there. Index -1 jumps to the room root.
func (s *Session) JumpToBreadcrumb(index int) error {
	if s.state.RoomID == "" {
		return ErrNoRoom
	}
	if index < -1 || index >= len(s.state.Breadcrumb) {
		return fmt.Errorf("breadcrumb index %d out of range", index)
	}

	if index < 0 {
		s.state.Breadcrumb = nil
		s.state.FolderID = nil
	} else {
		s.state.Breadcrumb = s.state.Breadcrumb[:index+1]
		s.state.FolderID = &s.state.Breadcrumb[index].ID
	}
	return s.Refresh()
}

// Breadcrumb returns a copy of the current trail.
func (s *Session) Breadcrumb() []Crumb {
	out := make([]Crumb, len(s.state.Breadcrumb))
	copy(out, s.state.Breadcrumb)
	return out
}

// Refresh re-fetches the current position and rebuilds the view. Every
// mutation funnels through here so the view never goes stale.
func (s *Session) Refresh() error {
	if s.state.RoomID == "" {
		s.view = View{}
		return nil
	}

	if s.state.FolderID == nil {
		detail, err := s.gw.GetRoom(s.state.RoomID)
		if err != nil {
			return s.wrap(err)
		}
		s.state.RoomName = detail.Room.Name
		s.view = View{
			Room:    &detail.Room,
			Folders: rootFolders(detail.Folders),
			Files:   detail.Files,
		}
		return nil
	}

	detail, err := s.gw.GetFolder(*s.state.FolderID)
	if err != nil {
		return s.wrap(err)
	}
	// Keep the crumb name current in case the folder was renamed.
	if n := len(s.state.Breadcrumb); n > 0 {
		s.state.Breadcrumb[n-1].Name = detail.Folder.Name
	}
	s.view = View{
		Room:    s.view.Room,
		Folder:  &detail.Folder,
		Folders: detail.Folders,
		Files:   detail.Files,
	}
	return nil
}

// Reset clears the selection entirely.
func (s *Session) Reset() {
	s.state = NavigationState{}
	s.view = View{}
}

// wrap maps gateway errors into session-level errors. Only 401 is
// translated; everything else surfaces as-is.
func (s *Session) wrap(err error) error {
	if api.IsUnauthorized(err) {
		return ErrSessionExpired
	}
	return err
}

// rootFolders filters a room's flat folder list down to the top level.
func rootFolders(folders []api.Folder) []api.Folder {
	out := make([]api.Folder, 0, len(folders))
	for _, f := range folders {
		if f.ParentID == nil {
			out = append(out, f)
		}
	}
	return out
}
