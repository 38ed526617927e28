package api

import "time"

// User mirrors the server User model.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

// Room mirrors the server Room model.
type Room struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"ownerID"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Folder mirrors the server Folder model. ParentID is nil for root-level
// folders.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RoomID    string    `json:"roomID"`
	ParentID  *string   `json:"parentID,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// File mirrors the server File model.
type File struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	FolderID    string    `json:"folderID"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Share mirrors the server Share model. A nil ExpiresAt means the link never
// expires.
type Share struct {
	ID        string     `json:"id"`
	FileID    string     `json:"fileID"`
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// LoginResponse is returned by POST /auth/login and /auth/register.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RoomDetail is returned by GET /rooms/:id: the room plus every folder in it
// (flat, parent links intact). Files is always empty at room level.
type RoomDetail struct {
	Room    Room     `json:"room"`
	Folders []Folder `json:"folders"`
	Files   []File   `json:"files"`
}

// FolderDetail is returned by GET /folders/:id: the folder plus its immediate
// subfolders and files.
type FolderDetail struct {
	Folder  Folder   `json:"folder"`
	Folders []Folder `json:"folders"`
	Files   []File   `json:"files"`
}
