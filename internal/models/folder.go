package models

import "github.com/google/uuid"

// Folder is a node in a room-scoped containment tree. ParentID nil means
// the folder sits at room root.
type Folder struct {
	BaseModel
	Name     string     `json:"name" gorm:"type:varchar(255);not null;index"`
	RoomID   uuid.UUID  `json:"roomID" gorm:"type:uuid;not null;index"`
	ParentID *uuid.UUID `json:"parentID,omitempty" gorm:"type:uuid;index"`

	Room       Room     `json:"-" gorm:"foreignKey:RoomID;references:ID"`
	Parent     *Folder  `json:"-" gorm:"foreignKey:ParentID"`
	Subfolders []Folder `json:"subfolders,omitempty" gorm:"foreignKey:ParentID"`
	Files      []File   `json:"files,omitempty" gorm:"foreignKey:FolderID"`
}

func (Folder) TableName() string {
	return "folders"
}
