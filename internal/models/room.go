package models

import "github.com/google/uuid"

// Room is the top-level container for a tree of folders and files.
type Room struct {
	BaseModel
	Name        string    `json:"name" gorm:"type:varchar(255);not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	OwnerID     uuid.UUID `json:"ownerID" gorm:"type:uuid;not null;index"`

	Owner   User     `json:"-" gorm:"foreignKey:OwnerID;references:ID"`
	Folders []Folder `json:"folders,omitempty" gorm:"foreignKey:RoomID"`
}

func (Room) TableName() string {
	return "rooms"
}
