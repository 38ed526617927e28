package models

import "github.com/google/uuid"

type File struct {
	BaseModel
	Name        string    `json:"name" gorm:"type:varchar(255);not null;index"`
	Size        int64     `json:"size" gorm:"not null;default:0"`
	ContentType string    `json:"contentType" gorm:"type:varchar(255);not null"`
	FolderID    uuid.UUID `json:"folderID" gorm:"type:uuid;not null;index"`
	StoragePath string    `json:"-" gorm:"type:text;not null"`

	Folder Folder  `json:"-" gorm:"foreignKey:FolderID;references:ID"`
	Shares []Share `json:"-" gorm:"foreignKey:FileID"`
}

func (File) TableName() string {
	return "files"
}
