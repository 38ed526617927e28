package models

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Share grants credential-free download access to a single file. The token is
// generated once at creation and never reused across shares.
type Share struct {
	BaseModel
	FileID    uuid.UUID  `json:"fileID" gorm:"type:uuid;not null;index"`
	Token     string     `json:"token" gorm:"type:varchar(64);uniqueIndex;not null"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`

	File File `json:"-" gorm:"foreignKey:FileID;references:ID"`
}

func (Share) TableName() string {
	return "shares"
}

func (s *Share) BeforeCreate(tx *gorm.DB) error {
	if err := s.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if s.Token == "" {
		token, err := GenerateShareToken()
		if err != nil {
			return err
		}
		s.Token = token
	}
	return nil
}

// IsExpired reports whether the share can no longer authorize downloads.
// A nil ExpiresAt means the share never expires.
func (s *Share) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}

// GenerateShareToken returns 32 bytes of cryptographic randomness encoded as
// unpadded URL-safe base64 (43 characters).
func GenerateShareToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
