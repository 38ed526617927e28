package models

type User struct {
	BaseModel
	Email        string `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"type:text;not null"`
	FirstName    string `json:"firstName" gorm:"type:varchar(100);not null"`
	LastName     string `json:"lastName" gorm:"type:varchar(100);not null"`

	Rooms []Room `json:"-" gorm:"foreignKey:OwnerID"`
}

func (User) TableName() string {
	return "users"
}
