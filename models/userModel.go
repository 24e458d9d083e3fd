package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a staff account. It owns menu items and, transitively, every order
// that contains one of them.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null;type:varchar(50)" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null;type:varchar(100)" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	Token        *string   `json:"-"`
	RefreshToken *string   `json:"-"`
	Items        []Item    `gorm:"foreignKey:UserID" json:"-"`
	Orders       []Order   `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile extends a User with display data. One row per user; created
// explicitly at signup rather than by an implicit hook.
type Profile struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	User     *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Image    string `gorm:"type:varchar(255);default:'profilepic.jpg'" json:"image"`
	Location string `gorm:"type:varchar(100)" json:"location"`
}

// GetOrCreateProfile returns the user's profile, creating a default one for
// accounts that predate the profile table.
func GetOrCreateProfile(db *gorm.DB, userID uint) (*Profile, error) {
	var profile Profile
	err := db.Where(Profile{UserID: userID}).
		Attrs(Profile{Image: "profilepic.jpg"}).
		FirstOrCreate(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
