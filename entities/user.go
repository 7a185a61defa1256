package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"not null" json:"-"`
	ProfileImage   string    `gorm:"not null" json:"profile_image"`

	Recipes      []*Recipe     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	LikedRecipes []*RecipeLike `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}
