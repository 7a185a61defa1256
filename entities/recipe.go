package entities

import (
	"github.com/google/uuid"
	"time"
)

type Recipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title        string    `gorm:"type:varchar(40);not null;index" json:"title"`
	Description  string    `gorm:"type:varchar(140)" json:"description"`
	Ingredients  string    `gorm:"type:varchar(50);not null" json:"ingredients"`
	Instructions string    `gorm:"type:text" json:"instructions"`
	// Category is checked against domain.RecipeCategories on creation only.
	Category *string `gorm:"type:varchar(50)" json:"category"`
	// Likes mirrors the number of RecipeLike rows; only pkg/like writes it.
	Likes int `gorm:"not null;default:0;check:chk_recipes_likes_non_negative,likes >= 0" json:"likes"`

	User    *User          `gorm:"foreignKey:UserID" json:"-"`
	Images  []*RecipeImage `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	LikedBy []*RecipeLike  `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

type RecipeImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	CreatedAt time.Time `gorm:"type:timestamp with time zone" json:"created_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"-"`
}

// RecipeLike is the user/recipe like relation; the composite key makes a pair unique.
type RecipeLike struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp with time zone" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"-"`
}
