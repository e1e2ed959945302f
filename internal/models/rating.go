package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DishRating is one user's rating of one dish; the (user, dish) pair
// is unique so a second rating is a conflict, not an overwrite.
type DishRating struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_dish_rating" json:"user_id"`
	DishID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_dish_rating" json:"dish_id"`
	Rating  int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment *string   `gorm:"type:text" json:"comment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DishRating) TableName() string {
	return "dish_ratings"
}

func (r *DishRating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
