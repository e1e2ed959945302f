package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DietTag is a catalog entry like "vegan" or "keto", selectable by
// users and attachable to dishes.
type DietTag struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (DietTag) TableName() string {
	return "diet_tags"
}

func (t *DietTag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
