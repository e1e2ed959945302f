package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/snapcal/backend/internal/nutrition"
)

// Dish is a catalog row with canonical per-serving nutrition. The
// aggregation pipeline reads it but never mutates it; deletion is a
// soft deactivate so logged history keeps resolving.
type Dish struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string     `gorm:"size:255;not null" json:"name"`
	Description     *string    `gorm:"type:text" json:"description,omitempty"`
	ImageURL        *string    `gorm:"size:500" json:"image_url,omitempty"`
	PrepTimeMinutes *int       `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes *int       `json:"cook_time_minutes,omitempty"`
	Servings        int        `gorm:"not null;default:1" json:"servings"`

	// Nutrition per serving.
	Calories int     `gorm:"not null" json:"calories"`
	ProteinG float64 `gorm:"not null" json:"protein_g"`
	CarbsG   float64 `gorm:"not null" json:"carbs_g"`
	FatsG    float64 `gorm:"not null" json:"fats_g"`
	FiberG   *float64 `json:"fiber_g,omitempty"`
	SugarG   *float64 `json:"sugar_g,omitempty"`
	SodiumMg *float64 `json:"sodium_mg,omitempty"`

	IsPublic  bool       `gorm:"not null;default:true" json:"is_public"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`

	AverageRating float64 `gorm:"not null;default:0" json:"average_rating"`
	RatingCount   int     `gorm:"not null;default:0" json:"rating_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Categories []DishCategory `gorm:"many2many:dish_category_mapping" json:"categories,omitempty"`
	DietTags   []DietTag      `gorm:"many2many:dish_diet_tags" json:"diet_tags,omitempty"`
}

func (Dish) TableName() string {
	return "dishes"
}

func (d *Dish) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Nutrition returns the canonical per-serving nutrition value.
func (d *Dish) Nutrition() nutrition.Value {
	return nutrition.Value{
		Calories: d.Calories,
		ProteinG: d.ProteinG,
		CarbsG:   d.CarbsG,
		FatsG:    d.FatsG,
	}
}

// DishCategory groups dishes for browsing.
type DishCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (DishCategory) TableName() string {
	return "dish_categories"
}

func (c *DishCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
