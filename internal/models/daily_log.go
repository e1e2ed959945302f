package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/snapcal/backend/internal/nutrition"
)

// DailyLog is one row per (user, calendar date). The consumed-* fields
// are derived by resumming child meals and are never set from request
// input; calories burned, water intake and notes are user-authored.
type DailyLog struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_log_date" json:"user_id"`
	LogDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_log_date" json:"log_date"`

	CaloriesConsumed int     `gorm:"not null;default:0" json:"calories_consumed"`
	ProteinConsumedG float64 `gorm:"not null;default:0" json:"protein_consumed_g"`
	CarbsConsumedG   float64 `gorm:"not null;default:0" json:"carbs_consumed_g"`
	FatsConsumedG    float64 `gorm:"not null;default:0" json:"fats_consumed_g"`

	CaloriesBurned    int      `gorm:"not null;default:0" json:"calories_burned"`
	WaterIntakeLiters *float64 `json:"water_intake_liters,omitempty"`
	Notes             *string  `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Meals []Meal `gorm:"foreignKey:DailyLogID" json:"meals,omitempty"`
}

func (DailyLog) TableName() string {
	return "user_daily_logs"
}

func (l *DailyLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Meal slots within a day.
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
)

// ValidMealType reports whether t names one of the three meal slots.
func ValidMealType(t string) bool {
	switch t {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner:
		return true
	}
	return false
}

// Meal is one slot (breakfast/lunch/dinner) of a daily log. Its totals
// are derived from the meal_dishes snapshots and survive as zeros when
// the last entry is removed.
type Meal struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DailyLogID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_log_meal_type" json:"daily_log_id"`
	MealType   string    `gorm:"size:20;not null;uniqueIndex:idx_log_meal_type" json:"meal_type"`

	TotalCalories int     `gorm:"not null;default:0" json:"total_calories"`
	TotalProteinG float64 `gorm:"not null;default:0" json:"total_protein_g"`
	TotalCarbsG   float64 `gorm:"not null;default:0" json:"total_carbs_g"`
	TotalFatsG    float64 `gorm:"not null;default:0" json:"total_fats_g"`

	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	Notes      *string    `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	MealDishes []MealDish `gorm:"foreignKey:MealID" json:"meal_dishes,omitempty"`
}

func (Meal) TableName() string {
	return "meals"
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MealDish is one logged instance of a dish within a meal. The
// *_at_time fields are a snapshot scaled at insert time; they are
// stored values, deliberately never recomputed from the dish row.
type MealDish struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MealID   uuid.UUID `gorm:"type:uuid;not null;index" json:"meal_id"`
	DishID   uuid.UUID `gorm:"type:uuid;not null" json:"dish_id"`
	Servings float64   `gorm:"not null;default:1" json:"servings"`

	CaloriesAtTime int     `gorm:"not null" json:"calories_at_time"`
	ProteinAtTimeG float64 `gorm:"not null" json:"protein_at_time_g"`
	CarbsAtTimeG   float64 `gorm:"not null" json:"carbs_at_time_g"`
	FatsAtTimeG    float64 `gorm:"not null" json:"fats_at_time_g"`

	CreatedAt time.Time `json:"created_at"`

	Dish Dish `gorm:"foreignKey:DishID" json:"dish,omitempty"`
}

func (MealDish) TableName() string {
	return "meal_dishes"
}

func (md *MealDish) BeforeCreate(tx *gorm.DB) error {
	if md.ID == uuid.Nil {
		md.ID = uuid.New()
	}
	return nil
}

// Snapshot returns the stored nutrition snapshot of the entry.
func (md *MealDish) Snapshot() nutrition.Value {
	return nutrition.Value{
		Calories: md.CaloriesAtTime,
		ProteinG: md.ProteinAtTimeG,
		CarbsG:   md.CarbsAtTimeG,
		FatsG:    md.FatsAtTimeG,
	}
}
