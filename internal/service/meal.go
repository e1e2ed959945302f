package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/snapcal/backend/internal/models"
	"github.com/snapcal/backend/internal/nutrition"
)

// MealService orchestrates logging dishes into meals and the cascading
// recomputation of meal and daily-log totals.
type MealService struct {
	db *gorm.DB
}

var _ IMealService = (*MealService)(nil)

// NewMealService creates a new MealService instance.
func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// findOrCreateMeal is the race-safe find-or-create on the unique
// (daily_log_id, meal_type) pair, mirroring findOrCreateDailyLog.
func findOrCreateMeal(tx *gorm.DB, logID uuid.UUID, mealType string, notes *string) (*models.Meal, error) {
	var meal models.Meal
	err := tx.Where("daily_log_id = ? AND meal_type = ?", logID, mealType).First(&meal).Error
	if err == nil {
		return &meal, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	meal = models.Meal{
		DailyLogID: logID,
		MealType:   mealType,
		ConsumedAt: &now,
		Notes:      notes,
	}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "daily_log_id"}, {Name: "meal_type"}},
		DoNothing: true,
	}).Create(&meal)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Where("daily_log_id = ? AND meal_type = ?", logID, mealType).First(&meal).Error; err != nil {
			return nil, err
		}
	}
	return &meal, nil
}

// recalculateMealTotals resums a meal's totals from its entries'
// stored snapshots. Sum never rounds, so the result is exact.
func recalculateMealTotals(tx *gorm.DB, mealID uuid.UUID) error {
	var entries []models.MealDish
	if err := tx.Where("meal_id = ?", mealID).Find(&entries).Error; err != nil {
		return err
	}

	values := make([]nutrition.Value, len(entries))
	for i := range entries {
		values[i] = entries[i].Snapshot()
	}
	total := nutrition.Sum(values...)

	return tx.Model(&models.Meal{}).Where("id = ?", mealID).Updates(map[string]interface{}{
		"total_calories":  total.Calories,
		"total_protein_g": total.ProteinG,
		"total_carbs_g":   total.CarbsG,
		"total_fats_g":    total.FatsG,
	}).Error
}

// AddDishToMeal logs a dish into the given meal slot on the given
// date, creating the daily log and meal lazily, snapshotting the
// dish's nutrition scaled by servings, and recomputing totals
// bottom-up. The whole sequence runs in one transaction so a failure
// anywhere leaves no partial snapshot behind.
func (s *MealService) AddDishToMeal(ctx context.Context, userID, dishID uuid.UUID, mealType string, date time.Time, servings float64, notes *string) (*models.MealDish, *models.Meal, error) {
	if servings <= 0 {
		return nil, nil, ErrInvalidServings
	}
	if !models.ValidMealType(mealType) {
		return nil, nil, ErrInvalidMealType
	}

	var (
		entry models.MealDish
		meal  *models.Meal
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		log, err := findOrCreateDailyLog(tx, userID, date)
		if err != nil {
			return err
		}

		meal, err = findOrCreateMeal(tx, log.ID, mealType, notes)
		if err != nil {
			return err
		}

		var dish models.Dish
		if err := tx.Where("id = ? AND is_active = ?", dishID, true).First(&dish).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDishNotFound
			}
			return err
		}

		snapshot := dish.Nutrition().Scale(servings)
		entry = models.MealDish{
			MealID:         meal.ID,
			DishID:         dish.ID,
			Servings:       servings,
			CaloriesAtTime: snapshot.Calories,
			ProteinAtTimeG: snapshot.ProteinG,
			CarbsAtTimeG:   snapshot.CarbsG,
			FatsAtTimeG:    snapshot.FatsG,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		if err := recalculateMealTotals(tx, meal.ID); err != nil {
			return err
		}
		if err := recalculateLogTotals(tx, log.ID); err != nil {
			return err
		}

		return tx.First(meal, "id = ?", meal.ID).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &entry, meal, nil
}

// RemoveDishFromMeal deletes one logged entry and recomputes the
// owning meal and daily-log totals. A meal left without entries keeps
// its row with all-zero totals. Entries belonging to other users are
// reported as not found.
func (s *MealService) RemoveDishFromMeal(ctx context.Context, userID, entryID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.MealDish
		err := tx.
			Joins("JOIN meals ON meals.id = meal_dishes.meal_id").
			Joins("JOIN user_daily_logs ON user_daily_logs.id = meals.daily_log_id").
			Where("meal_dishes.id = ? AND user_daily_logs.user_id = ?", entryID, userID).
			First(&entry).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMealEntryNotFound
			}
			return err
		}

		var meal models.Meal
		if err := tx.First(&meal, "id = ?", entry.MealID).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.MealDish{}, "id = ?", entry.ID).Error; err != nil {
			return err
		}

		if err := recalculateMealTotals(tx, meal.ID); err != nil {
			return err
		}
		return recalculateLogTotals(tx, meal.DailyLogID)
	})
}

// GetMeal returns a meal with its entries and resolved dish info.
// Meals owned by other users are indistinguishable from missing ones.
func (s *MealService) GetMeal(ctx context.Context, userID, mealID uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).
		Preload("MealDishes.Dish").
		Joins("JOIN user_daily_logs ON user_daily_logs.id = meals.daily_log_id").
		Where("meals.id = ? AND user_daily_logs.user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	return &meal, nil
}
