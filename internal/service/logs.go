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
	"github.com/snapcal/backend/internal/types"
)

// LogService handles daily-log operations.
type LogService struct {
	db *gorm.DB
}

var _ ILogService = (*LogService)(nil)

// NewLogService creates a new LogService instance.
func NewLogService(db *gorm.DB) *LogService {
	return &LogService{db: db}
}

// ParseLogDate parses a YYYY-MM-DD request value into the normalized
// midnight-UTC form stored in log_date.
func ParseLogDate(value string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d.UTC(), nil
}

// findOrCreateDailyLog is the race-safe find-or-create on the unique
// (user_id, log_date) pair. The insert skips on conflict instead of
// erroring, so a lost race never aborts the enclosing transaction
// (postgres poisons it on a constraint violation); the loser re-fetches
// the row the concurrent writer won with.
func findOrCreateDailyLog(tx *gorm.DB, userID uuid.UUID, date time.Time) (*models.DailyLog, error) {
	var log models.DailyLog
	err := tx.Where("user_id = ? AND log_date = ?", userID, date).First(&log).Error
	if err == nil {
		return &log, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	log = models.DailyLog{UserID: userID, LogDate: date}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "log_date"}},
		DoNothing: true,
	}).Create(&log)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Where("user_id = ? AND log_date = ?", userID, date).First(&log).Error; err != nil {
			return nil, err
		}
	}
	return &log, nil
}

// recalculateLogTotals resums the consumed-* fields from the log's
// meals. Always a full resummation, never a delta, so redundant calls
// are harmless and drift cannot accumulate.
func recalculateLogTotals(tx *gorm.DB, logID uuid.UUID) error {
	var meals []models.Meal
	if err := tx.Where("daily_log_id = ?", logID).Find(&meals).Error; err != nil {
		return err
	}

	values := make([]nutrition.Value, len(meals))
	for i, m := range meals {
		values[i] = nutrition.Value{
			Calories: m.TotalCalories,
			ProteinG: m.TotalProteinG,
			CarbsG:   m.TotalCarbsG,
			FatsG:    m.TotalFatsG,
		}
	}
	total := nutrition.Sum(values...)

	return tx.Model(&models.DailyLog{}).Where("id = ?", logID).Updates(map[string]interface{}{
		"calories_consumed":  total.Calories,
		"protein_consumed_g": total.ProteinG,
		"carbs_consumed_g":   total.CarbsG,
		"fats_consumed_g":    total.FatsG,
	}).Error
}

// FindOrCreateDailyLog returns the log for (user, date), creating it
// lazily on first use. Idempotent per key.
func (s *LogService) FindOrCreateDailyLog(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DailyLog, error) {
	return findOrCreateDailyLog(s.db.WithContext(ctx), userID, date)
}

// RecalculateLogTotals resums a log's consumed totals from its meals.
// Safe to call redundantly at any time.
func (s *LogService) RecalculateLogTotals(ctx context.Context, logID uuid.UUID) error {
	return recalculateLogTotals(s.db.WithContext(ctx), logID)
}

// GetDailyLog returns the log for (user, date) with meals, entries and
// dish info resolved, or ErrLogNotFound when nothing was logged.
func (s *LogService) GetDailyLog(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DailyLog, error) {
	var log models.DailyLog
	err := s.db.WithContext(ctx).
		Preload("Meals.MealDishes.Dish").
		Where("user_id = ? AND log_date = ?", userID, date).
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	return &log, nil
}

// GetLogsByDateRange returns the user's logs between two dates,
// newest first, with meals resolved.
func (s *LogService) GetLogsByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.DailyLog, error) {
	var logs []models.DailyLog
	err := s.db.WithContext(ctx).
		Preload("Meals").
		Where("user_id = ? AND log_date BETWEEN ? AND ?", userID, start, end).
		Order("log_date DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// UpdateDailyLog patches the authoritative fields (calories burned,
// water intake, notes) of the log for (user, date), creating the log
// if needed. The derived consumed-* fields are never touched here.
func (s *LogService) UpdateDailyLog(ctx context.Context, userID uuid.UUID, date time.Time, req *types.UpdateDailyLogRequest) (*models.DailyLog, error) {
	db := s.db.WithContext(ctx)

	log, err := findOrCreateDailyLog(db, userID, date)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.CaloriesBurned != nil {
		updates["calories_burned"] = *req.CaloriesBurned
	}
	if req.WaterIntakeLiters != nil {
		updates["water_intake_liters"] = *req.WaterIntakeLiters
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) > 0 {
		if err := db.Model(log).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return log, nil
}
