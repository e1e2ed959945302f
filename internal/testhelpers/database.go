package testhelpers

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/snapcal/backend/internal/models"
)

var dbCounter atomic.Int64

// SetupTestDatabase opens an in-memory sqlite database with the full
// schema migrated. Each call gets its own database; shared cache plus a
// single connection keeps it alive and serialized across goroutines.
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:snapcal_test_%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, migrateAll(db))

	return db
}

func allModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.OAuthAccount{},
		&models.UserProfile{},
		&models.BodyMeasurement{},
		&models.UserSettings{},
		&models.UserCalorieTarget{},
		&models.DietTag{},
		&models.EmailVerification{},
		&models.DishCategory{},
		&models.Dish{},
		&models.DishRating{},
		&models.DailyLog{},
		&models.Meal{},
		&models.MealDish{},
	}
}

// CreateTestDish inserts a dish with the given per-serving nutrition.
func CreateTestDish(t *testing.T, db *gorm.DB, name string, calories int, protein, carbs, fats float64) *models.Dish {
	t.Helper()

	dish := &models.Dish{
		Name:     name,
		Servings: 1,
		Calories: calories,
		ProteinG: protein,
		CarbsG:   carbs,
		FatsG:    fats,
		IsPublic: true,
		IsActive: true,
	}
	require.NoError(t, db.Create(dish).Error)
	return dish
}

// CreateTestUser inserts a registered user with a profile.
func CreateTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        &email,
		AuthProvider: models.AuthProviderEmail,
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.UserProfile{UserID: user.ID}).Error)
	return user
}
