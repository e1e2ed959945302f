package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapcal/backend/internal/models"
	"github.com/snapcal/backend/internal/service"
	"github.com/snapcal/backend/internal/testhelpers"
	"github.com/snapcal/backend/internal/types"
)

func TestCreateAndGetDish(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewDishService(db)
	ctx := context.Background()

	category := models.DishCategory{Name: "Soups"}
	require.NoError(t, db.Create(&category).Error)
	tag := models.DietTag{Name: "vegan"}
	require.NoError(t, db.Create(&tag).Error)

	dish, err := svc.CreateDish(ctx, &types.CreateDishRequest{
		Name:        "Tomato Soup",
		Calories:    90,
		ProteinG:    2.0,
		CarbsG:      16.6,
		FatsG:       2.1,
		CategoryIDs: []string{category.ID.String()},
		DietTagIDs:  []string{tag.ID.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, 90, dish.Calories)
	require.Len(t, dish.Categories, 1)
	assert.Equal(t, "Soups", dish.Categories[0].Name)
	require.Len(t, dish.DietTags, 1)

	got, err := svc.GetDish(ctx, dish.ID)
	require.NoError(t, err)
	assert.Equal(t, dish.ID, got.ID)
}

func TestListDishes(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewDishService(db)
	ctx := context.Background()

	category := models.DishCategory{Name: "Salads"}
	require.NoError(t, db.Create(&category).Error)

	caesar := testhelpers.CreateTestDish(t, db, "Caesar Salad", 210, 7.5, 12.0, 15.2)
	require.NoError(t, db.Model(caesar).Association("Categories").Append(&category))
	testhelpers.CreateTestDish(t, db, "Tomato Soup", 90, 2.0, 16.6, 2.1)
	retired := testhelpers.CreateTestDish(t, db, "Retired Bowl", 400, 10, 40, 12)
	require.NoError(t, db.Model(retired).Update("is_active", false).Error)

	t.Run("inactive dishes are hidden", func(t *testing.T) {
		dishes, err := svc.ListDishes(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, dishes, 2)
	})

	t.Run("category filter", func(t *testing.T) {
		id := category.ID.String()
		dishes, err := svc.ListDishes(ctx, &types.DishFilter{CategoryID: &id})
		require.NoError(t, err)
		require.Len(t, dishes, 1)
		assert.Equal(t, "Caesar Salad", dishes[0].Name)
	})

	t.Run("name search is case-insensitive", func(t *testing.T) {
		dishes, err := svc.ListDishes(ctx, &types.DishFilter{Search: "caesar"})
		require.NoError(t, err)
		require.Len(t, dishes, 1)
		assert.Equal(t, "Caesar Salad", dishes[0].Name)
	})
}

func TestUpdateDish(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewDishService(db)
	mealSvc := service.NewMealService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "eater@example.com")
	dish := testhelpers.CreateTestDish(t, db, "Brown Rice", 216, 5.0, 44.8, 1.8)
	date := logDate(t, "2026-03-10")

	entry, _, err := mealSvc.AddDishToMeal(ctx, user.ID, dish.ID, models.MealTypeLunch, date, 1, nil)
	require.NoError(t, err)

	calories := 250
	updated, err := svc.UpdateDish(ctx, dish.ID, &types.UpdateDishRequest{Calories: &calories})
	require.NoError(t, err)
	assert.Equal(t, 250, updated.Calories)

	// The logged snapshot is untouched by the catalog edit.
	var stored models.MealDish
	require.NoError(t, db.First(&stored, "id = ?", entry.ID).Error)
	assert.Equal(t, 216, stored.CaloriesAtTime)
}

func TestDeactivateDish(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewDishService(db)
	mealSvc := service.NewMealService(db)
	logSvc := service.NewLogService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "eater@example.com")
	dish := testhelpers.CreateTestDish(t, db, "Berry Smoothie", 145, 3.2, 32.8, 1.1)
	date := logDate(t, "2026-03-10")

	_, _, err := mealSvc.AddDishToMeal(ctx, user.ID, dish.ID, models.MealTypeBreakfast, date, 1, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateDish(ctx, dish.ID))

	t.Run("gone from reads and further logging", func(t *testing.T) {
		_, err := svc.GetDish(ctx, dish.ID)
		assert.ErrorIs(t, err, service.ErrDishNotFound)

		_, _, err = mealSvc.AddDishToMeal(ctx, user.ID, dish.ID, models.MealTypeLunch, date, 1, nil)
		assert.ErrorIs(t, err, service.ErrDishNotFound)
	})

	t.Run("history keeps resolving", func(t *testing.T) {
		logRow, err := logSvc.GetDailyLog(ctx, user.ID, date)
		require.NoError(t, err)
		assert.Equal(t, 145, logRow.CaloriesConsumed)
		require.Len(t, logRow.Meals, 1)
		require.Len(t, logRow.Meals[0].MealDishes, 1)
		assert.Equal(t, "Berry Smoothie", logRow.Meals[0].MealDishes[0].Dish.Name)
	})

	t.Run("deactivating twice reports not found", func(t *testing.T) {
		err := svc.DeactivateDish(ctx, dish.ID)
		assert.ErrorIs(t, err, service.ErrDishNotFound)
	})
}
