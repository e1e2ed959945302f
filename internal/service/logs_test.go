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

func TestParseLogDate(t *testing.T) {
	d, err := service.ParseLogDate("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, 10, d.Day())

	_, err = service.ParseLogDate("03/10/2026")
	assert.ErrorIs(t, err, service.ErrInvalidDate)

	_, err = service.ParseLogDate("")
	assert.ErrorIs(t, err, service.ErrInvalidDate)
}

func TestFindOrCreateDailyLog(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewLogService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "logger@example.com")
	date := logDate(t, "2026-03-10")

	first, err := svc.FindOrCreateDailyLog(ctx, user.ID, date)
	require.NoError(t, err)
	assert.Equal(t, 0, first.CaloriesConsumed)

	second, err := svc.FindOrCreateDailyLog(ctx, user.ID, date)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.DailyLog{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetDailyLog(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewLogService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "reader@example.com")
	other := testhelpers.CreateTestUser(t, db, "stranger@example.com")
	date := logDate(t, "2026-03-10")

	_, err := svc.GetDailyLog(ctx, user.ID, date)
	assert.ErrorIs(t, err, service.ErrLogNotFound)

	_, err = svc.FindOrCreateDailyLog(ctx, user.ID, date)
	require.NoError(t, err)

	got, err := svc.GetDailyLog(ctx, user.ID, date)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)

	// Another user's date stays empty.
	_, err = svc.GetDailyLog(ctx, other.ID, date)
	assert.ErrorIs(t, err, service.ErrLogNotFound)
}

func TestGetLogsByDateRange(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewLogService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "range@example.com")
	for _, day := range []string{"2026-03-01", "2026-03-05", "2026-03-09"} {
		_, err := svc.FindOrCreateDailyLog(ctx, user.ID, logDate(t, day))
		require.NoError(t, err)
	}

	logs, err := svc.GetLogsByDateRange(ctx, user.ID, logDate(t, "2026-03-01"), logDate(t, "2026-03-05"))
	require.NoError(t, err)
	require.Len(t, logs, 2)
	// Newest first.
	assert.True(t, logs[0].LogDate.After(logs[1].LogDate))

	logs, err = svc.GetLogsByDateRange(ctx, user.ID, logDate(t, "2026-04-01"), logDate(t, "2026-04-30"))
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestUpdateDailyLog(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewLogService(db)
	mealSvc := service.NewMealService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "updater@example.com")
	dish := testhelpers.CreateTestDish(t, db, "Quinoa Bowl", 222, 8.1, 39.4, 3.6)
	date := logDate(t, "2026-03-10")

	burned := 450
	water := 1.5
	got, err := svc.UpdateDailyLog(ctx, user.ID, date, &types.UpdateDailyLogRequest{
		CaloriesBurned:    &burned,
		WaterIntakeLiters: &water,
	})
	require.NoError(t, err)
	assert.Equal(t, 450, got.CaloriesBurned)
	require.NotNil(t, got.WaterIntakeLiters)
	assert.Equal(t, 1.5, *got.WaterIntakeLiters)

	// Patching authoritative fields never disturbs derived totals.
	_, _, err = mealSvc.AddDishToMeal(ctx, user.ID, dish.ID, models.MealTypeLunch, date, 1, nil)
	require.NoError(t, err)

	notes := "long run day"
	got, err = svc.UpdateDailyLog(ctx, user.ID, date, &types.UpdateDailyLogRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, 222, got.CaloriesConsumed)
	assert.Equal(t, 450, got.CaloriesBurned)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "long run day", *got.Notes)
}
