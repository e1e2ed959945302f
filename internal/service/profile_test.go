package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapcal/backend/internal/models"
	"github.com/snapcal/backend/internal/service"
	"github.com/snapcal/backend/internal/testhelpers"
	"github.com/snapcal/backend/internal/types"
)

func TestUpdateProfile(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewProfileService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "profile@example.com")

	first := "Sam"
	weight := 72.4
	profile, err := svc.UpdateProfile(ctx, user.ID, &types.UpdateProfileRequest{
		FirstName:       &first,
		CurrentWeightKg: &weight,
	})
	require.NoError(t, err)
	require.NotNil(t, profile.FirstName)
	assert.Equal(t, "Sam", *profile.FirstName)
	require.NotNil(t, profile.CurrentWeightKg)
	assert.Equal(t, 72.4, *profile.CurrentWeightKg)

	t.Run("weight change appends measurement history", func(t *testing.T) {
		var count int64
		require.NoError(t, db.Model(&models.BodyMeasurement{}).Where("user_id = ?", user.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("bad date of birth rejected", func(t *testing.T) {
		bad := "March 1st"
		_, err := svc.UpdateProfile(ctx, user.ID, &types.UpdateProfileRequest{DateOfBirth: &bad})
		assert.ErrorIs(t, err, service.ErrInvalidDate)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.GetProfile(ctx, uuid.New())
		assert.ErrorIs(t, err, service.ErrProfileNotFound)
	})
}

func TestBodyMeasurements(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewProfileService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "measure@example.com")

	w1, w2 := 80.0, 79.2
	_, err := svc.AddBodyMeasurement(ctx, user.ID, &types.CreateBodyMeasurementRequest{WeightKg: &w1})
	require.NoError(t, err)
	_, err = svc.AddBodyMeasurement(ctx, user.ID, &types.CreateBodyMeasurementRequest{WeightKg: &w2})
	require.NoError(t, err)

	history, err := svc.GetBodyMeasurements(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	// Latest value is mirrored onto the profile.
	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.CurrentWeightKg)
	assert.Equal(t, 79.2, *profile.CurrentWeightKg)
}

func TestUpdateSettings(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewProfileService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "settings@example.com")
	require.NoError(t, db.Create(&models.UserSettings{
		UserID:            user.ID,
		Goal:              models.GoalMaintainWeight,
		ActivityLevel:     models.ActivityModerate,
		MeasurementSystem: "metric",
	}).Error)

	goal := models.GoalLoseWeight
	calories := 1900
	settings, err := svc.UpdateSettings(ctx, user.ID, &types.UpdateSettingsRequest{
		Goal:           &goal,
		TargetCalories: &calories,
	})
	require.NoError(t, err)
	assert.Equal(t, models.GoalLoseWeight, settings.Goal)
	require.NotNil(t, settings.TargetCalories)
	assert.Equal(t, 1900, *settings.TargetCalories)

	// Calorie-target changes leave a dated snapshot behind.
	var targets int64
	require.NoError(t, db.Model(&models.UserCalorieTarget{}).Where("user_id = ?", user.ID).Count(&targets).Error)
	assert.Equal(t, int64(1), targets)
}

func TestDietPreferences(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewProfileService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "diet@example.com")
	vegan := models.DietTag{Name: "vegan"}
	keto := models.DietTag{Name: "keto"}
	require.NoError(t, db.Create(&vegan).Error)
	require.NoError(t, db.Create(&keto).Error)

	tags, err := svc.SetDietPreferences(ctx, user.ID, []string{vegan.ID.String(), keto.ID.String()})
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	// Replacing shrinks the selection.
	tags, err = svc.SetDietPreferences(ctx, user.ID, []string{keto.ID.String()})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "keto", tags[0].Name)

	all, err := svc.ListDietTags(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
