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

func TestRateDish(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewRatingService(db)
	ctx := context.Background()

	alice := testhelpers.CreateTestUser(t, db, "alice@example.com")
	bob := testhelpers.CreateTestUser(t, db, "bob@example.com")
	dish := testhelpers.CreateTestDish(t, db, "Salmon Fillet", 208, 20.4, 0.0, 13.4)

	rating, err := svc.RateDish(ctx, alice.ID, dish.ID, &types.CreateRatingRequest{Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, rating.Rating)

	t.Run("aggregate tracks every change", func(t *testing.T) {
		_, err := svc.RateDish(ctx, bob.ID, dish.ID, &types.CreateRatingRequest{Rating: 2})
		require.NoError(t, err)

		var got models.Dish
		require.NoError(t, db.First(&got, "id = ?", dish.ID).Error)
		assert.Equal(t, 3.5, got.AverageRating)
		assert.Equal(t, 2, got.RatingCount)
	})

	t.Run("second rating by the same user conflicts", func(t *testing.T) {
		_, err := svc.RateDish(ctx, alice.ID, dish.ID, &types.CreateRatingRequest{Rating: 1})
		assert.ErrorIs(t, err, service.ErrRatingExists)
	})

	t.Run("missing dish", func(t *testing.T) {
		other := testhelpers.CreateTestDish(t, db, "Ghost", 1, 0, 0, 0)
		require.NoError(t, db.Model(other).Update("is_active", false).Error)

		_, err := svc.RateDish(ctx, alice.ID, other.ID, &types.CreateRatingRequest{Rating: 3})
		assert.ErrorIs(t, err, service.ErrDishNotFound)
	})
}

func TestUpdateAndDeleteRating(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewRatingService(db)
	ctx := context.Background()

	alice := testhelpers.CreateTestUser(t, db, "alice@example.com")
	bob := testhelpers.CreateTestUser(t, db, "bob@example.com")
	dish := testhelpers.CreateTestDish(t, db, "Cobb Salad", 320, 24.6, 9.8, 21.0)

	_, err := svc.RateDish(ctx, alice.ID, dish.ID, &types.CreateRatingRequest{Rating: 5})
	require.NoError(t, err)
	_, err = svc.RateDish(ctx, bob.ID, dish.ID, &types.CreateRatingRequest{Rating: 3})
	require.NoError(t, err)

	t.Run("update recomputes the aggregate", func(t *testing.T) {
		one := 1
		_, err := svc.UpdateRating(ctx, alice.ID, dish.ID, &types.UpdateRatingRequest{Rating: &one})
		require.NoError(t, err)

		var got models.Dish
		require.NoError(t, db.First(&got, "id = ?", dish.ID).Error)
		assert.Equal(t, 2.0, got.AverageRating)
	})

	t.Run("updating a rating that does not exist", func(t *testing.T) {
		stranger := testhelpers.CreateTestUser(t, db, "stranger@example.com")
		four := 4
		_, err := svc.UpdateRating(ctx, stranger.ID, dish.ID, &types.UpdateRatingRequest{Rating: &four})
		assert.ErrorIs(t, err, service.ErrRatingNotFound)
	})

	t.Run("delete shrinks the aggregate", func(t *testing.T) {
		require.NoError(t, svc.DeleteRating(ctx, alice.ID, dish.ID))

		var got models.Dish
		require.NoError(t, db.First(&got, "id = ?", dish.ID).Error)
		assert.Equal(t, 3.0, got.AverageRating)
		assert.Equal(t, 1, got.RatingCount)

		require.NoError(t, svc.DeleteRating(ctx, bob.ID, dish.ID))
		require.NoError(t, db.First(&got, "id = ?", dish.ID).Error)
		assert.Equal(t, 0.0, got.AverageRating)
		assert.Equal(t, 0, got.RatingCount)
	})

	t.Run("deleting twice reports not found", func(t *testing.T) {
		err := svc.DeleteRating(ctx, alice.ID, dish.ID)
		assert.ErrorIs(t, err, service.ErrRatingNotFound)
	})
}
