package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/snapcal/backend/internal/models"
	"github.com/snapcal/backend/internal/types"
)

// RatingService manages per-user dish ratings and keeps the dish's
// aggregate rating in step, recomputed from scratch on every change.
type RatingService struct {
	db *gorm.DB
}

var _ IRatingService = (*RatingService)(nil)

// NewRatingService creates a new RatingService instance.
func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// recalculateDishRating recomputes a dish's average and count from its
// rating rows inside the caller's transaction.
func recalculateDishRating(tx *gorm.DB, dishID uuid.UUID) error {
	var agg struct {
		Average float64
		Count   int64
	}
	err := tx.Model(&models.DishRating{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("dish_id = ?", dishID).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.Dish{}).
		Where("id = ?", dishID).
		Updates(map[string]interface{}{
			"average_rating": agg.Average,
			"rating_count":   agg.Count,
		}).Error
}

// RateDish records a first rating for (user, dish). A second rating of
// the same dish is a conflict.
func (s *RatingService) RateDish(ctx context.Context, userID, dishID uuid.UUID, req *types.CreateRatingRequest) (*models.DishRating, error) {
	rating := models.DishRating{
		UserID:  userID,
		DishID:  dishID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dish models.Dish
		if err := tx.Where("id = ? AND is_active = ?", dishID, true).First(&dish).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDishNotFound
			}
			return err
		}
		if err := tx.Create(&rating).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrRatingExists
			}
			return err
		}
		return recalculateDishRating(tx, dishID)
	})
	if err != nil {
		return nil, err
	}

	return &rating, nil
}

// UpdateRating edits the caller's existing rating of a dish.
func (s *RatingService) UpdateRating(ctx context.Context, userID, dishID uuid.UUID, req *types.UpdateRatingRequest) (*models.DishRating, error) {
	var rating models.DishRating

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND dish_id = ?", userID, dishID).First(&rating).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRatingNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if req.Rating != nil {
			updates["rating"] = *req.Rating
		}
		if req.Comment != nil {
			updates["comment"] = *req.Comment
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&rating).Updates(updates).Error; err != nil {
			return err
		}
		return recalculateDishRating(tx, dishID)
	})
	if err != nil {
		return nil, err
	}

	return &rating, nil
}

// DeleteRating removes the caller's rating of a dish.
func (s *RatingService) DeleteRating(ctx context.Context, userID, dishID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND dish_id = ?", userID, dishID).Delete(&models.DishRating{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRatingNotFound
		}
		return recalculateDishRating(tx, dishID)
	})
}

// GetDishRatings returns all ratings for a dish, newest first.
func (s *RatingService) GetDishRatings(ctx context.Context, dishID uuid.UUID) ([]models.DishRating, error) {
	var ratings []models.DishRating
	err := s.db.WithContext(ctx).
		Where("dish_id = ?", dishID).
		Order("created_at DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}
