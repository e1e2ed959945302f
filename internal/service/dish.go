package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/snapcal/backend/internal/models"
	"github.com/snapcal/backend/internal/types"
)

// DishService manages the dish catalog.
type DishService struct {
	db *gorm.DB
}

var _ IDishService = (*DishService)(nil)

// NewDishService creates a new DishService instance.
func NewDishService(db *gorm.DB) *DishService {
	return &DishService{db: db}
}

// CreateDish adds a dish to the catalog with its category and diet-tag
// associations.
func (s *DishService) CreateDish(ctx context.Context, req *types.CreateDishRequest) (*models.Dish, error) {
	dish := models.Dish{
		Name:            req.Name,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        1,
		Calories:        req.Calories,
		ProteinG:        req.ProteinG,
		CarbsG:          req.CarbsG,
		FatsG:           req.FatsG,
		FiberG:          req.FiberG,
		SugarG:          req.SugarG,
		SodiumMg:        req.SodiumMg,
		IsPublic:        true,
		IsActive:        true,
	}
	if req.Servings != nil && *req.Servings > 0 {
		dish.Servings = *req.Servings
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&dish).Error; err != nil {
			return err
		}
		if len(req.CategoryIDs) > 0 {
			var categories []models.DishCategory
			if err := tx.Where("id IN ?", req.CategoryIDs).Find(&categories).Error; err != nil {
				return err
			}
			if err := tx.Model(&dish).Association("Categories").Replace(categories); err != nil {
				return err
			}
		}
		if len(req.DietTagIDs) > 0 {
			var tags []models.DietTag
			if err := tx.Where("id IN ?", req.DietTagIDs).Find(&tags).Error; err != nil {
				return err
			}
			if err := tx.Model(&dish).Association("DietTags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetDish(ctx, dish.ID)
}

// GetDish resolves an active dish with its associations.
func (s *DishService) GetDish(ctx context.Context, id uuid.UUID) (*models.Dish, error) {
	var dish models.Dish
	err := s.db.WithContext(ctx).
		Preload("Categories").
		Preload("DietTags").
		Where("id = ? AND is_active = ?", id, true).
		First(&dish).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDishNotFound
		}
		return nil, err
	}
	return &dish, nil
}

// ListDishes returns active catalog dishes, optionally narrowed by
// category, diet tag and a name search.
func (s *DishService) ListDishes(ctx context.Context, filter *types.DishFilter) ([]models.Dish, error) {
	query := s.db.WithContext(ctx).
		Model(&models.Dish{}).
		Preload("Categories").
		Preload("DietTags").
		Where("dishes.is_active = ?", true)

	if filter != nil {
		if filter.CategoryID != nil {
			query = query.
				Joins("JOIN dish_category_mapping ON dish_category_mapping.dish_id = dishes.id").
				Where("dish_category_mapping.dish_category_id = ?", *filter.CategoryID)
		}
		if filter.DietTagID != nil {
			query = query.
				Joins("JOIN dish_diet_tags ON dish_diet_tags.dish_id = dishes.id").
				Where("dish_diet_tags.diet_tag_id = ?", *filter.DietTagID)
		}
		if filter.Search != "" {
			query = query.Where("LOWER(dishes.name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
		}
	}

	var dishes []models.Dish
	if err := query.Order("dishes.name ASC").Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// UpdateDish patches catalog fields. Nutrition edits affect future
// logging only; existing meal entries keep their snapshots.
func (s *DishService) UpdateDish(ctx context.Context, id uuid.UUID, req *types.UpdateDishRequest) (*models.Dish, error) {
	db := s.db.WithContext(ctx)

	var dish models.Dish
	if err := db.Where("id = ? AND is_active = ?", id, true).First(&dish).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDishNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.PrepTimeMinutes != nil {
		updates["prep_time_minutes"] = *req.PrepTimeMinutes
	}
	if req.CookTimeMinutes != nil {
		updates["cook_time_minutes"] = *req.CookTimeMinutes
	}
	if req.Calories != nil {
		updates["calories"] = *req.Calories
	}
	if req.ProteinG != nil {
		updates["protein_g"] = *req.ProteinG
	}
	if req.CarbsG != nil {
		updates["carbs_g"] = *req.CarbsG
	}
	if req.FatsG != nil {
		updates["fats_g"] = *req.FatsG
	}
	if len(updates) > 0 {
		if err := db.Model(&dish).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetDish(ctx, id)
}

// DeactivateDish soft-deletes a dish. Logged history keeps resolving
// through its snapshots; the dish just stops being loggable.
func (s *DishService) DeactivateDish(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Model(&models.Dish{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDishNotFound
	}
	return nil
}

// ListCategories returns all dish categories.
func (s *DishService) ListCategories(ctx context.Context) ([]models.DishCategory, error) {
	var categories []models.DishCategory
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
