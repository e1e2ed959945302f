package main

import (
	"log"

	"gorm.io/gorm"

	"github.com/snapcal/backend/config"
	"github.com/snapcal/backend/internal/database"
	"github.com/snapcal/backend/internal/models"
)

// Seed data for local development: the diet tag catalog, a few
// categories and a starter set of dishes with per-serving nutrition.

var dietTags = []string{
	"vegan",
	"vegetarian",
	"pescatarian",
	"keto",
	"paleo",
	"gluten_free",
	"dairy_free",
	"low_carb",
	"high_protein",
}

var categories = []string{
	"Salads",
	"Soups",
	"Grains & Bowls",
	"Proteins",
	"Snacks",
	"Desserts",
	"Drinks",
}

type seedDish struct {
	name     string
	category string
	calories int
	protein  float64
	carbs    float64
	fats     float64
}

var dishes = []seedDish{
	{"Grilled Chicken Breast", "Proteins", 165, 31.0, 0.0, 3.6},
	{"Caesar Salad", "Salads", 210, 7.5, 12.0, 15.2},
	{"Quinoa Bowl", "Grains & Bowls", 222, 8.1, 39.4, 3.6},
	{"Tomato Soup", "Soups", 90, 2.0, 16.6, 2.1},
	{"Greek Yogurt with Honey", "Snacks", 150, 10.0, 20.3, 3.8},
	{"Avocado Toast", "Snacks", 290, 8.4, 29.1, 16.5},
	{"Salmon Fillet", "Proteins", 208, 20.4, 0.0, 13.4},
	{"Lentil Soup", "Soups", 180, 12.3, 28.7, 2.5},
	{"Berry Smoothie", "Drinks", 145, 3.2, 32.8, 1.1},
	{"Dark Chocolate Square", "Desserts", 60, 0.8, 5.5, 4.3},
	{"Brown Rice", "Grains & Bowls", 216, 5.0, 44.8, 1.8},
	{"Cobb Salad", "Salads", 320, 24.6, 9.8, 21.0},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if err := seed(db); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Catalog seeded")
}

func seed(db *gorm.DB) error {
	for _, name := range dietTags {
		tag := models.DietTag{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&tag).Error; err != nil {
			return err
		}
	}

	categoryByName := make(map[string]models.DishCategory, len(categories))
	for _, name := range categories {
		category := models.DishCategory{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&category).Error; err != nil {
			return err
		}
		categoryByName[name] = category
	}

	for _, d := range dishes {
		var count int64
		if err := db.Model(&models.Dish{}).Where("name = ?", d.name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		dish := models.Dish{
			Name:     d.name,
			Servings: 1,
			Calories: d.calories,
			ProteinG: d.protein,
			CarbsG:   d.carbs,
			FatsG:    d.fats,
			IsPublic: true,
			IsActive: true,
		}
		if err := db.Create(&dish).Error; err != nil {
			return err
		}
		if category, ok := categoryByName[d.category]; ok {
			if err := db.Model(&dish).Association("Categories").Append(&category); err != nil {
				return err
			}
		}
		log.Printf("Seeded dish %q", d.name)
	}

	return nil
}
