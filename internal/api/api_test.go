package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/snapcal/backend/config"
	"github.com/snapcal/backend/internal/models"
	"github.com/snapcal/backend/internal/api"
	"github.com/snapcal/backend/internal/testhelpers"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	cfg := &config.Config{
		JWTSecret:                  "test-secret",
		JWTRefreshSecret:           "test-refresh-secret",
		GuestSessionExpirationDays: 30,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupAPI(router, db, nil, cfg)
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func createGuest(t *testing.T, router *gin.Engine) (token string, userID string) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/guest/sessions", "", gin.H{})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
		UserID      string `json:"user_id"`
	}
	decode(t, w, &resp)
	return resp.AccessToken, resp.UserID
}

func registerUser(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    email,
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, w, &resp)
	return resp.AccessToken
}

func createDish(t *testing.T, router *gin.Engine, token, name string, calories int, protein, carbs, fats float64) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/dishes", token, gin.H{
		"name":      name,
		"calories":  calories,
		"protein_g": protein,
		"carbs_g":   carbs,
		"fats_g":    fats,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var dish struct {
		ID string `json:"id"`
	}
	decode(t, w, &dish)
	return dish.ID
}

// The whole logging pipeline over HTTP: a guest logs two dishes into
// lunch, sees aggregated totals on the daily log, removes one entry and
// sees the totals shrink back.
func TestMealLoggingFlow(t *testing.T) {
	router, _ := setupRouter(t)

	admin := registerUser(t, router, "admin@example.com")
	chicken := createDish(t, router, admin, "Grilled Chicken Breast", 165, 31.0, 0.0, 3.6)
	salad := createDish(t, router, admin, "Caesar Salad", 210, 7.5, 12.0, 15.2)

	guest, _ := createGuest(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/meals/dishes", guest, gin.H{
		"dish_id":   chicken,
		"meal_type": "lunch",
		"date":      "2026-03-10",
		"servings":  1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var added struct {
		Entry struct {
			ID             string `json:"id"`
			CaloriesAtTime int    `json:"calories_at_time"`
		} `json:"entry"`
		Meal struct {
			TotalCalories int `json:"total_calories"`
		} `json:"meal"`
	}
	decode(t, w, &added)
	assert.Equal(t, 165, added.Entry.CaloriesAtTime)
	firstEntryID := added.Entry.ID

	w = doJSON(t, router, http.MethodPost, "/api/v1/meals/dishes", guest, gin.H{
		"dish_id":   salad,
		"meal_type": "lunch",
		"date":      "2026-03-10",
		"servings":  1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &added)
	assert.Equal(t, 375, added.Meal.TotalCalories)

	w = doJSON(t, router, http.MethodGet, "/api/v1/logs/2026-03-10", guest, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var logResp struct {
		CaloriesConsumed int     `json:"calories_consumed"`
		ProteinConsumedG float64 `json:"protein_consumed_g"`
		Meals            []struct {
			MealType string `json:"meal_type"`
		} `json:"meals"`
	}
	decode(t, w, &logResp)
	assert.Equal(t, 375, logResp.CaloriesConsumed)
	assert.Equal(t, 38.5, logResp.ProteinConsumedG)
	require.Len(t, logResp.Meals, 1)
	assert.Equal(t, "lunch", logResp.Meals[0].MealType)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/meals/entries/"+firstEntryID, guest, nil)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/v1/logs/2026-03-10", guest, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &logResp)
	assert.Equal(t, 210, logResp.CaloriesConsumed)
}

func TestErrorStatuses(t *testing.T) {
	router, _ := setupRouter(t)

	admin := registerUser(t, router, "admin@example.com")
	dish := createDish(t, router, admin, "Quinoa Bowl", 222, 8.1, 39.4, 3.6)
	guest, _ := createGuest(t, router)
	other, _ := createGuest(t, router)

	t.Run("missing auth is unauthorized", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/logs/2026-03-10", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown dish is not found", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/meals/dishes", guest, gin.H{
			"dish_id":   "3f0e8a4e-0000-0000-0000-000000000000",
			"meal_type": "lunch",
			"date":      "2026-03-10",
			"servings":  1,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad meal type is a bad request", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/meals/dishes", guest, gin.H{
			"dish_id":   dish,
			"meal_type": "brunch",
			"date":      "2026-03-10",
			"servings":  1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("another user's entry is not found", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/meals/dishes", guest, gin.H{
			"dish_id":   dish,
			"meal_type": "dinner",
			"date":      "2026-03-10",
			"servings":  1,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var added struct {
			Entry struct {
				ID string `json:"id"`
			} `json:"entry"`
		}
		decode(t, w, &added)

		w = doJSON(t, router, http.MethodDelete, "/api/v1/meals/entries/"+added.Entry.ID, other, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("guests cannot manage the catalog", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/dishes", guest, gin.H{
			"name":     "Guest Dish",
			"calories": 100,
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestGuestConversionFlowHTTP(t *testing.T) {
	router, _ := setupRouter(t)
	guest, userID := createGuest(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/guest/convert", guest, gin.H{
		"email":    "flow@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var auth struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID      string `json:"id"`
			IsGuest bool   `json:"is_guest"`
		} `json:"user"`
	}
	decode(t, w, &auth)
	assert.Equal(t, userID, auth.User.ID)
	assert.False(t, auth.User.IsGuest)

	t.Run("converted account can log in", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email":    "flow@example.com",
			"password": "correct-horse",
		})
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("second conversion conflicts or is gone", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/guest/convert", auth.AccessToken, gin.H{
			"email":    "flow2@example.com",
			"password": "correct-horse",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// A guest token outliving its session must stop working the moment the
// session is deactivated or passes its expiry, even though the JWT
// itself is still within TTL.
func TestStaleGuestTokenRejected(t *testing.T) {
	router, db := setupRouter(t)

	admin := registerUser(t, router, "admin@example.com")
	dish := createDish(t, router, admin, "Oatmeal", 100, 3.5, 18.0, 2.1)

	addDish := func(token string) *httptest.ResponseRecorder {
		return doJSON(t, router, http.MethodPost, "/api/v1/meals/dishes", token, gin.H{
			"dish_id":   dish,
			"meal_type": "breakfast",
			"date":      "2026-03-10",
			"servings":  1,
		})
	}

	t.Run("deactivated by the sweep", func(t *testing.T) {
		guest, userID := createGuest(t, router)

		require.NoError(t, db.Model(&models.User{}).
			Where("id = ?", userID).
			Update("is_active", false).Error)

		w := addDish(guest)
		assert.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())

		var entries int64
		require.NoError(t, db.Model(&models.MealDish{}).Count(&entries).Error)
		assert.Zero(t, entries)
	})

	t.Run("past its expiry", func(t *testing.T) {
		guest, userID := createGuest(t, router)

		expired := time.Now().Add(-time.Hour)
		require.NoError(t, db.Model(&models.User{}).
			Where("id = ?", userID).
			Update("expires_at", expired).Error)

		w := addDish(guest)
		assert.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})

	t.Run("live guest still writes", func(t *testing.T) {
		guest, _ := createGuest(t, router)
		w := addDish(guest)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})
}
