package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"restaurant-pos-api/config"
	"restaurant-pos-api/models"
	"restaurant-pos-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRouter wires the full route table against a fresh in-memory
// database named after the test, so tests never share state.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func seedUser(t *testing.T, role models.UserRole) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), 10)
	require.NoError(t, err)
	user := models.User{
		FirstName:    "Ana",
		LastName:     "Lopez",
		Name:         "Ana Lopez",
		Email:        fmt.Sprintf("%s-%s@example.com", role, strings.ReplaceAll(t.Name(), "/", "_")),
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, config.DB.Create(&user).Error)
	return user
}

func seedDish(t *testing.T, name string, dishType models.DishType, price float64) models.Dish {
	t.Helper()
	dish := models.Dish{Name: name, Type: dishType, Price: price}
	require.NoError(t, config.DB.Create(&dish).Error)
	return dish
}

func seedOrder(t *testing.T, userID uint, mesa string, dishIDs ...uint) models.Order {
	t.Helper()
	items := make([]models.OrderItem, 0, len(dishIDs))
	for _, id := range dishIDs {
		items = append(items, models.OrderItem{DishID: id, Status: models.ItemPending})
	}
	order := models.Order{
		UserID:           userID,
		Mesa:             mesa,
		Status:           models.StatusPending,
		DailyOrderNumber: 1,
		Items:            items,
	}
	require.NoError(t, config.DB.Create(&order).Error)
	return order
}
