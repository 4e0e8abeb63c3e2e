package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"restaurant-pos-api/config"
	"restaurant-pos-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeOrder(t *testing.T, r *gin.Engine, userID uint, mesa string, dishIDs ...uint) (uint, int) {
	t.Helper()
	dishes := make([]map[string]uint, 0, len(dishIDs))
	for _, id := range dishIDs {
		dishes = append(dishes, map[string]uint{"dish_id": id})
	}
	w := doJSON(t, r, "POST", "/api/orders", map[string]interface{}{
		"dishes":  dishes,
		"user_id": userID,
		"mesa":    mesa,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	return uint(body["orderId"].(float64)), int(body["dailyOrderNumber"].(float64))
}

func TestCreateOrderItemsAndDailyNumber(t *testing.T) {
	r := setupRouter(t)
	user := seedUser(t, models.RoleWaiter)
	d1 := seedDish(t, "Tacos", models.TypeMain, 60)
	d2 := seedDish(t, "Agua", models.TypeDrink, 20)
	d3 := seedDish(t, "Flan", models.TypeDessert, 40)

	orderID, daily := placeOrder(t, r, user.ID, "3", d1.ID, d2.ID, d3.ID)
	assert.Equal(t, 1, daily)

	var items []models.OrderItem
	require.NoError(t, config.DB.Where("order_id = ?", orderID).Find(&items).Error)
	require.Len(t, items, 3)
	for _, item := range items {
		assert.Equal(t, models.ItemPending, item.Status)
	}

	var order models.Order
	require.NoError(t, config.DB.First(&order, orderID).Error)
	assert.Equal(t, models.StatusPending, order.Status)

	// The per-day counter advances with each order created today
	_, daily2 := placeOrder(t, r, user.ID, "4", d1.ID)
	assert.Equal(t, 2, daily2)
}

func TestCreateOrderRequiresDishes(t *testing.T) {
	r := setupRouter(t)
	user := seedUser(t, models.RoleWaiter)

	w := doJSON(t, r, "POST", "/api/orders", map[string]interface{}{
		"dishes":  []map[string]uint{},
		"user_id": user.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServedCascadeFlipsOnlyPendingItems(t *testing.T) {
	r := setupRouter(t)
	user := seedUser(t, models.RoleKitchen)
	d1 := seedDish(t, "Sopa", models.TypeLunch, 45)
	d2 := seedDish(t, "Torta", models.TypeLunch, 55)
	orderID, _ := placeOrder(t, r, user.ID, "7", d1.ID, d2.ID)

	w := doJSON(t, r, "PATCH", fmt.Sprintf("/api/orders/%d", orderID), map[string]string{
		"status": "served",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, config.DB.Preload("Items").First(&order, orderID).Error)
	assert.Equal(t, models.StatusServed, order.Status)
	for _, item := range order.Items {
		assert.Equal(t, models.ItemServed, item.Status)
	}
}

func TestAppendToServedOrderKeepsStatus(t *testing.T) {
	r := setupRouter(t)
	user := seedUser(t, models.RoleWaiter)
	d1 := seedDish(t, "Pozole", models.TypeDinner, 110)
	d2 := seedDish(t, "Cafe", models.TypeDrink, 25)
	orderID, _ := placeOrder(t, r, user.ID, "2", d1.ID)

	w := doJSON(t, r, "PATCH", fmt.Sprintf("/api/orders/%d", orderID), map[string]string{
		"status": "served",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "PUT", fmt.Sprintf("/api/orders/%d", orderID), map[string]interface{}{
		"newDishes": []map[string]uint{{"dish_id": d2.ID}},
		"notes":     "extra coffee",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, config.DB.Preload("Items").First(&order, orderID).Error)
	assert.Equal(t, models.StatusServed, order.Status)
	assert.Equal(t, "extra coffee", order.Notes)
	require.Len(t, order.Items, 2)

	statuses := map[models.ItemStatus]int{}
	for _, item := range order.Items {
		statuses[item.Status]++
	}
	assert.Equal(t, 1, statuses[models.ItemServed])
	assert.Equal(t, 1, statuses[models.ItemPending])
}

func TestKitchenShowsOnlyPendingItems(t *testing.T) {
	r := setupRouter(t)
	user := seedUser(t, models.RoleKitchen)
	d1 := seedDish(t, "Enchiladas", models.TypeMain, 90)
	d2 := seedDish(t, "Tamal", models.TypeBreakfast, 30)

	freshID, _ := placeOrder(t, r, user.ID, "1", d1.ID, d2.ID)

	servedID, _ := placeOrder(t, r, user.ID, "2", d1.ID)
	w := doJSON(t, r, "PATCH", fmt.Sprintf("/api/orders/%d", servedID), map[string]string{"status": "served"})
	require.Equal(t, http.StatusOK, w.Code)

	// Extend the served order: only the new dish should reach the kitchen
	w = doJSON(t, r, "PUT", fmt.Sprintf("/api/orders/%d", servedID), map[string]interface{}{
		"newDishes": []map[string]uint{{"dish_id": d2.ID}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/api/orders/kitchen", nil)
	require.Equal(t, http.StatusOK, w.Code)
	views := decodeList(t, w)
	require.Len(t, views, 2)

	byID := map[float64][]interface{}{}
	for _, v := range views {
		byID[v["id"].(float64)] = v["dishes"].([]interface{})
	}
	assert.Len(t, byID[float64(freshID)], 2)
	require.Len(t, byID[float64(servedID)], 1)

	line := byID[float64(servedID)][0].(map[string]interface{})
	assert.Equal(t, "Tamal", line["name"])
}

func TestListOrdersTotalsAndUnpaidFilter(t *testing.T) {
	r := setupRouter(t)
	user := seedUser(t, models.RoleCashier)
	d1 := seedDish(t, "Mole", models.TypeMain, 120)
	d2 := seedDish(t, "Agua", models.TypeDrink, 20)

	paidID, _ := placeOrder(t, r, user.ID, "1", d1.ID, d2.ID)
	unpaidID, _ := placeOrder(t, r, user.ID, "2", d2.ID)

	w := doJSON(t, r, "POST", "/api/payments", []map[string]interface{}{
		{"order_id": paidID, "total": 140.0, "method": "cash"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, "GET", "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	views := decodeList(t, w)
	require.Len(t, views, 2)

	for _, v := range views {
		switch uint(v["id"].(float64)) {
		case paidID:
			assert.Equal(t, 140.0, v["total"])
			assert.NotNil(t, v["payment_id"])
		case unpaidID:
			assert.Equal(t, 20.0, v["total"])
			assert.Nil(t, v["payment_id"])
		}
	}

	w = doJSON(t, r, "GET", "/api/orders?unpaid=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	views = decodeList(t, w)
	require.Len(t, views, 1)
	assert.Equal(t, float64(unpaidID), views[0]["id"])
}

func TestListOrdersDateAndMonthFilters(t *testing.T) {
	r := setupRouter(t)
	user := seedUser(t, models.RoleWaiter)
	dish := seedDish(t, "Tacos", models.TypeMain, 60)

	janID, _ := placeOrder(t, r, user.ID, "1", dish.ID)
	febID, _ := placeOrder(t, r, user.ID, "2", dish.ID)
	todayID, _ := placeOrder(t, r, user.ID, "3", dish.ID)

	jan := time.Date(2024, 1, 15, 13, 0, 0, 0, time.Local)
	feb := time.Date(2024, 2, 20, 9, 30, 0, 0, time.Local)
	require.NoError(t, config.DB.Model(&models.Order{}).Where("id = ?", janID).Update("created_at", jan).Error)
	require.NoError(t, config.DB.Model(&models.Order{}).Where("id = ?", febID).Update("created_at", feb).Error)

	w := doJSON(t, r, "GET", "/api/orders?date=2024-01-15", nil)
	require.Equal(t, http.StatusOK, w.Code)
	views := decodeList(t, w)
	require.Len(t, views, 1)
	assert.Equal(t, float64(janID), views[0]["id"])

	// The day filter is a half-open range: the next day is excluded
	w = doJSON(t, r, "GET", "/api/orders?date=2024-01-16", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 0)

	w = doJSON(t, r, "GET", "/api/orders?month=2024-02", nil)
	require.Equal(t, http.StatusOK, w.Code)
	views = decodeList(t, w)
	require.Len(t, views, 1)
	assert.Equal(t, float64(febID), views[0]["id"])

	w = doJSON(t, r, "GET", "/api/orders?date="+time.Now().Format("2006-01-02"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	views = decodeList(t, w)
	require.Len(t, views, 1)
	assert.Equal(t, float64(todayID), views[0]["id"])

	w = doJSON(t, r, "GET", "/api/orders?date=garbage", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "GET", "/api/orders?month=garbage", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrder(t *testing.T) {
	r := setupRouter(t)
	user := seedUser(t, models.RoleWaiter)
	dish := seedDish(t, "Tacos", models.TypeMain, 60)
	orderID, _ := placeOrder(t, r, user.ID, "9", dish.ID, dish.ID)

	w := doJSON(t, r, "GET", fmt.Sprintf("/api/orders/%d", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(orderID), body["id"])
	assert.Len(t, body["dishes"].([]interface{}), 2)
	assert.Equal(t, 120.0, body["total"])

	w = doJSON(t, r, "GET", "/api/orders/99999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOrderGoneAfterItemsRemoved(t *testing.T) {
	r := setupRouter(t)
	user := seedUser(t, models.RoleWaiter)
	dish := seedDish(t, "Quesadilla", models.TypeMain, 35)
	orderID, _ := placeOrder(t, r, user.ID, "5", dish.ID)

	w := doJSON(t, r, "DELETE", fmt.Sprintf("/api/dishes/%d", dish.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// With every item removed the order drops out of the single-order
	// view too, matching the list endpoints
	w = doJSON(t, r, "GET", fmt.Sprintf("/api/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "GET", "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 0)
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	r := setupRouter(t)
	user := seedUser(t, models.RoleKitchen)
	dish := seedDish(t, "Sopa", models.TypeLunch, 45)
	orderID, _ := placeOrder(t, r, user.ID, "4", dish.ID)

	w := doJSON(t, r, "PATCH", fmt.Sprintf("/api/orders/%d", orderID), map[string]string{
		"status": "burnt",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "PATCH", "/api/orders/99999", map[string]string{"status": "served"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "PATCH", fmt.Sprintf("/api/orders/%d", orderID), map[string]string{
		"status": "in_progress",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	require.NoError(t, config.DB.First(&order, orderID).Error)
	assert.Equal(t, models.StatusInProgress, order.Status)
}
