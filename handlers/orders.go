package handlers

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"restaurant-pos-api/config"
	"restaurant-pos-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateOrderRequest struct {
	Dishes []struct {
		DishID uint `json:"dish_id" binding:"required"`
	} `json:"dishes" binding:"required,min=1"`
	UserID     uint   `json:"user_id" binding:"required"`
	Mesa       string `json:"mesa"`
	WaiterName string `json:"waiter_name"`
	Notes      string `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

type AppendToOrderRequest struct {
	NewDishes []struct {
		DishID uint `json:"dish_id" binding:"required"`
	} `json:"newDishes"`
	Notes      *string `json:"notes"`
	WaiterName *string `json:"waiter_name"`
}

// orderLine is one dish on an order as shown to staff, priced at the
// dish's current catalog price.
type orderLine struct {
	Name  string          `json:"name"`
	Type  models.DishType `json:"type"`
	Price float64         `json:"price"`
}

// OrderView flattens an order with its aggregated item lines
type OrderView struct {
	models.Order
	Dishes    []orderLine `json:"dishes"`
	Total     float64     `json:"total"`
	PaymentID *uint       `json:"payment_id"`
}

func shapeOrder(o models.Order) OrderView {
	sort.Slice(o.Items, func(i, j int) bool { return o.Items[i].ID < o.Items[j].ID })

	lines := make([]orderLine, 0, len(o.Items))
	var total float64
	for _, item := range o.Items {
		lines = append(lines, orderLine{
			Name:  item.Dish.Name,
			Type:  item.Dish.Type,
			Price: item.Dish.Price,
		})
		total += item.Dish.Price
	}

	var paymentID *uint
	for i := range o.Payments {
		if paymentID == nil || o.Payments[i].ID > *paymentID {
			paymentID = &o.Payments[i].ID
		}
	}

	return OrderView{Order: o, Dishes: lines, Total: total, PaymentID: paymentID}
}

// CreateOrder opens a new table order with its initial dishes. The per-day
// order number is computed and written inside one transaction together
// with the order and its items.
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No dishes were provided"})
		return
	}

	items := make([]models.OrderItem, 0, len(req.Dishes))
	for _, d := range req.Dishes {
		items = append(items, models.OrderItem{DishID: d.DishID, Status: models.ItemPending})
	}

	order := models.Order{
		UserID:     req.UserID,
		Mesa:       req.Mesa,
		WaiterName: req.WaiterName,
		Notes:      req.Notes,
		Status:     models.StatusPending,
		Items:      items,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

		// Daily numbers reset each calendar day
		var next int
		if err := tx.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ?", dayStart, dayStart.AddDate(0, 0, 1)).
			Select("COALESCE(MAX(daily_order_number), 0) + 1").
			Scan(&next).Error; err != nil {
			return err
		}
		order.DailyOrderNumber = next

		return tx.Create(&order).Error
	})
	if err != nil {
		slog.Error("failed to create order", "user_id", req.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId":          order.ID,
		"dailyOrderNumber": order.DailyOrderNumber,
	})
}

// ListOrders returns orders with aggregated dish lines. Supports status,
// date, month and unpaid filters. Orders whose items were all removed
// (dish deletion) are omitted, matching the old join behavior.
func ListOrders(c *gin.Context) {
	query := config.DB.Preload("Items.Dish").Preload("Payments")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		start, end, err := dayRange(date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		query = query.Where("created_at >= ? AND created_at < ?", start, end)
	}
	if month := c.Query("month"); month != "" {
		start, end, err := monthRange(month)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		query = query.Where("created_at >= ? AND created_at < ?", start, end)
	}

	var orders []models.Order
	if err := query.Order("created_at asc, mesa asc").Find(&orders).Error; err != nil {
		slog.Error("failed to list orders", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	unpaidOnly := c.Query("unpaid") == "true"
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		if len(o.Items) == 0 {
			continue
		}
		if unpaidOnly && len(o.Payments) > 0 {
			continue
		}
		views = append(views, shapeOrder(o))
	}

	c.JSON(http.StatusOK, views)
}

// KitchenOrders returns orders that still have pending items, each showing
// only its unserved items. An order served once and then extended shows
// just the newly added dishes.
func KitchenOrders(c *gin.Context) {
	pendingOrderIDs := config.DB.Model(&models.OrderItem{}).
		Select("order_id").
		Where("status = ?", models.ItemPending)

	var orders []models.Order
	err := config.DB.
		Preload("Items", "status = ?", models.ItemPending).
		Preload("Items.Dish").
		Where("id IN (?)", pendingOrderIDs).
		Order("created_at asc, mesa asc").
		Find(&orders).Error
	if err != nil {
		slog.Error("failed to list kitchen orders", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch kitchen orders"})
		return
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, shapeOrder(o))
	}
	c.JSON(http.StatusOK, views)
}

// GetOrder returns a single order with its dish lines
func GetOrder(c *gin.Context) {
	var order models.Order
	err := config.DB.
		Preload("Items.Dish").
		Preload("Payments").
		First(&order, c.Param("id")).Error
	if err != nil || len(order.Items) == 0 {
		// An order whose items were all removed is treated as gone,
		// matching the list endpoints
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Order not found",
			"details": "No order with ID " + c.Param("id"),
		})
		return
	}
	c.JSON(http.StatusOK, shapeOrder(order))
}

// UpdateOrderStatus overwrites the order's workflow status. Marking an
// order served also flips its still-pending items to served, in the same
// transaction; the reverse cascade never happens.
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("status", req.Status).Error; err != nil {
			return err
		}
		if req.Status == models.StatusServed {
			return tx.Model(&models.OrderItem{}).
				Where("order_id = ? AND status = ?", order.ID, models.ItemPending).
				Update("status", models.ItemServed).Error
		}
		return nil
	})
	if err != nil {
		slog.Error("failed to update order status", "order_id", order.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

// AppendToOrder updates notes/waiter and adds dishes to an existing order.
// The order's own status is left untouched so a served order sends only
// the new items back to the kitchen.
func AppendToOrder(c *gin.Context) {
	var req AppendToOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if req.Notes != nil {
			updates["notes"] = *req.Notes
		}
		if req.WaiterName != nil {
			updates["waiter_name"] = *req.WaiterName
		}
		if len(updates) > 0 {
			if err := tx.Model(&order).Updates(updates).Error; err != nil {
				return err
			}
		}

		if len(req.NewDishes) > 0 {
			items := make([]models.OrderItem, 0, len(req.NewDishes))
			for _, d := range req.NewDishes {
				items = append(items, models.OrderItem{
					OrderID: order.ID,
					DishID:  d.DishID,
					Status:  models.ItemPending,
				})
			}
			return tx.Create(&items).Error
		}
		return nil
	})
	if err != nil {
		slog.Error("failed to update order", "order_id", order.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order", "details": err.Error()})
		return
	}

	if len(req.NewDishes) > 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Order updated, new dishes sent to kitchen"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated successfully"})
}
