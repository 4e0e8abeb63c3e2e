package handlers

import (
	"log/slog"
	"net/http"

	"restaurant-pos-api/config"
	"restaurant-pos-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PaymentRequest struct {
	OrderID uint    `json:"order_id"`
	Total   float64 `json:"total"`
	Method  string  `json:"method"`
}

// PaymentView is a payment row with its owning order's table and waiter
type PaymentView struct {
	models.Payment
	Mesa       string `json:"mesa"`
	WaiterName string `json:"waiter_name"`
}

type reportProduct struct {
	Name  string          `json:"name"`
	Price float64         `json:"price"`
	Type  models.DishType `json:"type"`
}

type reportOrder struct {
	OrderID          uint            `json:"order_id"`
	DailyOrderNumber int             `json:"daily_order_number"`
	Mesa             string          `json:"mesa"`
	Waiter           string          `json:"waiter"`
	Method           string          `json:"method"`
	Total            float64         `json:"total"`
	Products         []reportProduct `json:"products"`
}

type reportDay struct {
	Date       string        `json:"date"`
	Orders     []reportOrder `json:"orders"`
	DayTotal   float64       `json:"day_total"`
	OrderCount int           `json:"order_count"`
}

// RecordPayments records a batch of payments. Each payment is its own unit
// of work: the insert and the order's flip to paid commit or roll back
// together, and one failing payment does not undo the others.
func RecordPayments(c *gin.Context) {
	var payments []PaymentRequest
	if err := c.ShouldBindJSON(&payments); err != nil || len(payments) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No payments were provided"})
		return
	}

	for _, p := range payments {
		if p.OrderID == 0 || p.Total <= 0 || p.Method == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment data"})
			return
		}
	}

	processed := 0
	var failed []gin.H
	for _, p := range payments {
		err := config.DB.Transaction(func(tx *gorm.DB) error {
			payment := models.Payment{OrderID: p.OrderID, Total: p.Total, Method: p.Method}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
			return tx.Model(&models.Order{}).
				Where("id = ?", p.OrderID).
				Update("status", models.StatusPaid).Error
		})
		if err != nil {
			slog.Error("failed to record payment", "order_id", p.OrderID, "error", err)
			failed = append(failed, gin.H{"order_id": p.OrderID, "error": err.Error()})
			continue
		}
		processed++
	}

	if len(failed) > 0 {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Some payments could not be processed",
			"processed": processed,
			"failed":    failed,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Payments processed successfully",
		"processed": processed,
	})
}

// ListPayments returns payments with order metadata, newest first
func ListPayments(c *gin.Context) {
	query := config.DB.Preload("Order")

	if date := c.Query("date"); date != "" {
		start, end, err := dayRange(date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		query = query.Where("paid_at >= ? AND paid_at < ?", start, end)
	}
	if month := c.Query("month"); month != "" {
		start, end, err := monthRange(month)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		query = query.Where("paid_at >= ? AND paid_at < ?", start, end)
	}

	var payments []models.Payment
	if err := query.Order("paid_at desc").Find(&payments).Error; err != nil {
		slog.Error("failed to list payments", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	views := make([]PaymentView, 0, len(payments))
	for _, p := range payments {
		views = append(views, PaymentView{
			Payment:    p,
			Mesa:       p.Order.Mesa,
			WaiterName: p.Order.WaiterName,
		})
	}
	c.JSON(http.StatusOK, views)
}

// PaymentsReport builds the daily or monthly sales report: payments grouped
// by calendar date, then by order within the date, each order carrying its
// product lines. Per-date and grand totals come from the payment amounts.
func PaymentsReport(c *gin.Context) {
	reportType := c.Query("type")
	if reportType == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing parameters",
			"details": "The type parameter is required",
		})
		return
	}
	if reportType != "daily" && reportType != "monthly" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid report type",
			"details": `The type must be "daily" or "monthly"`,
		})
		return
	}

	reportDate := c.Query("date")
	if reportDate == "" {
		reportDate = today()
	}

	var start, end interface{}
	if reportType == "daily" {
		s, e, err := dayRange(reportDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		start, end = s, e
	} else {
		s, e, err := monthRange(reportDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		start, end = s, e
	}

	var payments []models.Payment
	err := config.DB.
		Preload("Order").
		Preload("Order.Items.Dish").
		Where("paid_at >= ? AND paid_at < ?", start, end).
		Order("paid_at asc, id asc").
		Find(&payments).Error
	if err != nil {
		slog.Error("failed to generate report", "type", reportType, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report", "details": err.Error()})
		return
	}

	byDate := map[string]*reportDay{}
	var dayOrder []string
	var grandTotal float64

	for _, p := range payments {
		if len(p.Order.Items) == 0 {
			continue
		}

		date := p.PaidAt.Format("2006-01-02")
		day, ok := byDate[date]
		if !ok {
			day = &reportDay{Date: date, Orders: []reportOrder{}}
			byDate[date] = day
			dayOrder = append(dayOrder, date)
		}

		// One entry per order per date, even with repeated payments
		seen := false
		for _, o := range day.Orders {
			if o.OrderID == p.OrderID {
				seen = true
				break
			}
		}
		if seen {
			continue
		}

		products := make([]reportProduct, 0, len(p.Order.Items))
		for _, item := range p.Order.Items {
			products = append(products, reportProduct{
				Name:  item.Dish.Name,
				Price: item.Dish.Price,
				Type:  item.Dish.Type,
			})
		}

		day.Orders = append(day.Orders, reportOrder{
			OrderID:          p.OrderID,
			DailyOrderNumber: p.Order.DailyOrderNumber,
			Mesa:             p.Order.Mesa,
			Waiter:           p.Order.WaiterName,
			Method:           p.Method,
			Total:            p.Total,
			Products:         products,
		})
		day.DayTotal += p.Total
		day.OrderCount++
		grandTotal += p.Total
	}

	data := make([]reportDay, 0, len(dayOrder))
	for _, date := range dayOrder {
		data = append(data, *byDate[date])
	}

	c.JSON(http.StatusOK, gin.H{
		"type":        reportType,
		"date":        reportDate,
		"grand_total": grandTotal,
		"data":        data,
	})
}
