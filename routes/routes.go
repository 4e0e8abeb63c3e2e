package routes

import (
	"net/http"
	"strings"

	"restaurant-pos-api/handlers"
	"restaurant-pos-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(middleware.Identify())
	{
		// Auth
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)
		api.POST("/logout", handlers.Logout)

		// Menu catalog
		api.GET("/dishes", handlers.ListDishes)
		api.POST("/dishes", handlers.CreateDish)
		api.POST("/dishes/bulk", handlers.BulkCreateDishes)
		api.PUT("/dishes/:id", handlers.UpdateDish)
		api.DELETE("/dishes/:id", handlers.DeleteDish)

		// Order lifecycle
		api.GET("/orders", handlers.ListOrders)
		api.GET("/orders/kitchen", handlers.KitchenOrders)
		api.GET("/orders/:id", handlers.GetOrder)
		api.POST("/orders", handlers.CreateOrder)
		api.PATCH("/orders/:id", handlers.UpdateOrderStatus)
		api.PUT("/orders/:id", handlers.AppendToOrder)

		// Payments & reporting
		api.GET("/payments", handlers.ListPayments)
		api.POST("/payments", handlers.RecordPayments)
		api.GET("/payments/report", handlers.PaymentsReport)

		// Staff accounts
		api.GET("/users", handlers.ListUsers)
		api.PUT("/users/:id", handlers.UpdateUser)
		api.DELETE("/users/:id", handlers.DeleteUser)
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API route not found"})
			return
		}
		c.String(http.StatusNotFound, "not found")
	})
}
