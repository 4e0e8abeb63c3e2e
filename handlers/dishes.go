package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"restaurant-pos-api/config"
	"restaurant-pos-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateDishRequest struct {
	Name     string          `json:"name" binding:"required"`
	Type     models.DishType `json:"type"`
	Price    float64         `json:"price" binding:"required,gt=0"`
	ImageURL *string         `json:"image_url"`
}

// UpdateDishRequest is a patch: only non-nil fields are written, and only
// these four columns can ever be touched.
type UpdateDishRequest struct {
	Name     *string          `json:"name"`
	Price    *float64         `json:"price"`
	Type     *models.DishType `json:"type"`
	ImageURL *string          `json:"image_url"`
}

// ListDishes returns the menu, optionally filtered by meal type. Types
// outside the listable set fall through to an unfiltered listing.
func ListDishes(c *gin.Context) {
	query := config.DB
	if t := models.DishType(c.Query("type")); t != "" && models.ListableDishTypes[t] {
		query = query.Where("type = ?", t)
	}

	var dishes []models.Dish
	if err := query.Find(&dishes).Error; err != nil {
		slog.Error("failed to list dishes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dishes"})
		return
	}
	c.JSON(http.StatusOK, dishes)
}

// CreateDish adds a single menu entry
func CreateDish(c *gin.Context) {
	var req CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and price are required"})
		return
	}

	dishType := req.Type
	if dishType == "" {
		dishType = models.TypeMain
	}
	if !models.UpdatableDishTypes[dishType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dish type"})
		return
	}

	dish := models.Dish{
		Name:     req.Name,
		Type:     dishType,
		Price:    req.Price,
		ImageURL: req.ImageURL,
	}
	if err := config.DB.Create(&dish).Error; err != nil {
		slog.Error("failed to create dish", "name", req.Name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add dish", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Dish added successfully",
		"id":      dish.ID,
	})
}

// BulkCreateDishes imports a batch of dishes. Every element is validated
// before anything is inserted; the insert itself is one multi-row statement.
func BulkCreateDishes(c *gin.Context) {
	var reqs []CreateDishRequest
	if err := c.ShouldBindJSON(&reqs); err != nil || len(reqs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An array of dishes is required"})
		return
	}

	dishes := make([]models.Dish, 0, len(reqs))
	for i, req := range reqs {
		if req.Name == "" || req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Dish %d: name and price are required", i+1),
			})
			return
		}
		dishType := req.Type
		if dishType == "" {
			dishType = models.TypeMain
		}
		if !models.UpdatableDishTypes[dishType] {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Dish %d: invalid dish type", i+1),
			})
			return
		}
		dishes = append(dishes, models.Dish{
			Name:     req.Name,
			Type:     dishType,
			Price:    req.Price,
			ImageURL: req.ImageURL,
		})
	}

	if err := config.DB.Create(&dishes).Error; err != nil {
		slog.Error("failed to import dishes", "count", len(dishes), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import dishes", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Dishes imported successfully",
		"insertedCount": len(dishes),
	})
}

// UpdateDish applies a partial update to one dish
func UpdateDish(c *gin.Context) {
	var req UpdateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Type != nil && !models.UpdatableDishTypes[*req.Type] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dish type"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.ImageURL != nil {
		updates["image_url"] = req.ImageURL
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields provided to update"})
		return
	}

	var dish models.Dish
	if err := config.DB.First(&dish, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		return
	}

	if err := config.DB.Model(&dish).Updates(updates).Error; err != nil {
		slog.Error("failed to update dish", "dish_id", dish.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update dish", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Dish updated successfully"})
}

// DeleteDish removes a dish, clearing referencing order items first
func DeleteDish(c *gin.Context) {
	var dish models.Dish
	if err := config.DB.First(&dish, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dish_id = ?", dish.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&dish).Error
	})
	if err != nil {
		slog.Error("failed to delete dish", "dish_id", dish.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete dish", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Dish deleted successfully"})
}
