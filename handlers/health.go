package handlers

import (
	"net/http"

	"restaurant-pos-api/config"

	"github.com/gin-gonic/gin"
)

// Health reports service liveness and database reachability
func Health(c *gin.Context) {
	dbStatus := "up"
	if sqlDB, err := config.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}

	status := http.StatusOK
	if dbStatus == "down" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   "healthy",
		"service":  "Restaurant POS API",
		"database": dbStatus,
	})
}
