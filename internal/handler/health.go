package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health godoc
// @Summary Service liveness and dependency status
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
//
// Reports "ok" only when both Postgres and Redis answer within the check
// timeout; a degraded dependency turns the response into 503 so load
// balancers stop routing here.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		database := "up"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			database = "down"
		}

		cache := "up"
		if rdb == nil || rdb.Ping(ctx).Err() != nil {
			cache = "down"
		}

		status, code := "ok", http.StatusOK
		if database == "down" || cache == "down" {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":   status,
			"service":  "almox",
			"database": database,
			"redis":    cache,
		})
	}
}
