package health

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handlers answers liveness checks for the DB and Redis.
type Handlers struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// GET /health/json
func (h *Handlers) JSON(c *fiber.Ctx) error {
	db := "not configured"
	if h.DB != nil {
		db = "up"
		if sqlDB, err := h.DB.DB(); err != nil || sqlDB.Ping() != nil {
			db = "down"
		}
	}
	rdb := "not configured"
	if h.Rdb != nil {
		rdb = "up"
		if err := h.Rdb.Ping(c.Context()).Err(); err != nil {
			rdb = "down"
		}
	}
	status := fiber.StatusOK
	if db == "down" || rdb == "down" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   "ok",
		"database": db,
		"redis":    rdb,
	})
}
