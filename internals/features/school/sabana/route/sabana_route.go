package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	sabanaController "sabana_backend/internals/features/school/sabana/controller"
)

// SabanaRoutes mounts the engine's three operations on an authenticated
// group. Resource-level authorization lives in the services.
func SabanaRoutes(r fiber.Router, db *gorm.DB, rdb *redis.Client) {
	ctrl := sabanaController.NewSabanaController(db, rdb)

	r.Get("/sabana/:level_id/:cycle_id", ctrl.GetSabana)
	r.Put("/grades", ctrl.WriteGrade)
	r.Post("/classes/:class_id/publish", ctrl.PublishClass)
}
