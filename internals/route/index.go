package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"sabana_backend/internals/configs"
	sabanaRoute "sabana_backend/internals/features/school/sabana/route"
	authMiddleware "sabana_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client) {
	BaseRoutes(app, db)

	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	log.Println("[INFO] Setting up SabanaRoutes...")
	sabanaRoute.SabanaRoutes(private, db, rdb)
}
