package bootstrap

import (
	"autovad-backend/internal/config"
	"autovad-backend/internal/interfaces/router"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New loads configuration and assembles the application. Used by the
// server entrypoint and by serverless handlers that need the app
// without the listener.
func New() (*fiber.App, *gorm.DB, *redis.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	app, db, rdb, err := router.CreateApp(cfg)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return app, db, rdb, cfg, nil
}
