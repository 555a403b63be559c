package router

import (
	"net/http"
	"time"

	carsvc "autovad-backend/internal/application/cars"
	socialsvc "autovad-backend/internal/application/social"
	authsvc "autovad-backend/internal/auth"
	"autovad-backend/internal/config"
	"autovad-backend/internal/infrastructure/database"
	authhandler "autovad-backend/internal/interfaces/handlers/auth"
	carshandler "autovad-backend/internal/interfaces/handlers/cars"
	healthhandler "autovad-backend/internal/interfaces/handlers/health"
	"autovad-backend/internal/middleware"
	"autovad-backend/internal/ratelimit"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionHandler, rdb, err := middleware.Session(middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	})
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             nil,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		hh.DB = &gormDBPinger{db: db}
	}

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}

	var userFinder authsvc.UserFinder
	if db != nil {
		userFinder = &authsvc.GormUserFinder{DB: db}
	}
	ah := &authhandler.Handlers{
		DB:         db,
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/register", ah.Register)
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)

	if db != nil {
		// Per-IP limiter for the public listing surface. Backed by Redis
		// when available so the window survives restarts and is shared
		// between instances.
		var limiter ratelimit.Store
		if rdb != nil {
			limiter = ratelimit.NewRedisStore(rdb, cfg.RateLimitPerMinute, time.Minute)
		} else {
			limiter = ratelimit.NewMemoryStore(cfg.RateLimitPerMinute, time.Minute)
		}

		ch := &carshandler.Handlers{
			Cars:   &carsvc.Service{DB: db},
			Social: &socialsvc.Service{DB: db},
		}
		cg := app.Group("/api/v1/cars", middleware.RateLimit(limiter))
		cg.Get("/", ch.ListCars)
		cg.Get("/:id", ch.GetCar)
		cg.Post("/:id/view", ch.RecordView)
		cg.Post("/:id/like", middleware.RequireAuth(), ch.LikeCar)
		cg.Delete("/:id/like", middleware.RequireAuth(), ch.UnlikeCar)
	}

	return app, db, rdb, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
