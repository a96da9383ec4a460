package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/RafaelMoura/SalonFlow/app/repository"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/cache"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/database"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/env"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/router"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/scheduler"
)

func main() {
	app := NewApplication()

	scheduler.GetManager().Start()
	defer scheduler.GetManager().Stop()

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	app := fiber.New(fiber.Config{
		AppName: "SalonFlow",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("ADMIN_USER", "admin"): env.GetEnv("ADMIN_PASSWORD", "admin"),
		},
	}), monitor.New())

	// SWAGGER / OPENAPI
	basePaths := []string{
		"./",
		"../../",
		"../../../",
	}
	for _, path := range basePaths {
		if _, err := os.Stat(path + "public/docs/v1/openapi.yml"); !os.IsNotExist(err) {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/docs/api/",
				FilePath: path + "public/docs/v1/openapi.yml",
				Path:     "v1",
			}))
			break
		}
	}

	// ROUTER
	router.InstallRouter(app)

	return app
}
