package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"

	"github.com/RafaelMoura/SalonFlow/app/controllers"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/env"
)

type AdminRouter struct {
}

func (h AdminRouter) InstallRouter(app *fiber.App) {
	admin := app.Group("/api/v1/admin", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("ADMIN_USER", "admin"): env.GetEnv("ADMIN_PASSWORD", "admin"),
		},
	}))

	admin.Get("/merchants", controllers.HandleAdminListMerchants)
	admin.Post("/merchants/:merchantID/grant", controllers.HandleAdminGrantAccess)
	admin.Post("/merchants/:merchantID/renew", controllers.HandleAdminRenewAccess)
	admin.Post("/merchants/:merchantID/suspend", controllers.HandleAdminSuspendAccess)
	admin.Put("/merchants/:merchantID/fee", controllers.HandleAdminSetFee)
	admin.Post("/sweep", controllers.HandleAdminSweep)
}

func NewAdminRouter() *AdminRouter {
	return &AdminRouter{}
}
