package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/RafaelMoura/SalonFlow/app/controllers"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "SalonFlow API",
		})
	})

	v1 := api.Group("/v1")

	// merchant onboarding and status
	v1.Post("/merchants", controllers.HandleMerchantSignup)
	v1.Get("/merchants/:merchantID", controllers.HandleMerchantStatus)

	// payment flow
	v1.Post("/merchants/:merchantID/charges", controllers.HandleCreateCharge)
	v1.Get("/charges/:txID", controllers.HandleChargeStatus)
	v1.Post("/webhooks/pix", controllers.HandlePixWebhook)

	// catalog reads stay open so a suspended salon's public page still renders
	v1.Get("/merchants/:merchantID/services", controllers.HandleListServices)
	v1.Get("/merchants/:merchantID/employees", controllers.HandleListEmployees)
	v1.Get("/merchants/:merchantID/working-hours", controllers.HandleListWorkingHours)

	// everything below requires a live subscription
	gated := v1.Group("/merchants/:merchantID", middleware.RequireLiveAccess())

	manage := middleware.RequireCatalogManager()
	gated.Post("/services", manage, controllers.HandleCreateService)
	gated.Put("/services/:serviceID", manage, controllers.HandleUpdateService)
	gated.Delete("/services/:serviceID", manage, controllers.HandleDeleteService)

	gated.Post("/employees", manage, controllers.HandleCreateEmployee)
	gated.Put("/employees/:employeeID", manage, controllers.HandleUpdateEmployee)
	gated.Delete("/employees/:employeeID", manage, controllers.HandleDeleteEmployee)
	gated.Get("/employees/:employeeID/agenda", controllers.HandleEmployeeAgenda)

	gated.Post("/working-hours", manage, controllers.HandleCreateWorkingHour)
	gated.Delete("/working-hours/:hourID", manage, controllers.HandleDeleteWorkingHour)

	gated.Get("/clients", controllers.HandleListClients)
	gated.Post("/clients", controllers.HandleCreateClient)
	gated.Put("/clients/:clientID", controllers.HandleUpdateClient)
	gated.Delete("/clients/:clientID", controllers.HandleDeleteClient)

	gated.Get("/appointments", controllers.HandleListAppointments)
	gated.Post("/appointments", middleware.RequireBooker(), controllers.HandleCreateAppointment)
	gated.Patch("/appointments/:appointmentID/status", controllers.HandleUpdateAppointmentStatus)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
