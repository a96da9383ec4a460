package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RafaelMoura/SalonFlow/app/models"
	"github.com/RafaelMoura/SalonFlow/app/repository"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/entitlements"
)

// planLimitResponse is the 403 body returned when a free-tier cap is hit.
func planLimitResponse(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error":   "plan_limit_reached",
		"message": msg,
	})
}

func merchantPlan(merchantID uint) (entitlements.Plan, error) {
	merchant, err := repository.GetGlobalFactory().GetMerchantRepository().GetByID(merchantID)
	if err != nil {
		return entitlements.PlanFree, err
	}
	return entitlements.PlanFor(merchant), nil
}

// HandleListServices returns a salon's service catalog.
func HandleListServices(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}

	services, err := repository.GetGlobalFactory().GetSalonServiceRepository().GetByMerchantID(uint(merchantID))
	if err != nil {
		return internalError(c, "could not list services")
	}
	return c.JSON(fiber.Map{"services": services})
}

// HandleCreateService adds a service to the catalog, subject to the plan's cap.
func HandleCreateService(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}

	var service models.SalonService
	if err := c.BodyParser(&service); err != nil {
		return badRequest(c, "invalid request body")
	}
	service.ID = 0
	service.MerchantID = uint(merchantID)
	if err := service.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	plan, err := merchantPlan(uint(merchantID))
	if err != nil {
		return notFound(c, "merchant not found")
	}
	repos := repository.GetGlobalRepositories()
	count, err := repos.SalonService.CountByMerchantID(uint(merchantID))
	if err != nil {
		return internalError(c, "could not check service count")
	}
	if !entitlements.CanAddService(plan, int(count)) {
		return planLimitResponse(c, "the free plan allows a limited service catalog; upgrade to VIP for more")
	}

	if err := repos.SalonService.Create(&service); err != nil {
		return internalError(c, "could not create service")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"service": service})
}

// HandleUpdateService updates a catalog entry.
func HandleUpdateService(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}
	serviceID, err := c.ParamsInt("serviceID")
	if err != nil || serviceID <= 0 {
		return badRequest(c, "invalid service id")
	}

	repo := repository.GetGlobalFactory().GetSalonServiceRepository()
	service, err := repo.GetByID(uint(serviceID))
	if err != nil || service.MerchantID != uint(merchantID) {
		return notFound(c, "service not found")
	}

	if err := c.BodyParser(service); err != nil {
		return badRequest(c, "invalid request body")
	}
	service.ID = uint(serviceID)
	service.MerchantID = uint(merchantID)
	if err := service.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repo.Update(service); err != nil {
		return internalError(c, "could not update service")
	}
	return c.JSON(fiber.Map{"service": service})
}

// HandleDeleteService soft-deletes a catalog entry.
func HandleDeleteService(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}
	serviceID, err := c.ParamsInt("serviceID")
	if err != nil || serviceID <= 0 {
		return badRequest(c, "invalid service id")
	}

	repo := repository.GetGlobalFactory().GetSalonServiceRepository()
	service, err := repo.GetByID(uint(serviceID))
	if err != nil || service.MerchantID != uint(merchantID) {
		return notFound(c, "service not found")
	}
	if err := repo.Delete(uint(serviceID)); err != nil {
		return internalError(c, "could not delete service")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListEmployees returns a salon's staff.
func HandleListEmployees(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}

	employees, err := repository.GetGlobalFactory().GetEmployeeRepository().GetByMerchantID(uint(merchantID))
	if err != nil {
		return internalError(c, "could not list employees")
	}
	return c.JSON(fiber.Map{"employees": employees})
}

// HandleCreateEmployee adds a staff member, subject to the plan's cap.
func HandleCreateEmployee(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}

	var employee models.Employee
	if err := c.BodyParser(&employee); err != nil {
		return badRequest(c, "invalid request body")
	}
	employee.ID = 0
	employee.MerchantID = uint(merchantID)
	employee.Active = true
	if err := employee.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	plan, err := merchantPlan(uint(merchantID))
	if err != nil {
		return notFound(c, "merchant not found")
	}
	repos := repository.GetGlobalRepositories()
	count, err := repos.Employee.CountByMerchantID(uint(merchantID))
	if err != nil {
		return internalError(c, "could not check employee count")
	}
	if !entitlements.CanAddEmployee(plan, int(count)) {
		return planLimitResponse(c, "the free plan allows a limited number of employees; upgrade to VIP for more")
	}

	if err := repos.Employee.Create(&employee); err != nil {
		return internalError(c, "could not create employee")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"employee": employee})
}

// HandleUpdateEmployee updates a staff member.
func HandleUpdateEmployee(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}
	employeeID, err := c.ParamsInt("employeeID")
	if err != nil || employeeID <= 0 {
		return badRequest(c, "invalid employee id")
	}

	repo := repository.GetGlobalFactory().GetEmployeeRepository()
	employee, err := repo.GetByID(uint(employeeID))
	if err != nil || employee.MerchantID != uint(merchantID) {
		return notFound(c, "employee not found")
	}

	if err := c.BodyParser(employee); err != nil {
		return badRequest(c, "invalid request body")
	}
	employee.ID = uint(employeeID)
	employee.MerchantID = uint(merchantID)
	if err := employee.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repo.Update(employee); err != nil {
		return internalError(c, "could not update employee")
	}
	return c.JSON(fiber.Map{"employee": employee})
}

// HandleDeleteEmployee soft-deletes a staff member.
func HandleDeleteEmployee(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}
	employeeID, err := c.ParamsInt("employeeID")
	if err != nil || employeeID <= 0 {
		return badRequest(c, "invalid employee id")
	}

	repo := repository.GetGlobalFactory().GetEmployeeRepository()
	employee, err := repo.GetByID(uint(employeeID))
	if err != nil || employee.MerchantID != uint(merchantID) {
		return notFound(c, "employee not found")
	}
	if err := repo.Delete(uint(employeeID)); err != nil {
		return internalError(c, "could not delete employee")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListWorkingHours returns a salon's opening intervals.
func HandleListWorkingHours(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}

	hours, err := repository.GetGlobalFactory().GetWorkingHourRepository().GetByMerchantID(uint(merchantID))
	if err != nil {
		return internalError(c, "could not list working hours")
	}
	return c.JSON(fiber.Map{"working_hours": hours})
}

// HandleCreateWorkingHour adds an opening interval for a weekday.
func HandleCreateWorkingHour(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}

	var hour models.WorkingHour
	if err := c.BodyParser(&hour); err != nil {
		return badRequest(c, "invalid request body")
	}
	hour.ID = 0
	hour.MerchantID = uint(merchantID)
	if err := hour.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repository.GetGlobalFactory().GetWorkingHourRepository().Create(&hour); err != nil {
		return internalError(c, "could not create working hour")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"working_hour": hour})
}

// HandleDeleteWorkingHour removes an opening interval.
func HandleDeleteWorkingHour(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}
	hourID, err := c.ParamsInt("hourID")
	if err != nil || hourID <= 0 {
		return badRequest(c, "invalid working hour id")
	}

	if err := repository.GetGlobalFactory().GetWorkingHourRepository().Delete(uint(hourID)); err != nil {
		return internalError(c, "could not delete working hour")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
