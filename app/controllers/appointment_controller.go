package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/RafaelMoura/SalonFlow/app/models"
	"github.com/RafaelMoura/SalonFlow/app/repository"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/entitlements"
)

type bookingRequest struct {
	ClientID   uint      `json:"client_id"`
	EmployeeID uint      `json:"employee_id"`
	ServiceID  uint      `json:"service_id"`
	StartsAt   time.Time `json:"starts_at"`
	Notes      string    `json:"notes"`
}

// HandleListAppointments returns a salon's appointments within a time range.
// Defaults to the next 7 days when no range is given.
func HandleListAppointments(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}

	from := time.Now()
	to := from.AddDate(0, 0, 7)
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return badRequest(c, "invalid from timestamp")
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return badRequest(c, "invalid to timestamp")
		}
		to = parsed
	}

	appointments, err := repository.GetGlobalFactory().GetAppointmentRepository().GetByMerchantID(uint(merchantID), from, to)
	if err != nil {
		return internalError(c, "could not list appointments")
	}
	return c.JSON(fiber.Map{"appointments": appointments})
}

// HandleCreateAppointment books a slot. The end time is derived from the
// service's duration, the slot must be free for the employee, and the start
// must fall within the plan's booking horizon.
func HandleCreateAppointment(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}

	var req bookingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.StartsAt.Before(time.Now()) {
		return badRequest(c, "appointments cannot start in the past")
	}

	repos := repository.GetGlobalRepositories()

	service, err := repos.SalonService.GetByID(req.ServiceID)
	if err != nil || service.MerchantID != uint(merchantID) || !service.Active {
		return notFound(c, "service not found")
	}
	employee, err := repos.Employee.GetByID(req.EmployeeID)
	if err != nil || employee.MerchantID != uint(merchantID) || !employee.Active {
		return notFound(c, "employee not found")
	}
	client, err := repos.Client.GetByID(req.ClientID)
	if err != nil || client.MerchantID != uint(merchantID) {
		return notFound(c, "client not found")
	}

	plan, err := merchantPlan(uint(merchantID))
	if err != nil {
		return notFound(c, "merchant not found")
	}
	horizon := entitlements.LimitsFor(plan).BookingHorizonDays
	if horizon > 0 && req.StartsAt.After(time.Now().AddDate(0, 0, horizon)) {
		return planLimitResponse(c, "booking date is beyond the plan's horizon")
	}

	appointment := models.Appointment{
		MerchantID: uint(merchantID),
		ClientID:   req.ClientID,
		EmployeeID: req.EmployeeID,
		ServiceID:  req.ServiceID,
		StartsAt:   req.StartsAt,
		EndsAt:     req.StartsAt.Add(time.Duration(service.DurationMinutes) * time.Minute),
		Status:     models.AppointmentStatusScheduled,
		Notes:      req.Notes,
	}
	if err := appointment.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	conflicts, err := repos.Appointment.FindOverlapping(req.EmployeeID, appointment.StartsAt, appointment.EndsAt)
	if err != nil {
		return internalError(c, "could not check availability")
	}
	if len(conflicts) > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "slot_taken",
			"message": "the employee already has an appointment in this time slot",
		})
	}

	if err := repos.Appointment.Create(&appointment); err != nil {
		return internalError(c, "could not create appointment")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"appointment": appointment})
}

// HandleUpdateAppointmentStatus moves an appointment through its states
// (confirmed, completed, cancelled).
func HandleUpdateAppointmentStatus(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}
	appointmentID, err := c.ParamsInt("appointmentID")
	if err != nil || appointmentID <= 0 {
		return badRequest(c, "invalid appointment id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	switch req.Status {
	case models.AppointmentStatusScheduled, models.AppointmentStatusConfirmed,
		models.AppointmentStatusCompleted, models.AppointmentStatusCancelled:
	default:
		return badRequest(c, "unknown appointment status")
	}

	repo := repository.GetGlobalFactory().GetAppointmentRepository()
	appointment, err := repo.GetByID(uint(appointmentID))
	if err != nil || appointment.MerchantID != uint(merchantID) {
		return notFound(c, "appointment not found")
	}

	if err := repo.UpdateStatus(uint(appointmentID), req.Status); err != nil {
		return internalError(c, "could not update appointment")
	}
	appointment.Status = req.Status
	return c.JSON(fiber.Map{"appointment": appointment})
}

// HandleEmployeeAgenda returns one employee's appointments for a single day.
func HandleEmployeeAgenda(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}
	employeeID, err := c.ParamsInt("employeeID")
	if err != nil || employeeID <= 0 {
		return badRequest(c, "invalid employee id")
	}

	day := time.Now()
	if v := c.Query("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return badRequest(c, "invalid date, expected YYYY-MM-DD")
		}
		day = parsed
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	repos := repository.GetGlobalRepositories()
	employee, err := repos.Employee.GetByID(uint(employeeID))
	if err != nil || employee.MerchantID != uint(merchantID) {
		return notFound(c, "employee not found")
	}

	appointments, err := repos.Appointment.GetByEmployeeID(uint(employeeID), from, to)
	if err != nil {
		return internalError(c, "could not load agenda")
	}
	return c.JSON(fiber.Map{"employee": employee, "appointments": appointments})
}
