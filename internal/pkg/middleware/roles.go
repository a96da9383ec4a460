package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RafaelMoura/SalonFlow/app/models"
)

// RoleHeader carries the acting role, set by the frontend after login.
const RoleHeader = "X-Actor-Role"

// RequireCapability checks the acting role against a capability predicate.
// Unknown roles are rejected outright.
func RequireCapability(allowed func(models.Role) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := models.Role(c.Get(RoleHeader))
		if !role.Valid() || !allowed(role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "forbidden",
				"message": "the acting role may not perform this operation",
			})
		}
		return c.Next()
	}
}

// RequireCatalogManager gates editing of services, employees and working hours.
func RequireCatalogManager() fiber.Handler {
	return RequireCapability(models.Role.CanManageCatalog)
}

// RequireBooker gates appointment creation.
func RequireBooker() fiber.Handler {
	return RequireCapability(models.Role.CanBook)
}
