package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/RafaelMoura/SalonFlow/app/repository"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/database"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/lifecycle"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/mail"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/middleware"
)

type grantRequest struct {
	DurationDays int    `json:"duration_days"`
	MonthlyFee   *int64 `json:"monthly_fee,omitempty"`
}

type feeRequest struct {
	MonthlyFee int64 `json:"monthly_fee"`
}

// HandleAdminGrantAccess activates a merchant with a fresh window out of
// band, e.g. after a bank transfer that bypassed the gateway.
func HandleAdminGrantAccess(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}

	var req grantRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	lc := lifecycle.NewServiceFromDB(database.GetDB())
	merchant, err := lc.GrantAccess(c.Context(), uint(merchantID), req.DurationDays, req.MonthlyFee)
	if err != nil {
		return lifecycleError(c, err)
	}
	middleware.InvalidateAccessCache(merchant.ID)

	return c.JSON(fiber.Map{"merchant": merchant})
}

// HandleAdminRenewAccess extends a merchant's window by one cycle.
func HandleAdminRenewAccess(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}

	lc := lifecycle.NewServiceFromDB(database.GetDB())
	merchant, err := lc.RenewAccess(c.Context(), uint(merchantID))
	if err != nil {
		return lifecycleError(c, err)
	}
	middleware.InvalidateAccessCache(merchant.ID)
	go mail.SendRenewalConfirmationEmail(merchant)

	return c.JSON(fiber.Map{"merchant": merchant})
}

// HandleAdminSuspendAccess demotes a merchant to payment_pending.
func HandleAdminSuspendAccess(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}

	lc := lifecycle.NewServiceFromDB(database.GetDB())
	merchant, err := lc.SuspendAccess(c.Context(), uint(merchantID))
	if err != nil {
		return lifecycleError(c, err)
	}
	middleware.InvalidateAccessCache(merchant.ID)

	return c.JSON(fiber.Map{"merchant": merchant})
}

// HandleAdminSetFee overrides a merchant's monthly fee.
func HandleAdminSetFee(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}

	var req feeRequest
	if err := c.BodyParser(&req); err != nil || req.MonthlyFee < 0 {
		return badRequest(c, "invalid monthly fee")
	}

	lc := lifecycle.NewServiceFromDB(database.GetDB())
	merchant, err := lc.SetMonthlyFee(c.Context(), uint(merchantID), req.MonthlyFee)
	if err != nil {
		return lifecycleError(c, err)
	}

	return c.JSON(fiber.Map{"merchant": merchant})
}

// HandleAdminSweep runs the expiry sweep on demand, outside the scheduler's
// cadence.
func HandleAdminSweep(c *fiber.Ctx) error {
	lc := lifecycle.NewServiceFromDB(database.GetDB())
	count, err := lc.SweepExpiredAccess(c.Context())
	if err != nil {
		return internalError(c, "sweep failed")
	}

	return c.JSON(fiber.Map{"demoted": count})
}

// HandleAdminListMerchants lists merchants, optionally filtered by status.
func HandleAdminListMerchants(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetMerchantRepository()

	if status := c.Query("status"); status != "" {
		merchants, err := repo.ListByStatus(status)
		if err != nil {
			return internalError(c, "could not list merchants")
		}
		return c.JSON(fiber.Map{"merchants": merchants})
	}

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)
	merchants, err := repo.List(offset, limit)
	if err != nil {
		return internalError(c, "could not list merchants")
	}
	total, err := repo.Count()
	if err != nil {
		return internalError(c, "could not count merchants")
	}

	return c.JSON(fiber.Map{"merchants": merchants, "total": total})
}

func lifecycleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, lifecycle.ErrMerchantNotFound):
		return notFound(c, "merchant not found")
	case errors.Is(err, lifecycle.ErrInvalidDuration):
		return badRequest(c, err.Error())
	default:
		return internalError(c, "lifecycle operation failed")
	}
}
