package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/RafaelMoura/SalonFlow/app/models"
	"github.com/RafaelMoura/SalonFlow/app/repository"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/database"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/lifecycle"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/mail"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/payments"
)

type signupRequest struct {
	Name      string `json:"name"`
	SalonName string `json:"salon_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Plan      string `json:"plan"`
}

// HandleMerchantSignup registers a salon. Trial signups get their short
// access window immediately; VIP signups stay pending and receive a PIX
// charge to pay before activation.
func HandleMerchantSignup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	merchant, err := models.CreateMerchant(req.Name, req.SalonName, req.Email, req.Password)
	if err != nil {
		return badRequest(c, err.Error())
	}
	merchant.Phone = req.Phone

	repo := repository.GetGlobalFactory().GetMerchantRepository()
	if err := repo.Create(merchant); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":   "conflict",
				"message": "a merchant with this email already exists",
			})
		}
		return internalError(c, "could not create merchant")
	}

	go mail.SendWelcomeEmail(merchant)

	lc := lifecycle.NewServiceFromDB(database.GetDB())

	switch req.Plan {
	case models.PlanVIP:
		paySvc := payments.NewServiceFromDB(database.GetDB())
		charge, err := paySvc.StartVipCharge(c.Context(), merchant.ID)
		if err != nil {
			log.Errorf("[Merchant] VIP charge for merchant %d failed: %v", merchant.ID, err)
			// The merchant exists in pending state and can retry the charge.
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error":    "upstream_unavailable",
				"message":  "payment gateway is unavailable, please retry",
				"merchant": merchant,
			})
		}
		paySvc.WatchCharge(charge.TxID)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"merchant": merchant,
			"charge":   charge,
		})
	default:
		merchant, err = lc.ActivateTrial(c.Context(), merchant.ID)
		if err != nil {
			return internalError(c, "could not activate trial")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"merchant": merchant,
		})
	}
}

// HandleMerchantStatus returns the merchant record plus the computed access
// verdict so the UI can gate features without recomputing window math.
func HandleMerchantStatus(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}

	merchant, err := repository.GetGlobalFactory().GetMerchantRepository().GetByID(uint(merchantID))
	if err != nil {
		return notFound(c, "merchant not found")
	}

	return c.JSON(fiber.Map{
		"merchant":    merchant,
		"access_live": lifecycle.IsAccessLive(merchant, time.Now()),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "bad_request",
		"message": msg,
	})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":   "not_found",
		"message": msg,
	})
}

func internalError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "internal_error",
		"message": msg,
	})
}
