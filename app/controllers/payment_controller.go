package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/RafaelMoura/SalonFlow/internal/pkg/database"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/middleware"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/payments"
)

// HandleCreateCharge starts (or retries) the PIX payment flow for a
// merchant's VIP plan and returns the QR payload to display.
func HandleCreateCharge(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}

	svc := payments.NewServiceFromDB(database.GetDB())
	charge, err := svc.StartVipCharge(c.Context(), uint(merchantID))
	if err != nil {
		log.Errorf("[Payments] charge creation for merchant %d failed: %v", merchantID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "upstream_unavailable",
			"message": "payment gateway is unavailable, please retry",
		})
	}
	svc.WatchCharge(charge.TxID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"charge": charge})
}

// HandleChargeStatus is the UI's polling endpoint. It re-checks the gateway
// for pending charges, so an approval observed here activates the merchant
// on the spot.
func HandleChargeStatus(c *fiber.Ctx) error {
	txID := c.Params("txID")
	if txID == "" {
		return badRequest(c, "txid missing")
	}

	svc := payments.NewServiceFromDB(database.GetDB())
	charge, err := svc.CheckCharge(c.Context(), txID)
	if err != nil {
		return notFound(c, "charge not found")
	}
	if charge.IsTerminal() {
		middleware.InvalidateAccessCache(charge.MerchantID)
	}

	return c.JSON(fiber.Map{"charge": charge})
}

// HandlePixWebhook receives the gateway's asynchronous payment notification.
// This path is authoritative: it completes the grant even when the UI
// stopped polling.
func HandlePixWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get("X-Pix-Signature")

	svc := payments.NewServiceFromDB(database.GetDB())
	// The request context dies with this handler; confirmation must not.
	if err := svc.HandleWebhook(context.Background(), payload, signature); err != nil {
		log.Errorf("[Payments] webhook processing failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "webhook could not be processed",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
