package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/RafaelMoura/SalonFlow/app/repository"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/cache"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/lifecycle"
)

const accessCacheTTL = 30 * time.Second

// RequireLiveAccess gates booking routes: the merchant referenced by the
// :merchantID route param must have live access. The verdict is cached
// briefly in Redis so the booking page does not hammer the merchants table.
func RequireLiveAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		merchantID, err := c.ParamsInt("merchantID")
		if err != nil || merchantID <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "bad_request",
				"message": "invalid merchant id",
			})
		}

		cacheKey := fmt.Sprintf("access:live:%d", merchantID)
		if cached, err := cache.Get(cacheKey); err == nil {
			if cached == "1" {
				return c.Next()
			}
			return gatedResponse(c)
		}

		merchant, err := repository.GetGlobalFactory().GetMerchantRepository().GetByID(uint(merchantID))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "not_found",
				"message": "merchant not found",
			})
		}

		live := lifecycle.IsAccessLive(merchant, time.Now())
		verdict := "0"
		if live {
			verdict = "1"
		}
		if err := cache.Set(cacheKey, verdict, accessCacheTTL); err != nil {
			log.Warnf("[Access] caching verdict for merchant %d failed: %v", merchantID, err)
		}

		if !live {
			return gatedResponse(c)
		}
		return c.Next()
	}
}

// InvalidateAccessCache drops the cached verdict after a lifecycle change so
// the gate reflects the new state immediately.
func InvalidateAccessCache(merchantID uint) {
	key := fmt.Sprintf("access:live:%d", merchantID)
	if err := cache.Delete(key); err != nil {
		log.Warnf("[Access] invalidating verdict for merchant %d failed: %v", merchantID, err)
	}
}

func gatedResponse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error":   "payment_required",
		"message": "the salon's subscription is not active; bookings are paused until it is renewed",
	})
}
