package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/pkg/ratelimit"
)

// RateLimitMiddleware limita peticiones por cliente y ruta con ventana
// deslizante. El cliente es el usuario autenticado si existe, si no la IP
// remota; cada ruta lleva su propio contador para que agotar el cupo de un
// listado no bloquee el cobro en caja.
func RateLimitMiddleware(limiter *ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		client := GetUserID(c)
		if client == "" {
			client = c.IP()
		}
		key := client + ":" + c.Path()
		allowed, retryAfter := limiter.Allow(key)
		if !allowed {
			seconds := int(retryAfter.Seconds())
			if seconds < 1 {
				seconds = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(seconds))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas peticiones, intenta de nuevo más tarde",
			})
		}
		return c.Next()
	}
}
