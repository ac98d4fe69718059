package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pos/pkg/cache"
)

// CacheMiddleware cachea respuestas GET 200 por TTL y las invalida por patrón
// cuando pasa una escritura por el mismo grupo de rutas. La clave incluye el
// query string (paginación y filtros cachean por separado).
//
// invalidatePatterns son los prefijos de clave a borrar en POST/PUT/PATCH/DELETE,
// ej. "GET:/api/products*".
func CacheMiddleware(store cache.Store, ttl time.Duration, invalidatePatterns ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet {
			if err := c.Next(); err != nil {
				return err
			}
			// Solo invalidar si la escritura fue aceptada
			if c.Response().StatusCode() < 300 {
				for _, pattern := range invalidatePatterns {
					store.DeletePattern(c.Context(), pattern)
				}
			}
			return nil
		}

		key := "GET:" + c.Path()
		if qs := string(c.Request().URI().QueryString()); qs != "" {
			key += "?" + qs
		}

		if body, ok := store.Get(c.Context(), key); ok {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			c.Set("X-Cache", "HIT")
			return c.Send(body)
		}

		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() == fiber.StatusOK {
			// Copia: fasthttp recicla los buffers de la respuesta
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())
			store.Set(c.Context(), key, body, ttl)
		}
		c.Set("X-Cache", "MISS")
		return nil
	}
}
