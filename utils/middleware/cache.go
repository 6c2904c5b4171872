package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
)

const cacheHeader = "X-Cache"

// ResponseCache serves repeated public reads from storage for ttl. Entries are keyed
// by the full URL, so each distinct query string is cached on its own. A nil storage
// keeps entries in process memory. A non-positive ttl disables caching.
func ResponseCache(group string, ttl time.Duration, storage fiber.Storage) fiber.Handler {
	if ttl <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	cached := cache.New(cache.Config{
		Expiration:   ttl,
		CacheHeader:  cacheHeader,
		CacheControl: true,
		Storage:      storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return group + ":" + c.OriginalURL()
		},
		Next: func(c *fiber.Ctx) bool {
			// Authenticated reads are never shared between callers
			return c.Get(fiber.HeaderAuthorization) != ""
		},
	})

	return func(c *fiber.Ctx) error {
		err := cached(c)
		if outcome := strings.ToLower(string(c.Response().Header.Peek(cacheHeader))); outcome != "" {
			responseCacheTotal.WithLabelValues(group, outcome).Inc()
		}
		return err
	}
}
