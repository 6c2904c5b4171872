package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/mavhungutrezzy/umami-tube/utils/response"
)

// SecurityConfig holds security middleware configuration
type SecurityConfig struct {
	AllowedOrigins    string
	RateLimitRequests int // per client per window; 0 disables the limiter
	RateLimitWindow   time.Duration
	DisableAccessLog  bool

	// Storage keeps limiter counters; nil counts per process
	Storage fiber.Storage
}

// opsPaths are never logged or throttled
var opsPaths = map[string]struct{}{"/ping": {}, "/metrics": {}}

func isOpsPath(c *fiber.Ctx) bool {
	_, ok := opsPaths[c.Path()]
	return ok
}

// SetupSecurity installs request ids, access log, panic recovery, secure headers,
// CORS and the rate limiter, in that order
func SetupSecurity(app *fiber.App, config SecurityConfig) {
	app.Use(requestid.New())

	if !config.DisableAccessLog {
		app.Use(logger.New(logger.Config{
			Next:       isOpsPath,
			Format:     "${time} | ${status} | ${latency} | ${method} ${path} | ${ip} | ${locals:requestid}\n",
			TimeFormat: time.RFC3339,
			TimeZone:   "UTC",
		}))
	}

	app.Use(recover.New(recover.Config{EnableStackTrace: true}))

	// JSON API only, nothing is ever framed
	app.Use(helmet.New(helmet.Config{
		XFrameOptions:  "DENY",
		HSTSMaxAge:     31536000,
		ReferrerPolicy: "no-referrer",
	}))

	app.Use(corsHandler(config.AllowedOrigins))

	if config.RateLimitRequests > 0 {
		app.Use(rateLimiter(config))
	}
}

func corsHandler(allowed string) fiber.Handler {
	var origins []string
	for _, o := range strings.Split(allowed, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	joined := strings.Join(origins, ",")

	return cors.New(cors.Config{
		AllowOrigins:     joined,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		ExposeHeaders:    "X-Cache,X-Request-ID",
		AllowCredentials: joined != "" && joined != "*",
		MaxAge:           int((24 * time.Hour).Seconds()),
	})
}

// rateLimiter throttles per client address. Reads and writes share one budget.
func rateLimiter(config SecurityConfig) fiber.Handler {
	window := config.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Next:       isOpsPath,
		Max:        config.RateLimitRequests,
		Expiration: window,
		Storage:    config.Storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "ratelimit:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.TooManyRequests(c, "")
		},
	})
}
