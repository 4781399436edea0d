package middleware

import (
	"strings"

	"github.com/bewithdhanu/medicine-tracker/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS allows any origin in development and only CORS_ORIGINS elsewhere.
func CORS(cfg *config.Config) fiber.Handler {
	origins := "*"
	if cfg.StrictCORS() {
		origins = strings.Join(config.SplitCSV(cfg.CORSOrigins), ",")
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, X-API-Key",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, OPTIONS",
		AllowCredentials: false,
	})
}

func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	}
}
