package middleware

import (
	"fitnessfiend/backend/config"
	"fitnessfiend/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware rejects requests whose user_token header does not carry a
// valid, unexpired token. Every protected route goes through this check.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}
		return c.Next()
	}
}
