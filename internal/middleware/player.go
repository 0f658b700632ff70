package middleware

import (
	"github.com/benbeisheim/clickchess-backend/internal/obslog"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Check if playerID is already set
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		// Check header first
		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}

		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		obslog.L().Debug("player_id_resolved", zap.String("player_id", playerID), zap.String("path", c.Path()))
		// Store in context for this request
		c.Locals("playerID", playerID)
		return c.Next()
	}
}
