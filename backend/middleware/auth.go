package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"elearn/backend/config"
	"elearn/backend/models"
	"elearn/backend/utils"
)

const principalKey = "principal"

// Authenticate parses the bearer token, loads the account and stores the
// principal in request locals. Missing, invalid or deactivated accounts are
// refused before any handler runs.
func Authenticate(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Please log in first")
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			return utils.Unauthorized(c, "Please log in first")
		}
		if !user.IsActive {
			return utils.Unauthorized(c, "Your account has been deactivated")
		}

		c.Locals(principalKey, &user)
		return c.Next()
	}
}

// RequireRole refuses principals whose role does not permit the operation.
// Runs after Authenticate in the chain.
func RequireRole(op models.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || !user.Role.Permits(op) {
			return utils.Forbidden(c, "Access denied")
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated principal, or nil outside an
// authenticated chain.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(principalKey).(*models.User)
	return user
}
