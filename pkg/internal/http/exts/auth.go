package exts

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rowanlabs/inkwell/pkg/internal/models"
)

// AuthenticatedUser pulls the account resolved by the auth middleware.
func AuthenticatedUser(c *fiber.Ctx) (models.Account, bool) {
	user, ok := c.Locals("user").(models.Account)
	return user, ok
}

func EnsureAuthenticated(c *fiber.Ctx) (models.Account, error) {
	user, ok := AuthenticatedUser(c)
	if !ok {
		return user, fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	return user, nil
}

func EnsureAuthor(c *fiber.Ctx) (models.Account, error) {
	user, err := EnsureAuthenticated(c)
	if err != nil {
		return user, err
	}
	if !user.CanAuthor() {
		return user, fiber.NewError(fiber.StatusForbidden, "author role required")
	}
	return user, nil
}

func EnsureAdmin(c *fiber.Ctx) (models.Account, error) {
	user, err := EnsureAuthenticated(c)
	if err != nil {
		return user, err
	}
	if !user.IsAdmin() {
		return user, fiber.NewError(fiber.StatusForbidden, "admin role required")
	}
	return user, nil
}
