package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rowanlabs/inkwell/pkg/internal/services"
)

// authMiddleware resolves the bearer token, if any, into a loaded account at
// Locals("user"). Requests without a usable token simply stay anonymous.
func authMiddleware(c *fiber.Ctx) error {
	var tokenString string
	if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
		tokenString = strings.TrimPrefix(header, "Bearer ")
	} else if cookie := c.Cookies("access_token"); len(cookie) > 0 {
		tokenString = cookie
	}

	if len(tokenString) > 0 {
		if id, err := services.ParseAccountToken(tokenString); err == nil {
			if user, err := services.GetAccountWithID(id); err == nil {
				c.Locals("user", user)
			}
		}
	}

	return c.Next()
}
