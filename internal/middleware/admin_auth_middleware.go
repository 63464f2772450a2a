package middleware

import (
	"strings"

	"github.com/fadilmartias/talent-match/internal/util"
	"github.com/gofiber/fiber/v2"
)

// AdminAuth validates Bearer tokens against keys. With no keys configured
// authentication is disabled.
func AdminAuth(keys []string) fiber.Handler {
	valid := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k != "" {
			valid[k] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		if len(valid) == 0 {
			return c.Next()
		}

		auth := c.Get(fiber.HeaderAuthorization)
		if auth == "" {
			return unauthorized(c, "missing authorization header")
		}
		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(auth, bearerPrefix) {
			return unauthorized(c, "authorization header must use Bearer scheme")
		}
		if _, ok := valid[auth[len(bearerPrefix):]]; !ok {
			return unauthorized(c, "invalid api key")
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusUnauthorized,
		Message: message,
	})
}
