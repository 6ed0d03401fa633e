package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/acadsuite/campus-api/internal/auth"
	"github.com/acadsuite/campus-api/internal/utils"
)

// JWTProtected returns a middleware that validates bearer access tokens and
// binds the caller's identity to the request.
func JWTProtected(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, err := tokens.VerifyAccess(tokenString)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_role", string(claims.Role))

		return c.Next()
	}
}

// OptionalJWT binds the caller's identity when a valid bearer token is
// present but lets anonymous requests through. Used by endpoints that behave
// differently for authenticated callers, such as registration.
func OptionalJWT(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		const bearer = "Bearer "
		if strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			tokenString := strings.TrimSpace(authorization[len(bearer):])
			if claims, err := tokens.VerifyAccess(tokenString); err == nil {
				c.Locals("user_id", claims.UserID)
				c.Locals("user_role", string(claims.Role))
			}
		}
		return c.Next()
	}
}
