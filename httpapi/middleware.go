package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/yabook/yabook/auth"
)

// ContextIdentityKey is where the middleware stores the authenticated
// identity for downstream handlers.
const ContextIdentityKey = "identity"

const authScheme = "Bearer"

// RequireAccessToken guards a route with a valid, non expired access token.
// An expired token short-circuits with a payload naming the token type and a
// sub_status, so clients know to refresh rather than re-authenticate.
func (s *Server) RequireAccessToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := bearerToken(c)
		if err != nil {
			return err
		}

		claims, err := s.sessions.Validate(raw, auth.TokenTypeAccess)
		if err != nil {
			return err
		}

		c.Locals(ContextIdentityKey, claims.Identity)

		return c.Next()
	}
}

// Identity returns the authenticated identity stored by RequireAccessToken.
func Identity(c *fiber.Ctx) string {
	if identity, ok := c.Locals(ContextIdentityKey).(string); ok {
		return identity
	}
	return ""
}

func bearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", errors.New("missing or malformed JWT", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode(auth.TextCodeTokenMalformed)
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], authScheme) || parts[1] == "" {
		return "", errors.New("missing or malformed JWT", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode(auth.TextCodeTokenMalformed)
	}

	return parts[1], nil
}
