package middleware

import (
	"fmt"
	"strings"

	"github.com/evaldesk/evaldesk/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	localUserID = "userID"
	localOrgID  = "orgID"
)

// Claims carried by the bearer token. The identity provider is
// external; this service only validates signature, expiry and issuer.
type Claims struct {
	OrganizationID string `json:"org_id"`
	jwt.RegisteredClaims
}

// RequireAuth validates the Authorization bearer token and stashes the
// subject and organization in request locals.
func RequireAuth() fiber.Handler {
	authConfig := config.LoadAuthConfig()
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(authConfig.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}
		if authConfig.Issuer != "" && claims.Issuer != authConfig.Issuer {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token issuer")
		}
		orgID, err := uuid.Parse(claims.OrganizationID)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "token missing organization")
		}

		c.Locals(localUserID, claims.Subject)
		c.Locals(localOrgID, orgID)
		return c.Next()
	}
}

// CurrentUserID returns the JWT subject set by RequireAuth.
func CurrentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(localUserID).(string)
	return id
}

// CurrentOrgID returns the tenant set by RequireAuth.
func CurrentOrgID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(localOrgID).(uuid.UUID)
	return id
}
