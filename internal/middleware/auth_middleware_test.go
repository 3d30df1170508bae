package middleware

import (
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	os.Setenv("JWT_SECRET", testSecret)

	app := fiber.New()
	app.Use(RequireAuth())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": CurrentUserID(c),
			"org_id":  CurrentOrgID(c).String(),
		})
	})
	return app
}

func signToken(t *testing.T, orgID, secret string, expiry time.Duration) string {
	t.Helper()
	claims := &Claims{
		OrganizationID: orgID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestRequireAuth(t *testing.T) {
	orgID := uuid.NewString()

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "valid token",
			authHeader: "Bearer " + signToken(t, orgID, testSecret, time.Hour),
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "wrong secret",
			authHeader: "Bearer " + signToken(t, orgID, "other-secret", time.Hour),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer " + signToken(t, orgID, testSecret, -time.Hour),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "org claim not a uuid",
			authHeader: "Bearer " + signToken(t, "not-a-uuid", testSecret, time.Hour),
			wantStatus: fiber.StatusUnauthorized,
		},
	}

	app := newTestApp(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
