package middleware

import (
	"context"
	stdErrors "errors"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-recovery/errors"
	"github.com/johnquangdev/meeting-recovery/pkg/jwt"
)

// UserIDKey is the echo context key holding the caller's uuid.UUID
const UserIDKey = "user_id"

// Authenticator resolves a bearer token to a local user id
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// EchoAuth returns an Echo middleware that validates the identity token and
// sets "user_id" (uuid.UUID) into the Echo context
func EchoAuth(authenticator Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return errors.ErrUnauthenticated()
			}

			userID, err := authenticator.Authenticate(c.Request().Context(), token)
			if err != nil {
				return authError(err)
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the authenticated caller set by EchoAuth
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(UserIDKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func authError(err error) error {
	switch {
	case stdErrors.Is(err, jwt.ErrTokenMissing):
		return errors.ErrUnauthenticated()
	case stdErrors.Is(err, jwt.ErrTokenExpired):
		return errors.ErrTokenExpired()
	case stdErrors.Is(err, jwt.ErrTokenInvalid):
		return errors.ErrInvalidToken()
	}
	// Provisioning failed; not the caller's fault
	return errors.ErrInternal(err)
}

// extractToken reads the Authorization header, falling back to the access_token cookie
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}
