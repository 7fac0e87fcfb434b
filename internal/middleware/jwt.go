package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/utils"
)

// UserIDKey is the context key under which JWTAuth stores the verified
// user id for downstream handlers and middleware.
const UserIDKey = "user_id"

// JWTAuth returns an Echo middleware that validates a Bearer session token
// and injects its subject into the request context under UserIDKey. The
// provided secret must match the one used when issuing tokens. Missing,
// malformed, tampered and expired tokens all produce the same 401: the
// caller learns only that the session is not valid.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			uid, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(UserIDKey, uid)
			return next(c)
		}
	}
}

// CurrentUserID returns the authenticated user id placed in the context by
// JWTAuth, or "" when the request is unauthenticated.
func CurrentUserID(c echo.Context) string {
	if v := c.Get(UserIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
