package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	jsonres "devenirShop/pkg/response"
	"devenirShop/pkg/utils"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware requires a valid bearer token and stores the caller's
// identity on the echo context.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Missing authorization header", nil,
				))
			}

			userID, err := identityFromHeader(authHeader)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			c.Set("user_id", userID)
			return next(c)
		}
	}
}

// OptionalAuthMiddleware resolves the caller's identity when a bearer
// token is present but lets anonymous requests through. Search is public;
// identity only switches personalization on.
func OptionalAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			userID, err := identityFromHeader(authHeader)
			if err != nil {
				// A bad token downgrades to anonymous instead of failing
				// the request.
				return next(c)
			}

			c.Set("user_id", userID)
			return next(c)
		}
	}
}

func identityFromHeader(authHeader string) (uint, error) {
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return 0, echo.ErrUnauthorized
	}

	claims, err := utils.ParseJWT(tokenParts[1])
	if err != nil {
		return 0, err
	}

	expAt, err := claims.GetExpirationTime()
	if err != nil || time.Now().After(expAt.Time) {
		return 0, echo.ErrUnauthorized
	}

	userIDUint, err := strconv.ParseUint(claims.UserID, 10, 64)
	if err != nil {
		return 0, err
	}

	return uint(userIDUint), nil
}
