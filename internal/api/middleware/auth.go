package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// TokenChecker reports whether a token id has been revoked by sign-out.
type TokenChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Auth validates the bearer JWT, rejects revoked tokens, and injects claims
// into context. checker may be nil, in which case revocation is not enforced.
func Auth(jwtSecret string, checker TokenChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			tokenID, _ := claims["jti"].(string)
			if checker != nil && tokenID != "" {
				revoked, err := checker.IsRevoked(c.Request().Context(), tokenID)
				if err == nil && revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			admin, _ := claims["admin"].(bool)
			c.Set("user_id", claims["sub"])
			c.Set("email", claims["email"])
			c.Set("name", claims["name"])
			c.Set("admin", admin)
			c.Set("token_id", tokenID)
			if exp, ok := claims["exp"].(float64); ok {
				c.Set("token_expires_at", time.Unix(int64(exp), 0).UTC())
			}

			return next(c)
		}
	}
}
