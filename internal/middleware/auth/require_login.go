package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/avkurov/product-catalog/internal/logging"
	"github.com/avkurov/product-catalog/internal/models"
	"github.com/avkurov/product-catalog/internal/tokens"
)

// UserContextKey is where the gate stores the authenticated *models.User.
const UserContextKey = "user"

type Gate struct {
	DB        *gorm.DB
	JWTSecret []byte
}

func (g *Gate) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "auth.require_login")

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			l.Warn("auth_failed", "status", 401, "reason", "authorization header missing")
			return echo.NewHTTPError(http.StatusUnauthorized, "authorization header missing")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			l.Warn("auth_failed", "status", 401, "reason", "malformed authorization header")
			return echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
		}

		userID, err := tokens.Parse(parts[1], g.JWTSecret)
		if err != nil {
			if errors.Is(err, tokens.ErrTokenExpired) {
				l.Warn("auth_failed", "status", 401, "reason", "token expired")
				return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
			}
			l.Warn("auth_failed", "status", 401, "reason", "invalid token", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		var user models.User
		if err := g.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				l.Warn("auth_failed", "status", 401, "reason", "unknown user", "user_id", userID)
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
			}
			l.Error("auth_failed", "status", 500, "reason", "cannot load user", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot load user")
		}

		c.Set(UserContextKey, &user)
		return next(c)
	}
}

// CurrentUser returns the identity attached by RequireLogin, nil outside it.
func CurrentUser(c echo.Context) *models.User {
	if u, ok := c.Get(UserContextKey).(*models.User); ok {
		return u
	}
	return nil
}
