package middleware

import (
	"net/http"

	"github.com/udayteja27/apsona/internal/domain/entity"
	"github.com/udayteja27/apsona/internal/utils"
	"github.com/udayteja27/apsona/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type UserRepository interface {
	FindByID(id int64) (*entity.User, error)
}

type AuthMiddlewareConfig struct {
	UserRepo UserRepository
}

// NewAuthMiddleware resolves the bearer token to a user record and stores it
// in the echo context for the handlers. A token for a user that no longer
// exists is rejected the same way as a bad token.
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData, err := utils.ParseTokenDataCtx(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			user, err := cfg.UserRepo.FindByID(tokenData.UserID)
			if err != nil {
				log.Errorf("failed to resolve token user: %v", err)
				return c.JSON(apierror.StoreUnavailableError.Code(), apierror.StoreUnavailableError)
			}

			if user == nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			c.Set("user", user)
			return next(c)
		}
	}
}
