package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
	domainerr "github.com/helphub-app/helphub-server/internal/domain/error"
	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
	"github.com/helphub-app/helphub-server/internal/domain/port/usecase"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/api/dto"
)

// userContextKey is where the resolved account is stored on the gin context
const userContextKey = "currentUser"

// RequireAuth verifies the bearer token and resolves it to the account it
// belongs to. Requests without a valid token are rejected with 401.
func RequireAuth(tokenMaker coreport.TokenMaker, authUseCase usecase.AuthUseCase, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrUnauthenticated),
				Message: "Missing or malformed Authorization header",
			})
			return
		}

		claims, err := tokenMaker.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrUnauthenticated),
				Message: "Invalid or expired session token",
			})
			return
		}

		user, err := authUseCase.ResolveByPublicID(c.Request.Context(), claims.UserPublicID)
		if err != nil {
			logger.Warn("Token subject could not be resolved", map[string]any{
				"subject": claims.UserPublicID,
				"error":   err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrUnauthenticated),
				Message: "Session account no longer exists",
			})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the account resolved by RequireAuth
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*entity.User)
	return user, ok
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
