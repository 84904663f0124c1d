package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/helphub-app/helphub-server/internal/domain/error"
	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/api/dto"
)

// respondError maps a domain error to its HTTP status and standardized body
func respondError(c *gin.Context, logger coreport.Logger, err error) {
	var validationErr *domainerr.ValidationError
	var coinsErr *domainerr.InsufficientCoinsError

	resp := dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: err.Error(),
	}

	switch {
	case errors.As(err, &validationErr):
		resp.Message = "Validation failed"
		resp.Fields = validationErr.Fields
		c.JSON(http.StatusUnprocessableEntity, resp)

	case errors.As(err, &coinsErr):
		resp.Message = "Insufficient coins for this redemption"
		resp.Details = map[string]any{
			"required":  coinsErr.Required,
			"available": coinsErr.Available,
			"shortfall": coinsErr.Shortfall(),
		}
		c.JSON(http.StatusBadRequest, resp)

	case domainerr.IsValidationError(err):
		c.JSON(http.StatusUnprocessableEntity, resp)

	case domainerr.IsAlreadyDecidedError(err):
		c.JSON(http.StatusConflict, resp)

	case errors.Is(err, domainerr.ErrDuplicateUser):
		c.JSON(http.StatusConflict, resp)

	case errors.Is(err, domainerr.ErrUnauthenticated), errors.Is(err, domainerr.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, resp)

	case errors.Is(err, domainerr.ErrForbidden), errors.Is(err, domainerr.ErrNGONotVerified):
		c.JSON(http.StatusForbidden, resp)

	case domainerr.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, resp)

	default:
		logger.Error("Request failed with server error", map[string]any{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"error":  err.Error(),
		})
		resp.Code = domainerr.ErrorCode(domainerr.ErrInternalServer)
		resp.Message = "Internal server error"
		c.JSON(http.StatusInternalServerError, resp)
	}
}

// respondBindingError reports a malformed request body
func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.CodeValidation,
		Message: "Invalid request format: " + err.Error(),
	})
}
