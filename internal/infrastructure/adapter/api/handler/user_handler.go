package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
	domainerr "github.com/helphub-app/helphub-server/internal/domain/error"
	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
	"github.com/helphub-app/helphub-server/internal/domain/port/persistence"
	"github.com/helphub-app/helphub-server/internal/domain/port/usecase"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/api/dto"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/api/middleware"
)

// UserHandler handles the user directory and dashboard profile endpoints
type UserHandler struct {
	userRepo      persistence.UserRepository
	rewardUseCase usecase.RewardUseCase
	logger        coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(
	userRepo persistence.UserRepository,
	rewardUseCase usecase.RewardUseCase,
	logger coreport.Logger,
) *UserHandler {
	return &UserHandler{
		userRepo:      userRepo,
		rewardUseCase: rewardUseCase,
		logger:        logger,
	}
}

// List handles the GET /api/users endpoint. Currently only the NGO directory
// (type=ngo) is exposed.
func (h *UserHandler) List(c *gin.Context) {
	userType := strings.ToLower(strings.TrimSpace(c.Query("type")))
	if userType != string(entity.RoleNGO) {
		respondError(c, h.logger, domainerr.NewFieldError("type", "must be ngo"))
		return
	}

	users, err := h.userRepo.ListByRole(c.Request.Context(), entity.RoleNGO)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserSummaryResponses(users))
}

// GetProfile handles the GET /api/users/by-email endpoint: the dashboard
// projection of coins, total donations and donor rank
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrUnauthenticated)
		return
	}

	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		respondError(c, h.logger, domainerr.NewFieldError("email", "is required"))
		return
	}
	if !strings.EqualFold(user.Email, email) && user.Role != entity.RoleNGO {
		respondError(c, h.logger, domainerr.ErrForbidden)
		return
	}

	profile, err := h.rewardUseCase.GetProfile(c.Request.Context(), email)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProfileResponse(profile))
}
