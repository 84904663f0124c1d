package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/helphub-app/helphub-server/internal/domain/error"
	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
	"github.com/helphub-app/helphub-server/internal/domain/port/usecase"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/api/dto"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/api/middleware"
)

// RewardHandler handles coin redemption HTTP requests
type RewardHandler struct {
	rewardUseCase usecase.RewardUseCase
	logger        coreport.Logger
}

// NewRewardHandler creates a new reward handler instance
func NewRewardHandler(rewardUseCase usecase.RewardUseCase, logger coreport.Logger) *RewardHandler {
	return &RewardHandler{
		rewardUseCase: rewardUseCase,
		logger:        logger,
	}
}

// Catalog handles the GET /api/coins/giftcards endpoint
func (h *RewardHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.rewardUseCase.Catalog(c.Request.Context()))
}

// Redeem handles the POST /api/coins/redeem endpoint. The gift card is
// identified by catalog ID or by display name.
func (h *RewardHandler) Redeem(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrUnauthenticated)
		return
	}
	if !user.IsDonor() {
		respondError(c, h.logger, domainerr.ErrForbidden)
		return
	}

	var req dto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	var result *usecase.RedeemResult
	var err error
	switch {
	case req.GiftCardID != 0:
		result, err = h.rewardUseCase.Redeem(c.Request.Context(), user.ID, req.GiftCardID)
	case req.GiftCardName != "":
		result, err = h.rewardUseCase.RedeemByName(c.Request.Context(), user.ID, req.GiftCardName)
	default:
		respondError(c, h.logger, domainerr.NewFieldError("giftCardId", "either giftCardId or giftCardName is required"))
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRedeemResponse(result))
}
