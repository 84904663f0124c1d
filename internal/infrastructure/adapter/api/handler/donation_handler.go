package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
	domainerr "github.com/helphub-app/helphub-server/internal/domain/error"
	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
	"github.com/helphub-app/helphub-server/internal/domain/port/usecase"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/api/dto"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/api/middleware"
)

// DonationHandler handles donation lifecycle HTTP requests
type DonationHandler struct {
	donationUseCase usecase.DonationUseCase
	authUseCase     usecase.AuthUseCase
	logger          coreport.Logger
}

// NewDonationHandler creates a new donation handler instance
func NewDonationHandler(
	donationUseCase usecase.DonationUseCase,
	authUseCase usecase.AuthUseCase,
	logger coreport.Logger,
) *DonationHandler {
	return &DonationHandler{
		donationUseCase: donationUseCase,
		authUseCase:     authUseCase,
		logger:          logger,
	}
}

// Create handles the POST /api/donations/create endpoint
func (h *DonationHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrUnauthenticated)
		return
	}
	if !user.IsDonor() {
		respondError(c, h.logger, domainerr.ErrForbidden)
		return
	}

	var req dto.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	request, err := h.donationUseCase.Submit(c.Request.Context(), usecase.SubmitDonationRequest{
		DonorID: user.ID,
		Type:    req.Type,
		Address: req.Address,
		Details: req.Details.ToDetails(),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewDonationResponse(request))
}

// ListPending handles the GET /api/donations/requests endpoint. Only verified
// NGOs see the queue.
func (h *DonationHandler) ListPending(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrUnauthenticated)
		return
	}
	if !user.IsVerifiedNGO() {
		respondError(c, h.logger, domainerr.ErrNGONotVerified)
		return
	}

	requests, err := h.donationUseCase.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDonationResponses(requests))
}

// Accept handles the POST /api/donations/:id/accept endpoint
func (h *DonationHandler) Accept(c *gin.Context) {
	h.decide(c, usecase.DecisionAccept)
}

// Reject handles the POST /api/donations/:id/reject endpoint
func (h *DonationHandler) Reject(c *gin.Context) {
	h.decide(c, usecase.DecisionReject)
}

func (h *DonationHandler) decide(c *gin.Context, decision usecase.Decision) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrUnauthenticated)
		return
	}

	requestID := strings.TrimSpace(c.Param("id"))
	if requestID == "" {
		respondError(c, h.logger, domainerr.ErrDonationNotFound)
		return
	}

	result, err := h.donationUseCase.Decide(c.Request.Context(), requestID, user.ID, decision)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.DecisionResponse{
		ID:          result.Request.PublicID,
		Status:      string(result.Request.Status),
		CoinsEarned: result.CoinsEarned,
	})
}

// History handles the GET /api/donations/history/email/:email endpoint.
// Donors see their own history; NGOs may look up any donor.
func (h *DonationHandler) History(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrUnauthenticated)
		return
	}

	email := strings.ToLower(strings.TrimSpace(c.Param("email")))
	if !strings.EqualFold(user.Email, email) && user.Role != entity.RoleNGO {
		respondError(c, h.logger, domainerr.ErrForbidden)
		return
	}

	donor, err := h.authUseCase.ResolveByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	requests, err := h.donationUseCase.ListHistory(c.Request.Context(), donor.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDonationResponses(requests))
}
