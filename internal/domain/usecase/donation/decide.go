package donation

import (
	"context"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
	errs "github.com/helphub-app/helphub-server/internal/domain/error"
	"github.com/helphub-app/helphub-server/internal/domain/port/usecase"
)

// Decide applies an accept or reject decision by the given NGO.
//
// The status transition and, on accept, the donor's coin credit run inside a
// single database transaction. The transition itself is a compare-and-set on
// the pending status, so when two NGOs race for the same request exactly one
// wins and the other gets ErrAlreadyDecided with no credit applied.
func (s *Service) Decide(ctx context.Context, requestPublicID string, ngoID uint64, decision usecase.Decision) (*usecase.DecideResult, error) {
	if decision != usecase.DecisionAccept && decision != usecase.DecisionReject {
		return nil, errs.NewFieldError("decision", "must be accept or reject")
	}

	ngo, err := s.userRepo.GetByID(ctx, ngoID)
	if err != nil {
		return nil, err
	}
	if ngo.Role != entity.RoleNGO {
		return nil, errs.ErrForbidden
	}
	if !ngo.IsVerifiedNGO() {
		return nil, errs.ErrNGONotVerified
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
				s.logger.Error("Failed to roll back decision transaction", map[string]any{
					"request_id": requestPublicID,
					"error":      rbErr.Error(),
				})
			}
		}
	}()

	donationRepo := s.uow.GetDonationRepository(txCtx)
	userRepo := s.uow.GetUserRepository(txCtx)

	request, err := donationRepo.GetByPublicID(txCtx, requestPublicID)
	if err != nil {
		return nil, errs.NewDecisionError(requestPublicID, ngoID, string(decision), err)
	}

	var coinsEarned int64
	if decision == usecase.DecisionAccept {
		coinsEarned = s.rewardCoins
		if err := request.Accept(ngoID, coinsEarned, s.timeProvider); err != nil {
			return nil, errs.NewDecisionError(requestPublicID, ngoID, string(decision), err)
		}
	} else {
		if err := request.Reject(ngoID, s.timeProvider); err != nil {
			return nil, errs.NewDecisionError(requestPublicID, ngoID, string(decision), err)
		}
	}

	// Compare-and-set: only a still-pending row matches, so a concurrent
	// decision that committed first surfaces here as ErrAlreadyDecided
	if err := donationRepo.MarkDecided(txCtx, request); err != nil {
		return nil, errs.NewDecisionError(requestPublicID, ngoID, string(decision), err)
	}

	var donor *entity.User
	if decision == usecase.DecisionAccept {
		donor, err = userRepo.AdjustCoins(txCtx, request.DonorID, coinsEarned)
		if err != nil {
			s.logger.Error("Failed to credit donor coins", map[string]any{
				"request_id": requestPublicID,
				"donor_id":   request.DonorID,
				"coins":      coinsEarned,
				"error":      err.Error(),
			})
			return nil, errs.NewDecisionError(requestPublicID, ngoID, string(decision), err)
		}
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, errs.NewDecisionError(requestPublicID, ngoID, string(decision), err)
	}
	committed = true

	// The credit changed the donor's coins and rank, so any cached dashboard
	// profile is stale from here on
	if donor != nil && s.invalidateProfile != nil {
		s.invalidateProfile(ctx, donor.Email)
	}

	s.logger.Info("Donation request decided", map[string]any{
		"request_id": requestPublicID,
		"ngo_id":     ngoID,
		"decision":   decision,
		"coins":      coinsEarned,
	})

	return &usecase.DecideResult{
		Request:     request,
		CoinsEarned: coinsEarned,
	}, nil
}
