package donation

import (
	"context"

	"github.com/google/uuid"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
	errs "github.com/helphub-app/helphub-server/internal/domain/error"
	"github.com/helphub-app/helphub-server/internal/domain/port/usecase"
)

// Submit validates and persists a new donation request in pending state.
// Coins are granted only when an NGO accepts, never at submission.
func (s *Service) Submit(ctx context.Context, req usecase.SubmitDonationRequest) (*entity.DonationRequest, error) {
	donor, err := s.userRepo.GetByID(ctx, req.DonorID)
	if err != nil {
		return nil, err
	}
	if !donor.IsDonor() {
		return nil, errs.ErrForbidden
	}

	request, err := entity.NewDonationRequest(uuid.NewString(), donor.ID, req.Type, req.Address, req.Details, s.timeProvider)
	if err != nil {
		s.logger.Warn("Donation submission rejected by validation", map[string]any{
			"donor_id": req.DonorID,
			"type":     req.Type,
			"error":    err.Error(),
		})
		return nil, err
	}

	if err := s.donationRepo.Create(ctx, request); err != nil {
		s.logger.Error("Failed to persist donation request", map[string]any{
			"donor_id": donor.ID,
			"type":     request.Type,
			"error":    err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Donation request submitted", map[string]any{
		"request_id": request.PublicID,
		"donor_id":   donor.ID,
		"type":       request.Type,
	})

	return request, nil
}
