package donation

import (
	"context"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
	"github.com/helphub-app/helphub-server/internal/domain/port/persistence"
)

// ProfileInvalidator drops a donor's cached dashboard profile after a coin
// balance change. A nil invalidator disables the step.
type ProfileInvalidator func(ctx context.Context, email string)

// Service implements the donation request lifecycle: submission, the NGO
// queue, decisions and history
type Service struct {
	uow          persistence.UnitOfWork
	userRepo     persistence.UserRepository
	donationRepo persistence.DonationRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger

	// rewardCoins is the amount credited to a donor per accepted donation.
	// Loaded from configuration so it can change without a redeploy.
	rewardCoins int64

	invalidateProfile ProfileInvalidator
}

// NewService creates a new donation service. invalidateProfile may be nil.
func NewService(
	uow persistence.UnitOfWork,
	userRepo persistence.UserRepository,
	donationRepo persistence.DonationRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	rewardCoins int64,
	invalidateProfile ProfileInvalidator,
) *Service {
	return &Service{
		uow:               uow,
		userRepo:          userRepo,
		donationRepo:      donationRepo,
		timeProvider:      timeProvider,
		logger:            logger,
		rewardCoins:       rewardCoins,
		invalidateProfile: invalidateProfile,
	}
}

// ListPending returns all pending requests, oldest first, so no request
// starves behind newer ones
func (s *Service) ListPending(ctx context.Context) ([]*entity.DonationRequest, error) {
	return s.donationRepo.ListPending(ctx)
}

// ListHistory returns all of a donor's requests, newest first
func (s *Service) ListHistory(ctx context.Context, donorID uint64) ([]*entity.DonationRequest, error) {
	if _, err := s.userRepo.GetByID(ctx, donorID); err != nil {
		return nil, err
	}
	return s.donationRepo.ListByDonor(ctx, donorID)
}
