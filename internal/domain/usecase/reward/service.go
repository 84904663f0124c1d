package reward

import (
	"context"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
	"github.com/helphub-app/helphub-server/internal/domain/port/persistence"
	"github.com/helphub-app/helphub-server/internal/domain/port/usecase"
)

// ProfileCache caches dashboard profile projections. A nil cache disables
// caching entirely.
type ProfileCache interface {
	// Get returns the cached profile for an email, if present
	Get(ctx context.Context, email string) (*usecase.Profile, bool)
	// Set stores a profile for an email
	Set(ctx context.Context, email string, profile *usecase.Profile)
	// Invalidate drops the cached profile after a balance change
	Invalidate(ctx context.Context, email string)
}

// Service implements the coin reward ledger: redemptions against the gift
// card catalog and the dashboard profile projection
type Service struct {
	uow          persistence.UnitOfWork
	userRepo     persistence.UserRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	cache        ProfileCache
}

// NewService creates a new reward service. cache may be nil.
func NewService(
	uow persistence.UnitOfWork,
	userRepo persistence.UserRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	cache ProfileCache,
) *Service {
	return &Service{
		uow:          uow,
		userRepo:     userRepo,
		timeProvider: timeProvider,
		logger:       logger,
		cache:        cache,
	}
}

// Catalog returns the static gift card catalog
func (s *Service) Catalog(_ context.Context) []entity.GiftCard {
	return entity.GiftCardCatalog()
}

// GetProfile returns the donor's dashboard stats: coins, total donations and
// rank among donors by coin balance
func (s *Service) GetProfile(ctx context.Context, email string) (*usecase.Profile, error) {
	if s.cache != nil {
		if profile, ok := s.cache.Get(ctx, email); ok {
			return profile, nil
		}
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	rank, err := s.userRepo.CoinRank(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	profile := &usecase.Profile{
		PublicID:       user.PublicID,
		Name:           user.Name,
		Address:        user.Address,
		Coins:          user.CoinBalance(),
		TotalDonations: user.DonationCount,
		Rank:           rank,
	}

	if s.cache != nil {
		s.cache.Set(ctx, email, profile)
	}

	return profile, nil
}

// invalidateProfile drops a stale cached profile after a balance change
func (s *Service) invalidateProfile(ctx context.Context, email string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, email)
	}
}
