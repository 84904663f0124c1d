package reward

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
	errs "github.com/helphub-app/helphub-server/internal/domain/error"
	"github.com/helphub-app/helphub-server/internal/domain/port/usecase"
	"github.com/helphub-app/helphub-server/internal/testutil"
)

// mapCache is an in-memory ProfileCache recording its traffic
type mapCache struct {
	entries map[string]*usecase.Profile
	hits    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string]*usecase.Profile{}}
}

func (c *mapCache) Get(_ context.Context, email string) (*usecase.Profile, bool) {
	profile, ok := c.entries[email]
	if ok {
		c.hits++
	}
	return profile, ok
}

func (c *mapCache) Set(_ context.Context, email string, profile *usecase.Profile) {
	c.entries[email] = profile
}

func (c *mapCache) Invalidate(_ context.Context, email string) {
	delete(c.entries, email)
}

type fixture struct {
	service     *Service
	users       *testutil.UserRepo
	redemptions *testutil.RedemptionRepo
	uow         *testutil.UnitOfWork
	cache       *mapCache
	donor       *entity.User
}

func newFixture(t *testing.T, coins int64) *fixture {
	t.Helper()
	clock := testutil.NewClock()
	users := testutil.NewUserRepo(clock)
	redemptions := testutil.NewRedemptionRepo()
	uow := &testutil.UnitOfWork{
		Users:       users,
		Donations:   testutil.NewDonationRepo(),
		Redemptions: redemptions,
	}
	cache := newMapCache()

	donor, err := entity.NewUser("donor-uuid", "Asha", "asha@example.com", "hash", "9876543210", "Pune", entity.RoleIndividual, clock)
	require.NoError(t, err)
	donor.SetCoinBalance(coins)
	users.Seed(donor)

	return &fixture{
		service:     NewService(uow, users, clock, testutil.NopLogger{}, cache),
		users:       users,
		redemptions: redemptions,
		uow:         uow,
		cache:       cache,
		donor:       donor,
	}
}

func TestRedeem(t *testing.T) {
	t.Run("debits coins and records the redemption", func(t *testing.T) {
		f := newFixture(t, 15000)

		result, err := f.service.Redeem(context.Background(), f.donor.ID, 1) // Amazon ₹100, 10000 coins

		require.NoError(t, err)
		assert.Equal(t, int64(5000), result.CoinsLeft)
		assert.Equal(t, "Amazon ₹100", result.GiftCard.Name)
		assert.Equal(t, int64(10000), result.Record.CoinsSpent)
		assert.Equal(t, int64(5000), result.Record.BalanceAfter)

		assert.Equal(t, int64(5000), f.donor.CoinBalance())
		require.Len(t, f.redemptions.Records, 1)
		assert.Equal(t, 1, f.uow.Commits)
	})

	t.Run("insufficient balance leaves everything untouched", func(t *testing.T) {
		f := newFixture(t, 5000)

		_, err := f.service.Redeem(context.Background(), f.donor.ID, 2) // 20000 coins

		assert.True(t, errs.IsInsufficientCoinsError(err))
		var insufficientErr *errs.InsufficientCoinsError
		require.ErrorAs(t, err, &insufficientErr)
		assert.Equal(t, int64(15000), insufficientErr.Shortfall())

		assert.Equal(t, int64(5000), f.donor.CoinBalance())
		assert.Empty(t, f.redemptions.Records)
		assert.Equal(t, 0, f.uow.Commits)
		assert.Equal(t, 1, f.uow.Rollbacks)
	})

	t.Run("redeeming the exact balance empties it", func(t *testing.T) {
		f := newFixture(t, 10000)

		result, err := f.service.Redeem(context.Background(), f.donor.ID, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(0), result.CoinsLeft)
	})

	t.Run("unknown gift card", func(t *testing.T) {
		f := newFixture(t, 100000)

		_, err := f.service.Redeem(context.Background(), f.donor.ID, 42)

		assert.ErrorIs(t, err, errs.ErrUnknownGiftCard)
		assert.Equal(t, int64(100000), f.donor.CoinBalance())
	})

	t.Run("invalidates the cached profile", func(t *testing.T) {
		f := newFixture(t, 15000)

		_, err := f.service.GetProfile(context.Background(), f.donor.Email)
		require.NoError(t, err)
		require.Contains(t, f.cache.entries, f.donor.Email)

		_, err = f.service.Redeem(context.Background(), f.donor.ID, 1)
		require.NoError(t, err)

		assert.NotContains(t, f.cache.entries, f.donor.Email)
	})
}

func TestRedeemByName(t *testing.T) {
	t.Run("resolves the card by display name", func(t *testing.T) {
		f := newFixture(t, 60000)

		result, err := f.service.RedeemByName(context.Background(), f.donor.ID, "Flipkart ₹500")

		require.NoError(t, err)
		assert.Equal(t, uint64(6), result.GiftCard.ID)
		assert.Equal(t, int64(10000), result.CoinsLeft)
	})

	t.Run("unknown name", func(t *testing.T) {
		f := newFixture(t, 60000)

		_, err := f.service.RedeemByName(context.Background(), f.donor.ID, "Unknown ₹999")

		assert.ErrorIs(t, err, errs.ErrUnknownGiftCard)
	})
}

func TestCatalog(t *testing.T) {
	f := newFixture(t, 0)

	catalog := f.service.Catalog(context.Background())

	assert.Len(t, catalog, 9)
	for _, card := range catalog {
		assert.Positive(t, card.CoinsRequired)
		assert.NotEmpty(t, card.Name)
	}
}

func TestGetProfile(t *testing.T) {
	t.Run("reports coins, donations and rank", func(t *testing.T) {
		f := newFixture(t, 300)
		richer, err := entity.NewUser("donor2-uuid", "Ravi", "ravi@example.com", "hash", "9876543211", "Delhi", entity.RoleIndividual, f.users.Clock)
		require.NoError(t, err)
		richer.SetCoinBalance(500)
		f.users.Seed(richer)
		f.donor.DonationCount = 6

		profile, err := f.service.GetProfile(context.Background(), f.donor.Email)

		require.NoError(t, err)
		assert.Equal(t, f.donor.PublicID, profile.PublicID)
		assert.Equal(t, int64(300), profile.Coins)
		assert.Equal(t, uint64(6), profile.TotalDonations)
		assert.Equal(t, int64(2), profile.Rank)
	})

	t.Run("serves repeat reads from the cache", func(t *testing.T) {
		f := newFixture(t, 300)

		_, err := f.service.GetProfile(context.Background(), f.donor.Email)
		require.NoError(t, err)
		_, err = f.service.GetProfile(context.Background(), f.donor.Email)
		require.NoError(t, err)

		assert.Equal(t, 1, f.cache.hits)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newFixture(t, 0)

		_, err := f.service.GetProfile(context.Background(), "ghost@example.com")

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("works without a cache", func(t *testing.T) {
		f := newFixture(t, 300)
		service := NewService(f.uow, f.users, f.users.Clock, testutil.NopLogger{}, nil)

		profile, err := service.GetProfile(context.Background(), f.donor.Email)

		require.NoError(t, err)
		assert.Equal(t, int64(300), profile.Coins)
	})
}
