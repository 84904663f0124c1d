package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/helphub-app/helphub-server/internal/domain/error"
)

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fixedClock{now: fixedTime}

	t.Run("valid donor creation", func(t *testing.T) {
		user, err := NewUser("pub-1", "Asha Rao", "Asha@Example.com ", "hash", "9876543210", "12 Elm St", RoleIndividual, clock)

		require.NoError(t, err)
		assert.Equal(t, "Asha Rao", user.Name)
		assert.Equal(t, "asha@example.com", user.Email)
		assert.Equal(t, RoleIndividual, user.Role)
		assert.Equal(t, int64(0), user.CoinBalance())
		assert.Equal(t, VerificationStatus(""), user.VerificationStatus)
		assert.Equal(t, fixedTime, user.CreatedAt)
	})

	t.Run("ngo starts unverified", func(t *testing.T) {
		user, err := NewUser("pub-2", "Food For All", "ngo@example.com", "hash", "9876543210", "4 Oak Ave", RoleNGO, clock)

		require.NoError(t, err)
		assert.Equal(t, VerificationPending, user.VerificationStatus)
		assert.False(t, user.IsVerifiedNGO())
		assert.False(t, user.IsDonor())
	})

	t.Run("missing required fields", func(t *testing.T) {
		_, err := NewUser("pub-3", "", "", "hash", "", "", RoleIndividual, clock)

		require.Error(t, err)
		var valErr *errs.ValidationError
		require.True(t, errors.As(err, &valErr))
		assert.Contains(t, valErr.Fields, "name")
		assert.Contains(t, valErr.Fields, "email")
		assert.Contains(t, valErr.Fields, "address")
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := NewUser("pub-4", "Someone", "a@b.com", "hash", "1", "addr", Role("admin"), clock)

		require.Error(t, err)
		assert.True(t, errs.IsValidationError(err))
	})
}

func TestUserCoinLedger(t *testing.T) {
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	laterTime := fixedTime.Add(time.Hour)

	newDonor := func() *User {
		user, err := NewUser("pub-1", "Asha Rao", "asha@example.com", "hash", "1", "12 Elm St", RoleIndividual, &fixedClock{now: fixedTime})
		require.NoError(t, err)
		return user
	}

	t.Run("credit increases balance and donation count", func(t *testing.T) {
		user := newDonor()
		user.CreditCoins(50, &fixedClock{now: laterTime})

		assert.Equal(t, int64(50), user.CoinBalance())
		assert.Equal(t, uint64(1), user.DonationCount)
		assert.Equal(t, laterTime, user.UpdatedAt)
	})

	t.Run("debit reduces balance", func(t *testing.T) {
		user := newDonor()
		user.SetCoinBalance(15000)

		err := user.DebitCoins(10000, &fixedClock{now: laterTime})

		require.NoError(t, err)
		assert.Equal(t, int64(5000), user.CoinBalance())
	})

	t.Run("debit beyond balance fails and leaves balance unchanged", func(t *testing.T) {
		user := newDonor()
		user.SetCoinBalance(15000)

		err := user.DebitCoins(20000, &fixedClock{now: laterTime})

		require.Error(t, err)
		assert.True(t, errs.IsInsufficientCoinsError(err))
		assert.Equal(t, int64(15000), user.CoinBalance())

		var coinsErr *errs.InsufficientCoinsError
		require.True(t, errors.As(err, &coinsErr))
		assert.Equal(t, int64(5000), coinsErr.Shortfall())
	})

	t.Run("can redeem check", func(t *testing.T) {
		user := newDonor()
		user.SetCoinBalance(10000)

		assert.True(t, user.CanRedeem(10000))
		assert.False(t, user.CanRedeem(10001))
	})
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole("individual"))
	assert.True(t, IsValidRole("organization"))
	assert.True(t, IsValidRole("ngo"))
	assert.False(t, IsValidRole("admin"))
	assert.False(t, IsValidRole(""))
}
