package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/helphub-app/helphub-server/internal/domain/error"
)

func validFoodDetails() DonationDetails {
	return DonationDetails{
		FoodItem:     "Rice",
		FoodQuantity: "5 kg",
		DietaryType:  DietVegetarian,
		ExpiryWindow: "48 hours",
	}
}

func TestNewDonationRequest(t *testing.T) {
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fixedClock{now: fixedTime}

	t.Run("valid food donation", func(t *testing.T) {
		req, err := NewDonationRequest("req-1", 7, "Food", "12 Elm St", validFoodDetails(), clock)

		require.NoError(t, err)
		assert.Equal(t, StatusPending, req.Status)
		assert.Equal(t, TypeFood, req.Type)
		assert.Equal(t, uint64(7), req.DonorID)
		assert.Nil(t, req.NGOID)
		assert.Nil(t, req.CoinsEarned)
		assert.Nil(t, req.DecidedAt)
		assert.Equal(t, fixedTime, req.CreatedAt)
	})

	t.Run("valid money donation", func(t *testing.T) {
		req, err := NewDonationRequest("req-2", 7, "Money", "12 Elm St", DonationDetails{MoneyAmount: "500"}, clock)

		require.NoError(t, err)
		assert.Equal(t, TypeMoney, req.Type)
		assert.Equal(t, "500", req.Details.MoneyAmount)
	})

	t.Run("food donation missing dietary type fails with validation error", func(t *testing.T) {
		details := validFoodDetails()
		details.DietaryType = ""

		req, err := NewDonationRequest("req-3", 7, "Food", "12 Elm St", details, clock)

		require.Error(t, err)
		assert.Nil(t, req)
		var valErr *errs.ValidationError
		require.True(t, errors.As(err, &valErr))
		assert.Contains(t, valErr.Fields, "dietaryType")
	})

	t.Run("empty address", func(t *testing.T) {
		_, err := NewDonationRequest("req-4", 7, "Clothes", "  ", DonationDetails{ClothesDescription: "Winter jackets"}, clock)

		require.Error(t, err)
		var valErr *errs.ValidationError
		require.True(t, errors.As(err, &valErr))
		assert.Contains(t, valErr.Fields, "address")
	})

	t.Run("invalid donation type", func(t *testing.T) {
		_, err := NewDonationRequest("req-5", 7, "Toys", "12 Elm St", DonationDetails{}, clock)

		require.Error(t, err)
		var valErr *errs.ValidationError
		require.True(t, errors.As(err, &valErr))
		assert.Contains(t, valErr.Fields, "type")
	})

	t.Run("negative money amount", func(t *testing.T) {
		_, err := NewDonationRequest("req-6", 7, "Money", "12 Elm St", DonationDetails{MoneyAmount: "-10"}, clock)

		require.Error(t, err)
		assert.True(t, errs.IsValidationError(err))
	})

	t.Run("stray variant fields are dropped", func(t *testing.T) {
		details := DonationDetails{ClothesDescription: "Shirts", MoneyAmount: "100"}
		req, err := NewDonationRequest("req-7", 7, "Clothes", "12 Elm St", details, clock)

		require.NoError(t, err)
		assert.Equal(t, "Shirts", req.Details.ClothesDescription)
		assert.Empty(t, req.Details.MoneyAmount)
	})
}

func TestDonationDecisionTransitions(t *testing.T) {
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	decisionTime := fixedTime.Add(30 * time.Minute)

	newPending := func() *DonationRequest {
		req, err := NewDonationRequest("req-1", 7, "Money", "12 Elm St", DonationDetails{MoneyAmount: "500"}, &fixedClock{now: fixedTime})
		require.NoError(t, err)
		return req
	}

	t.Run("accept sets ngo, coins and decision time", func(t *testing.T) {
		req := newPending()

		err := req.Accept(21, 50, &fixedClock{now: decisionTime})

		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, req.Status)
		require.NotNil(t, req.NGOID)
		assert.Equal(t, uint64(21), *req.NGOID)
		require.NotNil(t, req.CoinsEarned)
		assert.Equal(t, int64(50), *req.CoinsEarned)
		require.NotNil(t, req.DecidedAt)
		assert.Equal(t, decisionTime, *req.DecidedAt)
		assert.False(t, req.IsPending())
	})

	t.Run("reject sets ngo and decision time without coins", func(t *testing.T) {
		req := newPending()

		err := req.Reject(21, &fixedClock{now: decisionTime})

		require.NoError(t, err)
		assert.Equal(t, StatusRejected, req.Status)
		assert.Nil(t, req.CoinsEarned)
		require.NotNil(t, req.DecidedAt)
	})

	t.Run("second decision fails with AlreadyDecided", func(t *testing.T) {
		req := newPending()
		require.NoError(t, req.Accept(21, 50, &fixedClock{now: decisionTime}))

		err := req.Reject(22, &fixedClock{now: decisionTime})
		assert.ErrorIs(t, err, errs.ErrAlreadyDecided)

		err = req.Accept(22, 50, &fixedClock{now: decisionTime})
		assert.ErrorIs(t, err, errs.ErrAlreadyDecided)

		// First decision untouched
		assert.Equal(t, StatusAccepted, req.Status)
		assert.Equal(t, uint64(21), *req.NGOID)
	})
}

func TestCoinsEarnedMatchesStatus(t *testing.T) {
	// coinsEarned must be set iff status is accepted
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fixedClock{now: fixedTime}

	pending, err := NewDonationRequest("req-1", 7, "Money", "12 Elm St", DonationDetails{MoneyAmount: "500"}, clock)
	require.NoError(t, err)
	assert.Nil(t, pending.CoinsEarned)

	accepted, err := NewDonationRequest("req-2", 7, "Money", "12 Elm St", DonationDetails{MoneyAmount: "500"}, clock)
	require.NoError(t, err)
	require.NoError(t, accepted.Accept(21, 50, clock))
	assert.NotNil(t, accepted.CoinsEarned)

	rejected, err := NewDonationRequest("req-3", 7, "Money", "12 Elm St", DonationDetails{MoneyAmount: "500"}, clock)
	require.NoError(t, err)
	require.NoError(t, rejected.Reject(21, clock))
	assert.Nil(t, rejected.CoinsEarned)
}
