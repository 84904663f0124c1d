package usecase

import (
	"context"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
)

// RedeemResult confirms a redemption and reports the remaining balance
type RedeemResult struct {
	Record    *entity.RedemptionRecord
	GiftCard  entity.GiftCard
	CoinsLeft int64
}

// Profile is the dashboard projection of a donor
type Profile struct {
	PublicID       string
	Name           string
	Address        string
	Coins          int64
	TotalDonations uint64
	Rank           int64
}

// RewardUseCase defines the coin ledger operations
type RewardUseCase interface {
	// Redeem debits the gift card's coin price from the user and records the
	// redemption. The debit and the record are all-or-nothing.
	Redeem(ctx context.Context, userID uint64, giftCardID uint64) (*RedeemResult, error)

	// RedeemByName resolves the gift card by display name, matching the
	// catalog shown on the coins screen
	RedeemByName(ctx context.Context, userID uint64, giftCardName string) (*RedeemResult, error)

	// Catalog returns the static gift card catalog
	Catalog(ctx context.Context) []entity.GiftCard

	// GetProfile returns the donor's dashboard stats (coins, donations, rank)
	GetProfile(ctx context.Context, email string) (*Profile, error)
}
