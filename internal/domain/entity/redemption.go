package entity

import (
	"time"

	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
)

// RedemptionRecord records a gift card redemption. It is created in the same
// database transaction as the coin debit.
type RedemptionRecord struct {
	ID           uint64
	PublicID     string
	UserID       uint64
	GiftCardID   uint64
	GiftCardName string
	CoinsSpent   int64
	BalanceAfter int64
	RedeemedAt   time.Time
}

// NewRedemptionRecord creates a redemption record for a debited gift card
func NewRedemptionRecord(publicID string, userID uint64, card GiftCard, balanceAfter int64, timeProvider coreport.TimeProvider) *RedemptionRecord {
	return &RedemptionRecord{
		PublicID:     publicID,
		UserID:       userID,
		GiftCardID:   card.ID,
		GiftCardName: card.Name,
		CoinsSpent:   card.CoinsRequired,
		BalanceAfter: balanceAfter,
		RedeemedAt:   timeProvider.Now(),
	}
}
