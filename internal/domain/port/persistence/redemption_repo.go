package persistence

import (
	"context"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
)

// RedemptionRepository defines methods for storing gift card redemptions
type RedemptionRepository interface {
	// Create saves a redemption record. Called inside the same unit of work
	// as the coin debit so the pair is all-or-nothing.
	Create(ctx context.Context, record *entity.RedemptionRecord) error

	// ListByUser returns a user's redemptions, newest first
	ListByUser(ctx context.Context, userID uint64) ([]*entity.RedemptionRecord, error)
}
