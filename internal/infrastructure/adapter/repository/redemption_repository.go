package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
	errs "github.com/helphub-app/helphub-server/internal/domain/error"
	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/model"
)

// RedemptionRepository implements RedemptionRepository interface using GORM
type RedemptionRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewRedemptionRepository creates a new RedemptionRepository instance
func NewRedemptionRepository(db *gorm.DB, logger coreport.Logger) *RedemptionRepository {
	return &RedemptionRepository{
		db:     db,
		logger: logger,
	}
}

// Create saves a redemption record
func (r *RedemptionRepository) Create(ctx context.Context, record *entity.RedemptionRecord) error {
	redemptionModel := model.Redemption{
		PublicID:     record.PublicID,
		UserID:       record.UserID,
		GiftCardID:   record.GiftCardID,
		GiftCardName: record.GiftCardName,
		CoinsSpent:   record.CoinsSpent,
		BalanceAfter: record.BalanceAfter,
		RedeemedAt:   record.RedeemedAt,
	}

	result := r.db.WithContext(ctx).Create(&redemptionModel)
	if result.Error != nil {
		r.logger.Error("Database error when creating redemption record", map[string]any{
			"user_id": record.UserID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	record.ID = redemptionModel.ID
	return nil
}

// ListByUser returns all redemptions of a user, newest first
func (r *RedemptionRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.RedemptionRecord, error) {
	var redemptionModels []model.Redemption
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("redeemed_at desc").
		Find(&redemptionModels)
	if result.Error != nil {
		r.logger.Error("Database error when listing redemptions", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	records := make([]*entity.RedemptionRecord, 0, len(redemptionModels))
	for _, m := range redemptionModels {
		records = append(records, &entity.RedemptionRecord{
			ID:           m.ID,
			PublicID:     m.PublicID,
			UserID:       m.UserID,
			GiftCardID:   m.GiftCardID,
			GiftCardName: m.GiftCardName,
			CoinsSpent:   m.CoinsSpent,
			BalanceAfter: m.BalanceAfter,
			RedeemedAt:   m.RedeemedAt,
		})
	}
	return records, nil
}
