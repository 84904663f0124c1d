package reward

import (
	"context"

	"github.com/google/uuid"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
	errs "github.com/helphub-app/helphub-server/internal/domain/error"
	"github.com/helphub-app/helphub-server/internal/domain/port/usecase"
)

// Redeem debits the gift card's coin price from the user's balance and
// records the redemption.
//
// The debit re-checks the balance under a row lock inside the transaction,
// so two overlapping redemptions by the same user serialize and the second
// is judged against the post-debit balance, never a stale read. The balance
// can never go negative.
func (s *Service) Redeem(ctx context.Context, userID uint64, giftCardID uint64) (*usecase.RedeemResult, error) {
	card, err := entity.GiftCardByID(giftCardID)
	if err != nil {
		return nil, err
	}
	return s.redeemCard(ctx, userID, card)
}

// RedeemByName resolves the gift card by its display name. The coins screen
// submits the card name rather than the catalog ID.
func (s *Service) RedeemByName(ctx context.Context, userID uint64, giftCardName string) (*usecase.RedeemResult, error) {
	card, err := entity.GiftCardByName(giftCardName)
	if err != nil {
		return nil, err
	}
	return s.redeemCard(ctx, userID, card)
}

func (s *Service) redeemCard(ctx context.Context, userID uint64, card entity.GiftCard) (*usecase.RedeemResult, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
				s.logger.Error("Failed to roll back redemption transaction", map[string]any{
					"user_id": userID,
					"error":   rbErr.Error(),
				})
			}
		}
	}()

	userRepo := s.uow.GetUserRepository(txCtx)
	redemptionRepo := s.uow.GetRedemptionRepository(txCtx)

	updated, err := userRepo.AdjustCoins(txCtx, userID, -card.CoinsRequired)
	if err != nil {
		if errs.IsInsufficientCoinsError(err) {
			s.logger.Warn("Redemption rejected: insufficient coins", map[string]any{
				"user_id":   userID,
				"gift_card": card.Name,
				"required":  card.CoinsRequired,
			})
		}
		return nil, err
	}

	record := entity.NewRedemptionRecord(uuid.NewString(), userID, card, updated.CoinBalance(), s.timeProvider)
	if err := redemptionRepo.Create(txCtx, record); err != nil {
		s.logger.Error("Failed to persist redemption record", map[string]any{
			"user_id":   userID,
			"gift_card": card.Name,
			"error":     err.Error(),
		})
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}
	committed = true

	s.invalidateProfile(ctx, updated.Email)

	s.logger.Info("Gift card redeemed", map[string]any{
		"user_id":    userID,
		"gift_card":  card.Name,
		"coins":      card.CoinsRequired,
		"coins_left": updated.CoinBalance(),
	})

	return &usecase.RedeemResult{
		Record:    record,
		GiftCard:  card,
		CoinsLeft: updated.CoinBalance(),
	}, nil
}
