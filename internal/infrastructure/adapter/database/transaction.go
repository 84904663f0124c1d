package database

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
	"github.com/helphub-app/helphub-server/internal/domain/port/persistence"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/repository"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// Context keys
const txKey contextKey = "tx"

// UnitOfWork implements the unit of work pattern for database transactions.
// The decision flow uses it to pair the status transition with the donor's
// coin credit, and the redemption flow to pair the debit with the record
// insert.
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) persistence.UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Begin starts a new database transaction
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	u.logger.Debug("Beginning database transaction", nil)

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// Store transaction in context
	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the current transaction
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	u.logger.Debug("Committing database transaction", nil)
	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Rollback rolls back the current transaction with improved error handling
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	u.logger.Debug("Rolling back database transaction", nil)

	err := tx.Rollback().Error

	// If the error indicates the transaction was already committed or rolled back,
	// log it as a warning but don't return an error
	if err != nil && strings.Contains(err.Error(), "already been committed or rolled back") {
		u.logger.Warn("Transaction has already been committed or rolled back", map[string]any{
			"error": err.Error(),
		})
		return nil
	}

	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

// GetUserRepository returns a user repository in the current transaction
func (u *UnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	db := u.getDbFromContext(ctx)
	return repository.NewUserRepository(db, u.timeProvider, u.logger)
}

// GetDonationRepository returns a donation repository in the current transaction
func (u *UnitOfWork) GetDonationRepository(ctx context.Context) persistence.DonationRepository {
	db := u.getDbFromContext(ctx)
	return repository.NewDonationRepository(db, u.logger)
}

// GetRedemptionRepository returns a redemption repository in the current transaction
func (u *UnitOfWork) GetRedemptionRepository(ctx context.Context) persistence.RedemptionRepository {
	db := u.getDbFromContext(ctx)
	return repository.NewRedemptionRepository(db, u.logger)
}

// getDbFromContext retrieves the database instance from context
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}
