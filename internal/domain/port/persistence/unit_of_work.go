package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating operations across multiple
// repositories inside one database transaction. The decision flow uses it to
// pair the status transition with the coin credit, and the redemption flow to
// pair the debit with the record insert.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetUserRepository returns a user repository bound to the current transaction
	GetUserRepository(ctx context.Context) UserRepository

	// GetDonationRepository returns a donation repository bound to the current transaction
	GetDonationRepository(ctx context.Context) DonationRepository

	// GetRedemptionRepository returns a redemption repository bound to the current transaction
	GetRedemptionRepository(ctx context.Context) RedemptionRepository
}
