package persistence

import (
	"context"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user data
type UserRepository interface {
	// GetByID retrieves a user by internal ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByEmail retrieves a user by email. This is the identity resolver
	// backing the client's stored-email session mechanism.
	//
	// Possible errors:
	// - ErrUserNotFound: If no user matches the email
	// - ErrDatabaseConnection: If database connection fails
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// GetByPublicID retrieves a user by its public UUID
	GetByPublicID(ctx context.Context, publicID string) (*entity.User, error)

	// Create creates a new user
	//
	// Possible errors:
	// - ErrDuplicateUser: If a user with the same email already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error

	// ListByRole returns all users with the given role, newest first.
	// Backs the NGO directory endpoint.
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)

	// AdjustCoins atomically applies a coin delta to the user's balance with
	// a row lock, rejecting any change that would drive the balance negative.
	// Returns the updated user.
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrInsufficientCoins: If a debit exceeds the balance
	// - ErrDatabaseConnection: If database connection fails
	AdjustCoins(ctx context.Context, userID uint64, delta int64) (*entity.User, error)

	// CoinRank returns the 1-based rank of the user among all donors by coin
	// balance (ties share the better rank)
	CoinRank(ctx context.Context, userID uint64) (int64, error)
}
