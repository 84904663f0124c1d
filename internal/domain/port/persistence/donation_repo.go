package persistence

import (
	"context"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
)

// DonationRepository defines essential methods to interact with donation
// request data
type DonationRepository interface {
	// Create saves a new pending donation request
	//
	// Possible errors:
	// - ErrUserNotFound: If the referenced donor does not exist
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, request *entity.DonationRequest) error

	// GetByPublicID retrieves a donation request by its public UUID
	//
	// Possible errors:
	// - ErrDonationNotFound: If no request matches
	// - ErrDatabaseConnection: If database connection fails
	GetByPublicID(ctx context.Context, publicID string) (*entity.DonationRequest, error)

	// ListPending returns all pending requests ordered by creation time
	// ascending so the oldest request is served first
	ListPending(ctx context.Context) ([]*entity.DonationRequest, error)

	// ListByDonor returns all requests of a donor, any status, newest first
	ListByDonor(ctx context.Context, donorID uint64) ([]*entity.DonationRequest, error)

	// MarkDecided persists a decided request with a compare-and-set on the
	// pending status: the UPDATE only matches rows still pending, so exactly
	// one of two racing decisions can win.
	//
	// Possible errors:
	// - ErrAlreadyDecided: If the request was decided by a concurrent call
	// - ErrDonationNotFound: If the request does not exist
	// - ErrDatabaseConnection: If database connection fails
	MarkDecided(ctx context.Context, request *entity.DonationRequest) error
}
