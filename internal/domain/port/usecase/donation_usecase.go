package usecase

import (
	"context"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
)

// Decision is an NGO's verdict on a pending donation request
type Decision string

// Decisions
const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// SubmitDonationRequest carries a donor's submission
type SubmitDonationRequest struct {
	DonorID uint64
	Type    string
	Address string
	Details entity.DonationDetails
}

// DecideResult describes the outcome of a processed decision
type DecideResult struct {
	Request     *entity.DonationRequest
	CoinsEarned int64 // zero on reject
}

// DonationUseCase defines the donation request lifecycle operations
type DonationUseCase interface {
	// Submit validates and persists a new pending donation request.
	// No coins are granted at submission time.
	Submit(ctx context.Context, req SubmitDonationRequest) (*entity.DonationRequest, error)

	// ListPending returns all pending requests, oldest first, for the NGO queue
	ListPending(ctx context.Context) ([]*entity.DonationRequest, error)

	// Decide applies an accept or reject decision by the given NGO. On accept
	// the donor is credited the configured reward atomically with the status
	// transition. A request can be decided exactly once.
	Decide(ctx context.Context, requestPublicID string, ngoID uint64, decision Decision) (*DecideResult, error)

	// ListHistory returns all of a donor's requests, newest first
	ListHistory(ctx context.Context, donorID uint64) ([]*entity.DonationRequest, error)
}
