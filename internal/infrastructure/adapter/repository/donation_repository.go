package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
	errs "github.com/helphub-app/helphub-server/internal/domain/error"
	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/model"
)

// DonationRepository implements DonationRepository interface using GORM
type DonationRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewDonationRepository creates a new DonationRepository instance
func NewDonationRepository(db *gorm.DB, logger coreport.Logger) *DonationRepository {
	return &DonationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *DonationRepository) modelToEntity(requestModel *model.DonationRequest) (*entity.DonationRequest, error) {
	var details entity.DonationDetails
	if err := json.Unmarshal([]byte(requestModel.Details), &details); err != nil {
		r.logger.Error("Failed to decode donation details", map[string]any{
			"request_id": requestModel.PublicID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("%w: corrupt donation details: %s", errs.ErrInternalServer, err.Error())
	}

	return &entity.DonationRequest{
		ID:          requestModel.ID,
		PublicID:    requestModel.PublicID,
		DonorID:     requestModel.DonorID,
		Type:        entity.DonationType(requestModel.Type),
		Address:     requestModel.Address,
		Details:     details,
		Status:      entity.DonationStatus(requestModel.Status),
		NGOID:       requestModel.NGOID,
		CoinsEarned: requestModel.CoinsEarned,
		CreatedAt:   requestModel.CreatedAt,
		DecidedAt:   requestModel.DecidedAt,
	}, nil
}

func (r *DonationRepository) entityToModel(request *entity.DonationRequest) (model.DonationRequest, error) {
	details, err := json.Marshal(request.Details)
	if err != nil {
		return model.DonationRequest{}, fmt.Errorf("%w: failed to encode donation details: %s", errs.ErrInternalServer, err.Error())
	}

	return model.DonationRequest{
		ID:          request.ID,
		PublicID:    request.PublicID,
		DonorID:     request.DonorID,
		Type:        string(request.Type),
		Address:     request.Address,
		Details:     string(details),
		Status:      string(request.Status),
		NGOID:       request.NGOID,
		CoinsEarned: request.CoinsEarned,
		CreatedAt:   request.CreatedAt,
		DecidedAt:   request.DecidedAt,
	}, nil
}

func (r *DonationRepository) handleDatabaseError(operation string, err error, requestID string) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"request_id": requestID,
		"error":      err.Error(),
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrDonationNotFound
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create saves a new pending donation request
func (r *DonationRepository) Create(ctx context.Context, request *entity.DonationRequest) error {
	requestModel, err := r.entityToModel(request)
	if err != nil {
		return err
	}
	requestModel.ID = 0

	result := r.db.WithContext(ctx).Create(&requestModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating donation request", result.Error, request.PublicID)
	}

	request.ID = requestModel.ID
	return nil
}

// GetByPublicID retrieves a donation request by its public UUID
func (r *DonationRepository) GetByPublicID(ctx context.Context, publicID string) (*entity.DonationRequest, error) {
	var requestModel model.DonationRequest
	result := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&requestModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting donation request", result.Error, publicID)
	}
	return r.modelToEntity(&requestModel)
}

// ListPending returns all pending requests, oldest first
func (r *DonationRepository) ListPending(ctx context.Context) ([]*entity.DonationRequest, error) {
	var requestModels []model.DonationRequest
	result := r.db.WithContext(ctx).
		Where("status = ?", string(entity.StatusPending)).
		Order("created_at asc").
		Find(&requestModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing pending requests", result.Error, "")
	}
	return r.modelsToEntities(requestModels)
}

// ListByDonor returns all requests of a donor, newest first
func (r *DonationRepository) ListByDonor(ctx context.Context, donorID uint64) ([]*entity.DonationRequest, error) {
	var requestModels []model.DonationRequest
	result := r.db.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Order("created_at desc").
		Find(&requestModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing donor requests", result.Error, "")
	}
	return r.modelsToEntities(requestModels)
}

func (r *DonationRepository) modelsToEntities(requestModels []model.DonationRequest) ([]*entity.DonationRequest, error) {
	requests := make([]*entity.DonationRequest, 0, len(requestModels))
	for i := range requestModels {
		request, err := r.modelToEntity(&requestModels[i])
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, nil
}

// MarkDecided persists a decided request with a compare-and-set on the
// pending status. The UPDATE matches on public_id AND status='pending', so
// of two racing decisions exactly one affects a row. The loser is told apart
// from a missing request by a follow-up existence check.
func (r *DonationRepository) MarkDecided(ctx context.Context, request *entity.DonationRequest) error {
	result := r.db.WithContext(ctx).Model(&model.DonationRequest{}).
		Where("public_id = ? AND status = ?", request.PublicID, string(entity.StatusPending)).
		Updates(map[string]interface{}{
			"status":       string(request.Status),
			"ngo_id":       request.NGOID,
			"coins_earned": request.CoinsEarned,
			"decided_at":   request.DecidedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("marking request decided", result.Error, request.PublicID)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.DonationRequest{}).
			Where("public_id = ?", request.PublicID).
			Count(&count).Error; err != nil {
			return r.handleDatabaseError("checking request existence", err, request.PublicID)
		}
		if count == 0 {
			return errs.ErrDonationNotFound
		}
		r.logger.Warn("Decision lost the race, request already decided", map[string]any{
			"request_id": request.PublicID,
		})
		return errs.ErrAlreadyDecided
	}

	return nil
}
