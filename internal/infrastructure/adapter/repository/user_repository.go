package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
	errs "github.com/helphub-app/helphub-server/internal/domain/error"
	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/model"
)

// donorRoles lists the roles that hold a coin balance
var donorRoles = []string{string(entity.RoleIndividual), string(entity.RoleOrganization)}

// UserRepository implements UserRepository interface using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a user model to an entity
func (r *UserRepository) modelToEntity(userModel *model.User) (*entity.User, error) {
	user, err := entity.NewUser(
		userModel.PublicID,
		userModel.Name,
		userModel.Email,
		userModel.PasswordHash,
		userModel.ContactNumber,
		userModel.Address,
		entity.Role(userModel.Role),
		r.timeProvider,
	)
	if err != nil {
		r.logger.Error("Failed to rebuild user entity from storage", map[string]any{
			"user_id": userModel.ID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: failed to rebuild user entity: %s", errs.ErrInternalServer, err.Error())
	}

	user.ID = userModel.ID
	user.SetCoinBalance(userModel.CoinBalance)
	user.DonationCount = userModel.DonationCount
	user.VerificationStatus = entity.VerificationStatus(userModel.VerificationStatus)
	user.CreatedAt = userModel.CreatedAt
	user.UpdatedAt = userModel.UpdatedAt

	return user, nil
}

// entityToModel converts a user entity to its database model
func entityToModel(user *entity.User) model.User {
	return model.User{
		ID:                 user.ID,
		PublicID:           user.PublicID,
		Name:               user.Name,
		Email:              user.Email,
		PasswordHash:       user.PasswordHash,
		ContactNumber:      user.ContactNumber,
		Address:            user.Address,
		Role:               string(user.Role),
		CoinBalance:        user.CoinBalance(),
		DonationCount:      user.DonationCount,
		VerificationStatus: string(user.VerificationStatus),
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), mergeFields(fields, map[string]any{
		"error": err.Error(),
	}))

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrUserNotFound
	}

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateUser
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

func mergeFields(base, extra map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// GetByID retrieves a user by internal ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, map[string]any{"user_id": id})
	}
	return r.modelToEntity(&userModel)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, r.handleDatabaseError("getting user by email", result.Error, map[string]any{"email": email})
	}
	return r.modelToEntity(&userModel)
}

// GetByPublicID retrieves a user by its public UUID
func (r *UserRepository) GetByPublicID(ctx context.Context, publicID string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&userModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user by public id", result.Error, map[string]any{"public_id": publicID})
	}
	return r.modelToEntity(&userModel)
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := entityToModel(user)
	userModel.ID = 0

	result := r.db.WithContext(ctx).Create(&userModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error, map[string]any{"email": user.Email})
	}

	user.ID = userModel.ID

	r.logger.Info("User created successfully", map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return nil
}

// ListByRole returns all users with the given role, newest first
func (r *UserRepository) ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	var userModels []model.User
	result := r.db.WithContext(ctx).
		Where("role = ?", string(role)).
		Order("created_at desc").
		Find(&userModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing users by role", result.Error, map[string]any{"role": role})
	}

	users := make([]*entity.User, 0, len(userModels))
	for i := range userModels {
		user, err := r.modelToEntity(&userModels[i])
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// AdjustCoins atomically applies a coin delta to the user's balance.
//
// The row is locked with FOR UPDATE so concurrent credits and debits against
// the same user serialize, and the negative-balance check always sees the
// latest committed balance. Intended to run inside a UnitOfWork transaction.
func (r *UserRepository) AdjustCoins(ctx context.Context, userID uint64, delta int64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&userModel, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, r.handleDatabaseError("locking user for coin adjustment", result.Error, map[string]any{"user_id": userID})
	}

	newBalance := userModel.CoinBalance + delta
	if newBalance < 0 {
		r.logger.Warn("Coin debit exceeds balance", map[string]any{
			"user_id":   userID,
			"available": userModel.CoinBalance,
			"required":  -delta,
		})
		return nil, errs.NewInsufficientCoinsError(userID, -delta, userModel.CoinBalance)
	}

	userModel.CoinBalance = newBalance
	if delta > 0 {
		userModel.DonationCount++
	}
	userModel.UpdatedAt = r.timeProvider.Now()

	result = r.db.WithContext(ctx).Model(&userModel).Updates(map[string]interface{}{
		"coin_balance":   userModel.CoinBalance,
		"donation_count": userModel.DonationCount,
		"updated_at":     userModel.UpdatedAt,
	})
	if result.Error != nil {
		return nil, r.handleDatabaseError("adjusting coins", result.Error, map[string]any{"user_id": userID})
	}

	r.logger.Debug("Coin balance adjusted", map[string]any{
		"user_id":     userID,
		"delta":       delta,
		"new_balance": newBalance,
	})

	return r.modelToEntity(&userModel)
}

// CoinRank returns the 1-based rank of the user among donors by coin balance
func (r *UserRepository) CoinRank(ctx context.Context, userID uint64) (int64, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, errs.ErrUserNotFound
		}
		return 0, r.handleDatabaseError("getting user for rank", result.Error, map[string]any{"user_id": userID})
	}

	var richer int64
	result = r.db.WithContext(ctx).Model(&model.User{}).
		Where("role IN ?", donorRoles).
		Where("coin_balance > ?", userModel.CoinBalance).
		Count(&richer)
	if result.Error != nil {
		return 0, r.handleDatabaseError("counting richer donors", result.Error, map[string]any{"user_id": userID})
	}

	return richer + 1, nil
}
