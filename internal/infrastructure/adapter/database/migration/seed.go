package migration

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
	errs "github.com/helphub-app/helphub-server/internal/domain/error"
	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
	"github.com/helphub-app/helphub-server/internal/domain/port/persistence"
)

// SeedDefaultNGO creates a pre-verified NGO account for local development so
// the decision flow can be exercised without a manual verification step.
// Idempotent: an account that already exists is left untouched.
func SeedDefaultNGO(
	ctx context.Context,
	userRepo persistence.UserRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	email, password string,
) error {
	if email == "" || password == "" {
		return errors.New("default ngo email and password are required for seeding")
	}

	if _, err := userRepo.GetByEmail(ctx, email); err == nil {
		logger.Info("Default NGO account already exists, skipping seed", map[string]any{
			"email": email,
		})
		return nil
	} else if !errors.Is(err, errs.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	ngo, err := entity.NewUser(
		uuid.NewString(),
		"HelpHub Partner NGO",
		email,
		string(hash),
		"",
		"HelpHub HQ",
		entity.RoleNGO,
		timeProvider,
	)
	if err != nil {
		return err
	}
	ngo.VerificationStatus = entity.VerificationVerified

	if err := userRepo.Create(ctx, ngo); err != nil {
		if errors.Is(err, errs.ErrDuplicateUser) {
			return nil
		}
		return err
	}

	logger.Info("Seeded default verified NGO account", map[string]any{
		"email": email,
	})
	return nil
}
