package migration

import (
	"context"
	"errors"

	"gorm.io/gorm"

	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/model"
)

const (
	// CurrentSchemaVersion represents the current database schema version
	CurrentSchemaVersion = "1.0.0"
)

// MigrationManager manages database migrations
type MigrationManager struct {
	db               *gorm.DB
	logger           coreport.Logger
	timeProvider     coreport.TimeProvider
	advancedIndexMgr *AdvancedIndexManager
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:               db,
		logger:           logger,
		timeProvider:     timeProvider,
		advancedIndexMgr: NewAdvancedIndexManager(db, logger),
	}
}

// MigrateAll performs all migrations
func (m *MigrationManager) MigrateAll() error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
	})

	// Create migration version table first
	if err := m.db.AutoMigrate(&model.MigrationVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Check current version
	currentVersion, err := m.GetCurrentVersion(context.Background())
	if err != nil {
		m.logger.Error("Failed to check current schema version", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if currentVersion == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	// Auto-migrate models
	if err := m.autoMigrateModels(); err != nil {
		m.logger.Error("Failed to auto-migrate models", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Create basic indexes
	if err := m.createIndexes(); err != nil {
		m.logger.Error("Failed to create indexes", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Create advanced PostgreSQL indexes for better performance
	if err := m.advancedIndexMgr.CreateAdvancedIndexes(); err != nil {
		m.logger.Error("Failed to create advanced indexes", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Apply performance tweaks
	if err := m.advancedIndexMgr.CreatePerformanceTweaks(); err != nil {
		m.logger.Error("Failed to apply performance tweaks", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Update migration version
	if err := m.setVersion(context.Background(), CurrentSchemaVersion, "Full schema migration"); err != nil {
		m.logger.Error("Failed to update schema version", map[string]any{
			"error":   err.Error(),
			"version": CurrentSchemaVersion,
		})
		return err
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": CurrentSchemaVersion,
	})
	return nil
}

// GetCurrentVersion gets the current migration version
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var version model.MigrationVersion
	result := m.db.WithContext(ctx).Order("applied_at desc").First(&version)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil // No version found
		}
		return "", result.Error
	}

	return version.Version, nil
}

// setVersion records a new migration version
func (m *MigrationManager) setVersion(ctx context.Context, version string, details string) error {
	migrationVersion := model.MigrationVersion{
		Version:   version,
		AppliedAt: m.timeProvider.Now(),
		Details:   details,
	}

	result := m.db.WithContext(ctx).Create(&migrationVersion)
	return result.Error
}

// autoMigrateModels auto-migrates database models
func (m *MigrationManager) autoMigrateModels() error {
	m.logger.Info("Auto-migrating database models", nil)

	return m.db.AutoMigrate(
		&model.User{},
		&model.DonationRequest{},
		&model.Redemption{},
	)
}

// createIndexes creates basic database indexes
func (m *MigrationManager) createIndexes() error {
	m.logger.Info("Creating database indexes", nil)

	// Unique index on public ids used by the API surface
	if err := m.db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_donation_requests_public_id_unique ON donation_requests (public_id)").Error; err != nil {
		return err
	}

	// Donor history lookups
	if err := m.db.Exec("CREATE INDEX IF NOT EXISTS idx_donation_requests_donor_id ON donation_requests (donor_id)").Error; err != nil {
		return err
	}

	// Redemption history lookups
	if err := m.db.Exec("CREATE INDEX IF NOT EXISTS idx_redemptions_user_id ON redemptions (user_id)").Error; err != nil {
		return err
	}

	return nil
}
