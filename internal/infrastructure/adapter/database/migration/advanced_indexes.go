package migration

import (
	"gorm.io/gorm"

	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
)

// AdvancedIndexManager manages PostgreSQL-specific advanced indexes
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

// CreateAdvancedIndexes creates advanced PostgreSQL indexes for better performance
func (m *AdvancedIndexManager) CreateAdvancedIndexes() error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	// Partial index on pending requests: the NGO queue only ever scans these
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_donation_requests_pending
		ON donation_requests (created_at)
		WHERE status = 'pending'
	`).Error; err != nil {
		m.logger.Error("Failed to create pending requests partial index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Composite index for donor history sorted newest first
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_donation_requests_donor_created
		ON donation_requests (donor_id, created_at DESC)
	`).Error; err != nil {
		m.logger.Error("Failed to create donor history composite index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// BRIN index for created_at (more efficient for temporal data)
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_donation_requests_created_at_brin
		ON donation_requests USING BRIN (created_at)
		WITH (pages_per_range = 32)
	`).Error; err != nil {
		m.logger.Error("Failed to create BRIN index on created_at", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Index on coin balance for the donor rank query
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_users_coin_balance
		ON users (coin_balance DESC)
		WHERE role IN ('individual', 'organization')
	`).Error; err != nil {
		m.logger.Error("Failed to create coin balance index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Index on redemption history sorted newest first
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_redemptions_user_redeemed
		ON redemptions (user_id, redeemed_at DESC)
	`).Error; err != nil {
		m.logger.Error("Failed to create redemption history index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", nil)
	return nil
}

// CreatePerformanceTweaks applies PostgreSQL performance tweaks
func (m *AdvancedIndexManager) CreatePerformanceTweaks() error {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	// Set fillfactor for the donation requests table: every request is
	// updated exactly once, on decision
	if err := m.db.Exec(`
		ALTER TABLE donation_requests SET (fillfactor = 90)
	`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for donation_requests table", map[string]any{
			"error": err.Error(),
		})
		// Don't return error as this is not critical
	}

	// Set statistics target for better query planning on the queue scan
	if err := m.db.Exec(`
		ALTER TABLE donation_requests ALTER COLUMN status SET STATISTICS 1000
	`).Error; err != nil {
		m.logger.Warn("Failed to set statistics target for status", map[string]any{
			"error": err.Error(),
		})
		// Don't return error as this is not critical
	}

	m.logger.Info("PostgreSQL performance tweaks applied successfully", nil)
	return nil
}
