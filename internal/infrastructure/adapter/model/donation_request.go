package model

import (
	"time"
)

// DonationRequest represents the database model for donation requests. The
// type-specific fields live in a JSON details column so all three variants
// share one table.
type DonationRequest struct {
	ID          uint64  `gorm:"primaryKey;autoIncrement"`
	PublicID    string  `gorm:"uniqueIndex;not null;size:36"`
	DonorID     uint64  `gorm:"not null;index"`
	Type        string  `gorm:"not null;size:20"`
	Address     string  `gorm:"not null;type:text"`
	Details     string  `gorm:"not null;type:jsonb"`
	Status      string  `gorm:"not null;size:20;index"`
	NGOID       *uint64 `gorm:"index"`
	CoinsEarned *int64
	CreatedAt   time.Time `gorm:"not null"`
	DecidedAt   *time.Time

	// Define relationships
	Donor User `gorm:"foreignKey:DonorID;references:ID"`
}

// TableName specifies the table name for DonationRequest
func (DonationRequest) TableName() string {
	return "donation_requests"
}
