package model

import (
	"time"
)

// Redemption represents the database model for gift card redemptions
type Redemption struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	PublicID     string    `gorm:"uniqueIndex;not null;size:36"`
	UserID       uint64    `gorm:"not null;index"`
	GiftCardID   uint64    `gorm:"not null"`
	GiftCardName string    `gorm:"not null;size:100"`
	CoinsSpent   int64     `gorm:"not null"`
	BalanceAfter int64     `gorm:"not null"`
	RedeemedAt   time.Time `gorm:"not null"`

	// Define relationships
	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Redemption
func (Redemption) TableName() string {
	return "redemptions"
}
