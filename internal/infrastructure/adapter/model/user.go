package model

import (
	"time"
)

// User represents the database model for user accounts
type User struct {
	ID                 uint64    `gorm:"primaryKey;autoIncrement"`
	PublicID           string    `gorm:"uniqueIndex;not null;size:36"`
	Name               string    `gorm:"not null;size:255"`
	Email              string    `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash       string    `gorm:"not null;size:255"`
	ContactNumber      string    `gorm:"size:20"`
	Address            string    `gorm:"not null;type:text"`
	Role               string    `gorm:"not null;size:20;index"`
	CoinBalance        int64     `gorm:"not null;default:0"`
	DonationCount      uint64    `gorm:"not null;default:0"`
	VerificationStatus string    `gorm:"size:20"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
