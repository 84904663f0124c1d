package entity

import (
	"strings"
	"time"

	errs "github.com/helphub-app/helphub-server/internal/domain/error"
	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
)

// Role classifies an account
type Role string

// Account roles
const (
	RoleIndividual   Role = "individual"
	RoleOrganization Role = "organization"
	RoleNGO          Role = "ngo"
)

// VerificationStatus applies to NGO accounts only
type VerificationStatus string

// NGO verification states
const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
)

// User represents a registered account: a donor (individual or organization)
// or an NGO. Donors hold a coin balance credited on accepted donations and
// debited by redemptions.
type User struct {
	ID                 uint64
	PublicID           string
	Name               string
	Email              string
	PasswordHash       string
	ContactNumber      string
	Address            string
	Role               Role
	coinBalance        int64 // mutated only through CreditCoins/DebitCoins
	DonationCount      uint64
	VerificationStatus VerificationStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewUser creates a new user account with a zero coin balance
func NewUser(publicID, name, email, passwordHash, contactNumber, address string, role Role, timeProvider coreport.TimeProvider) (*User, error) {
	fields := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "is required"
	}
	if strings.TrimSpace(email) == "" {
		fields["email"] = "is required"
	}
	if passwordHash == "" {
		fields["password"] = "is required"
	}
	if strings.TrimSpace(address) == "" {
		fields["address"] = "is required"
	}
	if !IsValidRole(string(role)) {
		fields["userType"] = "must be one of: individual, organization, ngo"
	}
	if len(fields) > 0 {
		return nil, errs.NewValidationError(fields)
	}

	now := timeProvider.Now()
	user := &User{
		PublicID:      publicID,
		Name:          strings.TrimSpace(name),
		Email:         normalizeEmail(email),
		PasswordHash:  passwordHash,
		ContactNumber: strings.TrimSpace(contactNumber),
		Address:       strings.TrimSpace(address),
		Role:          role,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if role == RoleNGO {
		user.VerificationStatus = VerificationPending
	}
	return user, nil
}

// CoinBalance returns the current coin balance
func (u *User) CoinBalance() int64 {
	return u.coinBalance
}

// SetCoinBalance updates the balance directly (for repositories rebuilding
// an entity from storage)
func (u *User) SetCoinBalance(coins int64) {
	u.coinBalance = coins
}

// CreditCoins adds coins to the balance for an accepted donation
func (u *User) CreditCoins(coins int64, timeProvider coreport.TimeProvider) {
	u.coinBalance += coins
	u.DonationCount++
	u.UpdatedAt = timeProvider.Now()
}

// DebitCoins removes coins from the balance for a redemption.
// Returns a detailed error if the balance is insufficient.
func (u *User) DebitCoins(coins int64, timeProvider coreport.TimeProvider) error {
	if u.coinBalance < coins {
		return errs.NewInsufficientCoinsError(u.ID, coins, u.coinBalance)
	}
	u.coinBalance -= coins
	u.UpdatedAt = timeProvider.Now()
	return nil
}

// CanRedeem checks if the user has enough coins for a redemption
func (u *User) CanRedeem(coins int64) bool {
	return u.coinBalance >= coins
}

// IsDonor reports whether the account can submit donations
func (u *User) IsDonor() bool {
	return u.Role == RoleIndividual || u.Role == RoleOrganization
}

// IsVerifiedNGO reports whether the account may act on pending requests
func (u *User) IsVerifiedNGO() bool {
	return u.Role == RoleNGO && u.VerificationStatus == VerificationVerified
}

// IsValidRole validates if the role is one of the allowed values
func IsValidRole(role string) bool {
	return role == string(RoleIndividual) ||
		role == string(RoleOrganization) ||
		role == string(RoleNGO)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
