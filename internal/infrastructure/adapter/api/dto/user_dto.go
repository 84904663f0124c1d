package dto

import (
	"github.com/helphub-app/helphub-server/internal/domain/entity"
)

// UserSummaryResponse represents a user in directory listings
type UserSummaryResponse struct {
	UserID             string `json:"userId"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	ContactNumber      string `json:"contactNumber,omitempty"`
	Address            string `json:"address"`
	UserType           string `json:"userType"`
	VerificationStatus string `json:"verificationStatus,omitempty"`
}

// NewUserSummaryResponse maps a user entity to its directory representation
func NewUserSummaryResponse(user *entity.User) UserSummaryResponse {
	return UserSummaryResponse{
		UserID:             user.PublicID,
		Name:               user.Name,
		Email:              user.Email,
		ContactNumber:      user.ContactNumber,
		Address:            user.Address,
		UserType:           string(user.Role),
		VerificationStatus: string(user.VerificationStatus),
	}
}

// NewUserSummaryResponses maps a slice of users
func NewUserSummaryResponses(users []*entity.User) []UserSummaryResponse {
	responses := make([]UserSummaryResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserSummaryResponse(user))
	}
	return responses
}
