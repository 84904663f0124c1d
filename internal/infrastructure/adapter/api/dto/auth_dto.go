package dto

// SignupRequest represents the API request for a donor signup
type SignupRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	ContactNumber string `json:"contactNumber"`
	Password      string `json:"password" binding:"required,min=6"`
	Address       string `json:"address" binding:"required"`
	UserType      string `json:"userType" binding:"required,oneof=individual organization"`
}

// LoginRequest represents the API request for a login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the API response for a successful login
type LoginResponse struct {
	Token    string `json:"token"`
	UserType string `json:"userType"`
	UserID   string `json:"userId"`
}

// SignupResponse represents the API response for a created account
type SignupResponse struct {
	UserID             string `json:"userId"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	UserType           string `json:"userType"`
	VerificationStatus string `json:"verificationStatus,omitempty"`
}
