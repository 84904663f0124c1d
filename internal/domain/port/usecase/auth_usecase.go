package usecase

import (
	"context"
	"io"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
)

// SignupRequest carries the fields of a donor signup
type SignupRequest struct {
	Name          string
	Email         string
	ContactNumber string
	Password      string
	Address       string
	UserType      string // individual or organization
}

// NGOSignupRequest carries the fields of an NGO signup, including uploaded
// verification documents
type NGOSignupRequest struct {
	Name          string
	Email         string
	ContactNumber string
	Password      string
	Address       string
	Documents     []Document
}

// Document is one uploaded verification file
type Document struct {
	Filename string
	Content  io.Reader
}

// LoginResult is returned on successful authentication
type LoginResult struct {
	Token    string
	UserType string
	PublicID string
}

// AuthUseCase defines identity and session operations
type AuthUseCase interface {
	// SignupUser registers a donor account
	SignupUser(ctx context.Context, req SignupRequest) (*entity.User, error)

	// SignupNGO registers an NGO account with verification documents,
	// starting in pending verification status
	SignupNGO(ctx context.Context, req NGOSignupRequest) (*entity.User, error)

	// Login verifies credentials and issues a session token
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// ResolveByEmail maps a session email to the user record. This is the
	// identity resolver consumed before every donation-related operation.
	ResolveByEmail(ctx context.Context, email string) (*entity.User, error)

	// ResolveByPublicID maps a verified token subject to the user record
	ResolveByPublicID(ctx context.Context, publicID string) (*entity.User, error)
}
