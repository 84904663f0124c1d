package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
	errs "github.com/helphub-app/helphub-server/internal/domain/error"
	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
	"github.com/helphub-app/helphub-server/internal/domain/port/persistence"
	"github.com/helphub-app/helphub-server/internal/domain/port/usecase"
)

// Service implements identity and session business logic
type Service struct {
	userRepo      persistence.UserRepository
	documentStore persistence.DocumentStore
	tokenMaker    coreport.TokenMaker
	timeProvider  coreport.TimeProvider
	logger        coreport.Logger
}

// NewService creates a new auth service
func NewService(
	userRepo persistence.UserRepository,
	documentStore persistence.DocumentStore,
	tokenMaker coreport.TokenMaker,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		userRepo:      userRepo,
		documentStore: documentStore,
		tokenMaker:    tokenMaker,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// SignupUser registers a donor account (individual or organization)
func (s *Service) SignupUser(ctx context.Context, req usecase.SignupRequest) (*entity.User, error) {
	role := entity.Role(strings.ToLower(strings.TrimSpace(req.UserType)))
	if role != entity.RoleIndividual && role != entity.RoleOrganization {
		return nil, errs.NewFieldError("userType", "must be individual or organization")
	}

	return s.createUser(ctx, req.Name, req.Email, req.Password, req.ContactNumber, req.Address, role)
}

// SignupNGO registers an NGO account with its verification documents. The
// account starts in pending verification status and cannot act on requests
// until verified.
func (s *Service) SignupNGO(ctx context.Context, req usecase.NGOSignupRequest) (*entity.User, error) {
	if len(req.Documents) == 0 {
		return nil, errs.NewFieldError("documents", "at least one verification document is required")
	}

	user, err := s.createUser(ctx, req.Name, req.Email, req.Password, req.ContactNumber, req.Address, entity.RoleNGO)
	if err != nil {
		return nil, err
	}

	for _, doc := range req.Documents {
		path, err := s.documentStore.Save(ctx, user.PublicID, doc.Filename, doc.Content)
		if err != nil {
			s.logger.Error("Failed to store verification document", map[string]any{
				"ngo_id":   user.ID,
				"filename": doc.Filename,
				"error":    err.Error(),
			})
			return nil, err
		}
		s.logger.Info("Verification document stored", map[string]any{
			"ngo_id": user.ID,
			"path":   path,
		})
	}

	return user, nil
}

// Login verifies credentials and issues a session token
func (s *Service) Login(ctx context.Context, email, password string) (*usecase.LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			// Same error as a wrong password so login probing can't
			// enumerate accounts
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Login failed: wrong password", map[string]any{
			"user_id": user.ID,
		})
		return nil, errs.ErrInvalidCredentials
	}

	token, err := s.tokenMaker.CreateToken(user.PublicID, string(user.Role))
	if err != nil {
		s.logger.Error("Failed to create session token", map[string]any{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		return nil, errs.ErrInternalServer
	}

	s.logger.Info("User logged in", map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
	})

	return &usecase.LoginResult{
		Token:    token,
		UserType: string(user.Role),
		PublicID: user.PublicID,
	}, nil
}

// ResolveByEmail maps a session email to the user record
func (s *Service) ResolveByEmail(ctx context.Context, email string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errs.ErrUnauthenticated
	}
	return s.userRepo.GetByEmail(ctx, email)
}

// ResolveByPublicID maps a verified token subject to the user record
func (s *Service) ResolveByPublicID(ctx context.Context, publicID string) (*entity.User, error) {
	if publicID == "" {
		return nil, errs.ErrUnauthenticated
	}
	return s.userRepo.GetByPublicID(ctx, publicID)
}

func (s *Service) createUser(ctx context.Context, name, email, password, contactNumber, address string, role entity.Role) (*entity.User, error) {
	if len(password) < 6 {
		return nil, errs.NewFieldError("password", "must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.ErrInternalServer
	}

	user, err := entity.NewUser(uuid.NewString(), name, email, string(hash), contactNumber, address, role, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, errs.ErrDuplicateUser) {
			s.logger.Warn("Signup with existing email", map[string]any{
				"email": user.Email,
			})
		} else {
			s.logger.Error("Failed to create user", map[string]any{
				"email": user.Email,
				"error": err.Error(),
			})
		}
		return nil, err
	}

	s.logger.Info("User registered", map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
	})

	return user, nil
}
