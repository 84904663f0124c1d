package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/helphub-app/helphub-server/internal/domain/error"
	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
	"github.com/helphub-app/helphub-server/internal/domain/port/usecase"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/api/dto"
)

// AuthHandler handles signup and login HTTP requests
type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	logger      coreport.Logger
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(authUseCase usecase.AuthUseCase, logger coreport.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// Signup handles the POST /api/auth/signup endpoint for donor accounts
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.authUseCase.SignupUser(c.Request.Context(), usecase.SignupRequest{
		Name:          req.Name,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Password:      req.Password,
		Address:       req.Address,
		UserType:      req.UserType,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SignupResponse{
		UserID:   user.PublicID,
		Name:     user.Name,
		Email:    user.Email,
		UserType: string(user.Role),
	})
}

// SignupNGO handles the POST /api/auth/ngo-signup endpoint. The request is
// multipart form data carrying the account fields plus at least one
// verification document under the "documents" field.
func (h *AuthHandler) SignupNGO(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondBindingError(c, err)
		return
	}

	req := usecase.NGOSignupRequest{
		Name:          formValue(form.Value, "name"),
		Email:         formValue(form.Value, "email"),
		ContactNumber: formValue(form.Value, "contactNumber"),
		Password:      formValue(form.Value, "password"),
		Address:       formValue(form.Value, "address"),
	}

	for _, fileHeader := range form.File["documents"] {
		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, h.logger, domainerr.NewFieldError("documents", "could not read uploaded file "+fileHeader.Filename))
			return
		}
		defer file.Close()
		req.Documents = append(req.Documents, usecase.Document{
			Filename: fileHeader.Filename,
			Content:  file,
		})
	}

	user, err := h.authUseCase.SignupNGO(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SignupResponse{
		UserID:             user.PublicID,
		Name:               user.Name,
		Email:              user.Email,
		UserType:           string(user.Role),
		VerificationStatus: string(user.VerificationStatus),
	})
}

// Login handles the POST /api/auth/login endpoint
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	result, err := h.authUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:    result.Token,
		UserType: result.UserType,
		UserID:   result.PublicID,
	})
}

func formValue(values map[string][]string, key string) string {
	if v := values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}
