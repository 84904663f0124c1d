package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
	errs "github.com/helphub-app/helphub-server/internal/domain/error"
	"github.com/helphub-app/helphub-server/internal/domain/port/usecase"
	"github.com/helphub-app/helphub-server/internal/testutil"
)

func newTestService() (*Service, *testutil.UserRepo, *testutil.DocumentStore) {
	clock := testutil.NewClock()
	userRepo := testutil.NewUserRepo(clock)
	documentStore := testutil.NewDocumentStore()
	service := NewService(userRepo, documentStore, &testutil.TokenMaker{}, clock, testutil.NopLogger{})
	return service, userRepo, documentStore
}

func donorSignup() usecase.SignupRequest {
	return usecase.SignupRequest{
		Name:          "Asha Sharma",
		Email:         "Asha@Example.com",
		ContactNumber: "9876543210",
		Password:      "secret123",
		Address:       "12 MG Road, Pune",
		UserType:      "individual",
	}
}

func TestSignupUser(t *testing.T) {
	t.Run("registers an individual donor", func(t *testing.T) {
		service, _, _ := newTestService()

		user, err := service.SignupUser(context.Background(), donorSignup())

		require.NoError(t, err)
		assert.NotEmpty(t, user.PublicID)
		assert.Equal(t, "asha@example.com", user.Email)
		assert.Equal(t, entity.RoleIndividual, user.Role)
		assert.Equal(t, int64(0), user.CoinBalance())
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
	})

	t.Run("registers an organization donor", func(t *testing.T) {
		service, _, _ := newTestService()

		req := donorSignup()
		req.UserType = "organization"
		user, err := service.SignupUser(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, entity.RoleOrganization, user.Role)
	})

	t.Run("rejects ngo role on the donor signup path", func(t *testing.T) {
		service, _, _ := newTestService()

		req := donorSignup()
		req.UserType = "ngo"
		_, err := service.SignupUser(context.Background(), req)

		assert.True(t, errs.IsValidationError(err))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		service, _, _ := newTestService()

		req := donorSignup()
		req.Password = "abc"
		_, err := service.SignupUser(context.Background(), req)

		assert.True(t, errs.IsValidationError(err))
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.SignupUser(context.Background(), donorSignup())
		require.NoError(t, err)

		req := donorSignup()
		req.Name = "Someone Else"
		_, err = service.SignupUser(context.Background(), req)

		assert.ErrorIs(t, err, errs.ErrDuplicateUser)
	})
}

func TestSignupNGO(t *testing.T) {
	ngoReq := func() usecase.NGOSignupRequest {
		return usecase.NGOSignupRequest{
			Name:          "Goonj Foundation",
			Email:         "contact@goonj.org",
			ContactNumber: "9123456780",
			Password:      "secret123",
			Address:       "45 Link Road, Delhi",
			Documents: []usecase.Document{
				{Filename: "registration.pdf", Content: strings.NewReader("certificate")},
			},
		}
	}

	t.Run("stores documents and starts unverified", func(t *testing.T) {
		service, _, documentStore := newTestService()

		user, err := service.SignupNGO(context.Background(), ngoReq())

		require.NoError(t, err)
		assert.Equal(t, entity.RoleNGO, user.Role)
		assert.Equal(t, entity.VerificationPending, user.VerificationStatus)
		assert.False(t, user.IsVerifiedNGO())
		assert.Equal(t, []byte("certificate"), documentStore.Saved[user.PublicID+"/registration.pdf"])
	})

	t.Run("requires at least one document", func(t *testing.T) {
		service, _, _ := newTestService()

		req := ngoReq()
		req.Documents = nil
		_, err := service.SignupNGO(context.Background(), req)

		assert.True(t, errs.IsValidationError(err))
	})
}

func TestLogin(t *testing.T) {
	t.Run("issues a token for valid credentials", func(t *testing.T) {
		service, _, _ := newTestService()
		user, err := service.SignupUser(context.Background(), donorSignup())
		require.NoError(t, err)

		result, err := service.Login(context.Background(), "asha@example.com", "secret123")

		require.NoError(t, err)
		assert.Equal(t, "token:"+user.PublicID+":individual", result.Token)
		assert.Equal(t, "individual", result.UserType)
		assert.Equal(t, user.PublicID, result.PublicID)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		service, _, _ := newTestService()
		_, err := service.SignupUser(context.Background(), donorSignup())
		require.NoError(t, err)

		_, err = service.Login(context.Background(), "asha@example.com", "wrong-pass")

		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("hides whether the account exists", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.Login(context.Background(), "nobody@example.com", "whatever")

		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
		assert.NotErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestResolveByEmail(t *testing.T) {
	service, _, _ := newTestService()
	created, err := service.SignupUser(context.Background(), donorSignup())
	require.NoError(t, err)

	t.Run("resolves regardless of case", func(t *testing.T) {
		user, err := service.ResolveByEmail(context.Background(), "  ASHA@example.COM ")

		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("rejects an empty identity", func(t *testing.T) {
		_, err := service.ResolveByEmail(context.Background(), "  ")

		assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	})

	t.Run("unknown email is not found", func(t *testing.T) {
		_, err := service.ResolveByEmail(context.Background(), "ghost@example.com")

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}
