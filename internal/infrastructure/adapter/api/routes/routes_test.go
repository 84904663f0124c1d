package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
	authUseCase "github.com/helphub-app/helphub-server/internal/domain/usecase/auth"
	donationUseCase "github.com/helphub-app/helphub-server/internal/domain/usecase/donation"
	rewardUseCase "github.com/helphub-app/helphub-server/internal/domain/usecase/reward"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/api/handler"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/api/routes"
	"github.com/helphub-app/helphub-server/internal/testutil"
)

const rewardCoins = int64(50)

type testServer struct {
	router    *gin.Engine
	userRepo  *testutil.UserRepo
	donations *testutil.DonationRepo
	clock     *testutil.Clock
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := testutil.NewClock()
	userRepo := testutil.NewUserRepo(clock)
	donationRepo := testutil.NewDonationRepo()
	redemptionRepo := testutil.NewRedemptionRepo()
	uow := &testutil.UnitOfWork{
		Users:       userRepo,
		Donations:   donationRepo,
		Redemptions: redemptionRepo,
	}
	logger := testutil.NopLogger{}
	tokenMaker := &testutil.TokenMaker{}

	authService := authUseCase.NewService(userRepo, testutil.NewDocumentStore(), tokenMaker, clock, logger)
	donationService := donationUseCase.NewService(uow, userRepo, donationRepo, clock, logger, rewardCoins, nil)
	rewardService := rewardUseCase.NewService(uow, userRepo, clock, logger, nil)

	router := gin.New()
	routes.SetupMiddlewares(router, logger)
	routes.SetupRoutes(
		router,
		handler.NewAuthHandler(authService, logger),
		handler.NewDonationHandler(donationService, authService, logger),
		handler.NewRewardHandler(rewardService, logger),
		handler.NewUserHandler(userRepo, rewardService, logger),
		tokenMaker,
		authService,
		logger,
	)

	return &testServer{
		router:    router,
		userRepo:  userRepo,
		donations: donationRepo,
		clock:     clock,
	}
}

func (s *testServer) seedDonor(t *testing.T, email string, coins int64) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	donor, err := entity.NewUser(uuid.NewString(), "Test Donor", email, string(hash), "", "1 Donor Street", entity.RoleIndividual, s.clock)
	require.NoError(t, err)
	donor.SetCoinBalance(coins)
	return s.userRepo.Seed(donor)
}

func (s *testServer) seedVerifiedNGO(t *testing.T, email string) *entity.User {
	t.Helper()
	ngo, err := entity.NewUser(uuid.NewString(), "Helping Hands", email, "hash", "", "2 NGO Avenue", entity.RoleNGO, s.clock)
	require.NoError(t, err)
	ngo.VerificationStatus = entity.VerificationVerified
	return s.userRepo.Seed(ngo)
}

// sessionToken matches the format of the fake token maker
func sessionToken(user *entity.User) string {
	return "token:" + user.PublicID + ":" + string(user.Role)
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestSignupAndLogin(t *testing.T) {
	server := newTestServer(t)

	signup := map[string]any{
		"name":     "Aisha",
		"email":    "aisha@example.com",
		"password": "secret123",
		"address":  "5 Garden Road",
		"userType": "individual",
	}
	recorder := server.do(t, http.MethodPost, "/api/auth/signup", signup, "")
	require.Equal(t, http.StatusCreated, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "aisha@example.com", body["email"])
	assert.Equal(t, "individual", body["userType"])
	assert.NotEmpty(t, body["userId"])

	t.Run("duplicate email conflicts", func(t *testing.T) {
		recorder := server.do(t, http.MethodPost, "/api/auth/signup", signup, "")
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("login returns a session token", func(t *testing.T) {
		recorder := server.do(t, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "aisha@example.com",
			"password": "secret123",
		}, "")
		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.NotEmpty(t, body["token"])
		assert.Equal(t, "individual", body["userType"])
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		recorder := server.do(t, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "aisha@example.com",
			"password": "wrong-password",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestSubmitDonation(t *testing.T) {
	server := newTestServer(t)
	donor := server.seedDonor(t, "donor@example.com", 0)

	t.Run("requires authentication", func(t *testing.T) {
		recorder := server.do(t, http.MethodPost, "/api/donations/create", map[string]any{
			"type": "Money", "address": "Online",
			"details": map[string]any{"moneyAmount": "500"},
		}, "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("creates a pending request", func(t *testing.T) {
		recorder := server.do(t, http.MethodPost, "/api/donations/create", map[string]any{
			"type": "Money", "address": "Online",
			"details": map[string]any{"moneyAmount": "500"},
		}, sessionToken(donor))
		require.Equal(t, http.StatusCreated, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "pending", body["status"])
		assert.Equal(t, "Money", body["type"])
		assert.Nil(t, body["coinsEarned"])
	})

	t.Run("food without dietary type fails validation", func(t *testing.T) {
		recorder := server.do(t, http.MethodPost, "/api/donations/create", map[string]any{
			"type": "Food", "address": "12 Relief Road",
			"details": map[string]any{
				"foodItem":     "Rice",
				"foodQuantity": "10 servings",
				"expiryWindow": "6 hours",
			},
		}, sessionToken(donor))
		require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		body := decodeBody(t, recorder)
		fields, ok := body["fields"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, fields, "dietaryType")
	})

	t.Run("ngo cannot submit", func(t *testing.T) {
		ngo := server.seedVerifiedNGO(t, "ngo-submit@example.com")
		recorder := server.do(t, http.MethodPost, "/api/donations/create", map[string]any{
			"type": "Money", "address": "Online",
			"details": map[string]any{"moneyAmount": "10"},
		}, sessionToken(ngo))
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}

func TestQueueAndDecision(t *testing.T) {
	server := newTestServer(t)
	donor := server.seedDonor(t, "donor@example.com", 0)
	ngo := server.seedVerifiedNGO(t, "ngo@example.com")

	recorder := server.do(t, http.MethodPost, "/api/donations/create", map[string]any{
		"type": "Money", "address": "Online",
		"details": map[string]any{"moneyAmount": "500"},
	}, sessionToken(donor))
	require.Equal(t, http.StatusCreated, recorder.Code)
	requestID := decodeBody(t, recorder)["id"].(string)

	t.Run("donor cannot see the queue", func(t *testing.T) {
		recorder := server.do(t, http.MethodGet, "/api/donations/requests", nil, sessionToken(donor))
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("ngo sees the pending request", func(t *testing.T) {
		recorder := server.do(t, http.MethodGet, "/api/donations/requests", nil, sessionToken(ngo))
		require.Equal(t, http.StatusOK, recorder.Code)
		var queue []map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &queue))
		require.Len(t, queue, 1)
		assert.Equal(t, requestID, queue[0]["id"])
	})

	t.Run("accept credits the donor once", func(t *testing.T) {
		recorder := server.do(t, http.MethodPost, "/api/donations/"+requestID+"/accept", nil, sessionToken(ngo))
		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "accepted", body["status"])
		assert.EqualValues(t, rewardCoins, body["coinsEarned"])

		credited, err := server.userRepo.GetByID(context.Background(), donor.ID)
		require.NoError(t, err)
		assert.Equal(t, rewardCoins, credited.CoinBalance())
	})

	t.Run("second decision conflicts", func(t *testing.T) {
		recorder := server.do(t, http.MethodPost, "/api/donations/"+requestID+"/reject", nil, sessionToken(ngo))
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("unknown request is not found", func(t *testing.T) {
		recorder := server.do(t, http.MethodPost, "/api/donations/no-such-request/accept", nil, sessionToken(ngo))
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("history shows the accepted donation newest first", func(t *testing.T) {
		recorder := server.do(t, http.MethodGet, "/api/donations/history/email/donor@example.com", nil, sessionToken(donor))
		require.Equal(t, http.StatusOK, recorder.Code)
		var history []map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &history))
		require.Len(t, history, 1)
		assert.Equal(t, "accepted", history[0]["status"])
		assert.EqualValues(t, rewardCoins, history[0]["coinsEarned"])
	})

	t.Run("history of another donor is forbidden", func(t *testing.T) {
		other := server.seedDonor(t, "other@example.com", 0)
		recorder := server.do(t, http.MethodGet, "/api/donations/history/email/donor@example.com", nil, sessionToken(other))
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}

func TestRedeem(t *testing.T) {
	server := newTestServer(t)
	donor := server.seedDonor(t, "donor@example.com", 15000)

	t.Run("catalog lists the gift cards", func(t *testing.T) {
		recorder := server.do(t, http.MethodGet, "/api/coins/giftcards", nil, sessionToken(donor))
		require.Equal(t, http.StatusOK, recorder.Code)
		var catalog []map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &catalog))
		assert.Len(t, catalog, 9)
	})

	t.Run("insufficient coins reports the shortfall", func(t *testing.T) {
		recorder := server.do(t, http.MethodPost, "/api/coins/redeem", map[string]any{
			"giftCardId": 2, // 20000 coins
		}, sessionToken(donor))
		require.Equal(t, http.StatusBadRequest, recorder.Code)
		body := decodeBody(t, recorder)
		details, ok := body["details"].(map[string]any)
		require.True(t, ok)
		assert.EqualValues(t, 5000, details["shortfall"])

		unchanged, err := server.userRepo.GetByID(context.Background(), donor.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 15000, unchanged.CoinBalance())
	})

	t.Run("successful redemption debits the balance", func(t *testing.T) {
		recorder := server.do(t, http.MethodPost, "/api/coins/redeem", map[string]any{
			"giftCardId": 1, // 10000 coins
		}, sessionToken(donor))
		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.EqualValues(t, 5000, body["coinsLeft"])
		assert.Equal(t, "Amazon ₹100", body["giftCardName"])
	})

	t.Run("unknown gift card is not found", func(t *testing.T) {
		recorder := server.do(t, http.MethodPost, "/api/coins/redeem", map[string]any{
			"giftCardId": 99,
		}, sessionToken(donor))
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestUserDirectoryAndProfile(t *testing.T) {
	server := newTestServer(t)
	donor := server.seedDonor(t, "donor@example.com", 250)
	server.seedVerifiedNGO(t, "ngo@example.com")

	t.Run("lists NGOs", func(t *testing.T) {
		recorder := server.do(t, http.MethodGet, "/api/users?type=ngo", nil, sessionToken(donor))
		require.Equal(t, http.StatusOK, recorder.Code)
		var ngos []map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &ngos))
		require.Len(t, ngos, 1)
		assert.Equal(t, "ngo@example.com", ngos[0]["email"])
	})

	t.Run("rejects other directory types", func(t *testing.T) {
		recorder := server.do(t, http.MethodGet, "/api/users?type=individual", nil, sessionToken(donor))
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})

	t.Run("profile reports coins and rank", func(t *testing.T) {
		recorder := server.do(t, http.MethodGet, "/api/users/by-email?email=donor@example.com", nil, sessionToken(donor))
		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.EqualValues(t, 250, body["coins"])
		assert.EqualValues(t, 1, body["rank"])
	})

	t.Run("profile of another donor is forbidden", func(t *testing.T) {
		other := server.seedDonor(t, "other@example.com", 0)
		recorder := server.do(t, http.MethodGet, "/api/users/by-email?email=donor@example.com", nil, sessionToken(other))
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}
