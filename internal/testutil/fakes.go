// Package testutil provides in-memory fakes of the persistence and core
// ports for unit tests.
package testutil

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/helphub-app/helphub-server/internal/domain/entity"
	errs "github.com/helphub-app/helphub-server/internal/domain/error"
	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
	"github.com/helphub-app/helphub-server/internal/domain/port/persistence"
)

// Clock is a TimeProvider returning a settable constant instant
type Clock struct {
	Time time.Time
}

// NewClock returns a clock fixed at a stable instant
func NewClock() *Clock {
	return &Clock{Time: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time                  { return c.Time }
func (c *Clock) Since(t time.Time) time.Duration { return c.Time.Sub(t) }
func (c *Clock) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// NopLogger discards all log output
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]any) {}
func (NopLogger) Info(string, map[string]any)  {}
func (NopLogger) Warn(string, map[string]any)  {}
func (NopLogger) Error(string, map[string]any) {}
func (NopLogger) Flush() error                 { return nil }

// UserRepo is an in-memory UserRepository
type UserRepo struct {
	mu     sync.Mutex
	Clock  *Clock
	nextID uint64
	users  map[uint64]*entity.User
}

// NewUserRepo creates an empty in-memory user repository
func NewUserRepo(clock *Clock) *UserRepo {
	return &UserRepo{Clock: clock, users: map[uint64]*entity.User{}}
}

// Seed inserts a user directly, assigning an ID
func (r *UserRepo) Seed(user *entity.User) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return user
}

func (r *UserRepo) GetByID(_ context.Context, id uint64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return user, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (r *UserRepo) GetByPublicID(_ context.Context, publicID string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.PublicID == publicID {
			return user, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return errs.ErrDuplicateUser
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return nil
}

func (r *UserRepo) ListByRole(_ context.Context, role entity.Role) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, user := range r.users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *UserRepo) AdjustCoins(_ context.Context, userID uint64, delta int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	if delta >= 0 {
		user.CreditCoins(delta, r.Clock)
		return user, nil
	}
	if err := user.DebitCoins(-delta, r.Clock); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) CoinRank(_ context.Context, userID uint64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return 0, errs.ErrUserNotFound
	}
	rank := int64(1)
	for _, other := range r.users {
		if other.Role == entity.RoleNGO {
			continue
		}
		if other.CoinBalance() > user.CoinBalance() {
			rank++
		}
	}
	return rank, nil
}

// DonationRepo is an in-memory DonationRepository with the same
// compare-and-set semantics on MarkDecided as the real one
type DonationRepo struct {
	mu       sync.Mutex
	nextID   uint64
	requests map[string]*entity.DonationRequest
}

// NewDonationRepo creates an empty in-memory donation repository
func NewDonationRepo() *DonationRepo {
	return &DonationRepo{requests: map[string]*entity.DonationRequest{}}
}

func (r *DonationRepo) Create(_ context.Context, request *entity.DonationRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	request.ID = r.nextID
	stored := *request
	r.requests[request.PublicID] = &stored
	return nil
}

func (r *DonationRepo) GetByPublicID(_ context.Context, publicID string) (*entity.DonationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.requests[publicID]
	if !ok {
		return nil, errs.ErrDonationNotFound
	}
	copied := *stored
	return &copied, nil
}

func (r *DonationRepo) ListPending(_ context.Context) ([]*entity.DonationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.DonationRequest
	for _, stored := range r.requests {
		if stored.IsPending() {
			copied := *stored
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *DonationRepo) ListByDonor(_ context.Context, donorID uint64) ([]*entity.DonationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.DonationRequest
	for _, stored := range r.requests {
		if stored.DonorID == donorID {
			copied := *stored
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *DonationRepo) MarkDecided(_ context.Context, request *entity.DonationRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.requests[request.PublicID]
	if !ok {
		return errs.ErrDonationNotFound
	}
	if !stored.IsPending() {
		return errs.ErrAlreadyDecided
	}
	copied := *request
	r.requests[request.PublicID] = &copied
	return nil
}

// RedemptionRepo is an in-memory RedemptionRepository
type RedemptionRepo struct {
	mu      sync.Mutex
	nextID  uint64
	Records []*entity.RedemptionRecord
}

// NewRedemptionRepo creates an empty in-memory redemption repository
func NewRedemptionRepo() *RedemptionRepo {
	return &RedemptionRepo{}
}

func (r *RedemptionRepo) Create(_ context.Context, record *entity.RedemptionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	record.ID = r.nextID
	r.Records = append(r.Records, record)
	return nil
}

func (r *RedemptionRepo) ListByUser(_ context.Context, userID uint64) ([]*entity.RedemptionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.RedemptionRecord
	for i := len(r.Records) - 1; i >= 0; i-- {
		if r.Records[i].UserID == userID {
			out = append(out, r.Records[i])
		}
	}
	return out, nil
}

// UnitOfWork is a fake transaction coordinator handing out the shared
// in-memory repositories. It records commits and rollbacks and can be set to
// fail at each stage.
type UnitOfWork struct {
	Users       *UserRepo
	Donations   *DonationRepo
	Redemptions *RedemptionRepo

	BeginErr  error
	CommitErr error

	Commits   int
	Rollbacks int
}

func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if u.BeginErr != nil {
		return nil, u.BeginErr
	}
	return ctx, nil
}

func (u *UnitOfWork) Commit(context.Context) error {
	if u.CommitErr != nil {
		return u.CommitErr
	}
	u.Commits++
	return nil
}

func (u *UnitOfWork) Rollback(context.Context) error {
	u.Rollbacks++
	return nil
}

func (u *UnitOfWork) GetUserRepository(context.Context) persistence.UserRepository {
	return u.Users
}

func (u *UnitOfWork) GetDonationRepository(context.Context) persistence.DonationRepository {
	return u.Donations
}

func (u *UnitOfWork) GetRedemptionRepository(context.Context) persistence.RedemptionRepository {
	return u.Redemptions
}

// DocumentStore is an in-memory DocumentStore keeping uploaded file contents
type DocumentStore struct {
	mu    sync.Mutex
	Saved map[string][]byte

	SaveErr error
}

// NewDocumentStore creates an empty in-memory document store
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{Saved: map[string][]byte{}}
}

func (s *DocumentStore) Save(_ context.Context, ownerPublicID, filename string, content io.Reader) (string, error) {
	if s.SaveErr != nil {
		return "", s.SaveErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	path := ownerPublicID + "/" + filename
	s.mu.Lock()
	s.Saved[path] = data
	s.mu.Unlock()
	return path, nil
}

// TokenMaker is a fake session token maker producing inspectable tokens
type TokenMaker struct {
	CreateErr error
	VerifyErr error
}

func (m *TokenMaker) CreateToken(userPublicID, role string) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	return "token:" + userPublicID + ":" + role, nil
}

func (m *TokenMaker) VerifyToken(token string) (*coreport.TokenClaims, error) {
	if m.VerifyErr != nil {
		return nil, m.VerifyErr
	}
	parts := strings.SplitN(token, ":", 3)
	if len(parts) != 3 || parts[0] != "token" {
		return nil, errs.ErrUnauthenticated
	}
	return &coreport.TokenClaims{UserPublicID: parts[1], Role: parts[2]}, nil
}
