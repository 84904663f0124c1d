package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/helphub-app/helphub-server/internal/testutil"
)

// sqlRecorder captures every statement GORM generates
type sqlRecorder struct {
	statements []string
}

func (r *sqlRecorder) LogMode(gormlogger.LogLevel) gormlogger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})     {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})     {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{})    {}
func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.statements = append(r.statements, sql)
}

// newDryRunDB builds SQL without touching a database. The pgx pool connects
// lazily and automatic ping is off, so no PostgreSQL server is needed.
func newDryRunDB(t *testing.T, recorder *sqlRecorder) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=helphub dbname=helphub",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 recorder,
	})
	require.NoError(t, err)
	return db
}

// The coin adjustment is a read-modify-write: without a row-level lock on the
// read, two overlapping adjustments for the same user can both see the same
// balance and one credit or debit is silently lost. This pins the lock into
// the generated SQL.
func TestAdjustCoinsLocksTheUserRow(t *testing.T) {
	recorder := &sqlRecorder{}
	db := newDryRunDB(t, recorder)
	repo := NewUserRepository(db, testutil.NewClock(), testutil.NopLogger{})

	_, _ = repo.AdjustCoins(context.Background(), 7, 50)

	require.NotEmpty(t, recorder.statements)
	read := recorder.statements[0]
	assert.Contains(t, read, `FROM "users"`)
	assert.Contains(t, read, "FOR UPDATE")
}

func TestAdjustCoinsWritesBackUnderTheSameStatementChain(t *testing.T) {
	recorder := &sqlRecorder{}
	db := newDryRunDB(t, recorder)
	repo := NewUserRepository(db, testutil.NewClock(), testutil.NopLogger{})

	_, _ = repo.AdjustCoins(context.Background(), 7, 50)

	require.Len(t, recorder.statements, 2)
	write := recorder.statements[1]
	assert.Contains(t, write, `UPDATE "users"`)
	assert.Contains(t, write, "coin_balance")
	assert.Contains(t, write, "donation_count")
}
