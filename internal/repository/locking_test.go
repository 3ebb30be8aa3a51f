package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlRecorder captures every statement GORM renders so tests can assert
// on the generated SQL without a live database.
type sqlRecorder struct {
	sqls []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface      { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, _ := fc()
	r.sqls = append(r.sqls, sql)
}

func newDryRunDB(t *testing.T, rec *sqlRecorder) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=postgres dbname=ticketing sslmode=disable",
	}), &gorm.Config{
		Logger:               rec,
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

// The admission serialization in booking creation and payment depends on
// these reads taking a row lock; the rendered SQL must say so.

func TestEventFindByIDForUpdate_RendersRowLock(t *testing.T) {
	rec := &sqlRecorder{}
	db := newDryRunDB(t, rec)
	repo := NewEventRepository(db)

	_, _ = repo.FindByIDForUpdate(context.Background(), db, 1)

	require.NotEmpty(t, rec.sqls)
	assert.Contains(t, rec.sqls[len(rec.sqls)-1], "FOR UPDATE")
}

func TestBookingFindByIDForUpdate_RendersRowLock(t *testing.T) {
	rec := &sqlRecorder{}
	db := newDryRunDB(t, rec)
	repo := NewBookingRepository(db)

	_, _ = repo.FindByIDForUpdate(context.Background(), db, 1)

	require.NotEmpty(t, rec.sqls)
	assert.Contains(t, rec.sqls[len(rec.sqls)-1], "FOR UPDATE")
}

func TestEventFindByID_DoesNotLock(t *testing.T) {
	rec := &sqlRecorder{}
	db := newDryRunDB(t, rec)
	repo := NewEventRepository(db)

	_, _ = repo.FindByID(context.Background(), 1)

	require.NotEmpty(t, rec.sqls)
	assert.NotContains(t, rec.sqls[len(rec.sqls)-1], "FOR UPDATE")
}
