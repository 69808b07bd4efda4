package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/amrshakerr/editor_portfolio/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// newTestDB opens a fresh in-memory database per test so state never leaks
// between tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Review{},
		&models.OwnerReply{},
		&models.Project{},
	))

	InvalidateRatingSummary()
	return db
}

func mustCreateReview(t *testing.T, db *gorm.DB, name string, rating int, comment string) (models.Review, string) {
	t.Helper()
	review, token, err := CreateReview(db, ReviewInput{Name: name, Rating: rating, Comment: comment})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	return review, token
}
