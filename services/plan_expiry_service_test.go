package services

import (
	"testing"

	"laundrylink-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestDowngradeExpiredPlans(t *testing.T) {
	gdb, mock := newMockGorm(t)

	mock.ExpectExec(`UPDATE "owners" SET`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	NewPlanExpiryService(gdb).DowngradeExpiredPlans()

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationServiceDisabledWithoutCredentials(t *testing.T) {
	t.Setenv("TWILIO_ACCOUNT_SID", "")
	t.Setenv("TWILIO_AUTH_TOKEN", "")

	gdb, mock := newMockGorm(t)
	s := NewNotificationService(gdb)

	// no lookups, no sends
	s.SendOrderStatusUpdate(models.Order{Status: models.OrderStatusCompleted})

	require.NoError(t, mock.ExpectationsWereMet())
}
