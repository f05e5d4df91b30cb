package repository

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"chatledger/internal/domain/identity"
	"chatledger/internal/infrastructure/persistence/models"
	"chatledger/internal/shared/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&models.ProfileModel{},
		&models.PlanModel{},
		&models.SubscriptionModel{},
		&models.PaymentRequestModel{},
		&models.TokenTransactionModel{},
		&models.ContactRequestModel{},
		&models.BankSettingsModel{},
	))

	return gdb
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}

func mustProfile(t *testing.T, id, email string) *identity.Profile {
	t.Helper()
	profile, err := identity.NewProfileFromIdentity(id, email, identity.UserMetadata{})
	require.NoError(t, err)
	return profile
}
