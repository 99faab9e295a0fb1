package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rento-service/internal/models"
)

// newTestDB opens an in-memory database with the full schema migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Profile{},
		&models.TenantProfile{},
		&models.BrokerProfile{},
		&models.ManagerProfile{},
		&models.Lead{},
		&models.LeadMessage{},
		&models.ManagerTenantMessage{},
		&models.Property{},
		&models.TenantAssignment{},
		&models.Viewing{},
		&models.Payment{},
		&models.Expense{},
		&models.Complaint{},
	)
	require.NoError(t, err)

	return db
}
