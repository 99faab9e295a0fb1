package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rento-service/internal/models"
)

func TestUpsertProfileIdempotent(t *testing.T) {
	repo := NewProfileRepository(newTestDB(t))
	userID := uuid.New()

	profile := &models.Profile{
		ID:       userID,
		Role:     models.RoleTenant,
		FullName: "Amira Khan",
		Phone:    "123456",
	}
	require.NoError(t, repo.UpsertProfile(context.Background(), profile))
	require.NoError(t, repo.UpsertProfile(context.Background(), profile))

	got, err := repo.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Amira Khan", got.FullName)
	assert.Equal(t, models.RoleTenant, got.Role)
}

func TestUpsertProfileNeverChangesRole(t *testing.T) {
	repo := NewProfileRepository(newTestDB(t))
	userID := uuid.New()

	require.NoError(t, repo.UpsertProfile(context.Background(), &models.Profile{
		ID:       userID,
		Role:     models.RoleTenant,
		FullName: "Amira Khan",
	}))

	// A later upsert carrying a different role updates the mutable
	// fields but leaves the role as it was set at sign-up
	require.NoError(t, repo.UpsertProfile(context.Background(), &models.Profile{
		ID:       userID,
		Role:     models.RoleBroker,
		FullName: "Amira K.",
		Phone:    "987654",
	}))

	got, err := repo.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTenant, got.Role)
	assert.Equal(t, "Amira K.", got.FullName)
	assert.Equal(t, "987654", got.Phone)
}

func TestGetProfileNotFound(t *testing.T) {
	repo := NewProfileRepository(newTestDB(t))

	_, err := repo.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestUpsertRoleProfiles(t *testing.T) {
	repo := NewProfileRepository(newTestDB(t))
	userID := uuid.New()

	require.NoError(t, repo.UpsertTenantProfile(context.Background(), &models.TenantProfile{
		ID:         userID,
		Occupation: "engineer",
	}))
	require.NoError(t, repo.UpsertTenantProfile(context.Background(), &models.TenantProfile{
		ID:         userID,
		Occupation: "architect",
	}))

	var tp models.TenantProfile
	require.NoError(t, repo.db.First(&tp, "id = ?", userID).Error)
	assert.Equal(t, "architect", tp.Occupation)

	brokerID := uuid.New()
	require.NoError(t, repo.UpsertBrokerProfile(context.Background(), &models.BrokerProfile{
		ID:            brokerID,
		Company:       "Acme Realty",
		LicenseNumber: "B-1001",
	}))

	var bp models.BrokerProfile
	require.NoError(t, repo.db.First(&bp, "id = ?", brokerID).Error)
	assert.Equal(t, "B-1001", bp.LicenseNumber)
}

func TestListProfilesByRole(t *testing.T) {
	repo := NewProfileRepository(newTestDB(t))

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.UpsertProfile(context.Background(), &models.Profile{
			ID:   uuid.New(),
			Role: models.RoleTenant,
		}))
	}
	require.NoError(t, repo.UpsertProfile(context.Background(), &models.Profile{
		ID:   uuid.New(),
		Role: models.RoleManager,
	}))

	tenants, err := repo.ListProfilesByRole(context.Background(), models.RoleTenant)
	require.NoError(t, err)
	assert.Len(t, tenants, 3)
}
