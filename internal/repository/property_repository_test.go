package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rento-service/internal/models"
)

func seedProperty(t *testing.T, repo *PropertyRepository, ownerID uuid.UUID, location string, rent float64) *models.Property {
	t.Helper()
	property := &models.Property{
		OwnerID:      ownerID,
		Name:         "Unit " + uuid.NewString()[:8],
		Address:      "1 Main St",
		Location:     location,
		PropertyType: "apartment",
		Rent:         rent,
		Status:       models.PropertyStatusAvailable,
	}
	require.NoError(t, repo.CreateProperty(context.Background(), property))
	return property
}

func TestListAvailablePropertiesFilter(t *testing.T) {
	repo := NewPropertyRepository(newTestDB(t))
	owner := uuid.New()

	cheap := seedProperty(t, repo, owner, "Berlin", 900)
	seedProperty(t, repo, owner, "Berlin", 2500)
	seedProperty(t, repo, owner, "Hamburg", 800)

	occupied := seedProperty(t, repo, owner, "Berlin", 950)
	occupied.Status = models.PropertyStatusOccupied
	require.NoError(t, repo.UpdateProperty(context.Background(), occupied))

	got, err := repo.ListAvailableProperties(context.Background(), PropertyFilter{
		Location: "Berlin",
		MaxRent:  1000,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, cheap.ID, got[0].ID)
}

func TestAssignAndRemoveTenant(t *testing.T) {
	repo := NewPropertyRepository(newTestDB(t))
	manager := uuid.New()
	tenant := uuid.New()
	property := seedProperty(t, repo, manager, "Berlin", 1200)

	assignment := &models.TenantAssignment{
		PropertyID: property.ID,
		TenantID:   tenant,
		AssignedBy: manager,
	}
	require.NoError(t, repo.AssignTenant(context.Background(), assignment))

	got, err := repo.GetAssignmentForTenant(context.Background(), tenant)
	require.NoError(t, err)
	assert.Equal(t, property.ID, got.PropertyID)

	require.NoError(t, repo.RemoveTenant(context.Background(), property.ID, tenant))

	_, err = repo.GetAssignmentForTenant(context.Background(), tenant)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestRemoveTenantUnknownAssignment(t *testing.T) {
	repo := NewPropertyRepository(newTestDB(t))

	err := repo.RemoveTenant(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestDuplicateAssignmentRejected(t *testing.T) {
	repo := NewPropertyRepository(newTestDB(t))
	manager := uuid.New()
	tenant := uuid.New()
	property := seedProperty(t, repo, manager, "Berlin", 1200)

	first := &models.TenantAssignment{PropertyID: property.ID, TenantID: tenant, AssignedBy: manager}
	require.NoError(t, repo.AssignTenant(context.Background(), first))

	dup := &models.TenantAssignment{PropertyID: property.ID, TenantID: tenant, AssignedBy: manager}
	assert.Error(t, repo.AssignTenant(context.Background(), dup))
}

func TestViewingLifecycle(t *testing.T) {
	repo := NewPropertyRepository(newTestDB(t))
	manager := uuid.New()
	tenant := uuid.New()
	property := seedProperty(t, repo, manager, "Berlin", 1200)

	viewing := &models.Viewing{
		PropertyID:  property.ID,
		TenantID:    tenant,
		ScheduledAt: time.Now().Add(48 * time.Hour),
		Status:      models.ViewingStatusRequested,
	}
	require.NoError(t, repo.CreateViewing(context.Background(), viewing))

	require.NoError(t, repo.UpdateViewingStatus(context.Background(), viewing.ID, models.ViewingStatusConfirmed))

	byTenant, err := repo.ListViewingsByTenant(context.Background(), tenant)
	require.NoError(t, err)
	require.Len(t, byTenant, 1)
	assert.Equal(t, models.ViewingStatusConfirmed, byTenant[0].Status)

	byProperty, err := repo.ListViewingsByProperty(context.Background(), property.ID)
	require.NoError(t, err)
	assert.Len(t, byProperty, 1)
}
