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

func seedComplaint(t *testing.T, repo *ComplaintRepository, tenantID uuid.UUID, subject string, createdAt time.Time) *models.Complaint {
	t.Helper()
	complaint := &models.Complaint{
		TenantID:    tenantID,
		Subject:     subject,
		Description: "details",
		Status:      models.ComplaintStatusOpen,
		CreatedAt:   createdAt,
	}
	require.NoError(t, repo.CreateComplaint(context.Background(), complaint))
	return complaint
}

func TestComplaintStatusUpdate(t *testing.T) {
	repo := NewComplaintRepository(newTestDB(t))
	complaint := seedComplaint(t, repo, uuid.New(), "leaking tap", time.Now().UTC())

	require.NoError(t, repo.UpdateComplaintStatus(context.Background(), complaint.ID, models.ComplaintStatusInProgress))

	got, err := repo.GetComplaintByID(context.Background(), complaint.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusInProgress, got.Status)
}

func TestListOpenComplaintsExcludesResolved(t *testing.T) {
	repo := NewComplaintRepository(newTestDB(t))
	tenant := uuid.New()
	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	open := seedComplaint(t, repo, tenant, "leaking tap", base)
	inProgress := seedComplaint(t, repo, tenant, "broken heater", base.Add(time.Hour))

	resolved := seedComplaint(t, repo, tenant, "noisy neighbors", base.Add(2*time.Hour))
	require.NoError(t, repo.UpdateComplaintStatus(context.Background(), resolved.ID, models.ComplaintStatusResolved))

	got, err := repo.ListOpenComplaints(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Oldest first so managers work the backlog in order
	assert.Equal(t, open.ID, got[0].ID)
	assert.Equal(t, inProgress.ID, got[1].ID)
}

func TestListComplaintsByTenantNewestFirst(t *testing.T) {
	repo := NewComplaintRepository(newTestDB(t))
	tenant := uuid.New()
	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	seedComplaint(t, repo, tenant, "first", base)
	latest := seedComplaint(t, repo, tenant, "second", base.Add(time.Hour))
	seedComplaint(t, repo, uuid.New(), "someone else's", base.Add(2*time.Hour))

	got, err := repo.ListComplaintsByTenant(context.Background(), tenant)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, latest.ID, got[0].ID)
}
