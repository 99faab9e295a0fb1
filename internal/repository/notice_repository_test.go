package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rento-service/internal/models"
)

func seedMessage(t *testing.T, repo *NoticeRepository, tenantID *uuid.UUID, content string, createdAt time.Time) *models.ManagerTenantMessage {
	t.Helper()
	msg := &models.ManagerTenantMessage{
		SenderID:  uuid.New(),
		TenantID:  tenantID,
		Content:   content,
		CreatedAt: createdAt,
	}
	require.NoError(t, repo.CreateMessage(context.Background(), msg))
	return msg
}

func TestListVisibleForTenant(t *testing.T) {
	repo := NewNoticeRepository(newTestDB(t))
	base := time.Date(2026, 8, 10, 8, 0, 0, 0, time.UTC)

	tenantA := uuid.New()
	tenantB := uuid.New()

	broadcast := seedMessage(t, repo, nil, "water shutoff friday", base)
	direct := seedMessage(t, repo, &tenantA, "your lease renewal", base.Add(time.Hour))
	seedMessage(t, repo, &tenantB, "someone else's notice", base.Add(2*time.Hour))

	visible, err := repo.ListVisibleForTenant(context.Background(), tenantA, 25)
	require.NoError(t, err)
	require.Len(t, visible, 2)

	// Newest first: the direct message postdates the broadcast
	assert.Equal(t, direct.ID, visible[0].ID)
	assert.Equal(t, broadcast.ID, visible[1].ID)
}

func TestListVisibleForTenantBroadcastOnly(t *testing.T) {
	repo := NewNoticeRepository(newTestDB(t))

	seedMessage(t, repo, nil, "building inspection", time.Now().UTC())

	// A tenant with no direct messages still sees broadcasts
	visible, err := repo.ListVisibleForTenant(context.Background(), uuid.New(), 25)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Nil(t, visible[0].TenantID)
}

func TestListVisibleForTenantLimit(t *testing.T) {
	repo := NewNoticeRepository(newTestDB(t))
	base := time.Date(2026, 8, 10, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 30; i++ {
		seedMessage(t, repo, nil, fmt.Sprintf("notice %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	visible, err := repo.ListVisibleForTenant(context.Background(), uuid.New(), 25)
	require.NoError(t, err)
	assert.Len(t, visible, 25)
	assert.Equal(t, "notice 29", visible[0].Content)
}

func TestListRecent(t *testing.T) {
	repo := NewNoticeRepository(newTestDB(t))
	base := time.Date(2026, 8, 10, 8, 0, 0, 0, time.UTC)

	tenantA := uuid.New()
	for i := 0; i < 12; i++ {
		target := &tenantA
		if i%2 == 0 {
			target = nil
		}
		seedMessage(t, repo, target, fmt.Sprintf("message %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	recent, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 10)

	// Direct and broadcast messages both appear, newest first
	assert.Equal(t, "message 11", recent[0].Content)
	assert.Equal(t, "message 2", recent[9].Content)
}
