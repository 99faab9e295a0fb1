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

func seedLead(t *testing.T, repo *LeadRepository, name string, createdAt time.Time) *models.Lead {
	t.Helper()
	lead := &models.Lead{
		TenantName:   name,
		TenantEmail:  name + "@example.com",
		PropertyType: "apartment",
		PriceRange:   "1000-1500",
		Location:     "Berlin",
		Status:       models.LeadStatusNew,
		CreatedAt:    createdAt,
	}
	require.NoError(t, repo.CreateLead(context.Background(), lead))
	return lead
}

func TestListLeadsNewestFirst(t *testing.T) {
	repo := NewLeadRepository(newTestDB(t))
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	oldest := seedLead(t, repo, "amira", base)
	middle := seedLead(t, repo, "bert", base.Add(time.Hour))
	newest := seedLead(t, repo, "carla", base.Add(2*time.Hour))

	leads, err := repo.ListLeads(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 3)

	assert.Equal(t, newest.ID, leads[0].ID)
	assert.Equal(t, middle.ID, leads[1].ID)
	assert.Equal(t, oldest.ID, leads[2].ID)
}

func TestGetLeadByIDNotFound(t *testing.T) {
	repo := NewLeadRepository(newTestDB(t))

	_, err := repo.GetLeadByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestUpdateLeadStatus(t *testing.T) {
	repo := NewLeadRepository(newTestDB(t))
	lead := seedLead(t, repo, "amira", time.Now().UTC())

	err := repo.UpdateLeadStatus(context.Background(), lead.ID, models.LeadStatusContacted)
	require.NoError(t, err)

	got, err := repo.GetLeadByID(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusContacted, got.Status)
}

func TestUpdateLeadStatusUnknownLead(t *testing.T) {
	repo := NewLeadRepository(newTestDB(t))

	err := repo.UpdateLeadStatus(context.Background(), uuid.New(), models.LeadStatusContacted)
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestListMessagesAscending(t *testing.T) {
	repo := NewLeadRepository(newTestDB(t))
	lead := seedLead(t, repo, "amira", time.Now().UTC())
	base := time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)

	sender := uuid.New()
	for i, content := range []string{"first", "second", "third"} {
		msg := &models.LeadMessage{
			LeadID:    lead.ID,
			SenderID:  &sender,
			Content:   content,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.AppendMessage(context.Background(), msg))
	}

	messages, err := repo.ListMessages(context.Background(), lead.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)

	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "second", messages[1].Content)
	assert.Equal(t, "third", messages[2].Content)
}

func TestListMessagesEmptyThread(t *testing.T) {
	repo := NewLeadRepository(newTestDB(t))
	lead := seedLead(t, repo, "amira", time.Now().UTC())

	messages, err := repo.ListMessages(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}

func TestAppendMessageDoesNotTouchLead(t *testing.T) {
	repo := NewLeadRepository(newTestDB(t))
	lead := seedLead(t, repo, "amira", time.Now().UTC())

	msg := &models.LeadMessage{LeadID: lead.ID, Content: "hello"}
	require.NoError(t, repo.AppendMessage(context.Background(), msg))

	got, err := repo.GetLeadByID(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusNew, got.Status)
}

func TestMarkStaleLeads(t *testing.T) {
	repo := NewLeadRepository(newTestDB(t))

	stale := seedLead(t, repo, "amira", time.Now().AddDate(0, 0, -45))
	fresh := seedLead(t, repo, "bert", time.Now().AddDate(0, 0, -5))

	contacted := seedLead(t, repo, "carla", time.Now().AddDate(0, 0, -45))
	require.NoError(t, repo.UpdateLeadStatus(context.Background(), contacted.ID, models.LeadStatusContacted))

	closed, err := repo.MarkStaleLeads(context.Background(), 30)
	require.NoError(t, err)
	assert.EqualValues(t, 1, closed)

	got, err := repo.GetLeadByID(context.Background(), stale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusClosed, got.Status)

	got, err = repo.GetLeadByID(context.Background(), fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusNew, got.Status)
}

func TestAppendMessageNilSender(t *testing.T) {
	repo := NewLeadRepository(newTestDB(t))
	lead := seedLead(t, repo, "amira", time.Now().UTC())

	msg := &models.LeadMessage{LeadID: lead.ID, Content: "anonymous inquiry"}
	require.NoError(t, repo.AppendMessage(context.Background(), msg))

	messages, err := repo.ListMessages(context.Background(), lead.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Nil(t, messages[0].SenderID)
}
