package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rento-service/internal/models"
	"rento-service/internal/repository"
)

// MockLeadStore is a mock implementation of LeadStore
type MockLeadStore struct {
	mock.Mock
}

func (m *MockLeadStore) CreateLead(ctx context.Context, lead *models.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadStore) GetLeadByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *MockLeadStore) ListLeads(ctx context.Context) ([]models.Lead, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Lead), args.Error(1)
}

func (m *MockLeadStore) UpdateLeadStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockLeadStore) AppendMessage(ctx context.Context, message *models.LeadMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockLeadStore) ListMessages(ctx context.Context, leadID uuid.UUID) ([]models.LeadMessage, error) {
	args := m.Called(ctx, leadID)
	return args.Get(0).([]models.LeadMessage), args.Error(1)
}

func TestPostMessageRejectsEmptyContent(t *testing.T) {
	store := new(MockLeadStore)
	svc := NewLeadService(store, nil, nil)

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := svc.PostMessage(context.Background(), uuid.New(), nil, content)
		assert.True(t, IsValidationError(err), "content %q should be rejected", content)
	}

	// The store is never touched when validation fails
	store.AssertNotCalled(t, "GetLeadByID", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "AppendMessage", mock.Anything, mock.Anything)
}

func TestPostMessageUnknownLead(t *testing.T) {
	store := new(MockLeadStore)
	leadID := uuid.New()
	store.On("GetLeadByID", mock.Anything, leadID).Return(nil, repository.ErrLeadNotFound)

	svc := NewLeadService(store, nil, nil)
	_, err := svc.PostMessage(context.Background(), leadID, nil, "hello")
	assert.True(t, IsNotFoundError(err))
}

func TestPostMessageNeverChangesStatus(t *testing.T) {
	store := new(MockLeadStore)
	leadID := uuid.New()
	store.On("GetLeadByID", mock.Anything, leadID).Return(&models.Lead{ID: leadID, Status: models.LeadStatusNew}, nil)
	store.On("AppendMessage", mock.Anything, mock.AnythingOfType("*models.LeadMessage")).Return(nil)

	svc := NewLeadService(store, nil, nil)
	msg, err := svc.PostMessage(context.Background(), leadID, nil, "still interested?")
	require.NoError(t, err)
	assert.Equal(t, "still interested?", msg.Content)

	store.AssertNotCalled(t, "UpdateLeadStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateLeadValidation(t *testing.T) {
	store := new(MockLeadStore)
	svc := NewLeadService(store, nil, nil)

	_, err := svc.CreateLead(context.Background(), CreateLeadInput{
		TenantEmail:  "amira@example.com",
		PropertyType: "apartment",
		Location:     "Berlin",
	})
	assert.True(t, IsValidationError(err))

	store.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"new to contacted", models.LeadStatusNew, models.LeadStatusContacted, true},
		{"contacted to converted", models.LeadStatusContacted, models.LeadStatusConverted, true},
		{"contacted to closed", models.LeadStatusContacted, models.LeadStatusClosed, true},
		{"new to closed without contact", models.LeadStatusNew, models.LeadStatusClosed, true},
		{"new to converted skips a step", models.LeadStatusNew, models.LeadStatusConverted, false},
		{"converted is terminal", models.LeadStatusConverted, models.LeadStatusClosed, false},
		{"closed is terminal", models.LeadStatusClosed, models.LeadStatusContacted, false},
		{"no backward moves", models.LeadStatusContacted, models.LeadStatusNew, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockLeadStore)
			leadID := uuid.New()
			store.On("GetLeadByID", mock.Anything, leadID).Return(&models.Lead{ID: leadID, Status: tt.from}, nil)
			if tt.allowed {
				store.On("UpdateLeadStatus", mock.Anything, leadID, tt.to).Return(nil)
			}

			svc := NewLeadService(store, nil, nil)
			_, err := svc.UpdateStatus(context.Background(), leadID, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, IsValidationError(err))
				store.AssertNotCalled(t, "UpdateLeadStatus", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
