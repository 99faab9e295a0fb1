package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"rento-service/internal/models"
	"rento-service/internal/repository"
)

// EventPublisher publishes domain events. Optional: a nil publisher
// disables event publishing without affecting the operation result.
type EventPublisher interface {
	Publish(subject string, payload interface{}) error
}

// LeadStore is the persistence surface LeadService needs
type LeadStore interface {
	CreateLead(ctx context.Context, lead *models.Lead) error
	GetLeadByID(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	ListLeads(ctx context.Context) ([]models.Lead, error)
	UpdateLeadStatus(ctx context.Context, id uuid.UUID, status string) error
	AppendMessage(ctx context.Context, message *models.LeadMessage) error
	ListMessages(ctx context.Context, leadID uuid.UUID) ([]models.LeadMessage, error)
}

// CreateLeadInput carries a tenant's housing request submission
type CreateLeadInput struct {
	TenantID     *uuid.UUID `json:"tenant_id"`
	TenantName   string     `json:"tenant_name"`
	TenantEmail  string     `json:"tenant_email"`
	TenantPhone  *string    `json:"tenant_phone"`
	PropertyType string     `json:"property_type"`
	PriceRange   string     `json:"price_range"`
	Size         string     `json:"size"`
	Rooms        string     `json:"rooms"`
	Location     string     `json:"location"`
}

// LeadService owns leads and their append-only message threads
type LeadService struct {
	store  LeadStore
	events EventPublisher
	logger *logrus.Logger
}

// NewLeadService creates a new lead service. events may be nil.
func NewLeadService(store LeadStore, events EventPublisher, logger *logrus.Logger) *LeadService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LeadService{store: store, events: events, logger: logger}
}

// CreateLead validates and stores a tenant's housing request
func (s *LeadService) CreateLead(ctx context.Context, input CreateLeadInput) (*models.Lead, error) {
	if strings.TrimSpace(input.TenantName) == "" {
		return nil, NewValidationError("tenant_name", "name is required")
	}
	if strings.TrimSpace(input.TenantEmail) == "" {
		return nil, NewValidationError("tenant_email", "email is required")
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, NewValidationError("location", "location is required")
	}
	if strings.TrimSpace(input.PropertyType) == "" {
		return nil, NewValidationError("property_type", "property type is required")
	}

	lead := &models.Lead{
		TenantID:     input.TenantID,
		TenantName:   strings.TrimSpace(input.TenantName),
		TenantEmail:  strings.TrimSpace(input.TenantEmail),
		TenantPhone:  input.TenantPhone,
		PropertyType: input.PropertyType,
		PriceRange:   input.PriceRange,
		Size:         input.Size,
		Rooms:        input.Rooms,
		Location:     input.Location,
		Status:       models.LeadStatusNew,
	}
	if err := s.store.CreateLead(ctx, lead); err != nil {
		return nil, err
	}

	s.publish("lead.created", map[string]interface{}{
		"lead_id":  lead.ID.String(),
		"location": lead.Location,
	})
	return lead, nil
}

// ListLeads returns all leads, newest first
func (s *LeadService) ListLeads(ctx context.Context) ([]models.Lead, error) {
	return s.store.ListLeads(ctx)
}

// GetLead returns a single lead
func (s *LeadService) GetLead(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	lead, err := s.store.GetLeadByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			return nil, NewNotFoundError("lead")
		}
		return nil, err
	}
	return lead, nil
}

// UpdateStatus advances a lead along the linear lifecycle
// new -> contacted -> converted | closed
func (s *LeadService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Lead, error) {
	lead, err := s.GetLead(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.ValidLeadTransition(lead.Status, status) {
		return nil, NewValidationError("status", "invalid status transition from "+lead.Status+" to "+status)
	}
	if err := s.store.UpdateLeadStatus(ctx, id, status); err != nil {
		return nil, err
	}
	lead.Status = status
	s.publish("lead.status_changed", map[string]interface{}{
		"lead_id": id.String(),
		"status":  status,
	})
	return lead, nil
}

// PostMessage appends one message to a lead's thread. Content must be
// non-empty after trimming; the check runs before any storage call.
// Lead.status is never touched.
func (s *LeadService) PostMessage(ctx context.Context, leadID uuid.UUID, senderID *uuid.UUID, content string) (*models.LeadMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, NewValidationError("content", "message content is required")
	}

	if _, err := s.GetLead(ctx, leadID); err != nil {
		return nil, err
	}

	message := &models.LeadMessage{
		LeadID:   leadID,
		SenderID: senderID,
		Content:  content,
	}
	if err := s.store.AppendMessage(ctx, message); err != nil {
		return nil, err
	}

	s.publish("lead.message_posted", map[string]interface{}{
		"lead_id":    leadID.String(),
		"message_id": message.ID.String(),
	})
	return message, nil
}

// ListMessages returns a lead's thread in ascending creation-time
// order; an empty thread is an empty slice, not an error
func (s *LeadService) ListMessages(ctx context.Context, leadID uuid.UUID) ([]models.LeadMessage, error) {
	return s.store.ListMessages(ctx, leadID)
}

func (s *LeadService) publish(subject string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(subject, payload); err != nil {
		s.logger.WithField("subject", subject).WithError(err).Warn("failed to publish event")
	}
}
