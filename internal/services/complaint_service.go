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

// ComplaintStore is the persistence surface ComplaintService needs
type ComplaintStore interface {
	CreateComplaint(ctx context.Context, complaint *models.Complaint) error
	GetComplaintByID(ctx context.Context, id uuid.UUID) (*models.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, id uuid.UUID, status string) error
	ListComplaintsByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Complaint, error)
	ListOpenComplaints(ctx context.Context) ([]models.Complaint, error)
}

// FileComplaintInput carries a tenant's complaint submission
type FileComplaintInput struct {
	PropertyID  *uuid.UUID `json:"property_id"`
	Subject     string     `json:"subject"`
	Description string     `json:"description"`
}

// ComplaintService owns tenant complaints and their linear lifecycle
type ComplaintService struct {
	store  ComplaintStore
	events EventPublisher
	logger *logrus.Logger
}

// NewComplaintService creates a new complaint service. events may be nil.
func NewComplaintService(store ComplaintStore, events EventPublisher, logger *logrus.Logger) *ComplaintService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ComplaintService{store: store, events: events, logger: logger}
}

// FileComplaint validates and stores a tenant complaint
func (s *ComplaintService) FileComplaint(ctx context.Context, tenantID uuid.UUID, input FileComplaintInput) (*models.Complaint, error) {
	if strings.TrimSpace(input.Subject) == "" {
		return nil, NewValidationError("subject", "subject is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, NewValidationError("description", "description is required")
	}

	complaint := &models.Complaint{
		TenantID:    tenantID,
		PropertyID:  input.PropertyID,
		Subject:     strings.TrimSpace(input.Subject),
		Description: strings.TrimSpace(input.Description),
		Status:      models.ComplaintStatusOpen,
	}
	if err := s.store.CreateComplaint(ctx, complaint); err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.Publish("complaint.filed", map[string]interface{}{
			"complaint_id": complaint.ID.String(),
		}); err != nil {
			s.logger.WithError(err).Warn("failed to publish event")
		}
	}
	return complaint, nil
}

// AdvanceStatus moves a complaint along open -> in_progress -> resolved
func (s *ComplaintService) AdvanceStatus(ctx context.Context, id uuid.UUID, status string) (*models.Complaint, error) {
	complaint, err := s.store.GetComplaintByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrComplaintNotFound) {
			return nil, NewNotFoundError("complaint")
		}
		return nil, err
	}
	if !models.ValidComplaintTransition(complaint.Status, status) {
		return nil, NewValidationError("status", "invalid status transition from "+complaint.Status+" to "+status)
	}
	if err := s.store.UpdateComplaintStatus(ctx, id, status); err != nil {
		return nil, err
	}
	complaint.Status = status
	return complaint, nil
}

// TenantComplaints returns a tenant's complaints, newest first
func (s *ComplaintService) TenantComplaints(ctx context.Context, tenantID uuid.UUID) ([]models.Complaint, error) {
	return s.store.ListComplaintsByTenant(ctx, tenantID)
}

// OpenComplaints returns the unresolved backlog, oldest first
func (s *ComplaintService) OpenComplaints(ctx context.Context) ([]models.Complaint, error) {
	return s.store.ListOpenComplaints(ctx)
}
