package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"rento-service/internal/models"
	"rento-service/internal/repository"
)

// PropertyStore is the persistence surface PropertyService needs
type PropertyStore interface {
	CreateProperty(ctx context.Context, property *models.Property) error
	GetPropertyByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	UpdateProperty(ctx context.Context, property *models.Property) error
	ListPropertiesByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Property, error)
	ListAvailableProperties(ctx context.Context, filter repository.PropertyFilter) ([]models.Property, error)
	AssignTenant(ctx context.Context, assignment *models.TenantAssignment) error
	RemoveTenant(ctx context.Context, propertyID, tenantID uuid.UUID) error
	ListAssignmentsByManager(ctx context.Context, managerID uuid.UUID) ([]models.TenantAssignment, error)
	GetAssignmentForTenant(ctx context.Context, tenantID uuid.UUID) (*models.TenantAssignment, error)
	CreateViewing(ctx context.Context, viewing *models.Viewing) error
	UpdateViewingStatus(ctx context.Context, id uuid.UUID, status string) error
	ListViewingsByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Viewing, error)
	ListViewingsByProperty(ctx context.Context, propertyID uuid.UUID) ([]models.Viewing, error)
}

// CreatePropertyInput carries a new listing submission
type CreatePropertyInput struct {
	Name         string       `json:"name"`
	Address      string       `json:"address"`
	Location     string       `json:"location"`
	PropertyType string       `json:"property_type"`
	Rent         float64      `json:"rent"`
	Rooms        int          `json:"rooms"`
	Size         string       `json:"size"`
	Images       models.JSONB `json:"images"`
}

// PropertyService owns listings, tenancy assignment and viewings
type PropertyService struct {
	store  PropertyStore
	events EventPublisher
	logger *logrus.Logger
}

// NewPropertyService creates a new property service. events may be nil.
func NewPropertyService(store PropertyStore, events EventPublisher, logger *logrus.Logger) *PropertyService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &PropertyService{store: store, events: events, logger: logger}
}

// CreateProperty validates and stores a new listing for its owner
func (s *PropertyService) CreateProperty(ctx context.Context, ownerID uuid.UUID, input CreatePropertyInput) (*models.Property, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, NewValidationError("name", "property name is required")
	}
	if strings.TrimSpace(input.Address) == "" {
		return nil, NewValidationError("address", "address is required")
	}
	if input.Rent < 0 {
		return nil, NewValidationError("rent", "rent cannot be negative")
	}

	property := &models.Property{
		OwnerID:      ownerID,
		Name:         strings.TrimSpace(input.Name),
		Address:      strings.TrimSpace(input.Address),
		Location:     input.Location,
		PropertyType: input.PropertyType,
		Rent:         input.Rent,
		Rooms:        input.Rooms,
		Size:         input.Size,
		Status:       models.PropertyStatusAvailable,
		Images:       input.Images,
	}
	if err := s.store.CreateProperty(ctx, property); err != nil {
		return nil, err
	}
	s.publish("property.created", map[string]interface{}{"property_id": property.ID.String()})
	return property, nil
}

// GetProperty returns a single property
func (s *PropertyService) GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	property, err := s.store.GetPropertyByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return nil, NewNotFoundError("property")
		}
		return nil, err
	}
	return property, nil
}

// UpdateProperty applies listing changes; only the owner may update
func (s *PropertyService) UpdateProperty(ctx context.Context, ownerID, propertyID uuid.UUID, input CreatePropertyInput) (*models.Property, error) {
	property, err := s.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, NewForbiddenError("only the property owner may update a listing")
	}

	if strings.TrimSpace(input.Name) != "" {
		property.Name = strings.TrimSpace(input.Name)
	}
	if strings.TrimSpace(input.Address) != "" {
		property.Address = strings.TrimSpace(input.Address)
	}
	if input.Location != "" {
		property.Location = input.Location
	}
	if input.PropertyType != "" {
		property.PropertyType = input.PropertyType
	}
	if input.Rent > 0 {
		property.Rent = input.Rent
	}
	if input.Rooms > 0 {
		property.Rooms = input.Rooms
	}
	if input.Size != "" {
		property.Size = input.Size
	}
	if len(input.Images) > 0 {
		property.Images = input.Images
	}
	if err := s.store.UpdateProperty(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// ListOwnProperties returns the caller's listings, newest first
func (s *PropertyService) ListOwnProperties(ctx context.Context, ownerID uuid.UUID) ([]models.Property, error) {
	return s.store.ListPropertiesByOwner(ctx, ownerID)
}

// ListAvailable returns available listings matching the filter
func (s *PropertyService) ListAvailable(ctx context.Context, filter repository.PropertyFilter) ([]models.Property, error) {
	return s.store.ListAvailableProperties(ctx, filter)
}

// AssignTenant links a tenant to a property and marks it occupied
func (s *PropertyService) AssignTenant(ctx context.Context, managerID, propertyID, tenantID uuid.UUID) (*models.TenantAssignment, error) {
	property, err := s.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	assignment := &models.TenantAssignment{
		PropertyID: propertyID,
		TenantID:   tenantID,
		AssignedBy: managerID,
	}
	if err := s.store.AssignTenant(ctx, assignment); err != nil {
		return nil, err
	}

	property.Status = models.PropertyStatusOccupied
	if err := s.store.UpdateProperty(ctx, property); err != nil {
		s.logger.WithError(err).Warn("failed to mark property occupied after assignment")
	}

	s.publish("tenant.assigned", map[string]interface{}{
		"property_id": propertyID.String(),
		"tenant_id":   tenantID.String(),
	})
	return assignment, nil
}

// RemoveTenant deletes a tenant's assignment and frees the property.
// The single destructive operation in the system.
func (s *PropertyService) RemoveTenant(ctx context.Context, propertyID, tenantID uuid.UUID) error {
	if err := s.store.RemoveTenant(ctx, propertyID, tenantID); err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return NewNotFoundError("tenant assignment")
		}
		return err
	}

	property, err := s.GetProperty(ctx, propertyID)
	if err == nil {
		property.Status = models.PropertyStatusAvailable
		if err := s.store.UpdateProperty(ctx, property); err != nil {
			s.logger.WithError(err).Warn("failed to mark property available after removal")
		}
	}

	s.publish("tenant.removed", map[string]interface{}{
		"property_id": propertyID.String(),
		"tenant_id":   tenantID.String(),
	})
	return nil
}

// ListManagedTenants returns the assignments created by a manager
func (s *PropertyService) ListManagedTenants(ctx context.Context, managerID uuid.UUID) ([]models.TenantAssignment, error) {
	return s.store.ListAssignmentsByManager(ctx, managerID)
}

// CurrentAssignment returns a tenant's property assignment, if any
func (s *PropertyService) CurrentAssignment(ctx context.Context, tenantID uuid.UUID) (*models.TenantAssignment, error) {
	assignment, err := s.store.GetAssignmentForTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return nil, NewNotFoundError("tenant assignment")
		}
		return nil, err
	}
	return assignment, nil
}

// RequestViewing schedules a property viewing for a tenant
func (s *PropertyService) RequestViewing(ctx context.Context, tenantID, propertyID uuid.UUID, scheduledAt time.Time, note string) (*models.Viewing, error) {
	if scheduledAt.Before(time.Now()) {
		return nil, NewValidationError("scheduled_at", "viewing time must be in the future")
	}
	if _, err := s.GetProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	viewing := &models.Viewing{
		PropertyID:  propertyID,
		TenantID:    tenantID,
		ScheduledAt: scheduledAt,
		Status:      models.ViewingStatusRequested,
		Note:        note,
	}
	if err := s.store.CreateViewing(ctx, viewing); err != nil {
		return nil, err
	}
	s.publish("viewing.requested", map[string]interface{}{
		"viewing_id":  viewing.ID.String(),
		"property_id": propertyID.String(),
	})
	return viewing, nil
}

// RespondToViewing confirms or declines a viewing request
func (s *PropertyService) RespondToViewing(ctx context.Context, viewingID uuid.UUID, status string) error {
	if status != models.ViewingStatusConfirmed && status != models.ViewingStatusDeclined {
		return NewValidationError("status", "status must be confirmed or declined")
	}
	return s.store.UpdateViewingStatus(ctx, viewingID, status)
}

// ListTenantViewings returns a tenant's viewings, soonest first
func (s *PropertyService) ListTenantViewings(ctx context.Context, tenantID uuid.UUID) ([]models.Viewing, error) {
	return s.store.ListViewingsByTenant(ctx, tenantID)
}

// ListPropertyViewings returns a property's viewings, soonest first
func (s *PropertyService) ListPropertyViewings(ctx context.Context, propertyID uuid.UUID) ([]models.Viewing, error) {
	return s.store.ListViewingsByProperty(ctx, propertyID)
}

func (s *PropertyService) publish(subject string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(subject, payload); err != nil {
		s.logger.WithField("subject", subject).WithError(err).Warn("failed to publish event")
	}
}
