package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rento-service/internal/models"
)

// ErrPropertyNotFound is returned when no property row matches the lookup
var ErrPropertyNotFound = errors.New("property not found")

// ErrAssignmentNotFound is returned when no tenant assignment matches
var ErrAssignmentNotFound = errors.New("tenant assignment not found")

// PropertyFilter narrows public property listings
type PropertyFilter struct {
	Location     string
	PropertyType string
	MaxRent      float64
}

// PropertyRepository handles property, tenancy and viewing database
// operations
type PropertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// CreateProperty inserts a new property
func (r *PropertyRepository) CreateProperty(ctx context.Context, property *models.Property) error {
	if err := r.db.WithContext(ctx).Create(property).Error; err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// GetPropertyByID retrieves a property by ID
func (r *PropertyRepository) GetPropertyByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	var property models.Property
	if err := r.db.WithContext(ctx).First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &property, nil
}

// UpdateProperty saves property changes
func (r *PropertyRepository) UpdateProperty(ctx context.Context, property *models.Property) error {
	if err := r.db.WithContext(ctx).Save(property).Error; err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	return nil
}

// ListPropertiesByOwner returns properties owned by the given user,
// newest first
func (r *PropertyRepository) ListPropertiesByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Property, error) {
	properties := []models.Property{}
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties by owner: %w", err)
	}
	return properties, nil
}

// ListAvailableProperties returns available properties matching the
// filter, newest first
func (r *PropertyRepository) ListAvailableProperties(ctx context.Context, filter PropertyFilter) ([]models.Property, error) {
	query := r.db.WithContext(ctx).Where("status = ?", models.PropertyStatusAvailable)
	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}
	if filter.PropertyType != "" {
		query = query.Where("property_type = ?", filter.PropertyType)
	}
	if filter.MaxRent > 0 {
		query = query.Where("rent <= ?", filter.MaxRent)
	}

	properties := []models.Property{}
	if err := query.Order("created_at DESC").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list available properties: %w", err)
	}
	return properties, nil
}

// AssignTenant links a tenant to a property
func (r *PropertyRepository) AssignTenant(ctx context.Context, assignment *models.TenantAssignment) error {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return fmt.Errorf("failed to assign tenant: %w", err)
	}
	return nil
}

// RemoveTenant deletes a tenant's assignment to a property. This is
// the only destructive operation in the system.
func (r *PropertyRepository) RemoveTenant(ctx context.Context, propertyID, tenantID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("property_id = ? AND tenant_id = ?", propertyID, tenantID).
		Delete(&models.TenantAssignment{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove tenant: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

// ListAssignmentsByManager returns all assignments created by the
// given manager
func (r *PropertyRepository) ListAssignmentsByManager(ctx context.Context, managerID uuid.UUID) ([]models.TenantAssignment, error) {
	assignments := []models.TenantAssignment{}
	if err := r.db.WithContext(ctx).
		Where("assigned_by = ?", managerID).
		Order("created_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

// GetAssignmentForTenant returns the tenant's current property
// assignment, if any
func (r *PropertyRepository) GetAssignmentForTenant(ctx context.Context, tenantID uuid.UUID) (*models.TenantAssignment, error) {
	var assignment models.TenantAssignment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return &assignment, nil
}

// CreateViewing inserts a viewing request
func (r *PropertyRepository) CreateViewing(ctx context.Context, viewing *models.Viewing) error {
	if err := r.db.WithContext(ctx).Create(viewing).Error; err != nil {
		return fmt.Errorf("failed to create viewing: %w", err)
	}
	return nil
}

// UpdateViewingStatus writes a viewing's status
func (r *PropertyRepository) UpdateViewingStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).Model(&models.Viewing{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update viewing status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("viewing not found: %s", id)
	}
	return nil
}

// ListViewingsByTenant returns a tenant's viewings, soonest first
func (r *PropertyRepository) ListViewingsByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Viewing, error) {
	viewings := []models.Viewing{}
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("scheduled_at ASC").
		Find(&viewings).Error; err != nil {
		return nil, fmt.Errorf("failed to list viewings by tenant: %w", err)
	}
	return viewings, nil
}

// ListViewingsByProperty returns a property's viewings, soonest first
func (r *PropertyRepository) ListViewingsByProperty(ctx context.Context, propertyID uuid.UUID) ([]models.Viewing, error) {
	viewings := []models.Viewing{}
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("scheduled_at ASC").
		Find(&viewings).Error; err != nil {
		return nil, fmt.Errorf("failed to list viewings by property: %w", err)
	}
	return viewings, nil
}
