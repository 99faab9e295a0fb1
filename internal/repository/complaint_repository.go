package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rento-service/internal/models"
)

// ErrComplaintNotFound is returned when no complaint row matches the lookup
var ErrComplaintNotFound = errors.New("complaint not found")

// ComplaintRepository handles complaint database operations
type ComplaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

// CreateComplaint inserts a new complaint
func (r *ComplaintRepository) CreateComplaint(ctx context.Context, complaint *models.Complaint) error {
	if err := r.db.WithContext(ctx).Create(complaint).Error; err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}
	return nil
}

// GetComplaintByID retrieves a complaint by ID
func (r *ComplaintRepository) GetComplaintByID(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := r.db.WithContext(ctx).First(&complaint, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	return &complaint, nil
}

// UpdateComplaintStatus writes a complaint's status
func (r *ComplaintRepository) UpdateComplaintStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).Model(&models.Complaint{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update complaint status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrComplaintNotFound
	}
	return nil
}

// ListComplaintsByTenant returns a tenant's complaints, newest first
func (r *ComplaintRepository) ListComplaintsByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Complaint, error) {
	complaints := []models.Complaint{}
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&complaints).Error; err != nil {
		return nil, fmt.Errorf("failed to list complaints by tenant: %w", err)
	}
	return complaints, nil
}

// ListOpenComplaints returns all unresolved complaints, oldest first
// so managers work the backlog in order
func (r *ComplaintRepository) ListOpenComplaints(ctx context.Context) ([]models.Complaint, error) {
	complaints := []models.Complaint{}
	if err := r.db.WithContext(ctx).
		Where("status <> ?", models.ComplaintStatusResolved).
		Order("created_at ASC").
		Find(&complaints).Error; err != nil {
		return nil, fmt.Errorf("failed to list open complaints: %w", err)
	}
	return complaints, nil
}
