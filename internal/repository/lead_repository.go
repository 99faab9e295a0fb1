package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rento-service/internal/models"
)

// ErrLeadNotFound is returned when no lead row matches the lookup
var ErrLeadNotFound = errors.New("lead not found")

// LeadRepository handles lead and lead-message database operations.
// Lead messages are append-only: there is no update or delete path.
type LeadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// CreateLead inserts a new lead
func (r *LeadRepository) CreateLead(ctx context.Context, lead *models.Lead) error {
	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

// GetLeadByID retrieves a lead by ID
func (r *LeadRepository) GetLeadByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	if err := r.db.WithContext(ctx).First(&lead, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return &lead, nil
}

// ListLeads returns all leads ordered by creation time descending.
// No pagination; the marketplace front end renders the full list.
func (r *LeadRepository) ListLeads(ctx context.Context) ([]models.Lead, error) {
	var leads []models.Lead
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

// UpdateLeadStatus writes a new status value. Transition validity is
// the service's concern.
func (r *LeadRepository) UpdateLeadStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).Model(&models.Lead{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update lead status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// AppendMessage adds one message to a lead's thread
func (r *LeadRepository) AppendMessage(ctx context.Context, message *models.LeadMessage) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("failed to append lead message: %w", err)
	}
	return nil
}

// ListMessages returns a lead's thread in ascending creation-time
// order. An empty thread yields an empty slice, not an error.
func (r *LeadRepository) ListMessages(ctx context.Context, leadID uuid.UUID) ([]models.LeadMessage, error) {
	messages := []models.LeadMessage{}
	if err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list lead messages: %w", err)
	}
	return messages, nil
}

// MarkStaleLeads closes leads that have sat in 'new' longer than the
// given cutoff. Returns the number of rows touched.
func (r *LeadRepository) MarkStaleLeads(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	result := r.db.WithContext(ctx).Model(&models.Lead{}).
		Where("status = ? AND created_at < ?", models.LeadStatusNew, cutoff).
		Update("status", models.LeadStatusClosed)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark stale leads: %w", result.Error)
	}
	return result.RowsAffected, nil
}
