package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rento-service/internal/models"
)

// NoticeRepository handles manager-to-tenant message database
// operations
type NoticeRepository struct {
	db *gorm.DB
}

// NewNoticeRepository creates a new notice repository
func NewNoticeRepository(db *gorm.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// CreateMessage inserts a manager-to-tenant message
func (r *NoticeRepository) CreateMessage(ctx context.Context, message *models.ManagerTenantMessage) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("failed to create manager tenant message: %w", err)
	}
	return nil
}

// ListRecent returns the newest messages first, bounded by limit
func (r *NoticeRepository) ListRecent(ctx context.Context, limit int) ([]models.ManagerTenantMessage, error) {
	messages := []models.ManagerTenantMessage{}
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent messages: %w", err)
	}
	return messages, nil
}

// ListVisibleForTenant returns every message the tenant may read:
// broadcasts (tenant_id IS NULL) plus messages targeted at them,
// newest first, bounded by limit.
func (r *NoticeRepository) ListVisibleForTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]models.ManagerTenantMessage, error) {
	messages := []models.ManagerTenantMessage{}
	if err := r.db.WithContext(ctx).
		Where("tenant_id IS NULL OR tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list visible notices: %w", err)
	}
	return messages, nil
}
