package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rento-service/internal/models"
)

// ErrProfileNotFound is returned when no profile row matches the lookup
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository handles profile and role-profile database operations
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// UpsertProfile inserts or updates a profile keyed by user ID.
// Conflict-safe: calling twice with the same ID leaves exactly one row
// with the latest mutable fields. Role is written on insert only and
// never overwritten, preserving the set-once invariant.
func (r *ProfileRepository) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "phone", "avatar_url", "updated_at"}),
	}).Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by user ID
func (r *ProfileRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// ListProfilesByRole retrieves all profiles holding the given role
func (r *ProfileRepository) ListProfilesByRole(ctx context.Context, role string) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("full_name ASC").
		Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles by role: %w", err)
	}
	return profiles, nil
}

// UpsertTenantProfile inserts or updates the tenant role-profile row
func (r *ProfileRepository) UpsertTenantProfile(ctx context.Context, tp *models.TenantProfile) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"occupation", "updated_at"}),
	}).Create(tp).Error
	if err != nil {
		return fmt.Errorf("failed to upsert tenant profile: %w", err)
	}
	return nil
}

// UpsertBrokerProfile inserts or updates the broker role-profile row
func (r *ProfileRepository) UpsertBrokerProfile(ctx context.Context, bp *models.BrokerProfile) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"company", "license_number", "updated_at"}),
	}).Create(bp).Error
	if err != nil {
		return fmt.Errorf("failed to upsert broker profile: %w", err)
	}
	return nil
}

// UpsertManagerProfile inserts or updates the manager role-profile row
func (r *ProfileRepository) UpsertManagerProfile(ctx context.Context, mp *models.ManagerProfile) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"company", "updated_at"}),
	}).Create(mp).Error
	if err != nil {
		return fmt.Errorf("failed to upsert manager profile: %w", err)
	}
	return nil
}
