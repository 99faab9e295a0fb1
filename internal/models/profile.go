package models

import (
	"time"

	"github.com/google/uuid"
)

// Role constants for profiles. A profile holds exactly one role,
// chosen at sign-up and never changed afterwards.
const (
	RoleTenant  = "tenant"
	RoleBroker  = "broker"
	RoleManager = "manager"
)

// ValidRole reports whether role is one of the three supported roles
func ValidRole(role string) bool {
	switch role {
	case RoleTenant, RoleBroker, RoleManager:
		return true
	}
	return false
}

// Profile is the role-tagged record for a user, keyed 1:1 by user ID.
// The ID is the owning user's ID, not an independent key, so upserts
// conflict on it and stay idempotent per user.
type Profile struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Role      string    `json:"role" gorm:"not null;index" validate:"required,oneof=tenant broker manager"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}

// TenantProfile holds tenant-specific optional attributes
type TenantProfile struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Occupation string    `json:"occupation"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName overrides the table name for TenantProfile
func (TenantProfile) TableName() string {
	return "tenant_profiles"
}

// BrokerProfile holds broker-specific optional attributes
type BrokerProfile struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Company       string    `json:"company"`
	LicenseNumber string    `json:"license_number"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName overrides the table name for BrokerProfile
func (BrokerProfile) TableName() string {
	return "broker_profiles"
}

// ManagerProfile holds property-manager-specific optional attributes
type ManagerProfile struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Company   string    `json:"company"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name for ManagerProfile
func (ManagerProfile) TableName() string {
	return "manager_profiles"
}
