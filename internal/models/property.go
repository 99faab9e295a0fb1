package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property status values
const (
	PropertyStatusAvailable = "available"
	PropertyStatusOccupied  = "occupied"
)

// Viewing status values
const (
	ViewingStatusRequested = "requested"
	ViewingStatusConfirmed = "confirmed"
	ViewingStatusDeclined  = "declined"
)

// Property is a rental unit listed by a broker or managed by a
// property manager
type Property struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	OwnerID      uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	Name         string    `json:"name" gorm:"not null" validate:"required"`
	Address      string    `json:"address" gorm:"not null"`
	Location     string    `json:"location" gorm:"index"`
	PropertyType string    `json:"property_type" gorm:"index"`
	Rent         float64   `json:"rent"`
	Rooms        int       `json:"rooms"`
	Size         string    `json:"size"`
	Status       string    `json:"status" gorm:"default:'available';index" validate:"oneof=available occupied"`
	Images       JSONB     `json:"images" gorm:"type:jsonb;default:'[]'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides the table name for Property
func (Property) TableName() string {
	return "properties"
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = PropertyStatusAvailable
	}
	return nil
}

// TenantAssignment links a tenant to a property under a manager.
// Removing an assignment is the only destructive operation in the
// system.
type TenantAssignment struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	PropertyID uuid.UUID `json:"property_id" gorm:"type:uuid;not null;uniqueIndex:idx_property_tenant"`
	TenantID   uuid.UUID `json:"tenant_id" gorm:"type:uuid;not null;uniqueIndex:idx_property_tenant"`
	AssignedBy uuid.UUID `json:"assigned_by" gorm:"type:uuid;not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides the table name for TenantAssignment
func (TenantAssignment) TableName() string {
	return "tenant_assignments"
}

func (a *TenantAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Viewing is a scheduled property viewing requested by a tenant
type Viewing struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	PropertyID uuid.UUID `json:"property_id" gorm:"type:uuid;not null;index"`
	TenantID   uuid.UUID `json:"tenant_id" gorm:"type:uuid;not null;index"`
	ScheduledAt time.Time `json:"scheduled_at" gorm:"not null"`
	Status     string    `json:"status" gorm:"default:'requested'" validate:"oneof=requested confirmed declined"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName overrides the table name for Viewing
func (Viewing) TableName() string {
	return "viewings"
}

func (v *Viewing) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.Status == "" {
		v.Status = ViewingStatusRequested
	}
	return nil
}
