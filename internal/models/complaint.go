package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint status values. Linear: open -> in_progress -> resolved
const (
	ComplaintStatusOpen       = "open"
	ComplaintStatusInProgress = "in_progress"
	ComplaintStatusResolved   = "resolved"
)

// ValidComplaintTransition reports whether a complaint status change
// follows the linear lifecycle
func ValidComplaintTransition(from, to string) bool {
	switch from {
	case ComplaintStatusOpen:
		return to == ComplaintStatusInProgress || to == ComplaintStatusResolved
	case ComplaintStatusInProgress:
		return to == ComplaintStatusResolved
	}
	return false
}

// Complaint is filed by a tenant against their property and advanced
// by the manager
type Complaint struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	TenantID    uuid.UUID  `json:"tenant_id" gorm:"type:uuid;not null;index"`
	PropertyID  *uuid.UUID `json:"property_id" gorm:"type:uuid;index"`
	Subject     string     `json:"subject" gorm:"not null" validate:"required"`
	Description string     `json:"description" gorm:"not null" validate:"required"`
	Status      string     `json:"status" gorm:"default:'open';index" validate:"oneof=open in_progress resolved"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName overrides the table name for Complaint
func (Complaint) TableName() string {
	return "complaints"
}

func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = ComplaintStatusOpen
	}
	return nil
}
