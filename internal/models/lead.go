package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead status values. Transitions are linear:
// new -> contacted -> converted | closed, where closed is also
// reachable directly from new (abandoned before contact, as the
// stale-lead sweep does).
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusConverted = "converted"
	LeadStatusClosed    = "closed"
)

// ValidLeadTransition reports whether a status change follows the
// lead lifecycle. Converted and closed are terminal.
func ValidLeadTransition(from, to string) bool {
	switch from {
	case LeadStatusNew:
		return to == LeadStatusContacted || to == LeadStatusClosed
	case LeadStatusContacted:
		return to == LeadStatusConverted || to == LeadStatusClosed
	}
	return false
}

// Lead is a tenant's structured housing request, visible to brokers
// and managers
type Lead struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	TenantID     *uuid.UUID `json:"tenant_id" gorm:"type:uuid;index"`
	TenantName   string     `json:"tenant_name" gorm:"not null" validate:"required"`
	TenantEmail  string     `json:"tenant_email" gorm:"not null" validate:"required,email"`
	TenantPhone  *string    `json:"tenant_phone"`
	PropertyType string     `json:"property_type" gorm:"not null"`
	PriceRange   string     `json:"price_range" gorm:"not null"`
	Size         string     `json:"size"`
	Rooms        string     `json:"rooms"`
	Location     string     `json:"location" gorm:"not null"`
	Status       string     `json:"status" gorm:"default:'new';index" validate:"oneof=new contacted converted closed"`
	CreatedAt    time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Messages []LeadMessage `json:"messages,omitempty" gorm:"foreignKey:LeadID"`
}

// TableName overrides the table name for Lead
func (Lead) TableName() string {
	return "leads"
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Status == "" {
		l.Status = LeadStatusNew
	}
	return nil
}

// LeadMessage is one turn in the append-only conversation thread
// attached to a lead. Sender is nullable for anonymous and legacy rows.
// There is no edit or delete.
type LeadMessage struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	LeadID    uuid.UUID  `json:"lead_id" gorm:"type:uuid;not null;index"`
	SenderID  *uuid.UUID `json:"sender_id" gorm:"type:uuid"`
	Content   string     `json:"content" gorm:"not null" validate:"required"`
	CreatedAt time.Time  `json:"created_at" gorm:"index"`
}

// TableName overrides the table name for LeadMessage
func (LeadMessage) TableName() string {
	return "lead_messages"
}

func (m *LeadMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
