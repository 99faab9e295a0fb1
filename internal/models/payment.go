package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment status values
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
)

// Payment is a rent payment record for a tenant against a property
type Payment struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	TenantID   uuid.UUID  `json:"tenant_id" gorm:"type:uuid;not null;index"`
	PropertyID uuid.UUID  `json:"property_id" gorm:"type:uuid;not null;index"`
	Amount     float64    `json:"amount" gorm:"not null" validate:"required,gt=0"`
	Period     string     `json:"period" gorm:"not null"` // e.g. "2026-08"
	Method     string     `json:"method"`
	Status     string     `json:"status" gorm:"default:'pending';index" validate:"oneof=pending paid overdue"`
	PaidAt     *time.Time `json:"paid_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName overrides the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Expense is a tenant-recorded personal expense shown on the
// expenses dashboard
type Expense struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	TenantID   uuid.UUID `json:"tenant_id" gorm:"type:uuid;not null;index"`
	Category   string    `json:"category" gorm:"not null" validate:"required"`
	Amount     float64   `json:"amount" gorm:"not null" validate:"required,gt=0"`
	Note       string    `json:"note"`
	IncurredAt time.Time `json:"incurred_at" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides the table name for Expense
func (Expense) TableName() string {
	return "expenses"
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
