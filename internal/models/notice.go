package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ManagerTenantMessage is a manager-authored notice. A nil TenantID
// means broadcast: every tenant may read it. A non-nil TenantID
// restricts visibility to that one tenant.
type ManagerTenantMessage struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	SenderID  uuid.UUID  `json:"sender_id" gorm:"type:uuid;not null;index"`
	TenantID  *uuid.UUID `json:"tenant_id" gorm:"type:uuid;index"`
	Title     *string    `json:"title"`
	Content   string     `json:"content" gorm:"not null" validate:"required"`
	CreatedAt time.Time  `json:"created_at" gorm:"index"`
}

// TableName overrides the table name for ManagerTenantMessage
func (ManagerTenantMessage) TableName() string {
	return "manager_tenant_messages"
}

func (m *ManagerTenantMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Notice is the simplified display shape tenants see on the notices
// page: title, message, date
type Notice struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Date    string    `json:"date"`
}

// ToNotice maps a message row to its display shape. Untitled rows
// render as "Notice", matching the source app.
func (m *ManagerTenantMessage) ToNotice() Notice {
	title := "Notice"
	if m.Title != nil && *m.Title != "" {
		title = *m.Title
	}
	return Notice{
		ID:      m.ID,
		Title:   title,
		Message: m.Content,
		Date:    m.CreatedAt.UTC().Format("2006-01-02"),
	}
}
