package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"rento-service/internal/models"
)

// Default bounds matching the source app's pages
const (
	defaultRecentLimit  = 10
	defaultNoticeLimit  = 25
	maxNoticeFetchLimit = 100
)

// NoticeStore is the persistence surface NoticeService needs
type NoticeStore interface {
	CreateMessage(ctx context.Context, message *models.ManagerTenantMessage) error
	ListRecent(ctx context.Context, limit int) ([]models.ManagerTenantMessage, error)
	ListVisibleForTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]models.ManagerTenantMessage, error)
}

// NoticeCache caches a tenant's visible-notice list. Optional: a nil
// cache falls through to the store on every read.
type NoticeCache interface {
	GetNotices(ctx context.Context, tenantID uuid.UUID) ([]models.Notice, bool)
	SetNotices(ctx context.Context, tenantID uuid.UUID, notices []models.Notice) error
	InvalidateNotices(ctx context.Context) error
}

// PostNoticeInput carries a manager's announcement or direct notice
type PostNoticeInput struct {
	SenderID uuid.UUID  `json:"sender_id"`
	TenantID *uuid.UUID `json:"tenant_id"` // nil = broadcast to all tenants
	Title    string     `json:"title"`
	Content  string     `json:"content"`
}

// NoticeService owns manager-to-tenant notices: broadcasts and direct
// messages
type NoticeService struct {
	store  NoticeStore
	cache  NoticeCache
	events EventPublisher
	logger *logrus.Logger
}

// NewNoticeService creates a new notice service. cache and events may
// be nil.
func NewNoticeService(store NoticeStore, cache NoticeCache, events EventPublisher, logger *logrus.Logger) *NoticeService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &NoticeService{store: store, cache: cache, events: events, logger: logger}
}

// PostMessage stores a manager-to-tenant message. A nil tenant target
// means broadcast. Untitled messages get the source app's defaults:
// "Direct Message" when targeted, "Announcement" when broadcast.
func (s *NoticeService) PostMessage(ctx context.Context, input PostNoticeInput) (*models.ManagerTenantMessage, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, NewValidationError("content", "message content is required")
	}
	if input.SenderID == uuid.Nil {
		return nil, NewValidationError("sender_id", "sender is required")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		if input.TenantID != nil {
			title = "Direct Message"
		} else {
			title = "Announcement"
		}
	}

	message := &models.ManagerTenantMessage{
		SenderID: input.SenderID,
		TenantID: input.TenantID,
		Title:    &title,
		Content:  content,
	}
	if err := s.store.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateNotices(ctx); err != nil {
			s.logger.WithError(err).Warn("failed to invalidate notice cache")
		}
	}
	if s.events != nil {
		broadcast := input.TenantID == nil
		if err := s.events.Publish("notice.published", map[string]interface{}{
			"message_id": message.ID.String(),
			"broadcast":  broadcast,
		}); err != nil {
			s.logger.WithError(err).Warn("failed to publish event")
		}
	}
	return message, nil
}

// ListRecent returns the newest messages, bounded by limit (defaults
// to the manager page's 10)
func (s *NoticeService) ListRecent(ctx context.Context, limit int) ([]models.ManagerTenantMessage, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxNoticeFetchLimit {
		limit = maxNoticeFetchLimit
	}
	return s.store.ListRecent(ctx, limit)
}

// VisibleNotices returns the display-shaped notices a tenant may read:
// broadcasts plus messages targeted at them, newest first
func (s *NoticeService) VisibleNotices(ctx context.Context, tenantID uuid.UUID) ([]models.Notice, error) {
	if s.cache != nil {
		if notices, ok := s.cache.GetNotices(ctx, tenantID); ok {
			return notices, nil
		}
	}

	messages, err := s.store.ListVisibleForTenant(ctx, tenantID, defaultNoticeLimit)
	if err != nil {
		return nil, err
	}

	notices := make([]models.Notice, 0, len(messages))
	for i := range messages {
		notices = append(notices, messages[i].ToNotice())
	}

	if s.cache != nil {
		if err := s.cache.SetNotices(ctx, tenantID, notices); err != nil {
			s.logger.WithError(err).Warn("failed to cache notices")
		}
	}
	return notices, nil
}
