package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ritim-dev/ritim/internal/config"
	"github.com/ritim-dev/ritim/internal/domain"
	"github.com/ritim-dev/ritim/internal/middleware/metrics"
)

type NotificationService interface {
	Notifier
	List(ctx context.Context, userId domain.UserId) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userId domain.UserId) (int, error)
}

type NotificationStorage interface {
	SaveNotification(ctx context.Context, n domain.Notification) error
	NotificationsFor(ctx context.Context, userId domain.UserId, limit int) ([]domain.Notification, error)
	MarkNotificationsRead(ctx context.Context, userId domain.UserId) (int, error)
}

type Notification struct {
	storage NotificationStorage
	cfg     *config.Public
}

func NewNotification(storage NotificationStorage, cfg *config.Public) *Notification {
	return &Notification{storage, cfg}
}

// Emit stores a write-once notification record. Id and timestamp are filled
// in here so callers only describe the event.
func (n *Notification) Emit(ctx context.Context, notification domain.Notification) error {
	notification.Id = uuid.NewString()
	notification.CreatedAt = time.Now().UTC()
	notification.Read = false

	if err := n.storage.SaveNotification(ctx, notification); err != nil {
		return err
	}
	metrics.NotificationsEmitted.WithLabelValues(notification.Kind).Inc()
	return nil
}

func (n *Notification) List(ctx context.Context, userId domain.UserId) ([]domain.Notification, error) {
	return n.storage.NotificationsFor(ctx, userId, n.cfg.NotificationWindow)
}

func (n *Notification) MarkRead(ctx context.Context, userId domain.UserId) (int, error) {
	return n.storage.MarkNotificationsRead(ctx, userId)
}
