package interfaces

import (
	"context"

	"github.com/YelzhanWeb/recipes/internal/domain"
)

// Notifier surfaces console toasts (Adapter/RabbitMQ)
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

type NotificationConsumer interface {
	ConsumeNotifications(ctx context.Context, handler NotificationHandler) error
}

type NotificationHandler func(ctx context.Context, body []byte) error
