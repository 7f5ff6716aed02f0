package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/YelzhanWeb/recipes/internal/adapter/logger"
	"github.com/YelzhanWeb/recipes/internal/domain"
)

type NotificationHandler struct {
	logger logger.Logger
	out    io.Writer
}

func NewNotificationHandler(logger logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		logger: logger,
		out:    os.Stdout,
	}
}

func (h *NotificationHandler) HandleNotification(ctx context.Context, body []byte) error {
	var n domain.Notification
	if err := json.Unmarshal(body, &n); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse notification", "", nil, err)
		return err
	}

	h.logger.Debug("notification_received", fmt.Sprintf("Received notification %q", n.Title), "",
		map[string]interface{}{
			"title":   n.Title,
			"variant": n.Variant,
		})

	marker := "*"
	if n.Variant == domain.VariantDestructive {
		marker = "!"
	}
	fmt.Fprintf(h.out, "[%s] %s %s: %s\n", n.CreatedAt.Format("15:04:05"), marker, n.Title, n.Description)

	return nil
}
