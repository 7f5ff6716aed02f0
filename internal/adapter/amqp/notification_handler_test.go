package amqp

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/YelzhanWeb/recipes/internal/adapter/logger"
)

func TestHandleNotification(t *testing.T) {
	var out bytes.Buffer
	h := NewNotificationHandler(logger.Nop())
	h.out = &out

	body := []byte(`{"title":"Failed to add ingredient","description":"quantity is required","variant":"destructive","created_at":"2024-03-01T12:30:05Z"}`)
	if err := h.HandleNotification(context.Background(), body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "[12:30:05] ! Failed to add ingredient: quantity is required\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestHandleNotificationInvalidJSON(t *testing.T) {
	var out bytes.Buffer
	h := NewNotificationHandler(logger.Nop())
	h.out = &out

	if err := h.HandleNotification(context.Background(), []byte("{")); err == nil {
		t.Fatal("expected parse error")
	}
	if strings.TrimSpace(out.String()) != "" {
		t.Fatalf("expected no output, got %q", out.String())
	}
}
