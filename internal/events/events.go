// Package events публикует события жизненного цикла номеров и входящих сообщений.
package events

import (
	"context"
	"time"
)

// Типы событий.
const (
	TypeVirtualNumberDeleted  = "virtual_number.deleted"
	TypeVirtualNumberRestored = "virtual_number.restored"
	TypeMessageReceived       = "message.received"
)

// Event - конверт события. Key определяет партицию (номер телефона).
type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// NumberDeleted - полезная нагрузка virtual_number.deleted.
type NumberDeleted struct {
	DeletionID       string `json:"deletion_id"`
	Number           string `json:"number"`
	Category         string `json:"category"`
	PhysicalNumberID int64  `json:"physical_number_id"`
	MessagesBuffered int    `json:"messages_buffered"`
}

// NumberRestored - полезная нагрузка virtual_number.restored.
type NumberRestored struct {
	VirtualNumberID  int64  `json:"virtual_number_id"`
	Number           string `json:"number"`
	Category         string `json:"category"`
	MessagesRestored int    `json:"messages_restored"`
}

// MessageReceived - полезная нагрузка message.received.
type MessageReceived struct {
	MessageID int64  `json:"message_id"`
	Recipient string `json:"recipient"`
	Sender    string `json:"sender"`
	Category  string `json:"category"`
}

// Publisher отправляет события во внешнюю шину.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher ничего не отправляет; используется, когда шина не настроена.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
