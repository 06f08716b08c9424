package service

import (
	"VNumbers/internal/events"
	"VNumbers/internal/model"
	"VNumbers/internal/repo"
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MessageService - приём и чтение входящих сообщений.
type MessageService struct {
	store     repo.Store
	publisher events.Publisher
	logger    *zap.SugaredLogger
	now       Clock
}

func NewMessageService(store repo.Store, publisher events.Publisher, logger *zap.SugaredLogger) *MessageService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &MessageService{store: store, publisher: publisher, logger: logger, now: systemClock}
}

// WithClock подменяет часы (для тестов).
func (s *MessageService) WithClock(now Clock) *MessageService {
	s.now = now
	return s
}

// Receive принимает сообщение для виртуального номера.
func (s *MessageService) Receive(ctx context.Context, number, sender, body string) (*model.Message, error) {
	number = strings.TrimSpace(number)
	sender = strings.TrimSpace(sender)
	if number == "" || sender == "" || strings.TrimSpace(body) == "" {
		return nil, validationf("Missing required parameters")
	}

	repos := s.store.Repos()
	vn, err := repos.Virtual.GetByNumber(ctx, number)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("Virtual number not found")
	}
	if err != nil {
		return nil, err
	}
	if !vn.IsMessageActive {
		return nil, conflictf("Message reception is disabled for this number")
	}
	if !vn.IsActive {
		return nil, conflictf("Virtual number is not active")
	}

	cat, ok := SenderCategory(sender)
	if !ok {
		return nil, validationf("Unknown sender: %s", sender)
	}
	if cat != vn.Category {
		return nil, conflictf("Sender %s does not match category %s", sender, vn.Category)
	}

	received := s.now()
	msg := &model.Message{
		VirtualNumberID: vn.ID,
		Category:        vn.Category,
		Sender:          sender,
		Body:            body,
		IsRead:          false,
		ReceivedAt:      &received,
	}
	if err := repos.Messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	s.logger.Infow("Message received", "virtual_number", vn.Number, "sender", sender, "category", vn.Category)

	e := events.Event{
		Type:       events.TypeMessageReceived,
		Key:        vn.Number,
		OccurredAt: received,
		Payload: events.MessageReceived{
			MessageID: msg.ID,
			Recipient: vn.Number,
			Sender:    sender,
			Category:  string(vn.Category),
		},
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warnw("Event publish failed", "type", e.Type, "error", err)
	}
	return msg, nil
}

// ListByCategory - сообщения категории, новые сверху.
func (s *MessageService) ListByCategory(ctx context.Context, category string) ([]model.Message, error) {
	if strings.TrimSpace(category) == "" {
		return nil, validationf("category is required")
	}
	cat, ok := model.ParseCategory(category)
	if !ok {
		return nil, validationf("unknown category %q", category)
	}

	repos := s.store.Repos()
	numbers, err := repos.Virtual.List(ctx, cat)
	if err != nil {
		return nil, err
	}
	active := 0
	for _, vn := range numbers {
		if vn.IsActive {
			active++
		}
	}
	if active == 0 {
		return nil, notFoundf("No active virtual numbers found for category %s", cat)
	}

	msgs, err := repos.Messages.ListByCategory(ctx, cat)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, notFoundf("No messages found for category %s", cat)
	}
	return msgs, nil
}

// MarkRead отмечает сообщение прочитанным. alreadyRead=true, если флаг уже стоял.
func (s *MessageService) MarkRead(ctx context.Context, id int64) (bool, error) {
	var alreadyRead bool
	err := s.store.InTx(ctx, func(r repo.Repositories) error {
		m, err := r.Messages.GetByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("Message not found")
		}
		if err != nil {
			return err
		}
		if m.IsRead {
			alreadyRead = true
			return nil
		}
		return r.Messages.MarkRead(ctx, m.ID)
	})
	return alreadyRead, err
}

// Delete удаляет одно сообщение.
func (s *MessageService) Delete(ctx context.Context, id int64) error {
	err := s.store.Repos().Messages.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("Message not found")
	}
	return err
}

// UnreadCount - число непрочитанных сообщений.
func (s *MessageService) UnreadCount(ctx context.Context) (int64, error) {
	return s.store.Repos().Messages.CountUnread(ctx)
}
