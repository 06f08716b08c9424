package service

import (
	"VNumbers/internal/events"
	"VNumbers/internal/lock"
	"VNumbers/internal/model"
	"VNumbers/internal/repo"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LifecycleService удаляет виртуальные номера и восстанавливает последний удалённый.
type LifecycleService struct {
	store     repo.Store
	locker    lock.Locker
	publisher events.Publisher
	logger    *zap.SugaredLogger
	now       Clock
}

// NewLifecycleService собирает оркестратор. nil-зависимости заменяются безопасными дефолтами.
func NewLifecycleService(store repo.Store, locker lock.Locker, publisher events.Publisher, logger *zap.SugaredLogger) *LifecycleService {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &LifecycleService{store: store, locker: locker, publisher: publisher, logger: logger, now: systemClock}
}

// WithClock подменяет часы (для тестов).
func (s *LifecycleService) WithClock(now Clock) *LifecycleService {
	s.now = now
	return s
}

// DeleteResult - итог удаления.
type DeleteResult struct {
	Message          string
	DeletionID       string
	Number           string
	Category         model.Category
	MessagesBuffered int
}

// RestoreResult - итог восстановления.
type RestoreResult struct {
	Message          string
	VirtualNumber    *model.VirtualNumber
	MessagesRestored int
}

// Delete удаляет номер: аудит, копия в буфер восстановления, таймер категории,
// удаление сообщений и самого номера. Всё в одной транзакции.
func (s *LifecycleService) Delete(ctx context.Context, id int64) (*DeleteResult, error) {
	unlock, err := s.locker.Lock(ctx)
	if err != nil {
		return nil, fmt.Errorf("lifecycle lock: %w", err)
	}
	defer unlock()

	res := &DeleteResult{DeletionID: uuid.NewString()}
	var physicalID int64

	err = s.store.InTx(ctx, func(r repo.Repositories) error {
		vn, err := r.Virtual.GetByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("Virtual number not found")
		}
		if err != nil {
			return err
		}
		msgs, err := r.Messages.ListByVirtualNumber(ctx, vn.ID)
		if err != nil {
			return err
		}

		now := s.now()
		if err := r.Deleted.Create(ctx, &model.DeletedVirtualNumber{
			DeletionID:       res.DeletionID,
			Number:           vn.Number,
			Category:         vn.Category,
			PhysicalNumberID: vn.PhysicalNumberID,
			DeletedAt:        now,
		}); err != nil {
			return fmt.Errorf("write audit: %w", err)
		}

		if _, err := r.Recovery.Store(ctx, res.DeletionID, vn, msgs, now); err != nil {
			return fmt.Errorf("fill recovery buffer: %w", err)
		}

		if err := NewCooldownTracker(r.Cooldowns, s.now).MarkDeletion(ctx, vn.Category); err != nil {
			return fmt.Errorf("mark deletion: %w", err)
		}

		// сначала сообщения, потом номер
		if _, err := r.Messages.DeleteByVirtualNumber(ctx, vn.ID); err != nil {
			return fmt.Errorf("delete messages: %w", err)
		}
		if err := r.Virtual.Delete(ctx, vn.ID); err != nil {
			return fmt.Errorf("delete virtual number: %w", err)
		}

		res.Number = vn.Number
		res.Category = vn.Category
		res.MessagesBuffered = len(msgs)
		physicalID = vn.PhysicalNumberID
		return nil
	})
	if err != nil {
		if !isDomainError(err) {
			s.logger.Errorw("Delete virtual number failed", "id", id, "error", err)
		}
		return nil, err
	}

	res.Message = "Virtual number deleted successfully"
	s.logger.Infow("Virtual number deleted",
		"id", id,
		"number", res.Number,
		"category", res.Category,
		"deletion_id", res.DeletionID,
		"messages", res.MessagesBuffered,
	)
	s.publish(ctx, events.Event{
		Type: events.TypeVirtualNumberDeleted,
		Key:  res.Number,
		Payload: events.NumberDeleted{
			DeletionID:       res.DeletionID,
			Number:           res.Number,
			Category:         res.Category.String(),
			PhysicalNumberID: physicalID,
			MessagesBuffered: res.MessagesBuffered,
		},
	})
	return res, nil
}

// Restore возвращает последний удалённый номер вместе с сообщениями.
// Таймер восстановления в любой категории блокирует восстановление любого номера.
func (s *LifecycleService) Restore(ctx context.Context, window time.Duration) (*RestoreResult, error) {
	if window <= 0 {
		window = DefaultCooldownWindow
	}
	unlock, err := s.locker.Lock(ctx)
	if err != nil {
		return nil, fmt.Errorf("lifecycle lock: %w", err)
	}
	defer unlock()

	res := &RestoreResult{}
	err = s.store.InTx(ctx, func(r repo.Repositories) error {
		tracker := NewCooldownTracker(r.Cooldowns, s.now)
		for _, c := range model.Categories {
			in, rem, err := tracker.IsInRecoveryCooldown(ctx, c, window)
			if err != nil {
				return err
			}
			if in {
				return &CooldownError{Op: OpRecovery, Category: c, Remaining: rem}
			}
		}

		shadow, err := r.Recovery.Peek(ctx)
		if err != nil {
			return err
		}
		if shadow == nil {
			return notFoundf("No recently deleted virtual number found to restore")
		}

		exists, err := r.Virtual.ExistsByNumber(ctx, shadow.Number)
		if err != nil {
			return err
		}
		if exists {
			return conflictf("Cannot restore - virtual number already exists")
		}
		if err := checkPhysicalCanHost(ctx, r, shadow.PhysicalNumberID, shadow.Category); err != nil {
			return err
		}

		shadow, err = r.Recovery.ConsumeAndClear(ctx)
		if err != nil {
			return fmt.Errorf("consume recovery buffer: %w", err)
		}

		vn := &model.VirtualNumber{
			Number:           shadow.Number,
			Category:         shadow.Category,
			PhysicalNumberID: shadow.PhysicalNumberID,
			IsActive:         shadow.IsActive,
			IsMessageActive:  shadow.IsMessageActive,
			IsCallActive:     shadow.IsCallActive,
		}
		if err := r.Virtual.Create(ctx, vn); err != nil {
			return fmt.Errorf("recreate virtual number: %w", err)
		}

		for _, rm := range shadow.Messages {
			m := &model.Message{
				VirtualNumberID: vn.ID,
				Category:        rm.Category,
				Sender:          rm.Sender,
				Body:            rm.Body,
				IsRead:          rm.IsRead,
				ReceivedAt:      rm.ReceivedAt,
				CreatedAt:       rm.CreatedAt,
			}
			if err := r.Messages.Create(ctx, m); err != nil {
				return fmt.Errorf("recreate message: %w", err)
			}
		}

		if err := tracker.MarkRecovery(ctx, shadow.Category); err != nil {
			return fmt.Errorf("mark recovery: %w", err)
		}

		res.VirtualNumber = vn
		res.MessagesRestored = len(shadow.Messages)
		return nil
	})
	if err != nil {
		if !isDomainError(err) {
			s.logger.Errorw("Restore virtual number failed", "error", err)
		}
		return nil, err
	}

	res.Message = "Virtual number restored successfully"
	s.logger.Infow("Virtual number restored",
		"id", res.VirtualNumber.ID,
		"number", res.VirtualNumber.Number,
		"category", res.VirtualNumber.Category,
		"messages", res.MessagesRestored,
	)
	s.publish(ctx, events.Event{
		Type: events.TypeVirtualNumberRestored,
		Key:  res.VirtualNumber.Number,
		Payload: events.NumberRestored{
			VirtualNumberID:  res.VirtualNumber.ID,
			Number:           res.VirtualNumber.Number,
			Category:         res.VirtualNumber.Category.String(),
			MessagesRestored: res.MessagesRestored,
		},
	})
	return res, nil
}

// checkPhysicalCanHost - на физическом номере есть место и категория свободна.
func checkPhysicalCanHost(ctx context.Context, r repo.Repositories, physicalID int64, category model.Category) error {
	taken, err := r.Virtual.ExistsForPhysicalCategory(ctx, physicalID, category)
	if err != nil {
		return err
	}
	if taken {
		return conflictf("Physical number already hosts a %s number", category)
	}
	n, err := r.Virtual.CountByPhysical(ctx, physicalID)
	if err != nil {
		return err
	}
	if n >= model.MaxVirtualPerPhysical {
		return conflictf("Physical number has no capacity for another virtual number")
	}
	return nil
}

// publish отправляет событие после коммита; ошибка шины не ломает операцию.
func (s *LifecycleService) publish(ctx context.Context, e events.Event) {
	e.OccurredAt = s.now()
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warnw("Event not published", "type", e.Type, "error", err)
	}
}

func isDomainError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrValidation)
}
