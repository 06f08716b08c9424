package service

import (
	"VNumbers/internal/model"
	"VNumbers/internal/repo"
	"context"
	"time"
)

// DefaultCooldownWindow - окно по умолчанию для обоих таймеров.
const DefaultCooldownWindow = 5 * time.Minute

// Clock возвращает текущее время. Подменяется в тестах.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// CooldownTracker следит за таймерами удаления и восстановления по категориям.
type CooldownTracker struct {
	repo repo.CooldownRepository
	now  Clock
}

// NewCooldownTracker создаёт трекер. nil clock - системное время (UTC).
func NewCooldownTracker(r repo.CooldownRepository, now Clock) *CooldownTracker {
	if now == nil {
		now = systemClock
	}
	return &CooldownTracker{repo: r, now: now}
}

// CategoryStatus - состояние таймеров категории для GET /cooldowns.
type CategoryStatus struct {
	Category          model.Category
	InCooldown        bool
	Remaining         time.Duration
	LastDeleted       *time.Time
	LastRecovered     *time.Time
	RecoveryCooldown  bool
	RecoveryRemaining time.Duration
}

// IsInDeletionCooldown - прошло ли меньше window с последнего удаления в категории.
func (t *CooldownTracker) IsInDeletionCooldown(ctx context.Context, category model.Category, window time.Duration) (bool, time.Duration, error) {
	row, err := t.repo.Get(ctx, category)
	if err != nil || row == nil {
		return false, 0, err
	}
	in, rem := remaining(row.LastDeletedAt, t.now(), window)
	return in, rem, nil
}

// IsInRecoveryCooldown - прошло ли меньше window с последнего восстановления в категории.
func (t *CooldownTracker) IsInRecoveryCooldown(ctx context.Context, category model.Category, window time.Duration) (bool, time.Duration, error) {
	row, err := t.repo.Get(ctx, category)
	if err != nil || row == nil {
		return false, 0, err
	}
	in, rem := remaining(row.LastRecoveredAt, t.now(), window)
	return in, rem, nil
}

// MarkDeletion запускает таймер удаления категории.
func (t *CooldownTracker) MarkDeletion(ctx context.Context, category model.Category) error {
	return t.repo.MarkDeletion(ctx, category, t.now())
}

// MarkRecovery запускает таймер восстановления категории.
func (t *CooldownTracker) MarkRecovery(ctx context.Context, category model.Category) error {
	return t.repo.MarkRecovery(ctx, category, t.now())
}

// CheckCreationAllowed проверяет, можно ли создать номер в категории.
// Смотрит только на время удаления: восстановление создание не блокирует.
func (t *CooldownTracker) CheckCreationAllowed(ctx context.Context, category model.Category, window time.Duration) (bool, string, error) {
	in, rem, err := t.IsInDeletionCooldown(ctx, category, window)
	if err != nil {
		return false, "", err
	}
	if in {
		return false, (&CooldownError{Op: OpCreation, Category: category, Remaining: rem}).Error(), nil
	}
	return true, "", nil
}

// Status собирает состояние всех категорий. Отсутствующая строка - категория свободна.
func (t *CooldownTracker) Status(ctx context.Context, window time.Duration) ([]CategoryStatus, error) {
	return t.StatusWindows(ctx, window, window)
}

// StatusWindows - как Status, но с отдельными окнами удаления и восстановления.
func (t *CooldownTracker) StatusWindows(ctx context.Context, deletion, recovery time.Duration) ([]CategoryStatus, error) {
	now := t.now()
	out := make([]CategoryStatus, 0, len(model.Categories))
	for _, c := range model.Categories {
		st := CategoryStatus{Category: c}
		row, err := t.repo.Get(ctx, c)
		if err != nil {
			return nil, err
		}
		if row != nil {
			st.LastDeleted = row.LastDeletedAt
			st.LastRecovered = row.LastRecoveredAt
			st.InCooldown, st.Remaining = remaining(row.LastDeletedAt, now, deletion)
			st.RecoveryCooldown, st.RecoveryRemaining = remaining(row.LastRecoveredAt, now, recovery)
		}
		out = append(out, st)
	}
	return out, nil
}

// remaining = window - (now - last), только если положительно.
func remaining(last *time.Time, now time.Time, window time.Duration) (bool, time.Duration) {
	if last == nil {
		return false, 0
	}
	left := window - now.Sub(*last)
	if left > 0 {
		return true, left
	}
	return false, 0
}
