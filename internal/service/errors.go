package service

import (
	"VNumbers/internal/model"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Ошибки, которые хендлеры показывают клиенту. Всё остальное - внутренняя ошибка.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation")
)

// CooldownOp - какая операция упёрлась в таймер.
type CooldownOp string

const (
	OpCreation CooldownOp = "creation"
	OpRecovery CooldownOp = "recovery"
)

// CooldownError - операция запрещена до истечения таймера категории.
type CooldownError struct {
	Op        CooldownOp
	Category  model.Category
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	m, s := splitRemaining(e.Remaining)
	if e.Op == OpCreation {
		return fmt.Sprintf("Cannot create a %s number yet. Please wait %d min and %d sec.", e.Category, m, s)
	}
	return fmt.Sprintf("Cannot recover number yet. Please wait %dm %ds.", m, s)
}

func (e *CooldownError) Unwrap() error { return ErrConflict }

// FormatRemaining печатает длительность как "4m 59s".
func FormatRemaining(d time.Duration) string {
	m, s := splitRemaining(d)
	return fmt.Sprintf("%dm %ds", m, s)
}

func splitRemaining(d time.Duration) (int, int) {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return total / 60, total % 60
}

// PublicMessage - текст ошибки для клиента, без префикса sentinel-ошибки.
func PublicMessage(err error) string {
	var ce *CooldownError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	msg := err.Error()
	for _, sentinel := range []error{ErrNotFound, ErrConflict, ErrValidation} {
		if errors.Is(err, sentinel) {
			return strings.TrimPrefix(msg, sentinel.Error()+": ")
		}
	}
	return msg
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
