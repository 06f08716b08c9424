package service

import (
	"VNumbers/internal/model"
	"VNumbers/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxGenerateAttempts = 10

// NumberService - физические и виртуальные номера, переключатели флагов.
type NumberService struct {
	store    repo.Store
	logger   *zap.SugaredLogger
	now      Clock
	generate func(n int) string
}

func NewNumberService(store repo.Store, logger *zap.SugaredLogger) *NumberService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &NumberService{store: store, logger: logger, now: systemClock, generate: GenerateNumber}
}

// WithClock подменяет часы (для тестов).
func (s *NumberService) WithClock(now Clock) *NumberService {
	s.now = now
	return s
}

// CreatePhysicalNumber регистрирует новую физическую линию.
func (s *NumberService) CreatePhysicalNumber(ctx context.Context, number, owner string) (*model.PhysicalNumber, error) {
	number = strings.TrimSpace(number)
	owner = strings.TrimSpace(owner)
	if number == "" || owner == "" {
		return nil, validationf("number and owner_name are required")
	}
	pn := &model.PhysicalNumber{Number: number, OwnerName: owner, IsActive: true}
	if err := s.store.Repos().Physical.Create(ctx, pn); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return nil, conflictf("physical number %s already exists", number)
		}
		return nil, err
	}
	return pn, nil
}

// ListPhysicalNumbers - только активные линии.
func (s *NumberService) ListPhysicalNumbers(ctx context.Context) ([]model.PhysicalNumber, error) {
	return s.store.Repos().Physical.ListActive(ctx)
}

// CreateVirtualNumber создаёт номер в категории на первой свободной физической линии.
func (s *NumberService) CreateVirtualNumber(ctx context.Context, geoCode, category string, window time.Duration) (*model.VirtualNumber, error) {
	geoCode = strings.ToUpper(strings.TrimSpace(geoCode))
	if geoCode == "" || strings.TrimSpace(category) == "" {
		return nil, validationf("geo_code and category are required")
	}
	length, ok := GeoCodeLengths[geoCode]
	if !ok {
		return nil, validationf("unsupported geo_code %q", geoCode)
	}
	cat, ok := model.ParseCategory(category)
	if !ok {
		return nil, validationf("unknown category %q", category)
	}
	if window <= 0 {
		window = DefaultCooldownWindow
	}

	var created *model.VirtualNumber
	err := s.store.InTx(ctx, func(r repo.Repositories) error {
		in, rem, err := NewCooldownTracker(r.Cooldowns, s.now).IsInDeletionCooldown(ctx, cat, window)
		if err != nil {
			return err
		}
		if in {
			return &CooldownError{Op: OpCreation, Category: cat, Remaining: rem}
		}

		pn, err := r.Physical.FindWithCapacity(ctx, cat)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return validationf("no active physical number has capacity for a %s number", cat)
		}
		if err != nil {
			return err
		}

		number, err := s.uniqueNumber(ctx, r, length)
		if err != nil {
			return err
		}
		vn := &model.VirtualNumber{
			Number:           number,
			Category:         cat,
			PhysicalNumberID: pn.ID,
			IsActive:         true,
			IsMessageActive:  true,
			IsCallActive:     true,
		}
		if err := r.Virtual.Create(ctx, vn); err != nil {
			return err
		}
		created = vn
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infow("Virtual number created", "id", created.ID, "number", created.Number, "category", created.Category)
	return created, nil
}

func (s *NumberService) uniqueNumber(ctx context.Context, r repo.Repositories, length int) (string, error) {
	for i := 0; i < maxGenerateAttempts; i++ {
		n := s.generate(length)
		exists, err := r.Virtual.ExistsByNumber(ctx, n)
		if err != nil {
			return "", err
		}
		if !exists {
			return n, nil
		}
	}
	return "", fmt.Errorf("could not generate a free number in %d attempts", maxGenerateAttempts)
}

// ListVirtualNumbers - все номера или номера одной категории.
func (s *NumberService) ListVirtualNumbers(ctx context.Context, category string) ([]model.VirtualNumber, error) {
	var cat model.Category
	if strings.TrimSpace(category) != "" {
		c, ok := model.ParseCategory(category)
		if !ok {
			return nil, validationf("unknown category %q", category)
		}
		cat = c
	}
	return s.store.Repos().Virtual.List(ctx, cat)
}

// ListByPhysical - активные виртуальные номера активной физической линии.
func (s *NumberService) ListByPhysical(ctx context.Context, physicalID int64) ([]model.VirtualNumber, error) {
	repos := s.store.Repos()
	pn, err := repos.Physical.GetByID(ctx, physicalID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !pn.IsActive) {
		return nil, notFoundf("physical number %d not found", physicalID)
	}
	if err != nil {
		return nil, err
	}
	return repos.Virtual.ListActiveByPhysical(ctx, pn.ID)
}

// PhysicalByVirtualNumber ищет физическую линию среди активных номеров, затем в журнале удалений.
func (s *NumberService) PhysicalByVirtualNumber(ctx context.Context, number string) (*model.PhysicalNumber, error) {
	repos := s.store.Repos()
	var physicalID int64

	vn, err := repos.Virtual.GetByNumber(ctx, number)
	switch {
	case err == nil:
		physicalID = vn.PhysicalNumberID
	case errors.Is(err, gorm.ErrRecordNotFound):
		d, err := repos.Deleted.LatestByNumber(ctx, number)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("Virtual number not found in active or deleted records")
		}
		if err != nil {
			return nil, err
		}
		physicalID = d.PhysicalNumberID
	default:
		return nil, err
	}

	pn, err := repos.Physical.GetByID(ctx, physicalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("physical number %d not found", physicalID)
	}
	return pn, err
}

// ToggleActive переключает общий флаг активности.
func (s *NumberService) ToggleActive(ctx context.Context, id int64) (bool, error) {
	return s.toggle(ctx, id, repo.FlagActive)
}

// ToggleMessage переключает приём сообщений.
func (s *NumberService) ToggleMessage(ctx context.Context, id int64) (bool, error) {
	return s.toggle(ctx, id, repo.FlagMessageActive)
}

// ToggleCall переключает приём звонков.
func (s *NumberService) ToggleCall(ctx context.Context, id int64) (bool, error) {
	return s.toggle(ctx, id, repo.FlagCallActive)
}

func (s *NumberService) toggle(ctx context.Context, id int64, column string) (bool, error) {
	var next bool
	err := s.store.InTx(ctx, func(r repo.Repositories) error {
		vn, err := r.Virtual.GetByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("Virtual number not found")
		}
		if err != nil {
			return err
		}
		switch column {
		case repo.FlagActive:
			next = !vn.IsActive
		case repo.FlagMessageActive:
			next = !vn.IsMessageActive
		case repo.FlagCallActive:
			next = !vn.IsCallActive
		default:
			return fmt.Errorf("unknown flag %q", column)
		}
		return r.Virtual.UpdateFlag(ctx, vn.ID, column, next)
	})
	if err != nil {
		return false, err
	}
	s.logger.Infow("Virtual number flag toggled", "id", id, "flag", column, "value", next)
	return next, nil
}

// isUniqueViolation - драйверы без TranslateError возвращают текст ошибки БД.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
