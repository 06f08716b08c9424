package repo

import (
	"context"

	"gorm.io/gorm"
)

// Repositories - набор репозиториев, привязанных к одному соединению или транзакции.
type Repositories struct {
	Physical  PhysicalNumberRepository
	Virtual   VirtualNumberRepository
	Messages  MessageRepository
	Deleted   DeletedNumberRepository
	Recovery  RecoveryRepository
	Cooldowns CooldownRepository
}

// Store даёт доступ к репозиториям и транзакциям поверх них.
type Store interface {
	// Repos возвращает репозитории вне транзакции.
	Repos() Repositories
	// InTx выполняет fn в одной транзакции. Ошибка из fn откатывает всё.
	InTx(ctx context.Context, fn func(r Repositories) error) error
}

type gormStore struct {
	db    *gorm.DB
	repos Repositories
}

// NewStore создаёт Store поверх gorm.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db, repos: NewRepositories(db)}
}

// NewRepositories собирает все репозитории над одним *gorm.DB.
func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Physical:  NewPhysicalNumberRepository(db),
		Virtual:   NewVirtualNumberRepository(db),
		Messages:  NewMessageRepository(db),
		Deleted:   NewDeletedNumberRepository(db),
		Recovery:  NewRecoveryRepository(db),
		Cooldowns: NewCooldownRepository(db),
	}
}

func (s *gormStore) Repos() Repositories { return s.repos }

func (s *gormStore) InTx(ctx context.Context, fn func(r Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
