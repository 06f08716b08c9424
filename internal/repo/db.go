package repo

import (
	"VNumbers/internal/model"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// DefaultSQLiteDSN используется, если строка подключения не задана.
const DefaultSQLiteDSN = "file:vnumbers.db"

// Models - все модели, которые мигрируются при старте.
var Models = []any{
	&model.PhysicalNumber{},
	&model.VirtualNumber{},
	&model.Message{},
	&model.DeletedVirtualNumber{},
	&model.RecoverableVirtualNumber{},
	&model.RecoverableMessage{},
	&model.CategoryCooldown{},
}

// InitDB открывает БД и выполняет автомиграцию.
// Postgres выбирается по DSN, иначе используется SQLite (modernc.org/sqlite).
func InitDB(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	var (
		db  *gorm.DB
		err error
	)
	if isPostgresDSN(dsn) {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
	} else {
		if dsn == "" {
			dsn = DefaultSQLiteDSN
		}
		db, err = gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, cfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// SQLite не любит параллельных писателей - одно соединение на всё.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}
