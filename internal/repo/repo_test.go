package repo

import (
	"VNumbers/internal/model"
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newTestDB поднимает отдельную in-memory SQLite (modernc.org/sqlite) на каждый тест
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("failed to init sqlite (modernc): %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// хелперы для наполнения БД
func mkPhysical(t *testing.T, db *gorm.DB, number string) *model.PhysicalNumber {
	t.Helper()
	pn := &model.PhysicalNumber{Number: number, OwnerName: "owner-" + number, IsActive: true}
	if err := NewPhysicalNumberRepository(db).Create(context.Background(), pn); err != nil {
		t.Fatalf("create physical: %v", err)
	}
	return pn
}

func mkVirtual(t *testing.T, db *gorm.DB, pn *model.PhysicalNumber, number string, cat model.Category) *model.VirtualNumber {
	t.Helper()
	vn := &model.VirtualNumber{
		Number:           number,
		Category:         cat,
		PhysicalNumberID: pn.ID,
		IsActive:         true,
		IsMessageActive:  true,
		IsCallActive:     true,
	}
	if err := NewVirtualNumberRepository(db).Create(context.Background(), vn); err != nil {
		t.Fatalf("create virtual: %v", err)
	}
	return vn
}
