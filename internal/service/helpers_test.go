package service

import (
	"VNumbers/internal/events"
	"VNumbers/internal/model"
	"VNumbers/internal/repo"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestStore - отдельная in-memory SQLite на тест
func newTestStore(t *testing.T) (repo.Store, *gorm.DB) {
	t.Helper()
	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return repo.NewStore(db), db
}

// fakeClock - ручные часы
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// recordingPublisher запоминает опубликованные события
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func seedPhysical(t *testing.T, s repo.Store, number string) *model.PhysicalNumber {
	t.Helper()
	pn := &model.PhysicalNumber{Number: number, OwnerName: "owner-" + number, IsActive: true}
	require.NoError(t, s.Repos().Physical.Create(context.Background(), pn))
	return pn
}

func seedVirtual(t *testing.T, s repo.Store, pn *model.PhysicalNumber, number string, cat model.Category) *model.VirtualNumber {
	t.Helper()
	vn := &model.VirtualNumber{
		Number:           number,
		Category:         cat,
		PhysicalNumberID: pn.ID,
		IsActive:         true,
		IsMessageActive:  true,
		IsCallActive:     true,
	}
	require.NoError(t, s.Repos().Virtual.Create(context.Background(), vn))
	return vn
}

func seedMessage(t *testing.T, s repo.Store, vn *model.VirtualNumber, sender, body string, read bool, at time.Time) *model.Message {
	t.Helper()
	m := &model.Message{
		VirtualNumberID: vn.ID,
		Category:        vn.Category,
		Sender:          sender,
		Body:            body,
		IsRead:          read,
		ReceivedAt:      &at,
		CreatedAt:       at,
	}
	require.NoError(t, s.Repos().Messages.Create(context.Background(), m))
	return m
}
