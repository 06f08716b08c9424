package service

import (
	"VNumbers/internal/lock"
	"VNumbers/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNumberService_CreatePhysicalNumber(t *testing.T) {
	store, _ := newTestStore(t)
	svc := NewNumberService(store, zap.NewNop().Sugar())
	ctx := context.Background()

	pn, err := svc.CreatePhysicalNumber(ctx, " 5551000 ", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "5551000", pn.Number)
	assert.True(t, pn.IsActive)

	_, err = svc.CreatePhysicalNumber(ctx, "5551000", "Bob")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.CreatePhysicalNumber(ctx, "", "Bob")
	assert.ErrorIs(t, err, ErrValidation)

	list, err := svc.ListPhysicalNumbers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestNumberService_CreateVirtualNumber(t *testing.T) {
	store, _ := newTestStore(t)
	svc := NewNumberService(store, nil)
	ctx := context.Background()
	seedPhysical(t, store, "5552000")

	vn, err := svc.CreateVirtualNumber(ctx, "in", "Personal", 0)
	require.NoError(t, err)
	assert.Len(t, vn.Number, 10)
	assert.Contains(t, "6789", vn.Number[:1])
	assert.Equal(t, model.CategoryPersonal, vn.Category)
	assert.True(t, vn.IsActive && vn.IsMessageActive && vn.IsCallActive)

	// категория на единственной линии уже занята
	_, err = svc.CreateVirtualNumber(ctx, "US", "personal", 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateVirtualNumber(ctx, "FR", "personal", 0)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateVirtualNumber(ctx, "IN", "gaming", 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNumberService_CreateVirtualNumberPicksFreeLine(t *testing.T) {
	store, _ := newTestStore(t)
	svc := NewNumberService(store, nil)
	ctx := context.Background()

	p1 := seedPhysical(t, store, "5553000")
	p2 := seedPhysical(t, store, "5553001")
	seedVirtual(t, store, p1, "611000001", model.CategorySocialMedia)
	seedVirtual(t, store, p1, "611000002", model.CategoryECommerce)
	seedVirtual(t, store, p1, "611000003", model.CategoryPersonal)

	vn, err := svc.CreateVirtualNumber(ctx, "UK", "e-commerce", 0)
	require.NoError(t, err)
	assert.Equal(t, p2.ID, vn.PhysicalNumberID)
	assert.Len(t, vn.Number, 9)
}

func TestNumberService_CreateVirtualNumberRetriesCollision(t *testing.T) {
	store, _ := newTestStore(t)
	svc := NewNumberService(store, nil)
	pn := seedPhysical(t, store, "5554000")
	seedVirtual(t, store, pn, "611111111", model.CategoryPersonal)

	seq := []string{"611111111", "722222222"}
	svc.generate = func(int) string {
		n := seq[0]
		seq = seq[1:]
		return n
	}

	vn, err := svc.CreateVirtualNumber(context.Background(), "UK", "social-media", 0)
	require.NoError(t, err)
	assert.Equal(t, "722222222", vn.Number)
}

func TestNumberService_CreationCooldown(t *testing.T) {
	store, _ := newTestStore(t)
	clk := newFakeClock()
	numbers := NewNumberService(store, nil).WithClock(clk.Now)
	lifecycle := NewLifecycleService(store, lock.NewLocalLocker(), nil, nil).WithClock(clk.Now)
	ctx := context.Background()

	pn := seedPhysical(t, store, "5555000")
	vn := seedVirtual(t, store, pn, "633333333", model.CategoryECommerce)
	_, err := lifecycle.Delete(ctx, vn.ID)
	require.NoError(t, err)

	clk.Advance(90 * time.Second)
	_, err = numbers.CreateVirtualNumber(ctx, "IN", "e-commerce", 5*time.Minute)
	var ce *CooldownError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, OpCreation, ce.Op)
	assert.Equal(t, "Cannot create a e-commerce number yet. Please wait 3 min and 30 sec.", ce.Error())

	// другие категории не затронуты
	_, err = numbers.CreateVirtualNumber(ctx, "IN", "personal", 5*time.Minute)
	require.NoError(t, err)

	clk.Advance(4 * time.Minute)
	_, err = numbers.CreateVirtualNumber(ctx, "IN", "e-commerce", 5*time.Minute)
	require.NoError(t, err)
}

func TestNumberService_Lookups(t *testing.T) {
	store, _ := newTestStore(t)
	svc := NewNumberService(store, nil)
	lifecycle := NewLifecycleService(store, nil, nil, nil)
	ctx := context.Background()

	p1 := seedPhysical(t, store, "5556000")
	a := seedVirtual(t, store, p1, "644444441", model.CategoryPersonal)
	seedVirtual(t, store, p1, "644444442", model.CategoryECommerce)

	all, err := svc.ListVirtualNumbers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	personal, err := svc.ListVirtualNumbers(ctx, "personal")
	require.NoError(t, err)
	require.Len(t, personal, 1)
	assert.Equal(t, "644444441", personal[0].Number)
	_, err = svc.ListVirtualNumbers(ctx, "nope")
	assert.ErrorIs(t, err, ErrValidation)

	byPhys, err := svc.ListByPhysical(ctx, p1.ID)
	require.NoError(t, err)
	assert.Len(t, byPhys, 2)
	_, err = svc.ListByPhysical(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.PhysicalByVirtualNumber(ctx, "644444441")
	require.NoError(t, err)
	assert.Equal(t, p1.ID, got.ID)

	// удалённый номер находится по журналу
	_, err = lifecycle.Delete(ctx, a.ID)
	require.NoError(t, err)
	got, err = svc.PhysicalByVirtualNumber(ctx, "644444441")
	require.NoError(t, err)
	assert.Equal(t, "5556000", got.Number)

	_, err = svc.PhysicalByVirtualNumber(ctx, "000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNumberService_Toggles(t *testing.T) {
	store, _ := newTestStore(t)
	svc := NewNumberService(store, nil)
	ctx := context.Background()
	pn := seedPhysical(t, store, "5557000")
	vn := seedVirtual(t, store, pn, "655555555", model.CategoryPersonal)

	state, err := svc.ToggleActive(ctx, vn.ID)
	require.NoError(t, err)
	assert.False(t, state)
	state, err = svc.ToggleActive(ctx, vn.ID)
	require.NoError(t, err)
	assert.True(t, state)

	state, err = svc.ToggleMessage(ctx, vn.ID)
	require.NoError(t, err)
	assert.False(t, state)
	state, err = svc.ToggleCall(ctx, vn.ID)
	require.NoError(t, err)
	assert.False(t, state)

	got, err := store.Repos().Virtual.GetByID(ctx, vn.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.False(t, got.IsMessageActive)
	assert.False(t, got.IsCallActive)

	_, err = svc.ToggleActive(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.ToggleMessage(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "not found: Virtual number not found")
	_, err = svc.ToggleCall(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	// неизвестный id не трогает существующие номера
	after, err := store.Repos().Virtual.GetByID(ctx, vn.ID)
	require.NoError(t, err)
	assert.Equal(t, got.IsActive, after.IsActive)
	assert.Equal(t, got.IsMessageActive, after.IsMessageActive)
	assert.Equal(t, got.IsCallActive, after.IsCallActive)
}

func TestGenerateNumber(t *testing.T) {
	for code, n := range GeoCodeLengths {
		num := GenerateNumber(n)
		assert.Len(t, num, n, code)
		assert.Contains(t, "6789", num[:1])
		for _, r := range num {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
	assert.Empty(t, GenerateNumber(0))
}

func TestSenderCategory(t *testing.T) {
	c, ok := SenderCategory("Amazon")
	assert.True(t, ok)
	assert.Equal(t, model.CategoryECommerce, c)

	c, ok = SenderCategory(" LinkedIn ")
	assert.True(t, ok)
	assert.Equal(t, model.CategorySocialMedia, c)

	c, ok = SenderCategory("12")
	assert.True(t, ok)
	assert.Equal(t, model.CategoryPersonal, c)

	_, ok = SenderCategory("unknown-bank")
	assert.False(t, ok)
}
