package repo

import (
	"VNumbers/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMessageRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	r := NewMessageRepository(db)
	ctx := context.Background()
	pn := mkPhysical(t, db, "9000000040")
	shop := mkVirtual(t, db, pn, "7500000001", model.CategoryECommerce)
	home := mkVirtual(t, db, pn, "7500000002", model.CategoryPersonal)

	older := time.Now().UTC().Add(-time.Hour)
	newer := time.Now().UTC()
	m1 := &model.Message{VirtualNumberID: shop.ID, Category: model.CategoryECommerce, Sender: "amazon", Body: "one", ReceivedAt: &older}
	m2 := &model.Message{VirtualNumberID: shop.ID, Category: model.CategoryECommerce, Sender: "ebay", Body: "two", ReceivedAt: &newer}
	m3 := &model.Message{VirtualNumberID: home.ID, Category: model.CategoryPersonal, Sender: "family", Body: "three", ReceivedAt: &newer}
	for _, m := range []*model.Message{m1, m2, m3} {
		require.NoError(t, r.Create(ctx, m))
	}

	// свежие первыми
	list, err := r.ListByCategory(ctx, model.CategoryECommerce)
	require.NoError(t, err)
	if assert.Len(t, list, 2) {
		assert.Equal(t, "two", list[0].Body)
		assert.Equal(t, "one", list[1].Body)
	}

	unread, err := r.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread)

	require.NoError(t, r.MarkRead(ctx, m1.ID))
	unread, _ = r.CountUnread(ctx)
	assert.Equal(t, int64(2), unread)
	assert.Equal(t, gorm.ErrRecordNotFound, r.MarkRead(ctx, 12345))

	n, err := r.DeleteByVirtualNumber(ctx, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, r.Delete(ctx, m3.ID))
	assert.Equal(t, gorm.ErrRecordNotFound, r.Delete(ctx, m3.ID))
}

func TestDeletedNumberRepository_LatestByNumber(t *testing.T) {
	db := newTestDB(t)
	r := NewDeletedNumberRepository(db)
	ctx := context.Background()
	pn1 := mkPhysical(t, db, "9000000050")
	pn2 := mkPhysical(t, db, "9000000051")
	base := time.Now().UTC().Add(-time.Hour)

	require.NoError(t, r.Create(ctx, &model.DeletedVirtualNumber{DeletionID: "a", Number: "7600000001", Category: model.CategoryPersonal, PhysicalNumberID: pn1.ID, DeletedAt: base}))
	require.NoError(t, r.Create(ctx, &model.DeletedVirtualNumber{DeletionID: "b", Number: "7600000001", Category: model.CategoryPersonal, PhysicalNumberID: pn2.ID, DeletedAt: base.Add(time.Minute)}))

	got, err := r.LatestByNumber(ctx, "7600000001")
	require.NoError(t, err)
	assert.Equal(t, "b", got.DeletionID)
	assert.Equal(t, pn2.ID, got.PhysicalNumberID)

	_, err = r.LatestByNumber(ctx, "none")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
