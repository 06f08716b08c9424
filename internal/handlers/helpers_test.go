package handlers_test

import (
	"VNumbers/internal/config"
	"VNumbers/internal/handlers"
	"VNumbers/internal/lock"
	"VNumbers/internal/model"
	"VNumbers/internal/repo"
	"VNumbers/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	router http.Handler
	store  repo.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := &config.Config{DeletionCooldownMin: 5, RecoveryCooldownMin: 5}
	logger := zap.NewNop().Sugar()
	store := repo.NewStore(db)

	numbers := service.NewNumberService(store, logger)
	messages := service.NewMessageService(store, nil, logger)
	lifecycle := service.NewLifecycleService(store, lock.NewLocalLocker(), nil, logger)
	tracker := service.NewCooldownTracker(store.Repos().Cooldowns, nil)

	h := handlers.NewHandler(numbers, messages, lifecycle, tracker, logger, cfg)
	return &testEnv{router: h.Router, store: store}
}

func (e *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&m))
	return m
}

func (e *testEnv) physical(t *testing.T, number string) *model.PhysicalNumber {
	t.Helper()
	pn := &model.PhysicalNumber{Number: number, OwnerName: "owner", IsActive: true}
	require.NoError(t, e.store.Repos().Physical.Create(context.Background(), pn))
	return pn
}

func (e *testEnv) virtual(t *testing.T, pn *model.PhysicalNumber, number string, cat model.Category) *model.VirtualNumber {
	t.Helper()
	vn := &model.VirtualNumber{
		Number:           number,
		Category:         cat,
		PhysicalNumberID: pn.ID,
		IsActive:         true,
		IsMessageActive:  true,
		IsCallActive:     true,
	}
	require.NoError(t, e.store.Repos().Virtual.Create(context.Background(), vn))
	return vn
}
