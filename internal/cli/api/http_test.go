package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON_SendsBody_And_ParsesResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var m map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
		assert.Equal(t, float64(1), m["x"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	resp, body, err := DoJSON(context.Background(), http.MethodPost, ts.URL+"/api", map[string]any{"x": 1})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestDoJSON_NoPayload_NoContentType(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	resp, _, err := DoJSON(context.Background(), http.MethodGet, ts.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCall_StatusErrorUsesServerText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"Cannot create a personal number yet."}`))
	}))
	defer ts.Close()

	err := Call(context.Background(), http.MethodPost, ts.URL, struct{}{}, nil)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.Code)
	assert.Equal(t, "Cannot create a personal number yet.", se.Text)
}

func TestCall_BadJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{"))
	}))
	defer ts.Close()

	var out map[string]any
	err := Call(context.Background(), http.MethodGet, ts.URL, nil, &out)
	assert.ErrorContains(t, err, "decode")
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "a", ErrorText([]byte(`{"error":"a"}`)))
	assert.Equal(t, "b", ErrorText([]byte(`{"message":"b"}`)))
	assert.Equal(t, "plain", ErrorText([]byte("plain\n")))
}
