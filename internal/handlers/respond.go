package handlers

import (
	"VNumbers/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError переводит ошибку сервиса в HTTP-статус. Неизвестные ошибки - 500 с логом.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, op string, err error) {
	var ce *service.CooldownError
	switch {
	case errors.As(err, &ce) && ce.Op == service.OpCreation:
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: ce.Error()})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: service.PublicMessage(err)})
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: service.PublicMessage(err)})
	default:
		logger.Errorw(op+": internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// windowParam читает ?window_minutes, иначе возвращает def.
func windowParam(r *http.Request, def time.Duration) (time.Duration, bool) {
	raw := r.URL.Query().Get("window_minutes")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return time.Duration(n) * time.Minute, true
}
