package handlers

import (
	"VNumbers/internal/config"
	"VNumbers/internal/model"
	"VNumbers/internal/service"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// LifecycleHandler - удаление, восстановление и таймеры категорий.
type LifecycleHandler struct {
	LifecycleService *service.LifecycleService
	Tracker          *service.CooldownTracker
	Logger           *zap.SugaredLogger
	Config           *config.Config
}

// NewLifecycleHandler создаёт хендлер жизненного цикла номеров
func NewLifecycleHandler(lifecycleService *service.LifecycleService, tracker *service.CooldownTracker, logger *zap.SugaredLogger, cfg *config.Config) *LifecycleHandler {
	return &LifecycleHandler{LifecycleService: lifecycleService, Tracker: tracker, Logger: logger, Config: cfg}
}

type deleteResponse struct {
	Message    string         `json:"message"`
	DeletionID string         `json:"deletion_id"`
	Number     string         `json:"number"`
	Category   model.Category `json:"category"`
}

type restoreResponse struct {
	Message          string `json:"message"`
	RestoredNumber   string `json:"restored_number"`
	MessagesRestored int    `json:"messages_restored"`
}

type cooldownStatus struct {
	InCooldown            bool    `json:"in_cooldown"`
	LastDeleted           string  `json:"last_deleted"`
	LastRecovered         string  `json:"last_recovered"`
	Status                string  `json:"status"`
	RecoveryCooldown      bool    `json:"recovery_cooldown"`
	RecoveryRemainingTime *string `json:"recovery_remaining_time"`
}

func (h *LifecycleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Virtual number not found"})
		return
	}
	res, err := h.LifecycleService.Delete(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, "Delete", err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{
		Message:    res.Message,
		DeletionID: res.DeletionID,
		Number:     res.Number,
		Category:   res.Category,
	})
}

func (h *LifecycleHandler) Restore(w http.ResponseWriter, r *http.Request) {
	window, ok := windowParam(r, h.Config.RecoveryWindow())
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid window_minutes"})
		return
	}
	res, err := h.LifecycleService.Restore(r.Context(), window)
	if err != nil {
		writeError(w, h.Logger, "Restore", err)
		return
	}
	writeJSON(w, http.StatusOK, restoreResponse{
		Message:          res.Message,
		RestoredNumber:   res.VirtualNumber.Number,
		MessagesRestored: res.MessagesRestored,
	})
}

// Cooldowns отдаёт состояние таймеров по всем категориям.
func (h *LifecycleHandler) Cooldowns(w http.ResponseWriter, r *http.Request) {
	deletion, recovery := h.Config.DeletionWindow(), h.Config.RecoveryWindow()
	if r.URL.Query().Get("window_minutes") != "" {
		win, ok := windowParam(r, 0)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid window_minutes"})
			return
		}
		deletion, recovery = win, win
	}

	list, err := h.Tracker.StatusWindows(r.Context(), deletion, recovery)
	if err != nil {
		writeError(w, h.Logger, "Cooldowns", err)
		return
	}

	out := make(map[model.Category]cooldownStatus, len(list))
	for _, st := range list {
		cs := cooldownStatus{
			InCooldown:       st.InCooldown,
			LastDeleted:      formatStamp(st.LastDeleted),
			LastRecovered:    formatStamp(st.LastRecovered),
			Status:           "Available for creation",
			RecoveryCooldown: st.RecoveryCooldown,
		}
		if st.InCooldown {
			cs.Status = "In cooldown - " + service.FormatRemaining(st.Remaining) + " remaining"
		}
		if st.RecoveryCooldown {
			rem := service.FormatRemaining(st.RecoveryRemaining)
			cs.RecoveryRemainingTime = &rem
		}
		out[st.Category] = cs
	}
	writeJSON(w, http.StatusOK, out)
}

func formatStamp(t *time.Time) string {
	if t == nil {
		return "Never"
	}
	return t.UTC().Format(time.DateTime)
}
