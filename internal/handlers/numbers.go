package handlers

import (
	"VNumbers/internal/config"
	"VNumbers/internal/service"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NumberHandler - физические и виртуальные номера.
type NumberHandler struct {
	NumberService *service.NumberService
	Logger        *zap.SugaredLogger
	Config        *config.Config
}

// NewNumberHandler создаёт хендлер номеров
func NewNumberHandler(numberService *service.NumberService, logger *zap.SugaredLogger, cfg *config.Config) *NumberHandler {
	return &NumberHandler{NumberService: numberService, Logger: logger, Config: cfg}
}

type createPhysicalRequest struct {
	Number    string `json:"number"`
	OwnerName string `json:"owner_name"`
}

type createVirtualRequest struct {
	GeoCode  string `json:"geo_code"`
	Category string `json:"category"`
}

type toggleResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
	State   bool   `json:"state"`
}

func (h *NumberHandler) ListPhysical(w http.ResponseWriter, r *http.Request) {
	list, err := h.NumberService.ListPhysicalNumbers(r.Context())
	if err != nil {
		writeError(w, h.Logger, "ListPhysical", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *NumberHandler) CreatePhysical(w http.ResponseWriter, r *http.Request) {
	var req createPhysicalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("CreatePhysical: invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}
	pn, err := h.NumberService.CreatePhysicalNumber(r.Context(), req.Number, req.OwnerName)
	if errors.Is(err, service.ErrConflict) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: service.PublicMessage(err)})
		return
	}
	if err != nil {
		writeError(w, h.Logger, "CreatePhysical", err)
		return
	}
	writeJSON(w, http.StatusCreated, pn)
}

func (h *NumberHandler) ListByPhysical(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "physical number not found"})
		return
	}
	list, err := h.NumberService.ListByPhysical(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, "ListByPhysical", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *NumberHandler) ListVirtual(w http.ResponseWriter, r *http.Request) {
	list, err := h.NumberService.ListVirtualNumbers(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, h.Logger, "ListVirtual", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *NumberHandler) CreateVirtual(w http.ResponseWriter, r *http.Request) {
	window, ok := windowParam(r, h.Config.DeletionWindow())
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid window_minutes"})
		return
	}
	var req createVirtualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("CreateVirtual: invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}
	vn, err := h.NumberService.CreateVirtualNumber(r.Context(), req.GeoCode, req.Category, window)
	if err != nil {
		writeError(w, h.Logger, "CreateVirtual", err)
		return
	}
	writeJSON(w, http.StatusCreated, vn)
}

func (h *NumberHandler) PhysicalByVirtual(w http.ResponseWriter, r *http.Request) {
	pn, err := h.NumberService.PhysicalByVirtualNumber(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, h.Logger, "PhysicalByVirtual", err)
		return
	}
	writeJSON(w, http.StatusOK, pn)
}

func (h *NumberHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "ToggleActive", h.NumberService.ToggleActive, "")
}

func (h *NumberHandler) ToggleMessage(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "ToggleMessage", h.NumberService.ToggleMessage, "Messages ")
}

func (h *NumberHandler) ToggleCall(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "ToggleCall", h.NumberService.ToggleCall, "Call ")
}

func (h *NumberHandler) toggle(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	fn func(ctx context.Context, id int64) (bool, error),
	label string,
) {
	id, ok := idParam(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "Virtual number not found"})
		return
	}
	state, err := fn(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, op, err)
		return
	}
	verb := "deactivated"
	if state {
		verb = "activated"
	}
	writeJSON(w, http.StatusOK, toggleResponse{Message: "Successfully " + label + verb, ID: id, State: state})
}
