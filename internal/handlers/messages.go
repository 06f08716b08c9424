package handlers

import (
	"VNumbers/internal/service"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// MessageHandler - входящие сообщения и уведомления.
type MessageHandler struct {
	MessageService *service.MessageService
	Logger         *zap.SugaredLogger
}

// NewMessageHandler создаёт хендлер сообщений
func NewMessageHandler(messageService *service.MessageService, logger *zap.SugaredLogger) *MessageHandler {
	return &MessageHandler{MessageService: messageService, Logger: logger}
}

type receiveRequest struct {
	VirtualNumber string `json:"virtual_number"`
	SenderName    string `json:"sender_name"`
	Message       string `json:"message"`
}

type receiveResponse struct {
	Message   string `json:"message"`
	MessageID int64  `json:"message_id"`
	Recipient string `json:"recipient"`
	Sender    string `json:"sender"`
	Category  string `json:"category"`
	Body      string `json:"message_body"`
}

type notificationsResponse struct {
	TotalNotification int64  `json:"total_notification"`
	Message           string `json:"message,omitempty"`
}

// Receive принимает сообщение из query (GET) или JSON-тела (POST).
func (h *MessageHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var req receiveRequest
	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.Logger.Warnw("Receive: invalid request body", "error", err)
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
			return
		}
	} else {
		q := r.URL.Query()
		req = receiveRequest{
			VirtualNumber: q.Get("virtual_number"),
			SenderName:    q.Get("sender_name"),
			Message:       q.Get("message"),
		}
	}

	msg, err := h.MessageService.Receive(r.Context(), req.VirtualNumber, req.SenderName, req.Message)
	if err != nil {
		writeError(w, h.Logger, "Receive", err)
		return
	}
	writeJSON(w, http.StatusOK, receiveResponse{
		Message:   "Message from " + msg.Sender + " received and processed successfully",
		MessageID: msg.ID,
		Recipient: req.VirtualNumber,
		Sender:    msg.Sender,
		Category:  msg.Category.String(),
		Body:      msg.Body,
	})
}

func (h *MessageHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.MessageService.ListByCategory(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, h.Logger, "ListByCategory", err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Message not found"})
		return
	}
	already, err := h.MessageService.MarkRead(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, "MarkRead", err)
		return
	}
	if already {
		writeJSON(w, http.StatusOK, messageResponse{Message: "Message already read"})
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Message read"})
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Message not found"})
		return
	}
	if err := h.MessageService.Delete(r.Context(), id); err != nil {
		writeError(w, h.Logger, "DeleteMessage", err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Message deleted successfully"})
}

func (h *MessageHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	n, err := h.MessageService.UnreadCount(r.Context())
	if err != nil {
		writeError(w, h.Logger, "Notifications", err)
		return
	}
	resp := notificationsResponse{TotalNotification: n}
	if n == 0 {
		resp.Message = "No new notifications"
	}
	writeJSON(w, http.StatusOK, resp)
}
