package handlers

import (
	"VNumbers/internal/config"
	"VNumbers/internal/middleware"
	"VNumbers/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	numberService *service.NumberService,
	messageService *service.MessageService,
	lifecycleService *service.LifecycleService,
	tracker *service.CooldownTracker,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	// Handlers
	numberHandler := NewNumberHandler(numberService, logger, config)
	lifecycleHandler := NewLifecycleHandler(lifecycleService, tracker, logger, config)
	messageHandler := NewMessageHandler(messageService, logger)

	// Physical numbers
	r.Get("/physical-numbers", numberHandler.ListPhysical)
	r.Post("/physical-numbers", numberHandler.CreatePhysical)
	r.Get("/physical-numbers/{id}/virtual-numbers", numberHandler.ListByPhysical)

	// Virtual numbers
	r.Get("/virtual-numbers", numberHandler.ListVirtual)
	r.Post("/virtual-numbers", numberHandler.CreateVirtual)
	r.Get("/virtual-numbers/{number}/physical-number", numberHandler.PhysicalByVirtual)
	r.Post("/toggle-active/{id}", numberHandler.ToggleActive)
	r.Post("/toggle-message/{id}", numberHandler.ToggleMessage)
	r.Post("/toggle-call/{id}", numberHandler.ToggleCall)

	// Lifecycle
	r.Delete("/virtual-number/{id}", lifecycleHandler.Delete)
	r.Post("/restore", lifecycleHandler.Restore)
	r.Get("/cooldowns", lifecycleHandler.Cooldowns)

	// Messages
	r.Get("/receive-message", messageHandler.Receive)
	r.Post("/receive-message", messageHandler.Receive)
	r.Get("/messages", messageHandler.ListByCategory)
	r.Post("/messages/{id}/read", messageHandler.MarkRead)
	r.Delete("/messages/{id}", messageHandler.Delete)
	r.Get("/notifications", messageHandler.Notifications)

	return &Handler{Router: r}
}
