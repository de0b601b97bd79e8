package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/grafbee/procurement-service/internal/models"
	"github.com/grafbee/procurement-service/internal/services"
	"github.com/grafbee/procurement-service/internal/utils"

	"github.com/rs/zerolog"
)

// NotificationHandler - структура для обработки HTTP-запросов уведомлений.
type NotificationHandler struct {
	Service *services.NotificationService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewNotificationHandler создаёт новый экземпляр NotificationHandler.
func NewNotificationHandler(service *services.NotificationService, logger zerolog.Logger, timeout time.Duration) *NotificationHandler {
	return &NotificationHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetUnread обрабатывает запросы непрочитанных уведомлений пользователя.
func (h *NotificationHandler) GetUnread(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	username := r.URL.Query().Get("username")

	notifications, err := h.Service.GetUnread(ctx, username)
	if err != nil {
		h.Logger.Error().Err(err).Str("username", username).Msg("failed to retrieve notifications")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve notifications")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, notifications)
}

// MarkAllRead обрабатывает запросы отметки уведомлений прочитанными.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	username := r.URL.Query().Get("username")

	affected, err := h.Service.MarkAllRead(ctx, username)
	if err != nil {
		h.Logger.Error().Err(err).Str("username", username).Msg("failed to mark notifications as read")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to mark notifications as read")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, map[string]int64{"updated": affected})
}
