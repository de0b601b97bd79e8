package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/grafbee/procurement-service/internal/models"
	"github.com/grafbee/procurement-service/internal/services"
	"github.com/grafbee/procurement-service/internal/utils"

	"github.com/rs/zerolog"
)

// RequirementHandler - структура для обработки HTTP-запросов потребностей.
type RequirementHandler struct {
	Service *services.RequirementService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewRequirementHandler создаёт новый экземпляр RequirementHandler.
func NewRequirementHandler(service *services.RequirementService, logger zerolog.Logger, timeout time.Duration) *RequirementHandler {
	return &RequirementHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// CreateRequirement обрабатывает запросы для создания потребности.
func (h *RequirementHandler) CreateRequirement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var requirementReq models.RequirementRequest
	if err := json.NewDecoder(r.Body).Decode(&requirementReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	newRequirement, err := h.Service.CreateRequirement(ctx, requirementReq)
	if err != nil {
		h.Logger.Error().Err(err).Str("category", requirementReq.Category).Msg("failed to create requirement")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to create requirement")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, newRequirement)
}

// GetRequirements обрабатывает запросы для получения списка потребностей.
func (h *RequirementHandler) GetRequirements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	category := r.URL.Query().Get("category")

	requirements, err := h.Service.GetRequirements(ctx, limitStr, offsetStr, category)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to retrieve requirements")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve requirements")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, requirements)
}

// EditRequirement обрабатывает запросы изменения потребности.
func (h *RequirementHandler) EditRequirement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PATCH is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	requirementId := r.PathValue("requirementId")

	var updateFields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updateFields); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updatedRequirement, err := h.Service.EditRequirement(ctx, requirementId, updateFields)
	if err != nil {
		h.Logger.Error().Err(err).Str("requirement_id", requirementId).Msg("failed to update requirement")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to update requirement")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, updatedRequirement)
}
