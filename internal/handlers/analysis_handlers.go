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

// AnalysisHandler - структура для обработки HTTP-запросов анализа предложений.
type AnalysisHandler struct {
	Service *services.AnalysisService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewAnalysisHandler создаёт новый экземпляр AnalysisHandler.
func NewAnalysisHandler(service *services.AnalysisService, logger zerolog.Logger, timeout time.Duration) *AnalysisHandler {
	return &AnalysisHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// RunAnalysis обрабатывает запросы ранжирования предложений категории.
// Разрешение расстояний ходит во внешний API, поэтому таймаут здесь свой,
// более щедрый, чем у остальных обработчиков.
func (h *AnalysisHandler) RunAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var analysisReq models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&analysisReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.RunAnalysis(ctx, analysisReq)
	if err != nil {
		h.Logger.Error().Err(err).Str("category", analysisReq.Category).Msg("failed to run analysis")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to run analysis")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, result)
}
