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

// ProposalHandler - структура для обработки HTTP-запросов предложений.
type ProposalHandler struct {
	Service *services.ProposalService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewProposalHandler создает новый экземпляр ProposalHandler.
func NewProposalHandler(service *services.ProposalService, logger zerolog.Logger, timeout time.Duration) *ProposalHandler {
	return &ProposalHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// CreateProposal обрабатывает запросы для создания предложения.
func (h *ProposalHandler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var proposalReq models.ProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&proposalReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	newProposal, err := h.Service.CreateProposal(ctx, proposalReq)
	if err != nil {
		h.Logger.Error().Err(err).Str("company", proposalReq.Company).Msg("failed to create proposal")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to create proposal")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, newProposal)
}

// GetProposals обрабатывает запросы для получения списка предложений.
func (h *ProposalHandler) GetProposals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	category := r.URL.Query().Get("category")
	status := r.URL.Query().Get("status")
	submittedBy := r.URL.Query().Get("submitted_by")

	proposals, err := h.Service.GetProposals(ctx, limitStr, offsetStr, category, status, submittedBy)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to retrieve proposals")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve proposals")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, proposals)
}

// GetUserProposals обрабатывает запросы для получения предложений поставщика.
func (h *ProposalHandler) GetUserProposals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	username := r.URL.Query().Get("username")

	userProposals, err := h.Service.GetUserProposals(ctx, limitStr, offsetStr, username)
	if err != nil {
		h.Logger.Error().Err(err).Str("username", username).Msg("failed to retrieve user proposals")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve user proposals")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, userProposals)
}

// GetProposalStatus обрабатывает запросы для получения статуса предложения.
func (h *ProposalHandler) GetProposalStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	proposalId := r.PathValue("proposalId")

	status, err := h.Service.GetProposalStatus(ctx, proposalId)
	if err != nil {
		h.Logger.Error().Err(err).Str("proposal_id", proposalId).Msg("failed to retrieve proposal status")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve proposal status")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, status)
}

// EditProposal обрабатывает запросы изменения предложения.
func (h *ProposalHandler) EditProposal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PATCH is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	proposalId := r.PathValue("proposalId")

	var updateFields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updateFields); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updatedProposal, err := h.Service.EditProposal(ctx, proposalId, updateFields)
	if err != nil {
		h.Logger.Error().Err(err).Str("proposal_id", proposalId).Msg("failed to update proposal")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to update proposal")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, updatedProposal)
}

// SubmitDecision обрабатывает запросы по решению отдела закупок.
func (h *ProposalHandler) SubmitDecision(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	proposalId := r.PathValue("proposalId")
	username := r.URL.Query().Get("username")
	decision := r.URL.Query().Get("decision")

	updatedProposal, err := h.Service.SubmitDecision(ctx, proposalId, username, models.ProposalDecision(decision))
	if err != nil {
		h.Logger.Error().Err(err).Str("proposal_id", proposalId).Str("decision", decision).Msg("failed to submit decision")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to submit decision")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, updatedProposal)
}

// ConfirmCertificates обрабатывает запросы о передаче сертификатов на проверку.
func (h *ProposalHandler) ConfirmCertificates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	proposalId := r.PathValue("proposalId")
	username := r.URL.Query().Get("username")

	updatedProposal, err := h.Service.ConfirmCertificates(ctx, proposalId, username)
	if err != nil {
		h.Logger.Error().Err(err).Str("proposal_id", proposalId).Msg("failed to confirm certificates")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to confirm certificates")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, updatedProposal)
}

// DispatchProposal обрабатывает запросы об отправке поставки.
func (h *ProposalHandler) DispatchProposal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	proposalId := r.PathValue("proposalId")
	username := r.URL.Query().Get("username")

	var dispatch models.DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&dispatch); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updatedProposal, err := h.Service.DispatchProposal(ctx, proposalId, username, dispatch)
	if err != nil {
		h.Logger.Error().Err(err).Str("proposal_id", proposalId).Msg("failed to dispatch proposal")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to dispatch proposal")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, updatedProposal)
}

// ConfirmReceipt обрабатывает запросы о получении поставки объектом.
func (h *ProposalHandler) ConfirmReceipt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	proposalId := r.PathValue("proposalId")
	username := r.URL.Query().Get("username")

	updatedProposal, err := h.Service.ConfirmReceipt(ctx, proposalId, username)
	if err != nil {
		h.Logger.Error().Err(err).Str("proposal_id", proposalId).Msg("failed to confirm receipt")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to confirm receipt")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, updatedProposal)
}

// SubmitReview обрабатывает запросы по отправке отзыва о поставке.
func (h *ProposalHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	proposalId := r.PathValue("proposalId")

	var reviewReq models.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&reviewReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	newReview, err := h.Service.SubmitReview(ctx, proposalId, reviewReq)
	if err != nil {
		h.Logger.Error().Err(err).Str("proposal_id", proposalId).Msg("failed to submit review")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to submit review")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, newReview)
}

// GetProposalReviews обрабатывает запросы для получения отзывов о поставке.
func (h *ProposalHandler) GetProposalReviews(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	proposalId := r.PathValue("proposalId")

	reviews, err := h.Service.GetProposalReviews(ctx, proposalId)
	if err != nil {
		h.Logger.Error().Err(err).Str("proposal_id", proposalId).Msg("failed to retrieve reviews")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve reviews")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, reviews)
}
