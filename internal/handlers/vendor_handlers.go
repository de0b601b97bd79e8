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

// VendorHandler - структура для обработки HTTP-запросов поставщиков.
type VendorHandler struct {
	Service *services.VendorService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewVendorHandler создает новый экземпляр VendorHandler.
func NewVendorHandler(service *services.VendorService, logger zerolog.Logger, timeout time.Duration) *VendorHandler {
	return &VendorHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// RegisterVendor обрабатывает запросы регистрации поставщика.
func (h *VendorHandler) RegisterVendor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var vendorReq models.VendorRequest
	if err := json.NewDecoder(r.Body).Decode(&vendorReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.Service.RegisterVendor(ctx, vendorReq)
	if err != nil {
		h.Logger.Error().Err(err).Str("username", vendorReq.Username).Msg("failed to register vendor")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to register vendor")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, profile)
}

// GetVendorRating обрабатывает запросы рейтинга поставщика.
func (h *VendorHandler) GetVendorRating(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	vendor := r.PathValue("vendor")

	rating, err := h.Service.GetVendorRating(ctx, vendor)
	if err != nil {
		h.Logger.Error().Err(err).Str("vendor", vendor).Msg("failed to retrieve vendor rating")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve vendor rating")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, rating)
}

// SubmitDocument обрабатывает запросы подачи документа поставщика.
func (h *VendorHandler) SubmitDocument(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	vendor := r.PathValue("vendor")

	var documentReq struct {
		DocType string `json:"docType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&documentReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	document, err := h.Service.SubmitDocument(ctx, vendor, documentReq.DocType)
	if err != nil {
		h.Logger.Error().Err(err).Str("vendor", vendor).Str("doc_type", documentReq.DocType).Msg("failed to submit document")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to submit document")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, document)
}

// VerifyDocument обрабатывает запросы подтверждения документа поставщика.
func (h *VendorHandler) VerifyDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	vendor := r.PathValue("vendor")
	docType := r.URL.Query().Get("doc_type")

	document, err := h.Service.VerifyDocument(ctx, vendor, docType)
	if err != nil {
		h.Logger.Error().Err(err).Str("vendor", vendor).Str("doc_type", docType).Msg("failed to verify document")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to verify document")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, document)
}

// GetVendorDocuments обрабатывает запросы списка документов поставщика.
func (h *VendorHandler) GetVendorDocuments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	vendor := r.PathValue("vendor")

	documents, err := h.Service.GetVendorDocuments(ctx, vendor)
	if err != nil {
		h.Logger.Error().Err(err).Str("vendor", vendor).Msg("failed to retrieve vendor documents")
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve vendor documents")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, documents)
}

// GetCatalog обрабатывает запросы справочника категорий и подборов.
func (h *VendorHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, models.Catalog())
}
