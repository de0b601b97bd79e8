package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/grafbee/procurement-service/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// SendErrorResponse отправляет ошибку в формате JSON
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := models.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Error().Err(err).Msg("failed to write error response")
	}
}

// SendJSONResponse отправляет ответ в формате JSON с указанным кодом.
func SendJSONResponse(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

// ParseLimitOffset обрабатывает limit и offset
func ParseLimitOffset(limitStr, offsetStr string) (int, int, error) {
	var limit, offset int
	var err error

	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > 50 {
			return 0, 0, fmt.Errorf("invalid limit parameter, must be a positive integer [0:50]")
		}
	} else {
		limit = 5
	}

	if offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter, must be a non-negative integer")
		}
	} else {
		offset = 0
	}

	return limit, offset, nil
}

// IsValidPhone проверяет, что номер телефона состоит ровно из десяти цифр.
func IsValidPhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ContainsString проверяет вхождение строки в список допустимых значений.
func ContainsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// ContainsProposalStatus - функция для проверки перехода у предложений
func ContainsProposalStatus(validTransitions []models.ProposalStatus, newStatus models.ProposalStatus) bool {
	for _, validStatus := range validTransitions {
		if validStatus == newStatus {
			return true
		}
	}
	return false
}

// CheckUserExists проверяет, существует ли пользователь с указанным username
func CheckUserExists(ctx context.Context, dbPool *pgxpool.Pool, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	err := dbPool.QueryRow(ctx, query, username).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// CheckVendorExists проверяет, зарегистрирован ли поставщик с указанным username
func CheckVendorExists(ctx context.Context, dbPool *pgxpool.Pool, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM vendor_profiles WHERE vendor_username = $1)`
	err := dbPool.QueryRow(ctx, query, username).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// CheckProposalExists проверяет существование предложения по его ID
func CheckProposalExists(ctx context.Context, dbPool *pgxpool.Pool, proposalId string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM proposals WHERE id = $1)`
	err := dbPool.QueryRow(ctx, query, proposalId).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// CheckRequirementExists проверяет существование потребности по её ID
func CheckRequirementExists(ctx context.Context, dbPool *pgxpool.Pool, requirementId string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM requirements WHERE id = $1)`
	err := dbPool.QueryRow(ctx, query, requirementId).Scan(&exists)
	return exists, err
}

// GetProposalById получает предложение по ID.
func GetProposalById(ctx context.Context, dbPool *pgxpool.Pool, proposalId string) (*models.Proposal, error) {
	var proposal models.Proposal
	query := `SELECT id, submitted_by, company, category, brand, item, measurement, quantity, quantity_unit,
	                 rate, phone, address, status, offered_quality, offered_certifications,
	                 delivery_person, delivery_phone, scheduled_delivery_at, created_at
	          FROM proposals WHERE id = $1`
	err := dbPool.QueryRow(ctx, query, proposalId).Scan(
		&proposal.ID,
		&proposal.SubmittedBy,
		&proposal.Company,
		&proposal.Category,
		&proposal.Brand,
		&proposal.Item,
		&proposal.Measurement,
		&proposal.Quantity,
		&proposal.QuantityUnit,
		&proposal.Rate,
		&proposal.Phone,
		&proposal.Address,
		&proposal.Status,
		&proposal.OfferedQuality,
		&proposal.OfferedCertifications,
		&proposal.DeliveryPerson,
		&proposal.DeliveryPhone,
		&proposal.ScheduledDeliveryAt,
		&proposal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}
