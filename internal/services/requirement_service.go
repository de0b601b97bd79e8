package services

import (
	"context"
	"net/http"

	"github.com/grafbee/procurement-service/internal/models"
	"github.com/grafbee/procurement-service/internal/repository"
	"github.com/grafbee/procurement-service/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RequirementService struct {
	Repo   repository.RequirementRepository
	dbPool *pgxpool.Pool
}

// NewRequirementService создаёт новый экземпляр RequirementService.
func NewRequirementService(repo repository.RequirementRepository, dbPool *pgxpool.Pool) *RequirementService {
	return &RequirementService{Repo: repo, dbPool: dbPool}
}

// CreateRequirement создает новую потребность отдела закупок.
func (s *RequirementService) CreateRequirement(ctx context.Context, requirementReq models.RequirementRequest) (*models.Requirement, error) {
	if requirementReq.Category == "" || requirementReq.Item == "" || requirementReq.RequiredQuality == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields")
	}

	if !requirementReq.BudgetedRate.IsPositive() {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "budgeted rate must be positive")
	}

	if !requirementReq.BudgetedQuantity.IsPositive() {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "budgeted quantity must be positive")
	}

	if !utils.ContainsString(models.QualityLevels, requirementReq.RequiredQuality) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid required quality")
	}

	if requirementReq.RequiredDeliveryDate.IsZero() {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "required delivery date is missing")
	}

	// Для известных категорий единица измерения и сертификаты берутся из каталога.
	if spec, ok := models.LookupCategory(requirementReq.Category); ok {
		requirementReq.BudgetedQuantityUnit = spec.QuantityUnit
		for _, certification := range requirementReq.RequiredCertifications {
			if !utils.ContainsString(spec.Certifications, certification) {
				return nil, models.NewErrorResponsef(http.StatusBadRequest, "certification %s is not applicable to category %s", certification, requirementReq.Category)
			}
		}
	} else if requirementReq.BudgetedQuantityUnit == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "budgeted quantity unit is required for custom categories")
	}

	return s.Repo.CreateRequirement(ctx, requirementReq)
}

// GetRequirements получает список потребностей с фильтрацией по категории.
func (s *RequirementService) GetRequirements(ctx context.Context, limitStr, offsetStr, category string) ([]models.Requirement, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid limit or offset")
	}
	return s.Repo.GetRequirements(ctx, limit, offset, category)
}

// EditRequirement обновляет поля существующей потребности.
func (s *RequirementService) EditRequirement(ctx context.Context, requirementId string, updateFields map[string]interface{}) (*models.Requirement, error) {
	requirementExists, err := utils.CheckRequirementExists(ctx, s.dbPool, requirementId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !requirementExists {
		return nil, models.NewErrorResponse(http.StatusNotFound, "requirement not found")
	}

	if rate, ok := updateFields["budgetedRate"].(float64); ok && rate <= 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "budgeted rate must be positive")
	}

	if quantity, ok := updateFields["budgetedQuantity"].(float64); ok && quantity <= 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "budgeted quantity must be positive")
	}

	if quality, ok := updateFields["requiredQuality"].(string); ok && !utils.ContainsString(models.QualityLevels, quality) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid required quality")
	}

	return s.Repo.EditRequirement(ctx, requirementId, updateFields)
}
