package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/grafbee/procurement-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var requirementColumns = []string{
	"id", "category", "item", "budgeted_rate", "budgeted_quantity", "budgeted_quantity_unit",
	"required_quality", "required_certifications", "required_delivery_date", "created_at",
}

// RequirementRepository - интерфейс для работы с потребностями отдела закупок.
type RequirementRepository interface {
	CreateRequirement(ctx context.Context, requirementReq models.RequirementRequest) (*models.Requirement, error)
	GetRequirements(ctx context.Context, limit, offset int, category string) ([]models.Requirement, error)
	EditRequirement(ctx context.Context, requirementId string, updateFields map[string]interface{}) (*models.Requirement, error)
	GetAverageBudgetRate(ctx context.Context, category string) (decimal.Decimal, int, error)
}

// PostgresRequirementRepository - реализация RequirementRepository для базы данных.
type PostgresRequirementRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresRequirementRepository создаёт новый экземпляр PostgresRequirementRepository.
func NewPostgresRequirementRepository(db *pgxpool.Pool) *PostgresRequirementRepository {
	return &PostgresRequirementRepository{DB: db}
}

// CreateRequirement создает новую потребность.
func (r *PostgresRequirementRepository) CreateRequirement(ctx context.Context, requirementReq models.RequirementRequest) (*models.Requirement, error) {
	newRequirement := models.Requirement{
		ID:                     uuid.New().String(),
		Category:               requirementReq.Category,
		Item:                   requirementReq.Item,
		BudgetedRate:           requirementReq.BudgetedRate,
		BudgetedQuantity:       requirementReq.BudgetedQuantity,
		BudgetedQuantityUnit:   requirementReq.BudgetedQuantityUnit,
		RequiredQuality:        requirementReq.RequiredQuality,
		RequiredCertifications: requirementReq.RequiredCertifications,
		RequiredDeliveryDate:   requirementReq.RequiredDeliveryDate,
		CreatedAt:              time.Now().UTC(),
	}
	if newRequirement.RequiredCertifications == nil {
		newRequirement.RequiredCertifications = []string{}
	}
	_, err := r.DB.Exec(ctx, `
       INSERT INTO requirements (id, category, item, budgeted_rate, budgeted_quantity, budgeted_quantity_unit,
                                 required_quality, required_certifications, required_delivery_date, created_at)
       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
   `,
		newRequirement.ID,
		newRequirement.Category,
		newRequirement.Item,
		newRequirement.BudgetedRate,
		newRequirement.BudgetedQuantity,
		newRequirement.BudgetedQuantityUnit,
		newRequirement.RequiredQuality,
		newRequirement.RequiredCertifications,
		newRequirement.RequiredDeliveryDate,
		newRequirement.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert requirement: %w", err)
	}
	return &newRequirement, nil
}

// GetRequirements возвращает список потребностей с фильтром по категории.
func (r *PostgresRequirementRepository) GetRequirements(ctx context.Context, limit, offset int, category string) ([]models.Requirement, error) {
	query := `SELECT ` + strings.Join(requirementColumns, ", ") + ` FROM requirements`
	var args []interface{}
	argIndex := 1

	if category != "" {
		query += fmt.Sprintf(" WHERE category = $%d", argIndex)
		args = append(args, category)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRequirements(rows)
}

// EditRequirement меняет поля потребности.
func (r *PostgresRequirementRepository) EditRequirement(ctx context.Context, requirementId string, updateFields map[string]interface{}) (*models.Requirement, error) {
	editableFields := []struct {
		field  string
		column string
	}{
		{"item", "item"},
		{"budgetedRate", "budgeted_rate"},
		{"budgetedQuantity", "budgeted_quantity"},
		{"budgetedQuantityUnit", "budgeted_quantity_unit"},
		{"requiredQuality", "required_quality"},
		{"requiredDeliveryDate", "required_delivery_date"},
	}

	var updates []string
	var args []interface{}
	argIndex := 1

	for _, f := range editableFields {
		value, ok := updateFields[f.field]
		if !ok || value == nil {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = $%d", f.column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if certs, ok := updateFields["requiredCertifications"].([]interface{}); ok {
		certStrings := make([]string, 0, len(certs))
		for _, c := range certs {
			if s, sok := c.(string); sok {
				certStrings = append(certStrings, s)
			}
		}
		updates = append(updates, fmt.Sprintf("required_certifications = $%d", argIndex))
		args = append(args, certStrings)
		argIndex++
	}

	if len(updates) == 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "No valid fields to update")
	}

	query := `UPDATE requirements SET ` + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", argIndex) + strings.Join(requirementColumns, ", ")
	args = append(args, requirementId)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requirements, err := scanRequirements(rows)
	if err != nil {
		return nil, err
	}
	if len(requirements) == 0 {
		return nil, fmt.Errorf("requirement %s not found", requirementId)
	}
	return &requirements[0], nil
}

// GetAverageBudgetRate возвращает среднюю заложенную цену по категории и число потребностей.
// При нуле потребностей средняя цена не определена.
func (r *PostgresRequirementRepository) GetAverageBudgetRate(ctx context.Context, category string) (decimal.Decimal, int, error) {
	var avgRate decimal.Decimal
	var count int
	query := `SELECT COALESCE(AVG(budgeted_rate), 0), COUNT(*) FROM requirements WHERE category = $1`
	err := r.DB.QueryRow(ctx, query, category).Scan(&avgRate, &count)
	if err != nil {
		return decimal.Zero, 0, err
	}
	return avgRate, count, nil
}

func scanRequirements(rows pgx.Rows) ([]models.Requirement, error) {
	var requirements []models.Requirement
	for rows.Next() {
		var req models.Requirement
		if err := rows.Scan(
			&req.ID,
			&req.Category,
			&req.Item,
			&req.BudgetedRate,
			&req.BudgetedQuantity,
			&req.BudgetedQuantityUnit,
			&req.RequiredQuality,
			&req.RequiredCertifications,
			&req.RequiredDeliveryDate,
			&req.CreatedAt); err != nil {
			return nil, err
		}
		requirements = append(requirements, req)
	}
	return requirements, nil
}
