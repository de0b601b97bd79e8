package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/grafbee/procurement-service/internal/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var proposalColumns = []string{
	"id", "submitted_by", "company", "category", "brand", "item", "measurement",
	"quantity", "quantity_unit", "rate", "phone", "address", "status",
	"offered_quality", "offered_certifications",
	"delivery_person", "delivery_phone", "scheduled_delivery_at", "created_at",
}

// ProposalRepository - интерфейс для работы с предложениями поставщиков.
type ProposalRepository interface {
	CreateProposal(ctx context.Context, proposalReq models.ProposalRequest) (*models.Proposal, error)
	GetProposals(ctx context.Context, limit, offset int, category, status, submittedBy string) ([]models.Proposal, error)
	GetUserProposals(ctx context.Context, limit, offset int, username string) ([]models.Proposal, error)
	GetPendingByCategory(ctx context.Context, category string) ([]models.Proposal, error)
	GetAllProposals(ctx context.Context) ([]models.Proposal, error)
	GetProposalStatus(ctx context.Context, proposalId string) (models.ProposalStatus, error)
	UpdateProposalStatus(ctx context.Context, proposalId string, status models.ProposalStatus) (*models.Proposal, error)
	EditProposal(ctx context.Context, proposalId string, updateFields map[string]interface{}) (*models.Proposal, error)
	SetDispatchDetails(ctx context.Context, proposalId string, dispatch models.DispatchRequest) (*models.Proposal, error)
	GetOverdueDeliveries(ctx context.Context, now time.Time) ([]models.Proposal, error)
}

// PostgresProposalRepository - реализация ProposalRepository для базы данных.
type PostgresProposalRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresProposalRepository создаёт новый экземпляр PostgresProposalRepository.
func NewPostgresProposalRepository(db *pgxpool.Pool) *PostgresProposalRepository {
	return &PostgresProposalRepository{DB: db}
}

// CreateProposal создает новое предложение со статусом Pending.
func (r *PostgresProposalRepository) CreateProposal(ctx context.Context, proposalReq models.ProposalRequest) (*models.Proposal, error) {
	newProposal := models.Proposal{
		ID:                    uuid.New().String(),
		SubmittedBy:           proposalReq.SubmittedBy,
		Company:               proposalReq.Company,
		Category:              proposalReq.Category,
		Brand:                 proposalReq.Brand,
		Item:                  proposalReq.Item,
		Measurement:           proposalReq.Measurement,
		Quantity:              proposalReq.Quantity,
		QuantityUnit:          proposalReq.QuantityUnit,
		Rate:                  proposalReq.Rate,
		Phone:                 proposalReq.Phone,
		Address:               proposalReq.Address,
		Status:                models.PendingProposal,
		OfferedQuality:        proposalReq.OfferedQuality,
		OfferedCertifications: proposalReq.OfferedCertifications,
		CreatedAt:             time.Now().UTC(),
	}
	if newProposal.OfferedCertifications == nil {
		newProposal.OfferedCertifications = []string{}
	}
	_, err := r.DB.Exec(ctx, `
       INSERT INTO proposals (id, submitted_by, company, category, brand, item, measurement, quantity, quantity_unit,
                              rate, phone, address, status, offered_quality, offered_certifications, created_at)
       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
   `,
		newProposal.ID,
		newProposal.SubmittedBy,
		newProposal.Company,
		newProposal.Category,
		newProposal.Brand,
		newProposal.Item,
		newProposal.Measurement,
		newProposal.Quantity,
		newProposal.QuantityUnit,
		newProposal.Rate,
		newProposal.Phone,
		newProposal.Address,
		newProposal.Status,
		newProposal.OfferedQuality,
		newProposal.OfferedCertifications,
		newProposal.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert proposal: %w", err)
	}
	return &newProposal, nil
}

// GetProposals возвращает список предложений с фильтрами по категории, статусу и поставщику.
func (r *PostgresProposalRepository) GetProposals(ctx context.Context, limit, offset int, category, status, submittedBy string) ([]models.Proposal, error) {
	builder := sq.Select(proposalColumns...).
		From("proposals").
		PlaceholderFormat(sq.Dollar)

	if category != "" {
		builder = builder.Where(sq.Eq{"category": category})
	}
	if status != "" {
		builder = builder.Where(sq.Eq{"status": status})
	}
	if submittedBy != "" {
		builder = builder.Where(sq.Eq{"submitted_by": submittedBy})
	}

	query, args, err := builder.
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build proposals query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProposals(rows)
}

// GetUserProposals возвращает список предложений одного поставщика.
func (r *PostgresProposalRepository) GetUserProposals(ctx context.Context, limit, offset int, username string) ([]models.Proposal, error) {
	query := `SELECT ` + strings.Join(proposalColumns, ", ") + `
              FROM proposals WHERE submitted_by = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.DB.Query(ctx, query, username, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProposals(rows)
}

// GetPendingByCategory возвращает предложения категории в статусе Pending.
// Порядок детерминирован: по времени подачи, затем по идентификатору.
func (r *PostgresProposalRepository) GetPendingByCategory(ctx context.Context, category string) ([]models.Proposal, error) {
	query := `SELECT ` + strings.Join(proposalColumns, ", ") + `
              FROM proposals WHERE category = $1 AND status = $2 ORDER BY created_at, id`

	rows, err := r.DB.Query(ctx, query, category, models.PendingProposal)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProposals(rows)
}

// GetAllProposals возвращает все предложения для расчёта репутации поставщиков.
func (r *PostgresProposalRepository) GetAllProposals(ctx context.Context) ([]models.Proposal, error) {
	query := `SELECT ` + strings.Join(proposalColumns, ", ") + ` FROM proposals`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProposals(rows)
}

// GetProposalStatus возвращает статус предложения.
func (r *PostgresProposalRepository) GetProposalStatus(ctx context.Context, proposalId string) (models.ProposalStatus, error) {
	var status models.ProposalStatus
	query := `SELECT status FROM proposals WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, proposalId).Scan(&status)
	if err != nil {
		return "", err
	}
	return status, nil
}

// UpdateProposalStatus меняет статус предложения.
func (r *PostgresProposalRepository) UpdateProposalStatus(ctx context.Context, proposalId string, status models.ProposalStatus) (*models.Proposal, error) {
	query := `UPDATE proposals SET status = $1 WHERE id = $2
	          RETURNING ` + strings.Join(proposalColumns, ", ")

	rows, err := r.DB.Query(ctx, query, status, proposalId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	proposals, err := scanProposals(rows)
	if err != nil {
		return nil, err
	}
	if len(proposals) == 0 {
		return nil, fmt.Errorf("proposal %s not found", proposalId)
	}
	return &proposals[0], nil
}

// EditProposal меняет поля предложения.
func (r *PostgresProposalRepository) EditProposal(ctx context.Context, proposalId string, updateFields map[string]interface{}) (*models.Proposal, error) {
	editableFields := []struct {
		field  string
		column string
	}{
		{"brand", "brand"},
		{"item", "item"},
		{"measurement", "measurement"},
		{"quantity", "quantity"},
		{"quantityUnit", "quantity_unit"},
		{"rate", "rate"},
		{"phone", "phone"},
		{"address", "address"},
		{"offeredQuality", "offered_quality"},
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

	if certs, ok := updateFields["offeredCertifications"].([]interface{}); ok {
		certStrings := make([]string, 0, len(certs))
		for _, c := range certs {
			if s, sok := c.(string); sok {
				certStrings = append(certStrings, s)
			}
		}
		updates = append(updates, fmt.Sprintf("offered_certifications = $%d", argIndex))
		args = append(args, certStrings)
		argIndex++
	}

	if len(updates) == 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "No valid fields to update")
	}

	query := `UPDATE proposals SET ` + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", argIndex) + strings.Join(proposalColumns, ", ")
	args = append(args, proposalId)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	proposals, err := scanProposals(rows)
	if err != nil {
		return nil, err
	}
	if len(proposals) == 0 {
		return nil, fmt.Errorf("proposal %s not found", proposalId)
	}
	return &proposals[0], nil
}

// SetDispatchDetails переводит предложение в Out for Delivery и сохраняет данные об отправке.
func (r *PostgresProposalRepository) SetDispatchDetails(ctx context.Context, proposalId string, dispatch models.DispatchRequest) (*models.Proposal, error) {
	query := `UPDATE proposals
	          SET status = $1, delivery_person = $2, delivery_phone = $3, scheduled_delivery_at = $4
	          WHERE id = $5
	          RETURNING ` + strings.Join(proposalColumns, ", ")

	rows, err := r.DB.Query(ctx, query,
		models.OutForDeliveryProposal,
		dispatch.DeliveryPerson,
		dispatch.DeliveryPhone,
		dispatch.ScheduledDeliveryAt.UTC(),
		proposalId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	proposals, err := scanProposals(rows)
	if err != nil {
		return nil, err
	}
	if len(proposals) == 0 {
		return nil, fmt.Errorf("proposal %s not found", proposalId)
	}
	return &proposals[0], nil
}

// GetOverdueDeliveries возвращает просроченные поставки в статусе Out for Delivery.
func (r *PostgresProposalRepository) GetOverdueDeliveries(ctx context.Context, now time.Time) ([]models.Proposal, error) {
	query := `SELECT ` + strings.Join(proposalColumns, ", ") + `
              FROM proposals
              WHERE status = $1 AND scheduled_delivery_at IS NOT NULL AND scheduled_delivery_at < $2
              ORDER BY scheduled_delivery_at`

	rows, err := r.DB.Query(ctx, query, models.OutForDeliveryProposal, now.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProposals(rows)
}

func scanProposals(rows pgx.Rows) ([]models.Proposal, error) {
	var proposals []models.Proposal
	for rows.Next() {
		var p models.Proposal
		if err := rows.Scan(
			&p.ID,
			&p.SubmittedBy,
			&p.Company,
			&p.Category,
			&p.Brand,
			&p.Item,
			&p.Measurement,
			&p.Quantity,
			&p.QuantityUnit,
			&p.Rate,
			&p.Phone,
			&p.Address,
			&p.Status,
			&p.OfferedQuality,
			&p.OfferedCertifications,
			&p.DeliveryPerson,
			&p.DeliveryPhone,
			&p.ScheduledDeliveryAt,
			&p.CreatedAt); err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, nil
}
