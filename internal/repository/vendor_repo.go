package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/grafbee/procurement-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// VendorRepository - интерфейс для работы с поставщиками и их документами.
type VendorRepository interface {
	CreateVendor(ctx context.Context, vendorReq models.VendorRequest) (*models.VendorProfile, error)
	GetVendorProfile(ctx context.Context, username string) (*models.VendorProfile, error)
	SubmitDocument(ctx context.Context, vendor, docType string) (*models.VendorDocument, error)
	VerifyDocument(ctx context.Context, vendor, docType string) (*models.VendorDocument, error)
	GetDocumentsByVendor(ctx context.Context, vendor string) ([]models.VendorDocument, error)
	GetDocumentsForVendors(ctx context.Context, vendors []string) ([]models.VendorDocument, error)
}

// PostgresVendorRepository - реализация VendorRepository для базы данных.
type PostgresVendorRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresVendorRepository создаёт новый экземпляр PostgresVendorRepository.
func NewPostgresVendorRepository(db *pgxpool.Pool) *PostgresVendorRepository {
	return &PostgresVendorRepository{DB: db}
}

// CreateVendor регистрирует пользователя с ролью Vendor и его профиль.
func (r *PostgresVendorRepository) CreateVendor(ctx context.Context, vendorReq models.VendorRequest) (*models.VendorProfile, error) {
	now := time.Now().UTC()

	_, err := r.DB.Exec(ctx, `INSERT INTO users (username, role, created_at) VALUES ($1, $2, $3)`,
		vendorReq.Username, models.VendorRole, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	newProfile := models.VendorProfile{
		Username:            vendorReq.Username,
		YearOfEstablishment: vendorReq.YearOfEstablishment,
		OwnershipType:       vendorReq.OwnershipType,
		CreatedAt:           now,
	}
	_, err = r.DB.Exec(ctx, `
       INSERT INTO vendor_profiles (vendor_username, year_of_establishment, ownership_type, created_at)
       VALUES ($1, $2, $3, $4)
   `,
		newProfile.Username,
		newProfile.YearOfEstablishment,
		newProfile.OwnershipType,
		newProfile.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert vendor profile: %w", err)
	}
	return &newProfile, nil
}

// GetVendorProfile возвращает профиль поставщика.
func (r *PostgresVendorRepository) GetVendorProfile(ctx context.Context, username string) (*models.VendorProfile, error) {
	var profile models.VendorProfile
	query := `SELECT vendor_username, year_of_establishment, ownership_type, created_at
              FROM vendor_profiles WHERE vendor_username = $1`
	err := r.DB.QueryRow(ctx, query, username).Scan(
		&profile.Username,
		&profile.YearOfEstablishment,
		&profile.OwnershipType,
		&profile.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// SubmitDocument сохраняет документ поставщика в статусе Submitted.
// Повторная отправка того же типа документа сбрасывает его статус.
func (r *PostgresVendorRepository) SubmitDocument(ctx context.Context, vendor, docType string) (*models.VendorDocument, error) {
	doc := models.VendorDocument{
		ID:        uuid.New().String(),
		Vendor:    vendor,
		DocType:   docType,
		Status:    models.SubmittedDocument,
		UpdatedAt: time.Now().UTC(),
	}
	query := `INSERT INTO vendor_documents (id, vendor_username, doc_type, status, updated_at)
              VALUES ($1, $2, $3, $4, $5)
              ON CONFLICT (vendor_username, doc_type)
              DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
              RETURNING id`
	err := r.DB.QueryRow(ctx, query, doc.ID, doc.Vendor, doc.DocType, doc.Status, doc.UpdatedAt).Scan(&doc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert vendor document: %w", err)
	}
	return &doc, nil
}

// VerifyDocument помечает документ поставщика подтверждённым.
func (r *PostgresVendorRepository) VerifyDocument(ctx context.Context, vendor, docType string) (*models.VendorDocument, error) {
	var doc models.VendorDocument
	query := `UPDATE vendor_documents SET status = $1, updated_at = $2
              WHERE vendor_username = $3 AND doc_type = $4
              RETURNING id, vendor_username, doc_type, status, updated_at`
	err := r.DB.QueryRow(ctx, query, models.VerifiedDocument, time.Now().UTC(), vendor, docType).Scan(
		&doc.ID,
		&doc.Vendor,
		&doc.DocType,
		&doc.Status,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetDocumentsByVendor возвращает документы одного поставщика.
func (r *PostgresVendorRepository) GetDocumentsByVendor(ctx context.Context, vendor string) ([]models.VendorDocument, error) {
	query := `SELECT id, vendor_username, doc_type, status, updated_at
              FROM vendor_documents WHERE vendor_username = $1 ORDER BY doc_type`

	rows, err := r.DB.Query(ctx, query, vendor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []models.VendorDocument
	for rows.Next() {
		var doc models.VendorDocument
		if err := rows.Scan(
			&doc.ID,
			&doc.Vendor,
			&doc.DocType,
			&doc.Status,
			&doc.UpdatedAt); err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}
	return documents, nil
}

// GetDocumentsForVendors возвращает документы указанных поставщиков для анализа.
func (r *PostgresVendorRepository) GetDocumentsForVendors(ctx context.Context, vendors []string) ([]models.VendorDocument, error) {
	if len(vendors) == 0 {
		return nil, nil
	}
	query := `SELECT id, vendor_username, doc_type, status, updated_at
              FROM vendor_documents WHERE vendor_username = ANY($1)`

	rows, err := r.DB.Query(ctx, query, pq.Array(vendors))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []models.VendorDocument
	for rows.Next() {
		var doc models.VendorDocument
		if err := rows.Scan(
			&doc.ID,
			&doc.Vendor,
			&doc.DocType,
			&doc.Status,
			&doc.UpdatedAt); err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}
	return documents, nil
}
