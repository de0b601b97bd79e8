package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/grafbee/procurement-service/internal/analysis"
	"github.com/grafbee/procurement-service/internal/models"
	"github.com/grafbee/procurement-service/internal/repository"
	"github.com/grafbee/procurement-service/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.openly.dev/pointy"
)

type VendorService struct {
	Repo          repository.VendorRepository
	Reviews       repository.ReviewRepository
	Notifications *NotificationService
	dbPool        *pgxpool.Pool
}

// NewVendorService создаёт новый экземпляр VendorService.
func NewVendorService(repo repository.VendorRepository, reviews repository.ReviewRepository, notifications *NotificationService, dbPool *pgxpool.Pool) *VendorService {
	return &VendorService{Repo: repo, Reviews: reviews, Notifications: notifications, dbPool: dbPool}
}

// RegisterVendor регистрирует нового поставщика и извещает отдел закупок.
func (s *VendorService) RegisterVendor(ctx context.Context, vendorReq models.VendorRequest) (*models.VendorProfile, error) {
	if vendorReq.Username == "" || vendorReq.OwnershipType == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields")
	}

	if vendorReq.YearOfEstablishment < 1800 || vendorReq.YearOfEstablishment > time.Now().UTC().Year() {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid year of establishment")
	}

	if !utils.ContainsString(models.OwnershipTypes, vendorReq.OwnershipType) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid ownership type")
	}

	userExists, err := utils.CheckUserExists(ctx, s.dbPool, vendorReq.Username)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if userExists {
		return nil, models.NewErrorResponsef(http.StatusBadRequest, "username %s is already taken", vendorReq.Username)
	}

	profile, err := s.Repo.CreateVendor(ctx, vendorReq)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to register vendor")
	}

	message := fmt.Sprintf("New vendor '%s' has registered.", profile.Username)
	if err := s.Notifications.Notify(ctx, models.AllProcurement, message); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetVendorRating возвращает средний рейтинг поставщика по отзывам о поставках.
// Если отзывов нет, средний рейтинг отсутствует.
func (s *VendorService) GetVendorRating(ctx context.Context, vendor string) (*models.VendorRatingResponse, error) {
	vendorExists, err := utils.CheckVendorExists(ctx, s.dbPool, vendor)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !vendorExists {
		return nil, models.NewErrorResponse(http.StatusNotFound, "vendor not found")
	}

	avgRating, reviewCount, err := s.Reviews.GetVendorReviewStats(ctx, vendor)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to load vendor reviews")
	}

	response := &models.VendorRatingResponse{Vendor: vendor, ReviewCount: reviewCount}
	if reviewCount > 0 {
		response.AverageRating = pointy.Float64(avgRating)
	}
	return response, nil
}

// SubmitDocument регистрирует документ поставщика, ожидающий проверки.
// Повторная подача сбрасывает ранее подтверждённый документ в Submitted.
func (s *VendorService) SubmitDocument(ctx context.Context, vendor, docType string) (*models.VendorDocument, error) {
	if docType == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "document type is required")
	}

	if !utils.ContainsString(models.RequiredVendorDocuments, docType) {
		return nil, models.NewErrorResponsef(http.StatusBadRequest, "unknown document type %s", docType)
	}

	vendorExists, err := utils.CheckVendorExists(ctx, s.dbPool, vendor)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !vendorExists {
		return nil, models.NewErrorResponse(http.StatusNotFound, "vendor not found")
	}

	document, err := s.Repo.SubmitDocument(ctx, vendor, docType)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to submit document")
	}

	message := fmt.Sprintf("DOCUMENT: '%s' submitted by %s for verification.", docType, vendor)
	if err := s.Notifications.Notify(ctx, models.AllProcurement, message); err != nil {
		return nil, err
	}
	return document, nil
}

// VerifyDocument подтверждает ранее поданный документ поставщика.
func (s *VendorService) VerifyDocument(ctx context.Context, vendor, docType string) (*models.VendorDocument, error) {
	if docType == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "document type is required")
	}

	vendorExists, err := utils.CheckVendorExists(ctx, s.dbPool, vendor)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !vendorExists {
		return nil, models.NewErrorResponse(http.StatusNotFound, "vendor not found")
	}

	document, err := s.Repo.VerifyDocument(ctx, vendor, docType)
	if err != nil {
		return nil, models.NewErrorResponsef(http.StatusNotFound, "document %s is not submitted by %s", docType, vendor)
	}

	message := fmt.Sprintf("Your document '%s' has been verified.", docType)
	if err := s.Notifications.Notify(ctx, models.NotificationTarget(vendor), message); err != nil {
		return nil, err
	}
	return document, nil
}

// GetVendorDocuments возвращает документы поставщика вместе с документальным
// баллом: доля подтверждённых документов из обязательного набора.
func (s *VendorService) GetVendorDocuments(ctx context.Context, vendor string) (*models.VendorDocumentsResponse, error) {
	vendorExists, err := utils.CheckVendorExists(ctx, s.dbPool, vendor)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !vendorExists {
		return nil, models.NewErrorResponse(http.StatusNotFound, "vendor not found")
	}

	documents, err := s.Repo.GetDocumentsByVendor(ctx, vendor)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to load vendor documents")
	}

	scores := analysis.DocumentScores(documents, models.RequiredVendorDocuments)
	return &models.VendorDocumentsResponse{
		Vendor:        vendor,
		Documents:     documents,
		DocumentScore: scores[vendor],
	}, nil
}
