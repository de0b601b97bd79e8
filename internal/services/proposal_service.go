package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/grafbee/procurement-service/internal/events"
	"github.com/grafbee/procurement-service/internal/metrics"
	"github.com/grafbee/procurement-service/internal/models"
	"github.com/grafbee/procurement-service/internal/repository"
	"github.com/grafbee/procurement-service/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

// deliveryTimeLayout - формат времени поставки в текстах уведомлений.
const deliveryTimeLayout = "2006-01-02 15:04"

type ProposalService struct {
	Repo             repository.ProposalRepository
	Reviews          repository.ReviewRepository
	Notifications    *NotificationService
	Events           events.Publisher
	ProcurementEmail string
	dbPool           *pgxpool.Pool
}

// NewProposalService создает новый экземпляр ProposalService.
func NewProposalService(repo repository.ProposalRepository, reviews repository.ReviewRepository, notifications *NotificationService, publisher events.Publisher, procurementEmail string, dbPool *pgxpool.Pool) *ProposalService {
	return &ProposalService{
		Repo:             repo,
		Reviews:          reviews,
		Notifications:    notifications,
		Events:           publisher,
		ProcurementEmail: procurementEmail,
		dbPool:           dbPool,
	}
}

// CreateProposal создает новое предложение поставщика и извещает отдел закупок.
func (s *ProposalService) CreateProposal(ctx context.Context, proposalReq models.ProposalRequest) (*models.Proposal, error) {
	if proposalReq.SubmittedBy == "" || proposalReq.Company == "" || proposalReq.Category == "" ||
		proposalReq.Brand == "" || proposalReq.Item == "" || proposalReq.Address == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields")
	}

	if !proposalReq.Quantity.IsPositive() {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "quantity must be positive")
	}

	if !proposalReq.Rate.IsPositive() {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "rate must be positive")
	}

	if !utils.IsValidPhone(proposalReq.Phone) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "phone must contain exactly 10 digits")
	}

	if !utils.ContainsString(models.QualityLevels, proposalReq.OfferedQuality) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid offered quality")
	}

	// Для известных категорий бренд, типоразмер и сертификаты сверяются с каталогом.
	if spec, ok := models.LookupCategory(proposalReq.Category); ok {
		if !utils.ContainsString(spec.Brands, proposalReq.Brand) {
			return nil, models.NewErrorResponsef(http.StatusBadRequest, "brand %s is not available for category %s", proposalReq.Brand, proposalReq.Category)
		}
		if len(spec.Measurements) > 0 && !utils.ContainsString(spec.Measurements, proposalReq.Measurement) {
			return nil, models.NewErrorResponsef(http.StatusBadRequest, "measurement %s is not available for category %s", proposalReq.Measurement, proposalReq.Category)
		}
		for _, certification := range proposalReq.OfferedCertifications {
			if !utils.ContainsString(spec.Certifications, certification) {
				return nil, models.NewErrorResponsef(http.StatusBadRequest, "certification %s is not applicable to category %s", certification, proposalReq.Category)
			}
		}
		proposalReq.QuantityUnit = spec.QuantityUnit
	} else if proposalReq.QuantityUnit == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "quantity unit is required for custom categories")
	}

	vendorExists, err := utils.CheckVendorExists(ctx, s.dbPool, proposalReq.SubmittedBy)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !vendorExists {
		return nil, models.NewErrorResponsef(http.StatusUnauthorized, "vendor %s is not registered", proposalReq.SubmittedBy)
	}

	proposal, err := s.Repo.CreateProposal(ctx, proposalReq)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to create proposal")
	}

	message := fmt.Sprintf("New proposal from %s.", proposal.Company)
	if err := s.Notifications.Notify(ctx, models.AllProcurement, message); err != nil {
		return nil, err
	}
	return proposal, nil
}

// GetProposals получает список предложений с фильтрацией по категории, статусу и поставщику.
func (s *ProposalService) GetProposals(ctx context.Context, limitStr, offsetStr, category, status, submittedBy string) ([]models.Proposal, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid limit or offset")
	}

	if status != "" {
		if _, ok := models.AllowedProposalTransitions[models.ProposalStatus(status)]; !ok {
			return nil, models.NewErrorResponsef(http.StatusBadRequest, "unknown proposal status %s", status)
		}
	}
	return s.Repo.GetProposals(ctx, limit, offset, category, status, submittedBy)
}

// GetUserProposals получает список предложений поставщика.
func (s *ProposalService) GetUserProposals(ctx context.Context, limitStr, offsetStr, username string) ([]models.Proposal, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid limit or offset")
	}

	if username == "" {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "username is required")
	}

	userExists, err := utils.CheckUserExists(ctx, s.dbPool, username)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !userExists {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "user does not exist")
	}
	return s.Repo.GetUserProposals(ctx, limit, offset, username)
}

// GetProposalStatus получает статус предложения.
func (s *ProposalService) GetProposalStatus(ctx context.Context, proposalId string) (models.ProposalStatus, error) {
	proposalExists, err := utils.CheckProposalExists(ctx, s.dbPool, proposalId)
	if err != nil {
		return "", models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !proposalExists {
		return "", models.NewErrorResponse(http.StatusNotFound, "proposal not found")
	}
	return s.Repo.GetProposalStatus(ctx, proposalId)
}

// EditProposal обновляет поля предложения. Правка разрешена только до начала
// рассмотрения, пока предложение находится в статусе Pending. Последняя запись
// побеждает: версии правок не хранятся.
func (s *ProposalService) EditProposal(ctx context.Context, proposalId string, updateFields map[string]interface{}) (*models.Proposal, error) {
	proposal, err := utils.GetProposalById(ctx, s.dbPool, proposalId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "proposal not found")
	}

	if proposal.Status != models.PendingProposal {
		return nil, models.NewErrorResponsef(http.StatusBadRequest, "proposal in status %s can no longer be edited", proposal.Status)
	}

	if phone, ok := updateFields["phone"].(string); ok && !utils.IsValidPhone(phone) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "phone must contain exactly 10 digits")
	}

	if quantity, ok := updateFields["quantity"].(float64); ok && quantity <= 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "quantity must be positive")
	}

	if rate, ok := updateFields["rate"].(float64); ok && rate <= 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "rate must be positive")
	}

	if quality, ok := updateFields["offeredQuality"].(string); ok && !utils.ContainsString(models.QualityLevels, quality) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid offered quality")
	}

	return s.Repo.EditProposal(ctx, proposalId, updateFields)
}

// decisionTransition вычисляет следующий статус предложения по решению отдела
// закупок. Этап согласования определяется текущим статусом: одобрение из
// Pending запрашивает сертификаты, одобрение из Certificates Submitted
// принимает предложение окончательно. Отклонение допустимо на любом этапе
// рассмотрения.
func decisionTransition(current models.ProposalStatus, decision models.ProposalDecision) (models.ProposalStatus, error) {
	switch decision {
	case models.ApprovedDecision:
		switch current {
		case models.PendingProposal:
			return models.AwaitingCertsProposal, nil
		case models.CertsSubmittedProposal:
			return models.AcceptedProposal, nil
		}
	case models.RejectedDecision:
		switch current {
		case models.PendingProposal, models.AwaitingCertsProposal, models.CertsSubmittedProposal:
			return models.RejectedProposal, nil
		}
	default:
		return "", models.NewErrorResponse(http.StatusBadRequest, "invalid decision. Must be 'Approved' or 'Rejected'")
	}
	return "", models.NewErrorResponsef(http.StatusBadRequest, "decision %s is not allowed for proposal in status %s", decision, current)
}

// SubmitDecision применяет решение отдела закупок к предложению.
func (s *ProposalService) SubmitDecision(ctx context.Context, proposalId, username string, decision models.ProposalDecision) (*models.Proposal, error) {
	proposal, err := utils.GetProposalById(ctx, s.dbPool, proposalId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "proposal not found")
	}

	next, err := decisionTransition(proposal.Status, decision)
	if err != nil {
		return nil, err
	}

	updated, err := s.applyTransition(ctx, proposal, next, username)
	if err != nil {
		return nil, err
	}

	switch {
	case next == models.AwaitingCertsProposal:
		message := fmt.Sprintf("ACTION: Your proposal for '%s' is provisionally accepted. Please email certificates to %s.", proposal.Item, s.ProcurementEmail)
		err = s.Notifications.Notify(ctx, models.NotificationTarget(proposal.SubmittedBy), message)
	case next == models.AcceptedProposal:
		message := fmt.Sprintf("Your proposal for '%s' has been ACCEPTED.", proposal.Item)
		if err = s.Notifications.Notify(ctx, models.NotificationTarget(proposal.SubmittedBy), message); err == nil {
			message = fmt.Sprintf("Approved: '%s' from %s.", proposal.Item, proposal.Company)
			err = s.Notifications.Notify(ctx, models.AllSite, message)
		}
	case proposal.Status == models.CertsSubmittedProposal && next == models.RejectedProposal:
		message := fmt.Sprintf("Your proposal for '%s' was rejected after review.", proposal.Item)
		err = s.Notifications.Notify(ctx, models.NotificationTarget(proposal.SubmittedBy), message)
	default:
		message := fmt.Sprintf("Your proposal for '%s' has been rejected.", proposal.Item)
		err = s.Notifications.Notify(ctx, models.NotificationTarget(proposal.SubmittedBy), message)
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ConfirmCertificates отмечает, что поставщик отправил сертификаты на проверку.
func (s *ProposalService) ConfirmCertificates(ctx context.Context, proposalId, username string) (*models.Proposal, error) {
	proposal, err := utils.GetProposalById(ctx, s.dbPool, proposalId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "proposal not found")
	}

	updated, err := s.applyTransition(ctx, proposal, models.CertsSubmittedProposal, username)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Certificates have been submitted via email for '%s' from %s.", proposal.Item, proposal.Company)
	if err := s.Notifications.Notify(ctx, models.AllProcurement, message); err != nil {
		return nil, err
	}
	return updated, nil
}

// DispatchProposal сохраняет данные об отправке и переводит поставку в путь.
func (s *ProposalService) DispatchProposal(ctx context.Context, proposalId, username string, dispatch models.DispatchRequest) (*models.Proposal, error) {
	if dispatch.DeliveryPerson == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "delivery person is required")
	}

	if !utils.IsValidPhone(dispatch.DeliveryPhone) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "delivery phone must contain exactly 10 digits")
	}

	if dispatch.ScheduledDeliveryAt.IsZero() {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "scheduled delivery time is missing")
	}

	proposal, err := utils.GetProposalById(ctx, s.dbPool, proposalId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "proposal not found")
	}

	validTransition := models.AllowedProposalTransitions[proposal.Status]
	if !utils.ContainsProposalStatus(validTransition, models.OutForDeliveryProposal) {
		return nil, models.NewErrorResponsef(http.StatusBadRequest, "proposal in status %s cannot be dispatched", proposal.Status)
	}

	updated, err := s.Repo.SetDispatchDetails(ctx, proposalId, dispatch)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to save dispatch details")
	}
	s.recordTransition(proposal, models.OutForDeliveryProposal, username)

	message := fmt.Sprintf("DISPATCHED: '%s' from %s.", proposal.Item, proposal.Company)
	if err := s.Notifications.Notify(ctx, models.AllProcurement, message); err != nil {
		return nil, err
	}

	message = fmt.Sprintf("DELIVERY: '%s' from %s scheduled for %s.", proposal.Item, proposal.Company, dispatch.ScheduledDeliveryAt.Format(deliveryTimeLayout))
	if err := s.Notifications.Notify(ctx, models.AllSite, message); err != nil {
		return nil, err
	}
	return updated, nil
}

// ConfirmReceipt отмечает, что объект получил поставку.
func (s *ProposalService) ConfirmReceipt(ctx context.Context, proposalId, username string) (*models.Proposal, error) {
	proposal, err := utils.GetProposalById(ctx, s.dbPool, proposalId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "proposal not found")
	}

	updated, err := s.applyTransition(ctx, proposal, models.DeliveredProposal, username)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Delivery of '%s' was received.", proposal.Item)
	if err := s.Notifications.Notify(ctx, models.NotificationTarget(proposal.SubmittedBy), message); err != nil {
		return nil, err
	}

	message = fmt.Sprintf("DELIVERED: '%s' from %s.", proposal.Item, proposal.Company)
	if err := s.Notifications.Notify(ctx, models.AllProcurement, message); err != nil {
		return nil, err
	}
	return updated, nil
}

// SubmitReview сохраняет отзыв объекта о полученной поставке и закрывает её.
func (s *ProposalService) SubmitReview(ctx context.Context, proposalId string, reviewReq models.ReviewRequest) (*models.Review, error) {
	if reviewReq.ReviewedBy == "" {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "username is required")
	}

	if reviewReq.Rating < 1 || reviewReq.Rating > 5 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	userExists, err := utils.CheckUserExists(ctx, s.dbPool, reviewReq.ReviewedBy)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !userExists {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "user does not exist")
	}

	proposal, err := utils.GetProposalById(ctx, s.dbPool, proposalId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "proposal not found")
	}

	if proposal.Status != models.DeliveredProposal {
		return nil, models.NewErrorResponsef(http.StatusBadRequest, "proposal in status %s cannot be reviewed", proposal.Status)
	}

	review, err := s.Reviews.CreateReview(ctx, proposalId, reviewReq)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to create review")
	}

	if _, err := s.applyTransition(ctx, proposal, models.ReviewedProposal, reviewReq.ReviewedBy); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("REVIEW: A %d-star review for '%s' from %s.", review.Rating, proposal.Item, proposal.Company)
	if err := s.Notifications.Notify(ctx, models.AllProcurement, message); err != nil {
		return nil, err
	}
	return review, nil
}

// GetProposalReviews получает отзывы о поставке по предложению.
func (s *ProposalService) GetProposalReviews(ctx context.Context, proposalId string) ([]models.Review, error) {
	proposalExists, err := utils.CheckProposalExists(ctx, s.dbPool, proposalId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !proposalExists {
		return nil, models.NewErrorResponse(http.StatusNotFound, "proposal not found")
	}
	return s.Reviews.GetReviewsByProposal(ctx, proposalId)
}

// applyTransition проверяет допустимость перехода, обновляет статус и
// публикует событие о смене статуса.
func (s *ProposalService) applyTransition(ctx context.Context, proposal *models.Proposal, next models.ProposalStatus, actor string) (*models.Proposal, error) {
	validTransition := models.AllowedProposalTransitions[proposal.Status]
	if !utils.ContainsProposalStatus(validTransition, next) {
		return nil, models.NewErrorResponsef(http.StatusBadRequest, "invalid status transition from %s to %s", proposal.Status, next)
	}

	updated, err := s.Repo.UpdateProposalStatus(ctx, proposal.ID, next)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to update proposal status")
	}
	s.recordTransition(proposal, next, actor)
	return updated, nil
}

func (s *ProposalService) recordTransition(proposal *models.Proposal, next models.ProposalStatus, actor string) {
	metrics.CollectStatusTransition(string(proposal.Status), string(next))
	s.Events.PublishStatusChanged(events.StatusChanged{
		ProposalID: proposal.ID,
		Item:       proposal.Item,
		Company:    proposal.Company,
		From:       string(proposal.Status),
		To:         string(next),
		Actor:      actor,
		At:         time.Now().UTC(),
	})
}
