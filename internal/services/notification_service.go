package services

import (
	"context"
	"net/http"

	"github.com/grafbee/procurement-service/internal/metrics"
	"github.com/grafbee/procurement-service/internal/models"
	"github.com/grafbee/procurement-service/internal/repository"
	"github.com/grafbee/procurement-service/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationService struct {
	Repo   repository.NotificationRepository
	dbPool *pgxpool.Pool
}

// NewNotificationService создаёт новый экземпляр NotificationService.
func NewNotificationService(repo repository.NotificationRepository, dbPool *pgxpool.Pool) *NotificationService {
	return &NotificationService{Repo: repo, dbPool: dbPool}
}

// Notify сохраняет уведомление для пользователя или группы пользователей.
// Цели ALL_PROCUREMENT и ALL_SITE разворачиваются в отдельное уведомление
// каждому пользователю с соответствующей ролью.
func (s *NotificationService) Notify(ctx context.Context, target models.NotificationTarget, message string) error {
	if message == "" {
		return models.NewErrorResponse(http.StatusBadRequest, "notification message is empty")
	}

	var usernames []string
	switch target {
	case models.AllProcurement:
		names, err := s.Repo.GetUsersByRole(ctx, models.ProcurementRole)
		if err != nil {
			return models.NewErrorResponse(http.StatusInternalServerError, "failed to resolve procurement users")
		}
		usernames = names
	case models.AllSite:
		names, err := s.Repo.GetUsersByRole(ctx, models.SiteRole)
		if err != nil {
			return models.NewErrorResponse(http.StatusInternalServerError, "failed to resolve site users")
		}
		usernames = names
	default:
		usernames = []string{string(target)}
	}

	for _, username := range usernames {
		if _, err := s.Repo.InsertNotification(ctx, username, message); err != nil {
			return models.NewErrorResponse(http.StatusInternalServerError, "failed to store notification")
		}
		metrics.CollectNotification()
	}
	return nil
}

// GetUnread получает непрочитанные уведомления пользователя.
func (s *NotificationService) GetUnread(ctx context.Context, username string) ([]models.Notification, error) {
	if username == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "username is required")
	}

	userExists, err := utils.CheckUserExists(ctx, s.dbPool, username)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !userExists {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "user does not exist")
	}
	return s.Repo.GetUnreadByUser(ctx, username)
}

// MarkAllRead помечает все уведомления пользователя прочитанными
// и возвращает количество затронутых записей.
func (s *NotificationService) MarkAllRead(ctx context.Context, username string) (int64, error) {
	if username == "" {
		return 0, models.NewErrorResponse(http.StatusBadRequest, "username is required")
	}

	userExists, err := utils.CheckUserExists(ctx, s.dbPool, username)
	if err != nil {
		return 0, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !userExists {
		return 0, models.NewErrorResponse(http.StatusUnauthorized, "user does not exist")
	}

	affected, err := s.Repo.MarkAllRead(ctx, username)
	if err != nil {
		return 0, models.NewErrorResponse(http.StatusInternalServerError, "failed to mark notifications as read")
	}
	return affected, nil
}
