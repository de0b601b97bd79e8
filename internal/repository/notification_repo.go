package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/grafbee/procurement-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationRepository - интерфейс для работы с уведомлениями пользователей.
type NotificationRepository interface {
	InsertNotification(ctx context.Context, username, message string) (*models.Notification, error)
	GetUnreadByUser(ctx context.Context, username string) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, username string) (int64, error)
	GetUsersByRole(ctx context.Context, role models.UserRole) ([]string, error)
}

// PostgresNotificationRepository - реализация NotificationRepository для базы данных.
type PostgresNotificationRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresNotificationRepository создаёт новый экземпляр PostgresNotificationRepository.
func NewPostgresNotificationRepository(db *pgxpool.Pool) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{DB: db}
}

// InsertNotification создает непрочитанное уведомление для пользователя.
func (r *PostgresNotificationRepository) InsertNotification(ctx context.Context, username, message string) (*models.Notification, error) {
	newNotification := models.Notification{
		ID:        uuid.New().String(),
		Username:  username,
		Message:   message,
		IsRead:    false,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.DB.Exec(ctx, `
       INSERT INTO notifications (id, username, message, is_read, created_at)
       VALUES ($1, $2, $3, $4, $5)
   `,
		newNotification.ID,
		newNotification.Username,
		newNotification.Message,
		newNotification.IsRead,
		newNotification.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert notification: %w", err)
	}
	return &newNotification, nil
}

// GetUnreadByUser возвращает непрочитанные уведомления пользователя, новые первыми.
func (r *PostgresNotificationRepository) GetUnreadByUser(ctx context.Context, username string) ([]models.Notification, error) {
	query := `SELECT id, username, message, is_read, created_at
              FROM notifications WHERE username = $1 AND is_read = FALSE ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(
			&n.ID,
			&n.Username,
			&n.Message,
			&n.IsRead,
			&n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// MarkAllRead помечает все уведомления пользователя прочитанными.
func (r *PostgresNotificationRepository) MarkAllRead(ctx context.Context, username string) (int64, error) {
	tag, err := r.DB.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE username = $1 AND is_read = FALSE`, username)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// GetUsersByRole возвращает имена пользователей с указанной ролью.
func (r *PostgresNotificationRepository) GetUsersByRole(ctx context.Context, role models.UserRole) ([]string, error) {
	query := `SELECT username FROM users WHERE role = $1 ORDER BY username`

	rows, err := r.DB.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usernames []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, err
		}
		usernames = append(usernames, username)
	}
	return usernames, nil
}
