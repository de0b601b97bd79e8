package models

import "time"

// NotificationTarget - адресат уведомления: имя пользователя или групповая цель.
type NotificationTarget string

const (
	AllProcurement NotificationTarget = "ALL_PROCUREMENT" // Все пользователи отдела закупок
	AllSite        NotificationTarget = "ALL_SITE"        // Все пользователи строительного объекта
)

// Notification представляет модель уведомления пользователя.
type Notification struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}
