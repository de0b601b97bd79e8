package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/grafbee/procurement-service/internal/models"
	"github.com/grafbee/procurement-service/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DeliveryReminder - фоновая задача, напоминающая объекту о поставках,
// которые уже должны были прибыть, но всё ещё числятся в пути.
type DeliveryReminder struct {
	Proposals     repository.ProposalRepository
	Notifications *NotificationService
	Log           zerolog.Logger
	running       int32
}

// NewDeliveryReminder создаёт новый экземпляр DeliveryReminder.
func NewDeliveryReminder(proposals repository.ProposalRepository, notifications *NotificationService, log zerolog.Logger) *DeliveryReminder {
	return &DeliveryReminder{Proposals: proposals, Notifications: notifications, Log: log}
}

// Start регистрирует задачу по cron-выражению и запускает планировщик.
func (r *DeliveryReminder) Start(cronExpr string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(cronExpr, r.Run); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

// Run выполняет один проход: находит просроченные поставки и рассылает
// напоминания объекту. Если предыдущий проход ещё не завершился, новый
// пропускается.
func (r *DeliveryReminder) Run() {
	if !atomic.CompareAndSwapInt32(&r.running, 0, 1) {
		r.Log.Warn().Msg("previous delivery reminder run still in progress, skipping")
		return
	}
	defer atomic.StoreInt32(&r.running, 0)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	overdue, err := r.Proposals.GetOverdueDeliveries(ctx, time.Now().UTC())
	if err != nil {
		r.Log.Error().Err(err).Msg("failed to load overdue deliveries")
		return
	}

	for _, proposal := range overdue {
		if err := r.Notifications.Notify(ctx, models.AllSite, overdueDeliveryMessage(proposal)); err != nil {
			r.Log.Error().Err(err).Str("proposal_id", proposal.ID).Msg("failed to send delivery reminder")
			continue
		}
	}
	r.Log.Info().Int("overdue", len(overdue)).Msg("delivery reminder run finished")
}

// overdueDeliveryMessage строит текст напоминания о просроченной поставке.
func overdueDeliveryMessage(proposal models.Proposal) string {
	scheduled := "unknown time"
	if proposal.ScheduledDeliveryAt != nil {
		scheduled = proposal.ScheduledDeliveryAt.Format(deliveryTimeLayout)
	}
	return fmt.Sprintf("REMINDER: '%s' from %s was scheduled for %s and is still out for delivery.", proposal.Item, proposal.Company, scheduled)
}
