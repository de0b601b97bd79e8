package services

import (
	"testing"
	"time"

	"github.com/grafbee/procurement-service/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.openly.dev/pointy"
)

func TestDeliveryReminder_NotifiesEverySiteUser(t *testing.T) {
	scheduled := time.Date(2026, time.August, 20, 9, 0, 0, 0, time.UTC)
	proposals := &fakeProposalRepo{overdue: []models.Proposal{
		{
			ID:                  "p1",
			SubmittedBy:         "alpha",
			Company:             "Alpha Traders",
			Item:                "OPC 53 Cement",
			Status:              models.OutForDeliveryProposal,
			ScheduledDeliveryAt: &scheduled,
		},
	}}
	notificationRepo := &fakeNotificationRepo{usersByRole: map[models.UserRole][]string{
		models.SiteRole: {"site_manager", "site_engineer"},
	}}
	reminder := NewDeliveryReminder(proposals, NewNotificationService(notificationRepo, nil), zerolog.Nop())

	reminder.Run()

	require.Len(t, notificationRepo.inserted, 2)
	for i, username := range []string{"site_manager", "site_engineer"} {
		require.Equal(t, username, notificationRepo.inserted[i].username)
		require.Equal(t, "REMINDER: 'OPC 53 Cement' from Alpha Traders was scheduled for 2026-08-20 09:00 and is still out for delivery.", notificationRepo.inserted[i].message)
	}
}

func TestDeliveryReminder_SkipsOverlappingRun(t *testing.T) {
	notificationRepo := &fakeNotificationRepo{usersByRole: map[models.UserRole][]string{
		models.SiteRole: {"site_manager"},
	}}
	scheduled := time.Date(2026, time.August, 20, 9, 0, 0, 0, time.UTC)
	proposals := &fakeProposalRepo{overdue: []models.Proposal{
		{ID: "p1", Item: "OPC 53 Cement", Company: "Alpha Traders", ScheduledDeliveryAt: &scheduled},
	}}
	reminder := NewDeliveryReminder(proposals, NewNotificationService(notificationRepo, nil), zerolog.Nop())
	reminder.running = 1

	reminder.Run()
	require.Empty(t, notificationRepo.inserted)
}

func TestOverdueDeliveryMessage(t *testing.T) {
	tests := map[string]struct {
		proposal models.Proposal
		want     string
	}{
		"with scheduled time": {
			proposal: models.Proposal{
				Item:                "12mm TMT Bars",
				Company:             "Beta Steels",
				DeliveryPerson:      pointy.String("Ravi"),
				ScheduledDeliveryAt: pointy.Pointer(time.Date(2026, time.July, 1, 14, 30, 0, 0, time.UTC)),
			},
			want: "REMINDER: '12mm TMT Bars' from Beta Steels was scheduled for 2026-07-01 14:30 and is still out for delivery.",
		},
		"without scheduled time": {
			proposal: models.Proposal{Item: "12mm TMT Bars", Company: "Beta Steels"},
			want:     "REMINDER: '12mm TMT Bars' from Beta Steels was scheduled for unknown time and is still out for delivery.",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tt.want, overdueDeliveryMessage(tt.proposal))
		})
	}
}
