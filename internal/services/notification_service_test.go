package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/grafbee/procurement-service/internal/models"

	"github.com/stretchr/testify/require"
)

func TestNotify_FansOutToRoleMembers(t *testing.T) {
	tests := map[string]struct {
		target models.NotificationTarget
		want   []string
	}{
		"procurement group": {target: models.AllProcurement, want: []string{"procurement_admin", "buyer"}},
		"site group":        {target: models.AllSite, want: []string{"site_manager"}},
		"direct username":   {target: "alpha", want: []string{"alpha"}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			repo := &fakeNotificationRepo{usersByRole: map[models.UserRole][]string{
				models.ProcurementRole: {"procurement_admin", "buyer"},
				models.SiteRole:        {"site_manager"},
			}}
			service := NewNotificationService(repo, nil)

			err := service.Notify(context.Background(), tt.target, "New proposal from Alpha Traders.")
			require.NoError(t, err)

			require.Len(t, repo.inserted, len(tt.want))
			for i, username := range tt.want {
				require.Equal(t, username, repo.inserted[i].username)
				require.Equal(t, "New proposal from Alpha Traders.", repo.inserted[i].message)
			}
		})
	}
}

func TestNotify_RejectsEmptyMessage(t *testing.T) {
	service := NewNotificationService(&fakeNotificationRepo{}, nil)

	err := service.Notify(context.Background(), models.AllProcurement, "")
	requireStatusCode(t, err, http.StatusBadRequest)
}

func TestNotify_GroupWithoutMembersStoresNothing(t *testing.T) {
	repo := &fakeNotificationRepo{}
	service := NewNotificationService(repo, nil)

	err := service.Notify(context.Background(), models.AllSite, "DELIVERED: 'OPC 53 Cement' from Alpha Traders.")
	require.NoError(t, err)
	require.Empty(t, repo.inserted)
}
