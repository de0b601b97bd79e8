package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/grafbee/procurement-service/internal/events"
	"github.com/grafbee/procurement-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDecisionTransition(t *testing.T) {
	tests := map[string]struct {
		current  models.ProposalStatus
		decision models.ProposalDecision
		want     models.ProposalStatus
		wantErr  bool
	}{
		"approving pending proposal requests certificates": {
			current:  models.PendingProposal,
			decision: models.ApprovedDecision,
			want:     models.AwaitingCertsProposal,
		},
		"approving submitted certificates accepts proposal": {
			current:  models.CertsSubmittedProposal,
			decision: models.ApprovedDecision,
			want:     models.AcceptedProposal,
		},
		"rejecting pending proposal": {
			current:  models.PendingProposal,
			decision: models.RejectedDecision,
			want:     models.RejectedProposal,
		},
		"rejecting while awaiting certificates": {
			current:  models.AwaitingCertsProposal,
			decision: models.RejectedDecision,
			want:     models.RejectedProposal,
		},
		"rejecting submitted certificates": {
			current:  models.CertsSubmittedProposal,
			decision: models.RejectedDecision,
			want:     models.RejectedProposal,
		},
		"approving while awaiting certificates is premature": {
			current:  models.AwaitingCertsProposal,
			decision: models.ApprovedDecision,
			wantErr:  true,
		},
		"approving accepted proposal again": {
			current:  models.AcceptedProposal,
			decision: models.ApprovedDecision,
			wantErr:  true,
		},
		"rejecting accepted proposal": {
			current:  models.AcceptedProposal,
			decision: models.RejectedDecision,
			wantErr:  true,
		},
		"deciding on delivered proposal": {
			current:  models.DeliveredProposal,
			decision: models.ApprovedDecision,
			wantErr:  true,
		},
		"deciding on rejected proposal": {
			current:  models.RejectedProposal,
			decision: models.RejectedDecision,
			wantErr:  true,
		},
		"unknown decision": {
			current:  models.PendingProposal,
			decision: "Maybe",
			wantErr:  true,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			next, err := decisionTransition(tt.current, tt.decision)
			if tt.wantErr {
				requireStatusCode(t, err, http.StatusBadRequest)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, next)
		})
	}
}

// Каждый переход, который может породить решение, должен быть разрешён
// таблицей переходов статусов.
func TestDecisionTransitionAgreesWithAllowedTransitions(t *testing.T) {
	for current := range models.AllowedProposalTransitions {
		for _, decision := range []models.ProposalDecision{models.ApprovedDecision, models.RejectedDecision} {
			next, err := decisionTransition(current, decision)
			if err != nil {
				continue
			}
			require.Contains(t, models.AllowedProposalTransitions[current], next,
				"decision %s on %s produced transition missing from the table", decision, current)
		}
	}
}

func newValidationOnlyProposalService() *ProposalService {
	return NewProposalService(nil, nil, nil, events.NoopPublisher{}, "procurement@company.com", nil)
}

func TestCreateProposal_ValidationFailures(t *testing.T) {
	valid := models.ProposalRequest{
		SubmittedBy:    "alpha",
		Company:        "Alpha Traders",
		Category:       "Cement",
		Brand:          "Ultratech",
		Item:           "OPC 53 Cement",
		Measurement:    "OPC 53 Grade",
		Quantity:       decimal.NewFromInt(100),
		Rate:           decimal.NewFromInt(380),
		Phone:          "9876543210",
		Address:        "Ernakulam, Kerala",
		OfferedQuality: "Premium",
	}

	tests := map[string]func(proposalReq *models.ProposalRequest){
		"missing company":            func(r *models.ProposalRequest) { r.Company = "" },
		"missing address":            func(r *models.ProposalRequest) { r.Address = "" },
		"zero quantity":              func(r *models.ProposalRequest) { r.Quantity = decimal.Zero },
		"negative rate":              func(r *models.ProposalRequest) { r.Rate = decimal.NewFromInt(-10) },
		"short phone":                func(r *models.ProposalRequest) { r.Phone = "12345" },
		"phone with letters":         func(r *models.ProposalRequest) { r.Phone = "987654321x" },
		"unknown quality":            func(r *models.ProposalRequest) { r.OfferedQuality = "Luxury" },
		"brand not in catalog":       func(r *models.ProposalRequest) { r.Brand = "Dalmia" },
		"measurement not in catalog": func(r *models.ProposalRequest) { r.Measurement = "OPC 63 Grade" },
		"certification not in catalog": func(r *models.ProposalRequest) {
			r.OfferedCertifications = []string{"Space Grade Certificate"}
		},
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			proposalReq := valid
			mutate(&proposalReq)

			service := newValidationOnlyProposalService()
			_, err := service.CreateProposal(context.Background(), proposalReq)
			requireStatusCode(t, err, http.StatusBadRequest)
		})
	}
}

func TestCreateProposal_CustomCategoryNeedsQuantityUnit(t *testing.T) {
	service := newValidationOnlyProposalService()

	_, err := service.CreateProposal(context.Background(), models.ProposalRequest{
		SubmittedBy:    "alpha",
		Company:        "Alpha Traders",
		Category:       "Scaffolding",
		Brand:          "Local",
		Item:           "Steel Props",
		Quantity:       decimal.NewFromInt(40),
		Rate:           decimal.NewFromInt(120),
		Phone:          "9876543210",
		Address:        "Ernakulam, Kerala",
		OfferedQuality: "Standard",
	})
	requireStatusCode(t, err, http.StatusBadRequest)
}

func TestDispatchProposal_ValidationFailures(t *testing.T) {
	valid := models.DispatchRequest{
		DeliveryPerson:      "Ravi",
		DeliveryPhone:       "9876543210",
		ScheduledDeliveryAt: time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC),
	}

	tests := map[string]func(dispatch *models.DispatchRequest){
		"missing delivery person": func(d *models.DispatchRequest) { d.DeliveryPerson = "" },
		"invalid delivery phone":  func(d *models.DispatchRequest) { d.DeliveryPhone = "112" },
		"missing schedule":        func(d *models.DispatchRequest) { d.ScheduledDeliveryAt = time.Time{} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			dispatch := valid
			mutate(&dispatch)

			service := newValidationOnlyProposalService()
			_, err := service.DispatchProposal(context.Background(), "p1", "procurement_admin", dispatch)
			requireStatusCode(t, err, http.StatusBadRequest)
		})
	}
}

func TestSubmitReview_RatingOutOfRange(t *testing.T) {
	service := newValidationOnlyProposalService()

	for _, rating := range []int{0, -1, 6} {
		_, err := service.SubmitReview(context.Background(), "p1", models.ReviewRequest{
			ReviewedBy: "site_manager",
			Rating:     rating,
		})
		requireStatusCode(t, err, http.StatusBadRequest)
	}
}
