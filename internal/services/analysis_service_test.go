package services

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/grafbee/procurement-service/internal/distance"
	"github.com/grafbee/procurement-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeProposalRepo struct {
	pending []models.Proposal
	all     []models.Proposal
	overdue []models.Proposal
}

func (f *fakeProposalRepo) CreateProposal(context.Context, models.ProposalRequest) (*models.Proposal, error) {
	return nil, nil
}

func (f *fakeProposalRepo) GetProposals(context.Context, int, int, string, string, string) ([]models.Proposal, error) {
	return nil, nil
}

func (f *fakeProposalRepo) GetUserProposals(context.Context, int, int, string) ([]models.Proposal, error) {
	return nil, nil
}

func (f *fakeProposalRepo) GetPendingByCategory(_ context.Context, category string) ([]models.Proposal, error) {
	var pending []models.Proposal
	for _, proposal := range f.pending {
		if proposal.Category == category {
			pending = append(pending, proposal)
		}
	}
	return pending, nil
}

func (f *fakeProposalRepo) GetAllProposals(context.Context) ([]models.Proposal, error) {
	return f.all, nil
}

func (f *fakeProposalRepo) GetProposalStatus(context.Context, string) (models.ProposalStatus, error) {
	return "", nil
}

func (f *fakeProposalRepo) UpdateProposalStatus(context.Context, string, models.ProposalStatus) (*models.Proposal, error) {
	return nil, nil
}

func (f *fakeProposalRepo) EditProposal(context.Context, string, map[string]interface{}) (*models.Proposal, error) {
	return nil, nil
}

func (f *fakeProposalRepo) SetDispatchDetails(context.Context, string, models.DispatchRequest) (*models.Proposal, error) {
	return nil, nil
}

func (f *fakeProposalRepo) GetOverdueDeliveries(context.Context, time.Time) ([]models.Proposal, error) {
	return f.overdue, nil
}

type fakeRequirementRepo struct {
	avgRate decimal.Decimal
	count   int
}

func (f *fakeRequirementRepo) CreateRequirement(context.Context, models.RequirementRequest) (*models.Requirement, error) {
	return nil, nil
}

func (f *fakeRequirementRepo) GetRequirements(context.Context, int, int, string) ([]models.Requirement, error) {
	return nil, nil
}

func (f *fakeRequirementRepo) EditRequirement(context.Context, string, map[string]interface{}) (*models.Requirement, error) {
	return nil, nil
}

func (f *fakeRequirementRepo) GetAverageBudgetRate(context.Context, string) (decimal.Decimal, int, error) {
	return f.avgRate, f.count, nil
}

type fakeReviewRepo struct {
	reviews []models.Review
}

func (f *fakeReviewRepo) CreateReview(context.Context, string, models.ReviewRequest) (*models.Review, error) {
	return nil, nil
}

func (f *fakeReviewRepo) GetReviewsByProposal(context.Context, string) ([]models.Review, error) {
	return nil, nil
}

func (f *fakeReviewRepo) GetAllReviews(context.Context) ([]models.Review, error) {
	return f.reviews, nil
}

func (f *fakeReviewRepo) GetVendorReviewStats(context.Context, string) (float64, int, error) {
	return 0, 0, nil
}

type fakeVendorRepo struct {
	documents []models.VendorDocument
	queried   []string
}

func (f *fakeVendorRepo) CreateVendor(context.Context, models.VendorRequest) (*models.VendorProfile, error) {
	return nil, nil
}

func (f *fakeVendorRepo) GetVendorProfile(context.Context, string) (*models.VendorProfile, error) {
	return nil, nil
}

func (f *fakeVendorRepo) SubmitDocument(context.Context, string, string) (*models.VendorDocument, error) {
	return nil, nil
}

func (f *fakeVendorRepo) VerifyDocument(context.Context, string, string) (*models.VendorDocument, error) {
	return nil, nil
}

func (f *fakeVendorRepo) GetDocumentsByVendor(context.Context, string) ([]models.VendorDocument, error) {
	return nil, nil
}

func (f *fakeVendorRepo) GetDocumentsForVendors(_ context.Context, vendors []string) ([]models.VendorDocument, error) {
	f.queried = vendors
	return f.documents, nil
}

type insertedNotification struct {
	username string
	message  string
}

type fakeNotificationRepo struct {
	usersByRole map[models.UserRole][]string
	inserted    []insertedNotification
}

func (f *fakeNotificationRepo) InsertNotification(_ context.Context, username, message string) (*models.Notification, error) {
	f.inserted = append(f.inserted, insertedNotification{username: username, message: message})
	return &models.Notification{Username: username, Message: message}, nil
}

func (f *fakeNotificationRepo) GetUnreadByUser(context.Context, string) ([]models.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) MarkAllRead(context.Context, string) (int64, error) {
	return 0, nil
}

func (f *fakeNotificationRepo) GetUsersByRole(_ context.Context, role models.UserRole) ([]string, error) {
	return f.usersByRole[role], nil
}

type fakeResolver struct {
	mu        sync.Mutex
	distances map[string]distance.Distance
	origins   []string
}

func (f *fakeResolver) Resolve(_ context.Context, origin, _ string) distance.Distance {
	f.mu.Lock()
	f.origins = append(f.origins, origin)
	f.mu.Unlock()

	if resolved, ok := f.distances[origin]; ok {
		return resolved
	}
	return distance.Distance{Label: distance.LabelNoRoute}
}

func pendingProposal(id, vendor, category, address string, rate int64) models.Proposal {
	return models.Proposal{
		ID:          id,
		SubmittedBy: vendor,
		Company:     vendor + " Co",
		Category:    category,
		Item:        "OPC 53 Cement",
		Rate:        decimal.NewFromInt(rate),
		Address:     address,
		Status:      models.PendingProposal,
	}
}

func newAnalysisService(proposals *fakeProposalRepo, requirements *fakeRequirementRepo, reviews *fakeReviewRepo, vendors *fakeVendorRepo, resolver *fakeResolver) *AnalysisService {
	return NewAnalysisService(proposals, requirements, reviews, vendors, resolver, "Kochi, Kerala")
}

func TestRunAnalysis_RequiresCategory(t *testing.T) {
	service := newAnalysisService(&fakeProposalRepo{}, &fakeRequirementRepo{}, &fakeReviewRepo{}, &fakeVendorRepo{}, &fakeResolver{})

	_, err := service.RunAnalysis(context.Background(), models.AnalysisRequest{})
	requireStatusCode(t, err, http.StatusBadRequest)
}

func TestRunAnalysis_RejectsWeightsOutOfRange(t *testing.T) {
	service := newAnalysisService(&fakeProposalRepo{}, &fakeRequirementRepo{}, &fakeReviewRepo{}, &fakeVendorRepo{}, &fakeResolver{})

	tests := map[string]models.Weights{
		"negative rate weight":   {Rate: -0.1, Distance: 0.3, Rating: 0.2},
		"distance weight above1": {Rate: 0.5, Distance: 1.5, Rating: 0.2},
		"rating weight above 1":  {Rate: 0.5, Distance: 0.3, Rating: 2},
		"documents weight below": {Rate: 0.5, Distance: 0.3, Rating: 0.2, Documents: -1},
	}
	for name, weights := range tests {
		t.Run(name, func(t *testing.T) {
			weights := weights
			_, err := service.RunAnalysis(context.Background(), models.AnalysisRequest{Category: "Cement", Weights: &weights})
			requireStatusCode(t, err, http.StatusBadRequest)
		})
	}
}

func TestRunAnalysis_FailsWithoutRequirements(t *testing.T) {
	proposals := &fakeProposalRepo{pending: []models.Proposal{pendingProposal("p1", "alpha", "Cement", "Ernakulam", 150)}}
	service := newAnalysisService(proposals, &fakeRequirementRepo{count: 0}, &fakeReviewRepo{}, &fakeVendorRepo{}, &fakeResolver{})

	_, err := service.RunAnalysis(context.Background(), models.AnalysisRequest{Category: "Cement"})
	requireStatusCode(t, err, http.StatusBadRequest)
}

func TestRunAnalysis_FailsWithoutPendingProposals(t *testing.T) {
	requirements := &fakeRequirementRepo{avgRate: decimal.NewFromInt(150), count: 2}
	service := newAnalysisService(&fakeProposalRepo{}, requirements, &fakeReviewRepo{}, &fakeVendorRepo{}, &fakeResolver{})

	_, err := service.RunAnalysis(context.Background(), models.AnalysisRequest{Category: "Cement"})
	requireStatusCode(t, err, http.StatusNotFound)
}

func TestRunAnalysis_RanksPendingProposals(t *testing.T) {
	proposals := &fakeProposalRepo{
		pending: []models.Proposal{
			pendingProposal("p1", "alpha", "Cement", "Ernakulam", 150),
			pendingProposal("p2", "beta", "Cement", "Thrissur", 300),
			pendingProposal("p3", "alpha", "Cement", "Ernakulam", 180),
		},
		all: []models.Proposal{
			pendingProposal("p1", "alpha", "Cement", "Ernakulam", 150),
			pendingProposal("p2", "beta", "Cement", "Thrissur", 300),
			pendingProposal("p3", "alpha", "Cement", "Ernakulam", 180),
			{ID: "p9", SubmittedBy: "beta", Category: "Steel", Status: models.ReviewedProposal},
		},
	}
	requirements := &fakeRequirementRepo{avgRate: decimal.NewFromInt(150), count: 2}
	reviews := &fakeReviewRepo{reviews: []models.Review{{ID: "r1", ProposalID: "p9", Rating: 5}}}
	vendors := &fakeVendorRepo{documents: []models.VendorDocument{
		{Vendor: "alpha", DocType: "GST Registration Certificate", Status: models.VerifiedDocument},
	}}
	resolver := &fakeResolver{distances: map[string]distance.Distance{
		"Ernakulam": {Label: "45 km", Meters: 45000},
		"Thrissur":  {Label: "90 km", Meters: 90000},
	}}
	service := newAnalysisService(proposals, requirements, reviews, vendors, resolver)

	result, err := service.RunAnalysis(context.Background(), models.AnalysisRequest{Category: "Cement"})
	require.NoError(t, err)

	require.Equal(t, "Cement", result.Category)
	require.Equal(t, "Kochi, Kerala", result.SiteAddress)
	require.InDelta(t, 150.0, result.AvgRate, 1e-9)
	require.Len(t, result.TopMatches, 3)
	require.Empty(t, result.Others)

	// p1 идёт первым: ставка равна бюджету, расстояние минимально.
	first := result.TopMatches[0]
	require.Equal(t, "p1", first.Proposal.ID)
	require.Equal(t, 1, first.Rank)
	require.InDelta(t, 0.0, first.RateScore, 1e-9)
	require.NotNil(t, first.DistanceKM)
	require.InDelta(t, 45.0, *first.DistanceKM, 1e-9)

	// Рейтинг beta берётся из истории отзывов, alpha получает значение по умолчанию.
	for _, ranked := range result.TopMatches {
		switch ranked.Proposal.SubmittedBy {
		case "beta":
			require.InDelta(t, 5.0, ranked.AverageRating, 1e-9)
		case "alpha":
			require.InDelta(t, 3.0, ranked.AverageRating, 1e-9)
		}
	}
}

func TestRunAnalysis_ResolvesDistanceForEveryProposal(t *testing.T) {
	proposals := &fakeProposalRepo{
		pending: []models.Proposal{
			pendingProposal("p1", "alpha", "Cement", "Ernakulam", 150),
			pendingProposal("p2", "beta", "Cement", "Thrissur", 160),
			pendingProposal("p3", "gamma", "Cement", "Kollam", 170),
		},
	}
	requirements := &fakeRequirementRepo{avgRate: decimal.NewFromInt(150), count: 1}
	resolver := &fakeResolver{}
	service := newAnalysisService(proposals, requirements, &fakeReviewRepo{}, &fakeVendorRepo{}, resolver)

	result, err := service.RunAnalysis(context.Background(), models.AnalysisRequest{Category: "Cement", SiteAddress: "Palakkad"})
	require.NoError(t, err)

	require.Equal(t, "Palakkad", result.SiteAddress)
	require.ElementsMatch(t, []string{"Ernakulam", "Thrissur", "Kollam"}, resolver.origins)

	// Маршрут не найден: расстояние неизвестно, но предложение остаётся в выдаче.
	for _, ranked := range result.TopMatches {
		require.Nil(t, ranked.DistanceKM)
		require.Equal(t, distance.LabelNoRoute, ranked.DistanceLabel)
	}
}

func TestRunAnalysis_QueriesDocumentsOncePerVendor(t *testing.T) {
	proposals := &fakeProposalRepo{
		pending: []models.Proposal{
			pendingProposal("p1", "alpha", "Cement", "Ernakulam", 150),
			pendingProposal("p2", "alpha", "Cement", "Ernakulam", 160),
			pendingProposal("p3", "beta", "Cement", "Thrissur", 170),
		},
	}
	requirements := &fakeRequirementRepo{avgRate: decimal.NewFromInt(150), count: 1}
	vendors := &fakeVendorRepo{}
	service := newAnalysisService(proposals, requirements, &fakeReviewRepo{}, vendors, &fakeResolver{})

	_, err := service.RunAnalysis(context.Background(), models.AnalysisRequest{Category: "Cement"})
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta"}, vendors.queried)
}

func requireStatusCode(t *testing.T, err error, statusCode int) {
	t.Helper()
	require.Error(t, err)

	var errResp *models.ErrorResponse
	require.ErrorAs(t, err, &errResp)
	require.Equal(t, statusCode, errResp.StatusCode)
}
