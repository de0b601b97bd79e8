package services

import (
	"context"
	"net/http"
	"sync"

	"github.com/grafbee/procurement-service/internal/analysis"
	"github.com/grafbee/procurement-service/internal/distance"
	"github.com/grafbee/procurement-service/internal/metrics"
	"github.com/grafbee/procurement-service/internal/models"
	"github.com/grafbee/procurement-service/internal/repository"
)

type AnalysisService struct {
	Proposals          repository.ProposalRepository
	Requirements       repository.RequirementRepository
	Reviews            repository.ReviewRepository
	Vendors            repository.VendorRepository
	Resolver           distance.Resolver
	DefaultSiteAddress string
}

// NewAnalysisService создаёт новый экземпляр AnalysisService.
func NewAnalysisService(proposals repository.ProposalRepository, requirements repository.RequirementRepository, reviews repository.ReviewRepository, vendors repository.VendorRepository, resolver distance.Resolver, defaultSiteAddress string) *AnalysisService {
	return &AnalysisService{
		Proposals:          proposals,
		Requirements:       requirements,
		Reviews:            reviews,
		Vendors:            vendors,
		Resolver:           resolver,
		DefaultSiteAddress: defaultSiteAddress,
	}
}

// RunAnalysis ранжирует предложения категории, ожидающие решения. Результат
// считается заново на каждый запрос: средний бюджет, репутация и расстояния
// берутся по состоянию данных на момент вызова.
func (s *AnalysisService) RunAnalysis(ctx context.Context, analysisReq models.AnalysisRequest) (*models.AnalysisResult, error) {
	if analysisReq.Category == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "category is required")
	}

	weights := models.DefaultWeights()
	if analysisReq.Weights != nil {
		weights = *analysisReq.Weights
	}
	if err := validateWeights(weights); err != nil {
		return nil, err
	}

	siteAddress := analysisReq.SiteAddress
	if siteAddress == "" {
		siteAddress = s.DefaultSiteAddress
	}

	avgRate, requirementCount, err := s.Requirements.GetAverageBudgetRate(ctx, analysisReq.Category)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to load requirements")
	}
	if requirementCount == 0 {
		return nil, models.NewErrorResponsef(http.StatusBadRequest, "no requirements found for category %s, average budget rate is undefined", analysisReq.Category)
	}

	pending, err := s.Proposals.GetPendingByCategory(ctx, analysisReq.Category)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to load pending proposals")
	}
	if len(pending) == 0 {
		return nil, models.NewErrorResponsef(http.StatusNotFound, "no pending proposals for category %s", analysisReq.Category)
	}

	// Репутация считается по всей истории отзывов, а не только по категории.
	allProposals, err := s.Proposals.GetAllProposals(ctx)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to load proposals")
	}
	allReviews, err := s.Reviews.GetAllReviews(ctx)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to load reviews")
	}
	ratings := analysis.VendorRatings(allReviews, allProposals)

	documents, err := s.Vendors.GetDocumentsForVendors(ctx, pendingVendors(pending))
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to load vendor documents")
	}
	docScores := analysis.DocumentScores(documents, models.RequiredVendorDocuments)

	result := analysis.Rank(analysis.Input{
		Pending:   pending,
		AvgRate:   avgRate.InexactFloat64(),
		Weights:   weights,
		Ratings:   ratings,
		DocScores: docScores,
		Distances: s.resolveDistances(ctx, pending, siteAddress),
	})
	result.Category = analysisReq.Category
	result.SiteAddress = siteAddress

	metrics.CollectAnalysisRun(analysisReq.Category)
	return &result, nil
}

// resolveDistances параллельно запрашивает расстояние от каждого поставщика до
// объекта. Нормировка расстояний требует полного пакета, поэтому ранжирование
// начинается только после завершения всех запросов.
func (s *AnalysisService) resolveDistances(ctx context.Context, pending []models.Proposal, siteAddress string) []analysis.Distance {
	distances := make([]analysis.Distance, len(pending))

	var wg sync.WaitGroup
	for i, proposal := range pending {
		wg.Add(1)
		go func(i int, origin string) {
			defer wg.Done()
			resolved := s.Resolver.Resolve(ctx, origin, siteAddress)
			distances[i] = analysis.Distance{Label: resolved.Label, Meters: resolved.Meters}
			metrics.CollectDistanceLookup(lookupOutcome(resolved))
		}(i, proposal.Address)
	}
	wg.Wait()
	return distances
}

func pendingVendors(pending []models.Proposal) []string {
	seen := make(map[string]struct{}, len(pending))
	vendors := make([]string, 0, len(pending))
	for _, proposal := range pending {
		if _, ok := seen[proposal.SubmittedBy]; ok {
			continue
		}
		seen[proposal.SubmittedBy] = struct{}{}
		vendors = append(vendors, proposal.SubmittedBy)
	}
	return vendors
}

func validateWeights(weights models.Weights) error {
	for _, weight := range []float64{weights.Rate, weights.Distance, weights.Rating, weights.Documents} {
		if weight < 0 || weight > 1 {
			return models.NewErrorResponse(http.StatusBadRequest, "weights must be between 0 and 1")
		}
	}
	return nil
}

func lookupOutcome(resolved distance.Distance) string {
	switch resolved.Label {
	case distance.LabelNoAPIKey:
		return "no_api_key"
	case distance.LabelNoRoute:
		return "no_route"
	case distance.LabelError:
		return "error"
	default:
		return "resolved"
	}
}
