package analysis

import "github.com/grafbee/procurement-service/internal/models"

// VendorRatings считает средний рейтинг поставщиков по полной истории отзывов.
// Отзыв связывается с поставщиком через предложение, по которому он оставлен.
// Поставщики без отзывов в карту не попадают: для них действует
// DefaultVendorRating.
func VendorRatings(reviews []models.Review, proposals []models.Proposal) map[string]float64 {
	vendorByProposal := make(map[string]string, len(proposals))
	for _, p := range proposals {
		vendorByProposal[p.ID] = p.SubmittedBy
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, review := range reviews {
		vendor, ok := vendorByProposal[review.ProposalID]
		if !ok {
			continue
		}
		sums[vendor] += float64(review.Rating)
		counts[vendor]++
	}

	ratings := make(map[string]float64, len(sums))
	for vendor, sum := range sums {
		ratings[vendor] = sum / float64(counts[vendor])
	}
	return ratings
}
