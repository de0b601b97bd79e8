package analysis

import (
	"testing"

	"github.com/grafbee/procurement-service/internal/models"

	"github.com/stretchr/testify/require"
)

func TestVendorRatings(t *testing.T) {
	proposals := []models.Proposal{
		{ID: "p1", SubmittedBy: "alpha"},
		{ID: "p2", SubmittedBy: "alpha"},
		{ID: "p3", SubmittedBy: "beta"},
		{ID: "p4", SubmittedBy: "gamma"},
	}

	for name, tc := range map[string]struct {
		reviews  []models.Review
		expected map[string]float64
	}{
		"no reviews": {
			reviews:  nil,
			expected: map[string]float64{},
		},
		"mean across vendor proposals": {
			reviews: []models.Review{
				{ID: "r1", ProposalID: "p1", Rating: 4},
				{ID: "r2", ProposalID: "p2", Rating: 5},
				{ID: "r3", ProposalID: "p3", Rating: 2},
			},
			expected: map[string]float64{"alpha": 4.5, "beta": 2},
		},
		"review for unknown proposal is ignored": {
			reviews: []models.Review{
				{ID: "r1", ProposalID: "p1", Rating: 3},
				{ID: "r2", ProposalID: "missing", Rating: 1},
			},
			expected: map[string]float64{"alpha": 3},
		},
		"vendor without reviews stays absent": {
			reviews: []models.Review{
				{ID: "r1", ProposalID: "p4", Rating: 5},
			},
			expected: map[string]float64{"gamma": 5},
		},
	} {
		t.Run(name, func(t *testing.T) {
			ratings := VendorRatings(tc.reviews, proposals)

			require.Len(t, ratings, len(tc.expected))
			for vendor, expected := range tc.expected {
				require.InDelta(t, expected, ratings[vendor], 1e-9)
			}
		})
	}
}
