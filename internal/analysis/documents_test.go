package analysis

import (
	"testing"

	"github.com/grafbee/procurement-service/internal/models"

	"github.com/stretchr/testify/require"
)

func TestDocumentScores(t *testing.T) {
	required := []string{"GST Registration Certificate", "PAN Card", "ISO 9001 Certificate"}

	for name, tc := range map[string]struct {
		documents []models.VendorDocument
		expected  map[string]float64
	}{
		"no documents": {
			documents: nil,
			expected:  map[string]float64{},
		},
		"all verified scores full": {
			documents: []models.VendorDocument{
				{Vendor: "alpha", DocType: "GST Registration Certificate", Status: models.VerifiedDocument},
				{Vendor: "alpha", DocType: "PAN Card", Status: models.VerifiedDocument},
				{Vendor: "alpha", DocType: "ISO 9001 Certificate", Status: models.VerifiedDocument},
			},
			expected: map[string]float64{"alpha": 100},
		},
		"partial verification is proportional": {
			documents: []models.VendorDocument{
				{Vendor: "alpha", DocType: "GST Registration Certificate", Status: models.VerifiedDocument},
				{Vendor: "alpha", DocType: "PAN Card", Status: models.SubmittedDocument},
			},
			expected: map[string]float64{"alpha": 100.0 / 3.0},
		},
		"submitted but unverified does not count": {
			documents: []models.VendorDocument{
				{Vendor: "beta", DocType: "PAN Card", Status: models.SubmittedDocument},
			},
			expected: map[string]float64{},
		},
		"document outside required list is ignored": {
			documents: []models.VendorDocument{
				{Vendor: "beta", DocType: "Fire Safety Certificate", Status: models.VerifiedDocument},
				{Vendor: "beta", DocType: "PAN Card", Status: models.VerifiedDocument},
			},
			expected: map[string]float64{"beta": 100.0 / 3.0},
		},
	} {
		t.Run(name, func(t *testing.T) {
			scores := DocumentScores(tc.documents, required)

			require.Len(t, scores, len(tc.expected))
			for vendor, expected := range tc.expected {
				require.InDelta(t, expected, scores[vendor], 1e-9)
			}
		})
	}
}

func TestDocumentScores_EmptyRequiredList(t *testing.T) {
	documents := []models.VendorDocument{
		{Vendor: "alpha", DocType: "PAN Card", Status: models.VerifiedDocument},
	}

	require.Empty(t, DocumentScores(documents, nil))
}
