package analysis

import "github.com/grafbee/procurement-service/internal/models"

// DocumentScores считает оценку документов поставщиков: доля подтверждённых
// документов от обязательного списка, в процентах от 0 до 100. Поставщики
// без единого подтверждённого документа в карту не попадают, их оценка
// равна нулю.
func DocumentScores(documents []models.VendorDocument, required []string) map[string]float64 {
	if len(required) == 0 {
		return map[string]float64{}
	}

	requiredSet := make(map[string]bool, len(required))
	for _, docType := range required {
		requiredSet[docType] = true
	}

	verified := make(map[string]int)
	for _, doc := range documents {
		if doc.Status == models.VerifiedDocument && requiredSet[doc.DocType] {
			verified[doc.Vendor]++
		}
	}

	scores := make(map[string]float64, len(verified))
	for vendor, count := range verified {
		scores[vendor] = float64(count) / float64(len(required)) * 100.0
	}
	return scores
}
