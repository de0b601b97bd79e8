package analysis

import (
	"math"
	"sort"

	"github.com/grafbee/procurement-service/internal/models"

	"go.openly.dev/pointy"
)

// Epsilon защищает деления при расчёте баллов от нуля в знаменателе.
const Epsilon = 1e-9

const (
	// DefaultVendorRating - рейтинг поставщика, у которого ещё нет отзывов.
	DefaultVendorRating = 3.0

	topMatchesCount = 3
)

// Distance - результат разрешения расстояния до поставщика.
// Meters <= 0 означает, что расстояние неизвестно, а не нулевой путь.
type Distance struct {
	Label  string
	Meters int
}

// Input описывает вход ранжирования предложений одной категории.
// Distances выровнен с Pending по индексу; недостающие элементы
// трактуются как неизвестные расстояния.
type Input struct {
	Pending   []models.Proposal
	AvgRate   float64
	Weights   models.Weights
	Ratings   map[string]float64
	DocScores map[string]float64
	Distances []Distance
}

// Rank ранжирует предложения по возрастанию итогового балла: чем меньше
// балл, тем лучше предложение. Сортировка устойчива, при равных баллах
// сохраняется порядок входа. Первые три предложения попадают в TopMatches.
//
// Баллы критериев:
//   - цена: |rate - avgRate| / (avgRate + Epsilon), отклонение в обе стороны;
//   - расстояние: min-max нормировка известных расстояний пакета,
//     неизвестные заполняются нулём уже после нормировки;
//   - рейтинг: (5 - rating) / 4;
//   - документы: (100 - docScore) / 100.
func Rank(in Input) models.AnalysisResult {
	n := len(in.Pending)
	ranked := make([]models.RankedProposal, 0, n)
	kms := make([]float64, n)

	for i, p := range in.Pending {
		rating, ok := in.Ratings[p.SubmittedBy]
		if !ok {
			rating = DefaultVendorRating
		}

		km := math.NaN()
		label := ""
		if i < len(in.Distances) {
			label = in.Distances[i].Label
			if in.Distances[i].Meters > 0 {
				km = float64(in.Distances[i].Meters) / 1000.0
			}
		}
		kms[i] = km

		docScore := in.DocScores[p.SubmittedBy]
		rate := p.Rate.InexactFloat64()

		rp := models.RankedProposal{
			Proposal:        p,
			AverageRating:   rating,
			DistanceLabel:   label,
			DocumentScore:   docScore,
			RateScore:       math.Abs(rate-in.AvgRate) / (in.AvgRate + Epsilon),
			RatingScore:     (5.0 - rating) / 4.0,
			DocumentPenalty: (100.0 - docScore) / 100.0,
		}
		if !math.IsNaN(km) {
			rp.DistanceKM = pointy.Float64(km)
		}
		ranked = append(ranked, rp)
	}

	minKM, maxKM := math.NaN(), math.NaN()
	for _, km := range kms {
		if math.IsNaN(km) {
			continue
		}
		if math.IsNaN(minKM) || km < minKM {
			minKM = km
		}
		if math.IsNaN(maxKM) || km > maxKM {
			maxKM = km
		}
	}

	for i := range ranked {
		distNorm := 0.0
		if !math.IsNaN(kms[i]) && !math.IsNaN(minKM) {
			distNorm = (kms[i] - minKM) / (maxKM - minKM + Epsilon)
		}
		ranked[i].DistanceScore = distNorm

		ranked[i].FinalScore = ranked[i].RateScore*in.Weights.Rate +
			ranked[i].DistanceScore*in.Weights.Distance +
			ranked[i].RatingScore*in.Weights.Rating +
			ranked[i].DocumentPenalty*in.Weights.Documents
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore < ranked[j].FinalScore
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	result := models.AnalysisResult{
		AvgRate: in.AvgRate,
		Weights: in.Weights,
	}
	if len(ranked) > topMatchesCount {
		result.TopMatches = ranked[:topMatchesCount]
		result.Others = ranked[topMatchesCount:]
	} else {
		result.TopMatches = ranked
		result.Others = []models.RankedProposal{}
	}
	return result
}
