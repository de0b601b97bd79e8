package models

// Weights задаёт весовые коэффициенты критериев ранжирования.
// Каждый вес лежит в диапазоне [0,1]. Сумма весов не нормируется,
// поэтому итоговые баллы сравнимы только внутри одного запуска анализа.
type Weights struct {
	Rate      float64 `json:"rate"`
	Distance  float64 `json:"distance"`
	Rating    float64 `json:"rating"`
	Documents float64 `json:"documents"`
}

// DefaultWeights возвращает веса анализа по умолчанию. Вес документов
// равен нулю: штраф за документы включается только явным запросом.
func DefaultWeights() Weights {
	return Weights{Rate: 0.5, Distance: 0.3, Rating: 0.2}
}

// AnalysisRequest представляет структуру запроса на запуск анализа предложений.
type AnalysisRequest struct {
	Category    string   `json:"category"`
	SiteAddress string   `json:"siteAddress"`
	Weights     *Weights `json:"weights"`
}

// RankedProposal представляет предложение с рассчитанными баллами критериев.
type RankedProposal struct {
	Proposal        Proposal `json:"proposal"`
	AverageRating   float64  `json:"averageRating"`
	DistanceKM      *float64 `json:"distanceKm"` // nil - расстояние неизвестно
	DistanceLabel   string   `json:"distanceLabel"`
	DocumentScore   float64  `json:"documentScore"`
	RateScore       float64  `json:"rateScore"`
	DistanceScore   float64  `json:"distanceScore"`
	RatingScore     float64  `json:"ratingScore"`
	DocumentPenalty float64  `json:"documentPenalty"`
	FinalScore      float64  `json:"finalScore"`
	Rank            int      `json:"rank"`
}

// AnalysisResult представляет результат ранжирования предложений одной категории.
// Меньший итоговый балл означает лучшее предложение.
type AnalysisResult struct {
	Category    string           `json:"category"`
	SiteAddress string           `json:"siteAddress"`
	AvgRate     float64          `json:"avgRate"`
	Weights     Weights          `json:"weights"`
	TopMatches  []RankedProposal `json:"topMatches"`
	Others      []RankedProposal `json:"others"`
}
