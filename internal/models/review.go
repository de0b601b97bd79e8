package models

import "time"

// Review представляет модель отзыва объекта о выполненной поставке.
type Review struct {
	ID         string    `json:"id"`
	ProposalID string    `json:"proposalId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	ReviewedBy string    `json:"reviewedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReviewRequest представляет структуру запроса для создания отзыва.
type ReviewRequest struct {
	ReviewedBy string `json:"reviewedBy"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}
