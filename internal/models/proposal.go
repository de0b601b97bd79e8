package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	ProposalStatus   string // Статус предложения поставщика
	ProposalDecision string // Решение отдела закупок по предложению
)

const (
	PendingProposal        ProposalStatus = "Pending"                // Предложение ожидает анализа
	AwaitingCertsProposal  ProposalStatus = "Awaiting Certificates"  // Ожидаются сертификаты поставщика
	CertsSubmittedProposal ProposalStatus = "Certificates Submitted" // Сертификаты отправлены на проверку
	AcceptedProposal       ProposalStatus = "Accepted"               // Предложение окончательно принято
	OutForDeliveryProposal ProposalStatus = "Out for Delivery"       // Поставка отправлена
	DeliveredProposal      ProposalStatus = "Delivered"              // Поставка получена объектом
	ReviewedProposal       ProposalStatus = "Reviewed"               // Поставка оценена объектом
	RejectedProposal       ProposalStatus = "Rejected"               // Предложение отклонено

	ApprovedDecision ProposalDecision = "Approved" // Предложение одобрено
	RejectedDecision ProposalDecision = "Rejected" // Предложение отклонено
)

// AllowedProposalTransitions описывает допустимые переходы статусов предложения.
// Пустой список означает конечный статус.
var AllowedProposalTransitions = map[ProposalStatus][]ProposalStatus{
	PendingProposal:        {AwaitingCertsProposal, RejectedProposal},
	AwaitingCertsProposal:  {CertsSubmittedProposal, RejectedProposal},
	CertsSubmittedProposal: {AcceptedProposal, RejectedProposal},
	AcceptedProposal:       {OutForDeliveryProposal},
	OutForDeliveryProposal: {DeliveredProposal},
	DeliveredProposal:      {ReviewedProposal},
	ReviewedProposal:       {},
	RejectedProposal:       {},
}

// Proposal представляет модель предложения поставщика.
type Proposal struct {
	ID                    string          `json:"id"`
	SubmittedBy           string          `json:"submittedBy"`
	Company               string          `json:"company"`
	Category              string          `json:"category"`
	Brand                 string          `json:"brand"`
	Item                  string          `json:"item"`
	Measurement           string          `json:"measurement"`
	Quantity              decimal.Decimal `json:"quantity"`
	QuantityUnit          string          `json:"quantityUnit"`
	Rate                  decimal.Decimal `json:"rate"`
	Phone                 string          `json:"phone"`
	Address               string          `json:"address"`
	Status                ProposalStatus  `json:"status"`
	OfferedQuality        string          `json:"offeredQuality"`
	OfferedCertifications []string        `json:"offeredCertifications"`
	DeliveryPerson        *string         `json:"deliveryPerson,omitempty"`
	DeliveryPhone         *string         `json:"deliveryPhone,omitempty"`
	ScheduledDeliveryAt   *time.Time      `json:"scheduledDeliveryAt,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
}

// ProposalRequest представляет структуру запроса для создания или обновления предложения.
type ProposalRequest struct {
	SubmittedBy           string          `json:"submittedBy"`
	Company               string          `json:"company"`
	Category              string          `json:"category"`
	Brand                 string          `json:"brand"`
	Item                  string          `json:"item"`
	Measurement           string          `json:"measurement"`
	Quantity              decimal.Decimal `json:"quantity"`
	QuantityUnit          string          `json:"quantityUnit"`
	Rate                  decimal.Decimal `json:"rate"`
	Phone                 string          `json:"phone"`
	Address               string          `json:"address"`
	OfferedQuality        string          `json:"offeredQuality"`
	OfferedCertifications []string        `json:"offeredCertifications"`
}

// DispatchRequest представляет данные об отправке поставки.
type DispatchRequest struct {
	DeliveryPerson      string    `json:"deliveryPerson"`
	DeliveryPhone       string    `json:"deliveryPhone"`
	ScheduledDeliveryAt time.Time `json:"scheduledDeliveryAt"`
}
