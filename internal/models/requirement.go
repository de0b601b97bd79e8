package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Requirement представляет модель потребности отдела закупок в материале.
type Requirement struct {
	ID                     string          `json:"id"`
	Category               string          `json:"category"`
	Item                   string          `json:"item"`
	BudgetedRate           decimal.Decimal `json:"budgetedRate"`
	BudgetedQuantity       decimal.Decimal `json:"budgetedQuantity"`
	BudgetedQuantityUnit   string          `json:"budgetedQuantityUnit"`
	RequiredQuality        string          `json:"requiredQuality"`
	RequiredCertifications []string        `json:"requiredCertifications"`
	RequiredDeliveryDate   time.Time       `json:"requiredDeliveryDate"`
	CreatedAt              time.Time       `json:"createdAt"`
}

// RequirementRequest представляет структуру запроса для создания или обновления потребности.
type RequirementRequest struct {
	Category               string          `json:"category"`
	Item                   string          `json:"item"`
	BudgetedRate           decimal.Decimal `json:"budgetedRate"`
	BudgetedQuantity       decimal.Decimal `json:"budgetedQuantity"`
	BudgetedQuantityUnit   string          `json:"budgetedQuantityUnit"`
	RequiredQuality        string          `json:"requiredQuality"`
	RequiredCertifications []string        `json:"requiredCertifications"`
	RequiredDeliveryDate   time.Time       `json:"requiredDeliveryDate"`
}
