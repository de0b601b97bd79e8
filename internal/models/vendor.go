package models

import "time"

type (
	UserRole       string // Роль пользователя системы
	DocumentStatus string // Статус учредительного документа поставщика
)

const (
	VendorRole      UserRole = "Vendor"      // Поставщик материалов
	ProcurementRole UserRole = "Procurement" // Сотрудник отдела закупок
	SiteRole        UserRole = "Site"        // Сотрудник строительного объекта

	SubmittedDocument DocumentStatus = "Submitted" // Документ отправлен на проверку
	VerifiedDocument  DocumentStatus = "Verified"  // Документ подтверждён отделом закупок
)

// User представляет модель пользователя системы.
type User struct {
	Username  string    `json:"username"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// VendorProfile представляет модель профиля поставщика.
type VendorProfile struct {
	Username            string    `json:"username"`
	YearOfEstablishment int       `json:"yearOfEstablishment"`
	OwnershipType       string    `json:"ownershipType"`
	CreatedAt           time.Time `json:"createdAt"`
}

// VendorRequest представляет структуру запроса для регистрации поставщика.
type VendorRequest struct {
	Username            string `json:"username"`
	YearOfEstablishment int    `json:"yearOfEstablishment"`
	OwnershipType       string `json:"ownershipType"`
}

// VendorDocument представляет модель учредительного документа поставщика.
type VendorDocument struct {
	ID        string         `json:"id"`
	Vendor    string         `json:"vendor"`
	DocType   string         `json:"docType"`
	Status    DocumentStatus `json:"status"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// VendorDocumentsResponse представляет список документов поставщика с итоговой оценкой.
type VendorDocumentsResponse struct {
	Vendor        string           `json:"vendor"`
	Documents     []VendorDocument `json:"documents"`
	DocumentScore float64          `json:"documentScore"`
}

// VendorRatingResponse представляет средний рейтинг поставщика по отзывам.
type VendorRatingResponse struct {
	Vendor        string   `json:"vendor"`
	AverageRating *float64 `json:"averageRating"`
	ReviewCount   int      `json:"reviewCount"`
}
