package models

// Справочники материалов. Категория "Other" в запросе означает свободный ввод
// бренда, маркировки и единицы измерения.

// Categories перечисляет известные системе категории материалов.
var Categories = []string{"Cement", "Steel", "Electrical", "Plumbing", "Wood"}

// BrandOptions перечисляет допустимые бренды для каждой категории.
var BrandOptions = map[string][]string{
	"Cement":     {"Ultratech", "Ambuja", "ACC", "Other"},
	"Steel":      {"TATA", "JSW", "SAIL", "Other"},
	"Electrical": {"Finolex", "Havells", "Polycab", "Other"},
	"Plumbing":   {"Supreme", "Ashirvad", "Astral", "Other"},
	"Wood":       {"Greenply", "CenturyPly", "Other"},
}

// MeasurementOptions перечисляет маркировки материала там, где они фиксированы.
var MeasurementOptions = map[string][]string{
	"Cement": {"OPC 43", "OPC 53", "PPC", "Other"},
	"Steel":  {"8mm", "10mm", "12mm", "16mm", "Other"},
}

// QuantityUnits задаёт единицу измерения количества для каждой категории.
var QuantityUnits = map[string]string{
	"Cement":     "Bags",
	"Steel":      "Tonnes",
	"Electrical": "Pieces",
	"Plumbing":   "Pieces",
	"Wood":       "Cubic Feet",
}

// QualityLevels перечисляет уровни качества материала.
var QualityLevels = []string{"Premium", "Standard", "Basic"}

// OwnershipTypes перечисляет формы собственности поставщика.
var OwnershipTypes = []string{"Private", "Government", "Cooperative"}

// MaterialCertifications перечисляет сертификаты материалов по категориям.
var MaterialCertifications = map[string][]string{
	"Cement": {"BIS/ISI Certificate", "MTC (Batch-wise)", "ISO Certification of Manufacturer", "Product Specification Sheet"},
	"Steel":  {"BIS/ISI Certificate", "MTC with Heat Number", "ISO Certificate (of manufacturer)", "Brand Authorization Letter"},
	"Wood":   {"IS Compliance Certificate", "FSC / PEFC Certificate", "Treatment Certificate", "Moisture Content Report"},
}

// RequiredVendorDocuments перечисляет обязательные учредительные документы поставщика.
var RequiredVendorDocuments = []string{
	"GST Registration Certificate",
	"PAN Card",
	"Company Registration Certificate",
	"ISO 9001 Certificate",
	"Bank Solvency Certificate",
}

// CategorySpec описывает справочник одной категории материалов.
type CategorySpec struct {
	Category       string   `json:"category"`
	Brands         []string `json:"brands"`
	Measurements   []string `json:"measurements"`
	QuantityUnit   string   `json:"quantityUnit"`
	Certifications []string `json:"certifications"`
}

// CatalogResponse представляет полный справочник для экранов ввода.
type CatalogResponse struct {
	Categories              []CategorySpec `json:"categories"`
	QualityLevels           []string       `json:"qualityLevels"`
	OwnershipTypes          []string       `json:"ownershipTypes"`
	RequiredVendorDocuments []string       `json:"requiredVendorDocuments"`
}

// Catalog собирает полный справочник по всем известным категориям.
func Catalog() CatalogResponse {
	specs := make([]CategorySpec, 0, len(Categories))
	for _, category := range Categories {
		spec, _ := LookupCategory(category)
		specs = append(specs, spec)
	}
	return CatalogResponse{
		Categories:              specs,
		QualityLevels:           QualityLevels,
		OwnershipTypes:          OwnershipTypes,
		RequiredVendorDocuments: RequiredVendorDocuments,
	}
}

// LookupCategory возвращает справочник категории и признак того, что категория известна.
func LookupCategory(category string) (CategorySpec, bool) {
	known := false
	for _, c := range Categories {
		if c == category {
			known = true
			break
		}
	}
	if !known {
		return CategorySpec{Category: category}, false
	}
	return CategorySpec{
		Category:       category,
		Brands:         BrandOptions[category],
		Measurements:   MeasurementOptions[category],
		QuantityUnit:   QuantityUnits[category],
		Certifications: MaterialCertifications[category],
	}, true
}
