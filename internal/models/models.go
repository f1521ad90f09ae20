package models

// CategoryScore is one scored sustainability dimension on the service's
// 0-5 scale.
type CategoryScore struct {
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// Categories holds the five fixed sustainability dimensions. The set is
// closed; a new category requires a model change on both sides of the wire.
type Categories struct {
	MaterialOrigin    CategoryScore `json:"material_origin"`
	ProductionImpact  CategoryScore `json:"production_impact"`
	LaborEthics       CategoryScore `json:"labor_ethics"`
	EndOfLife         CategoryScore `json:"end_of_life"`
	BrandTransparency CategoryScore `json:"brand_transparency"`
}

// SustainabilityReport is the structured assessment returned for one
// submission. OverallScore is computed service-side and never recomputed
// here; the client only rescales it for display.
type SustainabilityReport struct {
	ReportID           string            `json:"report_id"`
	ClothingID         string            `json:"clothing_id"`
	Brand              string            `json:"brand"`
	Categories         Categories        `json:"categories"`
	OverallScore       float64           `json:"overall_score"`
	OverallDescription string            `json:"overall_description"`
	RegionalAlerts     map[string]string `json:"regional_alerts"`
	AlternativeIDs     []string          `json:"alternative_ids"`
	CreatedAt          string            `json:"created_at"`
}

// ClothingItem is the identified garment; identity is assigned by the
// service and immutable once returned.
type ClothingItem struct {
	ClothingID string `json:"clothing_id"`
	Brand      string `json:"brand,omitempty"`
	ImageFile  string `json:"image_file"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// AlternativeProduct is one suggested more-sustainable product.
type AlternativeProduct struct {
	AlternativeID       string  `json:"alternative_id"`
	Name                string  `json:"name"`
	Brand               string  `json:"brand"`
	ImageURL            string  `json:"image_url"`
	SustainabilityScore float64 `json:"sustainability_score"`
	Link                string  `json:"link"`
	WhySustainable      string  `json:"why_sustainable"`
	ClothingID          string  `json:"clothing_id"`
}

// AnalysisResult is the composed unit one analysis submission produces.
// It is immutable once produced and re-derivable only by re-submitting.
type AnalysisResult struct {
	ClothingItem         ClothingItem         `json:"clothing_item"`
	SustainabilityReport SustainabilityReport `json:"sustainability_report"`
	Alternatives         []AlternativeProduct `json:"alternatives"`
	AnalysisID           string               `json:"analysis_id"`
	CreatedAt            string               `json:"created_at"`
}
