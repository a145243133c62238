package entity

// VenueConfig describes what appears on printed documents
type VenueConfig struct {
	// Business identity
	RestaurantName string `json:"restaurant_name"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Website        string `json:"website"`

	// Fiscal identifiers
	TaxID             string `json:"tax_id"`
	InvoiceType       string `json:"invoice_type"`
	PosNumber         string `json:"pos_number"`
	TaxCondition      string `json:"tax_condition"`
	GrossIncome       string `json:"gross_income"`
	ActivityStartDate string `json:"activity_start_date"`

	// Messages
	ThankYouMessage string `json:"thank_you_message"`
	LegalDisclaimer string `json:"legal_disclaimer"`

	// Visibility toggles
	ShowRestaurantName    bool `json:"show_restaurant_name"`
	ShowAddress           bool `json:"show_address"`
	ShowPhone             bool `json:"show_phone"`
	ShowEmail             bool `json:"show_email"`
	ShowWebsite           bool `json:"show_website"`
	ShowTaxID             bool `json:"show_tax_id"`
	ShowInvoiceType       bool `json:"show_invoice_type"`
	ShowPosNumber         bool `json:"show_pos_number"`
	ShowTaxCondition      bool `json:"show_tax_condition"`
	ShowGrossIncome       bool `json:"show_gross_income"`
	ShowActivityStartDate bool `json:"show_activity_start_date"`
	ShowThankYouMessage   bool `json:"show_thank_you_message"`
	ShowLegalDisclaimer   bool `json:"show_legal_disclaimer"`
	ShowQRCode            bool `json:"show_qr_code"`

	// Thermal presentation hints
	ThermalFontSize   string `json:"thermal_font_size"`
	ThermalFontWeight string `json:"thermal_font_weight"`
	ThermalLineHeight string `json:"thermal_line_height"`
	QRCodeSize        string `json:"qr_code_size"`
}

// DefaultVenueConfig returns the configuration used before anything is saved
func DefaultVenueConfig() VenueConfig {
	return VenueConfig{
		RestaurantName:  "Mi Restaurante",
		Address:         "Dirección del Restaurante",
		InvoiceType:     "B",
		PosNumber:       "00001",
		TaxCondition:    "Responsable Inscripto",
		ThankYouMessage: "¡Gracias por su visita!",
		LegalDisclaimer: "Documento no válido como comprobante fiscal",

		ShowRestaurantName:  true,
		ShowAddress:         true,
		ShowTaxID:           true,
		ShowWebsite:         true,
		ShowThankYouMessage: true,
		ShowQRCode:          true,

		ThermalFontSize:   "14px",
		ThermalFontWeight: "600",
		ThermalLineHeight: "1.3",
		QRCodeSize:        "120x120",
	}
}
