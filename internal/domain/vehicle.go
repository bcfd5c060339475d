package domain

// VehicleFlags are the status markers that depress a vehicle's score.
type VehicleFlags struct {
	Taxi     bool `json:"taxi"`
	Rental   bool `json:"rental"`
	Imported bool `json:"imported"`
	Stolen   bool `json:"stolen"`
}

// Vehicle is the internal schema an external lookup payload is
// transformed into. Pointer fields are unknown when the provider omits
// them; scoring treats unknown as neutral rather than fabricating values.
type Vehicle struct {
	RegistrationNumber string        `json:"registration_number"`
	Make               string        `json:"make"`
	Model              string        `json:"model"`
	ModelYear          int           `json:"model_year"`
	FuelType           string        `json:"fuel_type,omitempty"`
	MileageKm          *int          `json:"mileage_km,omitempty"`
	OwnerCount         *int          `json:"owner_count,omitempty"`
	AskingPriceSEK     *int64        `json:"asking_price_sek,omitempty"`
	MarketPriceSEK     *int64        `json:"market_price_sek,omitempty"`
	Flags              *VehicleFlags `json:"flags,omitempty"`
	NewCarWarranty     *bool         `json:"new_car_warranty,omitempty"`
	DepreciationPct    *float64      `json:"depreciation_pct,omitempty"`
	EuroNCAPStars      *int          `json:"euro_ncap_stars,omitempty"`
	Equipment          []string      `json:"equipment,omitempty"`
	ServiceHistoryFull *bool         `json:"service_history_full,omitempty"`
	MajorDamageCount   *int          `json:"major_damage_count,omitempty"`
	KnownIssueCount    *int          `json:"known_issue_count,omitempty"`
}
