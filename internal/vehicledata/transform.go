package vehicledata

import (
	"strings"

	"bilio-backend/internal/domain"
)

// Payload is the provider's wire format for a vehicle lookup. Pointer
// fields distinguish "absent from payload" from zero values.
type Payload struct {
	RegNo                  string   `json:"regNo"`
	Brand                  string   `json:"brand"`
	Model                  string   `json:"model"`
	ModelYear              int      `json:"modelYear"`
	FuelType               string   `json:"fuelType"`
	Mileage                *int     `json:"mileage"`
	NumberOfOwners         *int     `json:"numberOfOwners"`
	Price                  *int64   `json:"price"`
	MarketPrice            *int64   `json:"marketPrice"`
	UsedAsTaxi             *bool    `json:"usedAsTaxi"`
	UsedAsRental           *bool    `json:"usedAsRental"`
	Imported               *bool    `json:"imported"`
	ReportedStolen         *bool    `json:"reportedStolen"`
	NewCarWarranty         *bool    `json:"newCarWarranty"`
	ValueLossFiveYearsPct  *float64 `json:"valueLossFiveYearsPct"`
	EuroNcapStars          *int     `json:"euroNcapStars"`
	Equipment              []string `json:"equipment"`
	ServiceHistoryComplete *bool    `json:"serviceHistoryComplete"`
	Damages                []Damage `json:"damages"`
	KnownIssues            []string `json:"knownIssues"`
}

type Damage struct {
	Date     string `json:"date"`
	Severity string `json:"severity"` // "minor" or "major"
	Comment  string `json:"comment"`
}

// Transform maps the provider payload into the internal vehicle schema.
// Fields the provider omits stay nil so downstream scoring can treat them
// as unknown.
func Transform(p *Payload) *domain.Vehicle {
	v := &domain.Vehicle{
		RegistrationNumber: NormalizeRegistration(p.RegNo),
		Make:               p.Brand,
		Model:              p.Model,
		ModelYear:          p.ModelYear,
		FuelType:           p.FuelType,
		MileageKm:          p.Mileage,
		OwnerCount:         p.NumberOfOwners,
		AskingPriceSEK:     p.Price,
		MarketPriceSEK:     p.MarketPrice,
		NewCarWarranty:     p.NewCarWarranty,
		DepreciationPct:    p.ValueLossFiveYearsPct,
		EuroNCAPStars:      p.EuroNcapStars,
		Equipment:          p.Equipment,
		ServiceHistoryFull: p.ServiceHistoryComplete,
		KnownIssueCount:    intPtr(len(p.KnownIssues)),
	}

	// Status flags count as known when the provider sent any of them.
	if p.UsedAsTaxi != nil || p.UsedAsRental != nil || p.Imported != nil || p.ReportedStolen != nil {
		v.Flags = &domain.VehicleFlags{
			Taxi:     boolVal(p.UsedAsTaxi),
			Rental:   boolVal(p.UsedAsRental),
			Imported: boolVal(p.Imported),
			Stolen:   boolVal(p.ReportedStolen),
		}
	}

	if p.Damages != nil {
		major := 0
		for _, d := range p.Damages {
			if strings.EqualFold(d.Severity, "major") {
				major++
			}
		}
		v.MajorDamageCount = &major
	}

	if p.KnownIssues == nil {
		v.KnownIssueCount = nil
	}

	return v
}

// NormalizeRegistration uppercases and strips spaces from a registration
// number so "abc 123" and "ABC123" address the same unlock record.
func NormalizeRegistration(regNo string) string {
	return strings.ToUpper(strings.ReplaceAll(regNo, " ", ""))
}

func intPtr(v int) *int { return &v }

func boolVal(b *bool) bool { return b != nil && *b }
