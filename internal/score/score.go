// Package score computes the Bilhälsometer, a weighted 0-100 composite
// rating of a vehicle's desirability across eleven factors. The calculator
// is pure: all factor inputs are explicit, and any unknown factor scores
// the neutral 50 so a report page can always render.
package score

import "math"

// Grade is the letter grade mapped from the health index.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeE Grade = "E"
)

// Category weights. Must sum to exactly 1.00.
const (
	weightPriceVsMarket   = 0.12
	weightStatusFlags     = 0.11
	weightMileage         = 0.11
	weightMileagePerOwner = 0.09
	weightWarranty        = 0.06
	weightDepreciation    = 0.11
	weightSafety          = 0.11
	weightEquipment       = 0.11
	weightServiceHistory  = 0.07
	weightDamages         = 0.07
	weightKnownIssues     = 0.04
)

const neutralScore = 50.0

// StatusFlags are the registry markers that depress the status sub-score.
type StatusFlags struct {
	Taxi     bool
	Rental   bool
	Imported bool
	Stolen   bool
}

// Input carries the eleven factor inputs. Nil means the underlying data is
// unavailable; that factor then scores neutral instead of a fabricated
// stand-in value.
type Input struct {
	// PriceDeviationPct is (asking - market) / market * 100. Negative
	// means priced under market.
	PriceDeviationPct *float64

	Flags *StatusFlags

	// MileageRatio is actual mileage divided by the age-expected mileage.
	MileageRatio *float64

	// MileagePerOwner is total mileage divided by the number of owners,
	// in kilometers.
	MileagePerOwner *float64

	HasNewCarWarranty *bool

	// DepreciationPct is the five-year value loss in percent.
	DepreciationPct *float64

	// EuroNCAPStars is the safety rating, 0-5.
	EuroNCAPStars *int

	EquipmentCount *int

	HasFullServiceHistory *bool

	MajorDamageCount *int

	KnownIssueCount *int
}

// Breakdown holds the eleven normalized sub-scores, each 0-100.
type Breakdown struct {
	PriceVsMarket   float64 `json:"priceVsMarket"`
	StatusFlags     float64 `json:"statusFlags"`
	Mileage         float64 `json:"mileage"`
	MileagePerOwner float64 `json:"mileagePerOwner"`
	Warranty        float64 `json:"warranty"`
	Depreciation    float64 `json:"depreciation"`
	Safety          float64 `json:"safety"`
	Equipment       float64 `json:"equipment"`
	ServiceHistory  float64 `json:"serviceHistory"`
	Damages         float64 `json:"damages"`
	KnownIssues     float64 `json:"knownIssues"`
}

// Result is the composite health score with its grade.
type Result struct {
	HealthIndex int       `json:"healthIndex"`
	Grade       Grade     `json:"grade"`
	GradeLabel  string    `json:"gradeLabel"`
	Breakdown   Breakdown `json:"breakdown"`
}

// Calculate computes the health index from the given inputs. A zero-value
// Input yields the all-neutral default (index 50, grade D).
func Calculate(in Input) Result {
	b := Breakdown{
		PriceVsMarket:   scorePriceVsMarket(in.PriceDeviationPct),
		StatusFlags:     scoreStatusFlags(in.Flags),
		Mileage:         scoreMileage(in.MileageRatio),
		MileagePerOwner: scoreMileagePerOwner(in.MileagePerOwner),
		Warranty:        scoreBool(in.HasNewCarWarranty),
		Depreciation:    scoreDepreciation(in.DepreciationPct),
		Safety:          scoreSafety(in.EuroNCAPStars),
		Equipment:       scoreEquipment(in.EquipmentCount),
		ServiceHistory:  scoreBool(in.HasFullServiceHistory),
		Damages:         scoreDamages(in.MajorDamageCount),
		KnownIssues:     scoreKnownIssues(in.KnownIssueCount),
	}

	weighted := b.PriceVsMarket*weightPriceVsMarket +
		b.StatusFlags*weightStatusFlags +
		b.Mileage*weightMileage +
		b.MileagePerOwner*weightMileagePerOwner +
		b.Warranty*weightWarranty +
		b.Depreciation*weightDepreciation +
		b.Safety*weightSafety +
		b.Equipment*weightEquipment +
		b.ServiceHistory*weightServiceHistory +
		b.Damages*weightDamages +
		b.KnownIssues*weightKnownIssues

	index := int(math.Round(clamp(weighted)))
	grade, label := gradeFor(index)

	return Result{
		HealthIndex: index,
		Grade:       grade,
		GradeLabel:  label,
		Breakdown:   b,
	}
}

// gradeFor maps the health index to the fixed grade step function.
func gradeFor(index int) (Grade, string) {
	switch {
	case index >= 90:
		return GradeA, "Fynd"
	case index >= 80:
		return GradeB, "Bra köp"
	case index >= 65:
		return GradeC, "OK"
	case index >= 50:
		return GradeD, "Tveksamt"
	default:
		return GradeE, "Undvik"
	}
}

// scorePriceVsMarket: ≥20% under market → 100, ≥20% over → 0, linear
// in between, exactly at market → 50.
func scorePriceVsMarket(deviationPct *float64) float64 {
	if deviationPct == nil {
		return neutralScore
	}
	return clamp((20 - *deviationPct) / 40 * 100)
}

// scoreStatusFlags: subtractive from 100, floored at 0.
func scoreStatusFlags(flags *StatusFlags) float64 {
	if flags == nil {
		return neutralScore
	}
	s := 100.0
	if flags.Taxi {
		s -= 25
	}
	if flags.Rental {
		s -= 25
	}
	if flags.Imported {
		s -= 20
	}
	if flags.Stolen {
		s -= 30
	}
	return clamp(s)
}

// scoreMileage: ratio ≤0.5× expected → 100, ≥2.0× → 0, linear between.
func scoreMileage(ratio *float64) float64 {
	if ratio == nil {
		return neutralScore
	}
	return clamp((2.0 - *ratio) / 1.5 * 100)
}

// scoreMileagePerOwner: ≥6000 km/owner → 100, ≤1000 → 0, linear between.
func scoreMileagePerOwner(kmPerOwner *float64) float64 {
	if kmPerOwner == nil {
		return neutralScore
	}
	return clamp((*kmPerOwner - 1000) / 5000 * 100)
}

func scoreBool(present *bool) float64 {
	if present == nil {
		return neutralScore
	}
	if *present {
		return 100
	}
	return 0
}

// scoreDepreciation: 0% five-year loss → 100, ≥60% → 0, linear between.
func scoreDepreciation(lossPct *float64) float64 {
	if lossPct == nil {
		return neutralScore
	}
	return clamp((60 - *lossPct) / 60 * 100)
}

func scoreSafety(stars *int) float64 {
	if stars == nil {
		return neutralScore
	}
	return clamp(float64(*stars) / 5 * 100)
}

// scoreEquipment: 5 points per item, capped at 100 (20 items).
func scoreEquipment(count *int) float64 {
	if count == nil {
		return neutralScore
	}
	return clamp(float64(*count) * 5)
}

// scoreDamages: -20 per major damage, floored at 0.
func scoreDamages(count *int) float64 {
	if count == nil {
		return neutralScore
	}
	return clamp(100 - float64(*count)*20)
}

// scoreKnownIssues: -25 per recurring issue, floored at 0.
func scoreKnownIssues(count *int) float64 {
	if count == nil {
		return neutralScore
	}
	return clamp(100 - float64(*count)*25)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
