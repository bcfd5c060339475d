package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func TestCalculate_DefaultInputIsNeutral(t *testing.T) {
	result := Calculate(Input{})

	assert.Equal(t, 50, result.HealthIndex)
	assert.Equal(t, GradeD, result.Grade)
	assert.Equal(t, "Tveksamt", result.GradeLabel)
	assert.Equal(t, 50.0, result.Breakdown.PriceVsMarket)
	assert.Equal(t, 50.0, result.Breakdown.KnownIssues)
}

func TestCalculate_WeightsSumToOne(t *testing.T) {
	sum := weightPriceVsMarket + weightStatusFlags + weightMileage +
		weightMileagePerOwner + weightWarranty + weightDepreciation +
		weightSafety + weightEquipment + weightServiceHistory +
		weightDamages + weightKnownIssues
	assert.InDelta(t, 1.00, sum, 0.0001)
}

func TestCalculate_PerfectAndWorstVehicle(t *testing.T) {
	t.Run("AllFactorsBest", func(t *testing.T) {
		result := Calculate(Input{
			PriceDeviationPct:     floatPtr(-20),
			Flags:                 &StatusFlags{},
			MileageRatio:          floatPtr(0.5),
			MileagePerOwner:       floatPtr(6000),
			HasNewCarWarranty:     boolPtr(true),
			DepreciationPct:       floatPtr(0),
			EuroNCAPStars:         intPtr(5),
			EquipmentCount:        intPtr(20),
			HasFullServiceHistory: boolPtr(true),
			MajorDamageCount:      intPtr(0),
			KnownIssueCount:       intPtr(0),
		})
		assert.Equal(t, 100, result.HealthIndex)
		assert.Equal(t, GradeA, result.Grade)
		assert.Equal(t, "Fynd", result.GradeLabel)
	})

	t.Run("AllFactorsWorst", func(t *testing.T) {
		result := Calculate(Input{
			PriceDeviationPct:     floatPtr(20),
			Flags:                 &StatusFlags{Taxi: true, Rental: true, Imported: true, Stolen: true},
			MileageRatio:          floatPtr(2.0),
			MileagePerOwner:       floatPtr(1000),
			HasNewCarWarranty:     boolPtr(false),
			DepreciationPct:       floatPtr(60),
			EuroNCAPStars:         intPtr(0),
			EquipmentCount:        intPtr(0),
			HasFullServiceHistory: boolPtr(false),
			MajorDamageCount:      intPtr(5),
			KnownIssueCount:       intPtr(4),
		})
		assert.Equal(t, 0, result.HealthIndex)
		assert.Equal(t, GradeE, result.Grade)
		assert.Equal(t, "Undvik", result.GradeLabel)
	})
}

func TestScorePriceVsMarket(t *testing.T) {
	tests := []struct {
		name      string
		deviation float64
		want      float64
	}{
		{"TwentyUnderMarket", -20, 100},
		{"ThirtyUnderMarketClamps", -30, 100},
		{"AtMarket", 0, 50},
		{"TenOverMarket", 10, 25},
		{"TwentyOverMarket", 20, 0},
		{"FortyOverMarketClamps", 40, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scorePriceVsMarket(&tt.deviation))
		})
	}
}

func TestScoreStatusFlags(t *testing.T) {
	assert.Equal(t, 100.0, scoreStatusFlags(&StatusFlags{}))
	assert.Equal(t, 75.0, scoreStatusFlags(&StatusFlags{Taxi: true}))
	assert.Equal(t, 50.0, scoreStatusFlags(&StatusFlags{Taxi: true, Rental: true}))
	assert.Equal(t, 0.0, scoreStatusFlags(&StatusFlags{Taxi: true, Rental: true, Imported: true, Stolen: true}))
}

func TestScoreMileage(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  float64
	}{
		{"HalfExpected", 0.5, 100},
		{"Expected", 1.0, 100.0 / 1.5},
		{"DoubleExpected", 2.0, 0},
		{"TripleExpectedClamps", 3.0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, scoreMileage(&tt.ratio), 0.0001)
		})
	}
}

func TestScoreMileagePerOwner(t *testing.T) {
	assert.Equal(t, 0.0, scoreMileagePerOwner(floatPtr(1000)))
	assert.Equal(t, 50.0, scoreMileagePerOwner(floatPtr(3500)))
	assert.Equal(t, 100.0, scoreMileagePerOwner(floatPtr(6000)))
	assert.Equal(t, 100.0, scoreMileagePerOwner(floatPtr(90000)))
}

func TestScoreDepreciation(t *testing.T) {
	assert.Equal(t, 100.0, scoreDepreciation(floatPtr(0)))
	assert.Equal(t, 50.0, scoreDepreciation(floatPtr(30)))
	assert.Equal(t, 0.0, scoreDepreciation(floatPtr(60)))
	assert.Equal(t, 0.0, scoreDepreciation(floatPtr(80)))
}

func TestScoreSafety(t *testing.T) {
	assert.Equal(t, 0.0, scoreSafety(intPtr(0)))
	assert.Equal(t, 60.0, scoreSafety(intPtr(3)))
	assert.Equal(t, 100.0, scoreSafety(intPtr(5)))
}

func TestScoreEquipment(t *testing.T) {
	assert.Equal(t, 0.0, scoreEquipment(intPtr(0)))
	assert.Equal(t, 50.0, scoreEquipment(intPtr(10)))
	assert.Equal(t, 100.0, scoreEquipment(intPtr(20)))
	assert.Equal(t, 100.0, scoreEquipment(intPtr(35)))
}

func TestScoreDamagesAndIssues(t *testing.T) {
	assert.Equal(t, 100.0, scoreDamages(intPtr(0)))
	assert.Equal(t, 60.0, scoreDamages(intPtr(2)))
	assert.Equal(t, 0.0, scoreDamages(intPtr(5)))

	assert.Equal(t, 100.0, scoreKnownIssues(intPtr(0)))
	assert.Equal(t, 25.0, scoreKnownIssues(intPtr(3)))
	assert.Equal(t, 0.0, scoreKnownIssues(intPtr(4)))
}

func TestGradeFor(t *testing.T) {
	tests := []struct {
		index int
		grade Grade
		label string
	}{
		{100, GradeA, "Fynd"},
		{90, GradeA, "Fynd"},
		{89, GradeB, "Bra köp"},
		{80, GradeB, "Bra köp"},
		{79, GradeC, "OK"},
		{65, GradeC, "OK"},
		{64, GradeD, "Tveksamt"},
		{50, GradeD, "Tveksamt"},
		{49, GradeE, "Undvik"},
		{0, GradeE, "Undvik"},
	}
	for _, tt := range tests {
		grade, label := gradeFor(tt.index)
		assert.Equal(t, tt.grade, grade, "index %d", tt.index)
		assert.Equal(t, tt.label, label, "index %d", tt.index)
	}
}
