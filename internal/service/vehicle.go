package service

import (
	"context"
	"encoding/json"
	"time"

	"bilio-backend/internal/domain"
	"bilio-backend/internal/logger"
	"bilio-backend/internal/score"
	"bilio-backend/internal/vehicledata"
)

// Expected yearly mileage for a Swedish passenger car, used to relate a
// vehicle's odometer to its age.
const expectedKmPerYear = 15000

type vehicleService struct {
	client VehicleDataClient
}

func NewVehicleService(client VehicleDataClient) VehicleService {
	return &vehicleService{client: client}
}

func (s *vehicleService) Lookup(ctx context.Context, lookupType, country, id string) (json.RawMessage, error) {
	return s.client.Lookup(ctx, lookupType, country, id)
}

// HealthScore fetches, transforms and scores a vehicle. Lookup failures
// degrade to the all-neutral default score instead of erroring: the score
// feeds a report page that must always render.
func (s *vehicleService) HealthScore(ctx context.Context, registrationNumber string) (*score.Result, error) {
	regNr := vehicledata.NormalizeRegistration(registrationNumber)
	vehicle, err := s.client.LookupByRegistration(ctx, regNr)
	if err != nil {
		logger.Warn("vehicle lookup failed, returning neutral health score",
			"registration_number", regNr, "error", err)
		result := score.Calculate(score.Input{})
		return &result, nil
	}

	result := score.Calculate(ScoreInputFromVehicle(vehicle, time.Now()))
	return &result, nil
}

// ScoreInputFromVehicle derives the eleven scoring factors from the
// vehicle record. Factors the record cannot answer stay nil and score
// neutral.
func ScoreInputFromVehicle(v *domain.Vehicle, now time.Time) score.Input {
	var in score.Input

	if v.AskingPriceSEK != nil && v.MarketPriceSEK != nil && *v.MarketPriceSEK > 0 {
		dev := (float64(*v.AskingPriceSEK) - float64(*v.MarketPriceSEK)) / float64(*v.MarketPriceSEK) * 100
		in.PriceDeviationPct = &dev
	}

	if v.Flags != nil {
		in.Flags = &score.StatusFlags{
			Taxi:     v.Flags.Taxi,
			Rental:   v.Flags.Rental,
			Imported: v.Flags.Imported,
			Stolen:   v.Flags.Stolen,
		}
	}

	if v.MileageKm != nil && v.ModelYear > 0 {
		age := now.Year() - v.ModelYear
		if age < 1 {
			age = 1
		}
		ratio := float64(*v.MileageKm) / float64(age*expectedKmPerYear)
		in.MileageRatio = &ratio
	}

	if v.MileageKm != nil && v.OwnerCount != nil {
		owners := *v.OwnerCount
		if owners < 1 {
			owners = 1
		}
		perOwner := float64(*v.MileageKm) / float64(owners)
		in.MileagePerOwner = &perOwner
	}

	in.HasNewCarWarranty = v.NewCarWarranty
	in.DepreciationPct = v.DepreciationPct
	in.EuroNCAPStars = v.EuroNCAPStars

	if v.Equipment != nil {
		count := len(v.Equipment)
		in.EquipmentCount = &count
	}

	in.HasFullServiceHistory = v.ServiceHistoryFull
	in.MajorDamageCount = v.MajorDamageCount
	in.KnownIssueCount = v.KnownIssueCount

	return in
}
