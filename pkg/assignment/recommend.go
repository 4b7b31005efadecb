package assignment

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"shiftsync/pkg/models"
)

// GetRecommendations ranks every active driver for the given pending load.
// Eligible drivers get full suitability and overload scores; ineligible
// ones are carried with zero scores and their rejection reason so the
// caller can show why they were passed over.
func (s *Service) GetRecommendations(loadID uint) (*Recommendation, error) {
	var load models.Load
	if err := s.DB.First(&load, loadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoadNotFound
		}
		return nil, err
	}

	if load.Status != models.LoadPending {
		return nil, fmt.Errorf("%w (current status: %s)", ErrLoadNotPending, load.Status)
	}

	var activeDrivers []models.Driver
	if err := s.DB.Where("status = ?", models.DriverActive).Find(&activeDrivers).Error; err != nil {
		return nil, err
	}

	recommendations := make([]DriverRecommendation, 0, len(activeDrivers))

	for _, driver := range activeDrivers {
		eligibility, err := s.CheckEligibility(driver.DriverID, loadID)
		if err != nil {
			return nil, err
		}

		if eligibility.IsEligible {
			suitability, err := s.ComputeSuitability(driver.DriverID, loadID)
			if err != nil {
				return nil, err
			}
			overload, err := s.ComputeOverload(driver.DriverID, loadID)
			if err != nil {
				return nil, err
			}

			recommendations = append(recommendations, DriverRecommendation{
				DriverID:          driver.DriverID,
				DriverName:        driver.Name,
				Region:            driver.Region,
				VehicleType:       driver.VehicleType,
				SuitabilityScore:  suitability.Score,
				OverloadScore:     overload.Score,
				OverloadStatus:    overload.Status,
				FatigueScore:      driver.FatigueScore,
				RegionMatch:       suitability.RegionMatch,
				ConsecutiveDays:   driver.ConsecutiveDays,
				IsEligible:        true,
				EligibilityReason: "Eligible",
			})
		} else {
			recommendations = append(recommendations, DriverRecommendation{
				DriverID:          driver.DriverID,
				DriverName:        driver.Name,
				Region:            driver.Region,
				VehicleType:       driver.VehicleType,
				OverloadStatus:    "N/A",
				FatigueScore:      driver.FatigueScore,
				RegionMatch:       strings.EqualFold(driver.Region, load.Region),
				ConsecutiveDays:   driver.ConsecutiveDays,
				IsEligible:        false,
				EligibilityReason: eligibility.Reason,
			})
		}
	}

	// Eligible first, then best suitability.
	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].IsEligible != recommendations[j].IsEligible {
			return recommendations[i].IsEligible
		}
		return recommendations[i].SuitabilityScore > recommendations[j].SuitabilityScore
	})

	eligibleCount := 0
	for _, r := range recommendations {
		if r.IsEligible {
			eligibleCount++
		}
	}

	var top *DriverRecommendation
	for i := range recommendations {
		if recommendations[i].IsEligible {
			top = &recommendations[i]
			break
		}
	}

	return &Recommendation{
		LoadID:              load.LoadID,
		LoadRef:             load.LoadRef,
		LoadRegion:          load.Region,
		LoadStops:           load.Stops,
		LoadEstimatedHours:  load.EstimatedHours,
		LoadPriority:        load.Priority,
		EligibleDriverCount: eligibleCount,
		TotalDriverCount:    len(recommendations),
		Recommendations:     recommendations,
		TopRecommendation:   top,
		GeneratedAt:         s.Now().UTC(),
	}, nil
}
