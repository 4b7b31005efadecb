package assignment

import (
	"errors"

	"gorm.io/gorm"

	"shiftsync/pkg/models"
)

// ComputeOverload predicts how close a driver would be to an unsafe daily
// workload if the candidate load were added on top of today's active
// assignments.
//
// OverloadScore = 0.50*stopsNorm + 0.30*hoursNorm + 0.20*distanceNorm
// with each dimension normalized against its ceiling and clamped to 1.
func (s *Service) ComputeOverload(driverID, loadID uint) (*OverloadResult, error) {
	var driver models.Driver
	if err := s.DB.First(&driver, driverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, err
	}

	var load models.Load
	if err := s.DB.First(&load, loadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoadNotFound
		}
		return nil, err
	}

	assignments, err := s.todayAssignments(driverID)
	if err != nil {
		return nil, err
	}

	currentStops := 0
	currentHours := 0.0
	currentDistance := 0.0
	for _, a := range assignments {
		if a.Load == nil {
			continue
		}
		currentStops += a.Load.Stops
		currentHours += a.Load.EstimatedHours
		currentDistance += a.Load.EstimatedDistance
	}

	projectedStops := currentStops + load.Stops
	projectedHours := currentHours + load.EstimatedHours
	projectedDistance := currentDistance + load.EstimatedDistance

	stopsNorm := clamp01(float64(projectedStops) / stopsCeiling)
	hoursNorm := clamp01(projectedHours / hoursCeiling)
	distanceNorm := clamp01(projectedDistance / distanceCeiling)

	score := round(stopsWeight*stopsNorm+hoursWeight*hoursNorm+distanceWeight*distanceNorm, 4)

	var status string
	switch {
	case score < warningThreshold:
		status = OverloadSafe
	case score < unsafeThreshold:
		status = OverloadWarning
	default:
		status = OverloadUnsafe
	}

	return &OverloadResult{
		DriverID:           driver.DriverID,
		DriverName:         driver.Name,
		LoadID:             load.LoadID,
		Score:              score,
		Status:             status,
		CurrentStops:       currentStops,
		CurrentHours:       currentHours,
		CurrentDistance:    currentDistance,
		ProjectedStops:     projectedStops,
		ProjectedHours:     projectedHours,
		ProjectedDistance:  projectedDistance,
		StopsNormalized:    round(stopsNorm, 4),
		HoursNormalized:    round(hoursNorm, 4),
		DistanceNormalized: round(distanceNorm, 4),
	}, nil
}
