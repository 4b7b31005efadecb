package assignment

import (
	"errors"
	"math"
	"strings"

	"gorm.io/gorm"

	"shiftsync/pkg/models"
)

// Suitability component weights.
const (
	regionWeight       = 0.30
	workloadWeight     = 0.25
	fatigueWeight      = 0.25
	suitDistanceWeight = 0.10
	rotationWeight     = 0.10
)

// ComputeSuitability scores how good a driver-load pairing is on a 0-100
// scale, factoring region match, today's workload before the candidate
// load, fatigue, distance already driven and rotation fairness.
func (s *Service) ComputeSuitability(driverID, loadID uint) (*SuitabilityResult, error) {
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

	regionMatch := strings.EqualFold(driver.Region, load.Region)
	regionScore := 50.0
	if regionMatch {
		regionScore = 100.0
	}

	assignments, err := s.todayAssignments(driverID)
	if err != nil {
		return nil, err
	}

	currentHours := 0.0
	currentDistance := 0.0
	for _, a := range assignments {
		if a.Load == nil {
			continue
		}
		currentHours += a.Load.EstimatedHours
		currentDistance += a.Load.EstimatedDistance
	}

	workloadNorm := 100 - clamp01(currentHours/hoursCeiling)*100
	fatigueNorm := 100 - driver.FatigueScore
	distanceNorm := 100 - clamp01(currentDistance/distanceCeiling)*100

	rotationPenalty := 0.0
	if driver.ConsecutiveDays >= rotationDaysTrigger {
		rotationPenalty = -20.0
	}

	score := round(
		regionWeight*regionScore+
			workloadWeight*workloadNorm+
			fatigueWeight*fatigueNorm+
			suitDistanceWeight*distanceNorm+
			rotationWeight*(100+rotationPenalty), 2)
	score = math.Max(0, math.Min(100, score))

	return &SuitabilityResult{
		DriverID:            driver.DriverID,
		DriverName:          driver.Name,
		LoadID:              load.LoadID,
		Score:               score,
		RegionMatch:         regionMatch,
		RegionScore:         regionScore,
		WorkloadScore:       round(workloadNorm, 2),
		FatigueScore:        round(fatigueNorm, 2),
		DistanceScore:       round(distanceNorm, 2),
		RotationPenalty:     rotationPenalty,
		ConsecutiveDays:     driver.ConsecutiveDays,
		CurrentFatigueScore: driver.FatigueScore,
	}, nil
}
