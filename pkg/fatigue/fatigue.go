// Package fatigue maintains driver fatigue scores. The assignment engine
// reads the score and triggers recomputation after batch assignments.
package fatigue

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"shiftsync/pkg/models"
)

// ErrDriverNotFound is returned when the driver does not exist.
var ErrDriverNotFound = errors.New("driver not found")

// Workload ceilings mirror the overload prediction bands so a driver at
// an unsafe daily workload lands near the fatigue gate ceiling.
const (
	stopsCeiling    = 60.0
	hoursCeiling    = 10.0
	distanceCeiling = 200.0

	workloadScale      = 70.0
	pointsPerDayWorked = 6.0
	consecutiveCap     = 30.0
)

// Service recomputes fatigue scores from stored workload. Now is
// injectable for deterministic tests.
type Service struct {
	DB  *gorm.DB
	Now func() time.Time
}

// NewService creates a fatigue service backed by db.
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db, Now: time.Now}
}

// Recompute recalculates and persists the driver's fatigue score from
// today's active assignments and their consecutive days worked. The score
// is monotonic in assigned workload and clamped to [0, 100].
func (s *Service) Recompute(driverID uint) error {
	var driver models.Driver
	if err := s.DB.First(&driver, driverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDriverNotFound
		}
		return err
	}

	now := s.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	var assignments []models.ShiftAssignment
	err := s.DB.Preload("Load").
		Where("driver_id = ? AND assigned_date >= ? AND assigned_date < ? AND status <> ?",
			driverID, start, end, models.AssignmentCompleted).
		Find(&assignments).Error
	if err != nil {
		return err
	}

	stops := 0
	hours := 0.0
	distance := 0.0
	for _, a := range assignments {
		if a.Load == nil {
			continue
		}
		stops += a.Load.Stops
		hours += a.Load.EstimatedHours
		distance += a.Load.EstimatedDistance
	}

	stopsNorm := math.Min(1, float64(stops)/stopsCeiling)
	hoursNorm := math.Min(1, hours/hoursCeiling)
	distanceNorm := math.Min(1, distance/distanceCeiling)

	workload := (0.50*stopsNorm + 0.30*hoursNorm + 0.20*distanceNorm) * workloadScale
	consecutive := math.Min(consecutiveCap, pointsPerDayWorked*float64(driver.ConsecutiveDays))

	score := math.Min(100, workload+consecutive)
	score = math.Round(score*100) / 100

	return s.DB.Model(&models.Driver{}).
		Where("driver_id = ?", driverID).
		Updates(map[string]interface{}{
			"fatigue_score": score,
			"updated_at":    now,
		}).Error
}
