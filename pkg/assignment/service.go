// Package assignment implements the load assignment core: overload
// prediction, suitability scoring, driver eligibility, recommendations,
// single-load assignment and fair-distribution batch auto-assignment.
package assignment

import (
	"math"
	"time"

	"gorm.io/gorm"

	"shiftsync/pkg/models"
)

// Workload ceilings and weights for the overload prediction engine.
const (
	stopsCeiling    = 60.0
	hoursCeiling    = 10.0
	distanceCeiling = 200.0

	stopsWeight    = 0.50
	hoursWeight    = 0.30
	distanceWeight = 0.20

	warningThreshold = 0.75
	unsafeThreshold  = 0.90

	// Soft cap on active loads per driver per day.
	maxDailyLoads = 3

	fatigueCeiling      = 85.0
	rotationDaysTrigger = 5
)

// FatigueRecomputer refreshes a driver's fatigue score after workload
// changes. The batch auto-assigner calls it after each successful
// assignment so later picks see the updated score.
type FatigueRecomputer interface {
	Recompute(driverID uint) error
}

// Service is the assignment engine. Now is injectable so tests can pin
// the UTC day window.
type Service struct {
	DB      *gorm.DB
	Fatigue FatigueRecomputer
	Now     func() time.Time
}

// NewService creates an assignment service backed by db. fatigue may be
// nil when no recomputation is wanted (single-load callers).
func NewService(db *gorm.DB, fatigue FatigueRecomputer) *Service {
	return &Service{
		DB:      db,
		Fatigue: fatigue,
		Now:     time.Now,
	}
}

// todayWindow returns the current UTC calendar day as [start, end).
func (s *Service) todayWindow() (time.Time, time.Time) {
	now := s.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// todayAssignments returns the driver's non-completed assignments for the
// current UTC day with their loads attached.
func (s *Service) todayAssignments(driverID uint) ([]models.ShiftAssignment, error) {
	start, end := s.todayWindow()
	var assignments []models.ShiftAssignment
	err := s.DB.Preload("Load").
		Where("driver_id = ? AND assigned_date >= ? AND assigned_date < ? AND status <> ?",
			driverID, start, end, models.AssignmentCompleted).
		Find(&assignments).Error
	return assignments, err
}

// countActiveToday counts the driver's non-completed assignments for the
// current UTC day.
func (s *Service) countActiveToday(driverID uint) (int, error) {
	start, end := s.todayWindow()
	var count int64
	err := s.DB.Model(&models.ShiftAssignment{}).
		Where("driver_id = ? AND assigned_date >= ? AND assigned_date < ? AND status <> ?",
			driverID, start, end, models.AssignmentCompleted).
		Count(&count).Error
	return int(count), err
}

// round rounds v to the given number of decimal places. Scores are always
// rounded before being returned or persisted so comparisons stay
// deterministic.
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func clamp01(v float64) float64 {
	return math.Min(1, v)
}
