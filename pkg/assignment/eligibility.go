package assignment

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"shiftsync/pkg/models"
)

// CheckEligibility decides whether a driver may take on work today.
// Every check is evaluated, not short-circuited, so the reason string
// reports all violations joined with "; ". A missing driver is the only
// short circuit. When loadID is non-zero the overload prediction for that
// load is included in the gate.
func (s *Service) CheckEligibility(driverID, loadID uint) (*EligibilityResult, error) {
	var driver models.Driver
	if err := s.DB.First(&driver, driverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &EligibilityResult{
				DriverID:   driverID,
				IsEligible: false,
				Reason:     "Driver not found",
			}, nil
		}
		return nil, err
	}

	var reasons []string

	if driver.Status != models.DriverActive {
		reasons = append(reasons, "Driver is inactive")
	}

	start, end := s.todayWindow()

	todayWeekday := strings.ToUpper(s.Now().UTC().Weekday().String())
	if strings.ToUpper(driver.WeeklyOff) == todayWeekday {
		reasons = append(reasons, fmt.Sprintf("Today is driver's weekly off (%s)", driver.WeeklyOff))
	}

	if driver.FatigueScore > fatigueCeiling {
		reasons = append(reasons, fmt.Sprintf("Fatigue score too high (%g/100) - driver needs rest", driver.FatigueScore))
	}

	todayLoadCount, err := s.countActiveToday(driverID)
	if err != nil {
		return nil, err
	}
	if todayLoadCount >= maxDailyLoads {
		reasons = append(reasons, fmt.Sprintf("Driver already has %d active loads today (max %d)", todayLoadCount, maxDailyLoads))
	}

	if loadID > 0 {
		overload, err := s.ComputeOverload(driverID, loadID)
		if err != nil {
			return nil, err
		}
		if overload.Score > unsafeThreshold {
			reasons = append(reasons, fmt.Sprintf("Overload score too high (%.0f%%) - unsafe", overload.Score*100))
		}
	}

	var checkedIn int64
	err = s.DB.Model(&models.Attendance{}).
		Where("driver_id = ? AND date >= ? AND date < ? AND check_in_time IS NOT NULL", driverID, start, end).
		Count(&checkedIn).Error
	if err != nil {
		return nil, err
	}
	if checkedIn == 0 {
		reasons = append(reasons, "Driver has not checked in today")
	}

	reason := "Eligible for assignment"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, "; ")
	}

	return &EligibilityResult{
		DriverID:   driver.DriverID,
		DriverName: driver.Name,
		IsEligible: len(reasons) == 0,
		Reason:     reason,
	}, nil
}
