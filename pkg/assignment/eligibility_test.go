package assignment

import (
	"strings"
	"testing"

	"shiftsync/pkg/models"
)

func TestCheckEligibility_EligibleDriver(t *testing.T) {
	s := newTestService(t)
	driver := eligibleDriver(t, s, nil)

	result, err := s.CheckEligibility(driver.DriverID, 0)
	if err != nil {
		t.Fatalf("CheckEligibility failed: %v", err)
	}
	if !result.IsEligible {
		t.Fatalf("Expected eligible driver, got reason: %s", result.Reason)
	}
	if result.Reason != "Eligible for assignment" {
		t.Errorf("Unexpected reason: %s", result.Reason)
	}
}

func TestCheckEligibility_UnknownDriver(t *testing.T) {
	s := newTestService(t)

	result, err := s.CheckEligibility(999, 0)
	if err != nil {
		t.Fatalf("CheckEligibility failed: %v", err)
	}
	if result.IsEligible {
		t.Error("Expected unknown driver to be ineligible")
	}
	if result.Reason != "Driver not found" {
		t.Errorf("Unexpected reason: %s", result.Reason)
	}
}

func TestCheckEligibility_FatigueBoundary(t *testing.T) {
	s := newTestService(t)

	atLimit := eligibleDriver(t, s, func(d *models.Driver) {
		d.Phone = "9111111111"
		d.FatigueScore = 85
	})
	overLimit := eligibleDriver(t, s, func(d *models.Driver) {
		d.Phone = "9222222222"
		d.FatigueScore = 86
	})

	atResult, err := s.CheckEligibility(atLimit.DriverID, 0)
	if err != nil {
		t.Fatalf("CheckEligibility failed: %v", err)
	}
	if !atResult.IsEligible {
		t.Errorf("Fatigue 85 must pass the gate, got reason: %s", atResult.Reason)
	}

	overResult, err := s.CheckEligibility(overLimit.DriverID, 0)
	if err != nil {
		t.Fatalf("CheckEligibility failed: %v", err)
	}
	if overResult.IsEligible {
		t.Error("Fatigue 86 must fail the gate")
	}
	if !strings.Contains(overResult.Reason, "Fatigue score too high") {
		t.Errorf("Unexpected reason: %s", overResult.Reason)
	}
}

func TestCheckEligibility_WeeklyOff(t *testing.T) {
	s := newTestService(t)
	// Test clock is a Monday.
	driver := eligibleDriver(t, s, func(d *models.Driver) {
		d.WeeklyOff = "monday"
	})

	result, err := s.CheckEligibility(driver.DriverID, 0)
	if err != nil {
		t.Fatalf("CheckEligibility failed: %v", err)
	}
	if result.IsEligible {
		t.Error("Weekly off must fail the gate regardless of case")
	}
	if !strings.Contains(result.Reason, "weekly off") {
		t.Errorf("Unexpected reason: %s", result.Reason)
	}
}

func TestCheckEligibility_NotCheckedIn(t *testing.T) {
	s := newTestService(t)
	driver := seedDriver(t, s, models.Driver{})

	result, err := s.CheckEligibility(driver.DriverID, 0)
	if err != nil {
		t.Fatalf("CheckEligibility failed: %v", err)
	}
	if result.IsEligible {
		t.Error("Driver without attendance must be ineligible")
	}
	if !strings.Contains(result.Reason, "not checked in today") {
		t.Errorf("Unexpected reason: %s", result.Reason)
	}
}

func TestCheckEligibility_DailyLoadCap(t *testing.T) {
	s := newTestService(t)
	driver := eligibleDriver(t, s, nil)

	for i := 0; i < 3; i++ {
		load := seedLoad(t, s, models.Load{Status: models.LoadAssigned})
		s.DB.Create(&models.ShiftAssignment{
			DriverID:     driver.DriverID,
			LoadID:       load.LoadID,
			AssignedDate: testNow,
			Status:       models.AssignmentAssigned,
		})
	}

	result, err := s.CheckEligibility(driver.DriverID, 0)
	if err != nil {
		t.Fatalf("CheckEligibility failed: %v", err)
	}
	if result.IsEligible {
		t.Error("Driver at the daily cap must be ineligible")
	}
	if !strings.Contains(result.Reason, "active loads today") {
		t.Errorf("Unexpected reason: %s", result.Reason)
	}
}

func TestCheckEligibility_UnsafeOverloadForLoad(t *testing.T) {
	s := newTestService(t)
	driver := eligibleDriver(t, s, nil)
	load := seedLoad(t, s, models.Load{Stops: 60, EstimatedHours: 10, EstimatedDistance: 200})

	result, err := s.CheckEligibility(driver.DriverID, load.LoadID)
	if err != nil {
		t.Fatalf("CheckEligibility failed: %v", err)
	}
	if result.IsEligible {
		t.Error("Unsafe overload for the candidate load must fail the gate")
	}
	if !strings.Contains(result.Reason, "Overload score too high") {
		t.Errorf("Unexpected reason: %s", result.Reason)
	}
}

func TestCheckEligibility_CollectsAllReasons(t *testing.T) {
	s := newTestService(t)
	driver := seedDriver(t, s, models.Driver{
		Status:       models.DriverInactive,
		FatigueScore: 90,
	})

	result, err := s.CheckEligibility(driver.DriverID, 0)
	if err != nil {
		t.Fatalf("CheckEligibility failed: %v", err)
	}
	if result.IsEligible {
		t.Fatal("Expected ineligible driver")
	}

	for _, want := range []string{"Driver is inactive", "Fatigue score too high", "not checked in today"} {
		if !strings.Contains(result.Reason, want) {
			t.Errorf("Reason %q missing from: %s", want, result.Reason)
		}
	}
	if len(strings.Split(result.Reason, "; ")) != 3 {
		t.Errorf("Expected 3 joined reasons, got: %s", result.Reason)
	}
}
